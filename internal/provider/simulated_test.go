package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelianware/claimsentry/internal/model"
)

func TestSimulatedProvider(t *testing.T) {
	p := NewSimulatedProvider()
	ctx := context.Background()

	t.Run("every scenario has a bounded suggestion set", func(t *testing.T) {
		for _, scenario := range model.Scenarios() {
			got, err := p.Suggest(ctx, scenario, model.RedactedRecord{})
			require.NoError(t, err)

			assert.GreaterOrEqual(t, len(got.Suggestions), 3, "scenario %s", scenario)
			assert.LessOrEqual(t, len(got.Suggestions), 5, "scenario %s", scenario)
			assert.GreaterOrEqual(t, got.Confidence, 0.0, "scenario %s", scenario)
			assert.LessOrEqual(t, got.Confidence, 1.0, "scenario %s", scenario)
			assert.True(t, got.Simulated)
			assert.Equal(t, "simulated", got.Model)
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err := p.Suggest(ctx, model.ScenarioMemberIDInvalid, model.RedactedRecord{})
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			again, err := p.Suggest(ctx, model.ScenarioMemberIDInvalid, model.RedactedRecord{})
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("unknown scenario falls back to general", func(t *testing.T) {
		got, err := p.Suggest(ctx, model.ScenarioCategory("made-up"), model.RedactedRecord{})
		require.NoError(t, err)

		general, err := p.Suggest(ctx, model.ScenarioGeneral, model.RedactedRecord{})
		require.NoError(t, err)
		assert.Equal(t, general, got)
	})

	t.Run("member id confidence suits the scenario", func(t *testing.T) {
		got, err := p.Suggest(ctx, model.ScenarioMemberIDInvalid, model.RedactedRecord{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Confidence, 0.7)
		assert.LessOrEqual(t, got.Confidence, 0.95)
	})
}
