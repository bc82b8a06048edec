// Package provider dispatches redacted rejection records to a suggestion
// source: a local deterministic table or a rate-gated remote completion
// service. Only already-redacted, already-validated data may reach it.
package provider

import (
	"context"

	"github.com/aurelianware/claimsentry/internal/model"
)

// Provider is the polymorphic suggestion source.
type Provider interface {
	// Suggest returns 3-5 remediation suggestions for a classified,
	// redacted rejection. Implementations must not retry internally;
	// retry/backoff belongs to the caller.
	Suggest(ctx context.Context, scenario model.ScenarioCategory, rec model.RedactedRecord) (Suggestion, error)
}

// Suggestion is the provider's answer.
type Suggestion struct {
	Suggestions []string
	Confidence  float64
	TokenCount  int
	Model       string
	Simulated   bool
}
