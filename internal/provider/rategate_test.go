package provider

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateGate(t *testing.T) {
	t.Run("admit deny readmit", func(t *testing.T) {
		now := time.Unix(1000, 0)
		gate := newRateGateWithClock(4*time.Second, func() time.Time { return now })

		ok, _ := gate.TryAcquire()
		require.True(t, ok, "first caller should be admitted")

		ok, retryAfter := gate.TryAcquire()
		require.False(t, ok, "second caller within the interval should be denied")
		assert.Equal(t, 4*time.Second, retryAfter)

		now = now.Add(2 * time.Second)
		ok, retryAfter = gate.TryAcquire()
		require.False(t, ok)
		assert.Equal(t, 2*time.Second, retryAfter)

		now = now.Add(2 * time.Second)
		ok, _ = gate.TryAcquire()
		assert.True(t, ok, "caller after the interval should be admitted")
	})

	t.Run("denial does not advance the gate", func(t *testing.T) {
		now := time.Unix(1000, 0)
		gate := newRateGateWithClock(4*time.Second, func() time.Time { return now })

		ok, _ := gate.TryAcquire()
		require.True(t, ok)

		// Repeated denials must not push the slot further out.
		for i := 0; i < 5; i++ {
			ok, retryAfter := gate.TryAcquire()
			require.False(t, ok)
			assert.Equal(t, 4*time.Second, retryAfter)
		}
	})

	t.Run("single admission under concurrency", func(t *testing.T) {
		gate := NewRateGate(time.Minute)

		var admitted int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := gate.TryAcquire(); ok {
					atomic.AddInt32(&admitted, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), admitted, "only one concurrent caller may take the spacing slot")
	})

	t.Run("zero interval admits every caller", func(t *testing.T) {
		gate := NewRateGate(0)
		for i := 0; i < 10; i++ {
			ok, _ := gate.TryAcquire()
			require.True(t, ok)
		}
	})
}
