package provider

import (
	"sync"
	"time"
)

// RateGate enforces a minimum spacing between remote calls. A single gate
// is shared by all concurrent callers; the check-and-advance is one atomic
// operation so only one caller is admitted per spacing slot. Denials fail
// fast; the gate never queues or delays callers.
type RateGate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

// NewRateGate creates a gate with the given minimum interval between
// admissions. The first call is always admitted.
func NewRateGate(interval time.Duration) *RateGate {
	return newRateGateWithClock(interval, time.Now)
}

// newRateGateWithClock injects the clock for tests.
func newRateGateWithClock(interval time.Duration, now func() time.Time) *RateGate {
	return &RateGate{interval: interval, now: now}
}

// TryAcquire admits the caller if the spacing slot is open, atomically
// reserving the next slot. On denial it returns the remaining wait without
// mutating state.
func (g *RateGate) TryAcquire() (bool, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Before(g.next) {
		return false, g.next.Sub(now)
	}

	g.next = now.Add(g.interval)
	return true, 0
}
