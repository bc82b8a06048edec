// Package metrics aggregates process-wide resolution counters.
package metrics

import (
	"sync"

	"github.com/aurelianware/claimsentry/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Store accumulates resolution counters for the lifetime of the process.
// All mutating operations are safe under concurrent invocation; Snapshot
// returns a consistent point-in-time view with averages derived from the
// underlying sums. Counters reset only via an explicit Reset.
//
// A fresh Store can be constructed and injected for tests instead of
// reaching for a process global.
type Store struct {
	mu sync.Mutex

	total         int64
	successful    int64
	failed        int64
	rateLimitHits int64

	processingMsSum int64
	tokenSum        int64
	tokenSamples    int64

	prom *collectors
}

// NewStore creates an empty metrics store.
func NewStore() *Store {
	return &Store{}
}

// RecordSuccess records a completed resolution. tokenCount of zero means
// the provider reported no token usage and is excluded from the token
// average.
func (s *Store) RecordSuccess(processingMs int64, tokenCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.successful++
	s.processingMsSum += processingMs
	if tokenCount > 0 {
		s.tokenSum += int64(tokenCount)
		s.tokenSamples++
	}

	if s.prom != nil {
		s.prom.total.Inc()
		s.prom.successful.Inc()
		s.prom.processingSeconds.Observe(float64(processingMs) / 1000)
	}
}

// RecordFailure records a terminally failed resolution.
func (s *Store) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.failed++

	if s.prom != nil {
		s.prom.total.Inc()
		s.prom.failed.Inc()
	}
}

// RecordRateLimitHit records a rate-gate denial. The resolution that hit
// the gate is accounted separately via RecordFailure.
func (s *Store) RecordRateLimitHit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rateLimitHits++

	if s.prom != nil {
		s.prom.rateLimitHits.Inc()
	}
}

// Snapshot returns a consistent view of the counters.
func (s *Store) Snapshot() model.MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := model.MetricsSnapshot{
		TotalRequests:      s.total,
		SuccessfulRequests: s.successful,
		FailedRequests:     s.failed,
		RateLimitHits:      s.rateLimitHits,
	}
	if s.successful > 0 {
		snap.AverageProcessingTimeMs = float64(s.processingMsSum) / float64(s.successful)
	}
	if s.tokenSamples > 0 {
		snap.AverageTokenCount = float64(s.tokenSum) / float64(s.tokenSamples)
	}

	return snap
}

// Reset zeroes all counters. Operator action only; the Prometheus mirror
// is monotonic and is deliberately left untouched.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total = 0
	s.successful = 0
	s.failed = 0
	s.rateLimitHits = 0
	s.processingMsSum = 0
	s.tokenSum = 0
	s.tokenSamples = 0
}

// collectors mirrors the store into Prometheus.
type collectors struct {
	total             prometheus.Counter
	successful        prometheus.Counter
	failed            prometheus.Counter
	rateLimitHits     prometheus.Counter
	processingSeconds prometheus.Histogram
}

// EnablePrometheus registers mirror collectors with reg. Subsequent
// recordings update both the snapshot counters and the mirror. Call at
// most once per store.
func (s *Store) EnablePrometheus(reg prometheus.Registerer) error {
	c := &collectors{
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resolutions_total",
			Help: "Total number of resolution attempts",
		}),
		successful: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resolutions_successful_total",
			Help: "Total number of successful resolutions",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resolutions_failed_total",
			Help: "Total number of failed resolutions",
		}),
		rateLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resolutions_rate_limit_hits_total",
			Help: "Total number of rate gate denials",
		}),
		processingSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resolution_processing_seconds",
			Help:    "Resolution processing time in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}

	for _, col := range []prometheus.Collector{c.total, c.successful, c.failed, c.rateLimitHits, c.processingSeconds} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.prom = c
	s.mu.Unlock()

	return nil
}
