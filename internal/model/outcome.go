package model

// ResolutionOutcome is the successful result of resolving a rejection.
//
// Invariants: len(Suggestions) is between 3 and 5 and Confidence is within
// [0, 1] for any outcome produced by the pipeline.
type ResolutionOutcome struct {
	TransactionID         string           `json:"transactionId"`
	Scenario              ScenarioCategory `json:"scenario"`
	Confidence            float64          `json:"confidence"`
	Suggestions           []string         `json:"suggestions"`
	ProcessingTimeMs      int64            `json:"processingTimeMs"`
	TokenCount            int              `json:"tokenCount,omitempty"`
	ProviderModel         string           `json:"providerModel,omitempty"`
	UsedSimulatedProvider bool             `json:"usedSimulatedProvider"`
}

// MetricsSnapshot is a consistent point-in-time view of the process-wide
// resolution counters. Averages are derived from the underlying sums at
// snapshot time, never from partial averages.
type MetricsSnapshot struct {
	TotalRequests           int64   `json:"totalRequests"`
	SuccessfulRequests      int64   `json:"successfulRequests"`
	FailedRequests          int64   `json:"failedRequests"`
	RateLimitHits           int64   `json:"rateLimitHits"`
	AverageProcessingTimeMs float64 `json:"averageProcessingTimeMs"`
	AverageTokenCount       float64 `json:"averageTokenCount"`
}
