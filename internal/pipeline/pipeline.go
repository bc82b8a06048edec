// Package pipeline orchestrates claim rejection resolution: classify,
// redact, validate, dispatch, account. It owns the fixed step order and
// the fail-closed behavior around the redaction gate.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/aurelianware/claimsentry/internal/classification"
	"github.com/aurelianware/claimsentry/internal/common"
	"github.com/aurelianware/claimsentry/internal/metrics"
	"github.com/aurelianware/claimsentry/internal/model"
	"github.com/aurelianware/claimsentry/internal/provider"
	"github.com/aurelianware/claimsentry/internal/redact"
)

// Resolver runs the resolution pipeline. Classification, redaction, and
// validation are pure; the provider dispatch is the only blocking step and
// honors ctx. Many resolutions may run concurrently on one Resolver; the
// rate gate and the metrics store are the only shared state.
type Resolver struct {
	classifier *classification.Classifier
	redactor   *redact.Redactor
	validator  *redact.Validator
	provider   provider.Provider
	metrics    *metrics.Store
}

// New creates a resolver with the default classifier, redactor, and
// validator. A nil store disables metrics accounting.
func New(p provider.Provider, store *metrics.Store) *Resolver {
	return NewWithComponents(
		classification.NewClassifier(),
		redact.NewRedactor(),
		redact.NewValidator(),
		p,
		store,
	)
}

// NewWithComponents creates a resolver with explicit components. Tests use
// it to skew the redactor's pattern set against the validator's.
func NewWithComponents(c *classification.Classifier, r *redact.Redactor, v *redact.Validator, p provider.Provider, store *metrics.Store) *Resolver {
	return &Resolver{
		classifier: c,
		redactor:   r,
		validator:  v,
		provider:   p,
		metrics:    store,
	}
}

// Resolve turns one rejection record into a resolution outcome or a typed
// failure. Every terminal state updates the metrics store exactly once.
// The pipeline never retries; recoverable failures are the caller's to
// retry.
func (r *Resolver) Resolve(ctx context.Context, rec model.RejectionRecord) (model.ResolutionOutcome, error) {
	start := time.Now()

	if err := validateRecord(rec); err != nil {
		r.recordFailure(err)
		return model.ResolutionOutcome{}, err
	}

	scenario := r.classifier.Classify(rec.RejectionCode, rec.RejectionDescription)

	redacted := r.redactor.Redact(rec)

	verdict := r.validator.Validate(redacted)
	if !verdict.Valid {
		// Fail closed: nothing leaves the trust boundary on an unsound
		// redaction, and this never downgrades to a warning.
		err := &common.RedactionError{Violations: verdict.Violations}
		r.recordFailure(err)
		common.LogError(err, "Redaction validation failed, aborting before dispatch", common.Fields{
			"transaction_id": redacted.TransactionID,
			"scenario":       scenario,
			"violations":     len(verdict.Violations),
		})
		return model.ResolutionOutcome{}, err
	}

	suggestion, err := r.provider.Suggest(ctx, scenario, redacted)
	if err != nil {
		r.recordFailure(err)
		return model.ResolutionOutcome{}, err
	}

	outcome := model.ResolutionOutcome{
		TransactionID:         rec.TransactionID,
		Scenario:              scenario,
		Confidence:            suggestion.Confidence,
		Suggestions:           suggestion.Suggestions,
		ProcessingTimeMs:      time.Since(start).Milliseconds(),
		TokenCount:            suggestion.TokenCount,
		ProviderModel:         suggestion.Model,
		UsedSimulatedProvider: suggestion.Simulated,
	}

	if r.metrics != nil {
		r.metrics.RecordSuccess(outcome.ProcessingTimeMs, outcome.TokenCount)
	}

	// The observability sink sees only redacted content; the raw
	// transaction id belongs to the caller's response, not the logs.
	common.LogInfo("Resolved rejection", common.Fields{
		"transaction_id":  redacted.TransactionID,
		"scenario":        outcome.Scenario,
		"suggestions":     len(outcome.Suggestions),
		"simulated":       outcome.UsedSimulatedProvider,
		"elapsed_ms":      outcome.ProcessingTimeMs,
		"redacted_fields": len(redacted.RedactedPaths),
	})

	return outcome, nil
}

// validateRecord checks the mandatory fields before classification.
func validateRecord(rec model.RejectionRecord) error {
	if rec.TransactionID == "" {
		return &common.ValidationError{Field: "transactionId"}
	}
	if rec.RejectionCode == "" {
		return &common.ValidationError{Field: "rejectionCode"}
	}
	return nil
}

// recordFailure accounts one terminal failure, with the extra rate-limit
// counter when the gate denied admission.
func (r *Resolver) recordFailure(err error) {
	if r.metrics == nil {
		return
	}
	if errors.Is(err, common.ErrRateLimit) {
		r.metrics.RecordRateLimitHit()
	}
	r.metrics.RecordFailure()
}
