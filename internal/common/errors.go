// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aurelianware/claimsentry/internal/model"
)

// Sentinel errors for the pipeline failure taxonomy. Typed errors below
// unwrap to these so callers can branch with errors.Is.
var (
	// ErrMissingField indicates a rejection record without a mandatory field.
	ErrMissingField = errors.New("missing required field")
	// ErrRedactionIncomplete indicates residual PHI-like content after redaction.
	ErrRedactionIncomplete = errors.New("redaction incomplete")
	// ErrRateLimit indicates the rate gate denied admission for a remote call.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrProvider indicates the remote suggestion call failed or returned garbage.
	ErrProvider = errors.New("suggestion provider failed")
	// ErrMissingConfig indicates remote mode was requested without the required configuration.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig indicates a configuration value outside its allowed range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a rejection record missing a mandatory field.
// It names the field only; record values never appear in error messages.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingField
}

// RedactionError is the fail-closed security error raised when the
// validator finds residual PHI-like content in a redacted record. It is
// fatal for the request and must never be downgraded to a warning.
type RedactionError struct {
	Violations []model.Violation
}

func (e *RedactionError) Error() string {
	paths := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		paths[i] = fmt.Sprintf("%s (%s)", v.FieldPath, v.Pattern)
	}
	return fmt.Sprintf("%s: residual content at %s", ErrRedactionIncomplete, strings.Join(paths, ", "))
}

func (e *RedactionError) Unwrap() error {
	return ErrRedactionIncomplete
}

// RateLimitError reports a denied remote dispatch. RetryAfter is how long
// the caller should wait before the gate will admit another call.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimit, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimit
}

// ProviderError wraps any failure from the external completion boundary:
// transport errors, timeouts, non-2xx responses, and unparseable bodies.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", ErrProvider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return ErrProvider
}

// ConfigurationError reports an unusable configuration at construction
// time, before any resolution is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingConfig, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrMissingConfig
}

// IsRetryable determines if a resolution failure is worth retrying.
// Rate-limit denials and provider failures are transient; validation,
// redaction, and configuration failures are not.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) || errors.Is(err, ErrProvider)
}
