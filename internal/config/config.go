// Package config defines the explicit configuration value object for the
// resolution pipeline. It is constructed once by the caller (CLI flags,
// config file) and injected; no component reads environment state.
package config

import (
	"fmt"
	"time"

	"github.com/aurelianware/claimsentry/internal/common"
)

// Defaults for optional settings.
const (
	DefaultMaxOutputTokens    = 500
	DefaultResponseRandomness = 0.3
	DefaultMinimumInterval    = 4 * time.Second
	DefaultRequestTimeout     = 30 * time.Second
)

// Config holds every recognized pipeline option. Remote fields are
// required only when simulated mode is disabled.
type Config struct {
	// UseSimulated selects the local deterministic provider. No external
	// call ever occurs while it is set.
	UseSimulated bool

	// RemoteEndpoint is the base URL of the external completion service.
	RemoteEndpoint string
	// RemoteCredential is a reference to the bearer credential for the
	// remote service. It is never logged.
	RemoteCredential string
	// RemoteModel names the completion model to request.
	RemoteModel string

	// MaxOutputTokens bounds the remote response size.
	MaxOutputTokens int
	// ResponseRandomness controls variability of remote suggestions,
	// within [0, 2]. Zero is a valid setting (fully deterministic output);
	// Default supplies 0.3, and Normalize never overwrites an explicit
	// zero.
	ResponseRandomness float64
	// MinimumInterval is the rate-gate spacing between remote calls.
	MinimumInterval time.Duration
	// RequestTimeout bounds a single remote call.
	RequestTimeout time.Duration

	// MetricsEnabled controls whether the metrics store is updated.
	MetricsEnabled bool
}

// Default returns a configuration with documented defaults applied and
// simulated mode selected.
func Default() Config {
	return Config{
		UseSimulated:       true,
		MaxOutputTokens:    DefaultMaxOutputTokens,
		ResponseRandomness: DefaultResponseRandomness,
		MinimumInterval:    DefaultMinimumInterval,
		RequestTimeout:     DefaultRequestTimeout,
		MetricsEnabled:     true,
	}
}

// Normalize fills zero values with documented defaults.
// ResponseRandomness is left alone: zero is a meaningful setting there,
// so its default comes from Default (or the config binding layer), never
// from zero-value detection.
func (c *Config) Normalize() {
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.MinimumInterval <= 0 {
		c.MinimumInterval = DefaultMinimumInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Validate reports a ConfigurationError when remote mode is requested
// without the fields it needs, and rejects out-of-range option values.
// Validation happens at construction time, not at call time.
func (c Config) Validate() error {
	if c.ResponseRandomness < 0 || c.ResponseRandomness > 2 {
		return fmt.Errorf("%w: response randomness must be within [0, 2]", common.ErrInvalidConfig)
	}

	if c.UseSimulated {
		return nil
	}

	switch {
	case c.RemoteEndpoint == "":
		return &common.ConfigurationError{Reason: "remote endpoint is required when simulated mode is disabled"}
	case c.RemoteCredential == "":
		return &common.ConfigurationError{Reason: "remote credential reference is required when simulated mode is disabled"}
	case c.RemoteModel == "":
		return &common.ConfigurationError{Reason: "remote model name is required when simulated mode is disabled"}
	}

	return nil
}
