package provider

import (
	"github.com/aurelianware/claimsentry/internal/config"
)

// New creates a suggestion provider from the configuration: the local
// simulated provider when simulated mode is selected, otherwise the
// rate-gated remote provider. Missing remote configuration fails here, at
// construction, not at call time.
func New(cfg config.Config) (Provider, error) {
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UseSimulated {
		return NewSimulatedProvider(), nil
	}

	return NewRemoteProvider(cfg), nil
}
