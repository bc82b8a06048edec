package main

import (
	"errors"
	"time"

	"github.com/spf13/viper"

	"github.com/aurelianware/claimsentry/internal/common"
	"github.com/aurelianware/claimsentry/internal/config"
)

// pipelineConfig assembles the explicit configuration value object from
// viper. Defaults follow the documented option list.
func pipelineConfig() config.Config {
	cfg := config.Default()

	if viper.IsSet("provider.simulated") {
		cfg.UseSimulated = viper.GetBool("provider.simulated")
	}
	cfg.RemoteEndpoint = viper.GetString("provider.remote_endpoint")
	cfg.RemoteCredential = viper.GetString("provider.remote_credential_ref")
	cfg.RemoteModel = viper.GetString("provider.remote_model")

	if v := viper.GetInt("provider.max_output_tokens"); v > 0 {
		cfg.MaxOutputTokens = v
	}
	// IsSet, not zero-value detection: randomness zero is a legitimate
	// operator choice.
	if viper.IsSet("provider.response_randomness") {
		cfg.ResponseRandomness = viper.GetFloat64("provider.response_randomness")
	}
	if v := viper.GetInt("provider.minimum_interval_ms"); v > 0 {
		cfg.MinimumInterval = time.Duration(v) * time.Millisecond
	}
	if v := viper.GetInt("provider.request_timeout_ms"); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Millisecond
	}
	if viper.IsSet("metrics.enabled") {
		cfg.MetricsEnabled = viper.GetBool("metrics.enabled")
	}

	return cfg
}

// failureKind names the taxonomy kind of a resolution failure for
// machine-readable CLI output.
func failureKind(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingField):
		return "validation"
	case errors.Is(err, common.ErrRedactionIncomplete):
		return "redaction-incomplete"
	case errors.Is(err, common.ErrRateLimit):
		return "rate-limit"
	case errors.Is(err, common.ErrProvider):
		return "provider"
	case errors.Is(err, common.ErrMissingConfig):
		return "configuration"
	default:
		return "internal"
	}
}
