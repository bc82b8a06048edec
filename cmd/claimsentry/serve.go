package main

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aurelianware/claimsentry/internal/metrics"
	"github.com/aurelianware/claimsentry/internal/pipeline"
	"github.com/aurelianware/claimsentry/internal/provider"
	"github.com/aurelianware/claimsentry/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		addr string
		rps  float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP ingestion server",
		Long: `Serve exposes the resolution pipeline over HTTP: POST /v1/resolutions
accepts a rejection record and returns the outcome or a typed failure.
Operational endpoints: GET /v1/metrics, POST /v1/metrics/reset,
GET /metrics (Prometheus), GET /healthz.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := pipelineConfig()

			p, err := provider.New(cfg)
			if err != nil {
				return err
			}

			var store *metrics.Store
			var metricsHandler http.Handler
			if cfg.MetricsEnabled {
				store = metrics.NewStore()
				registry := prometheus.NewRegistry()
				if err := store.EnablePrometheus(registry); err != nil {
					return err
				}
				metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
			}

			srv := server.New(server.Options{
				Resolver:          pipeline.New(p, store),
				Store:             store,
				MetricsHandler:    metricsHandler,
				RequestsPerSecond: rps,
			})

			slog.Info("Starting ingestion server", "addr", addr, "simulated", cfg.UseSimulated)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Float64Var(&rps, "rps", 0, "transport-level request rate limit (0 disables)")

	return cmd
}
