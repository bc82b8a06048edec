// Package server is the HTTP ingestion adapter around the resolution
// pipeline. It decodes rejection records, maps the failure taxonomy onto
// status codes, and exposes operational metrics. The pipeline itself stays
// transport-free.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/aurelianware/claimsentry/internal/metrics"
	"github.com/aurelianware/claimsentry/internal/pipeline"
)

// Options configures the server.
type Options struct {
	Resolver *pipeline.Resolver
	Store    *metrics.Store
	// MetricsHandler serves the Prometheus exposition endpoint; nil
	// disables /metrics.
	MetricsHandler http.Handler
	// RequestsPerSecond bounds inbound request rate across all clients.
	// Zero disables the limiter. This is transport backpressure, separate
	// from the pipeline's remote-call rate gate.
	RequestsPerSecond float64
}

// Server routes ingestion and operational endpoints.
type Server struct {
	resolver *pipeline.Resolver
	store    *metrics.Store
	limiter  *rate.Limiter
	router   chi.Router
}

// New creates the HTTP server and its routes.
func New(opts Options) *Server {
	s := &Server{
		resolver: opts.Resolver,
		store:    opts.Store,
	}
	if opts.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), int(opts.RequestsPerSecond)+1)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.throttle)

	r.Get("/healthz", handleHealth)
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolutions", s.handleResolve)
		r.Get("/metrics", s.handleMetricsSnapshot)
		r.Post("/metrics/reset", s.handleMetricsReset)
	})

	s.router = r
	return s
}

// Handler returns the root handler for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the listener fails or ctx is
// canceled. Cancellation drains in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestID tags each request with an id for correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// throttle applies transport-level backpressure.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
