package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aurelianware/claimsentry/internal/common"
	"github.com/aurelianware/claimsentry/internal/model"
)

// maxBodyBytes bounds inbound payload size.
const maxBodyBytes = 1 << 20

// errorResponse is the wire shape for typed failures. Messages carry field
// names, paths, and pattern names only; payload values never appear.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleResolve runs one resolution for a posted rejection record.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var rec model.RejectionRecord

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "malformed-request", Message: "request body is not a valid rejection record"})
		return
	}

	outcome, err := s.resolver.Resolve(r.Context(), rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// handleMetricsSnapshot returns the current counters.
func (s *Server) handleMetricsSnapshot(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "metrics-disabled", Message: "metrics collection is disabled"})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleMetricsReset zeroes the counters. Explicit operator action.
func (s *Server) handleMetricsReset(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "metrics-disabled", Message: "metrics collection is disabled"})
		return
	}
	s.store.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps the failure taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "validation", Message: err.Error()})
	case errors.Is(err, common.ErrRateLimit):
		var rateErr *common.RateLimitError
		if errors.As(err, &rateErr) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())+1))
		}
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Kind: "rate-limit", Message: err.Error()})
	case errors.Is(err, common.ErrRedactionIncomplete):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "redaction-incomplete", Message: err.Error()})
	case errors.Is(err, common.ErrProvider):
		writeJSON(w, http.StatusBadGateway, errorResponse{Kind: "provider", Message: err.Error()})
	case errors.Is(err, common.ErrMissingConfig):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "configuration", Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: "resolution failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
