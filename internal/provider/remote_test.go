package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelianware/claimsentry/internal/common"
	"github.com/aurelianware/claimsentry/internal/config"
	"github.com/aurelianware/claimsentry/internal/model"
)

func remoteConfig(endpoint string) config.Config {
	return config.Config{
		RemoteEndpoint:     endpoint,
		RemoteCredential:   "test-credential",
		RemoteModel:        "test-model",
		MaxOutputTokens:    500,
		ResponseRandomness: 0.3,
		RequestTimeout:     5 * time.Second,
	}
}

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":    "cmpl-1",
		"model": "test-model",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150},
	})
	require.NoError(t, err)
	return body
}

func TestRemoteProviderSuggest(t *testing.T) {
	rec := model.RedactedRecord{
		TransactionID:        "tx-1",
		RejectionCode:        "PA001",
		RejectionDescription: "Prior authorization required",
	}

	t.Run("successful call", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, "Bearer test-credential", r.Header.Get("Authorization"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req["model"])

			content := `{"suggestions":["Check the portal","Request retro auth","Attach the auth number","Route through the PA workflow"],"confidence":0.82}`
			_, _ = w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		got, err := p.Suggest(context.Background(), model.ScenarioPriorAuthRequired, rec)
		require.NoError(t, err)

		assert.Len(t, got.Suggestions, 4)
		assert.InDelta(t, 0.82, got.Confidence, 0.0001)
		assert.Equal(t, 150, got.TokenCount)
		assert.Equal(t, "test-model", got.Model)
		assert.False(t, got.Simulated)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("markdown wrapped content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			content := "```json\n{\"suggestions\":[\"a\",\"b\",\"c\"],\"confidence\":0.5}\n```"
			_, _ = w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		got, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.NoError(t, err)
		assert.Len(t, got.Suggestions, 3)
	})

	t.Run("excess suggestions are truncated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			content := `{"suggestions":["1","2","3","4","5","6","7"],"confidence":1.4}`
			_, _ = w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		got, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.NoError(t, err)
		assert.Len(t, got.Suggestions, 5)
		assert.Equal(t, 1.0, got.Confidence, "confidence is clamped into [0,1]")
	})

	t.Run("too few suggestions is a provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			content := `{"suggestions":["only one"],"confidence":0.9}`
			_, _ = w.Write(completionBody(t, content))
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		_, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrProvider)
	})

	t.Run("service error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		_, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrProvider)
		assert.NotContains(t, err.Error(), "upstream exploded", "response bodies stay out of error messages")
	})

	t.Run("unparseable content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(completionBody(t, "here are some thoughts about the claim"))
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		_, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrProvider)
	})

	t.Run("timeout surfaces as provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write(completionBody(t, `{"suggestions":["a","b","c"],"confidence":0.5}`))
		}))
		defer srv.Close()

		cfg := remoteConfig(srv.URL)
		cfg.RequestTimeout = 20 * time.Millisecond
		p := NewRemoteProviderWithGate(cfg, newRateGateWithClock(0, time.Now))

		_, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrProvider)
	})

	t.Run("rate gate denial makes no network call", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			_, _ = w.Write(completionBody(t, `{"suggestions":["a","b","c"],"confidence":0.5}`))
		}))
		defer srv.Close()

		gate := NewRateGate(time.Minute)
		ok, _ := gate.TryAcquire()
		require.True(t, ok)

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), gate)

		_, err := p.Suggest(context.Background(), model.ScenarioGeneral, rec)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrRateLimit)

		var rateErr *common.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Greater(t, rateErr.RetryAfter, time.Duration(0))

		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("prompt carries only redacted fields", func(t *testing.T) {
		var prompt string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Messages []struct {
					Content string `json:"content"`
				} `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Messages, 2)
			prompt = req.Messages[1].Content
			_, _ = w.Write(completionBody(t, `{"suggestions":["a","b","c"],"confidence":0.5}`))
		}))
		defer srv.Close()

		p := NewRemoteProviderWithGate(remoteConfig(srv.URL), newRateGateWithClock(0, time.Now))

		redacted := model.RedactedRecord{
			TransactionID:        "tx-1",
			RejectionCode:        "ID001",
			RejectionDescription: "Invalid member ID format",
			MemberID:             "[REDACTED]",
		}
		_, err := p.Suggest(context.Background(), model.ScenarioMemberIDInvalid, redacted)
		require.NoError(t, err)

		assert.Contains(t, prompt, "ID001")
		assert.Contains(t, prompt, "Invalid member ID format")
		assert.NotContains(t, prompt, "123-45-6789")
	})
}
