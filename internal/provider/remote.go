package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aurelianware/claimsentry/internal/common"
	"github.com/aurelianware/claimsentry/internal/config"
	"github.com/aurelianware/claimsentry/internal/model"
)

// Suggestion count bounds enforced on remote responses.
const (
	minSuggestions = 3
	maxSuggestions = 5
)

// RemoteProvider calls an external chat-completion service for suggestion
// generation. Every call passes through the shared RateGate first and is
// bounded by the caller's context deadline plus the configured request
// timeout. It performs no internal retries.
type RemoteProvider struct {
	httpClient  *http.Client
	gate        *RateGate
	endpoint    string
	credential  string
	model       string
	temperature float64
	maxTokens   int
}

// NewRemoteProvider creates a remote provider from an already-validated
// configuration, with its own rate gate.
func NewRemoteProvider(cfg config.Config) *RemoteProvider {
	return NewRemoteProviderWithGate(cfg, NewRateGate(cfg.MinimumInterval))
}

// NewRemoteProviderWithGate creates a remote provider sharing an existing
// gate, for deployments running several pipelines against one credential.
func NewRemoteProviderWithGate(cfg config.Config, gate *RateGate) *RemoteProvider {
	return &RemoteProvider{
		endpoint:    cfg.RemoteEndpoint,
		credential:  cfg.RemoteCredential,
		model:       cfg.RemoteModel,
		temperature: cfg.ResponseRandomness,
		maxTokens:   cfg.MaxOutputTokens,
		gate:        gate,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Suggest requests remediation suggestions from the remote service.
// Denied admission surfaces as RateLimitError without any network
// activity; every remote failure mode folds into ProviderError.
func (p *RemoteProvider) Suggest(ctx context.Context, scenario model.ScenarioCategory, rec model.RedactedRecord) (Suggestion, error) {
	ok, retryAfter := p.gate.TryAcquire()
	if !ok {
		return Suggestion{}, &common.RateLimitError{RetryAfter: retryAfter}
	}

	requestBody := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildPrompt(scenario, rec)},
		},
		"temperature": p.temperature,
		"max_tokens":  p.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.credential)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		// Status only: response bodies from the boundary never enter
		// error messages or logs.
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("completion service returned status %d", resp.StatusCode)}
	}

	var response completionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if len(response.Choices) == 0 {
		return Suggestion{}, &common.ProviderError{Err: fmt.Errorf("no completion choices returned")}
	}

	suggestion, err := parseSuggestions(response.Choices[0].Message.Content)
	if err != nil {
		return Suggestion{}, &common.ProviderError{Err: err}
	}

	suggestion.TokenCount = response.Usage.TotalTokens
	suggestion.Model = response.Model

	return suggestion, nil
}

// parseSuggestions extracts and bounds the suggestion list from the model
// output. More than five suggestions are truncated; fewer than three is an
// unusable response.
func parseSuggestions(content string) (Suggestion, error) {
	var jsonResp struct {
		Suggestions []string `json:"suggestions"`
		Confidence  float64  `json:"confidence"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(jsonResp.Suggestions) < minSuggestions {
		return Suggestion{}, fmt.Errorf("expected at least %d suggestions, got %d", minSuggestions, len(jsonResp.Suggestions))
	}
	if len(jsonResp.Suggestions) > maxSuggestions {
		jsonResp.Suggestions = jsonResp.Suggestions[:maxSuggestions]
	}

	confidence := jsonResp.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return Suggestion{
		Suggestions: jsonResp.Suggestions,
		Confidence:  confidence,
	}, nil
}

// completionResponse is the chat-completion wire format.
type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
