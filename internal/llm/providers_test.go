// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantcoder/quantcoder/pkg/types"
)

func testLLMConfig(provider, apiKey string) types.LLMConfig {
	return types.LLMConfig{Provider: provider, APIKey: apiKey, Model: "test-model"}
}

func TestNewProviderBoundsRequestsWithTimeout(t *testing.T) {
	p, err := NewProvider(testLLMConfig("openai", "sk-1"))
	require.NoError(t, err)
	op, ok := p.(*OpenAIProvider)
	require.True(t, ok)
	require.NotNil(t, op.Client)
	assert.Equal(t, defaultTimeout, op.Client.Timeout)

	cfg := testLLMConfig("anthropic", "sk-ant-1")
	cfg.Timeout = 5 * time.Second
	p, err = NewProvider(cfg)
	require.NoError(t, err)
	ap, ok := p.(*AnthropicProvider)
	require.True(t, ok)
	require.NotNil(t, ap.Client)
	assert.Equal(t, 5*time.Second, ap.Client.Timeout)
}

func TestOpenAIComplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-2024-11-20", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(openAIResponse{
			Model:   "gpt-4o-2024-11-20",
			Choices: []openAIChoice{{Message: openAIMessage{Role: "assistant", Content: "  generated text  "}}},
			Usage:   openAIUsage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
		})
	}))
	defer ts.Close()

	old := openAIAPIURL
	openAIAPIURL = ts.URL
	defer func() { openAIAPIURL = old }()

	p := &OpenAIProvider{APIKey: "sk-test", Client: ts.Client()}
	resp, err := p.Complete(context.Background(), "hello", Options{Model: "gpt-4o-2024-11-20", MaxTokens: 256})
	require.NoError(t, err)

	assert.Equal(t, "generated text", resp.Text)
	assert.Equal(t, 100, resp.PromptTokens)
	assert.Equal(t, 20, resp.CompletionTokens)
	assert.Equal(t, 120, resp.TotalTokens)
}

func TestOpenAICompleteAuthError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key"}}`))
	}))
	defer ts.Close()

	old := openAIAPIURL
	openAIAPIURL = ts.URL
	defer func() { openAIAPIURL = old }()

	p := &OpenAIProvider{APIKey: "sk-wrong", Client: ts.Client()}
	_, err := p.Complete(context.Background(), "hello", Options{Model: "m"})
	assert.ErrorIs(t, err, ErrAuth)
}

func TestAnthropicComplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// max_tokens is mandatory; the provider must default it.
		assert.Equal(t, 4096, req.MaxTokens)

		json.NewEncoder(w).Encode(anthropicResponse{
			Model: "claude-sonnet-4-5-20250929",
			Content: []anthropicContent{
				{Type: "text", Text: "part one "},
				{Type: "text", Text: "part two"},
			},
			Usage: anthropicUsage{InputTokens: 50, OutputTokens: 25},
		})
	}))
	defer ts.Close()

	old := anthropicAPIURL
	anthropicAPIURL = ts.URL
	defer func() { anthropicAPIURL = old }()

	p := &AnthropicProvider{APIKey: "sk-ant-test", Client: ts.Client()}
	resp, err := p.Complete(context.Background(), "hello", Options{Model: "claude-sonnet-4-5-20250929"})
	require.NoError(t, err)

	assert.Equal(t, "part one part two", resp.Text)
	assert.Equal(t, 50, resp.PromptTokens)
	assert.Equal(t, 25, resp.CompletionTokens)
	assert.Equal(t, 75, resp.TotalTokens)
}

func TestAnthropicCompleteRateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
	}))
	defer ts.Close()

	old := anthropicAPIURL
	anthropicAPIURL = ts.URL
	defer func() { anthropicAPIURL = old }()

	p := &AnthropicProvider{APIKey: "k", Client: ts.Client()}
	_, err := p.Complete(context.Background(), "hello", Options{Model: "m"})
	require.Error(t, err)
	assert.True(t, retryable(err), "429 must be classified as retryable")
	assert.NotErrorIs(t, err, ErrAuth)
}
