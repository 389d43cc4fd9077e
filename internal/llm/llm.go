// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the single integration point for remote language
// models. Providers implement a uniform Complete call; everything else
// in the pipeline is isolated from the provider's API shape.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/quantcoder/quantcoder/pkg/types"
)

var (
	// ErrUnavailable is returned after transient-failure retries are
	// exhausted.
	ErrUnavailable = errors.New("LLM unavailable")

	// ErrAuth is returned for invalid credentials. Never retried.
	ErrAuth = errors.New("LLM authentication failed")
)

// Options are the per-call completion parameters.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Response is the uniform result of one completion call.
type Response struct {
	// Text is the generated completion.
	Text string

	// Model is the model name the provider reports.
	Model string

	// PromptTokens, CompletionTokens, and TotalTokens are the billed
	// token counts for the call.
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Provider performs a single blocking completion call against one model
// provider. Implementations return apiError for HTTP-level failures so
// the retry combinator can classify them.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, opts Options) (Response, error)
}

// Recorder receives token usage after every successful call. The usage
// ledger implements it; a nil Recorder is a no-op.
type Recorder interface {
	Record(stage, provider string, resp Response) error
}

// defaultTimeout bounds a completion request when the config does not.
const defaultTimeout = 120 * time.Second

// NewProvider builds the configured provider with a timeout-bounded
// HTTP client, so a hung provider can never stall the pipeline. Provider
// selection happens once at startup; call sites only ever see the
// Provider interface.
func NewProvider(cfg types.LLMConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured for provider %q", ErrAuth, cfg.Provider)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case "", "openai":
		return &OpenAIProvider{APIKey: cfg.APIKey, Client: client}, nil
	case "anthropic":
		return &AnthropicProvider{APIKey: cfg.APIKey, Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// apiError is an HTTP-level provider failure carrying the status code
// for retry classification.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("API returned HTTP %d: %s", e.status, e.body)
}

// classify maps a provider error onto the package sentinels: 401/403
// become ErrAuth; everything else is left as-is for the retry predicate.
func classify(err error) error {
	var ae *apiError
	if errors.As(err, &ae) && (ae.status == 401 || ae.status == 403) {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return err
}

// retryable reports whether the error is worth another attempt:
// rate limits, server errors, and transport failures are; auth and
// client errors are not.
func retryable(err error) bool {
	if errors.Is(err, ErrAuth) {
		return false
	}
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status == 429 || ae.status >= 500
	}
	// Transport-level failure (connection refused, timeout).
	return true
}
