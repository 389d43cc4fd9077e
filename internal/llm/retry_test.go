// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

// flakyProvider fails a fixed number of calls before succeeding.
type flakyProvider struct {
	failures int
	err      error
	calls    int
}

func (p *flakyProvider) Name() string { return "flaky" }

func (p *flakyProvider) Complete(_ context.Context, _ string, _ Options) (Response, error) {
	p.calls++
	if p.calls <= p.failures {
		return Response{}, p.err
	}
	return Response{Text: "ok", Model: "test-model", TotalTokens: 10}, nil
}

func TestCompleteWithRetry_ImmediateSuccess(t *testing.T) {
	p := &flakyProvider{}
	resp, err := CompleteWithRetry(context.Background(), p, "prompt", Options{}, 3)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 1, p.calls)
}

func TestCompleteWithRetry_TransientThenSuccess(t *testing.T) {
	p := &flakyProvider{failures: 2, err: &apiError{status: 429, body: "rate limited"}}
	resp, err := CompleteWithRetry(context.Background(), p, "prompt", Options{}, 3)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 3, p.calls)
}

func TestCompleteWithRetry_ServerErrorsRetried(t *testing.T) {
	p := &flakyProvider{failures: 1, err: &apiError{status: 503, body: "overloaded"}}
	_, err := CompleteWithRetry(context.Background(), p, "prompt", Options{}, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestCompleteWithRetry_AuthNotRetried(t *testing.T) {
	p := &flakyProvider{failures: 10, err: classify(&apiError{status: 401, body: "bad key"})}
	_, err := CompleteWithRetry(context.Background(), p, "prompt", Options{}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, 1, p.calls, "auth failures must not be retried")
}

func TestCompleteWithRetry_ClientErrorNotRetried(t *testing.T) {
	p := &flakyProvider{failures: 10, err: &apiError{status: 400, body: "bad request"}}
	_, err := CompleteWithRetry(context.Background(), p, "prompt", Options{}, 3)
	require.Error(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestCompleteWithRetry_Exhaustion(t *testing.T) {
	p := &flakyProvider{failures: 10, err: &apiError{status: 429, body: "rate limited"}}
	_, err := CompleteWithRetry(context.Background(), p, "prompt", Options{}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	// 1 initial + 2 retries = 3 total calls.
	assert.Equal(t, 3, p.calls)
}

func TestCompleteWithRetry_ContextCancelled(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := &flakyProvider{failures: 10, err: &apiError{status: 500, body: "boom"}}
	_, err := CompleteWithRetry(ctx, p, "prompt", Options{}, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantName string
		wantErr  error
	}{
		{"openai default", "", "sk-1", "openai", nil},
		{"openai explicit", "openai", "sk-1", "openai", nil},
		{"anthropic", "anthropic", "sk-ant-1", "anthropic", nil},
		{"missing key", "openai", "", "", ErrAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(testLLMConfig(tt.provider, tt.apiKey))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(testLLMConfig("llama-at-home", "key"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuth)
}
