// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// transient failures. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// CompleteWithRetry calls the provider and retries transient failures
// (rate limits, server errors, transport errors) with exponential
// backoff: RetryBaseDelay, 2x, 4x, ... Auth failures are returned
// immediately. After maxRetries additional attempts the last transient
// error is wrapped in ErrUnavailable. When maxRetries is <= 0 the
// default (3) is used. If the context is cancelled during a backoff
// wait, ctx.Err() is returned.
func CompleteWithRetry(ctx context.Context, p Provider, prompt string, opts Options, maxRetries int) (Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * RetryBaseDelay
			log.Debug().
				Str("provider", p.Name()).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("retrying LLM call")
			select {
			case <-ctx.Done():
				return Response{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := p.Complete(ctx, prompt, opts)
		if err == nil {
			return resp, nil
		}
		if !retryable(err) {
			return Response{}, err
		}
		lastErr = err
	}

	return Response{}, fmt.Errorf("%w: after %d retries: %v", ErrUnavailable, maxRetries, lastErr)
}
