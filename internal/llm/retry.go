package llm

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// RetryPolicy wraps a single external call with bounded retries and
// exponential backoff. The policy is a plain value so it can be unit
// tested with a stubbed call and no network dependency.
type RetryPolicy struct {
	// MaxAttempts bounds the total number of attempts (not re-attempts)
	MaxAttempts int

	// BaseDelay is the backoff before the second attempt; it doubles
	// after every failed attempt
	BaseDelay time.Duration

	// Jitter adds up to 25% random variation to each delay
	Jitter bool
}

// DefaultRetryPolicy returns the standard policy: 3 attempts, 1s base delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Do invokes call until it succeeds or the attempt bound is exhausted.
// Worst-case added latency is BaseDelay * (2^(MaxAttempts-1) - 1).
func (p RetryPolicy) Do(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := p.sleep(ctx, attempt); err != nil {
				return "", err
			}
		}

		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("exhausted %d attempts: %w", attempts, lastErr)
}

// sleep waits out the backoff before the given attempt, honoring
// cancellation
func (p RetryPolicy) sleep(ctx context.Context, attempt int) error {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}

	delay := base << (attempt - 1)
	if p.Jitter {
		delay += time.Duration(rand.Int63n(int64(delay)/4 + 1))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
