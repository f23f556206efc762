package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledProvider rate-limits calls to the underlying provider. Model
// service calls are billable and rate-limited upstream, so the limiter
// smooths request bursts across windows and documents.
type ThrottledProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewThrottledProvider wraps a provider with a requests-per-second limit.
// A non-positive limit returns the provider unwrapped.
func NewThrottledProvider(inner Provider, requestsPerSecond float64) Provider {
	if requestsPerSecond <= 0 {
		return inner
	}
	return &ThrottledProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Name returns the underlying provider name
func (p *ThrottledProvider) Name() string {
	return p.inner.Name()
}

// Complete waits for rate limit clearance, then delegates
func (p *ThrottledProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.Complete(ctx, prompt)
}
