package llm

import (
	"context"
	"time"

	"github.com/claimsift/claimsift/internal/cache"
)

// CachedProvider serves repeated prompts from a cache instead of
// re-billing the model service. Retries and throttling sit outside this
// wrapper, so only successful responses are cached.
type CachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps a provider with a response cache
func NewCachedProvider(inner Provider, store cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{inner: inner, store: store, ttl: ttl}
}

// Name returns the underlying provider name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Complete returns the cached response for the prompt when present,
// otherwise calls through and caches the result
func (p *CachedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	key := cache.PromptKey(prompt)
	if data, found := p.store.Get(key); found {
		return string(data), nil
	}

	out, err := p.inner.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	_ = p.store.Set(key, []byte(out), p.ttl)
	return out, nil
}
