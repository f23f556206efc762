package llm

import (
	"context"
)

// Provider defines the interface to an external text-generation service.
// Implementations must honor context cancellation; retry and backoff are
// layered on top by RetryPolicy, not inside providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw textual response
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider, supplied via environment variable
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout per API request, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // disabled by default
		Timeout:   60,
		MaxTokens: 4096,
	}
}

const systemPrompt = "You are a research assistant extracting structured records from Medicaid procurement documents. You respond only with JSON."
