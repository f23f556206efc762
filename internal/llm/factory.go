package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// Returns (nil, nil) when no provider is configured; model extraction is
// disabled in that case and pattern-only mode continues to function.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}

// ResolveAPIKey fills the API key for the configured provider from its
// environment variable. When no provider is set, one is inferred from
// whichever key variable is present; absence of both leaves model
// extraction disabled.
func ResolveAPIKey(config *Config) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			config.Provider = "anthropic"
			config.APIKey = key
		} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			config.Provider = "openai"
			config.APIKey = key
		}
	}
}
