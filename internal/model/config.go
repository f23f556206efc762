package model

import (
	"fmt"
	"time"
)

// Strategy selects which extractors run per window
type Strategy string

const (
	StrategyPattern Strategy = "pattern"
	StrategyModel   Strategy = "model"
	StrategyBoth    Strategy = "both"
)

// Config holds the complete run configuration
type Config struct {
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	LLM         LLMConfig         `yaml:"llm"`
	Checkpoint  CheckpointConfig  `yaml:"checkpoint"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// ChunkingConfig bounds the extraction-unit size
type ChunkingConfig struct {
	WindowSize int `yaml:"window_size"`
	Overlap    int `yaml:"overlap"`
}

// ExtractionConfig controls strategy selection and admission thresholds
type ExtractionConfig struct {
	Strategy     Strategy `yaml:"strategy"`
	MinDocLength int      `yaml:"min_doc_length"` // documents shorter than this are skipped
	LeftRadius   int      `yaml:"left_radius"`    // excerpt context chars before a pattern match
	RightRadius  int      `yaml:"right_radius"`   // excerpt context chars after a pattern match
}

// LLMConfig configures the external model service
type LLMConfig struct {
	Provider          string        `yaml:"provider"` // openai, anthropic, "" (disabled)
	Model             string        `yaml:"model"`
	APIKey            string        `yaml:"-"` // from environment only
	BaseURL           string        `yaml:"base_url"`
	Timeout           int           `yaml:"timeout"` // seconds per request
	MaxTokens         int           `yaml:"max_tokens"`
	MaxAttempts       int           `yaml:"max_attempts"`
	BackoffBase       time.Duration `yaml:"backoff_base"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// CheckpointConfig controls periodic result persistence
type CheckpointConfig struct {
	Cadence int    `yaml:"cadence"` // checkpoint every N documents
	Dir     string `yaml:"dir"`
	SQLite  bool   `yaml:"sqlite"` // also write a SQLite checkpoint database
}

// ConcurrencyConfig controls document-level parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig controls LLM response caching
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	TTL     int    `yaml:"ttl_hours"`
}

// OutputConfig controls operator-facing output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			WindowSize: 8000,
			Overlap:    500,
		},
		Extraction: ExtractionConfig{
			Strategy:     StrategyPattern,
			MinDocLength: 100,
			LeftRadius:   200,
			RightRadius:  150,
		},
		LLM: LLMConfig{
			Provider:          "", // disabled by default
			Timeout:           60,
			MaxTokens:         4096,
			MaxAttempts:       3,
			BackoffBase:       time.Second,
			RequestsPerSecond: 1,
		},
		Checkpoint: CheckpointConfig{
			Cadence: 5,
			Dir:     "./analysis_outputs",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * 7,
		},
	}
}

// Validate rejects configuration errors before a run starts
func (c *Config) Validate() error {
	if c.Chunking.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.Chunking.WindowSize)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("overlap must be non-negative, got %d", c.Chunking.Overlap)
	}
	if c.Chunking.Overlap >= c.Chunking.WindowSize {
		return fmt.Errorf("overlap (%d) must be smaller than window size (%d)", c.Chunking.Overlap, c.Chunking.WindowSize)
	}
	switch c.Extraction.Strategy {
	case StrategyPattern, StrategyModel, StrategyBoth:
	default:
		return fmt.Errorf("unknown extraction strategy: %q (supported: pattern, model, both)", c.Extraction.Strategy)
	}
	if c.LLM.MaxAttempts <= 0 {
		return fmt.Errorf("retry bound must be positive, got %d", c.LLM.MaxAttempts)
	}
	if c.Checkpoint.Cadence <= 0 {
		return fmt.Errorf("checkpoint cadence must be positive, got %d", c.Checkpoint.Cadence)
	}
	return nil
}
