package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"

	"github.com/claimsift/claimsift/internal/model"
)

func TestBuildConfig_Defaults(t *testing.T) {
	cfg := buildConfig()

	if cfg.Chunking.WindowSize != 8000 {
		t.Errorf("window size = %d, want 8000", cfg.Chunking.WindowSize)
	}
	if cfg.Chunking.Overlap != 500 {
		t.Errorf("overlap = %d, want 500", cfg.Chunking.Overlap)
	}
	if cfg.Extraction.Strategy != model.StrategyPattern {
		t.Errorf("strategy = %q, want pattern", cfg.Extraction.Strategy)
	}
	if cfg.LLM.MaxAttempts != 3 {
		t.Errorf("max attempts = %d, want 3", cfg.LLM.MaxAttempts)
	}
	if cfg.Checkpoint.Cadence != 5 {
		t.Errorf("cadence = %d, want 5", cfg.Checkpoint.Cadence)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
}

func TestBuildConfig_ConfigFileOverridesDefaults(t *testing.T) {
	yamlCfg := []byte(`
chunking:
  window_size: 4000
extraction:
  strategy: both
llm:
  max_attempts: 5
cache:
  enabled: false
`)
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewReader(yamlCfg)); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = viper.ReadConfig(bytes.NewReader(nil)) })

	cfg := buildConfig()

	if cfg.Chunking.WindowSize != 4000 {
		t.Errorf("window size = %d, want 4000 from the config file", cfg.Chunking.WindowSize)
	}
	if cfg.Extraction.Strategy != model.StrategyBoth {
		t.Errorf("strategy = %q, want both from the config file", cfg.Extraction.Strategy)
	}
	if cfg.LLM.MaxAttempts != 5 {
		t.Errorf("max attempts = %d, want 5 from the config file", cfg.LLM.MaxAttempts)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by the config file")
	}
	// Keys the file does not set keep their defaults
	if cfg.Checkpoint.Cadence != 5 {
		t.Errorf("cadence = %d, want default 5", cfg.Checkpoint.Cadence)
	}
}

func TestBuildConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLAIMSIFT_CHUNKING_WINDOW_SIZE", "6000")
	t.Setenv("CLAIMSIFT_EXTRACTION_MIN_DOC_LENGTH", "250")
	initConfig()

	cfg := buildConfig()

	if cfg.Chunking.WindowSize != 6000 {
		t.Errorf("window size = %d, want 6000 from the environment", cfg.Chunking.WindowSize)
	}
	if cfg.Extraction.MinDocLength != 250 {
		t.Errorf("min doc length = %d, want 250 from the environment", cfg.Extraction.MinDocLength)
	}
}

// Runs last in this file: setting a flag marks it changed for the rest
// of the test binary.
func TestBuildConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLAIMSIFT_CHUNKING_WINDOW_SIZE", "6000")
	initConfig()

	if err := analyzeCmd.Flags().Set("window", "9000"); err != nil {
		t.Fatal(err)
	}

	cfg := buildConfig()
	if cfg.Chunking.WindowSize != 9000 {
		t.Errorf("window size = %d, want 9000 from the flag", cfg.Chunking.WindowSize)
	}
}
