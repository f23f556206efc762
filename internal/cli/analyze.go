package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/claimsift/claimsift/internal/checkpoint"
	"github.com/claimsift/claimsift/internal/corpus"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	noCache     bool
	stateFilter string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <corpus-dir>",
	Short: "Extract claims, commitments and partnerships from a document corpus",
	Long: `Analyze walks a corpus directory (one subdirectory per state), classifies
every document from its filename, chunks document text into overlapping
windows, and extracts structured records per window.

Results are checkpointed periodically, so an interrupted run keeps
everything extracted so far.

Example:
  claimsift analyze ./corpus
  claimsift analyze ./corpus --strategy both --llm-provider anthropic
  claimsift analyze ./corpus --state Georgia --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.String("strategy", "pattern", "extraction strategy (pattern, model, both)")
	flags.Int("window", 8000, "chunk window size in characters")
	flags.Int("overlap", 500, "chunk overlap in characters")
	flags.Int("min-length", 100, "skip documents shorter than this")
	flags.Int("workers", 1, "concurrent document workers")
	flags.StringVar(&stateFilter, "state", "", "restrict the run to one state directory")

	flags.String("llm-provider", "", "model provider for model/both strategies (openai, anthropic)")
	flags.String("llm-model", "", "model name (provider default when empty)")
	flags.Float64("rps", 1, "model requests per second")
	flags.Int("retries", 3, "model call attempts per window")

	flags.String("out", "./analysis_outputs", "checkpoint and output directory")
	flags.Bool("sqlite", false, "also checkpoint to a SQLite database")
	flags.Int("checkpoint-every", 5, "checkpoint after every N documents")

	flags.BoolVar(&noCache, "no-cache", false, "disable model response cache")
	flags.String("cache-dir", "", "persist model response cache on disk")

	// Flags override CLAIMSIFT_* env variables and the config file; the
	// flag defaults are the bottom of the hierarchy
	_ = viper.BindPFlag("extraction.strategy", flags.Lookup("strategy"))
	_ = viper.BindPFlag("chunking.window_size", flags.Lookup("window"))
	_ = viper.BindPFlag("chunking.overlap", flags.Lookup("overlap"))
	_ = viper.BindPFlag("extraction.min_doc_length", flags.Lookup("min-length"))
	_ = viper.BindPFlag("concurrency.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("llm.provider", flags.Lookup("llm-provider"))
	_ = viper.BindPFlag("llm.model", flags.Lookup("llm-model"))
	_ = viper.BindPFlag("llm.requests_per_second", flags.Lookup("rps"))
	_ = viper.BindPFlag("llm.max_attempts", flags.Lookup("retries"))
	_ = viper.BindPFlag("checkpoint.dir", flags.Lookup("out"))
	_ = viper.BindPFlag("checkpoint.sqlite", flags.Lookup("sqlite"))
	_ = viper.BindPFlag("checkpoint.cadence", flags.Lookup("checkpoint-every"))
	_ = viper.BindPFlag("cache.dir", flags.Lookup("cache-dir"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	baseDir := args[0]

	// Interruptible: first signal stops between documents, results so far
	// are checkpointed
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := buildConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	inv, err := corpus.NewScanner().Scan(baseDir)
	if err != nil {
		return fmt.Errorf("scan corpus: %w", err)
	}

	docs := inv.Documents
	if stateFilter != "" {
		docs = filterByState(docs, stateFilter)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found under %s", baseDir)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Corpus: %d documents across %d states\n", len(docs), len(inv.ByState))
		fmt.Fprintf(os.Stderr, "Strategy: %s\n", cfg.Extraction.Strategy)
		fmt.Fprintln(os.Stderr)
	}

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}

	start := time.Now()
	res, runErr := p.Run(ctx, docs)

	printRunSummary(res, time.Since(start))

	if runErr != nil {
		if runErr == context.Canceled {
			fmt.Fprintln(os.Stderr, "Interrupted; partial results checkpointed")
			return nil
		}
		return fmt.Errorf("analysis failed: %w", runErr)
	}
	return nil
}

// buildConfig assembles the run configuration from the viper hierarchy:
// flags over CLAIMSIFT_* env variables over the config file over defaults
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Chunking.WindowSize = viper.GetInt("chunking.window_size")
	cfg.Chunking.Overlap = viper.GetInt("chunking.overlap")
	cfg.Extraction.Strategy = model.Strategy(viper.GetString("extraction.strategy"))
	cfg.Extraction.MinDocLength = viper.GetInt("extraction.min_doc_length")
	cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	cfg.LLM.Provider = viper.GetString("llm.provider")
	cfg.LLM.Model = viper.GetString("llm.model")
	cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")
	cfg.LLM.MaxAttempts = viper.GetInt("llm.max_attempts")
	cfg.Checkpoint.Dir = viper.GetString("checkpoint.dir")
	cfg.Checkpoint.Cadence = viper.GetInt("checkpoint.cadence")
	cfg.Checkpoint.SQLite = viper.GetBool("checkpoint.sqlite")
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Output.Verbose = verbose
	return cfg
}

func buildStore(cfg *model.Config) (checkpoint.Store, error) {
	jsonStore, err := checkpoint.NewJSONStore(cfg.Checkpoint.Dir)
	if err != nil {
		return nil, err
	}
	if !cfg.Checkpoint.SQLite {
		return jsonStore, nil
	}

	dbPath := filepath.Join(cfg.Checkpoint.Dir, "claimsift.db")
	sqlStore, err := checkpoint.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return checkpoint.NewMultiStore(jsonStore, sqlStore), nil
}

func filterByState(docs []corpus.Document, state string) []corpus.Document {
	var out []corpus.Document
	for _, d := range docs {
		if d.Metadata.State == state {
			out = append(out, d)
		}
	}
	return out
}

func printRunSummary(res *pipeline.RunResult, elapsed time.Duration) {
	fmt.Printf("Run %s finished in %s\n", res.RunID, elapsed.Round(time.Second))
	fmt.Printf("  Documents processed: %d\n", res.Stats.Processed)
	fmt.Printf("  Documents skipped:   %d\n", len(res.Stats.Skipped))
	for _, s := range res.Stats.Skipped {
		fmt.Printf("    - %s (%s)\n", s.DocumentID, s.Reason)
	}
	fmt.Printf("  Claims:       %d\n", len(res.Claims))
	fmt.Printf("  Commitments:  %d\n", len(res.Commitments))
	fmt.Printf("  Partnerships: %d\n", len(res.Partnerships))
	fmt.Printf("  Records by method: pattern=%d model=%d\n", res.Stats.PatternRecords, res.Stats.ModelRecords)
	if res.Stats.RetriesExhausted > 0 {
		fmt.Printf("  Model windows exhausted retries: %d\n", res.Stats.RetriesExhausted)
	}
}
