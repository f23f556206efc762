package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/checkpoint"
	"github.com/claimsift/claimsift/internal/chunk"
	"github.com/claimsift/claimsift/internal/corpus"
	"github.com/claimsift/claimsift/internal/extract"
	"github.com/claimsift/claimsift/internal/llm"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/worker"
)

// SkipReason explains why a document produced no records
type SkipReason string

const (
	SkipUnreadable SkipReason = "unreadable"
	SkipTooShort   SkipReason = "too_short"
)

// SkippedDocument records one skipped document and why
type SkippedDocument struct {
	DocumentID string     `json:"document_id"`
	Path       string     `json:"path"`
	Reason     SkipReason `json:"reason"`
}

// RunStats accounts for what happened during a run
type RunStats struct {
	Processed        int               `json:"documents_processed"`
	Skipped          []SkippedDocument `json:"skipped"`
	RetriesExhausted int               `json:"retries_exhausted"`
	PatternRecords   int               `json:"pattern_records"`
	ModelRecords     int               `json:"model_records"`
}

// RunResult is the accumulated output of one analysis run
type RunResult struct {
	RunID        string                   `json:"run_id"`
	Claims       []model.Claim            `json:"claims"`
	Commitments  []model.Commitment       `json:"commitments"`
	Partnerships []model.Partnership      `json:"partnerships"`
	Analyses     []model.DocumentAnalysis `json:"document_analyses"`
	Stats        RunStats                 `json:"stats"`
}

// Pipeline orchestrates classification, chunking and extraction over a
// document corpus. Per-document failures degrade to skips or partial
// results; only configuration errors and cancellation stop a run.
type Pipeline struct {
	config   *model.Config
	reader   *corpus.Reader
	chunker  *chunk.Chunker
	patterns *extract.Extractor
	modelExt *llm.Extractor // nil when model extraction is disabled
	store    checkpoint.Store
}

// NewPipeline creates a pipeline from the run configuration. The store
// may be nil, in which case no checkpoints are written.
func NewPipeline(cfg *model.Config, store checkpoint.Store) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chunker, err := chunk.NewChunker(cfg.Chunking.WindowSize, cfg.Chunking.Overlap)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		config:   cfg,
		reader:   corpus.NewReader(),
		chunker:  chunker,
		patterns: extract.NewExtractor(cfg.Extraction.LeftRadius, cfg.Extraction.RightRadius),
		store:    store,
	}

	if cfg.Extraction.Strategy != model.StrategyPattern {
		ext, err := buildModelExtractor(cfg)
		if err != nil {
			return nil, err
		}
		if ext == nil {
			if cfg.Extraction.Strategy == model.StrategyModel {
				return nil, fmt.Errorf("strategy %q requires a model provider: set --llm-provider or export OPENAI_API_KEY / ANTHROPIC_API_KEY", cfg.Extraction.Strategy)
			}
			fmt.Fprintln(os.Stderr, "Warning: no model provider configured, falling back to pattern extraction only")
		}
		p.modelExt = ext
	}

	return p, nil
}

// buildModelExtractor assembles the provider stack: base provider, rate
// limiter, response cache, retry policy
func buildModelExtractor(cfg *model.Config) (*llm.Extractor, error) {
	llmCfg := llm.ConfigFromModel(cfg.LLM)
	llm.ResolveAPIKey(&llmCfg)

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return nil, fmt.Errorf("model provider: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	provider = llm.NewThrottledProvider(provider, cfg.LLM.RequestsPerSecond)

	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTL) * time.Hour
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(ttl, cfg.Cache.Dir, ttl)
		} else {
			store = cache.NewMemoryCache(ttl, 10*time.Minute)
		}
		provider = llm.NewCachedProvider(provider, store, ttl)
	}

	retry := llm.RetryPolicy{
		MaxAttempts: cfg.LLM.MaxAttempts,
		BaseDelay:   cfg.LLM.BackoffBase,
	}
	return llm.NewExtractor(provider, retry), nil
}

// DocumentResult is the outcome of analyzing one document
type DocumentResult struct {
	Document         corpus.Document
	Skipped          bool
	SkipReason       SkipReason
	Claims           []model.Claim
	Commitments      []model.Commitment
	Partnerships     []model.Partnership
	Analysis         model.DocumentAnalysis
	RetriesExhausted int
}

// AnalyzeDocument reads, chunks and extracts one document. A document
// that cannot be read or is too short to analyze returns a skip result,
// not an error; the only error is context cancellation.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, doc corpus.Document) (*DocumentResult, error) {
	res := &DocumentResult{Document: doc}
	meta := doc.Metadata

	text, err := p.reader.Read(doc.Path)
	if err != nil {
		res.Skipped = true
		res.SkipReason = SkipUnreadable
		return res, nil
	}
	if len(text) < p.config.Extraction.MinDocLength {
		res.Skipped = true
		res.SkipReason = SkipTooShort
		return res, nil
	}

	windows := p.chunker.Windows(meta.DocumentID, text)
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		win, ok := windows.Next()
		if !ok {
			break
		}

		if p.config.Extraction.Strategy != model.StrategyModel {
			out := p.patterns.Extract(win)
			res.Claims = append(res.Claims, stampClaims(out.Claims, meta)...)
			res.Commitments = append(res.Commitments, stampCommitments(out.Commitments, meta)...)
			res.Partnerships = append(res.Partnerships, stampPartnerships(out.Partnerships, meta)...)
		}

		if p.modelExt != nil && p.config.Extraction.Strategy != model.StrategyPattern {
			out, err := p.modelExt.Extract(ctx, meta, win)
			if err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				res.RetriesExhausted++
				fmt.Fprintf(os.Stderr, "Warning: model extraction failed for %s window %d: %v\n",
					meta.DocumentID, win.WindowIndex, err)
			}
			res.Claims = append(res.Claims, stampClaims(out.Claims, meta)...)
			res.Commitments = append(res.Commitments, stampCommitments(out.Commitments, meta)...)
			res.Partnerships = append(res.Partnerships, stampPartnerships(out.Partnerships, meta)...)
		}
	}

	res.Analysis = model.DocumentAnalysis{
		DocumentID:        meta.DocumentID,
		State:             meta.State,
		Organization:      meta.Organization,
		Year:              meta.Year,
		DocumentType:      meta.DocumentType,
		TotalClaims:       len(res.Claims),
		TotalCommitments:  len(res.Commitments),
		TotalPartnerships: len(res.Partnerships),
		AnalyzedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	return res, nil
}

// stampClaims fills the document-level provenance fields. Extractors set
// the window-level fields; the document identity is stamped here.
func stampClaims(claims []model.Claim, meta model.DocumentMetadata) []model.Claim {
	for i := range claims {
		stamp(&claims[i].Provenance, meta)
	}
	return claims
}

func stampCommitments(commitments []model.Commitment, meta model.DocumentMetadata) []model.Commitment {
	for i := range commitments {
		stamp(&commitments[i].Provenance, meta)
	}
	return commitments
}

func stampPartnerships(partnerships []model.Partnership, meta model.DocumentMetadata) []model.Partnership {
	for i := range partnerships {
		stamp(&partnerships[i].Provenance, meta)
	}
	return partnerships
}

func stamp(prov *model.Provenance, meta model.DocumentMetadata) {
	prov.DocumentID = meta.DocumentID
	prov.State = meta.State
	prov.Organization = meta.Organization
	prov.Year = meta.Year
	prov.DocumentType = meta.DocumentType
}

// Run analyzes the corpus documents, accumulating results and writing a
// checkpoint after every configured number of documents. Cancellation
// stops the run between documents; results accumulated so far are
// checkpointed and returned with the error.
func (p *Pipeline) Run(ctx context.Context, docs []corpus.Document) (*RunResult, error) {
	acc := newAccumulator(checkpoint.NewRunID(), p.store, p.config.Checkpoint.Cadence)

	var runErr error
	if p.config.Concurrency.Workers > 1 {
		runErr = p.runParallel(ctx, docs, acc)
	} else {
		runErr = p.runSequential(ctx, docs, acc)
	}

	acc.flush()
	res := acc.result()
	return res, runErr
}

func (p *Pipeline) runSequential(ctx context.Context, docs []corpus.Document, acc *accumulator) error {
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := p.AnalyzeDocument(ctx, doc)
		if res != nil {
			acc.add(res)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// analyzeTask adapts one document to the worker pool
type analyzeTask struct {
	pipeline *Pipeline
	doc      corpus.Document
	acc      *accumulator
}

type analyzeOutcome struct {
	err error
}

func (o *analyzeOutcome) Err() error { return o.err }

func (t *analyzeTask) Run(ctx context.Context) worker.Outcome {
	res, err := t.pipeline.AnalyzeDocument(ctx, t.doc)
	if res != nil {
		t.acc.add(res)
	}
	return &analyzeOutcome{err: err}
}

func (p *Pipeline) runParallel(ctx context.Context, docs []corpus.Document, acc *accumulator) error {
	// Outcomes flow into the sink as documents finish, so the number of
	// queued documents never blocks the workers or the submission loop.
	var mu sync.Mutex
	var firstErr error
	sink := func(o worker.Outcome) {
		if err := o.Err(); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}

	pool := worker.NewPool(p.config.Concurrency.Workers, sink)
	pool.Start()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-stop:
		}
	}()

	for _, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		pool.Submit(&analyzeTask{pipeline: p, doc: doc, acc: acc})
	}
	pool.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return err
	}
	return ctx.Err()
}
