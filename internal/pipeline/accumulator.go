package pipeline

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/claimsift/claimsift/internal/checkpoint"
	"github.com/claimsift/claimsift/internal/model"
)

// accumulator collects document results across workers and writes a
// checkpoint after every cadence processed documents. A checkpoint
// failure is a warning, never a run failure; the next cadence retries.
type accumulator struct {
	mu      sync.Mutex
	store   checkpoint.Store
	cadence int
	pending int

	res RunResult
}

func newAccumulator(runID string, store checkpoint.Store, cadence int) *accumulator {
	return &accumulator{
		store:   store,
		cadence: cadence,
		res:     RunResult{RunID: runID},
	}
}

func (a *accumulator) add(doc *DocumentResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if doc.Skipped {
		a.res.Stats.Skipped = append(a.res.Stats.Skipped, SkippedDocument{
			DocumentID: doc.Document.Metadata.DocumentID,
			Path:       doc.Document.Path,
			Reason:     doc.SkipReason,
		})
		return
	}

	a.res.Claims = append(a.res.Claims, doc.Claims...)
	a.res.Commitments = append(a.res.Commitments, doc.Commitments...)
	a.res.Partnerships = append(a.res.Partnerships, doc.Partnerships...)
	a.res.Analyses = append(a.res.Analyses, doc.Analysis)
	a.res.Stats.Processed++
	a.res.Stats.RetriesExhausted += doc.RetriesExhausted

	a.res.Stats.PatternRecords += countByMethod(doc, model.MethodPattern)
	a.res.Stats.ModelRecords += countByMethod(doc, model.MethodModel)

	a.pending++
	if a.pending >= a.cadence {
		a.saveLocked()
		a.pending = 0
	}
}

// flush writes a final checkpoint regardless of cadence position
func (a *accumulator) flush() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.res.Stats.Processed > 0 {
		a.saveLocked()
	}
}

func (a *accumulator) result() *RunResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.res
	return &out
}

func (a *accumulator) saveLocked() {
	if a.store == nil {
		return
	}
	snap := &checkpoint.Snapshot{
		RunID:        a.res.RunID,
		SavedAt:      time.Now().UTC(),
		Processed:    a.res.Stats.Processed,
		Claims:       a.res.Claims,
		Commitments:  a.res.Commitments,
		Partnerships: a.res.Partnerships,
		Analyses:     a.res.Analyses,
	}
	if err := a.store.Save(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: checkpoint failed: %v\n", err)
	}
}

func countByMethod(doc *DocumentResult, method model.ExtractionMethod) int {
	n := 0
	for _, c := range doc.Claims {
		if c.Method == method {
			n++
		}
	}
	for _, c := range doc.Commitments {
		if c.Method == method {
			n++
		}
	}
	for _, p := range doc.Partnerships {
		if p.Method == method {
			n++
		}
	}
	return n
}
