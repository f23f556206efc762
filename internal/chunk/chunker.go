package chunk

import (
	"fmt"

	"github.com/claimsift/claimsift/internal/model"
)

// Chunker splits normalized document text into overlapping windows sized
// for the extraction backend. Consecutive windows overlap by exactly the
// configured overlap; the final window may be shorter than the window
// size.
type Chunker struct {
	windowSize int
	overlap    int
}

// NewChunker creates a chunker. Overlap must be smaller than the window
// size; this is a configuration error and is rejected here, before any
// run starts.
func NewChunker(windowSize, overlap int) (*Chunker, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must be non-negative, got %d", overlap)
	}
	if overlap >= windowSize {
		return nil, fmt.Errorf("overlap (%d) must be smaller than window size (%d)", overlap, windowSize)
	}
	return &Chunker{windowSize: windowSize, overlap: overlap}, nil
}

// Windows is a lazy, finite, non-restartable sequence of text windows
// covering the full document text
type Windows struct {
	chunker *Chunker
	docID   string
	text    string
	offset  int
	index   int
	done    bool
}

// Windows starts iterating windows for one document's text. Empty text
// yields no windows.
func (c *Chunker) Windows(docID, text string) *Windows {
	return &Windows{
		chunker: c,
		docID:   docID,
		text:    text,
		done:    len(text) == 0,
	}
}

// Next returns the next window. The second return value is false once the
// sequence is exhausted.
func (w *Windows) Next() (model.TextWindow, bool) {
	if w.done {
		return model.TextWindow{}, false
	}

	end := w.offset + w.chunker.windowSize
	if end >= len(w.text) {
		end = len(w.text)
		w.done = true
	}

	win := model.TextWindow{
		DocumentID:  w.docID,
		WindowIndex: w.index,
		Text:        w.text[w.offset:end],
		StartOffset: w.offset,
		EndOffset:   end,
	}

	w.offset += w.chunker.windowSize - w.chunker.overlap
	w.index++
	return win, true
}

// Split collects all windows eagerly. Convenience for callers that do not
// need the lazy sequence.
func (c *Chunker) Split(docID, text string) []model.TextWindow {
	var out []model.TextWindow
	it := c.Windows(docID, text)
	for win, ok := it.Next(); ok; win, ok = it.Next() {
		out = append(out, win)
	}
	return out
}
