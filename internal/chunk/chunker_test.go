package chunk

import (
	"strings"
	"testing"
)

func TestNewChunker_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name       string
		windowSize int
		overlap    int
	}{
		{"overlap equals window", 100, 100},
		{"overlap exceeds window", 100, 150},
		{"zero window", 0, 0},
		{"negative overlap", 100, -1},
	}

	for _, tt := range tests {
		if _, err := NewChunker(tt.windowSize, tt.overlap); err == nil {
			t.Errorf("%s: expected construction error", tt.name)
		}
	}
}

func TestChunker_TwoWindowScenario(t *testing.T) {
	c, err := NewChunker(8000, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := strings.Repeat("a", 10000)
	windows := c.Split("doc-1", text)

	if len(windows) != 2 {
		t.Fatalf("expected exactly 2 windows, got %d", len(windows))
	}
	if windows[0].StartOffset != 0 || windows[0].EndOffset != 8000 {
		t.Errorf("window 0 span = [%d,%d), want [0,8000)", windows[0].StartOffset, windows[0].EndOffset)
	}
	if windows[1].StartOffset != 7500 || windows[1].EndOffset != 10000 {
		t.Errorf("window 1 span = [%d,%d), want [7500,10000)", windows[1].StartOffset, windows[1].EndOffset)
	}
}

func TestChunker_ShortTextYieldsOneWindow(t *testing.T) {
	c, err := NewChunker(8000, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := strings.Repeat("b", 4200)
	windows := c.Split("doc-1", text)

	if len(windows) != 1 {
		t.Fatalf("expected exactly 1 window, got %d", len(windows))
	}
	if windows[0].Text != text {
		t.Error("single window should equal the whole text")
	}
	if windows[0].StartOffset != 0 || windows[0].EndOffset != len(text) {
		t.Errorf("window span = [%d,%d), want [0,%d)", windows[0].StartOffset, windows[0].EndOffset, len(text))
	}
}

func TestChunker_TextExactlyWindowSize(t *testing.T) {
	c, _ := NewChunker(1000, 200)

	windows := c.Split("doc-1", strings.Repeat("c", 1000))
	if len(windows) != 1 {
		t.Fatalf("expected 1 window for text of exactly window size, got %d", len(windows))
	}
}

func TestChunker_EmptyText(t *testing.T) {
	c, _ := NewChunker(1000, 200)

	if windows := c.Split("doc-1", ""); len(windows) != 0 {
		t.Errorf("expected no windows for empty text, got %d", len(windows))
	}
}

func TestChunker_CompleteCover(t *testing.T) {
	tests := []struct {
		windowSize int
		overlap    int
		length     int
	}{
		{8000, 500, 25000},
		{1000, 100, 999},
		{1000, 100, 1001},
		{100, 99, 350},
		{500, 0, 1700},
	}

	for _, tt := range tests {
		c, err := NewChunker(tt.windowSize, tt.overlap)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := strings.Repeat("x", tt.length)
		windows := c.Split("doc-1", text)

		// Every offset must be covered, windows must be contiguous in
		// start offset with stride windowSize-overlap, and indices
		// must be contiguous from zero.
		covered := make([]bool, tt.length)
		stride := tt.windowSize - tt.overlap
		for i, w := range windows {
			if w.WindowIndex != i {
				t.Errorf("W=%d O=%d L=%d: window %d has index %d", tt.windowSize, tt.overlap, tt.length, i, w.WindowIndex)
			}
			if w.StartOffset != i*stride {
				t.Errorf("W=%d O=%d L=%d: window %d starts at %d, want %d", tt.windowSize, tt.overlap, tt.length, i, w.StartOffset, i*stride)
			}
			for p := w.StartOffset; p < w.EndOffset; p++ {
				covered[p] = true
			}
		}
		for p, ok := range covered {
			if !ok {
				t.Fatalf("W=%d O=%d L=%d: offset %d not covered", tt.windowSize, tt.overlap, tt.length, p)
			}
		}

		last := windows[len(windows)-1]
		if last.EndOffset != tt.length {
			t.Errorf("W=%d O=%d L=%d: final window ends at %d, want %d", tt.windowSize, tt.overlap, tt.length, last.EndOffset, tt.length)
		}
	}
}

func TestWindows_NonRestartable(t *testing.T) {
	c, _ := NewChunker(100, 10)

	it := c.Windows("doc-1", strings.Repeat("y", 250))
	n := 0
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		n++
	}
	if n == 0 {
		t.Fatal("expected at least one window")
	}
	if _, ok := it.Next(); ok {
		t.Error("exhausted sequence should stay exhausted")
	}
}
