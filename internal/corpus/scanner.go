package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claimsift/claimsift/internal/classify"
	"github.com/claimsift/claimsift/internal/model"
)

// Document is one entry in the corpus inventory
type Document struct {
	Path     string                 `json:"path"`
	Filename string                 `json:"filename"`
	Size     int64                  `json:"size_bytes"`
	Metadata model.DocumentMetadata `json:"metadata"`
}

// Inventory is the result of scanning a corpus directory tree
type Inventory struct {
	BaseDir   string     `json:"base_dir"`
	ScannedAt time.Time  `json:"scanned_at"`
	Documents []Document `json:"documents"`

	ByState        map[string]int `json:"by_state"`
	ByType         map[string]int `json:"by_doc_type"`
	ByYear         map[int]int    `json:"by_year"`
	ByOrganization map[string]int `json:"by_mco"`
}

// Scanner walks a corpus base directory laid out as one subdirectory per
// state, classifying every document file it finds.
type Scanner struct {
	classifier *classify.Classifier
	extensions map[string]bool
}

// NewScanner creates a corpus scanner for converted document files
func NewScanner() *Scanner {
	return &Scanner{
		classifier: classify.NewClassifier(),
		extensions: map[string]bool{
			".txt":  true,
			".pdf":  true,
			".docx": true,
			".doc":  true,
			".html": true,
			".xlsx": true,
		},
	}
}

// Scan builds an inventory of the corpus under baseDir. Subdirectory
// names are taken as state names; files at the top level are skipped.
func (s *Scanner) Scan(baseDir string) (*Inventory, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	inv := &Inventory{
		BaseDir:        baseDir,
		ScannedAt:      time.Now().UTC(),
		ByState:        make(map[string]int),
		ByType:         make(map[string]int),
		ByYear:         make(map[int]int),
		ByOrganization: make(map[string]int),
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		state := entry.Name()
		stateDir := filepath.Join(baseDir, state)

		err := filepath.WalkDir(stateDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !s.extensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}

			meta := s.classifier.Classify(state, d.Name())
			inv.Documents = append(inv.Documents, Document{
				Path:     path,
				Filename: d.Name(),
				Size:     info.Size(),
				Metadata: meta,
			})

			inv.ByState[state]++
			inv.ByType[string(meta.DocumentType)]++
			if meta.Year != 0 {
				inv.ByYear[meta.Year]++
			}
			if meta.Organization != "" {
				inv.ByOrganization[meta.Organization]++
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", state, err)
		}
	}

	// Deterministic ordering regardless of filesystem iteration
	sort.Slice(inv.Documents, func(i, j int) bool {
		return inv.Documents[i].Path < inv.Documents[j].Path
	})

	return inv, nil
}
