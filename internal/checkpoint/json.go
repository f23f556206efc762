package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact filenames written at every checkpoint. Each file holds the
// complete accumulated inventory, so the latest checkpoint is always a
// full result set, not a delta.
const (
	claimsFile       = "claim_inventory_full.json"
	commitmentsFile  = "promise_inventory.json"
	partnershipsFile = "partnership_inventory.json"
	analysesFile     = "document_analyses.json"
	manifestFile     = "run_manifest.json"
)

// JSONStore writes run snapshots as JSON artifacts in a directory
type JSONStore struct {
	dir string
}

// NewJSONStore creates a JSON checkpoint store rooted at dir
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint dir: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

type manifest struct {
	RunID        string `json:"run_id"`
	SavedAt      string `json:"saved_at"`
	Processed    int    `json:"documents_processed"`
	Claims       int    `json:"total_claims"`
	Commitments  int    `json:"total_commitments"`
	Partnerships int    `json:"total_partnerships"`
}

// Save writes all inventory artifacts. Each file is written atomically so
// an interrupted run never leaves a truncated artifact behind.
func (s *JSONStore) Save(snap *Snapshot) error {
	if err := s.writeFile(claimsFile, snap.Claims); err != nil {
		return err
	}
	if err := s.writeFile(commitmentsFile, snap.Commitments); err != nil {
		return err
	}
	if err := s.writeFile(partnershipsFile, snap.Partnerships); err != nil {
		return err
	}
	if err := s.writeFile(analysesFile, snap.Analyses); err != nil {
		return err
	}
	return s.writeFile(manifestFile, manifest{
		RunID:        snap.RunID,
		SavedAt:      snap.SavedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Processed:    snap.Processed,
		Claims:       len(snap.Claims),
		Commitments:  len(snap.Commitments),
		Partnerships: len(snap.Partnerships),
	})
}

// Close is a no-op; files are complete after every Save
func (s *JSONStore) Close() error {
	return nil
}

// Load reads a previously checkpointed snapshot back from the directory.
// Missing artifacts load as empty inventories.
func (s *JSONStore) Load() (*Snapshot, error) {
	var snap Snapshot

	var m manifest
	if err := s.readFile(manifestFile, &m); err == nil {
		snap.RunID = m.RunID
		snap.Processed = m.Processed
	}

	if err := s.readFile(claimsFile, &snap.Claims); err != nil {
		return nil, err
	}
	if err := s.readFile(commitmentsFile, &snap.Commitments); err != nil {
		return nil, err
	}
	if err := s.readFile(partnershipsFile, &snap.Partnerships); err != nil {
		return nil, err
	}
	if err := s.readFile(analysesFile, &snap.Analyses); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *JSONStore) writeFile(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

func (s *JSONStore) readFile(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
