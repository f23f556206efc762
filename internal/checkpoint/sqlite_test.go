package checkpoint

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore_SaveAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	snap := sampleSnapshot()
	if err := store.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	var records int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM records WHERE run_id = ?`, snap.RunID).Scan(&records); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if records != 3 {
		t.Errorf("records = %d, want 3", records)
	}

	var analyses int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM analyses WHERE run_id = ?`, snap.RunID).Scan(&analyses); err != nil {
		t.Fatalf("count analyses: %v", err)
	}
	if analyses != 1 {
		t.Errorf("analyses = %d, want 1", analyses)
	}
}

func TestSQLiteStore_ResaveReplacesRunState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	snap := sampleSnapshot()
	if err := store.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Same snapshot again must not duplicate rows
	if err := store.Save(snap); err != nil {
		t.Fatalf("resave: %v", err)
	}

	var records int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM records WHERE run_id = ?`, snap.RunID).Scan(&records); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if records != 3 {
		t.Errorf("records = %d, want 3 after resave", records)
	}
}
