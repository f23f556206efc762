package checkpoint

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/claimsift/claimsift/internal/model"
)

// SQLiteStore persists run snapshots in a SQLite database. Records are
// stored per run, so one database can hold the history of several runs.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite checkpoint database
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	saved_at TEXT NOT NULL,
	documents_processed INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	document_id TEXT NOT NULL,
	chunk_index INTEGER NOT NULL,
	extraction_method TEXT NOT NULL,
	payload TEXT NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_records_run_kind ON records(run_id, kind);

CREATE TABLE IF NOT EXISTS analyses (
	run_id TEXT NOT NULL,
	document_id TEXT NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY(run_id, document_id)
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Save replaces the stored state for the snapshot's run in one
// transaction. A failed save leaves the previous checkpoint intact.
func (s *SQLiteStore) Save(snap *Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin checkpoint tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records WHERE run_id = ?`, snap.RunID); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM analyses WHERE run_id = ?`, snap.RunID); err != nil {
		return fmt.Errorf("clear analyses: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs (run_id, saved_at, documents_processed) VALUES (?, ?, ?)`,
		snap.RunID, snap.SavedAt.UTC().Format("2006-01-02T15:04:05Z07:00"), snap.Processed,
	); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO records (run_id, kind, document_id, chunk_index, extraction_method, payload) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range snap.Claims {
		if err := insertRecord(stmt, snap.RunID, "claim", c.Provenance, c); err != nil {
			return err
		}
	}
	for _, c := range snap.Commitments {
		if err := insertRecord(stmt, snap.RunID, "commitment", c.Provenance, c); err != nil {
			return err
		}
	}
	for _, p := range snap.Partnerships {
		if err := insertRecord(stmt, snap.RunID, "partnership", p.Provenance, p); err != nil {
			return err
		}
	}

	for _, a := range snap.Analyses {
		payload, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO analyses (run_id, document_id, payload) VALUES (?, ?, ?)`,
			snap.RunID, a.DocumentID, string(payload),
		); err != nil {
			return fmt.Errorf("save analysis: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}

func insertRecord(stmt *sql.Stmt, runID, kind string, prov model.Provenance, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	if _, err := stmt.Exec(runID, kind, prov.DocumentID, prov.WindowIndex, string(prov.Method), string(payload)); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
