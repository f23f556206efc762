package checkpoint

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/claimsift/claimsift/internal/model"
)

// Snapshot is the accumulated run state persisted at each checkpoint.
// A later snapshot of the same run supersedes earlier ones.
type Snapshot struct {
	RunID        string                   `json:"run_id"`
	SavedAt      time.Time                `json:"saved_at"`
	Processed    int                      `json:"documents_processed"`
	Claims       []model.Claim            `json:"claims"`
	Commitments  []model.Commitment       `json:"commitments"`
	Partnerships []model.Partnership      `json:"partnerships"`
	Analyses     []model.DocumentAnalysis `json:"document_analyses"`
}

// Store persists run snapshots. Implementations must tolerate being
// called repeatedly with growing snapshots of the same run.
type Store interface {
	Save(snap *Snapshot) error
	Close() error
}

var entropy = ulid.Monotonic(rand.Reader, 0)

// NewRunID returns a sortable unique identifier for one analysis run
func NewRunID() string {
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// MultiStore fans a snapshot out to several stores. The first save error
// is returned; later stores are still attempted.
type MultiStore struct {
	stores []Store
}

// NewMultiStore combines stores into one
func NewMultiStore(stores ...Store) *MultiStore {
	return &MultiStore{stores: stores}
}

// Save writes the snapshot to every store
func (m *MultiStore) Save(snap *Snapshot) error {
	var firstErr error
	for _, s := range m.stores {
		if err := s.Save(snap); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every store
func (m *MultiStore) Close() error {
	var firstErr error
	for _, s := range m.stores {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
