package report

import (
	"errors"
	"strings"
	"time"
)

// ResultStore defines the interface for archiving benchmark result sets.
// A result set is stored under a run ID and is returned in the order it was
// imported.
type ResultStore interface {
	// Put stores records under runID, replacing any set already stored there
	Put(runID, source string, records []Record) error

	// Load returns the records of runID in input order
	// Returns ErrRunNotFound if runID was never stored
	Load(runID string) ([]Record, error)

	// Runs lists every stored run sorted by run ID
	Runs() ([]RunInfo, error)

	// Delete removes runID and its records
	Delete(runID string) error

	// Close releases the store
	Close() error
}

// RunInfo describes one archived result set
type RunInfo struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	Records    int       `json:"records"`
	ImportedAt time.Time `json:"imported_at"`
}

// StoreConfig holds configuration for opening a result store
type StoreConfig struct {
	Path     string
	ReadOnly bool

	BlockCacheSize int64 // bytes, negative means disabled
}

// DefaultArchivePath is the archive directory used when none is given
const DefaultArchivePath = "bench-archive"

// DefaultBlockCacheSize is the archive block cache size
const DefaultBlockCacheSize = 8 << 20

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrInvalidRunID  = errors.New("invalid run id")
	ErrStoreClosed   = errors.New("result store is closed")
	ErrStoreRequired = errors.New("archive path is required")
)

// ValidateRunID checks that id can be used as a key component.
func ValidateRunID(id string) error {
	if id == "" || strings.Contains(id, "/") {
		return ErrInvalidRunID
	}
	return nil
}

// IsRunNotFound reports whether err means the run does not exist
func IsRunNotFound(err error) bool {
	return errors.Is(err, ErrRunNotFound)
}
