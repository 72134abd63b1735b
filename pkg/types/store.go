package types

import "errors"

// Store persists a snapshot of the full note collection. Load and Save are
// whole-collection operations: Load returns every stored note and Save
// replaces everything previously stored.
type Store interface {
	// Attach opens the backend described by config. It creates DataDir if
	// needed and returns ErrAlreadyAttached if called twice.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Load reads the stored notes in order. A store that has never been
	// saved returns an error wrapping fs.ErrNotExist.
	Load() ([]*Note, error)

	// Save overwrites the backing store with notes.
	Save(notes []*Note) error
}

// Store lifecycle and decoding errors.
var (
	ErrStoreDetached      = errors.New("store is detached")
	ErrAlreadyAttached    = errors.New("store is already attached")
	ErrMalformedDocument  = errors.New("malformed notes document")
	ErrStoreNotConfigured = errors.New("no store configured")
)
