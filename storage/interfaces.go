package storage

import (
	"context"

	"github.com/poiesic/cilin/core"
)

// Repository provides operations shared across all repositories.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Close releases repository resources. It does not close the backend.
	Close() error
}

// ThesaurusRepository stores a taxonomy snapshot.
type ThesaurusRepository interface {
	Repository

	// SaveEntries writes entries in one transaction, replacing any stored
	// entry with the same code.
	SaveEntries(ctx context.Context, entries ...core.Entry) error

	// GetEntry returns the entry for code.
	// Returns ErrNotFound if the code is not stored.
	GetEntry(ctx context.Context, code core.Code) (core.Entry, error)

	// Entries returns every stored entry ordered by code.
	Entries(ctx context.Context) ([]core.Entry, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)

	// Fingerprint returns the fingerprint recorded by the last completed import.
	// Returns ErrNotFound if none was recorded.
	Fingerprint(ctx context.Context) (core.ID, error)

	// SetFingerprint records the fingerprint of a completed import.
	SetFingerprint(ctx context.Context, id core.ID) error

	// Clear removes every entry and the fingerprint.
	Clear(ctx context.Context) error
}
