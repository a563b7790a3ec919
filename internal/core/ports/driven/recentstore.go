package driven

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// RecentStore persists the recent-document history as one record.
type RecentStore interface {
	// Load returns the stored entries, most recent first.
	// Returns an empty slice if nothing was stored.
	// Returns an error wrapping domain.ErrMalformedPersistedState if the
	// record exists but cannot be decoded.
	Load(ctx context.Context) ([]domain.RecentDocumentEntry, error)

	// Save replaces the stored record with entries in a single write.
	Save(ctx context.Context, entries []domain.RecentDocumentEntry) error

	// Close releases resources.
	Close() error
}
