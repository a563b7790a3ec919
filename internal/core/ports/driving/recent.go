package driving

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// RecentService maintains the bounded local history of processed documents.
type RecentService interface {
	// Load reads the durable history. Missing or malformed data loads as empty.
	Load(ctx context.Context) []domain.RecentDocumentEntry

	// Record prepends result to the history and persists it.
	Record(ctx context.Context, result domain.ProcessResult) error

	// Entries returns the history, most recent first.
	Entries() []domain.RecentDocumentEntry

	// View projects the history with relative times computed now.
	View() []render.RecentView

	// OnChange registers fn, called synchronously after every Record with
	// a copy of the new history.
	OnChange(fn func([]domain.RecentDocumentEntry))
}
