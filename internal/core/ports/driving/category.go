package driving

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// CategoryService holds the server-side category grouping.
type CategoryService interface {
	// Refresh replaces the held grouping with the server's.
	Refresh(ctx context.Context) error

	// Groups returns the last fetched grouping.
	Groups() domain.CategoryGroups

	// View projects the last fetched grouping.
	View() render.GroupsView
}
