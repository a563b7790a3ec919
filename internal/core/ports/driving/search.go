package driving

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// SearchService provides semantic search to external actors.
type SearchService interface {
	// Search runs a semantic query. A blank query returns
	// domain.ErrEmptyInput without contacting the service.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// State returns the display state of the last search.
	State() domain.SearchState

	// Results returns the results of the last successful search.
	Results() []domain.SearchResult
}
