package driven

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// IntakeAPI is the remote document service.
//
// Every method returns a *domain.TransportError for network faults and
// non-2xx responses. Implementations never retry.
type IntakeAPI interface {
	// ProcessDocument uploads a staged file and returns the normalised result.
	ProcessDocument(ctx context.Context, file domain.StagedFile) (*domain.ProcessResult, error)

	// Search runs a semantic query. Results keep the service's ranking.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// DocumentsByCategory returns the server-side grouping in server order.
	DocumentsByCategory(ctx context.Context) (domain.CategoryGroups, error)

	// GetDocument fetches one stored document.
	// Returns domain.ErrNotFound if the service reports 404.
	GetDocument(ctx context.Context, id string) (*domain.DocumentDetail, error)

	// Chat sends a query with the prior transcript and returns the reply.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// Health reports whether the service is up.
	Health(ctx context.Context) (*domain.Health, error)

	// Stats reports the size of the document collection.
	Stats(ctx context.Context) (*domain.CollectionStats, error)
}

// ChatRequest is one assistant turn.
type ChatRequest struct {
	// Query is the new user message.
	Query string

	// History is the transcript before this turn.
	History []domain.ChatMessage

	// DocumentID scopes the turn to one document. Empty for global.
	DocumentID string
}
