package driving

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// DocumentService reads stored documents from the service.
type DocumentService interface {
	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.DocumentDetail, error)
}

// HealthService reports on the remote service.
type HealthService interface {
	// Check calls the service health endpoint.
	Check(ctx context.Context) (*domain.Health, error)

	// Stats reports the size of the document collection.
	Stats(ctx context.Context) (*domain.CollectionStats, error)
}
