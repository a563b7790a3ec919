package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure DocumentService and HealthService implement the interfaces.
var (
	_ driving.DocumentService = (*DocumentService)(nil)
	_ driving.HealthService   = (*HealthService)(nil)
)

// DocumentService reads stored documents.
type DocumentService struct {
	api driven.IntakeAPI
}

// NewDocumentService creates a document service.
func NewDocumentService(api driven.IntakeAPI) *DocumentService {
	return &DocumentService{api: api}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.DocumentDetail, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, domain.ErrEmptyInput
	}
	logger.Debug("Fetching document %s", documentID)
	doc, err := s.api.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return doc, nil
}

// HealthService checks the remote service.
type HealthService struct {
	api driven.IntakeAPI
}

// NewHealthService creates a health service.
func NewHealthService(api driven.IntakeAPI) *HealthService {
	return &HealthService{api: api}
}

// Check calls the service health endpoint.
func (s *HealthService) Check(ctx context.Context) (*domain.Health, error) {
	h, err := s.api.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	logger.Debug("Service %q reports %q", h.Service, h.Status)
	return h, nil
}

// Stats reports the size of the document collection.
func (s *HealthService) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	st, err := s.api.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collection stats: %w", err)
	}
	return st, nil
}
