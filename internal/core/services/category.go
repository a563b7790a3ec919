package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure CategoryService implements the interface.
var _ driving.CategoryService = (*CategoryService)(nil)

// CategoryService holds the last fetched category grouping.
type CategoryService struct {
	api driven.IntakeAPI
	now func() time.Time

	mu     sync.RWMutex
	groups domain.CategoryGroups
}

// NewCategoryService creates a category service.
func NewCategoryService(api driven.IntakeAPI) *CategoryService {
	return &CategoryService{api: api, now: time.Now}
}

// Refresh replaces the held grouping wholesale. On failure the previous
// grouping is kept.
func (s *CategoryService) Refresh(ctx context.Context) error {
	groups, err := s.api.DocumentsByCategory(ctx)
	if err != nil {
		logger.Warn("Category refresh failed: %v", err)
		return fmt.Errorf("documents by category: %w", err)
	}
	logger.Debug("Category refresh: %d categories, %d documents", len(groups), groups.DocumentCount())

	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	return nil
}

// Groups returns the last fetched grouping.
func (s *CategoryService) Groups() domain.CategoryGroups {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.CategoryGroups, len(s.groups))
	copy(out, s.groups)
	return out
}

// View projects the last fetched grouping.
func (s *CategoryService) View() render.GroupsView {
	return render.Groups(s.now(), s.Groups())
}
