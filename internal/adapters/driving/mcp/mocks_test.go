package mcp

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
	query    string
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.query = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) State() domain.SearchState {
	return domain.SearchIdle
}

func (m *mockSearchService) Results() []domain.SearchResult {
	return m.results
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document *domain.DocumentDetail
	err      error
	gotID    string
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.DocumentDetail, error) {
	m.gotID = id
	return m.document, m.err
}

// mockCategoryService is a mock implementation of driving.CategoryService.
type mockCategoryService struct {
	groups    domain.CategoryGroups
	err       error
	refreshed int
}

func (m *mockCategoryService) Refresh(_ context.Context) error {
	m.refreshed++
	return m.err
}

func (m *mockCategoryService) Groups() domain.CategoryGroups {
	return m.groups
}

func (m *mockCategoryService) View() render.GroupsView {
	return render.Groups(now(), m.groups)
}

// mockRecentService is a mock implementation of driving.RecentService.
type mockRecentService struct {
	entries []domain.RecentDocumentEntry
}

func (m *mockRecentService) Load(_ context.Context) []domain.RecentDocumentEntry {
	return m.entries
}

func (m *mockRecentService) Record(_ context.Context, _ domain.ProcessResult) error {
	return nil
}

func (m *mockRecentService) Entries() []domain.RecentDocumentEntry {
	return m.entries
}

func (m *mockRecentService) View() []render.RecentView {
	return render.Recent(now(), m.entries)
}

func (m *mockRecentService) OnChange(func([]domain.RecentDocumentEntry)) {}

// mockHealthService is a mock implementation of driving.HealthService.
type mockHealthService struct {
	stats *domain.CollectionStats
	err   error
}

func (m *mockHealthService) Check(_ context.Context) (*domain.Health, error) {
	return &domain.Health{Status: "healthy"}, m.err
}

func (m *mockHealthService) Stats(_ context.Context) (*domain.CollectionStats, error) {
	return m.stats, m.err
}
