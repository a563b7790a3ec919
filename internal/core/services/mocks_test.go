package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
)

// mockIntakeAPI implements driven.IntakeAPI with overridable functions.
type mockIntakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	processFn    func(ctx context.Context, file domain.StagedFile) (*domain.ProcessResult, error)
	searchFn     func(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
	categoriesFn func(ctx context.Context) (domain.CategoryGroups, error)
	documentFn   func(ctx context.Context, id string) (*domain.DocumentDetail, error)
	chatFn       func(ctx context.Context, req driven.ChatRequest) (string, error)
	healthFn     func(ctx context.Context) (*domain.Health, error)
	statsFn      func(ctx context.Context) (*domain.CollectionStats, error)
}

var _ driven.IntakeAPI = (*mockIntakeAPI)(nil)

func newMockIntakeAPI() *mockIntakeAPI {
	return &mockIntakeAPI{calls: make(map[string]int)}
}

func (m *mockIntakeAPI) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}

func (m *mockIntakeAPI) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockIntakeAPI) ProcessDocument(ctx context.Context, file domain.StagedFile) (*domain.ProcessResult, error) {
	m.record("process")
	if m.processFn != nil {
		return m.processFn(ctx, file)
	}
	return &domain.ProcessResult{DocumentID: "doc-1"}, nil
}

func (m *mockIntakeAPI) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.record("search")
	if m.searchFn != nil {
		return m.searchFn(ctx, query, opts)
	}
	return nil, nil
}

func (m *mockIntakeAPI) DocumentsByCategory(ctx context.Context) (domain.CategoryGroups, error) {
	m.record("categories")
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockIntakeAPI) GetDocument(ctx context.Context, id string) (*domain.DocumentDetail, error) {
	m.record("document")
	if m.documentFn != nil {
		return m.documentFn(ctx, id)
	}
	return &domain.DocumentDetail{ID: id}, nil
}

func (m *mockIntakeAPI) Chat(ctx context.Context, req driven.ChatRequest) (string, error) {
	m.record("chat")
	if m.chatFn != nil {
		return m.chatFn(ctx, req)
	}
	return "ok", nil
}

func (m *mockIntakeAPI) Health(ctx context.Context) (*domain.Health, error) {
	m.record("health")
	if m.healthFn != nil {
		return m.healthFn(ctx)
	}
	return &domain.Health{Status: "healthy"}, nil
}

func (m *mockIntakeAPI) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	m.record("stats")
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &domain.CollectionStats{}, nil
}

// recordingNotifier captures notifications in order.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *recordingNotifier) Notify(msg domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) all() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

// mockFileDescriber returns a fixed file or error.
type mockFileDescriber struct {
	file domain.StagedFile
	err  error
}

func (d *mockFileDescriber) Describe(path string) (domain.StagedFile, error) {
	if d.err != nil {
		return domain.StagedFile{}, d.err
	}
	f := d.file
	f.Path = path
	return f, nil
}

// manualScheduler captures scheduled functions so tests decide when they fire.
type manualScheduler struct {
	mu  sync.Mutex
	fns []func()
}

func (s *manualScheduler) schedule(_ time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

func (s *manualScheduler) fireAll() {
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
