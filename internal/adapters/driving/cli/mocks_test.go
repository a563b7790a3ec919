package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
)

type mockUploadService struct {
	stageErr  error
	submitErr error
	view      *render.ResultView
	path      string
}

func (m *mockUploadService) Stage(_ domain.StagedFile) error { return m.stageErr }

func (m *mockUploadService) StagePath(path string) error {
	m.path = path
	return m.stageErr
}

func (m *mockUploadService) Submit(_ context.Context) (*render.ResultView, error) {
	return m.view, m.submitErr
}

func (m *mockUploadService) Reset() error { return nil }

func (m *mockUploadService) State() domain.UploadState { return domain.UploadIdle }

func (m *mockUploadService) Staged() (domain.StagedFile, bool) { return domain.StagedFile{}, false }

type mockRecentService struct {
	views []render.RecentView
}

func (m *mockRecentService) Load(_ context.Context) []domain.RecentDocumentEntry { return nil }

func (m *mockRecentService) Record(_ context.Context, _ domain.ProcessResult) error { return nil }

func (m *mockRecentService) Entries() []domain.RecentDocumentEntry { return nil }

func (m *mockRecentService) View() []render.RecentView { return m.views }

func (m *mockRecentService) OnChange(func([]domain.RecentDocumentEntry)) {}

type mockCategoryService struct {
	view render.GroupsView
	err  error
}

func (m *mockCategoryService) Refresh(_ context.Context) error { return m.err }

func (m *mockCategoryService) Groups() domain.CategoryGroups { return nil }

func (m *mockCategoryService) View() render.GroupsView { return m.view }

type mockSearchService struct {
	results []domain.SearchResult
	err     error
	query   string
	opts    domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.query = query
	m.opts = opts
	return m.results, m.err
}

func (m *mockSearchService) State() domain.SearchState { return domain.SearchIdle }

func (m *mockSearchService) Results() []domain.SearchResult { return m.results }

type mockDocumentService struct {
	doc *domain.DocumentDetail
	err error
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.DocumentDetail, error) {
	return m.doc, m.err
}

type mockHealthService struct {
	health *domain.Health
	stats  *domain.CollectionStats
	err    error
}

func (m *mockHealthService) Check(_ context.Context) (*domain.Health, error) { return m.health, m.err }

func (m *mockHealthService) Stats(_ context.Context) (*domain.CollectionStats, error) {
	return m.stats, m.err
}

type mockSettingsService struct {
	settings domain.AppSettings
	setErr   error
	set      map[string]string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

type mockChatService struct {
	scope   domain.ChatScope
	replies map[string]string
	err     error
	sent    []string
}

func (m *mockChatService) Send(_ context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyInput
	}
	m.sent = append(m.sent, text)
	if m.err != nil {
		return "", m.err
	}
	if reply, ok := m.replies[text]; ok {
		return reply, nil
	}
	return "echo: " + text, nil
}

func (m *mockChatService) Log() []domain.ChatEntry { return nil }

func (m *mockChatService) Transcript() []domain.ChatMessage { return nil }

func (m *mockChatService) Busy() bool { return false }

func (m *mockChatService) Scope() domain.ChatScope { return m.scope }

// testChats records every conversation opened through newChat.
type testChats struct {
	opened []*mockChatService
	err    error
}

func (c *testChats) New(scope domain.ChatScope) driving.ChatService {
	chat := &mockChatService{scope: scope, err: c.err}
	c.opened = append(c.opened, chat)
	return chat
}

// setupTestServices installs default mocks and returns a function that
// restores the previous services and resets command flags.
func setupTestServices() func() {
	prev := services
	chats := &testChats{}
	SetServices(&Services{
		Upload: &mockUploadService{view: &render.ResultView{DocumentID: "doc-1"}},
		Recent: &mockRecentService{},
		Categories: &mockCategoryService{
			view: render.GroupsView{Empty: true, EmptyMessage: render.EmptyGroupsMessage},
		},
		Search: &mockSearchService{
			results: []domain.SearchResult{
				{DocumentID: "doc-1", Similarity: 0.93, TextPreview: "Late fee dispute", Category: "complaints"},
			},
		},
		Document: &mockDocumentService{doc: &domain.DocumentDetail{ID: "doc-1", Text: "hello"}},
		Health:   &mockHealthService{health: &domain.Health{Status: "healthy", Service: "Bank Document Classification System"}},
		Settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
		NewChat:  chats.New,
	})

	return func() {
		SetServices(prev)
		processJSON = false
		searchLimit = 0
		searchCategory = ""
		searchJSON = false
		categoriesJSON = false
		documentJSON = false
		documentMetaOnly = false
		chatDocument = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// execute runs the root command with args and returns everything it wrote.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := Execute()
	return buf.String(), err
}
