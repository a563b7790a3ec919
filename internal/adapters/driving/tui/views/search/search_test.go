package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	state   domain.SearchState
	results []domain.SearchResult
}

func (m *MockSearchService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if m.SearchFunc != nil {
		results, err := m.SearchFunc(ctx, query, opts)
		switch {
		case errors.Is(err, domain.ErrEmptyInput):
		case err != nil:
			m.state = domain.SearchFailed
		case len(results) == 0:
			m.state = domain.SearchEmpty
		default:
			m.state = domain.SearchResults
		}
		m.results = results
		return results, err
	}
	m.state = domain.SearchEmpty
	return []domain.SearchResult{}, nil
}

func (m *MockSearchService) State() domain.SearchState {
	if m.state == "" {
		return domain.SearchIdle
	}
	return m.state
}

func (m *MockSearchService) Results() []domain.SearchResult {
	return m.results
}

// Helper function to create test search results.
func testSearchResults() []domain.SearchResult {
	return []domain.SearchResult{
		{DocumentID: "doc-1", Similarity: 0.93, TextPreview: "Loan application for a mortgage...", Category: domain.CategoryLoanApplications},
		{DocumentID: "doc-2", Similarity: 0.71, TextPreview: "Complaint about fees..."},
	}
}

func readyView(mock *MockSearchService) *View {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), mock)
	view.SetDimensions(100, 40)
	return view
}

// search types query, presses enter and feeds the result back.
func search(t *testing.T, view *View, query string) {
	t.Helper()
	view.SetQuery(query)
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	view.Update(cmd())
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), &MockSearchService{})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Query())
	assert.True(t, view.InputFocused())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil)

	// Blink command from input
	assert.NotNil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, view.Ready())
	assert.Contains(t, view.View(), "Semantic Search")
}

func TestView_SearchShowsRankedHits(t *testing.T) {
	var gotQuery string
	mock := &MockSearchService{SearchFunc: func(_ context.Context, q string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
		gotQuery = q
		return testSearchResults(), nil
	}}
	view := readyView(mock)

	search(t, view, "mortgage")

	assert.Equal(t, "mortgage", gotQuery)
	items := view.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "doc-1", items[0].ID)
	assert.Equal(t, "Loan Applications · doc-1", items[0].Title)
	assert.Equal(t, "93.0%", items[0].Badge)
	assert.Equal(t, "doc-2", items[1].Title)
	assert.False(t, view.InputFocused())
	assert.Equal(t, status.StateResults, view.Status().State())
}

func TestView_NoResultsPlaceholder(t *testing.T) {
	view := readyView(&MockSearchService{})

	search(t, view, "nothing")

	assert.Contains(t, view.View(), render.NoResultsMessage)
	assert.True(t, view.InputFocused())
}

func TestView_FailurePlaceholder(t *testing.T) {
	mock := &MockSearchService{SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
		return nil, &domain.TransportError{Op: "search-documents", StatusCode: 500}
	}}
	view := readyView(mock)

	search(t, view, "fees")

	out := view.View()
	assert.Contains(t, out, render.SearchFailedMessage)
	assert.NotContains(t, out, render.NoResultsMessage)
	assert.Equal(t, status.StateError, view.Status().State())
}

func TestView_FailureClearsPreviousHits(t *testing.T) {
	fail := false
	mock := &MockSearchService{SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
		if fail {
			return nil, errors.New("offline")
		}
		return testSearchResults(), nil
	}}
	view := readyView(mock)
	search(t, view, "loan")
	require.Len(t, view.Items(), 2)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	fail = true
	search(t, view, "loan")

	assert.Empty(t, view.Items())
}

func TestView_BlankQueryKeepsInput(t *testing.T) {
	mock := &MockSearchService{SearchFunc: func(_ context.Context, q string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
		assert.Equal(t, "   ", q)
		return nil, domain.ErrEmptyInput
	}}
	view := readyView(mock)

	search(t, view, "   ")

	assert.True(t, view.InputFocused())
	assert.Equal(t, domain.SearchIdle, mock.State())
	assert.Equal(t, status.StateReady, view.Status().State())
}

func TestView_SearchWhileLoadingIgnored(t *testing.T) {
	mock := &MockSearchService{state: domain.SearchLoading}
	view := readyView(mock)
	view.SetQuery("loan")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_SelectOpensDocument(t *testing.T) {
	mock := &MockSearchService{SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
		return testSearchResults(), nil
	}}
	view := readyView(mock)
	search(t, view, "loan")

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentSelected{DocumentID: "doc-2"}, cmd())
}

func TestView_NewQueryRefocusesInput(t *testing.T) {
	mock := &MockSearchService{SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
		return testSearchResults(), nil
	}}
	view := readyView(mock)
	search(t, view, "loan")
	require.False(t, view.InputFocused())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := readyView(&MockSearchService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoSearchService(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.SetQuery("loan")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoSearchService)
}

func TestView_Reset(t *testing.T) {
	mock := &MockSearchService{SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
		return testSearchResults(), nil
	}}
	view := readyView(mock)
	search(t, view, "loan")

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.Empty(t, view.Items())
	assert.Equal(t, "", view.Query())
}
