package categories

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// MockCategoryService implements driving.CategoryService for testing.
type MockCategoryService struct {
	RefreshFunc func(ctx context.Context) error
	groups      domain.CategoryGroups
	calls       int
}

func (m *MockCategoryService) Refresh(ctx context.Context) error {
	m.calls++
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *MockCategoryService) Groups() domain.CategoryGroups {
	return m.groups
}

func (m *MockCategoryService) View() render.GroupsView {
	return render.Groups(time.Now(), m.groups)
}

func sampleGroups() domain.CategoryGroups {
	return domain.CategoryGroups{
		{Key: domain.CategoryComplaints, Documents: []domain.DocumentSummary{
			{DocumentID: "doc-1", Filename: "complaint.pdf", Urgency: domain.UrgencyHigh, CustomerID: "C-42"},
			{DocumentID: "doc-2", Filename: "followup.pdf"},
		}},
		{Key: domain.CategoryKYCUpdates, Documents: []domain.DocumentSummary{
			{DocumentID: "doc-3"},
		}},
	}
}

func loaded(t *testing.T, svc *MockCategoryService) *View {
	t.Helper()
	v := NewView(styles.DefaultStyles(), svc)
	v.SetDimensions(100, 40)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func TestView_InitLoadsGroups(t *testing.T) {
	svc := &MockCategoryService{groups: sampleGroups()}
	v := loaded(t, svc)

	assert.Equal(t, 1, svc.calls)
	assert.False(t, v.Loading())

	items := v.List().Items()
	require.Len(t, items, 5)
	assert.True(t, items[0].Header)
	assert.Contains(t, items[0].Title, "Complaints (2)")
	assert.Equal(t, "complaint.pdf", items[1].Title)
	assert.Equal(t, "High", items[1].Badge)
	assert.Equal(t, "Customer C-42", items[1].Preview)
	assert.Equal(t, "doc-3", items[4].Title)

	require.NotNil(t, v.List().SelectedItem())
	assert.Equal(t, "doc-1", v.List().SelectedItem().ID)
	assert.Equal(t, 3, v.statusbar.Count())
}

func TestView_EmptyGrouping(t *testing.T) {
	v := loaded(t, &MockCategoryService{})

	assert.Contains(t, v.View(), render.EmptyGroupsMessage)
}

func TestView_RefreshError(t *testing.T) {
	v := loaded(t, &MockCategoryService{RefreshFunc: func(context.Context) error {
		return errors.New("offline")
	}})

	assert.Equal(t, status.StateError, v.statusbar.State())
	assert.Contains(t, v.View(), "Could not load categories")
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil)
	msg := v.Init()()

	loadedMsg, ok := msg.(messages.CategoriesLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loadedMsg.Err, ErrNoCategoryService)
}

func TestView_RefreshKey(t *testing.T) {
	svc := &MockCategoryService{}
	v := loaded(t, svc)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.True(t, v.Loading())

	// A second refresh is ignored while one is outstanding.
	_, again := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, again)

	v.Update(cmd())
	assert.Equal(t, 2, svc.calls)
	assert.False(t, v.Loading())
}

func TestView_SelectSkipsHeaders(t *testing.T) {
	v := loaded(t, &MockCategoryService{groups: sampleGroups()})

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentSelected{DocumentID: "doc-3"}, cmd())
}

func TestView_Back(t *testing.T) {
	v := NewView(nil, nil)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
