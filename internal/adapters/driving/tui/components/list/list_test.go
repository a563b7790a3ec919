package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grouped() []Item {
	return []Item{
		{Title: "Loan Applications", Header: true},
		{ID: "doc-1", Title: "kredit.pdf", Badge: "High"},
		{ID: "doc-2", Title: "antrag.pdf", Badge: "Low"},
		{Title: "Complaints", Header: true},
		{ID: "doc-3", Title: "beschwerde.txt", Preview: "Sehr geehrte Damen und Herren"},
	}
}

func TestList_Empty(t *testing.T) {
	l := New(nil, "No recent documents")

	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedItem())
	assert.Contains(t, l.View(), "No recent documents")
}

func TestList_SetItemsSkipsLeadingHeader(t *testing.T) {
	l := New(nil, "")

	l.SetItems(grouped())

	require.NotNil(t, l.SelectedItem())
	assert.Equal(t, "doc-1", l.SelectedItem().ID)
}

func TestList_NavigationSkipsHeaders(t *testing.T) {
	l := New(nil, "")
	l.SetItems(grouped())

	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, "doc-3", l.SelectedItem().ID)

	l.MoveDown()
	assert.Equal(t, "doc-3", l.SelectedItem().ID)

	l.MoveUp()
	assert.Equal(t, "doc-2", l.SelectedItem().ID)

	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, "doc-1", l.SelectedItem().ID)
}

func TestList_UpdateKeys(t *testing.T) {
	l := New(nil, "")
	l.SetItems(grouped())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "doc-2", l.SelectedItem().ID)

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "doc-1", l.SelectedItem().ID)
}

func TestList_OnlyHeaders(t *testing.T) {
	l := New(nil, "")

	l.SetItems([]Item{{Title: "Complaints", Header: true}})

	assert.Equal(t, -1, l.Selected())
	assert.Nil(t, l.SelectedItem())
}

func TestList_View(t *testing.T) {
	l := New(nil, "")
	l.SetDimensions(80, 20)
	l.SetItems(grouped())

	view := l.View()

	assert.Contains(t, view, "Loan Applications")
	assert.Contains(t, view, "kredit.pdf")
	assert.Contains(t, view, "High")
	assert.Contains(t, view, "Sehr geehrte")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "äöü", Truncate("äöüß", 3))
}
