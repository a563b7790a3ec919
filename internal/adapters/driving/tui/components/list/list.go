// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
)

// Item is one line of a list. Header items group the items below them
// and cannot be selected.
type Item struct {
	// ID is returned on selection, typically a document ID.
	ID string

	Title   string
	Badge   string
	Preview string

	Header bool
}

// List displays items with a movable selection.
type List struct {
	items    []Item
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a list showing empty when it has no items.
func New(s *styles.Styles, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		selected: -1,
		empty:    empty,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *List) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	// Items take up to two lines
	visible := l.height / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderItem(i int) string {
	item := l.items[i]
	if item.Header {
		return l.styles.Subtitle.Render(item.Title)
	}

	indicator := "  "
	titleStyle := l.styles.Normal
	if i == l.selected {
		indicator = "> "
		titleStyle = l.styles.Selected
	}

	maxTitle := l.width - lipgloss.Width(item.Badge) - 6
	if maxTitle < 10 {
		maxTitle = 10
	}
	line := titleStyle.Render(indicator+Truncate(item.Title, maxTitle)) + "  " + l.styles.Muted.Render(item.Badge)

	if item.Preview == "" {
		return line
	}
	return line + "\n" + l.styles.Muted.Render("    "+Truncate(item.Preview, l.width-6))
}

// SetItems replaces the items and selects the first selectable one.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.selected = -1
	l.MoveDown()
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item, or -1.
func (l *List) Selected() int {
	return l.selected
}

// SelectedItem returns the selected item, or nil if none.
func (l *List) SelectedItem() *Item {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp selects the previous selectable item.
func (l *List) MoveUp() {
	for i := l.selected - 1; i >= 0; i-- {
		if !l.items[i].Header {
			l.selected = i
			return
		}
	}
}

// MoveDown selects the next selectable item.
func (l *List) MoveDown() {
	for i := l.selected + 1; i < len(l.items); i++ {
		if !l.items[i].Header {
			l.selected = i
			return
		}
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items, headers included.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}

// Truncate shortens s to maxLen runes on a single line.
func Truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
