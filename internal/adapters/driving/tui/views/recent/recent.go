// Package recent provides the recent documents view for the TUI.
package recent

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// View lists the locally remembered documents, most recent first.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	list          *list.List
	statusbar     *status.Bar
	recentService driving.RecentService

	width  int
	height int
	ready  bool
}

// NewView creates a new recent documents view.
func NewView(s *styles.Styles, recentService driving.RecentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.ListHelp())

	v := &View{
		styles:        s,
		keymap:        km,
		list:          list.New(s, render.EmptyRecentMessage),
		statusbar:     bar,
		recentService: recentService,
	}
	v.Reload()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reload rebuilds the list from the service. Relative times are
// recomputed on every reload.
func (v *View) Reload() {
	if v.recentService == nil {
		v.list.SetItems(nil)
		return
	}
	entries := v.recentService.View()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, list.Item{
			ID:      e.DocumentID,
			Title:   e.CategoryIcon + " " + e.CategoryLabel,
			Badge:   e.UrgencyLabel,
			Preview: fmt.Sprintf("%s · %s", e.DocumentID, e.When),
		})
	}
	v.list.SetItems(items)
	v.statusbar.SetCount(len(items))
}

// Update handles messages for the recent view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RecentChanged:
		v.Reload()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key.Matches(msg, v.keymap.Refresh):
		v.Reload()
		return v, nil
	case key.Matches(msg, v.keymap.Select):
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		id := item.ID
		return v, func() tea.Msg {
			return messages.DocumentSelected{DocumentID: id}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the recent documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Recent Documents"),
		"",
		v.list.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-5)
	v.statusbar.SetWidth(width)
}

// List returns the underlying list.
func (v *View) List() *list.List {
	return v.list
}
