// Package categories provides the documents-by-category view for the TUI.
package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// ErrNoCategoryService indicates that no category service was provided.
var ErrNoCategoryService = errors.New("category service not available")

// View shows server-side documents grouped by category.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	list            *list.List
	statusbar       *status.Bar
	categoryService driving.CategoryService
	ctx             context.Context

	loading bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new categories view.
func NewView(s *styles.Styles, categoryService driving.CategoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.ListHelp())

	return &View{
		styles:          s,
		keymap:          km,
		list:            list.New(s, render.EmptyGroupsMessage),
		statusbar:       bar,
		categoryService: categoryService,
		ctx:             context.Background(),
	}
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the grouping.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh returns a command that refetches the grouping.
func (v *View) Refresh() tea.Cmd {
	v.loading = true
	v.statusbar.SetState(status.StateBusy)
	v.statusbar.SetMessage("Loading categories...")

	svc, ctx := v.categoryService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.CategoriesLoaded{Err: ErrNoCategoryService}
		}
		return messages.CategoriesLoaded{Err: svc.Refresh(ctx)}
	}
}

// Update handles messages for the categories view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CategoriesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("Could not load categories")
			return v, nil
		}
		v.rebuild()
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
		if v.loading {
			return v, nil
		}
		return v, v.Refresh()
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

// rebuild projects the held grouping into list items.
func (v *View) rebuild() {
	if v.categoryService == nil {
		v.list.SetItems(nil)
		return
	}
	view := v.categoryService.View()
	items := make([]list.Item, 0)
	count := 0
	for _, g := range view.Groups {
		items = append(items, list.Item{
			Header: true,
			Title:  fmt.Sprintf("%s %s (%d)", g.Icon, g.Label, len(g.Documents)),
		})
		for _, d := range g.Documents {
			items = append(items, list.Item{
				ID:      d.DocumentID,
				Title:   d.Title,
				Badge:   d.Urgency,
				Preview: summaryLine(d),
			})
			count++
		}
	}
	v.list.SetItems(items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCount(count)
	v.statusbar.SetMessage(fmt.Sprintf("%d categories", len(view.Groups)))
}

func summaryLine(d render.SummaryView) string {
	parts := make([]string, 0, 2)
	if d.CustomerID != "" {
		parts = append(parts, "Customer "+d.CustomerID)
	}
	if d.When != "" {
		parts = append(parts, d.When)
	}
	return strings.Join(parts, " · ")
}

// View renders the categories view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case v.loading && v.list.IsEmpty():
		body = v.styles.Muted.Render("Loading...")
	case v.err != nil && v.list.IsEmpty():
		body = v.styles.Error.Render("Could not load categories. Press r to retry.")
	default:
		body = v.list.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Documents by Category"),
		"",
		body,
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

// Loading reports whether a refresh is outstanding.
func (v *View) Loading() bool {
	return v.loading
}
