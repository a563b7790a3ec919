// Package search provides the semantic search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.List
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	width      int
	height     int
	ready      bool
	focusInput bool // true = typing a query, false = navigating results
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewField(s, "Search", "Describe the document you are looking for..."),
		list:          list.New(s, ""),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.performSearch(v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keymap.Select):
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		id := item.ID
		return v, func() tea.Msg {
			return messages.DocumentSelected{DocumentID: id}
		}
	case key.Matches(msg, v.keymap.NewInput):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// performSearch runs query in the background. Blank queries are passed
// through so the service can reject and report them.
func (v *View) performSearch(query string) tea.Cmd {
	if v.searchService == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
	}
	if v.searchService.State() == domain.SearchLoading {
		return nil
	}

	v.statusbar.SetState(status.StateBusy)
	v.statusbar.SetMessage("Searching...")
	svc, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		results, err := svc.Search(ctx, query, domain.SearchOptions{})
		return messages.SearchCompleted{Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	switch {
	case errors.Is(msg.Err, domain.ErrEmptyInput):
		v.statusbar.SetState(status.StateReady)
		return
	case errors.Is(msg.Err, domain.ErrSearchInProgress):
		return
	case msg.Err != nil:
		v.list.SetItems(nil)
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(render.SearchFailedMessage)
		return
	}

	hits := render.SearchHits(msg.Results)
	items := make([]list.Item, 0, len(hits))
	for _, h := range hits {
		title := h.DocumentID
		if h.CategoryLabel != "" {
			title = h.CategoryLabel + " · " + h.DocumentID
		}
		items = append(items, list.Item{
			ID:      h.DocumentID,
			Title:   title,
			Badge:   h.Similarity,
			Preview: h.Preview,
		})
	}
	v.list.SetItems(items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetCount(len(items))
	v.statusbar.SetMessage(fmt.Sprintf("%d results", len(items)))
	v.statusbar.SetHints(v.keymap.ResultsHelp())

	if len(items) > 0 {
		v.focusInput = false
		v.input.Blur()
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	body := v.list.View()
	if v.list.IsEmpty() {
		body = v.placeholder()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Semantic Search"),
		"",
		v.input.View(),
		"",
		body,
		"",
		v.statusbar.View(),
	)
}

func (v *View) placeholder() string {
	if v.searchService == nil {
		return v.styles.Error.Render(ErrNoSearchService.Error())
	}
	state := v.searchService.State()
	text := render.SearchPlaceholder(state)
	if state == domain.SearchFailed {
		return v.styles.Error.Render(text)
	}
	return v.styles.Muted.Render(text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Items returns the listed hits.
func (v *View) Items() []list.Item {
	return v.list.Items()
}

// SelectedItem returns the selected hit.
func (v *View) SelectedItem() *list.Item {
	return v.list.SelectedItem()
}

// Reset resets the view to input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetItems(nil)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetHints(nil)
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
