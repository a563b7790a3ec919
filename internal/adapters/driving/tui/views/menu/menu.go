// Package menu is the TUI start screen: connection state and the numbered list of views.
package menu

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
)

// Item is one numbered menu entry.
type Item struct {
	Label string
	// Description is shown under the menu while the item is selected.
	Description string
	View        messages.ViewType
	Quit        bool // If true, selecting this item quits the app
}

// Connection states shown under the title.
const (
	connChecking    = "checking..."
	connUnreachable = "unreachable"
)

// View is the start screen.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int

	// server is the service URL; health and healthErr hold the last check.
	server    string
	checked   bool
	health    *domain.Health
	healthErr error

	width  int
	height int
	ready  bool
}

// NewView returns the menu with the first entry selected.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Upload Document", Description: "Classify a PDF, image or text file", View: messages.ViewUpload},
			{Label: "Recent Documents", Description: "The last documents processed on this machine", View: messages.ViewRecent},
			{Label: "Documents by Category", Description: "Everything the service has stored, grouped", View: messages.ViewCategories},
			{Label: "Search", Description: "Find documents by meaning", View: messages.ViewSearch},
			{Label: "Assistant", Description: "Ask questions across all documents", View: messages.ViewChat},
			{Label: "Settings", Description: "Service address, limits and timeouts", View: messages.ViewSettings},
			{Label: "Help", Description: "Keyboard shortcuts", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles resize and key messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case "down", "j":
		if v.selected < len(v.items)-1 {
			v.selected++
		}
		return v, nil

	case "?":
		return v, changeTo(messages.ViewHelp)

	case "enter":
		return v, v.choose(v.selected)

	case "q":
		return v, tea.Quit
	}

	// Digits jump straight to the numbered entry.
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(v.items) {
		v.selected = n - 1
		return v, v.choose(v.selected)
	}
	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return changeTo(item.View)
}

func changeTo(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the title, connection line, entries and key help.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Intake"))
	b.WriteString("\n")
	b.WriteString(v.connectionLine())
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := strconv.Itoa(i+1) + ". " + item.Label
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := v.items[v.selected].Description; desc != "" {
		b.WriteString(v.styles.Muted.Render(desc))
	}
	b.WriteString("\n\n")
	jump := "[1-" + strconv.Itoa(len(v.items)) + "] Jump"
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  " + jump + "  [Enter] Select  [q] Quit"))

	return b.String()
}

// connectionLine renders "server · status", coloured by the last health check.
func (v *View) connectionLine() string {
	if v.server == "" {
		return v.styles.Muted.Render("Classification, routing and search")
	}

	text := v.Connection()
	var status lipgloss.Style
	switch text {
	case connChecking:
		status = v.styles.Muted
	case connUnreachable:
		status = v.styles.Error
	default:
		status = v.styles.Success
	}

	line := v.styles.Muted.Render(v.server+" · ") + status.Render(text)
	if v.checked && v.health != nil && v.health.Service != "" {
		line += "\n" + v.styles.Muted.Render(v.health.Service)
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SetServer sets the service URL shown under the title.
func (v *View) SetServer(url string) {
	v.server = url
}

// SetHealth records the result of a health check.
func (v *View) SetHealth(h *domain.Health, err error) {
	v.checked = true
	v.health = h
	v.healthErr = err
}

// Connection returns the status text shown beside the server URL.
func (v *View) Connection() string {
	switch {
	case !v.checked:
		return connChecking
	case v.healthErr != nil || v.health == nil:
		return connUnreachable
	default:
		return v.health.Status
	}
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
