// Package document provides the stored document view for the TUI.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

// View shows a stored document's metadata and text.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	ctx             context.Context

	documentID   string
	document     *domain.DocumentDetail
	back         messages.ViewType
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new document view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		ctx:             context.Background(),
		back:            messages.ViewMenu,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocument loads documentID. Esc returns to back.
func (v *View) SetDocument(documentID string, back messages.ViewType) tea.Cmd {
	v.documentID = documentID
	v.document = nil
	v.back = back
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return v.loadDocument()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) loadDocument() tea.Cmd {
	svc, ctx, id := v.documentService, v.ctx, v.documentID
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentLoaded{DocumentID: id, Err: ErrNoDocumentService}
		}
		doc, err := svc.Get(ctx, id)
		return messages.DocumentLoaded{DocumentID: id, Document: doc, Err: err}
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		// A late load for a document the user already left.
		if msg.DocumentID != v.documentID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.document = msg.Document
		v.layout()
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "r":
		if v.documentID != "" && !v.loading {
			v.loading = true
			return v, v.loadDocument()
		}
	case "tab":
		if v.documentID == "" {
			return v, nil
		}
		scope := domain.DocumentScope(v.documentID)
		return v, func() tea.Msg {
			return messages.ChatOpened{Scope: scope}
		}
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}

	return v, nil
}

// layout renders metadata and text into wrapped lines.
func (v *View) layout() {
	if v.document == nil {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Metadata"))
	b.WriteString("\n")
	rows := render.PresentRows(v.document.Metadata)
	if len(rows) == 0 {
		b.WriteString(v.styles.Muted.Render("  (none)"))
	} else {
		b.WriteString(v.styles.RenderRows(rows))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Text"))
	b.WriteString("\n")
	text := render.Sanitize(v.document.Text)
	if strings.TrimSpace(text) == "" {
		b.WriteString(v.styles.Muted.Render("(No text)"))
	} else {
		b.WriteString(text)
	}

	wrapped := ansi.Wrap(b.String(), contentWidth, "")
	v.lines = strings.Split(wrapped, "\n")
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.documentID != "" {
		title = "Document " + v.documentID
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
	case errors.Is(v.err, domain.ErrNotFound):
		b.WriteString(v.styles.Error.Render("Document not found"))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
	default:
		end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
		b.WriteString(strings.Join(v.lines[v.scrollOffset:end], "\n"))
		if len(v.lines) > v.visibleLines() {
			percentage := 0
			if v.maxScrollOffset() > 0 {
				percentage = v.scrollOffset * 100 / v.maxScrollOffset()
			}
			b.WriteString("\n\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
				percentage, v.scrollOffset+1, end, len(v.lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [tab] ask about this document  [r] reload  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
}

// DocumentID returns the ID of the shown document.
func (v *View) DocumentID() string {
	return v.documentID
}

// Document returns the loaded document.
func (v *View) Document() *domain.DocumentDetail {
	return v.document
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Loading reports whether a load is outstanding.
func (v *View) Loading() bool {
	return v.loading
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
