// Package chat provides the assistant conversation view for the TUI.
// The same view serves the global assistant and the per-document one;
// the scope comes from the bound ChatService.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// ErrNoChatService indicates that no conversation is bound.
var ErrNoChatService = errors.New("chat service not available")

// Greetings shown before the first message.
const (
	GlobalGreeting   = "Ask about any processed document, for example \"Which complaints are urgent?\""
	DocumentGreeting = "Ask about this document, for example \"Who is the customer?\""
)

// View is a scrollable conversation with an input line.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	log       viewport.Model
	spinner   spinner.Model
	statusbar *status.Bar

	chat driving.ChatService
	ctx  context.Context

	// pending is shown until the service has logged it.
	pending string

	width  int
	height int
	ready  bool
}

// NewView creates a chat view bound to chat.
func NewView(s *styles.Styles, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	bar := status.NewBar(s, km)
	bar.SetHints([]key.Binding{km.Submit, km.Back})

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewField(s, "Message", "Type a question and press enter..."),
		log:       viewport.New(80, 12),
		spinner:   sp,
		statusbar: bar,
		chat:      chat,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.refresh()
	return v
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Bind switches the view to another conversation.
func (v *View) Bind(chat driving.ChatService) {
	v.chat = chat
	v.pending = ""
	v.input.Reset()
	v.statusbar.SetState(status.StateReady)
	v.refresh()
}

// Scope returns the scope of the bound conversation.
func (v *View) Scope() domain.ChatScope {
	if v.chat == nil {
		return domain.GlobalScope()
	}
	return v.chat.Scope()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatReplied:
		// Replies from another conversation are left to their own view.
		if msg.Scope != v.Scope() {
			return v, nil
		}
		v.handleReply(msg)
		return v, nil

	case spinner.TickMsg:
		if !v.Busy() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refresh()
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		back := messages.ViewMenu
		if !v.Scope().IsGlobal() {
			back = messages.ViewDocument
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	case tea.KeyEnter:
		return v, v.send()
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		v.log, cmd = v.log.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// send submits the input. Blank input and a second message while one is
// outstanding are ignored.
func (v *View) send() tea.Cmd {
	if v.chat == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoChatService}
		}
	}
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		v.statusbar.SetMessage(domain.EmptyChatMessage)
		return nil
	}
	if v.chat.Busy() || v.pending != "" {
		return nil
	}

	v.pending = text
	v.input.Reset()
	v.statusbar.SetState(status.StateBusy)
	v.statusbar.SetMessage("Thinking...")
	v.refresh()

	svc, ctx := v.chat, v.ctx
	scope := svc.Scope()
	ask := func() tea.Msg {
		reply, err := svc.Send(ctx, text)
		return messages.ChatReplied{Scope: scope, Reply: reply, Err: err}
	}
	return tea.Batch(v.spinner.Tick, ask)
}

func (v *View) handleReply(msg messages.ChatReplied) {
	if errors.Is(msg.Err, domain.ErrChatInProgress) {
		return
	}
	v.pending = ""
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("The assistant is unavailable")
	} else {
		v.statusbar.SetState(status.StateReady)
	}
	v.refresh()
}

// Busy reports whether a message is outstanding.
func (v *View) Busy() bool {
	return v.pending != "" || (v.chat != nil && v.chat.Busy())
}

// refresh re-renders the conversation into the viewport.
func (v *View) refresh() {
	v.log.SetContent(v.renderLog())
	v.log.GotoBottom()
}

func (v *View) renderLog() string {
	if v.chat == nil {
		return v.styles.Error.Render(ErrNoChatService.Error())
	}

	entries := v.chat.Log()
	if len(entries) == 0 && v.pending == "" {
		if v.Scope().IsGlobal() {
			return v.styles.Muted.Render(GlobalGreeting)
		}
		return v.styles.Muted.Render(DocumentGreeting)
	}

	width := v.width - 4
	if width < 20 {
		width = 20
	}
	blocks := make([]string, 0, len(entries)+1)
	pendingLogged := false
	for _, e := range entries {
		blocks = append(blocks, v.renderEntry(e, width))
		if v.pending != "" && e.Message.Role == domain.ChatRoleUser && e.Message.Content == v.pending {
			pendingLogged = true
		}
	}
	if v.pending != "" {
		if !pendingLogged {
			blocks = append(blocks, v.renderUser(v.pending, width))
		}
		blocks = append(blocks, v.spinner.View()+v.styles.Muted.Render(" thinking"))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderEntry(e domain.ChatEntry, width int) string {
	if e.Message.Role == domain.ChatRoleUser {
		return v.renderUser(e.Message.Content, width)
	}
	label := v.styles.AssistantMessage.Render("Assistant")
	if e.Failed {
		return label + "\n" + v.styles.Error.Width(width).Render(e.Message.Content)
	}
	body := v.styles.RenderSpans(render.Assistant(e.Message.Content))
	return label + "\n" + lipgloss.NewStyle().Width(width).Render(body)
}

func (v *View) renderUser(text string, width int) string {
	return v.styles.UserMessage.Render("You") + "\n" +
		v.styles.Normal.Width(width).Render(render.Sanitize(text))
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := "Assistant"
	if !v.Scope().IsGlobal() {
		title = "Assistant · " + v.Scope().DocumentID
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render(title),
		"",
		v.log.View(),
		"",
		v.input.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	logHeight := height - 8
	if logHeight < 3 {
		logHeight = 3
	}
	v.log.Width = width
	v.log.Height = logHeight
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.refresh()
}

// Input returns the message input.
func (v *View) Input() *input.Field {
	return v.input
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
