package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/components/toast"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/categories"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/recent"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
)

// queuedNotification is delivered by the notification listener.
// Unlike messages.NotificationReceived it re-arms the listener.
type queuedNotification struct {
	notification domain.Notification
	closed       bool
}

// recentUpdated is delivered by the recent-history listener.
type recentUpdated struct{}

// healthChecked carries the startup health check result.
type healthChecked struct {
	health *domain.Health
	err    error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView       *menu.View
	uploadView     *upload.View
	recentView     *recent.View
	categoriesView *categories.View
	searchView     *search.View
	chatView       *chat.View
	documentView   *document.View
	settingsView   *settings.View

	// toasts shows transient notifications over every view.
	toasts *toast.Stack

	// globalChat is the single application-wide conversation.
	globalChat driving.ChatService

	// docChats holds one conversation per document for the session.
	docChats map[string]driving.ChatService

	// recentSignal is written by the recent service's change hook.
	recentSignal chan struct{}

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	globalChat := ports.NewChat(domain.GlobalScope())

	menuView := menu.NewView(s)
	menuView.SetServer(ports.ServerURL)

	var recentSignal chan struct{}
	if ports.Recent != nil {
		recentSignal = make(chan struct{}, 1)
		ports.Recent.OnChange(func([]domain.RecentDocumentEntry) {
			select {
			case recentSignal <- struct{}{}:
			default:
			}
		})
	}

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menuView,
		uploadView:     upload.NewView(s, ports.Upload, ports.ResetDelay),
		recentView:     recent.NewView(s, ports.Recent),
		categoriesView: categories.NewView(s, ports.Categories),
		searchView:     search.NewView(s, nil, ports.Search),
		chatView:       chat.NewView(s, globalChat),
		documentView:   document.NewView(s, ports.Document),
		settingsView:   settings.NewView(s, ports.Settings),
		toasts:         toast.NewStack(s),
		globalChat:     globalChat,
		docChats:       make(map[string]driving.ChatService),
		recentSignal:   recentSignal,
		currentView:    messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.categoriesView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	a.documentView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("intake - Document Intake"),
		a.listen(),
		a.listenRecent(),
		a.checkHealth(),
	)
}

// listen waits for the next queued notification.
func (a *App) listen() tea.Cmd {
	ch := a.ports.Notifications
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		return queuedNotification{notification: n, closed: !ok}
	}
}

// listenRecent waits for the next change to the recent history.
func (a *App) listenRecent() tea.Cmd {
	ch := a.recentSignal
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return recentUpdated{}
	}
}

func (a *App) checkHealth() tea.Cmd {
	svc, ctx := a.ports.Health, a.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		h, err := svc.Check(ctx)
		return healthChecked{health: h, err: err}
	}
}

// chatFor returns the conversation for scope, creating it on first use.
func (a *App) chatFor(scope domain.ChatScope) driving.ChatService {
	if scope.IsGlobal() {
		return a.globalChat
	}
	c, ok := a.docChats[scope.DocumentID]
	if !ok {
		c = a.ports.NewChat(scope)
		a.docChats[scope.DocumentID] = c
	}
	return c
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case queuedNotification:
		if msg.closed {
			return a, nil
		}
		return a, tea.Batch(a.toasts.Push(msg.notification), a.listen())

	case messages.NotificationReceived:
		return a, a.toasts.Push(msg.Notification)

	case messages.ToastExpired:
		a.toasts.Dismiss(msg.ID)
		return a, nil

	case healthChecked:
		a.menuView.SetHealth(msg.health, msg.err)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.toasts.Push(domain.Notification{Level: domain.NotifyError, Message: msg.Err.Error()})

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.DocumentSelected:
		back := a.currentView
		a.currentView = messages.ViewDocument
		return a, a.documentView.SetDocument(msg.DocumentID, back)

	case messages.ChatOpened:
		a.chatView.Bind(a.chatFor(msg.Scope))
		a.currentView = messages.ViewChat
		return a, a.chatView.Init()

	case messages.DocumentProcessed, messages.UploadExpired:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case recentUpdated:
		a.recentView, cmd = a.recentView.Update(messages.RecentChanged{})
		return a, tea.Batch(cmd, a.listenRecent())

	case messages.RecentChanged:
		a.recentView, cmd = a.recentView.Update(msg)
		return a, cmd

	case messages.CategoriesLoaded:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ChatReplied:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.DocumentLoaded:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		// Only the upload and chat views animate.
		switch a.currentView {
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks) to the active view
	return a, a.forward(msg)
}

// switchTo activates view and runs its entry command.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewUpload:
		a.uploadView.Reset()
		return a.uploadView.Init()
	case messages.ViewRecent:
		a.recentView.Reload()
		return nil
	case messages.ViewCategories:
		return a.categoriesView.Init()
	case messages.ViewSearch:
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewChat:
		a.chatView.Bind(a.globalChat)
		return a.chatView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewDocument, messages.ViewHelp:
		// Other views don't need special initialisation
	}
	return nil
}

// forward sends msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewRecent:
		a.recentView, cmd = a.recentView.Update(msg)
	case messages.ViewCategories:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewUpload:
		body = a.uploadView.View()
	case messages.ViewRecent:
		body = a.recentView.View()
	case messages.ViewCategories:
		body = a.categoriesView.View()
	case messages.ViewSearch:
		body = a.searchView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewDocument:
		body = a.documentView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	if toasts := a.toasts.View(); toasts != "" {
		return lipgloss.JoinVertical(lipgloss.Left, toasts, body)
	}
	return body
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  ?           Help
  q           Quit

Upload:
  (type)      Path of a PDF, JPEG, PNG or text file
  enter       Stage the file, then enter again to process it
  ctrl+x      Clear the staged file
  pgup/pgdn   Scroll the result

Lists (recent, categories, search results):
  j/k, ↑/↓    Navigate
  enter       Open document
  r           Refresh
  n, /        New search query

Document:
  tab         Ask the assistant about this document

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Toasts returns the active notifications.
func (a *App) Toasts() []domain.Notification {
	return a.toasts.Active()
}

// ChatScope returns the scope bound to the chat view.
func (a *App) ChatScope() domain.ChatScope {
	return a.chatView.Scope()
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Toasts take up to three lines above the view.
	viewHeight := height - toast.MaxVisible
	a.menuView.SetDimensions(width, viewHeight)
	a.uploadView.SetDimensions(width, viewHeight)
	a.recentView.SetDimensions(width, viewHeight)
	a.categoriesView.SetDimensions(width, viewHeight)
	a.searchView.SetDimensions(width, viewHeight)
	a.chatView.SetDimensions(width, viewHeight)
	a.documentView.SetDimensions(width, viewHeight)
	a.settingsView.SetDimensions(width, viewHeight)
	a.toasts.SetWidth(width)
}
