// Package upload provides the stage, submit and result view for the TUI.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// ErrNoUploadService indicates that no upload service was provided.
var ErrNoUploadService = errors.New("upload service is required")

// View stages a file by path, submits it and shows the processed result.
// The staged file and state are read from the service on every render.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	spinner   spinner.Model
	result    viewport.Model
	statusbar *status.Bar

	uploadService driving.UploadService
	resetDelay    time.Duration
	ctx           context.Context

	last   *render.ResultView
	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, uploadService driving.UploadService, resetDelay time.Duration) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if resetDelay <= 0 {
		resetDelay = domain.DefaultResetDelay
	}
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	bar := status.NewBar(s, km)
	bar.SetHints([]key.Binding{km.Submit, km.Clear, km.Back})

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewField(s, "File", "Path to a PDF, JPEG, PNG or text file..."),
		spinner:       sp,
		result:        viewport.New(80, 10),
		statusbar:     bar,
		uploadService: uploadService,
		resetDelay:    resetDelay,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentProcessed:
		return v.handleProcessed(msg)

	case messages.UploadExpired:
		if v.state() == domain.UploadIdle {
			v.statusbar.SetState(status.StateReady)
		}
		return v, nil

	case spinner.TickMsg:
		if v.state() != domain.UploadSubmitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case key.Matches(msg, v.keymap.Clear):
		v.clear()
		return v, nil

	case msg.Type == tea.KeyEnter:
		path := strings.TrimSpace(v.input.Value())
		if path != "" {
			return v, v.stage(path)
		}
		return v, v.submit()

	case msg.String() == "pgup" || msg.String() == "pgdown":
		var cmd tea.Cmd
		v.result, cmd = v.result.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// stage validates and holds the file at path.
// Rejections are surfaced as notifications.
func (v *View) stage(path string) tea.Cmd {
	if v.uploadService == nil {
		return errorCmd(ErrNoUploadService)
	}
	path = expandHome(path)
	if err := v.uploadService.StagePath(path); err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return notify(domain.NotifyError, stageMessage(err))
	}
	v.input.Reset()
	file, _ := v.uploadService.Staged()
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(fmt.Sprintf("Staged %s, press enter to process", file.Name))
	return nil
}

// submit sends the staged file. Gating is left to the service.
func (v *View) submit() tea.Cmd {
	if v.uploadService == nil {
		return errorCmd(ErrNoUploadService)
	}
	file, ok := v.uploadService.Staged()
	if !ok || v.state() != domain.UploadStaged {
		return nil
	}

	v.statusbar.SetState(status.StateBusy)
	v.statusbar.SetMessage("Processing " + file.Name + "...")
	svc, ctx := v.uploadService, v.ctx

	process := func() tea.Msg {
		result, err := svc.Submit(ctx)
		return messages.DocumentProcessed{Result: result, Err: err}
	}
	return tea.Batch(v.spinner.Tick, process)
}

func (v *View) handleProcessed(msg messages.DocumentProcessed) (*View, tea.Cmd) {
	if msg.Err != nil {
		// Gating rejections change nothing on screen.
		if errors.Is(msg.Err, domain.ErrUploadInProgress) || errors.Is(msg.Err, domain.ErrNothingStaged) {
			return v, nil
		}
		v.last = nil
		v.result.SetContent("")
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("Processing failed, press enter to retry")
		return v, nil
	}

	v.last = msg.Result
	v.result.SetContent(v.styles.RenderResult(msg.Result))
	v.result.GotoTop()
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("Processed " + msg.Result.DocumentID)

	expire := tea.Tick(v.resetDelay, func(time.Time) tea.Msg {
		return messages.UploadExpired{}
	})
	return v, expire
}

func (v *View) clear() {
	if v.uploadService == nil {
		return
	}
	if err := v.uploadService.Reset(); err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return
	}
	v.statusbar.SetState(status.StateReady)
}

func (v *View) state() domain.UploadState {
	if v.uploadService == nil {
		return domain.UploadIdle
	}
	return v.uploadService.State()
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Upload Document"), "", v.input.View(), "")
	sections = append(sections, v.renderStaged(), "")

	if v.last != nil {
		sections = append(sections, v.result.View())
	} else {
		sections = append(sections, v.styles.Muted.Render("Accepted: PDF, JPEG, PNG, TXT up to 10 MB"))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderStaged() string {
	if v.uploadService == nil {
		return v.styles.Error.Render(ErrNoUploadService.Error())
	}
	file, ok := v.uploadService.Staged()
	if !ok {
		return v.styles.Muted.Render("No file staged")
	}

	line := v.styles.Label.Render("Staged: ") + v.styles.Normal.Render(file.Name) +
		v.styles.Muted.Render(fmt.Sprintf("  %s  %s", formatSize(file.SizeBytes), file.MimeHint))
	switch v.state() {
	case domain.UploadSubmitting:
		line += "  " + v.spinner.View() + v.styles.Muted.Render(" processing")
	case domain.UploadSucceeded:
		line += "  " + v.styles.Success.Render("done")
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	resultHeight := height - 10
	if resultHeight < 3 {
		resultHeight = 3
	}
	v.result.Width = width
	v.result.Height = resultHeight
	if v.last != nil {
		v.result.SetContent(v.styles.RenderResult(v.last))
	}
}

// Result returns the last rendered result, if any.
func (v *View) Result() *render.ResultView {
	return v.last
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Input returns the path input.
func (v *View) Input() *input.Field {
	return v.input
}

// Reset clears the input. The staged file is kept.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
}

func stageMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		switch ve.Kind {
		case domain.ValidationTooLarge:
			return fmt.Sprintf("%s is too large (max 10 MB)", ve.FileName)
		case domain.ValidationUnsupportedType:
			return fmt.Sprintf("%s is not a supported file type", ve.FileName)
		}
	}
	if errors.Is(err, domain.ErrUploadInProgress) {
		return "An upload is already in progress"
	}
	return err.Error()
}

func formatSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	}
}

func notify(level domain.NotificationLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return messages.NotificationReceived{Notification: domain.Notification{Level: level, Message: text}}
	}
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}
