// Package toast provides auto-dismissing notifications for the TUI.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docintake/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// Defaults for the stack.
const (
	DefaultLifetime = 4 * time.Second
	MaxVisible      = 3
)

type entry struct {
	id int
	n  domain.Notification
}

// Stack holds active toasts, oldest first.
type Stack struct {
	styles   *styles.Styles
	lifetime time.Duration
	entries  []entry
	nextID   int
	width    int
}

// NewStack creates an empty stack.
func NewStack(s *styles.Styles) *Stack {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Stack{styles: s, lifetime: DefaultLifetime, width: 80}
}

// SetLifetime changes how long new toasts stay visible.
func (s *Stack) SetLifetime(d time.Duration) {
	s.lifetime = d
}

// Push adds n and returns the command that dismisses it.
func (s *Stack) Push(n domain.Notification) tea.Cmd {
	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, entry{id: id, n: n})
	return tea.Tick(s.lifetime, func(time.Time) tea.Msg {
		return messages.ToastExpired{ID: id}
	})
}

// Dismiss removes the toast with id, if still present.
func (s *Stack) Dismiss(id int) {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Active returns the active notifications, oldest first.
func (s *Stack) Active() []domain.Notification {
	out := make([]domain.Notification, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.n
	}
	return out
}

// SetWidth bounds the toast width.
func (s *Stack) SetWidth(width int) {
	s.width = width
}

// View renders the most recent toasts, or "" when none are active.
func (s *Stack) View() string {
	if len(s.entries) == 0 {
		return ""
	}
	start := 0
	if len(s.entries) > MaxVisible {
		start = len(s.entries) - MaxVisible
	}

	maxWidth := s.width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	lines := make([]string, 0, MaxVisible)
	for _, e := range s.entries[start:] {
		lines = append(lines, s.styles.ToastStyle(e.n.Level).MaxWidth(maxWidth).Render(render.Sanitize(e.n.Message)))
	}
	return strings.Join(lines, "\n")
}
