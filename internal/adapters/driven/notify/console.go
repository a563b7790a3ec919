package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// Ensure Console implements the interface.
var _ driven.Notifier = (*Console)(nil)

var levelStyles = map[domain.NotificationLevel]lipgloss.Style{
	domain.NotifyInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
	domain.NotifySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	domain.NotifyWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	domain.NotifyError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
}

var levelPrefixes = map[domain.NotificationLevel]string{
	domain.NotifyInfo:    "info",
	domain.NotifySuccess: "ok",
	domain.NotifyWarning: "warning",
	domain.NotifyError:   "error",
}

// Console writes one styled line per notification.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a Console writing to out, or stderr when out is nil.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stderr
	}
	return &Console{out: out}
}

// Notify implements driven.Notifier.
func (c *Console) Notify(n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, FormatLine(n))
}

// FormatLine renders n as "prefix: message" in the level's colour.
// Escape sequences in the message are stripped.
func FormatLine(n domain.Notification) string {
	prefix, ok := levelPrefixes[n.Level]
	if !ok {
		prefix = string(n.Level)
	}
	style, ok := levelStyles[n.Level]
	if !ok {
		style = levelStyles[domain.NotifyInfo]
	}
	return style.Render(prefix+":") + " " + render.Sanitize(n.Message)
}
