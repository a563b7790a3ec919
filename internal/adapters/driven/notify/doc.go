// Package notify provides driven.Notifier implementations.
//
// Console prints styled lines for one-shot CLI commands. Queue buffers
// notifications for the TUI, which drains them as toasts.
package notify
