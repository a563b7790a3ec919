package driven

import "github.com/custodia-labs/docintake/internal/core/domain"

// Notifier shows transient messages to the user.
// Notify must not block the caller.
type Notifier interface {
	Notify(n domain.Notification)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(domain.Notification) {}
