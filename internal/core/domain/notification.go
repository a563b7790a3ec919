package domain

// NotificationLevel controls how a notification is styled.
type NotificationLevel string

// Notification levels.
const (
	NotifyInfo    NotificationLevel = "info"
	NotifySuccess NotificationLevel = "success"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// Notification is a non-blocking, auto-dismissing message for the user.
type Notification struct {
	Level   NotificationLevel
	Message string
}
