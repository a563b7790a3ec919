// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewUpload stages and submits a file and shows the result.
	ViewUpload
	// ViewRecent lists documents processed on this machine.
	ViewRecent
	// ViewCategories lists server documents grouped by category.
	ViewCategories
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewChat is the global assistant.
	ViewChat
	// ViewDocument shows one stored document and its assistant.
	ViewDocument
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewUpload:
		return "upload"
	case ViewRecent:
		return "recent"
	case ViewCategories:
		return "categories"
	case ViewSearch:
		return "search"
	case ViewChat:
		return "chat"
	case ViewDocument:
		return "document"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentProcessed carries the outcome of a submit.
type DocumentProcessed struct {
	Result *render.ResultView
	Err    error
}

// UploadExpired is sent once the post-success delay has passed.
type UploadExpired struct{}

// RecentChanged signals the local history was updated.
type RecentChanged struct{}

// CategoriesLoaded signals a category refresh finished.
type CategoriesLoaded struct {
	Err error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Results []domain.SearchResult
	Err     error
}

// ChatReplied carries the outcome of one chat turn for a scope.
type ChatReplied struct {
	Scope domain.ChatScope
	Reply string
	Err   error
}

// ChatOpened requests the assistant view bound to Scope.
type ChatOpened struct {
	Scope domain.ChatScope
}

// DocumentSelected requests navigation to a document's detail view.
type DocumentSelected struct {
	DocumentID string
}

// DocumentLoaded carries a stored document.
type DocumentLoaded struct {
	DocumentID string
	Document   *domain.DocumentDetail
	Err        error
}

// NotificationReceived carries a queued notification to display.
type NotificationReceived struct {
	Notification domain.Notification
}

// ToastExpired removes the toast with ID.
type ToastExpired struct {
	ID int
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}
