// Package tui provides the interactive terminal user interface of the
// intake client. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
)

// ChatFactory opens a new conversation bound to scope.
type ChatFactory func(scope domain.ChatScope) driving.ChatService

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Upload stages, validates and submits files.
	Upload driving.UploadService

	// Recent holds the local history of processed documents.
	Recent driving.RecentService

	// Categories groups server documents by category.
	Categories driving.CategoryService

	// Search provides semantic search.
	Search driving.SearchService

	// Document retrieves stored documents.
	Document driving.DocumentService

	// Health checks the classification service. Optional.
	Health driving.HealthService

	// Settings manages application settings.
	Settings driving.SettingsService

	// NewChat opens assistant conversations.
	NewChat ChatFactory

	// Notifications delivers queued user notifications. Optional.
	Notifications <-chan domain.Notification

	// ResetDelay is how long a processed result stays before the upload
	// view returns to idle. Zero uses the default.
	ResetDelay time.Duration

	// ServerURL is shown in the menu subtitle.
	ServerURL string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.NewChat == nil {
		return ErrMissingChatFactory
	}
	return nil
}
