package driving

import (
	"context"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

// UploadService drives the stage/submit state machine for a single file.
type UploadService interface {
	// Stage validates file and holds it for submission, replacing any
	// previously staged file. Returns a *domain.ValidationError on
	// rejection and domain.ErrUploadInProgress while submitting.
	Stage(file domain.StagedFile) error

	// StagePath describes the file at path and stages it.
	StagePath(path string) error

	// Submit sends the staged file for processing.
	// Returns domain.ErrNothingStaged or domain.ErrUploadInProgress
	// without contacting the service.
	Submit(ctx context.Context) (*render.ResultView, error)

	// Reset drops the staged file and returns to idle.
	Reset() error

	// State returns the current state.
	State() domain.UploadState

	// Staged returns the staged file, if any.
	Staged() (domain.StagedFile, bool)
}
