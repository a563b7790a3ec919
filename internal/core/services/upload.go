package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// ProcessingFailedMessage is shown when a failed submit carries no detail.
const ProcessingFailedMessage = "Document processing failed"

// recentRecorder is the part of RecentService the upload flow needs.
type recentRecorder interface {
	Record(ctx context.Context, result domain.ProcessResult) error
}

// categoryRefresher is the part of CategoryService the upload flow needs.
type categoryRefresher interface {
	Refresh(ctx context.Context) error
}

// UploadService owns the staged file and the stage/submit state machine.
type UploadService struct {
	api        driven.IntakeAPI
	describer  driven.FileDescriber
	notifier   driven.Notifier
	validator  *Validator
	recent     recentRecorder
	categories categoryRefresher
	resetDelay time.Duration
	schedule   func(d time.Duration, fn func())

	mu     sync.Mutex
	state  domain.UploadState
	staged *domain.StagedFile
	// gen changes whenever the staged file changes, so a pending reset
	// never clears a file staged after the success it belongs to.
	gen uint64
}

// UploadDeps groups the collaborators of an UploadService.
// Describer, Recent and Categories are optional.
type UploadDeps struct {
	API        driven.IntakeAPI
	Describer  driven.FileDescriber
	Notifier   driven.Notifier
	Recent     recentRecorder
	Categories categoryRefresher
}

// NewUploadService creates an upload service. A resetDelay of zero uses
// domain.DefaultResetDelay.
func NewUploadService(deps UploadDeps, resetDelay time.Duration) *UploadService {
	if resetDelay <= 0 {
		resetDelay = domain.DefaultResetDelay
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = driven.NopNotifier{}
	}
	return &UploadService{
		api:        deps.API,
		describer:  deps.Describer,
		notifier:   notifier,
		validator:  NewValidator(),
		recent:     deps.Recent,
		categories: deps.Categories,
		resetDelay: resetDelay,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		state: domain.UploadIdle,
	}
}

// SetScheduler overrides how the post-success reset is scheduled.
func (s *UploadService) SetScheduler(schedule func(d time.Duration, fn func())) {
	s.schedule = schedule
}

// Stage validates file and holds it, discarding any previous file.
// A rejected file leaves the current state untouched.
func (s *UploadService) Stage(file domain.StagedFile) error {
	if err := s.validator.Validate(file); err != nil {
		logger.Debug("Rejected %s: %v", file.Name, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanStage() {
		return domain.ErrUploadInProgress
	}
	s.staged = &file
	s.state = domain.UploadStaged
	s.gen++
	logger.Debug("Staged %s (%d bytes, %q)", file.Name, file.SizeBytes, file.MimeHint)
	return nil
}

// StagePath describes the file at path and stages it.
func (s *UploadService) StagePath(path string) error {
	if s.describer == nil {
		return errors.New("no file describer configured")
	}
	file, err := s.describer.Describe(path)
	if err != nil {
		return fmt.Errorf("describe %s: %w", path, err)
	}
	return s.Stage(file)
}

// Submit sends the staged file for processing.
func (s *UploadService) Submit(ctx context.Context) (*render.ResultView, error) {
	s.mu.Lock()
	if s.state == domain.UploadSubmitting {
		s.mu.Unlock()
		return nil, domain.ErrUploadInProgress
	}
	// After a success the file is consumed even though it stays visible
	// until the reset fires.
	if s.staged == nil || s.state != domain.UploadStaged {
		s.mu.Unlock()
		return nil, domain.ErrNothingStaged
	}
	file := *s.staged
	s.state = domain.UploadSubmitting
	s.mu.Unlock()

	logger.Section("Process Document")
	logger.Debug("Submitting %s", file.Name)

	result, err := s.api.ProcessDocument(ctx, file)
	if err != nil {
		s.mu.Lock()
		s.state = domain.UploadStaged
		s.mu.Unlock()

		msg := domain.TransportDetail(err)
		if msg == "" {
			msg = ProcessingFailedMessage
		}
		logger.Warn("Processing %s failed: %v", file.Name, err)
		s.notifier.Notify(domain.Notification{Level: domain.NotifyError, Message: render.Sanitize(msg)})
		return nil, fmt.Errorf("process document: %w", err)
	}

	view := render.Project(*result)

	s.mu.Lock()
	s.state = domain.UploadSucceeded
	gen := s.gen
	s.mu.Unlock()

	logger.Info("Processed %s as %s (%s)", result.DocumentID, result.Category, result.Urgency)

	if s.recent != nil {
		if err := s.recent.Record(ctx, *result); err != nil {
			logger.Warn("Failed to record recent document: %v", err)
		}
	}
	if s.categories != nil {
		if err := s.categories.Refresh(ctx); err != nil {
			logger.Warn("Failed to refresh categories: %v", err)
		}
	}
	for _, alert := range result.Alerts {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyWarning, Message: render.Sanitize(alert)})
	}

	s.schedule(s.resetDelay, func() { s.expire(gen) })
	return &view, nil
}

// expire returns to idle after a success unless a new file was staged.
func (s *UploadService) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.state != domain.UploadSucceeded {
		return
	}
	s.staged = nil
	s.state = domain.UploadIdle
	logger.Debug("Upload reset to idle")
}

// Reset drops the staged file and returns to idle.
func (s *UploadService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.UploadSubmitting {
		return domain.ErrUploadInProgress
	}
	s.staged = nil
	s.state = domain.UploadIdle
	s.gen++
	return nil
}

// State returns the current state.
func (s *UploadService) State() domain.UploadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Staged returns the staged file, if any.
func (s *UploadService) Staged() (domain.StagedFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return domain.StagedFile{}, false
	}
	return *s.staged, true
}
