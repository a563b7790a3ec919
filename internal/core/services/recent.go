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

// Ensure RecentService implements the interface.
var _ driving.RecentService = (*RecentService)(nil)

// RecentService owns the bounded recent-document history.
type RecentService struct {
	store driven.RecentStore
	now   func() time.Time

	mu       sync.RWMutex
	entries  []domain.RecentDocumentEntry
	onChange func([]domain.RecentDocumentEntry)
}

// NewRecentService creates a recent-document service backed by store.
func NewRecentService(store driven.RecentStore) *RecentService {
	return &RecentService{
		store: store,
		now:   time.Now,
	}
}

// SetClock overrides the clock used for ProcessedAt and relative times.
func (s *RecentService) SetClock(now func() time.Time) {
	s.now = now
}

// OnChange registers fn to be called synchronously after every Record,
// with a copy of the new history.
func (s *RecentService) OnChange(fn func([]domain.RecentDocumentEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Load reads the durable history. Missing or malformed data loads as empty.
func (s *RecentService) Load(ctx context.Context) []domain.RecentDocumentEntry {
	entries, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPersistedState) {
			logger.Warn("Recent documents record is malformed, starting empty: %v", err)
		} else {
			logger.Warn("Failed to load recent documents, starting empty: %v", err)
		}
		entries = nil
	}
	if len(entries) > domain.MaxRecentDocuments {
		entries = entries[:domain.MaxRecentDocuments]
	}
	logger.Debug("Loaded %d recent documents", len(entries))

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return s.Entries()
}

// Record prepends result to the history, truncates it and persists it.
// The in-memory history and listener are updated even when the write
// fails; the save error is still returned.
func (s *RecentService) Record(ctx context.Context, result domain.ProcessResult) error {
	entry := domain.NewRecentDocumentEntry(result, s.now())

	s.mu.Lock()
	next := domain.PrependRecent(s.entries, entry)
	s.entries = next
	saveErr := s.store.Save(ctx, next)
	fn := s.onChange
	s.mu.Unlock()

	logger.Debug("Recorded %s as recent (%d entries)", entry.DocumentID, len(next))
	if fn != nil {
		fn(copyEntries(next))
	}
	if saveErr != nil {
		return fmt.Errorf("save recent documents: %w", saveErr)
	}
	return nil
}

// Entries returns the history, most recent first.
func (s *RecentService) Entries() []domain.RecentDocumentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEntries(s.entries)
}

// View projects the history with relative times computed now.
func (s *RecentService) View() []render.RecentView {
	return render.Recent(s.now(), s.Entries())
}

func copyEntries(in []domain.RecentDocumentEntry) []domain.RecentDocumentEntry {
	out := make([]domain.RecentDocumentEntry, len(in))
	copy(out, in)
	return out
}
