package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
)

// Ensure RecentStore implements the interface.
var _ driven.RecentStore = (*RecentStore)(nil)

// RecentStore keeps the recent-document record in memory.
type RecentStore struct {
	mu      sync.Mutex
	entries []domain.RecentDocumentEntry
	saves   int

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// NewRecentStore creates an empty in-memory recent store.
func NewRecentStore() *RecentStore {
	return &RecentStore{}
}

// Load returns a copy of the stored entries.
func (s *RecentStore) Load(_ context.Context) ([]domain.RecentDocumentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	out := make([]domain.RecentDocumentEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save replaces the stored entries.
func (s *RecentStore) Save(_ context.Context, entries []domain.RecentDocumentEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.entries = make([]domain.RecentDocumentEntry, len(entries))
	copy(s.entries, entries)
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *RecentStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close is a no-op.
func (s *RecentStore) Close() error {
	return nil
}
