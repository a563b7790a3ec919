package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
)

// RecentDocumentsKey names the record holding the recent-document history.
const RecentDocumentsKey = "recent_documents"

// recentStore implements driven.RecentStore.
type recentStore struct {
	store *Store
}

var _ driven.RecentStore = (*recentStore)(nil)

// recentRecord is the persisted shape of one history entry.
type recentRecord struct {
	DocumentID  string    `json:"document_id"`
	Category    string    `json:"category"`
	Urgency     string    `json:"urgency"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Load returns the stored history, or an empty slice if none exists.
func (r *recentStore) Load(ctx context.Context) ([]domain.RecentDocumentEntry, error) {
	raw, err := r.store.getValue(ctx, RecentDocumentsKey)
	if errors.Is(err, errNoRecord) {
		return []domain.RecentDocumentEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []recentRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPersistedState, err)
	}

	entries := make([]domain.RecentDocumentEntry, 0, len(records))
	for _, rec := range records {
		if rec.DocumentID == "" {
			return nil, fmt.Errorf("%w: entry without document_id", domain.ErrMalformedPersistedState)
		}
		entries = append(entries, domain.RecentDocumentEntry{
			DocumentID:  rec.DocumentID,
			Category:    rec.Category,
			Urgency:     domain.UrgencyLevel(rec.Urgency),
			ProcessedAt: rec.ProcessedAt,
		})
	}
	return entries, nil
}

// Save replaces the stored history.
func (r *recentStore) Save(ctx context.Context, entries []domain.RecentDocumentEntry) error {
	records := make([]recentRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, recentRecord{
			DocumentID:  e.DocumentID,
			Category:    e.Category,
			Urgency:     string(e.Urgency),
			ProcessedAt: e.ProcessedAt,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshalling recent documents: %w", err)
	}
	return r.store.putValue(ctx, RecentDocumentsKey, string(data))
}

// Close is a no-op; the owning Store closes the database.
func (r *recentStore) Close() error {
	return nil
}
