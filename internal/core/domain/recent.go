package domain

import "time"

// MaxRecentDocuments caps the local history.
const MaxRecentDocuments = 10

// RecentDocumentEntry summarises one processed document in the local history.
type RecentDocumentEntry struct {
	DocumentID  string
	Category    string
	Urgency     UrgencyLevel
	ProcessedAt time.Time
}

// NewRecentDocumentEntry builds an entry for result processed at now.
func NewRecentDocumentEntry(result ProcessResult, now time.Time) RecentDocumentEntry {
	return RecentDocumentEntry{
		DocumentID:  result.DocumentID,
		Category:    result.Category,
		Urgency:     result.Urgency,
		ProcessedAt: now,
	}
}

// PrependRecent returns a new sequence with entry first, capped at
// MaxRecentDocuments. The input slice is not modified.
func PrependRecent(entries []RecentDocumentEntry, entry RecentDocumentEntry) []RecentDocumentEntry {
	n := len(entries) + 1
	if n > MaxRecentDocuments {
		n = MaxRecentDocuments
	}
	out := make([]RecentDocumentEntry, 0, n)
	out = append(out, entry)
	for _, e := range entries {
		if len(out) == n {
			break
		}
		out = append(out, e)
	}
	return out
}
