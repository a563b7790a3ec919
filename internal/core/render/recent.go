package render

import (
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// EmptyRecentMessage is shown when no document has been processed locally.
const EmptyRecentMessage = "No recent documents"

// RecentView is one line of the recent-documents list.
type RecentView struct {
	DocumentID    string
	CategoryLabel string
	CategoryIcon  string
	UrgencyLabel  string
	When          string
}

// Recent projects the local history. Relative times are computed here,
// never stored.
func Recent(now time.Time, entries []domain.RecentDocumentEntry) []RecentView {
	out := make([]RecentView, 0, len(entries))
	for _, e := range entries {
		out = append(out, RecentView{
			DocumentID:    e.DocumentID,
			CategoryLabel: Label(e.Category),
			CategoryIcon:  CategoryIcon(e.Category),
			UrgencyLabel:  Label(e.Urgency.String()),
			When:          RelativeTime(now, e.ProcessedAt),
		})
	}
	return out
}
