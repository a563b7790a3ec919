package render

import "github.com/custodia-labs/docintake/internal/core/domain"

// Placeholders for the terminal search states. They must differ.
const (
	NoResultsMessage    = "No matching documents found"
	SearchFailedMessage = "Search failed. Please try again."
)

// SearchHitView is one search result ready for display.
type SearchHitView struct {
	DocumentID    string
	Similarity    string
	Preview       string
	CategoryLabel string
}

// SearchHits projects results in the order given.
func SearchHits(results []domain.SearchResult) []SearchHitView {
	out := make([]SearchHitView, 0, len(results))
	for _, r := range results {
		hv := SearchHitView{
			DocumentID: r.DocumentID,
			Similarity: Confidence(r.Similarity),
			Preview:    Sanitize(r.TextPreview),
		}
		if r.Category != "" {
			hv.CategoryLabel = Label(r.Category)
		}
		out = append(out, hv)
	}
	return out
}

// SearchPlaceholder returns the text shown for a state without results.
func SearchPlaceholder(state domain.SearchState) string {
	switch state {
	case domain.SearchEmpty:
		return NoResultsMessage
	case domain.SearchFailed:
		return SearchFailedMessage
	case domain.SearchLoading:
		return "Searching..."
	default:
		return ""
	}
}
