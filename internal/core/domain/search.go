package domain

// DefaultSearchResults is the n_results sent when none is configured.
const DefaultSearchResults = 5

// SearchOptions configures a semantic search query.
type SearchOptions struct {
	// Limit is the n_results sent to the service.
	Limit int

	// Category restricts results to one category key.
	Category string
}

// SearchResult represents a single ranked hit.
// Ordering is decided by the service and must not be changed.
type SearchResult struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// Similarity is in [0,1].
	Similarity float64

	// TextPreview is a short excerpt of the document text.
	TextPreview string

	// Category is the category key from the result metadata, if any.
	Category string
}

// SearchState is the display state of the search controller.
type SearchState string

// Search states. Empty and Failed must render differently.
const (
	SearchIdle    SearchState = "idle"
	SearchLoading SearchState = "loading"
	SearchResults SearchState = "results"
	SearchEmpty   SearchState = "empty"
	SearchFailed  SearchState = "failed"
)
