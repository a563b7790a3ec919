package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

var (
	searchLimit    int
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search processed documents",
	Long: `Performs semantic search across every processed document.
Results are ranked by the service and shown with their similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from search.n_results)")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict results to a category key")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:    searchLimit,
		Category: searchCategory,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

type searchHitJSON struct {
	DocumentID  string  `json:"document_id"`
	Similarity  float64 `json:"similarity"`
	Category    string  `json:"category,omitempty"`
	TextPreview string  `json:"text_preview"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchHitJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchHitJSON{
			DocumentID:  r.DocumentID,
			Similarity:  r.Similarity,
			Category:    r.Category,
			TextPreview: render.Sanitize(r.TextPreview),
		})
	}
	return writeJSON(cmd, out)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println(render.NoResultsMessage)
		return nil
	}

	t := newTable("#", "Document", "Category", "Match", "Preview")
	for i, hit := range render.SearchHits(results) {
		t.Row(fmt.Sprintf("%d", i+1), hit.DocumentID, hit.CategoryLabel, hit.Similarity, truncate(hit.Preview, 60))
	}
	cmd.Println(t.String())
	return nil
}

// truncate shortens s to maxLen runes on one line.
func truncate(s string, maxLen int) string {
	runes := []rune(flatten(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func flatten(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
