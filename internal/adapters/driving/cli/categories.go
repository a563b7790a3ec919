package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/render"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "List processed documents by category",
	Args:    cobra.NoArgs,
	RunE:    runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output groups as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if categoryService == nil {
		return errors.New("category service not configured")
	}

	if err := categoryService.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	view := categoryService.View()

	if categoriesJSON {
		return writeJSON(cmd, groupsJSON(view))
	}

	if view.Empty {
		cmd.Println(view.EmptyMessage)
		return nil
	}

	for i, group := range view.Groups {
		if i > 0 {
			cmd.Println()
		}
		cmd.Println(headingStyle.Render(fmt.Sprintf("%s %s (%d)", group.Icon, group.Label, len(group.Documents))))
		if len(group.Documents) == 0 {
			continue
		}
		t := newTable("Document", "Urgency", "Customer", "Processed")
		for _, doc := range group.Documents {
			t.Row(doc.Title, doc.Urgency, doc.CustomerID, doc.When)
		}
		cmd.Println(t.String())
	}
	return nil
}

type groupJSON struct {
	Key       string        `json:"key"`
	Label     string        `json:"label"`
	Documents []summaryJSON `json:"documents"`
}

type summaryJSON struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Urgency    string `json:"urgency,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	When       string `json:"when,omitempty"`
}

func groupsJSON(view render.GroupsView) []groupJSON {
	out := make([]groupJSON, 0, len(view.Groups))
	for _, g := range view.Groups {
		docs := make([]summaryJSON, 0, len(g.Documents))
		for _, d := range g.Documents {
			docs = append(docs, summaryJSON{
				DocumentID: d.DocumentID,
				Title:      d.Title,
				Urgency:    d.Urgency,
				CustomerID: d.CustomerID,
				When:       d.When,
			})
		}
		out = append(out, groupJSON{Key: g.Key, Label: g.Label, Documents: docs})
	}
	return out
}
