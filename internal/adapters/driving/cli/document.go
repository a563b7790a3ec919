package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/render"
)

var (
	documentJSON     bool
	documentMetaOnly bool
)

var documentCmd = &cobra.Command{
	Use:     "document [doc-id]",
	Aliases: []string{"doc"},
	Short:   "Show a stored document",
	Long:    `Prints the metadata and text preview of a document stored by the service.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDocument,
}

func init() {
	documentCmd.Flags().BoolVar(&documentJSON, "json", false, "output document as JSON")
	documentCmd.Flags().BoolVar(&documentMetaOnly, "meta", false, "print metadata only")
	rootCmd.AddCommand(documentCmd)
}

func runDocument(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %s not found", args[0])
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentJSON {
		return writeJSON(cmd, documentOutput{
			ID:       doc.ID,
			Metadata: rowsJSON(render.PresentRows(doc.Metadata)),
			Text:     render.Sanitize(doc.Text),
		})
	}

	cmd.Println(headingStyle.Render("Document " + doc.ID))
	printRows(cmd, render.PresentRows(doc.Metadata))
	if documentMetaOnly {
		return nil
	}

	cmd.Println()
	cmd.Println(headingStyle.Render("Content"))
	text := render.Sanitize(doc.Text)
	if text == "" {
		cmd.Println(missingStyle.Render("(no text stored)"))
		return nil
	}
	cmd.Println(text)
	return nil
}

type documentOutput struct {
	ID       string    `json:"id"`
	Metadata []rowJSON `json:"metadata"`
	Text     string    `json:"text"`
}
