package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/render"
)

var processJSON bool

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Classify a document",
	Long: `Validates a local file and submits it to the classification service.

Accepted types are PDF, JPEG, PNG and plain text up to 10 MB. The result
shows the assigned category, urgency and department along with extracted
metadata. Alerts raised by the service are printed to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	if err := uploadService.StagePath(args[0]); err != nil {
		return fmt.Errorf("cannot upload: %w", err)
	}

	view, err := uploadService.Submit(cmd.Context())
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	if processJSON {
		return writeJSON(cmd, resultJSON(view))
	}
	printResult(cmd, view)
	return nil
}

type processOutput struct {
	DocumentID                 string    `json:"document_id"`
	Category                   string    `json:"category"`
	Urgency                    string    `json:"urgency"`
	Department                 string    `json:"department"`
	Confidence                 string    `json:"confidence"`
	RequiresImmediateAttention bool      `json:"requires_immediate_attention"`
	Metadata                   []rowJSON `json:"metadata"`
	ExtractedInfo              []rowJSON `json:"extracted_info"`
}

func resultJSON(view *render.ResultView) processOutput {
	return processOutput{
		DocumentID:                 view.DocumentID,
		Category:                   view.CategoryKey,
		Urgency:                    view.Urgency.String(),
		Department:                 view.Department,
		Confidence:                 view.Confidence,
		RequiresImmediateAttention: view.RequiresImmediateAttention,
		Metadata:                   rowsJSON(view.Metadata),
		ExtractedInfo:              rowsJSON(view.ExtractedInfo),
	}
}
