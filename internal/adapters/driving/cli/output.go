package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/render"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Italic(true)
	alertStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)
)

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(labelStyle).
		Headers(headers...)
}

// printResult writes a processed document view.
func printResult(cmd *cobra.Command, view *render.ResultView) {
	cmd.Println(headingStyle.Render("Document processed"))
	cmd.Println()
	printField(cmd, "Document ID", view.DocumentID)
	printField(cmd, "Category", view.CategoryIcon+" "+view.CategoryLabel)
	printField(cmd, "Urgency", view.UrgencyLabel)
	printField(cmd, "Department", view.Department)
	printField(cmd, "Confidence", view.Confidence)
	if view.RequiresImmediateAttention {
		printField(cmd, "Attention", alertStyle.Render("Requires immediate attention"))
	}

	cmd.Println()
	cmd.Println(headingStyle.Render("Metadata"))
	printRows(cmd, view.Metadata)

	if len(view.ExtractedInfo) > 0 {
		cmd.Println()
		cmd.Println(headingStyle.Render("Extracted Information"))
		printRows(cmd, view.ExtractedInfo)
	}
}

func printField(cmd *cobra.Command, label, value string) {
	cmd.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
}

func printRows(cmd *cobra.Command, rows []render.Row) {
	for _, row := range rows {
		switch {
		case row.Missing:
			cmd.Printf("  %s %s\n", labelStyle.Render(row.Label+":"), missingStyle.Render(render.NotFound))
		case len(row.Values) == 1:
			cmd.Printf("  %s %s\n", labelStyle.Render(row.Label+":"), row.Values[0])
		default:
			cmd.Printf("  %s\n", labelStyle.Render(row.Label+":"))
			for _, v := range row.Values {
				cmd.Printf("    - %s\n", v)
			}
		}
	}
}

// styleSpans renders assistant markup for a terminal.
func styleSpans(spans []render.Span) string {
	var b strings.Builder
	for _, span := range spans {
		switch span.Style {
		case render.SpanBold:
			b.WriteString(boldStyle.Render(span.Text))
		case render.SpanItalic:
			b.WriteString(italicStyle.Render(span.Text))
		case render.SpanBreak:
			b.WriteString("\n")
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// rowJSON is a projected key in machine-readable output.
type rowJSON struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Values  []string `json:"values"`
	Missing bool     `json:"missing,omitempty"`
}

func rowsJSON(rows []render.Row) []rowJSON {
	out := make([]rowJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowJSON{Key: r.Key, Label: r.Label, Values: r.Values, Missing: r.Missing})
	}
	return out
}
