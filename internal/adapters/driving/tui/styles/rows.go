package styles

import (
	"strings"

	"github.com/custodia-labs/docintake/internal/core/render"
)

// RenderRows renders projected key/value rows. Missing values use the
// Missing style so they stay distinguishable from real values.
func (s *Styles) RenderRows(rows []render.Row) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		label := s.Label.Render(row.Label + ":")
		switch {
		case row.Missing:
			lines = append(lines, "  "+label+" "+s.Missing.Render(render.NotFound))
		case len(row.Values) == 1:
			lines = append(lines, "  "+label+" "+s.Normal.Render(row.Values[0]))
		default:
			lines = append(lines, "  "+label)
			for _, v := range row.Values {
				lines = append(lines, "    • "+s.Normal.Render(v))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// RenderResult renders a processed document.
func (s *Styles) RenderResult(view *render.ResultView) string {
	var b strings.Builder

	b.WriteString(s.Subtitle.Render(view.CategoryIcon + " " + view.CategoryLabel))
	b.WriteString("\n")
	field := func(label, value string) {
		b.WriteString("  " + s.Label.Render(label+":") + " " + s.Normal.Render(value) + "\n")
	}
	field("Document ID", view.DocumentID)
	field("Urgency", view.UrgencyLabel)
	field("Department", view.Department)
	field("Confidence", view.Confidence)
	if view.RequiresImmediateAttention {
		b.WriteString("  " + s.Alert.Render("Requires immediate attention") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Metadata"))
	b.WriteString("\n")
	b.WriteString(s.RenderRows(view.Metadata))

	if len(view.ExtractedInfo) > 0 {
		b.WriteString("\n\n")
		b.WriteString(s.Subtitle.Render("Extracted Information"))
		b.WriteString("\n")
		b.WriteString(s.RenderRows(view.ExtractedInfo))
	}
	return b.String()
}
