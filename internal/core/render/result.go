package render

import "github.com/custodia-labs/docintake/internal/core/domain"

// Row is one key of a projected mapping.
type Row struct {
	Key   string
	Label string

	// Values holds one entry per display line.
	Values []string

	// Missing is set when the key is declared but has no usable value.
	// Values then holds the single NotFound placeholder.
	Missing bool
}

// ResultView is a processed document ready for display.
type ResultView struct {
	DocumentID string

	CategoryKey   string
	CategoryLabel string
	CategoryIcon  string

	Urgency      domain.UrgencyLevel
	UrgencyLabel string

	Department string
	Confidence string

	RequiresImmediateAttention bool

	// Metadata has a row for every declared key, present or not.
	Metadata []Row

	// ExtractedInfo has rows for present values only.
	ExtractedInfo []Row
}

// Project builds the view of a processed document.
// Alerts are surfaced as notifications and are not part of the view.
func Project(result domain.ProcessResult) ResultView {
	view := ResultView{
		DocumentID:                 result.DocumentID,
		CategoryKey:                result.Category,
		CategoryLabel:              Label(result.Category),
		CategoryIcon:               CategoryIcon(result.Category),
		Urgency:                    result.Urgency,
		UrgencyLabel:               Label(result.Urgency.String()),
		Department:                 Sanitize(result.Department),
		Confidence:                 Confidence(result.ConfidenceScore),
		RequiresImmediateAttention: result.RequiresImmediateAttention,
		Metadata:                   DeclaredRows(result.Metadata),
		ExtractedInfo:              PresentRows(result.ExtractedInfo),
	}
	return view
}

// DeclaredRows projects every field, marking absent values as missing.
func DeclaredRows(fields domain.Fields) []Row {
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		row := Row{Key: f.Key, Label: Label(f.Key)}
		if f.Present() {
			row.Values = Values(f.Value)
		}
		if len(row.Values) == 0 {
			row.Missing = true
			row.Values = []string{NotFound}
		}
		rows = append(rows, row)
	}
	return rows
}

// PresentRows projects only the fields with a usable value.
func PresentRows(fields domain.Fields) []Row {
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		if !f.Present() {
			continue
		}
		values := Values(f.Value)
		if len(values) == 0 {
			continue
		}
		rows = append(rows, Row{Key: f.Key, Label: Label(f.Key), Values: values})
	}
	return rows
}
