package render

import (
	"time"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

// FallbackIcon is used for categories without a dedicated icon.
const FallbackIcon = "📄"

// EmptyGroupsMessage is shown when the service returns no categories.
const EmptyGroupsMessage = "No documents processed yet"

var categoryIcons = map[string]string{
	domain.CategoryLoanApplications:      "🏦",
	domain.CategoryAccountInquiries:      "💳",
	domain.CategoryComplaints:            "⚠️",
	domain.CategoryKYCUpdates:            "🪪",
	domain.CategoryGeneralCorrespondence: "✉️",
}

// CategoryIcon returns the icon for a category key.
func CategoryIcon(key string) string {
	if icon, ok := categoryIcons[key]; ok {
		return icon
	}
	return FallbackIcon
}

// SummaryView is one document line inside a category group.
type SummaryView struct {
	DocumentID string
	Title      string
	Urgency    string
	CustomerID string
	When       string
}

// GroupView is one category with its documents.
type GroupView struct {
	Key       string
	Label     string
	Icon      string
	Documents []SummaryView
}

// GroupsView is the whole category grouping.
type GroupsView struct {
	Groups []GroupView

	// Empty is set when there is nothing to show. EmptyMessage then
	// holds the placeholder text.
	Empty        bool
	EmptyMessage string
}

// Groups projects the server grouping, keeping server order for both
// categories and documents.
func Groups(now time.Time, groups domain.CategoryGroups) GroupsView {
	if len(groups) == 0 {
		return GroupsView{Empty: true, EmptyMessage: EmptyGroupsMessage}
	}

	view := GroupsView{Groups: make([]GroupView, 0, len(groups))}
	for _, g := range groups {
		gv := GroupView{
			Key:       g.Key,
			Label:     Label(g.Key),
			Icon:      CategoryIcon(g.Key),
			Documents: make([]SummaryView, 0, len(g.Documents)),
		}
		for _, d := range g.Documents {
			gv.Documents = append(gv.Documents, summary(now, d))
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

func summary(now time.Time, d domain.DocumentSummary) SummaryView {
	sv := SummaryView{
		DocumentID: d.DocumentID,
		Title:      Sanitize(d.Filename),
		CustomerID: Sanitize(d.CustomerID),
	}
	if sv.Title == "" {
		sv.Title = d.DocumentID
	}
	if d.Urgency != "" {
		sv.Urgency = Label(d.Urgency.String())
	}
	if d.ProcessedAt != nil {
		sv.When = RelativeTime(now, *d.ProcessedAt)
	}
	return sv
}
