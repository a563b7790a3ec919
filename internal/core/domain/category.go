package domain

import "time"

// Known category keys produced by the classification service.
const (
	CategoryLoanApplications      = "loan_applications"
	CategoryAccountInquiries      = "account_inquiries"
	CategoryComplaints            = "complaints"
	CategoryKYCUpdates            = "kyc_updates"
	CategoryGeneralCorrespondence = "general_correspondence"
)

// DocumentSummary is one document listed under a category.
// Every field but DocumentID is optional.
type DocumentSummary struct {
	DocumentID  string
	Filename    string
	Urgency     UrgencyLevel
	CustomerID  string
	ProcessedAt *time.Time
}

// CategoryGroup is one category and its documents in server order.
type CategoryGroup struct {
	Key       string
	Documents []DocumentSummary
}

// CategoryGroups is the server-side grouping, in server key order.
type CategoryGroups []CategoryGroup

// DocumentCount returns the number of documents across all groups.
func (g CategoryGroups) DocumentCount() int {
	n := 0
	for _, group := range g {
		n += len(group.Documents)
	}
	return n
}
