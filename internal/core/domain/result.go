package domain

import "strings"

// UrgencyLevel is a coarse priority assigned by the classification service.
// The set is open: unknown levels are carried through as-is.
type UrgencyLevel string

// Known urgency levels.
const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// String returns the string representation.
func (u UrgencyLevel) String() string {
	return string(u)
}

// Field is one key of a heterogeneous mapping whose declaration order
// must be preserved for display.
type Field struct {
	Key string

	// Value is a string, number, bool, []any, map[string]any or nil.
	Value any
}

// Present reports whether the value counts as found.
// Nil, blank strings and empty collections are absent.
func (f Field) Present() bool {
	switch v := f.Value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// Fields is an ordered key/value mapping.
type Fields []Field

// Get returns the value for key and whether the key is declared.
func (fs Fields) Get(key string) (any, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the declared keys in order.
func (fs Fields) Keys() []string {
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.Key
	}
	return keys
}

// ProcessResult is the normalised outcome of processing one document.
type ProcessResult struct {
	// DocumentID is the server-assigned identifier.
	DocumentID string

	// Category is the classification key, e.g. "loan_applications".
	Category string

	// Urgency is the assigned urgency level.
	Urgency UrgencyLevel

	// Department is the routing target chosen by the service.
	Department string

	// ConfidenceScore is in [0,1].
	ConfidenceScore float64

	// RequiresImmediateAttention flags documents needing fast handling.
	RequiresImmediateAttention bool

	// Metadata holds declared keys; every key is displayed even when absent.
	Metadata Fields

	// ExtractedInfo holds scalar or list values pulled from the document.
	ExtractedInfo Fields

	// Alerts are human-readable warnings, surfaced once in order.
	Alerts []string
}
