package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a machine key such as "loan_applications" into "Loan Applications".
// Underscores and hyphens become spaces and every word is capitalised;
// the remaining letters keep their case.
func Label(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	// A Caser keeps state between calls and must not be shared.
	return cases.Title(language.Und, cases.NoLower).String(s)
}
