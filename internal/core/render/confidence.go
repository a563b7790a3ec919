package render

import (
	"math"
	"strconv"
)

// Confidence formats a score in [0,1] as a percentage with one decimal,
// rounding half up: 0.875 becomes "87.5%" and 0.8765 becomes "87.7%".
func Confidence(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return "n/a"
	}
	// Round on the permille value; the small epsilon absorbs binary
	// representation error such as 0.8765*1000 = 876.4999...
	permille := math.Floor(score*1000 + 0.5 + 1e-9)
	return strconv.FormatFloat(permille/10, 'f', 1, 64) + "%"
}
