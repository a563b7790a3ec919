package render

import (
	"fmt"
	"time"
)

// RelativeTime describes t relative to now.
//
//	< 1 minute  "Just now"
//	< 1 hour    "5m ago"
//	< 1 day     "3h ago"
//	< 7 days    "2d ago"
//	otherwise   "Jan 2, 2006"
//
// Timestamps in the future count as "Just now".
func RelativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.In(now.Location()).Format("Jan 2, 2006")
	}
}
