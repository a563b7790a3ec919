package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NotFound is shown for a declared key without a usable value.
const NotFound = "not found"

// Values renders a field value as display lines.
// Lists yield one line per item; everything else yields one line.
func Values(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := Scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := Sanitize(item); strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := Scalar(val); s != "" {
			return []string{s}
		}
		return nil
	}
}

// Scalar renders a single value on one line.
func Scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return Sanitize(strings.TrimSpace(val))
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		return strings.Join(Values(val), ", ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := Scalar(val[k]); s != "" {
				parts = append(parts, Label(k)+": "+s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return Sanitize(fmt.Sprint(val))
	}
}
