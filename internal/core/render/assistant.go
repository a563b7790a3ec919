package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// SpanStyle is the emphasis applied to a span.
type SpanStyle int

// Span styles.
const (
	SpanPlain SpanStyle = iota
	SpanBold
	SpanItalic
	SpanBreak
)

// Span is a run of text with one style. Break spans carry no text.
type Span struct {
	Style SpanStyle
	Text  string
}

// Sanitize strips terminal escape sequences and control characters from
// untrusted text. Newlines and tabs survive.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Assistant parses assistant text into spans. Only **bold**, *italic* and
// line breaks are recognised; everything else, including unmatched
// markers, is literal text.
func Assistant(text string) []Span {
	text = Sanitize(text)

	var spans []Span
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			spans = append(spans, Span{Style: SpanBreak})
		}
		spans = appendInline(spans, line)
	}
	return spans
}

// PlainText renders spans without styling.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Style == SpanBreak {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func appendInline(spans []Span, line string) []Span {
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Style: SpanPlain, Text: plain.String()})
			plain.Reset()
		}
	}

	for len(line) > 0 {
		if strings.HasPrefix(line, "**") {
			if end := strings.Index(line[2:], "**"); end > 0 {
				flush()
				spans = append(spans, Span{Style: SpanBold, Text: line[2 : 2+end]})
				line = line[2+end+2:]
				continue
			}
		} else if line[0] == '*' {
			if end := strings.IndexByte(line[1:], '*'); end > 0 {
				flush()
				spans = append(spans, Span{Style: SpanItalic, Text: line[1 : 1+end]})
				line = line[1+end+1:]
				continue
			}
		}
		plain.WriteByte(line[0])
		line = line[1:]
	}
	flush()
	return spans
}
