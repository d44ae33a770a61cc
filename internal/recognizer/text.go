package recognizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// CleanText normalizes recognized text for output: NFC composition,
// fullwidth-to-narrow folding, whitespace collapsing and trimming.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = width.Narrow.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}
