package summarizer

import "strings"

// Normalize collapses every run of whitespace into a single space and trims
// the ends.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}
