// Package normalize turns raw model text into typed results. Structured
// replies are fence-stripped and decoded as JSON; pattern replies are read
// line by line for labelled fields.
package normalize

import (
	"regexp"
	"strings"
)

var fenceMarker = regexp.MustCompile("(?i)```json|```")

// StripCodeFences removes every ```json and ``` marker and trims the
// surrounding whitespace. Stripping clean text returns it unchanged.
func StripCodeFences(text string) string {
	for {
		next := fenceMarker.ReplaceAllString(text, "")
		if next == text {
			break
		}
		text = next
	}
	return strings.TrimSpace(text)
}
