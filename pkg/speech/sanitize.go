package speech

import (
	"regexp"
	"strings"
)

// MaxChars is the longest text sent to the synthesizer before truncation.
const MaxChars = 1000

var (
	boldMarker   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMarker = regexp.MustCompile(`\*(.*?)\*`)
	newlines     = regexp.MustCompile(`\n+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Sanitize turns chat text into something a speech engine reads naturally.
func Sanitize(text string) string {
	text = boldMarker.ReplaceAllString(text, "$1")
	text = italicMarker.ReplaceAllString(text, "$1")
	text = newlines.ReplaceAllString(text, ". ")
	text = whitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if r := []rune(text); len(r) > MaxChars {
		text = string(r[:MaxChars]) + "..."
	}
	return text
}
