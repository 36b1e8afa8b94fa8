package extraction

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-dispatch/internal/patterns"
)

// NormalizeEmail turns a tolerated address form into a plain address by
// dropping whitespace, mapping full-width ＠ and ． to ASCII and replacing
// bracketed at/dot markers. It is idempotent.
func NormalizeEmail(s string) string {
	s = patterns.AtMarker.ReplaceAllString(s, "@")
	s = patterns.DotMarker.ReplaceAllString(s, ".")
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == '＠':
			return '@'
		case r == '．':
			return '.'
		}
		return r
	}, s)
}

// FindEmail runs the email cascade over text and returns the first address
// that normalizes to a valid one, with the name of the rule that found it.
// It returns empty strings when nothing qualifies.
func FindEmail(text string) (email, rule string) {
	for _, r := range patterns.EmailRules {
		candidate, ok := r.Find(text)
		if !ok {
			continue
		}
		if normalized := NormalizeEmail(candidate); patterns.ValidEmail.MatchString(normalized) {
			return normalized, r.Name
		}
	}
	return "", ""
}
