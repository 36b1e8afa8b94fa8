package customize

import (
	"regexp"
	"strings"
)

// DefaultFileStem is used when a sanitized file name comes out empty.
const DefaultFileStem = "resume_customized"

// maxFileStemRunes caps the sanitized stem before the extension.
const maxFileStemRunes = 120

var (
	illegalFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F\x7F]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	underscoreRun    = regexp.MustCompile(`_+`)
)

// SanitizeFileName makes raw safe to use as a file name stem: illegal and
// control characters and whitespace runs become one underscore, repeats
// collapse, the result is capped at 120 characters and edge underscores are
// trimmed. An empty result yields DefaultFileStem.
func SanitizeFileName(raw string) string {
	s := strings.ToValidUTF8(raw, "")
	s = illegalFileChars.ReplaceAllString(s, "_")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	if r := []rune(s); len(r) > maxFileStemRunes {
		s = string(r[:maxFileStemRunes])
	}
	s = strings.Trim(s, "_")
	if s == "" {
		return DefaultFileStem
	}
	return s
}

// FileName returns the .txt file name of a résumé tailored for a job.
func FileName(candidate, company, title string) string {
	if candidate == "" {
		candidate = "resume"
	}
	return SanitizeFileName(candidate+"_"+company+"_"+title) + ".txt"
}
