// Package parsing turns plain résumé text into structured sections.
package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/patterns"
	"github.com/jonathan/resume-dispatch/internal/sections"
	"github.com/jonathan/resume-dispatch/internal/types"
)

var resumeTable = sections.Compile(patterns.ResumeSections)

// Parse extracts the candidate's contact details and sections from raw text.
// The name is a heuristic: the first line of two to five characters with no
// comma or period. It is often wrong and should be shown for confirmation.
func Parse(raw string) types.ParsedSections {
	text := strings.ToValidUTF8(raw, "")

	parsed := types.ParsedSections{
		Name:  GuessName(text),
		Phone: patterns.MobilePhone.FindString(text),
		Email: patterns.StrictEmail.FindString(text),
	}

	found := sections.Segment(text, resumeTable)
	parsed.Education = found[patterns.Education]
	parsed.Experience = found[patterns.Experience]
	parsed.Skills = found[patterns.Skills]
	parsed.Projects = found[patterns.Projects]
	parsed.Summary = found[patterns.Summary]
	return parsed
}

// SectionText returns the body of one résumé section, or false when its
// header is missing. label is one of the patterns section labels.
func SectionText(raw, label string) (string, bool) {
	return sections.Section(raw, resumeTable, label)
}

// GuessName returns the first plausible name line, or "".
func GuessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if n := utf8.RuneCountInString(line); n < 2 || n > 5 {
			continue
		}
		if strings.ContainsAny(line, ",，。.\r") {
			continue
		}
		return line
	}
	return ""
}
