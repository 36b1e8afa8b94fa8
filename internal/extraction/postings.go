package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/patterns"
)

// Posting is the part of an article attributable to one job opening.
type Posting struct {
	Title string
	Body  string
}

// SplitPostings finds the announcement cues in text and returns one Posting
// per cue. A body runs from the end of its title line to the next cue, or
// for the last posting to the next "\n招聘" line, or at most
// patterns.PostingWindow characters.
func SplitPostings(text string) []Posting {
	locs := patterns.PostingCue.FindAllStringSubmatchIndex(text, -1)
	postings := make([]Posting, 0, len(locs))

	for i, loc := range locs {
		title := strings.TrimSpace(text[loc[2]:loc[3]])
		if title == "" {
			continue
		}
		start := loc[1]
		end := -1
		if i+1 < len(locs) {
			end = locs[i+1][0]
		} else if idx := strings.Index(text[start:], "\n招聘"); idx > 0 {
			end = start + idx
		} else {
			end = advanceRunes(text, start, patterns.PostingWindow)
		}
		postings = append(postings, Posting{Title: title, Body: text[start:end]})
	}
	return postings
}

// advanceRunes returns the byte offset n runes after start, capped at len(s).
func advanceRunes(s string, start, n int) int {
	i := start
	for c := 0; c < n && i < len(s); c++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
