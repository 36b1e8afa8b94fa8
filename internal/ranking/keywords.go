// Package ranking scores résumé content against the vocabulary of a job
// posting and reorders it by relevance.
package ranking

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// minKeywordRunes is the shortest token kept as a keyword.
const minKeywordRunes = 2

var keywordSplit = regexp.MustCompile(`[\s,，、;；。.!！?？()（）\[\]【】]+`)

// Keywords is a deduplicated keyword set in first-seen order. Latin tokens
// compare case-insensitively; the first spelling seen is kept.
type Keywords []string

// DeriveKeywords mines keywords from the job title, requirements and
// responsibilities.
func DeriveKeywords(job *types.JobInfo) Keywords {
	if job == nil {
		return nil
	}
	parts := make([]string, 0, 1+len(job.Requirements)+len(job.Responsibilities))
	parts = append(parts, job.Title)
	parts = append(parts, job.Requirements...)
	parts = append(parts, job.Responsibilities...)
	return KeywordsFromText(strings.Join(parts, " "))
}

// KeywordsFromText splits text on whitespace and punctuation and keeps the
// distinct tokens of at least two characters.
func KeywordsFromText(text string) Keywords {
	text = strings.ToValidUTF8(text, "")
	seen := make(map[string]struct{})
	var out Keywords
	for _, tok := range keywordSplit.Split(text, -1) {
		tok = strings.TrimSpace(tok)
		if utf8.RuneCountInString(tok) < minKeywordRunes {
			continue
		}
		key := strings.ToLower(tok)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// FoundIn returns the keywords that occur in text, ignoring Latin case, in
// set order.
func (k Keywords) FoundIn(text string) []string {
	text = strings.ToLower(text)
	var found []string
	for _, kw := range k {
		if strings.Contains(text, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}
