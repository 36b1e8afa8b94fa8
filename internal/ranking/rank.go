package ranking

import (
	"regexp"
	"sort"
	"strings"
)

// SkillSeparator joins reordered skill tokens.
const SkillSeparator = "、"

var (
	paragraphBreak = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
	skillSplit     = regexp.MustCompile(`[,，、;；\n]`)
)

// RankedParagraph is one experience paragraph with its relevance score.
type RankedParagraph struct {
	Text  string
	Score int
	Index int
}

// RankParagraphs splits text on blank lines and orders the paragraphs by
// descending score. Equal scores keep their original order.
func RankParagraphs(text string, keywords Keywords) []RankedParagraph {
	if text == "" {
		return nil
	}
	parts := paragraphBreak.Split(text, -1)
	ranked := make([]RankedParagraph, len(parts))
	for i, p := range parts {
		ranked[i] = RankedParagraph{Text: p, Score: ScoreParagraph(p, keywords), Index: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// ReorderParagraphs returns text with its paragraphs ordered by relevance,
// separated by one blank line.
func ReorderParagraphs(text string, keywords Keywords) string {
	ranked := RankParagraphs(text, keywords)
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Text
	}
	return strings.Join(out, "\n\n")
}

// SplitSkills splits a skills section into trimmed, non-empty tokens.
func SplitSkills(skills string) []string {
	var tokens []string
	for _, tok := range skillSplit.Split(skills, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// PartitionSkills separates tokens that match a keyword from those that do
// not. Both partitions keep input order.
func PartitionSkills(tokens []string, keywords Keywords) (matched, unmatched []string) {
	for _, tok := range tokens {
		if SkillMatches(tok, keywords) {
			matched = append(matched, tok)
		} else {
			unmatched = append(unmatched, tok)
		}
	}
	return matched, unmatched
}

// ReorderSkills puts matching skills first and joins all tokens with 、.
func ReorderSkills(skills string, keywords Keywords) string {
	matched, unmatched := PartitionSkills(SplitSkills(skills), keywords)
	return strings.Join(append(matched, unmatched...), SkillSeparator)
}
