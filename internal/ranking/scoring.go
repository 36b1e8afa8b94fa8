package ranking

import "strings"

// ScoreParagraph counts the keywords that occur in p, ignoring Latin case.
func ScoreParagraph(p string, keywords Keywords) int {
	p = strings.ToLower(p)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(p, strings.ToLower(kw)) {
			score++
		}
	}
	return score
}

// SkillMatches reports whether a skill token and a keyword overlap: either
// contains the other, ignoring Latin case.
func SkillMatches(token string, keywords Keywords) bool {
	t := strings.ToLower(token)
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if strings.Contains(t, k) || strings.Contains(k, t) {
			return true
		}
	}
	return false
}
