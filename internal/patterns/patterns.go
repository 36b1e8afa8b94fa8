// Package patterns holds the recognition rules shared by the extractors:
// ordered regex cascades and section-header synonym tables. It is data only;
// the first rule in a list that matches wins.
package patterns

import "regexp"

// Rule is one regex in a priority list. Group selects the submatch that
// carries the value; 0 means the whole match.
type Rule struct {
	Name  string
	Re    *regexp.Regexp
	Group int
}

// Find returns the rule's value in text.
func (r Rule) Find(text string) (string, bool) {
	m := r.Re.FindStringSubmatch(text)
	if m == nil || r.Group >= len(m) {
		return "", false
	}
	return m[r.Group], true
}

// FirstMatch tries rules in order and returns the value of the first one that
// matches, along with the rule's name. Later rules are never consulted once one
// matches.
func FirstMatch(rules []Rule, text string) (value, rule string, ok bool) {
	for _, r := range rules {
		if v, found := r.Find(text); found {
			return v, r.Name, true
		}
	}
	return "", "", false
}

func rule(name, expr string, group int) Rule {
	return Rule{Name: name, Re: regexp.MustCompile(expr), Group: group}
}
