// Package sections splits free text into labeled sections using tables of
// header synonyms. A section body runs from just after its header to the next
// header of any other tracked section.
package sections

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/patterns"
)

// Table is a compiled patterns.SectionTable.
type Table struct {
	labels    []string
	headers   map[string][]*regexp.Regexp
	boundary  map[string]*regexp.Regexp
	lineStart bool
	stop      *regexp.Regexp
}

// Compile prepares a section table for matching. It panics on an invalid
// HeadingStop, like regexp.MustCompile.
func Compile(table patterns.SectionTable) *Table {
	t := &Table{
		labels:    table.Labels(),
		headers:   make(map[string][]*regexp.Regexp, len(table.Groups)),
		boundary:  make(map[string]*regexp.Regexp, len(table.Groups)),
		lineStart: table.LineStart,
	}
	if table.HeadingStop != "" {
		t.stop = regexp.MustCompile(table.HeadingStop)
	}

	for _, g := range table.Groups {
		for _, syn := range g.Synonyms {
			t.headers[g.Label] = append(t.headers[g.Label], regexp.MustCompile(`(?i)`+regexp.QuoteMeta(syn)))
		}

		var others []string
		for _, other := range table.Groups {
			if other.Label == g.Label {
				continue
			}
			others = append(others, other.Synonyms...)
		}
		others = append(others, table.Terminators...)
		if re := boundaryPattern(others, table.LineStart); re != nil {
			t.boundary[g.Label] = re
		}
	}
	return t
}

func boundaryPattern(words []string, lineStart bool) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	expr := `(?i)(?:` + strings.Join(quoted, "|") + `)`
	if lineStart {
		expr = `(?i)\n(?:` + strings.Join(quoted, "|") + `)`
	}
	return regexp.MustCompile(expr)
}

// Labels returns the labels tracked by t.
func (t *Table) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Segment returns the trimmed body of every section whose header appears in
// text. Labels whose header is missing, or whose body is empty, are absent
// from the result.
func Segment(text string, t *Table) map[string]string {
	text = strings.ToValidUTF8(text, "")
	out := make(map[string]string)
	for _, label := range t.labels {
		if body, ok := t.section(text, label); ok {
			out[label] = body
		}
	}
	return out
}

// Section returns the body of a single label.
func Section(text string, t *Table, label string) (string, bool) {
	return t.section(strings.ToValidUTF8(text, ""), label)
}

func (t *Table) section(text, label string) (string, bool) {
	for _, header := range t.headers[label] {
		loc := header.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := skipSeparators(text, loc[1])
		end := start + t.boundaryOffset(text[start:], label)
		if body := strings.TrimSpace(text[start:end]); body != "" {
			return body, true
		}
	}
	return "", false
}

// boundaryOffset returns the length of rest up to the first boundary.
func (t *Table) boundaryOffset(rest, label string) int {
	end := len(rest)
	if re := t.boundary[label]; re != nil {
		if t.lineStart {
			// A header directly at the body start counts as being at a line start.
			if loc := re.FindStringIndex("\n" + rest); loc != nil {
				end = min(end, loc[0])
			}
		} else if loc := re.FindStringIndex(rest); loc != nil {
			end = min(end, loc[0])
		}
	}
	if t.stop != nil {
		if loc := t.stop.FindStringIndex(rest); loc != nil {
			end = min(end, loc[0])
		}
	}
	return end
}

func skipSeparators(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '：' && r != ':' && !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
