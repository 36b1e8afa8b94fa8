package ingestion

import (
	"regexp"
	"strings"
)

var (
	blankLineRun = regexp.MustCompile(`\n{3,}`)
	inlineSpace  = regexp.MustCompile(`[ \t\x{3000}]+`)
)

// CleanText normalizes text pulled out of a document while keeping its line
// structure: line endings become LF, runs of spaces inside a line collapse,
// trailing whitespace goes and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ToValidUTF8(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	content = strings.Join(lines, "\n")
	content = blankLineRun.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// cleanLine trims a line and collapses its inner spacing. Bullet markers
// are kept as they are.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return inlineSpace.ReplaceAllString(line, " ")
}

// printableFallback keeps printable ASCII, CJK ideographs, CJK punctuation
// and full-width forms, replacing everything else with spaces and
// collapsing the result. It is how legacy .doc files are read.
func printableFallback(data []byte) string {
	s := strings.ToValidUTF8(string(data), " ")
	s = strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func keepRune(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return true
	case r >= 0x20 && r <= 0x7E:
		return true
	case r >= 0x4E00 && r <= 0x9FFF:
		return true
	case r >= 0x3000 && r <= 0x303F:
		return true
	case r >= 0xFF00 && r <= 0xFFEF:
		return true
	}
	return false
}
