package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/patterns"
)

// minItemRunes is the shortest posting list item that is kept.
const minItemRunes = 3

var pageItemSplit = regexp.MustCompile(`\n|；|;`)

// ListItems splits a posting section body into items: one per line, ordinals
// and bullets stripped, lines under three characters dropped.
func ListItems(body string) []string {
	if body == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(body, "\n") {
		item := strings.TrimSpace(patterns.ListMarker.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(item) >= minItemRunes {
			items = append(items, item)
		}
	}
	return items
}

// PageListItems splits a page section body on newlines and semicolons,
// stripping bullets and dropping empty items.
func PageListItems(body string) []string {
	if body == "" {
		return nil
	}
	var items []string
	for _, part := range pageItemSplit.Split(body, -1) {
		if item := strings.TrimSpace(patterns.PageListMarker.ReplaceAllString(part, "")); item != "" {
			items = append(items, item)
		}
	}
	return items
}
