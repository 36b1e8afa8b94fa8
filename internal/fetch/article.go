package fetch

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// ExtractArticle parses an article page into its title, account name and
// body text. The body keeps one line per block element so the section and
// list rules of the extraction core apply to it unchanged.
func ExtractArticle(html, pageURL string) (*types.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	sel := PlatformSelectors(DetectPlatform(pageURL))

	article := &types.Article{
		URL:         pageURL,
		Title:       firstText(doc, sel.Title),
		AccountName: firstText(doc, sel.Account),
	}
	if article.Title == "" {
		article.Title = metaContent(doc, "og:title")
	}
	if article.Title == "" {
		article.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(strings.Join(sel.Noise, ", ")).Remove()

	content := firstMatch(doc, sel.Content)
	if content == nil {
		content = doc.Find("body")
	}
	article.Text = selectionText(content)
	return article, nil
}

func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, s := range selectors {
		if found := doc.Find(s); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(doc.Find(s).First().Text()); text != "" {
			return collapseSpace(text)
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, property string) string {
	v, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(v)
}

func selectionText(s *goquery.Selection) string {
	inner, err := s.Html()
	if err == nil {
		if md, err := htmltomarkdown.ConvertString(inner); err == nil {
			return MarkdownToText(md)
		}
	}
	return cleanLines(s.Text())
}

var (
	mdImage    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdHeading  = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	mdQuote    = regexp.MustCompile(`(?m)^>[ \t]?`)
	mdEmphasis = regexp.MustCompile(`\*\*|__|~~`)
	mdRule     = regexp.MustCompile(`(?m)^[ \t]*(?:\* \* \*|---+|\*\*\*+)[ \t]*$`)
	mdEscape   = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!|>~])")
	spaceRun   = regexp.MustCompile(`[ \t\x{00A0}\x{3000}]+`)
)

// MarkdownToText removes markdown markup and leaves plain lines, dropping
// blank lines.
func MarkdownToText(md string) string {
	md = mdImage.ReplaceAllString(md, "")
	md = mdLink.ReplaceAllString(md, "$1")
	md = mdRule.ReplaceAllString(md, "")
	md = mdHeading.ReplaceAllString(md, "")
	md = mdQuote.ReplaceAllString(md, "")
	md = mdEmphasis.ReplaceAllString(md, "")
	md = mdEscape.ReplaceAllString(md, "$1")
	return cleanLines(md)
}

func cleanLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = collapseSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
