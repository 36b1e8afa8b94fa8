// Package extraction turns recruitment article text into a JobInfo record.
//
// Extract works on raw text. ExtractPage works on a fetched page, trusting
// page-level cues first and using Extract as a fallback enrichment pass.
// Both are pure: no I/O and no shared state.
package extraction

import (
	"strings"
	"time"

	"github.com/jonathan/resume-dispatch/internal/patterns"
	"github.com/jonathan/resume-dispatch/internal/sections"
	"github.com/jonathan/resume-dispatch/internal/types"
)

// UnknownCompany is the company used when a page names none.
const UnknownCompany = "未知公司"

var (
	postingTable = sections.Compile(patterns.PostingSections)
	pageTable    = sections.Compile(patterns.PageSections)
)

// Extract returns the partial JobInfo found in text. Only the first posting of
// a multi-posting article contributes title, requirements and
// responsibilities.
func Extract(text, url string) types.JobInfo {
	text = strings.ToValidUTF8(text, "")
	info := types.JobInfo{ArticleURL: url}

	info.ContactEmail, _ = FindEmail(text)

	if postings := SplitPostings(text); len(postings) > 0 {
		first := postings[0]
		info.Title = first.Title
		found := sections.Segment(first.Body, postingTable)
		info.Requirements = ListItems(found[patterns.Requirements])
		info.Responsibilities = ListItems(found[patterns.Responsibilities])
	}

	if m := patterns.Department.FindStringSubmatch(text); m != nil {
		info.Department = strings.TrimSpace(m[1])
	}
	return info
}

// ExtractPage builds a JobInfo from a fetched article. When the page text has
// no plain address the Extract pass fills the gaps without overriding what the
// page already provided.
func ExtractPage(article types.Article, at time.Time) types.JobInfo {
	text := strings.ToValidUTF8(article.Text, "")
	info := types.JobInfo{
		ArticleURL:   article.URL,
		ArticleTitle: strings.TrimSpace(article.Title),
		ExtractedAt:  at.UTC(),
	}

	info.Title = firstValue(patterns.TitleRules, text)
	if info.Title == "" {
		info.Title = info.ArticleTitle
	}

	info.Company = firstValue(patterns.CompanyRules, text)
	if info.Company == "" {
		info.Company = strings.TrimSpace(article.AccountName)
	}
	if info.Company == "" {
		info.Company = UnknownCompany
	}

	found := sections.Segment(text, pageTable)
	info.Requirements = PageListItems(found[patterns.Requirements])
	info.Responsibilities = PageListItems(found[patterns.Responsibilities])

	info.Salary = firstValue(patterns.SalaryRules, text)
	info.Location = firstValue(patterns.LocationRules, text)
	info.ContactName = firstValue(patterns.ContactNameRules, text)
	info.ContactEmail = patterns.StrictEmail.FindString(text)

	if info.ContactEmail == "" {
		info = Merge(info, Extract(text, article.URL))
	}
	return info
}

func firstValue(rules []patterns.Rule, text string) string {
	v, _, _ := patterns.FirstMatch(rules, text)
	return strings.TrimSpace(v)
}
