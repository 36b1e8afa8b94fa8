package patterns

import "regexp"

// PostingCue marks the title line of one posting inside a multi-posting
// article. The cue must be followed by a separator; the title runs to the end
// of the line.
var PostingCue = regexp.MustCompile(`(?:招聘|诚聘|岗位)(?:[ \t　]*[：:][ \t　]*|[ \t　]+)([^\n]+)`)

// Department matches the department or team line.
var Department = regexp.MustCompile(`(?:部门|团队|事业部)[：:\s]*([^\n]+)`)

// PostingWindow is the number of characters a posting block spans when no
// further cue follows it.
const PostingWindow = 2000

// TitleRules is the page-level job title cascade.
var TitleRules = []Rule{
	rule("announcement", `(?:招聘|诚聘|急招|热招)[：:\s]*([^\n]+)`, 1),
	rule("position-label", `(?:岗位|职位)(?:名称)*[：:\s]*([^\n]+)`, 1),
	rule("bracketed", `【(.+?)】`, 1),
}

// CompanyRules is the page-level company name cascade.
var CompanyRules = []Rule{
	rule("company-label", `(?:公司|企业|集团|机构)(?:名称)*[：:\s]*([^\n]+)`, 1),
	rule("about", `(?i)(?:关于|about)\s*([^\n]+)`, 1),
}

// SalaryRules tries an explicit label, then a bare k range, then a 万 range.
var SalaryRules = []Rule{
	rule("salary-label", `(?:薪[资酬]|待遇|月薪|年薪)[：:\s]*([^\n]+)`, 1),
	rule("k-range", `(\d+[kK]-\d+[kK])`, 1),
	rule("wan-range", `(\d+万?\s*[-~]\s*\d+万?)`, 1),
}

// LocationRules finds the work location.
var LocationRules = []Rule{
	rule("location-label", `(?:工作地[点址]|地[点址]|坐标)[：:\s]*([^\n]+)`, 1),
	rule("base", `(?:base|Base)[：:\s]*([^\n]+)`, 1),
}

// ListMarker strips ordinals and bullets from the start of a posting list item.
var ListMarker = regexp.MustCompile(`^[\d.、\-\s*]+`)

// PageListMarker strips ordinals and bullets from a page-level list item.
var PageListMarker = regexp.MustCompile(`^[\d.、\-\s•·]+`)

// HeadingLine stops a posting section at a short Chinese "label：" line.
const HeadingLine = `\n\p{Han}{2,4}[：:]`
