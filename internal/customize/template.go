package customize

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-dispatch/internal/ranking"
	"github.com/jonathan/resume-dispatch/internal/types"
)

const (
	// DefaultCandidate names a candidate whose name was not recognized.
	DefaultCandidate = "候选人"
	// DefaultSalutation addresses a posting without a contact name.
	DefaultSalutation = "HR"

	summaryExcerptRunes = 150
	coverRequirements   = 3
	ruleWidth           = 40
)

var sectionRule = strings.Repeat("─", ruleWidth)

// AnnotateSummary appends the keywords found in summary as a
// "核心匹配能力" line. A summary without matches is returned unchanged.
func AnnotateSummary(summary string, keywords ranking.Keywords) string {
	matched := keywords.FoundIn(summary)
	if len(matched) == 0 {
		return summary
	}
	return summary + "\n核心匹配能力: " + strings.Join(matched, "、")
}

// BuildResumeText lays out the tailored résumé: contact block, job
// intention, then the summary, experience, projects, skills and education
// sections that are present.
func BuildResumeText(resume *types.ResumeData, job *types.JobInfo, keywords ranking.Keywords) string {
	s := resume.ParsedSections
	var sb strings.Builder

	sb.WriteString(candidateName(s) + "\n")
	if s.Phone != "" {
		sb.WriteString("电话: " + s.Phone + "\n")
	}
	if s.Email != "" {
		sb.WriteString("邮箱: " + s.Email + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("求职意向\n" + sectionRule + "\n")
	sb.WriteString("目标岗位: " + job.Title + "\n")
	sb.WriteString("目标公司: " + job.Company + "\n")
	if job.Location != "" {
		sb.WriteString("工作地点: " + job.Location + "\n")
	}
	sb.WriteString("\n")

	section := func(heading, body, tail string) {
		if body == "" {
			return
		}
		sb.WriteString(heading + "\n" + sectionRule + "\n" + body + tail)
	}
	section("个人简介", AnnotateSummary(s.Summary, keywords), "\n\n")
	section("工作经验", ranking.ReorderParagraphs(s.Experience, keywords), "\n\n")
	section("项目经验", s.Projects, "\n\n")
	section("专业技能", ranking.ReorderSkills(s.Skills, keywords), "\n\n")
	section("教育背景", s.Education, "\n")

	return sb.String()
}

// CoverLetter fills the cover letter template. Paragraphs without data are
// left out, so a résumé with no summary or a job with no requirements gets a
// shorter letter instead of blank lines in their place.
func CoverLetter(resume *types.ResumeData, job *types.JobInfo) string {
	s := resume.ParsedSections
	salutation := job.ContactName
	if salutation == "" {
		salutation = DefaultSalutation
	}

	paragraphs := []string{
		"尊敬的" + salutation + "，您好！",
		"我在贵公司微信公众号文章中看到" + job.Title + "的招聘信息，非常感兴趣，特此投递简历。",
	}
	if s.Summary != "" {
		paragraphs = append(paragraphs, "个人简介："+truncateRunes(s.Summary, summaryExcerptRunes))
	}
	if len(job.Requirements) > 0 {
		top := job.Requirements[:min(coverRequirements, len(job.Requirements))]
		paragraphs = append(paragraphs, "我注意到该岗位要求包括"+strings.Join(top, "、")+"等，我在相关领域有丰富的经验和积累。")
	}
	paragraphs = append(paragraphs,
		"期待有机会与您进一步交流，感谢您的时间！",
		"此致\n敬礼",
	)

	signature := []string{candidateName(s)}
	for _, line := range []string{s.Phone, s.Email} {
		if line != "" {
			signature = append(signature, line)
		}
	}
	paragraphs = append(paragraphs, strings.Join(signature, "\n"))

	return strings.Join(paragraphs, "\n\n")
}

// EmailSubject returns "求职申请 - {title} - {name}".
func EmailSubject(resume *types.ResumeData, job *types.JobInfo) string {
	return "求职申请 - " + job.Title + " - " + candidateName(resume.ParsedSections)
}

// EmailBody appends the delivery footer and article source to a cover letter.
func EmailBody(coverLetter string, job *types.JobInfo) string {
	return coverLetter + "\n\n------\n本邮件通过「简历智投」系统自动发送\n文章来源: " + job.ArticleTitle + "\n" + job.ArticleURL
}

func candidateName(s types.ParsedSections) string {
	if s.Name == "" {
		return DefaultCandidate
	}
	return s.Name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
