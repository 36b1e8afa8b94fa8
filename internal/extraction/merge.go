package extraction

import "github.com/jonathan/resume-dispatch/internal/types"

// Merge fills every empty field of trusted from fallback. A field trusted
// already carries is never overwritten.
func Merge(trusted, fallback types.JobInfo) types.JobInfo {
	out := trusted.Clone()
	fill(&out.Title, fallback.Title)
	fill(&out.Company, fallback.Company)
	fill(&out.Department, fallback.Department)
	fill(&out.Location, fallback.Location)
	fill(&out.Salary, fallback.Salary)
	fill(&out.ContactEmail, fallback.ContactEmail)
	fill(&out.ContactName, fallback.ContactName)
	fill(&out.ArticleURL, fallback.ArticleURL)
	fill(&out.ArticleTitle, fallback.ArticleTitle)
	if len(out.Requirements) == 0 && len(fallback.Requirements) > 0 {
		out.Requirements = append([]string(nil), fallback.Requirements...)
	}
	if len(out.Responsibilities) == 0 && len(fallback.Responsibilities) > 0 {
		out.Responsibilities = append([]string(nil), fallback.Responsibilities...)
	}
	if out.ExtractedAt.IsZero() {
		out.ExtractedAt = fallback.ExtractedAt
	}
	return out
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
