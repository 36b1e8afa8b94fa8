package customize

import (
	"context"

	"github.com/jonathan/resume-dispatch/internal/ranking"
	"github.com/jonathan/resume-dispatch/internal/types"
)

// Output is the contract every strategy fulfils.
type Output struct {
	CustomizedText string `json:"customizedText"`
	CoverLetter    string `json:"coverLetter"`
	EmailSubject   string `json:"emailSubject"`
	EmailBody      string `json:"emailBody"`
}

// Complete reports whether every field is filled.
func (o *Output) Complete() bool {
	return o != nil && o.CustomizedText != "" && o.CoverLetter != "" && o.EmailSubject != "" && o.EmailBody != ""
}

// Strategy produces the tailored résumé and email for one job.
type Strategy interface {
	Name() string
	Customize(ctx context.Context, resume *types.ResumeData, job *types.JobInfo) (*Output, error)
}

// StrategyTemplate names the deterministic strategy.
const StrategyTemplate = "template"

// TemplateStrategy scores and reorders the résumé against the posting's
// keywords and fills fixed templates. It never fails.
type TemplateStrategy struct{}

// Name implements Strategy.
func (TemplateStrategy) Name() string { return StrategyTemplate }

// Customize implements Strategy.
func (TemplateStrategy) Customize(_ context.Context, resume *types.ResumeData, job *types.JobInfo) (*Output, error) {
	return Template(resume, job), nil
}

// Template is the pure form of TemplateStrategy.
func Template(resume *types.ResumeData, job *types.JobInfo) *Output {
	keywords := ranking.DeriveKeywords(job)
	cover := CoverLetter(resume, job)
	return &Output{
		CustomizedText: BuildResumeText(resume, job, keywords),
		CoverLetter:    cover,
		EmailSubject:   EmailSubject(resume, job),
		EmailBody:      EmailBody(cover, job),
	}
}
