package customize

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-dispatch/internal/llm"
	"github.com/jonathan/resume-dispatch/internal/prompts"
	"github.com/jonathan/resume-dispatch/internal/schemas"
	"github.com/jonathan/resume-dispatch/internal/types"
)

// StrategyAI names the model-backed strategy.
const StrategyAI = "ai"

// AIStrategy asks a language model to rewrite the résumé and write the
// email. Replies are checked against the output schema.
type AIStrategy struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewAIStrategy returns a strategy backed by client.
func NewAIStrategy(client llm.Client, tier llm.ModelTier) *AIStrategy {
	if tier == "" {
		tier = llm.TierStandard
	}
	return &AIStrategy{client: client, tier: tier}
}

// Name implements Strategy.
func (s *AIStrategy) Name() string { return StrategyAI }

// Customize implements Strategy.
func (s *AIStrategy) Customize(ctx context.Context, resume *types.ResumeData, job *types.JobInfo) (*Output, error) {
	prompt, err := BuildPrompt(resume, job)
	if err != nil {
		return nil, err
	}

	reply, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return nil, &GenerationError{Message: "model call failed", Cause: err}
	}

	return ParseReply(reply)
}

// BuildPrompt renders the customize prompt for a résumé and job.
func BuildPrompt(resume *types.ResumeData, job *types.JobInfo) (string, error) {
	template, err := prompts.Get(prompts.CustomizeFile, prompts.CustomizeResume)
	if err != nil {
		return "", &GenerationError{Message: "prompt unavailable", Cause: err}
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", &GenerationError{Message: "failed to encode job info", Cause: err}
	}
	return prompts.Format(template, map[string]string{
		"Name":       candidateName(resume.ParsedSections),
		"JobJSON":    string(jobJSON),
		"ResumeText": resume.RawText,
	}), nil
}

// ParseReply validates a model reply and decodes it.
func ParseReply(reply string) (*Output, error) {
	if err := schemas.Validate(schemas.CustomizeOutput, reply); err != nil {
		return nil, &ReplyError{Message: "reply does not match schema", Cause: err}
	}
	var out Output
	if err := json.Unmarshal([]byte(reply), &out); err != nil {
		return nil, &ReplyError{Message: "failed to decode reply", Cause: err}
	}
	if !out.Complete() {
		return nil, &ReplyError{Message: "reply has empty fields"}
	}
	return &out, nil
}
