// Package customize produces a job-tailored résumé, cover letter and email
// from a parsed résumé and an extracted job.
//
// A Customizer runs an optional primary Strategy and falls back to the
// deterministic TemplateStrategy whenever the primary fails or returns an
// incomplete result, so Customize always yields a complete record.
package customize

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-dispatch/internal/blob"
	"github.com/jonathan/resume-dispatch/internal/types"
)

// Customizer composes strategies and persists the tailored text.
type Customizer struct {
	primary  Strategy
	fallback TemplateStrategy
	blobs    blob.Store
	logger   zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Customizer.
type Option func(*Customizer)

// WithStrategy sets the primary strategy tried before the template.
func WithStrategy(s Strategy) Option {
	return func(c *Customizer) { c.primary = s }
}

// WithBlobStore stores each customized text under blob.CustomizedKey.
func WithBlobStore(s blob.Store) Option {
	return func(c *Customizer) { c.blobs = s }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Customizer) { c.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Customizer) { c.now = now }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(gen func() string) Option {
	return func(c *Customizer) { c.newID = gen }
}

// New returns a Customizer. Without options it uses only the template
// strategy and stores nothing.
func New(opts ...Option) *Customizer {
	c := &Customizer{
		logger: zerolog.Nop(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StrategyName returns the name of the primary strategy.
func (c *Customizer) StrategyName() string {
	if c.primary == nil {
		return c.fallback.Name()
	}
	return c.primary.Name()
}

// Customize builds a CustomizedResume in pending_review state. The job is
// copied, so later changes to it do not affect the record. An error is
// returned only when storing the text fails.
func (c *Customizer) Customize(ctx context.Context, resume *types.ResumeData, job *types.JobInfo) (*types.CustomizedResume, error) {
	if resume == nil || job == nil {
		return nil, fmt.Errorf("resume and job are required")
	}
	snapshot := job.Clone()

	out, strategy := c.generate(ctx, resume, &snapshot)

	record := &types.CustomizedResume{
		ID:                 c.newID(),
		BaseResumeID:       resume.ID,
		JobInfo:            snapshot,
		CustomizedText:     out.CustomizedText,
		CustomizedFileName: FileName(resume.ParsedSections.Name, snapshot.Company, snapshot.Title),
		CoverLetter:        out.CoverLetter,
		EmailSubject:       out.EmailSubject,
		EmailBody:          out.EmailBody,
		Strategy:           strategy,
		Status:             types.StatusPendingReview,
		CreatedAt:          c.now().UTC(),
	}

	if c.blobs != nil {
		key := blob.CustomizedKey(record.ID, record.CustomizedFileName)
		if err := c.blobs.Put(ctx, key, []byte(record.CustomizedText), blob.ContentTypeText); err != nil {
			return nil, fmt.Errorf("failed to store customized resume: %w", err)
		}
		record.StorageKey = key
	}
	return record, nil
}

func (c *Customizer) generate(ctx context.Context, resume *types.ResumeData, job *types.JobInfo) (*Output, string) {
	if c.primary != nil {
		out, err := c.primary.Customize(ctx, resume, job)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("strategy", c.primary.Name()).
				Msg("customizer strategy failed, falling back to template")
		case !out.Complete():
			c.logger.Warn().Str("strategy", c.primary.Name()).
				Msg("customizer strategy returned incomplete output, falling back to template")
		default:
			return out, c.primary.Name()
		}
	}
	out, _ := c.fallback.Customize(ctx, resume, job)
	return out, c.fallback.Name()
}
