// Package dispatch runs the résumé workflow: upload and parse, tailor to a
// job, and email the result while moving it through its lifecycle.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-dispatch/internal/blob"
	"github.com/jonathan/resume-dispatch/internal/customize"
	"github.com/jonathan/resume-dispatch/internal/ingestion"
	"github.com/jonathan/resume-dispatch/internal/mailer"
	"github.com/jonathan/resume-dispatch/internal/parsing"
	"github.com/jonathan/resume-dispatch/internal/store"
	"github.com/jonathan/resume-dispatch/internal/types"
)

var (
	// ErrNoRecipient is returned when the job has no contact email.
	ErrNoRecipient = errors.New("job has no contact email")
	// ErrMailerNotConfigured is returned when sending without SMTP settings.
	ErrMailerNotConfigured = errors.New("mailer not configured")
)

// Service wires the record store, file storage, customizer and mailer.
type Service struct {
	store      store.Store
	blobs      blob.Store
	customizer *customize.Customizer
	extractor  *ingestion.Extractor
	mailer     mailer.Mailer
	logger     zerolog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithBlobStore keeps uploaded files in s.
func WithBlobStore(s blob.Store) Option {
	return func(svc *Service) { svc.blobs = s }
}

// WithCustomizer replaces the template-only customizer.
func WithCustomizer(c *customize.Customizer) Option {
	return func(svc *Service) { svc.customizer = c }
}

// WithMailer enables sending.
func WithMailer(m mailer.Mailer) Option {
	return func(svc *Service) { svc.mailer = m }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(gen func() string) Option {
	return func(svc *Service) { svc.newID = gen }
}

// New returns a Service over st.
func New(st store.Store, opts ...Option) *Service {
	svc := &Service{
		store:  st,
		logger: zerolog.Nop(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.customizer == nil {
		svc.customizer = customize.New(customize.WithBlobStore(svc.blobs), customize.WithLogger(svc.logger))
	}
	svc.extractor = ingestion.NewExtractor(svc.logger)
	return svc
}

// MailerConfigured reports whether Send can deliver.
func (s *Service) MailerConfigured() bool {
	return s.mailer != nil
}

// Upload stores a résumé file, extracts and parses its text and saves the
// record.
func (s *Service) Upload(ctx context.Context, fileName string, data []byte) (*types.ResumeData, error) {
	if err := ingestion.CheckUpload(fileName, int64(len(data))); err != nil {
		return nil, err
	}
	text, err := s.extractor.Extract(fileName, data)
	if err != nil {
		return nil, err
	}

	resume := &types.ResumeData{
		ID:             s.newID(),
		FileName:       fileName,
		RawText:        text,
		ParsedSections: parsing.Parse(text),
		UploadedAt:     s.now().UTC(),
	}
	if s.blobs != nil {
		key := blob.UploadKey(resume.ID, ingestion.Ext(fileName))
		if err := s.blobs.Put(ctx, key, data, blob.ContentTypeBinary); err != nil {
			return nil, fmt.Errorf("failed to store upload: %w", err)
		}
		resume.StorageKey = key
	}
	if err := s.store.SaveResume(ctx, resume); err != nil {
		return nil, err
	}
	s.logger.Info().Str("resume_id", resume.ID).Str("file", fileName).
		Int("chars", len(text)).Msg("resume uploaded")
	return resume, nil
}

// Customize tailors a stored résumé to job and saves the result.
func (s *Service) Customize(ctx context.Context, resumeID string, job *types.JobInfo) (*types.CustomizedResume, error) {
	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	customized, err := s.customizer.Customize(ctx, resume, job)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveCustomized(ctx, customized); err != nil {
		return nil, err
	}
	s.logger.Info().Str("customized_id", customized.ID).Str("resume_id", resumeID).
		Str("strategy", customized.Strategy).Msg("resume customized")
	return customized, nil
}

// Send emails a customized résumé to the job's contact address. A delivery
// failure is not an error: the returned record has status failed and the
// customized résumé moves to failed.
func (s *Service) Send(ctx context.Context, req types.SendRequest) (*types.SubmissionRecord, error) {
	customized, err := s.store.GetCustomized(ctx, req.CustomizedResumeID)
	if err != nil {
		return nil, err
	}
	if customized.JobInfo.ContactEmail == "" {
		return nil, ErrNoRecipient
	}
	if s.mailer == nil {
		return nil, ErrMailerNotConfigured
	}
	if err := types.CheckTransition(customized.Status, types.StatusSent); err != nil {
		return nil, err
	}

	if !req.SkipReview && customized.Status == types.StatusPendingReview {
		if customized, err = s.store.UpdateCustomizedStatus(ctx, customized.ID, types.StatusApproved, s.now()); err != nil {
			return nil, err
		}
	}

	subject := firstNonEmpty(req.EmailSubject, customized.EmailSubject)
	body := firstNonEmpty(req.EmailBody, customized.EmailBody)
	now := s.now().UTC()
	record := &types.SubmissionRecord{
		ID:                 s.newID(),
		CustomizedResumeID: customized.ID,
		JobInfo:            customized.JobInfo.Clone(),
		RecipientEmail:     customized.JobInfo.ContactEmail,
		EmailSubject:       subject,
		Status:             types.SubmissionSending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	sendErr := s.mailer.Send(ctx, mailer.Message{
		To:      record.RecipientEmail,
		Subject: subject,
		Body:    body,
		Attachment: &mailer.Attachment{
			Name: customized.CustomizedFileName,
			Data: []byte(customized.CustomizedText),
		},
	})

	done := s.now().UTC()
	record.UpdatedAt = done
	next := types.StatusSent
	if sendErr != nil {
		record.Status = types.SubmissionFailed
		record.Error = sendErr.Error()
		next = types.StatusFailed
		s.logger.Warn().Err(sendErr).Str("customized_id", customized.ID).
			Str("to", record.RecipientEmail).Msg("resume delivery failed")
	} else {
		record.Status = types.SubmissionSent
		record.SentAt = &done
		s.logger.Info().Str("customized_id", customized.ID).
			Str("to", record.RecipientEmail).Msg("resume sent")
	}

	if err := s.store.SaveSubmission(ctx, record); err != nil {
		return nil, err
	}
	if _, err := s.store.UpdateCustomizedStatus(ctx, customized.ID, next, done); err != nil {
		return nil, err
	}
	return record, nil
}

// Stats returns delivery counts for today.
func (s *Service) Stats(ctx context.Context) (types.Stats, error) {
	return s.store.Stats(ctx, s.now())
}

// Resumes lists stored résumés.
func (s *Service) Resumes(ctx context.Context) ([]types.ResumeSummary, error) {
	return s.store.ListResumes(ctx)
}

// Submissions lists submission records.
func (s *Service) Submissions(ctx context.Context) ([]types.SubmissionRecord, error) {
	return s.store.ListSubmissions(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
