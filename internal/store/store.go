// Package store persists résumés, customized résumés and submission records.
//
// Three backends share one interface: an in-process map store, PostgreSQL
// (JSONB documents keyed by id) and Redis (JSON values with sorted-set
// indexes). Records are returned as copies; mutating a returned value never
// changes what is stored.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// ErrNotFound is returned when no record exists under an id.
var ErrNotFound = errors.New("record not found")

// Store is the record store used by the service.
type Store interface {
	SaveResume(ctx context.Context, r *types.ResumeData) error
	GetResume(ctx context.Context, id string) (*types.ResumeData, error)
	// ListResumes returns all résumés, newest upload first.
	ListResumes(ctx context.Context) ([]types.ResumeSummary, error)

	SaveCustomized(ctx context.Context, c *types.CustomizedResume) error
	GetCustomized(ctx context.Context, id string) (*types.CustomizedResume, error)
	// UpdateCustomizedStatus moves a customized résumé to status, returning
	// a *types.TransitionError when the lifecycle forbids it. SentAt is set
	// to at when the new status is sent.
	UpdateCustomizedStatus(ctx context.Context, id string, status types.Status, at time.Time) (*types.CustomizedResume, error)

	SaveSubmission(ctx context.Context, s *types.SubmissionRecord) error
	GetSubmission(ctx context.Context, id string) (*types.SubmissionRecord, error)
	// ListSubmissions returns all submissions, newest first.
	ListSubmissions(ctx context.Context) ([]types.SubmissionRecord, error)

	// Stats counts sent submissions created on now's UTC day, all sent
	// submissions, and stored résumés.
	Stats(ctx context.Context, now time.Time) (types.Stats, error)

	Close() error
}

// dayBounds returns the start of now's UTC day and the start of the next.
func dayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// applyStatus checks and applies a lifecycle move to c in place.
func applyStatus(c *types.CustomizedResume, status types.Status, at time.Time) error {
	if err := types.CheckTransition(c.Status, status); err != nil {
		return err
	}
	c.Status = status
	if status == types.StatusSent {
		sent := at.UTC()
		c.SentAt = &sent
	}
	return nil
}

func cloneCustomized(c *types.CustomizedResume) *types.CustomizedResume {
	out := *c
	out.JobInfo = c.JobInfo.Clone()
	if c.SentAt != nil {
		sent := *c.SentAt
		out.SentAt = &sent
	}
	return &out
}

func cloneSubmission(s *types.SubmissionRecord) *types.SubmissionRecord {
	out := *s
	out.JobInfo = s.JobInfo.Clone()
	if s.SentAt != nil {
		sent := *s.SentAt
		out.SentAt = &sent
	}
	return &out
}
