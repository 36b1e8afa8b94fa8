package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-dispatch/internal/types"
)

var day = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newResume(uploaded time.Time) *types.ResumeData {
	return &types.ResumeData{
		ID:             uuid.NewString(),
		FileName:       "zhangsan.pdf",
		RawText:        "张三\n工作经验",
		ParsedSections: types.ParsedSections{Name: "张三", Experience: "A公司"},
		UploadedAt:     uploaded,
	}
}

func newCustomized(resumeID string, created time.Time) *types.CustomizedResume {
	return &types.CustomizedResume{
		ID:                 uuid.NewString(),
		BaseResumeID:       resumeID,
		JobInfo:            types.JobInfo{Title: "Go工程师", Company: "Acme", Requirements: []string{"Go"}, ContactEmail: "hr@acme.com"},
		CustomizedText:     "定制",
		CustomizedFileName: "张三_Acme_Go工程师.txt",
		CoverLetter:        "信",
		EmailSubject:       "求职申请",
		EmailBody:          "正文",
		Strategy:           "template",
		Status:             types.StatusPendingReview,
		CreatedAt:          created,
	}
}

func newSubmission(customizedID string, status types.SubmissionStatus, created time.Time) *types.SubmissionRecord {
	return &types.SubmissionRecord{
		ID:                 uuid.NewString(),
		CustomizedResumeID: customizedID,
		JobInfo:            types.JobInfo{Title: "Go工程师", Company: "Acme"},
		RecipientEmail:     "hr@acme.com",
		EmailSubject:       "求职申请",
		Status:             status,
		CreatedAt:          created,
	}
}

// runContract exercises behavior every backend must share. The store is
// expected to be empty.
func runContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("resume round trip and order", func(t *testing.T) {
		older := newResume(day.Add(-time.Hour))
		newer := newResume(day)
		require.NoError(t, s.SaveResume(ctx, older))
		require.NoError(t, s.SaveResume(ctx, newer))

		got, err := s.GetResume(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, older.RawText, got.RawText)
		assert.Equal(t, "张三", got.ParsedSections.Name)

		list, err := s.ListResumes(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.ID, list[1].ID)

		_, err = s.GetResume(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("customized lifecycle", func(t *testing.T) {
		c := newCustomized("r", day)
		require.NoError(t, s.SaveCustomized(ctx, c))

		got, err := s.GetCustomized(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusPendingReview, got.Status)
		assert.Equal(t, []string{"Go"}, got.JobInfo.Requirements)

		updated, err := s.UpdateCustomizedStatus(ctx, c.ID, types.StatusApproved, day)
		require.NoError(t, err)
		assert.Equal(t, types.StatusApproved, updated.Status)
		assert.Nil(t, updated.SentAt)

		sentAt := day.Add(time.Minute)
		updated, err = s.UpdateCustomizedStatus(ctx, c.ID, types.StatusSent, sentAt)
		require.NoError(t, err)
		require.NotNil(t, updated.SentAt)
		assert.True(t, sentAt.Equal(*updated.SentAt))

		_, err = s.UpdateCustomizedStatus(ctx, c.ID, types.StatusApproved, day)
		var te *types.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, types.StatusSent, te.From)

		got, err = s.GetCustomized(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusSent, got.Status)

		_, err = s.UpdateCustomizedStatus(ctx, "missing", types.StatusSent, day)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("submissions and stats", func(t *testing.T) {
		yesterday := day.AddDate(0, 0, -1)
		sentToday := newSubmission("c", types.SubmissionSent, day)
		sentYesterday := newSubmission("c", types.SubmissionSent, yesterday)
		failed := newSubmission("c", types.SubmissionFailed, day.Add(time.Minute))
		failed.Error = "smtp timeout"
		for _, sub := range []*types.SubmissionRecord{sentToday, sentYesterday, failed} {
			require.NoError(t, s.SaveSubmission(ctx, sub))
		}

		got, err := s.GetSubmission(ctx, failed.ID)
		require.NoError(t, err)
		assert.Equal(t, "smtp timeout", got.Error)

		list, err := s.ListSubmissions(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, failed.ID, list[0].ID)
		assert.Equal(t, sentYesterday.ID, list[2].ID)

		stats, err := s.Stats(ctx, day.Add(5*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, types.Stats{TodayCount: 1, TotalCount: 2, ResumeCount: 2}, stats)

		// a failed submission saved again as sent starts counting
		failed.Status = types.SubmissionSent
		require.NoError(t, s.SaveSubmission(ctx, failed))
		stats, err = s.Stats(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TodayCount)
		assert.Equal(t, 3, stats.TotalCount)

		_, err = s.GetSubmission(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
