package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// Memory keeps records in maps for the life of the process.
type Memory struct {
	mu          sync.RWMutex
	resumes     map[string]types.ResumeData
	customized  map[string]*types.CustomizedResume
	submissions map[string]*types.SubmissionRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		resumes:     make(map[string]types.ResumeData),
		customized:  make(map[string]*types.CustomizedResume),
		submissions: make(map[string]*types.SubmissionRecord),
	}
}

func (m *Memory) SaveResume(_ context.Context, r *types.ResumeData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[r.ID] = *r
	return nil
}

func (m *Memory) GetResume(_ context.Context, id string) (*types.ResumeData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) ListResumes(_ context.Context) ([]types.ResumeSummary, error) {
	m.mu.RLock()
	out := make([]types.ResumeSummary, 0, len(m.resumes))
	for _, r := range m.resumes {
		out = append(out, r.Summary())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (m *Memory) SaveCustomized(_ context.Context, c *types.CustomizedResume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customized[c.ID] = cloneCustomized(c)
	return nil
}

func (m *Memory) GetCustomized(_ context.Context, id string) (*types.CustomizedResume, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customized[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCustomized(c), nil
}

func (m *Memory) UpdateCustomizedStatus(_ context.Context, id string, status types.Status, at time.Time) (*types.CustomizedResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customized[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := cloneCustomized(c)
	if err := applyStatus(next, status, at); err != nil {
		return nil, err
	}
	m.customized[id] = next
	return cloneCustomized(next), nil
}

func (m *Memory) SaveSubmission(_ context.Context, s *types.SubmissionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID] = cloneSubmission(s)
	return nil
}

func (m *Memory) GetSubmission(_ context.Context, id string) (*types.SubmissionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSubmission(s), nil
}

func (m *Memory) ListSubmissions(_ context.Context) ([]types.SubmissionRecord, error) {
	m.mu.RLock()
	out := make([]types.SubmissionRecord, 0, len(m.submissions))
	for _, s := range m.submissions {
		out = append(out, *cloneSubmission(s))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Stats(_ context.Context, now time.Time) (types.Stats, error) {
	start, end := dayBounds(now)

	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := types.Stats{ResumeCount: len(m.resumes)}
	for _, s := range m.submissions {
		if s.Status != types.SubmissionSent {
			continue
		}
		stats.TotalCount++
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			stats.TodayCount++
		}
	}
	return stats, nil
}

func (m *Memory) Close() error { return nil }
