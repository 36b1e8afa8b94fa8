package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-dispatch/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// Postgres stores each record as a JSONB document next to the columns it is
// queried by.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// EnsureSchema creates the tables when they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (p *Postgres) SaveResume(ctx context.Context, r *types.ResumeData) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO resumes (id, doc, uploaded_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, uploaded_at = EXCLUDED.uploaded_at`,
		r.ID, doc, r.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", r.ID, err)
	}
	return nil
}

func (p *Postgres) GetResume(ctx context.Context, id string) (*types.ResumeData, error) {
	var r types.ResumeData
	if err := p.getDoc(ctx, `SELECT doc FROM resumes WHERE id = $1`, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *Postgres) ListResumes(ctx context.Context) ([]types.ResumeSummary, error) {
	rows, err := p.pool.Query(ctx, `SELECT doc FROM resumes ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	docs, err := collectDocs[types.ResumeData](rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	out := make([]types.ResumeSummary, len(docs))
	for i := range docs {
		out[i] = docs[i].Summary()
	}
	return out, nil
}

func (p *Postgres) SaveCustomized(ctx context.Context, c *types.CustomizedResume) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal customized resume: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO customized_resumes (id, base_resume_id, status, doc, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, doc = EXCLUDED.doc`,
		c.ID, c.BaseResumeID, string(c.Status), doc, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save customized resume %s: %w", c.ID, err)
	}
	return nil
}

func (p *Postgres) GetCustomized(ctx context.Context, id string) (*types.CustomizedResume, error) {
	var c types.CustomizedResume
	if err := p.getDoc(ctx, `SELECT doc FROM customized_resumes WHERE id = $1`, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCustomizedStatus locks the row for the read-check-write.
func (p *Postgres) UpdateCustomizedStatus(ctx context.Context, id string, status types.Status, at time.Time) (*types.CustomizedResume, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM customized_resumes WHERE id = $1 FOR UPDATE`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customized resume %s: %w", id, err)
	}

	var c types.CustomizedResume
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode customized resume %s: %w", id, err)
	}
	if err := applyStatus(&c, status, at); err != nil {
		return nil, err
	}

	doc, err := json.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customized resume: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE customized_resumes SET status = $2, doc = $3 WHERE id = $1`,
		id, string(c.Status), doc,
	); err != nil {
		return nil, fmt.Errorf("failed to update customized resume %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return &c, nil
}

func (p *Postgres) SaveSubmission(ctx context.Context, s *types.SubmissionRecord) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO submissions (id, customized_resume_id, status, doc, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, doc = EXCLUDED.doc`,
		s.ID, s.CustomizedResumeID, string(s.Status), doc, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save submission %s: %w", s.ID, err)
	}
	return nil
}

func (p *Postgres) GetSubmission(ctx context.Context, id string) (*types.SubmissionRecord, error) {
	var s types.SubmissionRecord
	if err := p.getDoc(ctx, `SELECT doc FROM submissions WHERE id = $1`, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) ListSubmissions(ctx context.Context) ([]types.SubmissionRecord, error) {
	rows, err := p.pool.Query(ctx, `SELECT doc FROM submissions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	out, err := collectDocs[types.SubmissionRecord](rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return out, nil
}

func (p *Postgres) Stats(ctx context.Context, now time.Time) (types.Stats, error) {
	start, end := dayBounds(now)
	var stats types.Stats
	err := p.pool.QueryRow(ctx,
		`SELECT
		   count(*) FILTER (WHERE created_at >= $2 AND created_at < $3),
		   count(*)
		 FROM submissions WHERE status = $1`,
		string(types.SubmissionSent), start, end,
	).Scan(&stats.TodayCount, &stats.TotalCount)
	if err != nil {
		return types.Stats{}, fmt.Errorf("failed to count submissions: %w", err)
	}
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM resumes`).Scan(&stats.ResumeCount); err != nil {
		return types.Stats{}, fmt.Errorf("failed to count resumes: %w", err)
	}
	return stats, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Postgres) getDoc(ctx context.Context, query, id string, dest any) error {
	var raw []byte
	err := p.pool.QueryRow(ctx, query, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", id, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", id, err)
	}
	return nil
}

func collectDocs[T any](rows pgx.Rows) ([]T, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		var raw []byte
		var v T
		if err := row.Scan(&raw); err != nil {
			return v, err
		}
		err := json.Unmarshal(raw, &v)
		return v, err
	})
}
