package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// Redis key layout.
const (
	resumePrefix     = "resume:"
	customizedPrefix = "customized:"
	submissionPrefix = "submission:"

	// sorted sets scored by creation time in Unix milliseconds
	resumeIndex     = "index:resumes"
	submissionIndex = "index:submissions"
	sentIndex       = "index:submissions:sent"
)

// maxWatchRetries bounds optimistic-lock retries on status updates.
const maxWatchRetries = 5

// Redis stores records as JSON strings with sorted-set indexes for listing
// and counting.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis returns a store backed by client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// ConnectRedis dials addr and verifies the connection.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return NewRedis(client), nil
}

func resumeKey(id string) string     { return resumePrefix + id }
func customizedKey(id string) string { return customizedPrefix + id }
func submissionKey(id string) string { return submissionPrefix + id }

func score(t time.Time) float64 { return float64(t.UnixMilli()) }

func (r *Redis) SaveResume(ctx context.Context, res *types.ResumeData) error {
	doc, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resumeKey(res.ID), doc, 0)
		pipe.ZAdd(ctx, resumeIndex, redis.Z{Score: score(res.UploadedAt), Member: res.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", res.ID, err)
	}
	return nil
}

func (r *Redis) GetResume(ctx context.Context, id string) (*types.ResumeData, error) {
	var res types.ResumeData
	if err := r.getJSON(ctx, resumeKey(id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Redis) ListResumes(ctx context.Context) ([]types.ResumeSummary, error) {
	docs, err := listJSON[types.ResumeData](ctx, r.client, resumeIndex, resumePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	out := make([]types.ResumeSummary, len(docs))
	for i := range docs {
		out[i] = docs[i].Summary()
	}
	return out, nil
}

func (r *Redis) SaveCustomized(ctx context.Context, c *types.CustomizedResume) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal customized resume: %w", err)
	}
	if err := r.client.Set(ctx, customizedKey(c.ID), doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to save customized resume %s: %w", c.ID, err)
	}
	return nil
}

func (r *Redis) GetCustomized(ctx context.Context, id string) (*types.CustomizedResume, error) {
	var c types.CustomizedResume
	if err := r.getJSON(ctx, customizedKey(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCustomizedStatus watches the record key and retries when another
// writer changes it between read and write.
func (r *Redis) UpdateCustomizedStatus(ctx context.Context, id string, status types.Status, at time.Time) (*types.CustomizedResume, error) {
	key := customizedKey(id)
	var updated types.CustomizedResume

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var c types.CustomizedResume
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("failed to decode customized resume %s: %w", id, err)
		}
		if err := applyStatus(&c, status, at); err != nil {
			return err
		}
		doc, err := json.Marshal(&c)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			return nil
		})
		if err == nil {
			updated = c
		}
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			var te *types.TransitionError
			if errors.Is(err, ErrNotFound) || errors.As(err, &te) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update customized resume %s: %w", id, err)
		}
		return &updated, nil
	}
	return nil, fmt.Errorf("failed to update customized resume %s: too much contention", id)
}

func (r *Redis) SaveSubmission(ctx context.Context, s *types.SubmissionRecord) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, submissionKey(s.ID), doc, 0)
		pipe.ZAdd(ctx, submissionIndex, redis.Z{Score: score(s.CreatedAt), Member: s.ID})
		if s.Status == types.SubmissionSent {
			pipe.ZAdd(ctx, sentIndex, redis.Z{Score: score(s.CreatedAt), Member: s.ID})
		} else {
			pipe.ZRem(ctx, sentIndex, s.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save submission %s: %w", s.ID, err)
	}
	return nil
}

func (r *Redis) GetSubmission(ctx context.Context, id string) (*types.SubmissionRecord, error) {
	var s types.SubmissionRecord
	if err := r.getJSON(ctx, submissionKey(id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Redis) ListSubmissions(ctx context.Context) ([]types.SubmissionRecord, error) {
	out, err := listJSON[types.SubmissionRecord](ctx, r.client, submissionIndex, submissionPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return out, nil
}

func (r *Redis) Stats(ctx context.Context, now time.Time) (types.Stats, error) {
	start, end := dayBounds(now)
	pipe := r.client.Pipeline()
	today := pipe.ZCount(ctx, sentIndex, strconv.FormatInt(start.UnixMilli(), 10), "("+strconv.FormatInt(end.UnixMilli(), 10))
	total := pipe.ZCard(ctx, sentIndex)
	resumes := pipe.ZCard(ctx, resumeIndex)
	if _, err := pipe.Exec(ctx); err != nil {
		return types.Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return types.Stats{
		TodayCount:  int(today.Val()),
		TotalCount:  int(total.Val()),
		ResumeCount: int(resumes.Val()),
	}, nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) getJSON(ctx context.Context, key string, dest any) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// listJSON loads every record in index, newest first. Index members whose
// record is gone are skipped.
func listJSON[T any](ctx context.Context, client redis.UniversalClient, index, prefix string) ([]T, error) {
	ids, err := client.ZRevRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []T{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = prefix + id
	}
	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	return decodeValues[T](values)
}

func decodeValues[T any](values []any) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var item T
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
