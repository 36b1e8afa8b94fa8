package extraction

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// Input is one article handed to ExtractAll.
type Input struct {
	Text string
	URL  string
}

// DefaultBatchLimit bounds the number of concurrent extractions in a batch.
const DefaultBatchLimit = 8

// ExtractAll runs Extract over every input concurrently and returns the
// results in input order. It stops early only when ctx is cancelled.
func ExtractAll(ctx context.Context, inputs []Input, limit int) ([]types.JobInfo, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	results := make([]types.JobInfo, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = Extract(in.Text, in.URL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
