package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchItem pairs a request's result with its error.
type BatchItem struct {
	Result *Result
	Err    error
}

// RunBatch runs reqs in parallel on at most the configured number of
// workers. Items are returned in request order. A failing request does not
// stop the others; only cancellation of ctx does, and then its error is
// returned alongside whatever finished.
func (p *Pipeline) RunBatch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))

	workers := p.workers
	if workers > len(reqs) {
		workers = len(reqs)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].Err = err
				return err
			}
			res, err := p.Run(gctx, reqs[i])
			items[i] = BatchItem{Result: res, Err: err}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
		}
	}
	p.log.Info("Batch finished",
		zap.Int("requests", len(reqs)),
		zap.Int("failed", failed),
		zap.Int("workers", workers))

	return items, err
}
