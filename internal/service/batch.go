package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

const DefaultBatchConcurrency = 4

type BatchResult struct {
	Request domain.SearchRequest
	Result  *domain.ResultSet
	Err     error
}

// BatchRunner runs independent searches concurrently. A failed search does
// not cancel the others.
type BatchRunner struct {
	svc         SearchService
	concurrency int
	logger      *zap.Logger
}

func NewBatchRunner(svc SearchService, concurrency int, logger *zap.Logger) *BatchRunner {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{svc: svc, concurrency: concurrency, logger: logger}
}

// Run returns one result per request, in request order.
func (b *BatchRunner) Run(ctx context.Context, reqs []domain.SearchRequest) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			rs, err := b.svc.Search(gctx, req)
			results[i] = BatchResult{Request: req, Result: rs, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	b.logger.Info("batch completed",
		zap.Int("requests", len(reqs)),
		zap.Int("failed", failed),
	)

	return results, ctx.Err()
}
