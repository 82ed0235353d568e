package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/solr-search/internal/domain"
	"github.com/kitbuilder587/solr-search/internal/metrics"
	"github.com/kitbuilder587/solr-search/internal/search"
)

type Limiter interface {
	Allow(companyID int64) bool
	Wait(ctx context.Context, companyID int64) error
}

type SearchService interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error)
}

type SearchConfig struct {
	Timeout time.Duration
	// WaitForLimit blocks on the limiter instead of failing with ErrRateLimited.
	WaitForLimit bool
}

type SearchServiceDeps struct {
	Searcher search.Searcher
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Config   SearchConfig

	// опционально
	Limiter Limiter
}

type searchService struct {
	searcher search.Searcher
	limiter  Limiter
	logger   *zap.Logger
	metrics  *metrics.Metrics
	config   SearchConfig
}

func NewSearchService(deps SearchServiceDeps) SearchService {
	if deps.Config.Timeout == 0 {
		deps.Config.Timeout = 60 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &searchService{
		searcher: deps.Searcher,
		limiter:  deps.Limiter,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		config:   deps.Config,
	}
}

func (s *searchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	startTime := time.Now()

	if s.metrics != nil {
		s.metrics.IncSearchesInFlight()
		defer s.metrics.DecSearchesInFlight()
	}

	if err := req.Validate(); err != nil {
		s.record("validation_error", 0, startTime)
		return nil, search.Wrap("validate", err)
	}

	if err := s.acquire(ctx, req.CompanyID); err != nil {
		s.record("rate_limited", 0, startTime)
		return nil, search.Wrap("rate limit", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	s.logger.Debug("searching",
		zap.Int64("company_id", req.CompanyID),
		zap.Int("query_length", len(req.Query.String())),
		zap.Int("sorts", len(req.Sorts)),
		zap.Bool("all_results", req.AllResults()),
	)

	rs, err := s.searcher.Search(ctx, req)
	if err != nil {
		s.record("error", 0, startTime)
		return nil, search.Wrap("search", err)
	}

	s.logger.Info("search completed",
		zap.Int64("company_id", req.CompanyID),
		zap.Int("length", rs.Length),
		zap.Int("docs", len(rs.Docs)),
		zap.Float64("search_time_sec", rs.SearchTime),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	s.record("success", len(rs.Docs), startTime)

	return rs, nil
}

func (s *searchService) acquire(ctx context.Context, companyID int64) error {
	if s.limiter == nil {
		return nil
	}

	if s.config.WaitForLimit {
		if err := s.limiter.Wait(ctx, companyID); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return errors.Join(domain.ErrRateLimited, err)
			}
			return err
		}
		return nil
	}

	if !s.limiter.Allow(companyID) {
		if s.metrics != nil {
			s.metrics.RecordRateLimitHit(companyID)
		}
		s.logger.Warn("rate limit hit", zap.Int64("company_id", companyID))
		return domain.ErrRateLimited
	}
	return nil
}

func (s *searchService) record(status string, docs int, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordSearch(status, docs, time.Since(start))
	}
}
