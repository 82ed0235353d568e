package solr

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/solr-search/internal/domain"
	"github.com/kitbuilder587/solr-search/internal/metrics"
	"github.com/kitbuilder587/solr-search/internal/search"
)

const DefaultBaseURL = "http://localhost:8983/solr/select"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is safe for concurrent use: nothing is written after New.
type Client struct {
	baseURL string
	fetcher Fetcher
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithFetcher replaces the default net/http fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// WithMetrics counts all-results expansions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func New(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		fetcher: NewHTTPFetcher(cfg.Timeout),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ServerURL() string {
	return c.baseURL
}

// Search runs req against the engine. Any failure is logged and returned as
// a *search.SearchError.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	rs, err := c.search(ctx, req)
	if err != nil {
		c.logger.Error("error while sending request to solr",
			zap.String("url", c.baseURL),
			zap.Int64("company_id", req.CompanyID),
			zap.Error(err),
		)
		return nil, search.Wrap("solr", err)
	}
	return rs, nil
}

// SearchAll returns every match for query.
func (c *Client) SearchAll(ctx context.Context, companyID int64, query domain.Query, sorts []domain.Sort) (*domain.ResultSet, error) {
	return c.Search(ctx, domain.SearchRequest{
		CompanyID: companyID,
		Query:     query,
		Sorts:     sorts,
		Start:     domain.All,
		End:       domain.All,
	})
}

func (c *Client) search(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	url, allResults, err := BuildURL(c.baseURL, req)
	if err != nil {
		return nil, err
	}

	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return c.resolve(ctx, url, body, allResults)
}
