package commands

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/solr-search/internal/config"
	"github.com/kitbuilder587/solr-search/internal/domain"
	"github.com/kitbuilder587/solr-search/internal/metrics"
	"github.com/kitbuilder587/solr-search/internal/ratelimit"
	"github.com/kitbuilder587/solr-search/internal/search/solr"
	"github.com/kitbuilder587/solr-search/internal/service"
)

// AppContext holds everything a command needs.
type AppContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Client   *solr.Client
	Service  service.SearchService

	limiter *ratelimit.Limiter
}

func NewAppContext(cmd *cli.Command) (*AppContext, error) {
	if err := config.LoadEnvFile(cmd.String("env")); err != nil {
		return nil, err
	}

	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	client := solr.New(solr.Config{
		BaseURL: cfg.Solr.URL,
		Timeout: cfg.Solr.Timeout,
	}, logger, solr.WithMetrics(m))

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	})

	svc := service.NewSearchService(service.SearchServiceDeps{
		Searcher: client,
		Logger:   logger,
		Metrics:  m,
		Limiter:  limiter,
		Config: service.SearchConfig{
			Timeout:      cfg.Solr.SearchTimeout,
			WaitForLimit: cfg.RateLimit.Wait,
		},
	})

	logger.Debug("app context ready",
		zap.String("solr_url", client.ServerURL()),
		zap.Duration("timeout", cfg.Solr.Timeout),
		zap.Int("rate_limit_per_minute", cfg.RateLimit.RequestsPerMinute),
	)

	return &AppContext{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Metrics:  m,
		Client:   client,
		Service:  svc,
		limiter:  limiter,
	}, nil
}

func (ac *AppContext) Close() {
	ac.limiter.Stop()
	_ = ac.Logger.Sync()
}

// ParseSort reads "name" or "name:asc|desc".
func ParseSort(s string) (domain.Sort, error) {
	name, dir, hasDir := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Sort{}, fmt.Errorf("%w: %q", domain.ErrEmptySort, s)
	}

	if !hasDir {
		return domain.Sort{FieldName: name}, nil
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "asc":
		return domain.Sort{FieldName: name}, nil
	case "desc":
		return domain.Sort{FieldName: name, Reverse: true}, nil
	default:
		return domain.Sort{}, fmt.Errorf("invalid sort direction %q in %q (want asc or desc)", dir, s)
	}
}

func ParseSorts(values []string) ([]domain.Sort, error) {
	if len(values) == 0 {
		return nil, nil
	}
	sorts := make([]domain.Sort, 0, len(values))
	for _, v := range values {
		s, err := ParseSort(v)
		if err != nil {
			return nil, err
		}
		sorts = append(sorts, s)
	}
	return sorts, nil
}

// requestTemplate builds a request from the shared window/sort flags.
func requestTemplate(cmd *cli.Command) (domain.SearchRequest, error) {
	sorts, err := ParseSorts(cmd.StringSlice("sort"))
	if err != nil {
		return domain.SearchRequest{}, err
	}

	req := domain.SearchRequest{
		CompanyID: cmd.Int64("company-id"),
		Sorts:     sorts,
		Start:     cmd.Int("start"),
		End:       cmd.Int("end"),
	}
	if cmd.Bool("all") {
		req.Start, req.End = domain.All, domain.All
	}
	return req, nil
}
