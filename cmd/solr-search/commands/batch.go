package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kitbuilder587/solr-search/internal/domain"
	"github.com/kitbuilder587/solr-search/internal/metrics"
	"github.com/kitbuilder587/solr-search/internal/service"
)

func BatchAction(ctx context.Context, cmd *cli.Command) error {
	tmpl, err := requestTemplate(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	queries, err := ReadQueries(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return domain.ErrEmptyQuery
	}

	appCtx, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	addr := cmd.String("metrics-addr")
	if addr == "" {
		addr = appCtx.Config.Metrics.Addr
	}
	if addr != "" {
		srv := serveMetrics(addr, appCtx)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	concurrency := cmd.Int("concurrency")
	if concurrency <= 0 {
		concurrency = appCtx.Config.Batch.Concurrency
	}

	reqs := make([]domain.SearchRequest, len(queries))
	for i, q := range queries {
		req := tmpl
		req.Query = domain.RawQuery(q)
		reqs[i] = req
	}

	runner := service.NewBatchRunner(appCtx.Service, concurrency, appCtx.Logger)
	results, err := runner.Run(ctx, reqs)
	if err != nil {
		return err
	}

	return WriteBatch(os.Stdout, results)
}

// ReadQueries returns non-empty, non-comment lines.
func ReadQueries(r io.Reader) ([]string, error) {
	var queries []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return queries, nil
}

// WriteBatch prints a summary line per query and returns an error if any
// query failed.
func WriteBatch(w io.Writer, results []service.BatchResult) error {
	var failed int
	for _, r := range results {
		q := r.Request.Query.String()
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %q: %v\n", q, r.Err)
			continue
		}
		fmt.Fprintf(w, "OK   %q: %d of %d results (%.3fs)\n", q, len(r.Result.Docs), r.Result.Length, r.Result.SearchTime)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}

func serveMetrics(addr string, appCtx *AppContext) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(appCtx.Registry))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appCtx.Logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	appCtx.Logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}
