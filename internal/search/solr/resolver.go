package solr

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/solr-search/internal/domain"
)

// resolve parses body into a result set. For the rows=0 probe it refetches
// once with rows=numFound; the follow-up never expands again.
func (c *Client) resolve(ctx context.Context, url, body string, allResults bool) (*domain.ResultSet, error) {
	// замеряем только разбор ответа, без сети
	start := time.Now()

	resp, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	if allResults && resp.numFound > 0 {
		url = removeParameter(url, paramRows)
		url = addParameter(url, paramRows, strconv.Itoa(resp.numFound))

		c.logger.Debug("expanding all-results request",
			zap.Int("num_found", resp.numFound),
		)
		if c.metrics != nil {
			c.metrics.RecordExpansion()
		}

		body, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		return c.resolve(ctx, url, body, false)
	}

	docs, err := resp.documents()
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(docs))
	for i, doc := range docs {
		scores[i] = normalizeScore(parseFloat(doc.Get(domain.ScoreField)), resp.maxScore)
	}

	return &domain.ResultSet{
		Length:     resp.numFound,
		Docs:       docs,
		Scores:     scores,
		Start:      start,
		SearchTime: time.Since(start).Seconds(),
	}, nil
}
