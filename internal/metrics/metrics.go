package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchRequestsTotal   *prometheus.CounterVec
	SearchRequestDuration *prometheus.HistogramVec
	SearchesInFlight      prometheus.Gauge

	ExpansionsTotal prometheus.Counter
	ResultDocsTotal prometheus.Counter

	RateLimitHitsTotal *prometheus.CounterVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// main and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	m := &Metrics{
		SearchRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solr_search_requests_total",
				Help: "Total number of search requests sent to the engine",
			},
			[]string{"status"},
		),
		SearchRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "solr_search_request_duration_seconds",
				Help:    "Search request duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"status"},
		),
		SearchesInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "solr_search_requests_in_flight",
				Help: "Number of searches currently being processed",
			},
		),

		ExpansionsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "solr_search_expansions_total",
				Help: "Total number of all-results probes expanded into a full fetch",
			},
		),
		ResultDocsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "solr_search_result_docs_total",
				Help: "Total number of documents returned to callers",
			},
		),

		RateLimitHitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solr_search_rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"company_id"},
		),
	}

	return m
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSearch(status string, docs int, duration time.Duration) {
	m.SearchRequestsTotal.WithLabelValues(status).Inc()
	m.SearchRequestDuration.WithLabelValues(status).Observe(duration.Seconds())
	if docs > 0 {
		m.ResultDocsTotal.Add(float64(docs))
	}
}

func (m *Metrics) RecordExpansion() {
	m.ExpansionsTotal.Inc()
}

func (m *Metrics) RecordRateLimitHit(companyID int64) {
	m.RateLimitHitsTotal.WithLabelValues(strconv.FormatInt(companyID, 10)).Inc()
}

func (m *Metrics) IncSearchesInFlight() {
	m.SearchesInFlight.Inc()
}

func (m *Metrics) DecSearchesInFlight() {
	m.SearchesInFlight.Dec()
}
