package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of the converter.
type Metrics struct {
	// Cache lookups of the rates snapshot, by result (hit/miss)
	CacheLookupsTotal *prometheus.CounterVec

	// Upstream feed calls, by status (ok/error)
	UpstreamFetchesTotal  *prometheus.CounterVec
	UpstreamFetchDuration prometheus.Histogram
	UpstreamRatesFetched  prometheus.Gauge

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all collectors in reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_cache_lookups_total",
				Help: "Rates snapshot cache lookups",
			},
			[]string{"result"},
		),

		UpstreamFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_upstream_fetches_total",
				Help: "Calls to the upstream exchange rate feed",
			},
			[]string{"status"},
		),

		UpstreamFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "converter_upstream_fetch_duration_seconds",
				Help:    "Latency of upstream exchange rate feed calls",
				Buckets: prometheus.DefBuckets,
			},
		),

		UpstreamRatesFetched: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "converter_upstream_rates",
				Help: "Number of currencies in the last fetched snapshot",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "converter_http_requests_total",
				Help: "HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "converter_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveCacheLookup counts a snapshot cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveFetch records one upstream call.
func (m *Metrics) ObserveFetch(d time.Duration, count int, err error) {
	m.UpstreamFetchDuration.Observe(d.Seconds())
	if err != nil {
		m.UpstreamFetchesTotal.WithLabelValues("error").Inc()
		return
	}
	m.UpstreamFetchesTotal.WithLabelValues("ok").Inc()
	m.UpstreamRatesFetched.Set(float64(count))
}

// ObserveHTTPRequest records one handled HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
