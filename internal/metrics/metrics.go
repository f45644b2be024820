// Package metrics owns the Prometheus registry and the counters the server
// records.
//
// A private registry is used instead of the global default so tests can
// build as many as they like without "duplicate metrics collector" panics.
// All recording methods are safe to call on a nil *Metrics, which makes
// metrics optional for the CLI and for unit tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "promptlib"

// Metrics holds the registry and every collector registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge

	searches        *prometheus.CounterVec
	searchResults   prometheus.Histogram
	fills           *prometheus.CounterVec
	favoriteToggles *prometheus.CounterVec
	logins          prometheus.Counter
	generations     *prometheus.CounterVec
}

// New creates a registry with the Go runtime and process collectors plus the
// application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed.",
		}),

		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Catalog searches, by sort order.",
			},
			[]string{"sort"},
		),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of prompts returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		fills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "template_fills_total",
				Help:      "Template fills, by whether every placeholder was filled.",
			},
			[]string{"complete"},
		),
		favoriteToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "favorite_toggles_total",
				Help:      "Favorite toggles, by outcome (added, removed, ignored).",
			},
			[]string{"outcome"},
		),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_logins_total",
			Help:      "Mock logins.",
		}),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Generated prompts, by target model.",
			},
			[]string{"model"},
		),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration, m.httpInFlight,
		m.searches, m.searchResults, m.fills, m.favoriteToggles, m.logins, m.generations,
	)
	return m
}


// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RequestStarted bumps the in-flight gauge. Pair with RequestFinished.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

// RequestFinished records one completed request. route should be the route
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) RequestFinished(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
	s := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, s).Inc()
	m.httpDuration.WithLabelValues(method, route, s).Observe(elapsed.Seconds())
}

// Search records one catalog search and its result size.
func (m *Metrics) Search(sort string, results int) {
	if m == nil {
		return
	}
	if sort == "" {
		sort = "none"
	}
	m.searches.WithLabelValues(sort).Inc()
	m.searchResults.Observe(float64(results))
}

// Fill records one template fill.
func (m *Metrics) Fill(complete bool) {
	if m == nil {
		return
	}
	m.fills.WithLabelValues(strconv.FormatBool(complete)).Inc()
}

// FavoriteToggled records a favorite toggle. Anonymous toggles are "ignored".
func (m *Metrics) FavoriteToggled(outcome string) {
	if m == nil {
		return
	}
	m.favoriteToggles.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Login() {
	if m == nil {
		return
	}
	m.logins.Inc()
}

// Generated records one generated prompt for model.
func (m *Metrics) Generated(model string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(model).Inc()
}
