package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	TabsOpen     prometheus.Gauge
	TabsTotal    prometheus.Counter
	VideosActive prometheus.Gauge
	Bookmarks    prometheus.Gauge

	// Gateway metrics
	AdvisoryRequests *prometheus.CounterVec
	SearchRequests   *prometheus.CounterVec
	ProviderFallback prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector.
//
// Uses a dedicated registry per instance so tests can construct metrics
// repeatedly without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	m.registry = reg
	return m
}

// NewMetricsWith registers the collector on the provided registerer
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return newMetrics(reg)
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyberproxy_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cyberproxy_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		TabsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cyberproxy_tabs_open",
			Help: "Number of currently open tabs",
		}),
		TabsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cyberproxy_tabs_created_total",
			Help: "Total number of tabs created",
		}),
		VideosActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cyberproxy_videos_active",
			Help: "Number of active video instances across all tabs",
		}),
		Bookmarks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cyberproxy_bookmarks",
			Help: "Number of saved proxy bookmarks",
		}),

		AdvisoryRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyberproxy_advisory_requests_total",
				Help: "Advisory requests by outcome",
			},
			[]string{"outcome"},
		),
		SearchRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyberproxy_search_requests_total",
				Help: "Search requests by outcome",
			},
			[]string{"outcome"},
		),
		ProviderFallback: factory.NewCounter(prometheus.CounterOpts{
			Name: "cyberproxy_provider_fallbacks_total",
			Help: "Provider calls that degraded to the fallback path",
		}),

		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cyberproxy_ws_connections",
			Help: "Active WebSocket connections",
		}),

		Uptime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cyberproxy_uptime_seconds",
			Help: "Process uptime in seconds",
		}),
	}
}

// Handler returns a Prometheus exposition handler for this collector.
// Returns nil when the collector was registered on an external registerer.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records metrics for a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// RecordAdvisory records an advisory request outcome ("ok" or "fallback")
func (m *Metrics) RecordAdvisory(outcome string) {
	m.AdvisoryRequests.WithLabelValues(outcome).Inc()
	if outcome == "fallback" {
		m.ProviderFallback.Inc()
	}
}

// RecordSearch records a search request outcome ("ok" or "fallback")
func (m *Metrics) RecordSearch(outcome string) {
	m.SearchRequests.WithLabelValues(outcome).Inc()
	if outcome == "fallback" {
		m.ProviderFallback.Inc()
	}
}

// RecordSession updates session gauges from store stats
func (m *Metrics) RecordSession(tabs, videos, bookmarks int) {
	m.TabsOpen.Set(float64(tabs))
	m.VideosActive.Set(float64(videos))
	m.Bookmarks.Set(float64(bookmarks))
}
