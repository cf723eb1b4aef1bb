// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Engine metrics
	MatricesBuilt    prometheus.Counter
	AnalysesComputed *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram

	// API metrics
	HTTPRequests    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSSessionsActive prometheus.Gauge
	WSMessages       prometheus.Counter
}

// NewMetrics creates a Metrics instance with all metrics registered on reg.
// Pass prometheus.DefaultRegisterer in mains; tests use a fresh registry.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "pricing_lab"
	}
	factory := promauto.With(reg)

	return &Metrics{
		MatricesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "matrices_built_total",
			Help:      "Total number of payoff matrices built",
		}),
		AnalysesComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "analyses_computed_total",
			Help:      "Total number of analyses computed by status",
		}, []string{"status"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "analysis_duration_seconds",
			Help:      "Full analysis chain duration",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		WSSessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "ws_sessions_active",
			Help:      "Currently open WebSocket analysis sessions",
		}),
		WSMessages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "ws_messages_total",
			Help:      "Total WebSocket parameter messages processed",
		}),
	}
}

// RecordAnalysis records one analysis run.
func (m *Metrics) RecordAnalysis(status string, seconds float64) {
	m.AnalysesComputed.WithLabelValues(status).Inc()
	m.AnalysisDuration.Observe(seconds)
}

// RecordRequest records one HTTP request.
func (m *Metrics) RecordRequest(route, code string, seconds float64) {
	m.HTTPRequests.WithLabelValues(route, code).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}

// Handler returns the Prometheus scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
