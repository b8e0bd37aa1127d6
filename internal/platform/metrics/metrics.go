// Package metrics holds process-wide Prometheus metrics. Feature-specific
// metrics live next to their feature package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers the platform metrics.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "filing_http_requests_total",
			Help: "Total HTTP requests by method and status class",
		}, []string{"method", "status"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "filing_http_request_duration_seconds",
			Help:    "HTTP request latency by method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method, status string, seconds float64) {
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestLatency.WithLabelValues(method).Observe(seconds)
}
