// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the auth API's custom collectors.
type Metrics struct {
	registry        *prometheus.Registry
	AuthRequests    *prometheus.CounterVec
	AuthDuration    *prometheus.HistogramVec
	MaintenanceRuns *prometheus.CounterVec
}

// New creates a registry with the Go and process collectors plus the auth metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		AuthRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopsmart_auth_requests_total",
				Help: "Total number of auth requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		AuthDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopsmart_auth_request_duration_seconds",
				Help:    "Auth request latency by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		MaintenanceRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopsmart_db_maintenance_runs_total",
				Help: "Database maintenance runs by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AuthRequests,
		m.AuthDuration,
		m.MaintenanceRuns,
	)
	return m
}

// ObserveAuth records one auth request.
func (m *Metrics) ObserveAuth(operation, outcome string, took time.Duration) {
	m.AuthRequests.WithLabelValues(operation, outcome).Inc()
	m.AuthDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
