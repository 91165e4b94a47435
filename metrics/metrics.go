// Package metrics defines the Prometheus collectors shared by the record
// source service and the dashboard.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	SourceFetchesTotal   *prometheus.CounterVec
	ImportsTotal         *prometheus.CounterVec
	StoredRecords        prometheus.Gauge
	ChartRendersTotal    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates the collectors and registers them with reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		SourceFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "source_fetches_total",
				Help: "Record source fetches by result (ok, error, cached).",
			},
			[]string{"result"},
		),
		ImportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataset_imports_total",
				Help: "Dataset imports by status (ok, error, skipped).",
			},
			[]string{"status"},
		),
		StoredRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "stored_records",
				Help: "Number of records in the document store.",
			},
		),
		ChartRendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chart_renders_total",
				Help: "Chart renders by kind and status (ready, loading, error, no_data).",
			},
			[]string{"kind", "status"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SourceFetchesTotal,
		m.ImportsTotal,
		m.StoredRecords,
		m.ChartRendersTotal,
	)

	return m
}

// Handler returns the scrape handler for m's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
