// Package metrics holds the gateway's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smarted_gateway"

// Upload outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// Metrics is the set of gateway collectors on its own registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ProxyErrors     prometheus.Counter
	UploadsInFlight prometheus.Gauge
	Uploads         *prometheus.CounterVec
	UploadBytes     prometheus.Counter
	Players         prometheus.Gauge
}

// New creates and registers the gateway collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served by the gateway.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Gateway request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ProxyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxy_errors_total",
			Help:      "Proxied requests that never reached the backend.",
		}),
		UploadsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uploads_in_flight",
			Help:      "Uploads currently relayed to the backend.",
		}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Finished upload relays by kind and outcome.",
		}, []string{"kind", "outcome"}),
		UploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_bytes_total",
			Help:      "Bytes relayed to the backend upload endpoints.",
		}),
		Players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players",
			Help:      "Live embedded players.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.ProxyErrors,
		m.UploadsInFlight,
		m.Uploads,
		m.UploadBytes,
		m.Players,
	)
	return m
}

// ObserveRequest records one served request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// UploadStarted marks an upload relay as in flight
func (m *Metrics) UploadStarted() {
	m.UploadsInFlight.Inc()
}

// UploadFinished records the end of an upload relay
func (m *Metrics) UploadFinished(kind, outcome string, bytes int64) {
	m.UploadsInFlight.Dec()
	m.Uploads.WithLabelValues(kind, outcome).Inc()
	if bytes > 0 {
		m.UploadBytes.Add(float64(bytes))
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
