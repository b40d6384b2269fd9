// Package monitoring handles Prometheus metrics collection
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors. Each server instance carries its
// own registry so repeated construction never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	recipesPublishedTotal prometheus.Counter
	imagesUploadedTotal   prometheus.Counter
	cacheOperationsTotal  *prometheus.CounterVec
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		recipesPublishedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_published_total",
				Help: "Total number of recipes published",
			},
		),
		imagesUploadedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "images_uploaded_total",
				Help: "Total number of recipe images uploaded",
			},
		),
		cacheOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Total number of cache operations",
			},
			[]string{"operation", "result"},
		),
	}
}

// RecordHTTPRequest records one finished HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordRecipePublished increments the publish counter
func (m *Metrics) RecordRecipePublished() {
	m.recipesPublishedTotal.Inc()
}

// RecordImageUploaded increments the upload counter
func (m *Metrics) RecordImageUploaded() {
	m.imagesUploadedTotal.Inc()
}

// RecordCacheOperation records a cache hit or miss
func (m *Metrics) RecordCacheOperation(operation, result string) {
	m.cacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// Handler exposes the registry for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
