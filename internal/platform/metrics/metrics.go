// Package metrics exposes Prometheus collectors for document building and
// HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jsonapi"

// Metrics holds the service collectors. It implements document.Observer.
type Metrics struct {
	gatherer prometheus.Gatherer

	builds          *prometheus.HistogramVec
	resources       *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors with reg and serves them from
// gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,
		builds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_build_duration_seconds",
			Help:      "Time spent building documents, by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"kind"}),
		resources: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_resources_total",
			Help:      "Resource objects rendered into documents, by kind.",
		}, []string{"kind"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveBuild records one built document.
func (m *Metrics) ObserveBuild(kind string, resources int, elapsed time.Duration) {
	m.builds.WithLabelValues(kind).Observe(elapsed.Seconds())
	m.resources.WithLabelValues(kind).Add(float64(resources))
}

// Middleware counts requests and their latency. Routes are labelled with the
// chi route pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
