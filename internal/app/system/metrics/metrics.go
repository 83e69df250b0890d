// Package metrics exposes Prometheus instrumentation for backend calls, the
// query cache and inbound HTTP requests. A nil *Metrics is a valid no-op.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors registered at startup.
type Metrics struct {
	reg *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	cache       *prometheus.CounterVec
	invalidated prometheus.Counter
	httpReqs    *prometheus.CounterVec
	uploads     *prometheus.CounterVec
}

// New creates a registry with Go/process collectors and the dashboard's own
// series.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnadmin_api_requests_total",
			Help: "Backend API calls by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "learnadmin_api_request_duration_seconds",
			Help:    "Backend API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnadmin_cache_lookups_total",
			Help: "Query cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		invalidated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learnadmin_cache_invalidated_entries_total",
			Help: "Cache entries dropped by tag invalidation.",
		}),
		httpReqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnadmin_http_requests_total",
			Help: "Inbound dashboard requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnadmin_uploads_total",
			Help: "CDN uploads by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.cache, m.invalidated, m.httpReqs, m.uploads,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveAPI records one backend call. status 0 means a transport error.
func (m *Metrics) ObserveAPI(endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.apiLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// CacheLookup records a cache hit, miss or error.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

// CacheInvalidated records n entries dropped by a tag invalidation.
func (m *Metrics) CacheInvalidated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.invalidated.Add(float64(n))
}

// Upload records a CDN upload outcome ("ok", "rejected", "failed").
func (m *Metrics) Upload(kind, outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(kind, outcome).Inc()
}

// Middleware counts inbound requests by chi route pattern so that IDs in
// paths do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpReqs.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
