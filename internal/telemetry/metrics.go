package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus observability primitives for the dashboard API.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	invoiceWrites  *prometheus.CounterVec
	signInAttempts *prometheus.CounterVec
	viewCacheOps   *prometheus.CounterVec
}

// NewMetrics registers and returns Prometheus metrics for telemetry.
func NewMetrics() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_dashboard_http_requests_total",
		Help: "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoice_dashboard_http_duration_seconds",
		Help:    "HTTP request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	invoiceWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_dashboard_invoice_writes_total",
		Help: "Invoice write operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	signInAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_dashboard_sign_in_attempts_total",
		Help: "Sign-in attempts by outcome.",
	}, []string{"outcome"})

	viewCacheOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_dashboard_view_cache_ops_total",
		Help: "View cache hits, misses and invalidations by view.",
	}, []string{"view", "op"})

	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		invoiceWrites,
		signInAttempts,
		viewCacheOps,
	)

	return &Metrics{
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
		invoiceWrites:  invoiceWrites,
		signInAttempts: signInAttempts,
		viewCacheOps:   viewCacheOps,
	}
}

// ObserveHTTPRequest records one handled request and its latency.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	routeLabel := sanitizeLabel(route)
	m.httpRequests.WithLabelValues(method, routeLabel, status).Inc()
	m.httpDuration.WithLabelValues(method, routeLabel).Observe(duration.Seconds())
}

// ObserveInvoiceWrite records the outcome of a create, update or delete.
func (m *Metrics) ObserveInvoiceWrite(operation, outcome string) {
	if m == nil {
		return
	}
	m.invoiceWrites.WithLabelValues(operation, sanitizeLabel(outcome)).Inc()
}

// ObserveSignIn records a sign-in attempt outcome.
func (m *Metrics) ObserveSignIn(outcome string) {
	if m == nil {
		return
	}
	m.signInAttempts.WithLabelValues(sanitizeLabel(outcome)).Inc()
}

// ObserveViewCache records a cache hit, miss or invalidation for a view.
func (m *Metrics) ObserveViewCache(view, op string) {
	if m == nil {
		return
	}
	m.viewCacheOps.WithLabelValues(sanitizeLabel(view), op).Inc()
}

func sanitizeLabel(val string) string {
	if val == "" {
		return "unknown"
	}
	return val
}
