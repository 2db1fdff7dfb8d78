package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// AuthzDecisionCounter counts policy evaluator outcomes per resource
	// type and operation
	AuthzDecisionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization decisions",
		},
		[]string{"resource_type", "operation", "decision"},
	)

	// ReferentialViolationCounter counts rejected cross-tenant writes.
	// Non-zero values point at a buggy client or an attack attempt.
	ReferentialViolationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referential_violations_total",
			Help: "Total number of rejected cross-tenant reference attempts",
		},
		[]string{"resource_type"},
	)
)

var registered bool

// Register registers all collectors with the default registry. Safe to
// call once at startup.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(
		RequestCounter,
		RequestDurationHistogram,
		AuthzDecisionCounter,
		ReferentialViolationCounter,
	)
	registered = true
}

// RecordDecision records one policy evaluator outcome.
func RecordDecision(resourceType string, operation string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	AuthzDecisionCounter.WithLabelValues(resourceType, operation, decision).Inc()
}

// RecordReferentialViolation records one rejected cross-tenant write.
func RecordReferentialViolation(resourceType string) {
	ReferentialViolationCounter.WithLabelValues(resourceType).Inc()
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
