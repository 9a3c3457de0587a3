package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LoginAttemptsTotal counts login attempts by outcome
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portal_login_attempts_total",
		Help: "Total login attempts by outcome",
	},
	[]string{"outcome"},
)

// AdminOperationsTotal counts admin mutations by operation and result
var AdminOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portal_admin_operations_total",
		Help: "Total admin operations by operation and result",
	},
	[]string{"operation", "result"},
)

// HTTPRequestsTotal counts HTTP requests
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "Total HTTP requests",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration observes HTTP request latency
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// Login outcomes
const (
	LoginSucceeded      = "succeeded"
	LoginInvalid        = "invalid_credentials"
	LoginDomainMismatch = "domain_mismatch"
	LoginAccessDenied   = "access_denied"
	LoginError          = "error"
)

// ObserveAdminOperation records the result of an admin mutation
func ObserveAdminOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AdminOperationsTotal.WithLabelValues(operation, result).Inc()
}
