package foxapi

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for requestsTotal.
const (
	OutcomeSuccess        = "success"
	OutcomeLogicalFailure = "logical_failure"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
	OutcomePrecondition   = "precondition"
)

var (
	// requestsTotal counts completed operations.
	// Labels:
	//   - action: value of the act parameter (e.g., "getPhone")
	//   - outcome: success, logical_failure, transport_error, parse_error, precondition
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foxsms_requests_total",
			Help: "Total number of API operations by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// retriesTotal counts transport-level retries (not first attempts).
	retriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foxsms_request_retries_total",
			Help: "Total number of request retries after transport failures",
		},
		[]string{"action"},
	)

	// requestDuration records wall time per operation, retries and backoff included.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foxsms_request_duration_seconds",
			Help:    "Duration of API operations in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(retriesTotal)
	prometheus.MustRegister(requestDuration)
}

func recordOutcome(action Action, outcome string) {
	requestsTotal.WithLabelValues(string(action), outcome).Inc()
}

func recordRetry(action Action) {
	retriesTotal.WithLabelValues(string(action)).Inc()
}

func recordDuration(action Action, seconds float64) {
	requestDuration.WithLabelValues(string(action)).Observe(seconds)
}
