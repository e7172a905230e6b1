package api

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var (
	registry = prometheus.NewRegistry()

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escolar_client_requests_total",
			Help: "Outgoing requests to the school API by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escolar_client_request_errors_total",
			Help: "Outgoing requests that settled with a non-2xx status or transport failure.",
		},
		[]string{"method", "path"},
	)
)

func init() {
	registry.MustRegister(requestsTotal, requestErrors)
}

func observeRequest(method, path string, status int) {
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	if status < 200 || status > 299 {
		requestErrors.WithLabelValues(method, path).Inc()
	}
}

// GatherMetrics returns the current transport counters, for the CLI metrics
// command and for tests.
func GatherMetrics() ([]*dto.MetricFamily, error) {
	return registry.Gather()
}
