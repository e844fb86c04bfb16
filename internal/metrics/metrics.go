// Package metrics defines the Prometheus instruments for the service.
// Everything is registered via promauto and exposed at GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Summarization provider call latency in milliseconds.
	ProviderCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_call_latency_ms",
			Help:    "Summarization provider call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"provider", "status"},
	)

	// Per-record cipher round-trip outcomes.
	EmailProcessedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_processed_count",
			Help: "Total number of email records processed",
		},
		[]string{"status"}, // status: success, dropped
	)

	// Whole-request summarize outcomes.
	SummarizeRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarize_request_count",
			Help: "Total number of summarize requests",
		},
		[]string{"outcome"}, // outcome: ok, empty_batch, no_survivors, provider_error, panic
	)
)

// RecordHTTPRequestDuration records one served HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordProviderCall records one outbound summarization call.
func RecordProviderCall(provider, status string, duration time.Duration) {
	ProviderCallLatency.WithLabelValues(provider, status).Observe(float64(duration.Milliseconds()))
}

// IncrementEmailProcessed counts one record through the round-trip.
func IncrementEmailProcessed(status string) {
	EmailProcessedCount.WithLabelValues(status).Inc()
}

// IncrementSummarizeRequest counts one summarize request by outcome.
func IncrementSummarizeRequest(outcome string) {
	SummarizeRequestCount.WithLabelValues(outcome).Inc()
}
