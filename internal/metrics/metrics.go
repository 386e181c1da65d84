// Package metrics declares the Prometheus collectors for upstream calls,
// pipeline runs, the circuit breakers and the history writer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream names used as label values.
const (
	UpstreamCatalog    = "catalog"
	UpstreamCompletion = "completion"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelvibe_upstream_requests_total",
			Help: "Total number of calls to external services by outcome",
		},
		[]string{"upstream", "outcome"}, // outcome: ok, not_found, upstream_timeout, upstream_error
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelvibe_upstream_request_duration_seconds",
			Help:    "Duration of calls to external services in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelvibe_pipeline_runs_total",
			Help: "Total number of pipeline executions by outcome",
		},
		[]string{"pipeline", "outcome"},
	)

	RecommendationsExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelvibe_recommendations_extracted",
			Help:    "Number of recommendations parsed from a single completion",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 7, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelvibe_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelvibe_circuit_breaker_rejections_total",
			Help: "Requests rejected without reaching the upstream",
		},
		[]string{"name"},
	)

	HistoryDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelvibe_history_dropped_total",
			Help: "Lookup records dropped because the writer queue was full",
		},
	)
)

// ObserveUpstream records one completed call to an external service.
func ObserveUpstream(upstream, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(upstream, outcome).Inc()
	UpstreamDuration.WithLabelValues(upstream).Observe(time.Since(started).Seconds())
}
