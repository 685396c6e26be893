package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pixweight"

// Registry holds every collector exposed at /metrics.
var Registry = prometheus.NewRegistry()

var (
	sessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Sessions created from an image.",
	})
	sessionsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_rejected_total",
		Help:      "Session creations rejected before persistence.",
	}, []string{"reason"})
	estimates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimates_total",
		Help:      "Answer submissions by outcome.",
	}, []string{"outcome"})
	inferenceCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inference_calls_total",
		Help:      "Inference gateway calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	inferenceRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inference_retries_total",
		Help:      "Inference attempts retried after a transient failure.",
	}, []string{"operation"})
	inferenceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Inference gateway call duration including retries.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 90, 180},
	}, []string{"operation"})
	enrichment = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_total",
		Help:      "Category enrichment runs by category and status.",
	}, []string{"category", "status"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		sessionsCreated,
		sessionsRejected,
		estimates,
		inferenceCalls,
		inferenceRetries,
		inferenceDuration,
		enrichment,
	)
}

// IncSessionCreated counts a persisted session.
func IncSessionCreated() {
	sessionsCreated.Inc()
}

// IncSessionRejected counts a creation that stopped before persistence.
func IncSessionRejected(reason string) {
	sessionsRejected.WithLabelValues(reason).Inc()
}

// IncEstimate counts an answer submission outcome: pending, estimated, existing or failed.
func IncEstimate(outcome string) {
	estimates.WithLabelValues(outcome).Inc()
}

// ObserveInference records one gateway call.
func ObserveInference(operation, outcome string, d time.Duration) {
	inferenceCalls.WithLabelValues(operation, outcome).Inc()
	inferenceDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncInferenceRetry counts a retried attempt.
func IncInferenceRetry(operation string) {
	inferenceRetries.WithLabelValues(operation).Inc()
}

// IncEnrichment counts a category enrichment run.
func IncEnrichment(category, status string) {
	enrichment.WithLabelValues(category, status).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
