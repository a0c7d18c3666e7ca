// Package middleware provides cross-cutting concerns for the support agent
// evaluation stack, currently Prometheus-backed metrics collection.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/flightline-ai/supportbench/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It provides real-time monitoring of evaluation quality, chat activity,
// LLM request volume, and token consumption.
type PrometheusMetrics struct {
	llmRequests    *prometheus.CounterVec
	llmTokens      *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
	evalExamples   *prometheus.CounterVec
	evalRuns       *prometheus.CounterVec
	averageScore   *prometheus.GaugeVec
	qualityScore   *prometheus.HistogramVec
	operationTime  *prometheus.HistogramVec
	operationCount *prometheus.CounterVec
	systemGauges   *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers all
// metrics with the given registerer. Pass prometheus.DefaultRegisterer for
// production use; tests should pass a fresh prometheus.NewRegistry().
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		llmRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of LLM requests by provider, model, and status.",
			},
			[]string{"provider", "model", "status"},
		),
		llmTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Total number of tokens consumed across all LLM requests.",
			},
			[]string{"provider", "model", "token_type"},
		),
		llmLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_latency_seconds",
				Help:    "LLM request latency by provider and model.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model", "status"},
		),
		evalExamples: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evaluation_examples_total",
				Help: "Total number of evaluated examples by scorer and status.",
			},
			[]string{"scorer", "status"},
		),
		evalRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evaluation_runs_total",
				Help: "Total number of completed evaluation runs.",
			},
			[]string{"scorer"},
		),
		averageScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "evaluation_average_score",
				Help: "Average quality score of the most recent evaluation run.",
			},
			[]string{"scorer"},
		),
		qualityScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "evaluation_quality_score",
				Help: "Distribution of per-response quality scores.",
				// The quality scorer emits scores on a 0.2 grid.
				Buckets: prometheus.LinearBuckets(0, 0.2, 6),
			},
			[]string{"scorer"},
		),
		operationTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "operation_duration_seconds",
				Help:    "Execution time of named operations such as agent responses.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "status"},
		),
		operationCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "operations_total",
				Help: "Total number of named operations by status.",
			},
			[]string{"operation", "status"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "system_state",
				Help: "Current system state values.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.operationTime.WithLabelValues(operation, statusOf(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters. Known metric names route to their dedicated
// collectors; anything else lands in the generic operations counter.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "llm_requests_total":
		pm.llmRequests.WithLabelValues(
			labels["provider"], labels["model"], statusOf(labels),
		).Add(value)
	case "llm_tokens_total":
		pm.llmTokens.WithLabelValues(
			labels["provider"], labels["model"], labels["token_type"],
		).Add(value)
	case "evaluation_examples_total":
		pm.evalExamples.WithLabelValues(labels["scorer"], statusOf(labels)).Add(value)
	case "evaluation_runs_total":
		pm.evalRuns.WithLabelValues(labels["scorer"]).Add(value)
	default:
		pm.operationCount.WithLabelValues(metric, statusOf(labels)).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "evaluation_average_score":
		pm.averageScore.WithLabelValues(labels["scorer"]).Set(value)
	default:
		pm.systemGauges.WithLabelValues(metric).Set(value)
	}
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "llm_latency_seconds":
		pm.llmLatency.WithLabelValues(
			labels["provider"], labels["model"], statusOf(labels),
		).Observe(value)
	case "evaluation_quality_score":
		pm.qualityScore.WithLabelValues(labels["scorer"]).Observe(value)
	default:
		pm.operationTime.WithLabelValues(metric, statusOf(labels)).Observe(value)
	}
}

func statusOf(labels map[string]string) string {
	if status, ok := labels["status"]; ok {
		return status
	}
	return "unknown"
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
