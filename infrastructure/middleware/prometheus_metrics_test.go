package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordCounter("llm_requests_total", 1, map[string]string{
		"provider": "groq",
		"model":    "llama-3.1-8b-instant",
		"status":   "success",
	})
	pm.RecordCounter("llm_tokens_total", 120, map[string]string{
		"provider":   "groq",
		"model":      "llama-3.1-8b-instant",
		"token_type": "input",
	})
	pm.RecordCounter("evaluation_examples_total", 1, map[string]string{
		"scorer": "quality",
		"status": "success",
	})
	pm.RecordCounter("evaluation_runs_total", 1, map[string]string{"scorer": "quality"})
	pm.RecordCounter("chat_turns_total", 1, map[string]string{"status": "success"})

	assert.Equal(t, float64(1), testutil.ToFloat64(
		pm.llmRequests.WithLabelValues("groq", "llama-3.1-8b-instant", "success")))
	assert.Equal(t, float64(120), testutil.ToFloat64(
		pm.llmTokens.WithLabelValues("groq", "llama-3.1-8b-instant", "input")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		pm.evalExamples.WithLabelValues("quality", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.evalRuns.WithLabelValues("quality")))

	// Unknown counters land in the generic operations counter.
	assert.Equal(t, float64(1), testutil.ToFloat64(
		pm.operationCount.WithLabelValues("chat_turns_total", "success")))
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordGauge("evaluation_average_score", 0.72, map[string]string{"scorer": "quality"})
	pm.RecordGauge("active_sessions", 3, nil)

	assert.Equal(t, 0.72, testutil.ToFloat64(pm.averageScore.WithLabelValues("quality")))
	assert.Equal(t, float64(3), testutil.ToFloat64(pm.systemGauges.WithLabelValues("active_sessions")))
}

func TestPrometheusMetrics_RecordHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordHistogram("evaluation_quality_score", 0.8, map[string]string{"scorer": "quality"})
	pm.RecordHistogram("llm_latency_seconds", 0.42, map[string]string{
		"provider": "groq",
		"model":    "llama-3.1-8b-instant",
		"status":   "success",
	})

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["evaluation_quality_score"])
	assert.True(t, names["llm_latency_seconds"])
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordLatency("agent_respond", 150*time.Millisecond, map[string]string{"status": "success"})
	pm.RecordLatency("agent_respond", 90*time.Millisecond, nil)

	count := testutil.CollectAndCount(pm.operationTime, "operation_duration_seconds")
	// One series per status label value.
	assert.Equal(t, 2, count)
}
