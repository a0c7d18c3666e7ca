package evaluation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightline-ai/supportbench/internal/domain"
)

func TestBuildSummary(t *testing.T) {
	baseline := domain.EvaluationResult{
		Average:           0.26,
		AvgLatencySeconds: 2.0,
		AvgResponseChars:  240,
	}
	optimized := domain.EvaluationResult{
		Average:           0.72,
		AvgLatencySeconds: 1.5,
		AvgResponseChars:  410,
	}

	completed := time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)
	summary := BuildSummary(SummaryInput{
		Model:                "llama-3.3-70b-versatile",
		Optimizer:            "MIPROv2",
		Baseline:             baseline,
		Optimized:            optimized,
		OptimizationDuration: 18*time.Minute + 30*time.Second,
		Assumptions:          domain.DefaultBusinessAssumptions(),
		OptimizationCostUSD:  500,
		CompletedAt:          completed,
	})

	assert.Equal(t, "2025-11-02T09:30:00Z", summary.OptimizationDate)
	assert.Equal(t, "llama-3.3-70b-versatile", summary.Model)
	assert.Equal(t, "MIPROv2", summary.Optimizer)

	assert.InDelta(t, 0.26, summary.Baseline.AvgQualityScore, 1e-9)
	assert.Zero(t, summary.Baseline.OptimizationDurationMinutes)
	assert.InDelta(t, 18.5, summary.Optimized.OptimizationDurationMinutes, 1e-9)

	assert.InDelta(t, 0.46, summary.Gains.QualityScoreGain, 1e-9)
	assert.InDelta(t, 176.9, summary.Gains.QualityScoreGainPct, 0.05)
	assert.InDelta(t, 25, summary.Gains.ResponseTimeReductionPct, 0.05)

	assert.InDelta(t, 2250, summary.Business.DailyCostSavingsUSD, 1e-9)
	assert.InDelta(t, 821250, summary.Business.AnnualCostSavingsUSD, 1e-9)
	assert.InDelta(t, 1642.5, summary.Business.ROIMultiplier, 1e-9)
}

func TestBuildSummaryZeroCostLeavesROIZero(t *testing.T) {
	summary := BuildSummary(SummaryInput{
		Assumptions: domain.DefaultBusinessAssumptions(),
	})
	assert.Zero(t, summary.Business.ROIMultiplier)
	assert.NotEmpty(t, summary.OptimizationDate)
}

func TestSaveAndLoadSummary(t *testing.T) {
	summary := BuildSummary(SummaryInput{
		Model:       "llama-3.3-70b-versatile",
		Optimizer:   "MIPROv2",
		Baseline:    domain.EvaluationResult{Average: 0.3},
		Optimized:   domain.EvaluationResult{Average: 0.7},
		Assumptions: domain.DefaultBusinessAssumptions(),
		CompletedAt: time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC),
	})

	path := filepath.Join(t.TempDir(), "optimization_results.json")
	require.NoError(t, SaveSummary(path, summary))

	loaded, err := LoadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, summary, loaded)
}

func TestLoadSummaryErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSummary(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read results summary")
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadSummary(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse results summary")
	})
}
