package domain

// PerformanceSnapshot summarizes one evaluation run for the results file.
type PerformanceSnapshot struct {
	// AvgQualityScore is the run's mean quality score in [0, 1].
	AvgQualityScore float64 `json:"avg_quality_score"`

	// AvgResponseTime is the mean agent latency in seconds.
	AvgResponseTime float64 `json:"avg_response_time"`

	// SampleResponseLength is the mean response length in characters.
	SampleResponseLength float64 `json:"sample_response_length"`

	// OptimizationDurationMinutes is how long the optimization took.
	// Only populated on the optimized snapshot.
	OptimizationDurationMinutes float64 `json:"optimization_duration_minutes,omitempty"`
}

// Improvements holds the headline deltas between the two snapshots.
type Improvements struct {
	QualityScoreGain         float64 `json:"quality_score_gain"`
	QualityScoreGainPct      float64 `json:"quality_score_gain_pct"`
	ResponseTimeReductionPct float64 `json:"response_time_reduction_pct"`
}

// ResultsBusinessImpact extends BusinessImpact with the ROI multiplier
// reported on the dashboard.
type ResultsBusinessImpact struct {
	BusinessImpact

	// ROIMultiplier is annual savings divided by the optimization cost.
	ROIMultiplier float64 `json:"roi_multiplier"`
}

// ResultsSummary is the persisted outcome of an optimization campaign.
// Its JSON layout is the contract with the dashboard surface, so field
// names must stay stable.
type ResultsSummary struct {
	// OptimizationDate is when the optimization finished, RFC 3339.
	OptimizationDate string `json:"optimization_date"`

	// Model is the LLM the agent was evaluated with.
	Model string `json:"model"`

	// Optimizer names the external optimization procedure used.
	Optimizer string `json:"optimizer"`

	Baseline  PerformanceSnapshot   `json:"baseline_performance"`
	Optimized PerformanceSnapshot   `json:"optimized_performance"`
	Gains     Improvements          `json:"improvements"`
	Business  ResultsBusinessImpact `json:"business_impact"`
}

// SnapshotOf converts an evaluation result to a results-file snapshot.
func SnapshotOf(r EvaluationResult) PerformanceSnapshot {
	return PerformanceSnapshot{
		AvgQualityScore:      r.Average,
		AvgResponseTime:      r.AvgLatencySeconds,
		SampleResponseLength: r.AvgResponseChars,
	}
}

// ImprovementsOf derives the headline deltas from two snapshots.
// Percentage fields guard against zero baselines the same way
// ComparisonReport does.
func ImprovementsOf(baseline, optimized PerformanceSnapshot) Improvements {
	imp := Improvements{
		QualityScoreGain: optimized.AvgQualityScore - baseline.AvgQualityScore,
	}
	if baseline.AvgQualityScore > 0 {
		imp.QualityScoreGainPct = imp.QualityScoreGain / baseline.AvgQualityScore * 100
	}
	if baseline.AvgResponseTime > 0 {
		imp.ResponseTimeReductionPct = (baseline.AvgResponseTime - optimized.AvgResponseTime) / baseline.AvgResponseTime * 100
	}
	return imp
}
