package domain

// ComparisonReport quantifies the quality difference between a baseline
// evaluation and a candidate evaluation of the same dataset.
type ComparisonReport struct {
	// BaselineAverage is the baseline run's mean quality score.
	BaselineAverage float64 `json:"baseline_average"`

	// CandidateAverage is the candidate run's mean quality score.
	CandidateAverage float64 `json:"candidate_average"`

	// AbsoluteGain is CandidateAverage minus BaselineAverage.
	// Negative when the candidate regressed.
	AbsoluteGain float64 `json:"absolute_gain"`

	// RelativeGainPct is the gain as a percentage of the baseline.
	// Zero when the baseline average is zero, to avoid division by zero.
	RelativeGainPct float64 `json:"relative_gain_pct"`
}

// Compare builds a ComparisonReport from two evaluation results.
func Compare(baseline, candidate EvaluationResult) ComparisonReport {
	report := ComparisonReport{
		BaselineAverage:  baseline.Average,
		CandidateAverage: candidate.Average,
		AbsoluteGain:     candidate.Average - baseline.Average,
	}
	if baseline.Average > 0 {
		report.RelativeGainPct = report.AbsoluteGain / baseline.Average * 100
	}
	return report
}

// Improved reports whether the candidate outperformed the baseline.
func (r ComparisonReport) Improved() bool { return r.AbsoluteGain > 0 }
