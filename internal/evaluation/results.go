package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flightline-ai/supportbench/internal/domain"
)

// SummaryInput bundles everything needed to assemble a results summary.
type SummaryInput struct {
	// Model is the LLM identifier the agent ran on.
	Model string

	// Optimizer names the external optimization procedure.
	Optimizer string

	// Baseline and Optimized are the two evaluation runs to compare.
	Baseline  domain.EvaluationResult
	Optimized domain.EvaluationResult

	// OptimizationDuration is how long the optimization took.
	OptimizationDuration time.Duration

	// Assumptions drives the business-impact projection.
	Assumptions domain.BusinessAssumptions

	// OptimizationCostUSD is the one-off cost of the optimization run,
	// used for the ROI multiplier. Zero leaves the multiplier at zero.
	OptimizationCostUSD float64

	// CompletedAt stamps the summary; the zero value means now.
	CompletedAt time.Time
}

// BuildSummary assembles the persisted results summary from two
// evaluation runs and the standing business assumptions.
func BuildSummary(in SummaryInput) domain.ResultsSummary {
	completed := in.CompletedAt
	if completed.IsZero() {
		completed = time.Now().UTC()
	}

	baseline := domain.SnapshotOf(in.Baseline)
	optimized := domain.SnapshotOf(in.Optimized)
	optimized.OptimizationDurationMinutes = in.OptimizationDuration.Minutes()

	impact := domain.EstimateBusinessImpact(in.Assumptions)
	business := domain.ResultsBusinessImpact{BusinessImpact: impact}
	if in.OptimizationCostUSD > 0 {
		business.ROIMultiplier = impact.AnnualCostSavingsUSD / in.OptimizationCostUSD
	}

	return domain.ResultsSummary{
		OptimizationDate: completed.Format(time.RFC3339),
		Model:            in.Model,
		Optimizer:        in.Optimizer,
		Baseline:         baseline,
		Optimized:        optimized,
		Gains:            domain.ImprovementsOf(baseline, optimized),
		Business:         business,
	}
}

// SaveSummary writes the summary to path as indented JSON.
func SaveSummary(path string, summary domain.ResultsSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write results summary: %w", err)
	}
	return nil
}

// LoadSummary reads a previously saved results summary.
func LoadSummary(path string) (domain.ResultsSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ResultsSummary{}, fmt.Errorf("failed to read results summary: %w", err)
	}

	var summary domain.ResultsSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return domain.ResultsSummary{}, fmt.Errorf("failed to parse results summary: %w", err)
	}
	return summary, nil
}
