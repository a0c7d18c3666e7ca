// Package domain contains the core types for support-agent evaluation.
// Types here are pure data with deterministic operations and no I/O,
// so they can be used from any layer without additional dependencies.
package domain

// Example is a single support ticket drawn from an evaluation dataset.
// It pairs a customer query with the resolution an agent historically gave.
// Examples are immutable once loaded.
type Example struct {
	// Query is the customer's question or complaint.
	Query string `json:"customer_query"`

	// Answer is the reference resolution for the query.
	// It may be empty for datasets that only carry queries.
	Answer string `json:"resolution,omitempty"`
}

// ScoreRecord captures the evaluation outcome for one example.
type ScoreRecord struct {
	// Index is the zero-based position of the example in the run.
	Index int `json:"index"`

	// Query is the evaluated customer query.
	Query string `json:"query"`

	// Response is the agent's answer, empty when the agent failed.
	Response string `json:"response,omitempty"`

	// Score is the quality score in [0, 1].
	Score float64 `json:"score"`

	// Similarity is an optional diagnostic comparing the response
	// against the reference answer. It never contributes to Score.
	Similarity float64 `json:"similarity,omitempty"`

	// LatencySeconds is the wall-clock time of the agent call.
	LatencySeconds float64 `json:"latency_seconds"`

	// Err holds the agent failure message when the example was
	// skipped, empty on success.
	Err string `json:"error,omitempty"`
}

// EvaluationResult aggregates the per-example outcomes of one run.
type EvaluationResult struct {
	// Records holds one entry per evaluated example, in dataset order.
	Records []ScoreRecord `json:"records"`

	// Average is the arithmetic mean of all scores, including the
	// zeros recorded for failed examples. Zero for an empty run.
	Average float64 `json:"average"`

	// AvgLatencySeconds is the mean agent latency over successful calls.
	AvgLatencySeconds float64 `json:"avg_latency_seconds"`

	// AvgResponseChars is the mean response length over successful calls.
	AvgResponseChars float64 `json:"avg_response_chars"`
}

// Scores returns the raw score values in run order.
func (r EvaluationResult) Scores() []float64 {
	scores := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		scores[i] = rec.Score
	}
	return scores
}

// Failures returns the number of examples that were scored zero
// because the agent call failed.
func (r EvaluationResult) Failures() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Err != "" {
			n++
		}
	}
	return n
}

// Mean returns the arithmetic mean of values, or zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
