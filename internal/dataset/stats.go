package dataset

import "github.com/flightline-ai/supportbench/internal/domain"

// Statistics summarizes the shape of a loaded dataset. Useful for a
// quick sanity check before running an evaluation.
type Statistics struct {
	Count          int     `json:"count"`
	WithAnswers    int     `json:"with_answers"`
	MinQueryChars  int     `json:"min_query_chars"`
	MaxQueryChars  int     `json:"max_query_chars"`
	AvgQueryChars  float64 `json:"avg_query_chars"`
	MinAnswerChars int     `json:"min_answer_chars"`
	MaxAnswerChars int     `json:"max_answer_chars"`
	AvgAnswerChars float64 `json:"avg_answer_chars"`
}

// ComputeStatistics derives Statistics from a set of examples.
// Answer length figures only consider examples that carry an answer.
func ComputeStatistics(examples []domain.Example) Statistics {
	stats := Statistics{Count: len(examples)}
	if len(examples) == 0 {
		return stats
	}

	queryTotal := 0
	answerTotal := 0
	for i, ex := range examples {
		q := len(ex.Query)
		queryTotal += q
		if i == 0 || q < stats.MinQueryChars {
			stats.MinQueryChars = q
		}
		if q > stats.MaxQueryChars {
			stats.MaxQueryChars = q
		}

		if ex.Answer == "" {
			continue
		}
		a := len(ex.Answer)
		answerTotal += a
		if stats.WithAnswers == 0 || a < stats.MinAnswerChars {
			stats.MinAnswerChars = a
		}
		if a > stats.MaxAnswerChars {
			stats.MaxAnswerChars = a
		}
		stats.WithAnswers++
	}

	stats.AvgQueryChars = float64(queryTotal) / float64(stats.Count)
	if stats.WithAnswers > 0 {
		stats.AvgAnswerChars = float64(answerTotal) / float64(stats.WithAnswers)
	}
	return stats
}
