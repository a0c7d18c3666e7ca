package ports

import (
	"context"
	"time"
)

// LLMClient is the application-facing view of a language model provider.
// Implementations hide authentication, request formatting, and response
// parsing behind these three methods.
type LLMClient interface {
	// Complete sends a prompt and returns the generated text.
	//
	// The options map carries provider-tunable parameters without
	// widening the interface. Recognized keys include:
	//   - "temperature": float64
	//   - "max_tokens": int
	//   - "model": string
	//   - "system": string
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens approximates the token count of text, for cost
	// estimation and prompt budgeting. Accuracy varies by provider.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier in use, for logging.
	GetModel() string
}

// MetricsCollector abstracts the metrics backend. The Prometheus
// implementation lives in infrastructure/middleware.
type MetricsCollector interface {
	// RecordLatency records how long an operation took, with optional
	// labels for context.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter, for events such as evaluated
	// examples, agent failures, or session turns.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets a gauge, for values such as active sessions or
	// the latest run's average score.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram observes a value in a histogram, for
	// distributions such as response lengths and quality scores.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
