// Package ports defines the interfaces between the evaluation core and
// its infrastructure adapters. The core depends on these interfaces only;
// concrete LLM providers, scorers, and metrics backends live under
// infrastructure/ and are injected at startup.
package ports

import "context"

// Agent is the capability under evaluation: given a customer query it
// produces a support response. Implementations call external model
// providers, so failures are expected and must be reported as errors
// rather than empty responses. Callers decide the recovery policy; the
// evaluation runner scores a failed example as zero and continues.
type Agent interface {
	// Respond answers a single customer query.
	// The context bounds the underlying provider call.
	Respond(ctx context.Context, query string) (string, error)
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(ctx context.Context, query string) (string, error)

// Respond implements Agent by calling the function.
func (f AgentFunc) Respond(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// Scorer assigns a quality score in [0, 1] to an agent response.
// Implementations must be deterministic: the same response always
// yields the same score.
type Scorer interface {
	// Name identifies the scorer for logs, metrics, and traces.
	Name() string

	// Score evaluates a single response.
	Score(ctx context.Context, response string) (float64, error)
}

// SimilarityScorer measures how close a response is to a reference
// answer, as a value in [0, 1] where 1 is an exact match. It is a
// diagnostic signal and is never folded into the quality score.
type SimilarityScorer interface {
	Similarity(ctx context.Context, response, reference string) (float64, error)
}
