// Package evaluation runs support agents against ticket datasets and
// turns the raw outcomes into comparison reports and the persisted
// results summary the dashboard reads.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/ports"
)

// Runner evaluates an agent over a dataset, strictly one example at a
// time and in dataset order. A failed agent call records a zero score
// for that example and the run continues; the runner never retries and
// never aborts a run because of a single example.
type Runner struct {
	// scorer grades each successful response.
	scorer ports.Scorer
	// similarity optionally measures closeness to the reference answer.
	similarity ports.SimilarityScorer
	// metrics optionally receives per-example and per-run measurements.
	metrics ports.MetricsCollector
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// RunnerOption customizes an evaluation Runner.
type RunnerOption func(*Runner)

// WithSimilarity attaches a reference-similarity diagnostic. Examples
// without a reference answer skip the measurement.
func WithSimilarity(s ports.SimilarityScorer) RunnerOption {
	return func(r *Runner) { r.similarity = s }
}

// WithMetrics attaches a metrics collector for run observability.
func WithMetrics(m ports.MetricsCollector) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a Runner around the given scorer.
func NewRunner(scorer ports.Scorer, opts ...RunnerOption) (*Runner, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scorer must not be nil")
	}

	r := &Runner{
		scorer: scorer,
		tracer: otel.Tracer("evaluation-runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run evaluates the agent over every example and returns the aggregated
// result. An empty example set yields a result with a zero average and
// no error. Context cancellation stops the run between examples and
// returns the cancellation error; partial results are discarded.
func (r *Runner) Run(ctx context.Context, agent ports.Agent, examples []domain.Example) (domain.EvaluationResult, error) {
	if agent == nil {
		return domain.EvaluationResult{}, fmt.Errorf("agent must not be nil")
	}

	ctx, span := r.tracer.Start(ctx, "Runner.Run",
		trace.WithAttributes(
			attribute.String("scorer.id", r.scorer.Name()),
			attribute.Int("run.examples", len(examples)),
		),
	)
	defer span.End()

	result := domain.EvaluationResult{Records: make([]domain.ScoreRecord, 0, len(examples))}
	successes := 0
	latencyTotal := 0.0
	charsTotal := 0

	for i, ex := range examples {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return domain.EvaluationResult{}, fmt.Errorf("evaluation canceled at example %d: %w", i, err)
		}

		record := r.evaluateOne(ctx, agent, i, ex)
		result.Records = append(result.Records, record)

		if record.Err == "" {
			successes++
			latencyTotal += record.LatencySeconds
			charsTotal += len(record.Response)
		}
	}

	result.Average = domain.Mean(result.Scores())
	if successes > 0 {
		result.AvgLatencySeconds = latencyTotal / float64(successes)
		result.AvgResponseChars = float64(charsTotal) / float64(successes)
	}

	span.SetAttributes(
		attribute.Float64("run.average_score", result.Average),
		attribute.Int("run.failures", result.Failures()),
	)
	if r.metrics != nil {
		labels := map[string]string{"scorer": r.scorer.Name()}
		r.metrics.RecordGauge("evaluation_average_score", result.Average, labels)
		r.metrics.RecordCounter("evaluation_runs_total", 1, labels)
	}

	return result, nil
}

// evaluateOne handles a single example. Agent failures are folded into
// the record rather than propagated, so the caller's loop stays simple.
func (r *Runner) evaluateOne(ctx context.Context, agent ports.Agent, index int, ex domain.Example) domain.ScoreRecord {
	record := domain.ScoreRecord{Index: index, Query: ex.Query}

	start := time.Now()
	response, err := agent.Respond(ctx, ex.Query)
	record.LatencySeconds = time.Since(start).Seconds()

	if err != nil {
		var agentErr *domain.AgentError
		if !errors.As(err, &agentErr) {
			agentErr = domain.NewAgentError(ex.Query, err)
		}
		record.Err = agentErr.Error()
		record.Score = 0
		r.recordExample(record, "failure")
		return record
	}

	record.Response = response
	score, err := r.scorer.Score(ctx, response)
	if err != nil {
		// Scorer failures are treated like agent failures: zero and move on.
		record.Err = fmt.Sprintf("scoring failed: %v", err)
		record.Score = 0
		r.recordExample(record, "failure")
		return record
	}
	record.Score = score

	if r.similarity != nil && ex.Answer != "" {
		if sim, err := r.similarity.Similarity(ctx, response, ex.Answer); err == nil {
			record.Similarity = sim
		}
	}

	r.recordExample(record, "success")
	return record
}

func (r *Runner) recordExample(record domain.ScoreRecord, status string) {
	if r.metrics == nil {
		return
	}
	labels := map[string]string{"scorer": r.scorer.Name(), "status": status}
	r.metrics.RecordCounter("evaluation_examples_total", 1, labels)
	r.metrics.RecordLatency("agent_respond", time.Duration(record.LatencySeconds*float64(time.Second)), labels)
	if status == "success" {
		r.metrics.RecordHistogram("evaluation_quality_score", record.Score, labels)
	}
}
