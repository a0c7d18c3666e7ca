package evaluation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/ports"
)

// stubScorer maps known responses to fixed scores so tests can control
// run outcomes precisely.
type stubScorer struct {
	scores map[string]float64
	err    error
}

func (s *stubScorer) Name() string { return "stub" }

func (s *stubScorer) Score(_ context.Context, response string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[response], nil
}

// stubSimilarity returns a constant similarity for every pair.
type stubSimilarity struct{ value float64 }

func (s *stubSimilarity) Similarity(_ context.Context, _, _ string) (float64, error) {
	return s.value, nil
}

func TestNewRunner(t *testing.T) {
	_, err := NewRunner(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scorer must not be nil")

	runner, err := NewRunner(&stubScorer{})
	require.NoError(t, err)
	assert.NotNil(t, runner)
}

func TestRunnerRun(t *testing.T) {
	examples := []domain.Example{
		{Query: "q1", Answer: "a1"},
		{Query: "q2"},
		{Query: "q3", Answer: "a3"},
	}

	scorer := &stubScorer{scores: map[string]float64{
		"r1": 0.8,
		"r2": 0.4,
		"r3": 0.6,
	}}

	agent := ports.AgentFunc(func(_ context.Context, query string) (string, error) {
		return "r" + query[1:], nil
	})

	runner, err := NewRunner(scorer, WithSimilarity(&stubSimilarity{value: 0.5}))
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), agent, examples)
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, []float64{0.8, 0.4, 0.6}, result.Scores())
	assert.InDelta(t, 0.6, result.Average, 1e-9)
	assert.Equal(t, 0, result.Failures())

	// Similarity is only measured where a reference answer exists.
	assert.InDelta(t, 0.5, result.Records[0].Similarity, 1e-9)
	assert.Zero(t, result.Records[1].Similarity)
	assert.InDelta(t, 0.5, result.Records[2].Similarity, 1e-9)
}

func TestRunnerRunContinuesPastAgentFailure(t *testing.T) {
	examples := []domain.Example{{Query: "q1"}, {Query: "q2"}, {Query: "q3"}}

	scorer := &stubScorer{scores: map[string]float64{"ok": 1.0}}
	agent := ports.AgentFunc(func(_ context.Context, query string) (string, error) {
		if query == "q2" {
			return "", errors.New("provider unavailable")
		}
		return "ok", nil
	})

	runner, err := NewRunner(scorer)
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), agent, examples)
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, []float64{1.0, 0, 1.0}, result.Scores())
	assert.Equal(t, 1, result.Failures())
	assert.Contains(t, result.Records[1].Err, "provider unavailable")
	assert.Empty(t, result.Records[1].Response)
	assert.InDelta(t, 2.0/3.0, result.Average, 1e-9)
}

func TestRunnerRunAllFailures(t *testing.T) {
	examples := []domain.Example{{Query: "q1"}, {Query: "q2"}}
	agent := ports.AgentFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("down")
	})

	runner, err := NewRunner(&stubScorer{})
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), agent, examples)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, result.Scores())
	assert.Zero(t, result.Average)
	assert.Zero(t, result.AvgLatencySeconds)
}

func TestRunnerRunEmptyDataset(t *testing.T) {
	runner, err := NewRunner(&stubScorer{})
	require.NoError(t, err)

	agent := ports.AgentFunc(func(_ context.Context, _ string) (string, error) {
		t.Fatal("agent must not be called for an empty dataset")
		return "", nil
	})

	result, err := runner.Run(context.Background(), agent, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.Average)
}

func TestRunnerRunScorerFailureScoresZero(t *testing.T) {
	examples := []domain.Example{{Query: "q1"}}
	agent := ports.AgentFunc(func(_ context.Context, _ string) (string, error) {
		return "fine", nil
	})

	runner, err := NewRunner(&stubScorer{err: errors.New("bad rubric")})
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), agent, examples)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Zero(t, result.Records[0].Score)
	assert.Contains(t, result.Records[0].Err, "scoring failed")
}

func TestRunnerRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	agent := ports.AgentFunc(func(_ context.Context, _ string) (string, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return "ok", nil
	})

	examples := make([]domain.Example, 10)
	for i := range examples {
		examples[i] = domain.Example{Query: fmt.Sprintf("q%d", i)}
	}

	runner, err := NewRunner(&stubScorer{scores: map[string]float64{"ok": 1}})
	require.NoError(t, err)

	_, err = runner.Run(ctx, agent, examples)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, calls, len(examples))
}

func TestRunnerRunNilAgent(t *testing.T) {
	runner, err := NewRunner(&stubScorer{})
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent must not be nil")
}
