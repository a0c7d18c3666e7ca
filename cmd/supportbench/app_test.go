package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/flightline-ai/supportbench/internal/agent"
	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/testutils"
)

func TestBuildAgentWithoutArtifact(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.ArtifactPath = filepath.Join(t.TempDir(), "missing.json")

	client := testutils.NewMockLLMClient("llama-3.1-8b-instant")
	supportAgent, err := buildAgent(cfg, client, true)
	require.NoError(t, err)

	// Falls back to the unoptimized prompt.
	assert.Equal(t, 0, supportAgent.Demos())
	assert.Equal(t, "llama-3.1-8b-instant", supportAgent.Model())
}

func TestBuildAgentWithArtifact(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.ArtifactPath = filepath.Join(t.TempDir(), "optimized_agent.json")

	artifact := agent.Artifact{
		Instructions: "Answer with numbered steps and exact fees.",
		Demos: []domain.Example{
			{Query: "Baggage fee?", Answer: "Step 1: Prepay online for $25."},
		},
		Optimizer: "MIPROv2",
	}
	require.NoError(t, agent.SaveArtifact(cfg.Agent.ArtifactPath, artifact))

	client := testutils.NewMockLLMClient("llama-3.1-8b-instant")
	supportAgent, err := buildAgent(cfg, client, true)
	require.NoError(t, err)
	assert.Equal(t, 1, supportAgent.Demos())

	// The baseline build ignores the artifact.
	baseline, err := buildAgent(cfg, client, false)
	require.NoError(t, err)
	assert.Equal(t, 0, baseline.Demos())
}

func TestBuildAgentCorruptArtifact(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.ArtifactPath = filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(cfg.Agent.ArtifactPath, []byte("{not json"), 0o644))

	client := testutils.NewMockLLMClient("llama-3.1-8b-instant")
	_, err := buildAgent(cfg, client, true)
	assert.Error(t, err)
}

func TestTokenEstimatorFor(t *testing.T) {
	// Ratios of zero select each estimator's documented default.
	word := tokenEstimatorFor("word")
	require.NotNil(t, word)
	assert.Equal(t, 3, word.EstimateTokens("rebook my delayed flight today"))

	character := tokenEstimatorFor("character")
	require.NotNil(t, character)
	assert.Equal(t, 7, character.EstimateTokens("rebook my delayed flight today"))

	// "simple" and empty fall through to the client default.
	assert.Nil(t, tokenEstimatorFor("simple"))
	assert.Nil(t, tokenEstimatorFor(""))
}

func TestBuildScorer(t *testing.T) {
	cfg := config.Default()
	scorer, err := buildScorer(cfg)
	require.NoError(t, err)
	assert.Equal(t, "quality", scorer.Name())
}

func TestBuildScorerWithParams(t *testing.T) {
	cfg := config.Default()
	var params yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
structure_tokens: ["step"]
positive_tokens: ["yes"]
contact_tokens: ["contact"]
cost_tokens: ["fee"]
detail_min_chars: 10
`), &params))
	cfg.Evaluation.ScorerParams = *params.Content[0]

	scorer, err := buildScorer(cfg)
	require.NoError(t, err)

	ind := scorer.Evaluate("Yes, step 1: pay the fee and contact us today.")
	assert.Equal(t, 5, ind.Hits())
}
