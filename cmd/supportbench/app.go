package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/flightline-ai/supportbench/infrastructure/llm"
	"github.com/flightline-ai/supportbench/infrastructure/scoring"
	"github.com/flightline-ai/supportbench/internal/agent"
	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/ports"
)

const serviceName = "supportbench"

// buildLLM assembles the provider client with the configured
// middleware chain. The collector may be nil for CLI runs that do not
// export metrics.
func buildLLM(cfg config.Config, collector ports.MetricsCollector) (ports.LLMClient, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	var middleware []llm.Middleware
	if timeout > 0 {
		middleware = append(middleware, llm.TimeoutMiddleware(timeout))
	}
	if cfg.LLM.RequestsPerSecond > 0 {
		middleware = append(middleware,
			llm.RateLimitMiddleware(rate.Limit(cfg.LLM.RequestsPerSecond), cfg.LLM.Burst))
	}
	if collector != nil {
		middleware = append(middleware, llm.MetricsMiddleware(collector))
	}
	middleware = append(middleware, llm.TracingMiddleware(serviceName))

	return llm.NewClient(cfg.LLM.Provider, llm.ClientConfig{
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		BaseURL:        cfg.LLM.BaseURL,
		Timeout:        timeout,
		TokenEstimator: tokenEstimatorFor(cfg.LLM.TokenEstimator),
		Middleware:     middleware,
	})
}

// tokenEstimatorFor maps the llm.token_estimator config value to an
// estimator. Nil selects the client's default simple estimator.
func tokenEstimatorFor(name string) llm.TokenEstimator {
	switch name {
	case "word":
		return llm.NewWordBasedTokenEstimator(0)
	case "character":
		return llm.NewCharacterBasedTokenEstimator(0)
	default:
		return nil
	}
}

// buildAgent constructs the support agent. When useArtifact is set and
// the artifact file exists, the optimized instructions and demos are
// loaded; otherwise the agent runs with its unoptimized defaults.
func buildAgent(cfg config.Config, client ports.LLMClient, useArtifact bool) (*agent.SupportAgent, error) {
	agentCfg := agent.DefaultConfig()
	agentCfg.Temperature = cfg.Agent.Temperature
	if cfg.Agent.MaxTokens > 0 {
		agentCfg.MaxTokens = cfg.Agent.MaxTokens
	}

	if useArtifact && cfg.Agent.ArtifactPath != "" {
		artifact, err := agent.LoadArtifact(cfg.Agent.ArtifactPath)
		switch {
		case err == nil:
			optimized := agent.ConfigFromArtifact(artifact)
			optimized.Temperature = agentCfg.Temperature
			optimized.MaxTokens = agentCfg.MaxTokens
			agentCfg = optimized
			log.Printf("Loaded agent artifact from %s (%d demos)", cfg.Agent.ArtifactPath, len(artifact.Demos))
		case errors.Is(err, os.ErrNotExist):
			log.Printf("No agent artifact at %s, using unoptimized defaults", cfg.Agent.ArtifactPath)
		default:
			return nil, err
		}
	}

	return agent.New(client, agentCfg)
}

// buildScorer constructs the quality scorer, applying any scorer
// parameters from the configuration file.
func buildScorer(cfg config.Config) (*scoring.QualityScorer, error) {
	scorer, err := scoring.NewQualityScorer("quality", scoring.DefaultQualityConfig())
	if err != nil {
		return nil, err
	}
	if !cfg.Evaluation.ScorerParams.IsZero() {
		if err := scorer.UnmarshalParameters(cfg.Evaluation.ScorerParams); err != nil {
			return nil, fmt.Errorf("scorer parameters: %w", err)
		}
	}
	return scorer, nil
}

// printJSON writes v to w as indented JSON, the output format shared
// by the reporting commands.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
