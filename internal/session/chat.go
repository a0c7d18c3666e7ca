package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/ports"
)

// Chat drives one session turn end to end: submit the query, call the
// agent, score the response, and record the outcome on the session.
type Chat struct {
	agent   ports.Agent
	scorer  ports.Scorer
	metrics ports.MetricsCollector
}

// NewChat creates a chat service around an agent and a scorer.
// The metrics collector may be nil.
func NewChat(agent ports.Agent, scorer ports.Scorer, metrics ports.MetricsCollector) (*Chat, error) {
	if agent == nil {
		return nil, fmt.Errorf("agent must not be nil")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer must not be nil")
	}
	return &Chat{agent: agent, scorer: scorer, metrics: metrics}, nil
}

// Ask runs a full turn on the session and returns the recorded
// assistant message. On agent failure the turn is abandoned, the
// session returns to idle, and the error is a *domain.AgentError.
func (c *Chat) Ask(ctx context.Context, s *Session, query string) (Message, error) {
	if err := s.Submit(query); err != nil {
		return Message{}, err
	}

	start := time.Now()
	response, err := c.agent.Respond(ctx, query)
	elapsed := time.Since(start)

	if err != nil {
		// Best effort: Fail only errors if the state machine was reset
		// concurrently, in which case there is nothing left to abandon.
		_ = s.Fail()
		c.count("failure")
		var agentErr *domain.AgentError
		if errors.As(err, &agentErr) {
			return Message{}, agentErr
		}
		return Message{}, domain.NewAgentError(query, err)
	}

	score, err := c.scorer.Score(ctx, response)
	if err != nil {
		_ = s.Fail()
		c.count("failure")
		return Message{}, fmt.Errorf("scoring response: %w", err)
	}

	msg, err := s.Complete(response, elapsed.Seconds(), score)
	if err != nil {
		return Message{}, err
	}
	c.count("success")
	return msg, nil
}

func (c *Chat) count(status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCounter("chat_turns_total", 1, map[string]string{"status": status})
}
