package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentError(t *testing.T) {
	cause := errors.New("rate limit exceeded")
	err := NewAgentError("How do I rebook my flight?", cause)

	assert.Contains(t, err.Error(), "agent error")
	assert.Contains(t, err.Error(), "rebook")
	assert.ErrorIs(t, err, cause)

	var agentErr *AgentError
	require.ErrorAs(t, error(err), &agentErr)
	assert.Equal(t, "How do I rebook my flight?", agentErr.Query)
}

func TestAgentErrorTruncatesLongQueries(t *testing.T) {
	long := strings.Repeat("baggage ", 40)
	err := NewAgentError(long, errors.New("boom"))
	assert.Less(t, len(err.Error()), len(long))
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("GROQ_API_KEY", "not set")

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
	assert.Contains(t, err.Error(), "not set")
}
