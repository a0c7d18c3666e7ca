package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingLLM records the last prompt and returns a fixed response.
type capturingLLM struct {
	lastPrompt string
	response   string
	err        error
}

func (c *capturingLLM) Complete(_ context.Context, prompt string, _ map[string]any) (string, error) {
	c.lastPrompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *capturingLLM) EstimateTokens(text string) (int, error) { return len(text) / 4, nil }

func (c *capturingLLM) GetModel() string { return "test-model" }

func TestNewTranslator_Validation(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	_, err = NewTranslator(nil, &capturingLLM{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store")

	_, err = NewTranslator(store, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM client")
}

func TestTranslator_Translate(t *testing.T) {
	store := seedStore(t)

	t.Run("prompt carries retrieved entries", func(t *testing.T) {
		llm := &capturingLLM{response: "  \"Balay\" means house.  "}
		translator, err := NewTranslator(store, llm)
		require.NoError(t, err)

		answer, err := translator.Translate(context.Background(), "what does balay mean?")
		require.NoError(t, err)
		assert.Equal(t, `"Balay" means house.`, answer)

		assert.Contains(t, llm.lastPrompt, "balay: house")
		assert.Contains(t, llm.lastPrompt, "Example: Dako ang balay.")
		assert.Contains(t, llm.lastPrompt, "User Question: what does balay mean?")
	})

	t.Run("empty store yields placeholder context", func(t *testing.T) {
		empty, err := NewStore()
		require.NoError(t, err)

		llm := &capturingLLM{response: "I couldn't find that word in the dictionary"}
		translator, err := NewTranslator(empty, llm)
		require.NoError(t, err)

		_, err = translator.Translate(context.Background(), "balay")
		require.NoError(t, err)
		assert.Contains(t, llm.lastPrompt, "(no matching entries)")
	})

	t.Run("empty question rejected", func(t *testing.T) {
		translator, err := NewTranslator(store, &capturingLLM{})
		require.NoError(t, err)

		_, err = translator.Translate(context.Background(), "  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question cannot be empty")
	})

	t.Run("LLM failure propagates", func(t *testing.T) {
		llm := &capturingLLM{err: errors.New("provider down")}
		translator, err := NewTranslator(store, llm)
		require.NoError(t, err)

		_, err = translator.Translate(context.Background(), "balay")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider down")
	})

	t.Run("topK option respected", func(t *testing.T) {
		llm := &capturingLLM{response: "ok"}
		translator, err := NewTranslator(store, llm, WithTopK(1))
		require.NoError(t, err)

		_, err = translator.Translate(context.Background(), "balay")
		require.NoError(t, err)
		// Only the closest entry appears in the prompt.
		assert.Contains(t, llm.lastPrompt, "balay: house")
		assert.NotContains(t, llm.lastPrompt, "kaon: to eat")
	})
}
