package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightline-ai/supportbench/internal/domain"
)

func TestSessionTurnLifecycle(t *testing.T) {
	s := New("s1")
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Submit("Where is my bag?"))
	assert.Equal(t, StateAwaitingResponse, s.State())

	recorded, err := s.Complete("It is on the carousel.", 1.2, 0.4)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())

	messages := s.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	// Complete hands back the message it recorded.
	assert.Equal(t, messages[1], recorded)
	assert.InDelta(t, 1.2, messages[1].ResponseSeconds, 1e-9)
	assert.InDelta(t, 0.4, messages[1].QualityScore, 1e-9)

	stats := s.Stats()
	assert.Equal(t, 2, stats.Messages)
	assert.Equal(t, 1, stats.Turns)
	assert.InDelta(t, 1.2, stats.TotalResponseSeconds, 1e-9)
	assert.InDelta(t, 0.4, stats.AvgQualityScore, 1e-9)
}

func TestSessionRejectsOverlappingTurns(t *testing.T) {
	s := New("s1")
	require.NoError(t, s.Submit("first question"))

	err := s.Submit("second question")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionBusy)

	// The rejected submit must not leak into the history.
	assert.Len(t, s.Messages(), 1)
	assert.Equal(t, StateAwaitingResponse, s.State())
}

func TestSessionSubmitEmptyQuery(t *testing.T) {
	s := New("s1")
	for _, query := range []string{"", "   ", "\n\t"} {
		err := s.Submit(query)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}
	assert.Empty(t, s.Messages())
}

func TestSessionCompleteWithoutSubmit(t *testing.T) {
	s := New("s1")
	_, err := s.Complete("orphan response", 1, 0.2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no query awaiting a response")
}

func TestSessionFailReturnsToIdle(t *testing.T) {
	s := New("s1")
	require.NoError(t, s.Submit("question"))
	require.NoError(t, s.Fail())

	assert.Equal(t, StateIdle, s.State())
	// The customer message is retained, no assistant message is added.
	require.Len(t, s.Messages(), 1)
	assert.Equal(t, 0, s.Stats().Turns)

	// The session accepts a new turn after the failure.
	require.NoError(t, s.Submit("question again"))
}

func TestSessionReset(t *testing.T) {
	s := New("s1")
	require.NoError(t, s.Submit("q"))
	_, err := s.Complete("a", 2.5, 0.8)
	require.NoError(t, err)

	s.Reset()

	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Messages())
	stats := s.Stats()
	assert.Zero(t, stats.Turns)
	assert.Zero(t, stats.TotalResponseSeconds)
	assert.Zero(t, stats.AvgQualityScore)
	assert.Equal(t, "s1", s.ID())
}

func TestSessionResetWhileAwaitingResponse(t *testing.T) {
	s := New("s1")
	require.NoError(t, s.Submit("q"))

	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	require.NoError(t, s.Submit("fresh start"))
}

func TestSessionHistoryCap(t *testing.T) {
	s := New("s1")
	for i := 0; i < DefaultMaxMessages; i++ {
		require.NoError(t, s.Submit(fmt.Sprintf("q%d", i)))
		_, err := s.Complete(fmt.Sprintf("a%d", i), 0.1, 0.2)
		require.NoError(t, err)
	}

	messages := s.Messages()
	require.Len(t, messages, DefaultMaxMessages)
	// The oldest messages were trimmed; the newest turn is intact.
	assert.Equal(t, fmt.Sprintf("a%d", DefaultMaxMessages-1), messages[len(messages)-1].Content)
	assert.NotEqual(t, "q0", messages[0].Content)

	// Counters keep the full totals even after trimming.
	assert.Equal(t, DefaultMaxMessages, s.Stats().Turns)
}

func TestManager(t *testing.T) {
	m := NewManager()
	assert.Equal(t, 0, m.Count())

	s1 := m.Create()
	s2 := m.Create()
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, 2, m.Count())

	got, err := m.Get(s1.ID())
	require.NoError(t, err)
	assert.Same(t, s1, got)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	m.Delete(s1.ID())
	assert.Equal(t, 1, m.Count())
	_, err = m.Get(s1.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	m.Delete("missing")
	assert.Equal(t, 1, m.Count())
}

func TestTranscript(t *testing.T) {
	s := New("s1")
	require.NoError(t, s.Submit("Where is my refund?"))
	_, err := s.Complete("Yes, it is on the way.", 1.5, 0.2)
	require.NoError(t, err)

	transcript := s.Transcript()

	assert.Contains(t, transcript, "CUSTOMER SUPPORT CHAT TRANSCRIPT")
	assert.Contains(t, transcript, "Session:   s1")
	assert.Contains(t, transcript, "[1] USER:")
	assert.Contains(t, transcript, "Where is my refund?")
	assert.Contains(t, transcript, "[2] ASSISTANT:")
	assert.Contains(t, transcript, "Yes, it is on the way.")
	assert.Contains(t, transcript, "quality score: 0.20")
	assert.Contains(t, transcript, "response time: 1.50s")
}

func TestExampleQueries(t *testing.T) {
	catalog := ExampleQueries()
	require.NotEmpty(t, catalog)
	for _, category := range catalog {
		assert.NotEmpty(t, category.Name)
		assert.NotEmpty(t, category.Queries)
	}
}
