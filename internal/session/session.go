// Package session implements the in-memory chat sessions behind the
// support chat API. Each session is a small state machine that allows
// one turn in flight at a time and keeps a capped message history with
// running quality statistics.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/flightline-ai/supportbench/internal/domain"
)

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser marks a customer message.
	RoleUser Role = "user"

	// RoleAssistant marks an agent response.
	RoleAssistant Role = "assistant"
)

// State is the session's turn-taking state.
type State string

const (
	// StateIdle means the session can accept a new customer query.
	StateIdle State = "idle"

	// StateAwaitingResponse means a query was submitted and the agent
	// response is still pending. Submitting again in this state fails.
	StateAwaitingResponse State = "awaiting_response"
)

// DefaultMaxMessages caps the retained history per session. Older
// messages are dropped first, matching the chat UI's display limit.
const DefaultMaxMessages = 50

// Message is one entry in a session transcript.
type Message struct {
	// Role is who authored the message.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is when the message was recorded.
	Timestamp time.Time `json:"timestamp"`

	// ResponseSeconds is the agent latency for assistant messages.
	ResponseSeconds float64 `json:"response_seconds,omitempty"`

	// QualityScore is the deterministic quality score for assistant
	// messages, in [0, 1].
	QualityScore float64 `json:"quality_score,omitempty"`
}

// Stats summarizes a session's running counters.
type Stats struct {
	Messages             int       `json:"messages"`
	Turns                int       `json:"turns"`
	TotalResponseSeconds float64   `json:"total_response_seconds"`
	AvgResponseSeconds   float64   `json:"avg_response_seconds"`
	AvgQualityScore      float64   `json:"avg_quality_score"`
	StartedAt            time.Time `json:"started_at"`
}

// Session is a single customer's chat. All methods are safe for
// concurrent use; the state machine serializes turns, so two
// overlapping Submit calls cannot both succeed.
type Session struct {
	mu sync.Mutex

	id           string
	state        State
	messages     []Message
	scores       []float64
	totalRespSec float64
	startedAt    time.Time
	maxMessages  int
	now          func() time.Time
}

// New creates an idle session with the given ID.
func New(id string) *Session {
	return &Session{
		id:          id,
		state:       StateIdle,
		startedAt:   time.Now(),
		maxMessages: DefaultMaxMessages,
		now:         time.Now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current turn-taking state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit records a customer query and moves the session to
// StateAwaitingResponse. It returns domain.ErrSessionBusy if a turn is
// already in flight, and domain.ErrEmptyQuery for blank input; the
// session state is unchanged in both cases.
func (s *Session) Submit(query string) error {
	if strings.TrimSpace(query) == "" {
		return domain.ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return fmt.Errorf("cannot submit while awaiting a response: %w", domain.ErrSessionBusy)
	}

	s.appendLocked(Message{Role: RoleUser, Content: query, Timestamp: s.now()})
	s.state = StateAwaitingResponse
	return nil
}

// Complete records the agent's response for the in-flight turn and
// returns the session to StateIdle. It fails if no turn is in flight.
// The recorded assistant message is returned so callers do not have to
// re-read the history, which a concurrent Reset may have cleared.
func (s *Session) Complete(response string, responseSeconds, qualityScore float64) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingResponse {
		return Message{}, fmt.Errorf("no query awaiting a response")
	}

	msg := Message{
		Role:            RoleAssistant,
		Content:         response,
		Timestamp:       s.now(),
		ResponseSeconds: responseSeconds,
		QualityScore:    qualityScore,
	}
	s.appendLocked(msg)
	s.totalRespSec += responseSeconds
	s.scores = append(s.scores, qualityScore)
	s.state = StateIdle
	return msg, nil
}

// Fail abandons the in-flight turn after an agent failure. The customer
// message stays in the history; no assistant message is recorded and no
// counters move. The session returns to StateIdle so the customer can
// try again.
func (s *Session) Fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingResponse {
		return fmt.Errorf("no query awaiting a response")
	}
	s.state = StateIdle
	return nil
}

// Reset clears the history and all counters, returning the session to
// its initial idle state. The session ID is preserved.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.scores = nil
	s.totalRespSec = 0
	s.state = StateIdle
	s.startedAt = s.now()
}

// Messages returns a copy of the retained history in order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Stats returns the session's running counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Messages:             len(s.messages),
		Turns:                len(s.scores),
		TotalResponseSeconds: s.totalRespSec,
		AvgQualityScore:      domain.Mean(s.scores),
		StartedAt:            s.startedAt,
	}
	if len(s.scores) > 0 {
		stats.AvgResponseSeconds = s.totalRespSec / float64(len(s.scores))
	}
	return stats
}

func (s *Session) appendLocked(msg Message) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > s.maxMessages {
		s.messages = s.messages[len(s.messages)-s.maxMessages:]
	}
}
