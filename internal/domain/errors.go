package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during evaluation operations.
var (
	// ErrEmptyQuery indicates that an agent was asked to answer an empty query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyResponse indicates that an agent returned no content.
	ErrEmptyResponse = errors.New("empty response")

	// ErrSessionBusy indicates that a chat session already has a turn in flight.
	ErrSessionBusy = errors.New("session busy")

	// ErrSessionNotFound indicates that a requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidConfiguration indicates that configuration is invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// AgentError represents a failed agent call during evaluation or chat.
// The evaluation runner records a zero score for the affected example and
// moves on; it never retries.
type AgentError struct {
	// Query is the customer query the agent failed to answer.
	Query string

	// Err is the underlying failure from the model provider.
	Err error
}

// Error implements the error interface for AgentError.
func (e *AgentError) Error() string {
	return fmt.Sprintf("agent error: query=%q, err=%v", truncate(e.Query, 80), e.Err)
}

// Unwrap returns the underlying error, supporting Go 1.13+ error unwrapping.
func (e *AgentError) Unwrap() error { return e.Err }

// NewAgentError creates a new AgentError for the given query.
func NewAgentError(query string, err error) *AgentError {
	return &AgentError{Query: query, Err: err}
}

// ConfigurationError represents a missing or invalid piece of startup
// configuration, typically an absent credential. It blocks the affected
// capability entirely; the caller reports it and stops rather than retry.
type ConfigurationError struct {
	// Field is the configuration key or environment variable at fault.
	Field string

	// Reason describes what was wrong with it.
	Reason string
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: field=%s, reason=%s", e.Field, e.Reason)
}

// Unwrap maps every ConfigurationError to ErrInvalidConfiguration so
// callers can match the whole class with errors.Is.
func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
