// Package testutils provides shared test doubles for the evaluation and
// chat pipelines.
package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/flightline-ai/supportbench/internal/ports"
)

// MockLLMClient implements the LLMClient interface with deterministic
// responses for consistent testing and development workflows.
// Responses are selected by substring matching against the prompt, so a
// test can steer the answer by mentioning a topic in the query.
type MockLLMClient struct {
	mu sync.Mutex

	// model is the mock model identifier.
	model string
	// responses maps prompt patterns to pre-defined responses.
	responses map[string]string
	// calls counts Complete invocations for assertion purposes.
	calls int
	// failWith, when set, makes every Complete call fail.
	failWith error
}

// MockResponse defines a pre-configured response pattern for the mock client.
type MockResponse struct {
	// Pattern is matched against prompts (case-insensitive substring).
	Pattern string
	// Response is the text returned for matching prompts.
	Response string
}

// NewMockLLMClient creates a MockLLMClient with pre-configured responses
// for common support topics. The defaults are written to exercise the
// quality indicators: they carry steps, affirmations, contacts, and fees.
func NewMockLLMClient(model string) *MockLLMClient {
	client := &MockLLMClient{
		model:     model,
		responses: make(map[string]string),
	}
	client.setupDefaultResponses()
	return client
}

func (m *MockLLMClient) setupDefaultResponses() {
	m.AddResponse(MockResponse{
		Pattern: "baggage",
		Response: "Yes ✅ Step 1: Prepay the baggage fee online. The prepaid rate for 25kg " +
			"is ₱950; airport rates are higher. Step 2: Present your booking reference at " +
			"the bag drop counter. For damaged bags, file a report at the airport desk or " +
			"email baggage@airline.example before leaving the arrivals area.",
	})

	m.AddResponse(MockResponse{
		Pattern: "refund",
		Response: "Yes, refunds are available for cancelled flights. Step 1: Open Manage " +
			"Booking at www.airline.example. Step 2: Select Request Refund. Processing takes " +
			"7 business days back to the original payment method, with no processing fee.",
	})

	m.AddResponse(MockResponse{
		Pattern: "check in",
		Response: "Option 1: Check in online from 7 days up to 1 hour before departure. " +
			"Option 2: Use an airport kiosk. Online check-in is free; airport counter " +
			"check-in carries a ₱200 fee on domestic routes.",
	})

	// Default response for unmatched prompts.
	m.AddResponse(MockResponse{
		Pattern:  "",
		Response: "Thank you for reaching out. Our team will look into your request.",
	})
}

// AddResponse adds a new response pattern to the mock client.
func (m *MockLLMClient) AddResponse(response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[strings.ToLower(response.Pattern)] = response.Response
}

// FailWith makes every subsequent Complete call return err.
// Pass nil to restore normal behavior.
func (m *MockLLMClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Calls returns how many times Complete has been invoked.
func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Complete implements LLMClient.Complete with deterministic responses
// based on prompt pattern matching.
func (m *MockLLMClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failWith != nil {
		return "", m.failWith
	}

	promptLower := strings.ToLower(prompt)
	for pattern, response := range m.responses {
		if pattern != "" && strings.Contains(promptLower, pattern) {
			return response, nil
		}
	}
	return m.responses[""], nil
}

// EstimateTokens implements LLMClient.EstimateTokens using the common
// four-characters-per-token approximation.
func (m *MockLLMClient) EstimateTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens, nil
}

// GetModel implements LLMClient.GetModel.
func (m *MockLLMClient) GetModel() string { return m.model }

// Verify interface compliance at compile time.
var _ ports.LLMClient = (*MockLLMClient)(nil)
