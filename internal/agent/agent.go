// Package agent implements the customer-support agent evaluated by the
// rest of the system. The agent assembles a prompt from its instructions
// and few-shot demonstrations, then completes it through an LLM client.
package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"

	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/ports"
)

var _ ports.Agent = (*SupportAgent)(nil)

// Shared validator instance for configuration validation.
var validate = validator.New()

// Sentinel errors for clear, testable error conditions.
var (
	ErrLLMClientNil     = errors.New("LLM client cannot be nil")
	ErrConfigValidation = errors.New("configuration validation failed")
)

// DefaultInstructions is the unoptimized prompt used when no optimized
// artifact has been loaded.
const DefaultInstructions = "You are a customer support agent for an airline. " +
	"Answer the customer's question with concrete, actionable steps, include any " +
	"applicable fees, and point the customer at the right follow-up channel."

// DefaultPromptTemplate lays out instructions, demonstrations, and the
// live query. Demonstrations use the same Customer/Agent framing the
// model is expected to continue.
const DefaultPromptTemplate = `{{.Instructions}}
{{range .Demos}}
Customer: {{.Query}}
Agent: {{.Answer}}
{{end}}
Customer: {{.Query}}
Agent:`

// Config defines the agent's prompt and generation parameters.
type Config struct {
	// Instructions is the system-style preamble for every prompt.
	Instructions string `yaml:"instructions" json:"instructions" validate:"required"`

	// Demos are few-shot demonstrations prepended to every prompt,
	// typically selected by an external optimization run.
	Demos []domain.Example `yaml:"demos" json:"demos"`

	// PromptTemplate is the Go template combining instructions, demos,
	// and the query. Leave empty to use DefaultPromptTemplate.
	PromptTemplate string `yaml:"prompt_template" json:"prompt_template"`

	// Temperature controls randomness in generation (0.0-1.0).
	Temperature float64 `yaml:"temperature" json:"temperature" validate:"min=0.0,max=1.0"`

	// MaxTokens limits the length of each response.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens" validate:"required,min=10,max=16000"`
}

// DefaultConfig returns the unoptimized agent configuration.
func DefaultConfig() Config {
	return Config{
		Instructions: DefaultInstructions,
		Temperature:  0.3,
		MaxTokens:    800,
	}
}

// SupportAgent answers customer queries through an LLM client.
// It is stateless after construction and safe for concurrent use.
type SupportAgent struct {
	config Config
	llm    ports.LLMClient
	tmpl   *template.Template
}

// New creates a SupportAgent with validated configuration.
func New(llm ports.LLMClient, config Config) (*SupportAgent, error) {
	if llm == nil {
		return nil, ErrLLMClientNil
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}

	text := config.PromptTemplate
	if text == "" {
		text = DefaultPromptTemplate
	}
	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}

	return &SupportAgent{config: config, llm: llm, tmpl: tmpl}, nil
}

// Model returns the identifier of the underlying model.
func (a *SupportAgent) Model() string { return a.llm.GetModel() }

// Demos returns the number of few-shot demonstrations in the prompt.
func (a *SupportAgent) Demos() int { return len(a.config.Demos) }

// Respond answers a single customer query. Provider failures are
// returned as *domain.AgentError.
func (a *SupportAgent) Respond(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", domain.ErrEmptyQuery
	}

	prompt, err := a.buildPrompt(query)
	if err != nil {
		return "", err
	}

	response, err := a.llm.Complete(ctx, prompt, map[string]any{
		"temperature": a.config.Temperature,
		"max_tokens":  a.config.MaxTokens,
	})
	if err != nil {
		return "", domain.NewAgentError(query, err)
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return "", domain.NewAgentError(query, domain.ErrEmptyResponse)
	}
	return response, nil
}

func (a *SupportAgent) buildPrompt(query string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Instructions string
		Demos        []domain.Example
		Query        string
	}{
		Instructions: a.config.Instructions,
		Demos:        a.config.Demos,
		Query:        query,
	}
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
