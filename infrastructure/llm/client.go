// Package llm talks to hosted language model providers through a single
// small interface. Providers (Groq, OpenAI, Anthropic, Google) register a
// factory at init time, and cross-cutting behavior such as rate limiting,
// timeouts, metrics, and tracing is layered on with middleware rather than
// baked into each provider.
//
//	client, err := llm.NewClient("groq", llm.ClientConfig{
//	    APIKey: os.Getenv("GROQ_API_KEY"),
//	    Model:  "llama-3.1-8b-instant",
//	    Middleware: []llm.Middleware{
//	        llm.RateLimitMiddleware(20, 40),
//	        llm.TimeoutMiddleware(30 * time.Second),
//	    },
//	})
//	response, err := client.Complete(ctx, "Hello world!", nil)
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/flightline-ai/supportbench/internal/ports"
)

// CoreLLM is the minimal surface a provider must implement. Middleware wraps
// any conforming value, so providers stay free of operational concerns.
type CoreLLM interface {
	// DoRequest sends a prompt and returns the response text along with the
	// input and output token counts reported by the provider. The opts map
	// carries provider-specific parameters such as temperature or max_tokens.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the model currently in use.
	GetModel() string

	// SetModel switches the model for subsequent requests without
	// recreating the client.
	SetModel(model string)
}

// TokenEstimator approximates token counts before a request is made.
// Estimates feed cost projections and rate limiting, where exact counts
// are not yet available.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// Middleware wraps a CoreLLM to add behavior around every request.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig collects everything needed to construct a client:
// credentials, model selection, and the middleware stack.
type ClientConfig struct {
	// APIKey authenticates requests. The Google provider may instead
	// take a credentials file path here.
	APIKey string

	// Model names the provider model to use.
	Model string

	// BaseURL overrides the provider's default endpoint when non-empty.
	BaseURL string

	// Timeout bounds individual requests. Zero means no limit.
	Timeout time.Duration

	// TokenEstimator supplies custom token counting. A character-based
	// estimator is used when nil.
	TokenEstimator TokenEstimator

	// Middleware is applied in the order given, first entry outermost.
	Middleware []Middleware
}

// Client adapts a middleware-wrapped CoreLLM to the ports.LLMClient
// interface used by the rest of the system.
type Client struct {
	core      CoreLLM
	estimator TokenEstimator
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient validates the configuration, builds the named provider, and
// wraps it with the configured middleware chain. The concrete type is
// returned so callers can reach CompleteWithUsage; it satisfies
// ports.LLMClient for everything else.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Reverse application keeps the first configured middleware outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	estimator := config.TokenEstimator
	if estimator == nil {
		estimator = &SimpleTokenEstimator{}
	}

	return &Client{core: core, estimator: estimator}, nil
}

// Complete sends a prompt and returns only the response text, discarding
// token usage for callers that do not track it.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.CompleteWithUsage(ctx, prompt, options)
	return response, err
}

// CompleteWithUsage sends a prompt and returns the response together with
// input and output token counts for cost accounting.
func (c *Client) CompleteWithUsage(ctx context.Context, prompt string, options map[string]any) (string, int, int, error) {
	return c.core.DoRequest(ctx, prompt, options)
}

// EstimateTokens approximates the token count of text using the configured
// estimator.
func (c *Client) EstimateTokens(text string) (int, error) {
	return c.estimator.EstimateTokens(text), nil
}

// GetModel reports the model name of the underlying provider.
func (c *Client) GetModel() string { return c.core.GetModel() }

// SimpleTokenEstimator counts roughly four characters per token, a
// workable approximation for English text.
type SimpleTokenEstimator struct{}

func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// ProviderFactory builds a CoreLLM from client configuration. Providers
// register one so NewClient can construct them by name.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory adds a provider under the given name, making it
// available to NewClient. Later registrations replace earlier ones.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}

// Providers lists the names of all registered provider factories.
func Providers() []string {
	names := make([]string, 0, len(providerFactories))
	for name := range providerFactories {
		names = append(names, name)
	}
	return names
}
