package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic provider constants
const (
	// AnthropicDefaultModel is the default Anthropic model (Claude 3.5 Sonnet)
	AnthropicDefaultModel = "claude-3-5-sonnet-20241022"
)

func init() {
	RegisterProviderFactory("anthropic", newAnthropicProvider)
}

// anthropicProvider implements the CoreLLM interface for Anthropic's Claude API.
// This provider handles Anthropic-specific request formatting and response parsing
// while maintaining compatibility with the common middleware system.
type anthropicProvider struct {
	BaseProvider
	client          anthropic.Client
	tokenCounter    *TokenCounter
	errorClassifier *ErrorClassifier
}

// anthropicRequestConfig holds parsed request configuration.
type anthropicRequestConfig struct {
	maxTokens   int
	model       string
	temperature *float64
	system      string
}

// newAnthropicProvider creates a new Anthropic provider instance.
// This factory function configures the provider for Anthropic's API
// and validates that required configuration is present.
func newAnthropicProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key cannot be empty")
	}

	model := config.Model
	if model == "" {
		model = AnthropicDefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &anthropicProvider{
		BaseProvider:    BaseProvider{model: model},
		client:          client,
		tokenCounter:    NewTokenCounter(),
		errorClassifier: &ErrorClassifier{Provider: "anthropic"},
	}, nil
}

// DoRequest sends a request to Anthropic's Claude API and returns the response.
// This method handles Anthropic-specific request formatting, authentication,
// and response parsing while tracking token usage.
func (p *anthropicProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	config := p.parseRequestOptions(opts)
	params := p.buildAnthropicParams(prompt, config)

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", 0, 0, p.wrapError(err)
	}

	return p.processResponse(message, prompt)
}

// parseRequestOptions extracts and validates request options with defaults.
func (p *anthropicProvider) parseRequestOptions(opts map[string]any) anthropicRequestConfig {
	config := anthropicRequestConfig{
		maxTokens: ExtractOptionalInt(opts, "max_tokens", DefaultMaxTokens, IsPositiveInt),
		model:     ExtractOptionalString(opts, "model", p.GetModel(), IsNonEmptyString),
		system:    ExtractOptionalString(opts, "system", "", nil), // Empty string is valid for system
	}

	if temp := ExtractOptionalFloat64(opts, "temperature", -1, IsValidTemperature); temp != -1 {
		config.temperature = &temp
	}

	return config
}

// buildAnthropicParams creates the API request parameters.
func (p *anthropicProvider) buildAnthropicParams(prompt string, config anthropicRequestConfig) anthropic.MessageNewParams {
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(config.model),
		MaxTokens: int64(config.maxTokens),
		Messages:  messages,
	}

	if config.temperature != nil {
		params.Temperature = anthropic.Float(*config.temperature)
	}

	if config.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: config.system}}
	}

	return params
}

// processResponse extracts content and token counts from the API response.
func (p *anthropicProvider) processResponse(message *anthropic.Message, originalPrompt string) (string, int, int, error) {
	var responseText strings.Builder
	for _, block := range message.Content {
		switch content := block.AsAny().(type) {
		case anthropic.TextBlock:
			responseText.WriteString(content.Text)
		}
	}

	responseStr := responseText.String()
	if responseStr == "" {
		return "", 0, 0, NewProviderError("anthropic", ErrorTypeServerError, 0, "empty response from API", nil)
	}

	tokensIn := p.tokenCounter.GetTokenCount(int(message.Usage.InputTokens), originalPrompt)
	tokensOut := p.tokenCounter.GetTokenCount(int(message.Usage.OutputTokens), responseStr)

	return responseStr, tokensIn, tokensOut, nil
}

// wrapError classifies Anthropic SDK errors into provider errors.
func (p *anthropicProvider) wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return p.errorClassifier.ClassifyHTTPError(anthropicErr.StatusCode, anthropicErr.Error(), err)
	}

	return NewProviderError("anthropic", ErrorTypeUnknown, 0, "request failed", err)
}
