package llm

import "sync"

// BaseProvider supplies the model bookkeeping shared by every provider.
// Embedding it gives a provider thread-safe GetModel and SetModel.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the configured model name. Safe for concurrent use.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel replaces the model name. Safe for concurrent use.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// RequestOptions is the normalized form of the per-request option map.
// Providers read from this struct instead of poking at raw maps.
type RequestOptions struct {
	// MaxTokens caps the number of tokens to generate.
	MaxTokens int

	// Model identifies the model for this specific request.
	Model string

	// Temperature controls sampling randomness. Nil means use the
	// provider default.
	Temperature *float64

	// TopP configures nucleus sampling. Nil means use the provider
	// default.
	TopP *float64

	// System carries the system prompt, when one is set.
	System string

	// Extra holds provider-specific options outside the standard set,
	// such as Gemini's top_k.
	Extra map[string]any
}

// ParseRequestOptions normalizes a raw option map into RequestOptions,
// falling back to defaults for missing or invalid entries. Keys outside
// the standard set pass through in Extra.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		MaxTokens: ExtractOptionalInt(opts, "max_tokens", DefaultMaxTokens, IsPositiveInt),
		Model:     ExtractOptionalString(opts, "model", defaultModel, IsNonEmptyString),
		System:    ExtractOptionalString(opts, "system", "", nil),
		Extra:     make(map[string]any),
	}

	if temp := ExtractOptionalFloat64(opts, "temperature", -1, IsValidTemperature); temp != -1 {
		options.Temperature = &temp
	}

	if topP := ExtractOptionalFloat64(opts, "top_p", -1, IsValidTopP); topP != -1 {
		options.TopP = &topP
	}

	for k, v := range opts {
		switch k {
		case "max_tokens", "model", "system", "temperature", "top_p":
			// Already handled above.
		default:
			options.Extra[k] = v
		}
	}

	return options
}

// TokenCounter estimates token counts when the provider's response does
// not report them.
type TokenCounter struct {
	// CharactersPerToken is the assumed average token length in
	// characters.
	CharactersPerToken float64
}

// NewTokenCounter returns a counter tuned for English text, where four
// characters per token is a reasonable approximation.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{CharactersPerToken: 4.0}
}

// EstimateTokens approximates the token count of text from its length.
func (tc *TokenCounter) EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text)) / tc.CharactersPerToken)
}

// GetTokenCount prefers the count reported by the API and estimates from
// the text only when that count is missing or zero.
func (tc *TokenCounter) GetTokenCount(actualCount int, text string) int {
	if actualCount > 0 {
		return actualCount
	}
	return tc.EstimateTokens(text)
}
