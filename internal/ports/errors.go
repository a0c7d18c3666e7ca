package ports

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for failures while talking to external services.
// Adapters wrap these so callers can classify without knowing the
// provider.
var (
	// ErrTokenLimitExceeded indicates the LLM token limit was exceeded.
	ErrTokenLimitExceeded = errors.New("token limit exceeded")

	// ErrRateLimited indicates the service rate limited the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates the external service is down.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrTimeout indicates an operation ran out of time.
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidResponse indicates the service returned something the
	// adapter could not use.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrAuthenticationFailed indicates the service rejected the
	// credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// LLMError carries provider failure context: which model, which
// operation, and any rate limit hints. Hints are diagnostic only; no
// component retries automatically.
type LLMError struct {
	// Model is the model that produced the error.
	Model string

	// Operation names the failed operation.
	Operation string

	// Err is the underlying cause.
	Err error

	// TokensUsed counts tokens consumed before the failure.
	TokensUsed int

	// RetryAfter holds the provider's suggested backoff, if any.
	RetryAfter *time.Duration
}

// Error implements the error interface for LLMError.
func (e *LLMError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "LLM error: model=%s, operation=%s, err=%v", e.Model, e.Operation, e.Err)
	if e.TokensUsed > 0 {
		fmt.Fprintf(&b, ", tokens_used=%d", e.TokensUsed)
	}
	if e.RetryAfter != nil {
		fmt.Fprintf(&b, ", retry_after=%v", *e.RetryAfter)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *LLMError) Unwrap() error { return e.Err }

// IsTransient reports whether the failure reflects temporary service
// conditions rather than a request or configuration problem.
func (e *LLMError) IsTransient() bool {
	return errors.Is(e.Err, ErrRateLimited) ||
		errors.Is(e.Err, ErrServiceUnavailable) ||
		errors.Is(e.Err, ErrTimeout)
}

// NewLLMError builds an LLMError without token or backoff details.
func NewLLMError(model, operation string, err error) *LLMError {
	return &LLMError{Model: model, Operation: operation, Err: err}
}
