package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware paces requests with a shared token bucket so the
// client stays inside the provider's rate limits. limit is the
// sustained requests per second; burst allows short spikes above it.
// All clients built from the same middleware value share one bucket.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)

	return func(next CoreLLM) CoreLLM {
		return &rateLimitedLLM{next: next, limiter: limiter}
	}
}

type rateLimitedLLM struct {
	next    CoreLLM
	limiter *rate.Limiter
}

// DoRequest blocks until a token is available or the context ends.
func (r *rateLimitedLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", 0, 0, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.DoRequest(ctx, prompt, opts)
}

func (r *rateLimitedLLM) GetModel() string  { return r.next.GetModel() }
func (r *rateLimitedLLM) SetModel(m string) { r.next.SetModel(m) }
