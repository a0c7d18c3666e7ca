package llm

import (
	"cmp"
	"fmt"
	"math"
	"net/url"
	"time"
)

// Shared request parameter bounds. Providers clamp rather than reject
// so a slightly out-of-range option degrades to the nearest valid value.
const (
	// MinTemperature and MaxTemperature bound the sampling temperature.
	// The upper bound is 2.0 because OpenAI-compatible APIs and Gemini
	// both accept it.
	MinTemperature = 0.0
	MaxTemperature = 2.0

	// MinTopP and MaxTopP bound nucleus sampling.
	MinTopP = 0.0
	MaxTopP = 1.0

	// MinPenalty and MaxPenalty bound frequency and presence penalties.
	MinPenalty = -2.0
	MaxPenalty = 2.0

	// MinMaxTokens is the smallest acceptable max_tokens value.
	MinMaxTokens = 1

	// DefaultMaxTokens applies when a request does not set max_tokens.
	DefaultMaxTokens = 1024

	// MinTimeout and MaxTimeout bound per-request timeouts.
	MinTimeout = 1 * time.Second
	MaxTimeout = 10 * time.Minute
)

// IsValidTemperature reports whether val is inside the temperature range.
func IsValidTemperature(val float64) bool {
	return val >= MinTemperature && val <= MaxTemperature
}

// IsValidTopP reports whether val is inside the top_p range.
func IsValidTopP(val float64) bool {
	return val >= MinTopP && val <= MaxTopP
}

// IsValidPenalty reports whether val is inside the penalty range.
func IsValidPenalty(val float64) bool {
	return val >= MinPenalty && val <= MaxPenalty
}

// IsPositiveInt reports whether val is greater than zero.
func IsPositiveInt(val int) bool { return val > 0 }

// IsNonEmptyString reports whether val is non-empty.
func IsNonEmptyString(val string) bool { return val != "" }

// ValidateBaseURL normalizes a base URL override. The empty string is
// valid and means the provider default applies. Anything else must be
// an absolute http or https URL with a host.
func ValidateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("URL must include a scheme (e.g., http:// or https://)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https, but got: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("URL must include a host")
	}
	return parsed.String(), nil
}

// ValidateTimeout clamps a timeout into [MinTimeout, MaxTimeout].
// Zero or negative returns zero, meaning the system default applies.
func ValidateTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 0
	}
	return clamp(timeout, MinTimeout, MaxTimeout)
}

// SafeFloat32 converts a numeric option value to float32, reporting
// failure for non-numeric types and values outside the float32 range.
func SafeFloat32(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		if v > math.MaxFloat32 || v < -math.MaxFloat32 {
			return 0, false
		}
		return float32(v), true
	case int:
		return float32(v), true
	case int64:
		// 2^24 is the largest integer float32 represents exactly.
		if v > 1<<24 || v < -(1<<24) {
			return 0, false
		}
		return float32(v), true
	default:
		return 0, false
	}
}

// SafeInt converts a numeric option value to int, reporting failure
// for non-numeric types, NaN, and values outside the int range.
func SafeInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		if int64(int(v)) != v {
			return 0, false
		}
		return int(v), true
	case float32:
		if v != v {
			return 0, false
		}
		return int(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		if v > float64(math.MaxInt) || v < float64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampFloat64 clamps val into [min, max].
func ClampFloat64(val, min, max float64) float64 { return clamp(val, min, max) }

// ClampInt clamps val into [min, max].
func ClampInt(val, min, max int) int { return clamp(val, min, max) }
