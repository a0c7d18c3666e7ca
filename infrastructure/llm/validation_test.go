package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name          string
		baseURL       string
		expected      string
		expectedError string
	}{
		{name: "empty URL is valid", baseURL: "", expected: ""},
		{name: "https URL", baseURL: "https://api.groq.com/openai/v1", expected: "https://api.groq.com/openai/v1"},
		{name: "http URL", baseURL: "http://localhost:8080", expected: "http://localhost:8080"},
		{name: "missing scheme", baseURL: "api.groq.com", expectedError: "scheme"},
		{name: "unsupported scheme", baseURL: "ftp://api.groq.com", expectedError: "must be http or https"},
		{name: "missing host", baseURL: "https://", expectedError: "host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateBaseURL(tt.baseURL)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), ValidateTimeout(0))
	assert.Equal(t, time.Duration(0), ValidateTimeout(-time.Second))
	assert.Equal(t, MinTimeout, ValidateTimeout(time.Millisecond))
	assert.Equal(t, 30*time.Second, ValidateTimeout(30*time.Second))
	assert.Equal(t, MaxTimeout, ValidateTimeout(time.Hour))
}

func TestExtractOptionalValues(t *testing.T) {
	opts := map[string]any{
		"max_tokens":  800,
		"model":       "llama-3.1-8b-instant",
		"temperature": 0.3,
		"wrong_type":  "not an int",
	}

	assert.Equal(t, 800, ExtractOptionalInt(opts, "max_tokens", 1024, IsPositiveInt))
	assert.Equal(t, 1024, ExtractOptionalInt(opts, "missing", 1024, IsPositiveInt))
	assert.Equal(t, 1024, ExtractOptionalInt(opts, "wrong_type", 1024, IsPositiveInt))
	assert.Equal(t, 1024, ExtractOptionalInt(nil, "max_tokens", 1024, IsPositiveInt))

	assert.Equal(t, "llama-3.1-8b-instant", ExtractOptionalString(opts, "model", "fallback", IsNonEmptyString))
	assert.Equal(t, "fallback", ExtractOptionalString(opts, "missing", "fallback", IsNonEmptyString))

	assert.Equal(t, 0.3, ExtractOptionalFloat64(opts, "temperature", -1, IsValidTemperature))
	assert.Equal(t, -1.0, ExtractOptionalFloat64(opts, "missing", -1, IsValidTemperature))
}

func TestSafeConversions(t *testing.T) {
	t.Run("SafeFloat32", func(t *testing.T) {
		v, ok := SafeFloat32(0.5)
		assert.True(t, ok)
		assert.Equal(t, float32(0.5), v)

		_, ok = SafeFloat32("not a number")
		assert.False(t, ok)

		_, ok = SafeFloat32(1e40)
		assert.False(t, ok)
	})

	t.Run("SafeInt", func(t *testing.T) {
		v, ok := SafeInt(42)
		assert.True(t, ok)
		assert.Equal(t, 42, v)

		v, ok = SafeInt(3.0)
		assert.True(t, ok)
		assert.Equal(t, 3, v)

		_, ok = SafeInt("not a number")
		assert.False(t, ok)
	})
}
