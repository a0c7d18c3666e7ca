// Package scoring provides the deterministic scorers used to grade
// support-agent responses. Scorers here never call an LLM, so they are
// free to run, reproducible, and safe for high-volume batch evaluation.
package scoring

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Common errors returned by scorer constructors.
var (
	// ErrEmptyScorerName is returned when attempting to create a scorer
	// with an empty name.
	ErrEmptyScorerName = errors.New("scorer name cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
