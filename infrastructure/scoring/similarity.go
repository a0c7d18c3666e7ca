package scoring

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"

	"github.com/flightline-ai/supportbench/internal/ports"
)

var _ ports.SimilarityScorer = (*ReferenceSimilarity)(nil)

// ReferenceSimilarity measures how close a response is to the dataset's
// reference answer using normalized Levenshtein distance. The value is
// diagnostic only and is reported next to the quality score, never
// combined with it: a response can resolve a ticket well while wording
// it very differently from the historical resolution.
type ReferenceSimilarity struct {
	// config contains the validated configuration parameters.
	config SimilarityConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// SimilarityConfig controls string normalization before the distance
// computation. The defaults fold case and trim whitespace so phrasing
// differences dominate the measurement rather than formatting.
type SimilarityConfig struct {
	// CaseSensitive controls case sensitivity during comparison.
	// When false, uses Unicode-aware case folding.
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`

	// TrimWhitespace controls leading/trailing whitespace normalization.
	TrimWhitespace bool `yaml:"trim_whitespace" json:"trim_whitespace"`
}

// DefaultSimilarityConfig returns case-insensitive matching with
// whitespace trimming enabled.
func DefaultSimilarityConfig() SimilarityConfig {
	return SimilarityConfig{CaseSensitive: false, TrimWhitespace: true}
}

// NewReferenceSimilarity creates a ReferenceSimilarity scorer.
func NewReferenceSimilarity(config SimilarityConfig) (*ReferenceSimilarity, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ReferenceSimilarity{
		config: config,
		tracer: otel.Tracer("reference-similarity"),
	}, nil
}

// Similarity returns a value in [0, 1] where 1 is an exact match after
// normalization. Two empty strings are considered identical.
func (rs *ReferenceSimilarity) Similarity(ctx context.Context, response, reference string) (float64, error) {
	_, span := rs.tracer.Start(ctx, "ReferenceSimilarity.Similarity",
		trace.WithAttributes(
			attribute.String("scorer.type", "reference_similarity"),
			attribute.Bool("config.case_sensitive", rs.config.CaseSensitive),
		),
	)
	defer span.End()

	a := rs.prepare(response)
	b := rs.prepare(reference)

	sim := normalizedSimilarity(a, b)
	span.SetAttributes(attribute.Float64("eval.similarity", sim))
	return sim, nil
}

func (rs *ReferenceSimilarity) prepare(s string) string {
	result := s
	if rs.config.TrimWhitespace {
		result = strings.TrimSpace(result)
	}
	if !rs.config.CaseSensitive {
		result = cases.Fold().String(result)
	}
	return result
}

// normalizedSimilarity converts a Levenshtein edit distance into a
// similarity score: 1 - distance/maxRuneLength. The distance operates
// on runes, so rune counts keep the normalization consistent for
// multi-byte UTF-8 text.
func normalizedSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	sim := 1.0 - float64(distance)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	return sim
}
