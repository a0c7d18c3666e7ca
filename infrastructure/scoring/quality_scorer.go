package scoring

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/flightline-ai/supportbench/internal/ports"
)

var _ ports.Scorer = (*QualityScorer)(nil)

// Number of binary indicators the quality score is built from.
// The score is always hits/indicatorCount, landing on a 0.2 grid.
const indicatorCount = 5

// QualityScorer grades a support response against five binary
// indicators: structured steps, sufficient detail, an affirmative
// marker, contact information, and cost information. Each indicator
// contributes one fifth of the score, so results fall in
// {0, 0.2, 0.4, 0.6, 0.8, 1.0}.
//
// The scorer is deterministic and stateless after construction; it is
// safe for concurrent use.
type QualityScorer struct {
	// name is the unique identifier for this scorer instance.
	name string
	// config contains the validated configuration parameters.
	config QualityConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// QualityConfig holds the token sets and thresholds behind each
// indicator. Token matching is case-insensitive via Unicode case
// folding, so emoji and currency symbols pass through unchanged while
// "PHP" matches "php".
//
// Configuration is immutable after scorer creation. Changes require
// creating a new scorer instance.
type QualityConfig struct {
	// StructureTokens mark a response as having actionable structure,
	// such as numbered steps or enumerated options.
	StructureTokens []string `yaml:"structure_tokens" json:"structure_tokens" validate:"min=1,dive,required"`

	// DetailMinChars is the exclusive character-count threshold above
	// which a response counts as sufficiently detailed.
	DetailMinChars int `yaml:"detail_min_chars" json:"detail_min_chars" validate:"gt=0"`

	// PositiveTokens signal an affirmative, solution-oriented answer.
	PositiveTokens []string `yaml:"positive_tokens" json:"positive_tokens" validate:"min=1,dive,required"`

	// ContactTokens indicate the response points the customer at a
	// concrete follow-up channel.
	ContactTokens []string `yaml:"contact_tokens" json:"contact_tokens" validate:"min=1,dive,required"`

	// CostTokens indicate the response addresses fees or pricing.
	CostTokens []string `yaml:"cost_tokens" json:"cost_tokens" validate:"min=1,dive,required"`
}

// DefaultQualityConfig returns the airline help desk's standing rubric:
// step or option structure, more than 200 characters of detail,
// check-mark or "yes" affirmations, contact channels, and peso or fee
// mentions.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		StructureTokens: []string{"step", "option"},
		DetailMinChars:  200,
		PositiveTokens:  []string{"✅", "✓", "yes"},
		ContactTokens:   []string{"@", "www", "phone"},
		CostTokens:      []string{"₱", "$", "php", "fee"},
	}
}

// Indicators is the per-indicator breakdown behind a quality score.
type Indicators struct {
	Structure bool `json:"structure"`
	Detail    bool `json:"detail"`
	Positive  bool `json:"positive"`
	Contact   bool `json:"contact"`
	Cost      bool `json:"cost"`
}

// Hits returns how many indicators are satisfied.
func (ind Indicators) Hits() int {
	n := 0
	for _, b := range []bool{ind.Structure, ind.Detail, ind.Positive, ind.Contact, ind.Cost} {
		if b {
			n++
		}
	}
	return n
}

// NewQualityScorer creates a QualityScorer with validated configuration.
// The name parameter identifies the scorer in logs and trace spans and
// must be non-empty.
func NewQualityScorer(name string, config QualityConfig) (*QualityScorer, error) {
	if name == "" {
		return nil, ErrEmptyScorerName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &QualityScorer{
		name:   name,
		config: config,
		tracer: otel.Tracer("quality-scorer"),
	}, nil
}

// Name returns the unique identifier for this scorer instance.
func (qs *QualityScorer) Name() string { return qs.name }

// Score evaluates a single response against all five indicators.
// An empty response satisfies no indicator and scores zero. The error
// return exists to satisfy ports.Scorer; this implementation never
// fails once constructed.
func (qs *QualityScorer) Score(ctx context.Context, response string) (float64, error) {
	_, span := qs.tracer.Start(ctx, "QualityScorer.Score",
		trace.WithAttributes(
			attribute.String("scorer.type", "quality"),
			attribute.String("scorer.id", qs.name),
			attribute.Int("response.chars", utf8.RuneCountInString(response)),
		),
	)
	defer span.End()

	ind := qs.Evaluate(response)
	score := float64(ind.Hits()) / indicatorCount

	span.SetAttributes(
		attribute.Float64("eval.score", score),
		attribute.Int("eval.indicators_hit", ind.Hits()),
		// Deterministic scorers have no LLM cost.
		attribute.Bool("no_llm_cost", true),
	)

	return score, nil
}

// Evaluate returns the per-indicator breakdown for a response.
// Useful for surfacing a score explanation alongside the number.
func (qs *QualityScorer) Evaluate(response string) Indicators {
	// Casers are stateful, so a fresh one is created per call to keep
	// the scorer safe for concurrent use.
	fold := cases.Fold()
	folded := fold.String(response)
	return Indicators{
		Structure: containsAny(folded, fold, qs.config.StructureTokens),
		Detail:    utf8.RuneCountInString(response) > qs.config.DetailMinChars,
		Positive:  containsAny(folded, fold, qs.config.PositiveTokens),
		Contact:   containsAny(folded, fold, qs.config.ContactTokens),
		Cost:      containsAny(folded, fold, qs.config.CostTokens),
	}
}

func containsAny(s string, fold cases.Caser, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, fold.String(tok)) {
			return true
		}
	}
	return false
}

// Validate verifies the scorer is properly configured.
// Safe for concurrent use.
func (qs *QualityScorer) Validate() error {
	if err := validate.Struct(qs.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the scorer's
// config. The scorer's configuration remains unchanged on error.
func (qs *QualityScorer) UnmarshalParameters(params yaml.Node) error {
	var config QualityConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	qs.config = config
	return nil
}
