package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fullMarksResponse satisfies every indicator: structure, detail,
// affirmation, contact, and cost.
func fullMarksResponse() string {
	return "Yes ✅ Step 1: Pay the ₱950 prepaid baggage fee at www.cebupacificair.com " +
		"or call our phone hotline at (02) 8802-7000. " +
		strings.Repeat("Our team will assist with the remaining details of your booking. ", 3)
}

func TestNewQualityScorer(t *testing.T) {
	tests := []struct {
		name          string
		scorerName    string
		config        QualityConfig
		expectedError string
	}{
		{
			name:       "valid default configuration",
			scorerName: "support-quality",
			config:     DefaultQualityConfig(),
		},
		{
			name:          "empty name is rejected",
			scorerName:    "",
			config:        DefaultQualityConfig(),
			expectedError: "scorer name cannot be empty",
		},
		{
			name:       "empty token set is rejected",
			scorerName: "support-quality",
			config: QualityConfig{
				StructureTokens: nil,
				DetailMinChars:  200,
				PositiveTokens:  []string{"yes"},
				ContactTokens:   []string{"@"},
				CostTokens:      []string{"fee"},
			},
			expectedError: "configuration validation failed",
		},
		{
			name:       "zero detail threshold is rejected",
			scorerName: "support-quality",
			config: QualityConfig{
				StructureTokens: []string{"step"},
				DetailMinChars:  0,
				PositiveTokens:  []string{"yes"},
				ContactTokens:   []string{"@"},
				CostTokens:      []string{"fee"},
			},
			expectedError: "configuration validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer, err := NewQualityScorer(tt.scorerName, tt.config)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.scorerName, scorer.Name())
			assert.NoError(t, scorer.Validate())
		})
	}
}

func TestQualityScorerScore(t *testing.T) {
	scorer, err := NewQualityScorer("support-quality", DefaultQualityConfig())
	require.NoError(t, err)

	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{
			name:     "empty response scores zero",
			response: "",
			want:     0,
		},
		{
			name:     "all indicators satisfied scores one",
			response: fullMarksResponse(),
			want:     1.0,
		},
		{
			name:     "structure only",
			response: "Step 1: rebook.",
			want:     0.2,
		},
		{
			name:     "detail only",
			response: strings.Repeat("travel advisory notice for the route ", 7),
			want:     0.2,
		},
		{
			name:     "affirmation only",
			response: "Yes.",
			want:     0.2,
		},
		{
			name:     "contact only",
			response: "Reach us at support@airline.example.",
			want:     0.2,
		},
		{
			name:     "cost only",
			response: "The charge is PHP 950.",
			want:     0.2,
		},
		{
			name:     "check mark counts as affirmation",
			response: "✓ Rebooked.",
			want:     0.2,
		},
		{
			name:     "structure plus cost",
			response: "Option A costs ₱500.",
			want:     0.4,
		},
		{
			name:     "unhelpful response scores zero",
			response: "Please wait.",
			want:     0,
		},
		{
			name:     "token matching is case-insensitive",
			response: "STEP ONE: CALL OUR PHONE LINE, THE FEE IS WAIVED. YES.",
			want:     0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(context.Background(), tt.response)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestQualityScorerScoreGrid(t *testing.T) {
	scorer, err := NewQualityScorer("support-quality", DefaultQualityConfig())
	require.NoError(t, err)

	responses := []string{
		"",
		"Please wait.",
		"Yes.",
		"Step 1: pay the fee.",
		"Yes, step 1: pay the ₱500 fee.",
		fullMarksResponse(),
	}

	grid := map[float64]bool{0: true, 0.2: true, 0.4: true, 0.6: true, 0.8: true, 1.0: true}
	for _, response := range responses {
		score, err := scorer.Score(context.Background(), response)
		require.NoError(t, err)
		assert.True(t, grid[score], "score %v for %q not on the 0.2 grid", score, response)
	}
}

func TestQualityScorerEvaluate(t *testing.T) {
	scorer, err := NewQualityScorer("support-quality", DefaultQualityConfig())
	require.NoError(t, err)

	ind := scorer.Evaluate("Yes, option 2 is free of any fee.")
	assert.True(t, ind.Structure)
	assert.False(t, ind.Detail)
	assert.True(t, ind.Positive)
	assert.False(t, ind.Contact)
	assert.True(t, ind.Cost)
	assert.Equal(t, 3, ind.Hits())
}

func TestQualityScorerUnmarshalParameters(t *testing.T) {
	scorer, err := NewQualityScorer("support-quality", DefaultQualityConfig())
	require.NoError(t, err)

	tests := []struct {
		name          string
		yamlConfig    string
		expectedError string
	}{
		{
			name: "valid custom rubric",
			yamlConfig: `
structure_tokens: ["paso"]
detail_min_chars: 150
positive_tokens: ["oo"]
contact_tokens: ["tawag"]
cost_tokens: ["piso"]
`,
		},
		{
			name: "missing token set fails validation",
			yamlConfig: `
structure_tokens: []
detail_min_chars: 150
positive_tokens: ["oo"]
contact_tokens: ["tawag"]
cost_tokens: ["piso"]
`,
			expectedError: "parameter validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var node yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.yamlConfig), &node))

			err := scorer.UnmarshalParameters(*node.Content[0])
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}
}
