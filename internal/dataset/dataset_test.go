package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightline-ai/supportbench/internal/domain"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		want          []domain.Example
		expectedError string
		wantLine      int
	}{
		{
			name: "valid dataset with answers",
			input: `{"customer_query": "How do I check in online?", "resolution": "Step 1: Open the app."}
{"customer_query": "Baggage fee for 25kg?", "resolution": "PHP 950 prepaid."}`,
			want: []domain.Example{
				{Query: "How do I check in online?", Answer: "Step 1: Open the app."},
				{Query: "Baggage fee for 25kg?", Answer: "PHP 950 prepaid."},
			},
		},
		{
			name:  "resolution is optional",
			input: `{"customer_query": "Can I bring a cat on board?"}`,
			want:  []domain.Example{{Query: "Can I bring a cat on board?"}},
		},
		{
			name: "blank lines are skipped",
			input: `{"customer_query": "a"}

{"customer_query": "b"}
`,
			want: []domain.Example{{Query: "a"}, {Query: "b"}},
		},
		{
			name:          "malformed JSON fails the load",
			input:         `{"customer_query": "ok"}` + "\n" + `{"customer_query": `,
			expectedError: "dataset format error",
			wantLine:      2,
		},
		{
			name:          "missing customer_query fails the load",
			input:         `{"resolution": "orphaned answer"}`,
			expectedError: "missing customer_query",
			wantLine:      1,
		},
		{
			name:          "whitespace-only query is rejected",
			input:         `{"customer_query": "   "}`,
			expectedError: "missing customer_query",
			wantLine:      1,
		},
		{
			name:  "empty file yields no examples",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), "tickets.jsonl")

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)

				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, "tickets.jsonl", formatErr.Path)
				assert.Equal(t, tt.wantLine, formatErr.Line)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	examples := []domain.Example{
		{Query: "Flight delayed, what now?", Answer: "Option 1: rebook for free."},
		{Query: "Refund timeline?", Answer: "7 business days."},
	}

	path := filepath.Join(t.TempDir(), "tickets.jsonl")
	require.NoError(t, Save(path, examples))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, examples, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWritePreservesOrder(t *testing.T) {
	examples := []domain.Example{{Query: "first"}, {Query: "second"}, {Query: "third"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, examples))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[2], "third")
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name     string
		examples []domain.Example
		want     Statistics
	}{
		{
			name: "empty dataset",
			want: Statistics{},
		},
		{
			name: "mixed answers",
			examples: []domain.Example{
				{Query: "abcd", Answer: "12"},
				{Query: "ab"},
				{Query: "abcdef", Answer: "123456"},
			},
			want: Statistics{
				Count:          3,
				WithAnswers:    2,
				MinQueryChars:  2,
				MaxQueryChars:  6,
				AvgQueryChars:  4,
				MinAnswerChars: 2,
				MaxAnswerChars: 6,
				AvgAnswerChars: 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatistics(tt.examples))
		})
	}
}
