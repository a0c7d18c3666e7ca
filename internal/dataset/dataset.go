// Package dataset loads support-ticket evaluation datasets from
// line-delimited JSON files. Each line is one JSON object with a
// required customer_query field and an optional resolution field.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flightline-ai/supportbench/internal/domain"
)

// Scanner buffer sized for long resolution texts; a single example line
// must fit in memory.
const maxLineBytes = 1 << 20

// FormatError reports a malformed dataset line. Loading stops at the
// first malformed line; a partially loaded dataset is never returned.
type FormatError struct {
	// Path is the dataset file being loaded.
	Path string

	// Line is the 1-based line number of the malformed record.
	Line int

	// Err is the underlying JSON or validation failure.
	Err error
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset format error: file=%s, line=%d, err=%v", e.Path, e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error { return e.Err }

// Load reads every example from a line-delimited JSON file.
// Blank lines are skipped. A line that is not valid JSON or is missing
// the customer_query field fails the whole load with a *FormatError.
func Load(path string) ([]domain.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	examples, err := Read(f, path)
	if err != nil {
		return nil, err
	}
	return examples, nil
}

// Read parses line-delimited examples from r. The name parameter is
// used in error messages only.
func Read(r io.Reader, name string) ([]domain.Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var examples []domain.Example
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var ex domain.Example
		if err := json.Unmarshal([]byte(text), &ex); err != nil {
			return nil, &FormatError{Path: name, Line: line, Err: err}
		}
		if strings.TrimSpace(ex.Query) == "" {
			return nil, &FormatError{Path: name, Line: line, Err: fmt.Errorf("missing customer_query")}
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}
	return examples, nil
}

// Write serializes examples as line-delimited JSON to w, one object per
// line, in order.
func Write(w io.Writer, examples []domain.Example) error {
	enc := json.NewEncoder(w)
	for i, ex := range examples {
		if err := enc.Encode(ex); err != nil {
			return fmt.Errorf("failed to encode example %d: %w", i, err)
		}
	}
	return nil
}

// Save writes examples to path as line-delimited JSON.
func Save(path string, examples []domain.Example) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	if err := Write(f, examples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
