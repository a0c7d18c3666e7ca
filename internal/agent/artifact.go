package agent

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flightline-ai/supportbench/internal/domain"
)

// Artifact is the saved output of an external prompt optimization run:
// the tuned instructions plus the demonstrations the optimizer selected.
type Artifact struct {
	// Instructions is the optimized preamble.
	Instructions string `json:"instructions"`

	// Demos are the selected few-shot demonstrations.
	Demos []domain.Example `json:"demos"`

	// Model records which model the artifact was optimized for.
	Model string `json:"model,omitempty"`

	// Optimizer names the procedure that produced the artifact.
	Optimizer string `json:"optimizer,omitempty"`
}

// LoadArtifact reads an optimization artifact from a JSON file.
func LoadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read agent artifact: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return Artifact{}, fmt.Errorf("failed to parse agent artifact: %w", err)
	}
	if artifact.Instructions == "" {
		return Artifact{}, fmt.Errorf("agent artifact %s has no instructions", path)
	}
	return artifact, nil
}

// SaveArtifact writes an artifact to path as indented JSON.
func SaveArtifact(path string, artifact Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal agent artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write agent artifact: %w", err)
	}
	return nil
}

// ConfigFromArtifact builds an agent Config from an optimization
// artifact, starting from the default generation parameters.
func ConfigFromArtifact(artifact Artifact) Config {
	config := DefaultConfig()
	config.Instructions = artifact.Instructions
	config.Demos = artifact.Demos
	return config
}
