// Package config loads and validates the application configuration from a
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/flightline-ai/supportbench/internal/domain"
)

var validate = validator.New()

// LLMConfig selects the provider and model used by the support agent.
type LLMConfig struct {
	// Provider names a registered LLM provider factory.
	Provider string `yaml:"provider" validate:"required,oneof=groq openai anthropic google"`

	// Model is the model identifier passed to the provider.
	Model string `yaml:"model" validate:"required"`

	// APIKey authenticates requests. Usually supplied through the
	// provider-specific environment variable rather than the file.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds individual LLM requests. Zero means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=0"`

	// RequestsPerSecond and Burst configure the rate-limit middleware.
	// Zero disables rate limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`

	// TokenEstimator selects the pre-request token counting strategy:
	// "simple" (character count, rounds up), "word", or "character".
	// Empty means simple.
	TokenEstimator string `yaml:"token_estimator" validate:"omitempty,oneof=simple word character"`
}

// AgentConfig controls the support agent's prompt assembly.
type AgentConfig struct {
	// ArtifactPath points at a saved optimized-agent artifact. When the
	// file is absent the agent runs with its unoptimized defaults.
	ArtifactPath string `yaml:"artifact_path"`

	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=1"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gte=0"`
}

// EvaluationConfig locates the evaluation inputs and outputs.
type EvaluationConfig struct {
	// DatasetPath is the line-delimited JSON evaluation set.
	DatasetPath string `yaml:"dataset_path" validate:"required"`

	// ResultsPath is where the results summary JSON is written and read.
	ResultsPath string `yaml:"results_path" validate:"required"`

	// Schedule is an optional cron expression for periodic re-evaluation
	// while serving. Empty disables the scheduler.
	Schedule string `yaml:"schedule"`

	// ScorerParams holds raw scorer parameters, decoded by the scorer's
	// own UnmarshalParameters.
	ScorerParams yaml.Node `yaml:"scorer"`
}

// TrackingConfig points at the experiment tracking server.
type TrackingConfig struct {
	// BaseURL of the MLflow tracking server. Empty disables the
	// tracking endpoints.
	BaseURL string `yaml:"base_url"`

	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gte=0"`
}

// RetrievalConfig configures the dictionary translator store.
type RetrievalConfig struct {
	// DictionaryPath is a line-delimited JSON dictionary file. Empty
	// disables the translator.
	DictionaryPath string `yaml:"dictionary_path"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Config is the root application configuration.
type Config struct {
	LLM        LLMConfig                  `yaml:"llm"`
	Agent      AgentConfig                `yaml:"agent"`
	Evaluation EvaluationConfig           `yaml:"evaluation"`
	Business   domain.BusinessAssumptions `yaml:"business"`
	Tracking   TrackingConfig             `yaml:"tracking"`
	Retrieval  RetrievalConfig            `yaml:"retrieval"`
	Server     ServerConfig               `yaml:"server"`
}

// Default returns the configuration used when no file or overrides are
// present, matching the demo deployment.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:          "groq",
			Model:             "llama-3.1-8b-instant",
			TimeoutSeconds:    60,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Agent: AgentConfig{
			ArtifactPath: "optimized_agent.json",
			Temperature:  0.3,
			MaxTokens:    800,
		},
		Evaluation: EvaluationConfig{
			DatasetPath: "data/valset.jsonl",
			ResultsPath: "optimization_results.json",
		},
		Business: domain.DefaultBusinessAssumptions(),
		Tracking: TrackingConfig{
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// apiKeyEnv maps each provider to its conventional API key variable.
var apiKeyEnv = map[string]string{
	"groq":      "GROQ_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"google":    "GOOGLE_API_KEY",
}

// Load reads configuration from the given YAML file, applies environment
// overrides, and validates the result. An empty path falls back to the
// CONFIG_PATH variable and then to config.yaml; a missing file is not an
// error, the defaults apply.
func Load(path string) (Config, error) {
	cfg, err := load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOffline is Load without the API key requirement, for commands
// that never call the LLM provider.
func LoadOffline(path string) (Config, error) {
	cfg, err := load(path)
	if err != nil {
		return Config{}, err
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	envOverride(&cfg.LLM.Provider, "LLM_PROVIDER")
	envOverride(&cfg.LLM.Model, "LLM_MODEL")
	envOverride(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	envOverride(&cfg.LLM.TokenEstimator, "LLM_TOKEN_ESTIMATOR")
	envOverride(&cfg.Evaluation.DatasetPath, "DATASET_PATH")
	envOverride(&cfg.Evaluation.ResultsPath, "RESULTS_PATH")
	envOverride(&cfg.Evaluation.Schedule, "EVAL_SCHEDULE")
	envOverride(&cfg.Agent.ArtifactPath, "ARTIFACT_PATH")
	envOverride(&cfg.Tracking.BaseURL, "MLFLOW_TRACKING_URI")
	envOverride(&cfg.Retrieval.DictionaryPath, "DICTIONARY_PATH")
	envOverride(&cfg.Server.Addr, "SERVER_ADDR")
	envOverrideInt(&cfg.LLM.TimeoutSeconds, "LLM_TIMEOUT_SECONDS")

	envOverride(&cfg.LLM.APIKey, "LLM_API_KEY")
	if cfg.LLM.APIKey == "" {
		if envKey, ok := apiKeyEnv[cfg.LLM.Provider]; ok {
			envOverride(&cfg.LLM.APIKey, envKey)
		}
	}
}

// Validate checks structural constraints and the presence of the API key.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.LLM.APIKey == "" {
		envKey := apiKeyEnv[c.LLM.Provider]
		return domain.NewConfigurationError("llm.api_key",
			fmt.Sprintf("no API key configured; set %s or llm.api_key", envKey))
	}
	return nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			*field = parsed
		}
	}
}
