// Package tracking provides a read-only client for an MLflow tracking
// server. The dashboard uses it to surface optimization experiments and
// runs recorded by the offline optimization pipeline.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds tracking server requests when none is configured.
const DefaultTimeout = 10 * time.Second

// maxResults caps search responses; the dashboard shows recent entries only.
const maxResults = 100

// ErrUnavailable indicates the tracking server could not be reached or
// reported itself unhealthy.
var ErrUnavailable = errors.New("tracking server unavailable")

// Experiment is an MLflow experiment as returned by experiments/search.
type Experiment struct {
	ExperimentID   string `json:"experiment_id"`
	Name           string `json:"name"`
	LifecycleStage string `json:"lifecycle_stage"`
	CreationTime   int64  `json:"creation_time"`
	LastUpdateTime int64  `json:"last_update_time"`
}

// Metric is a single logged metric value.
type Metric struct {
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
	Step      int64   `json:"step"`
}

// Param is a single logged parameter.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Run is an MLflow run with its info and logged data flattened.
type Run struct {
	RunID     string   `json:"run_id"`
	RunName   string   `json:"run_name"`
	Status    string   `json:"status"`
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
	Metrics   []Metric `json:"metrics"`
	Params    []Param  `json:"params"`
}

// Client is a read-only MLflow REST client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a tracking client for the given base URL, for example
// http://localhost:5000. A non-positive timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid tracking URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("tracking URL scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("tracking URL must include a host")
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the configured tracking server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health checks the tracking server's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// SearchExperiments lists active experiments on the tracking server.
func (c *Client) SearchExperiments(ctx context.Context) ([]Experiment, error) {
	endpoint := fmt.Sprintf("%s/api/2.0/mlflow/experiments/search?max_results=%d", c.baseURL, maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building experiments request: %w", err)
	}

	var payload struct {
		Experiments []Experiment `json:"experiments"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("searching experiments: %w", err)
	}
	return payload.Experiments, nil
}

// SearchRuns lists runs recorded under the given experiment.
func (c *Client) SearchRuns(ctx context.Context, experimentID string) ([]Run, error) {
	if experimentID == "" {
		return nil, fmt.Errorf("experiment ID cannot be empty")
	}

	body, err := json.Marshal(map[string]any{
		"experiment_ids": []string{experimentID},
		"max_results":    maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding runs request: %w", err)
	}

	endpoint := c.baseURL + "/api/2.0/mlflow/runs/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building runs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Runs []struct {
			Info struct {
				RunID     string `json:"run_id"`
				RunName   string `json:"run_name"`
				Status    string `json:"status"`
				StartTime int64  `json:"start_time"`
				EndTime   int64  `json:"end_time"`
			} `json:"info"`
			Data struct {
				Metrics []Metric `json:"metrics"`
				Params  []Param  `json:"params"`
			} `json:"data"`
		} `json:"runs"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}

	runs := make([]Run, 0, len(payload.Runs))
	for _, r := range payload.Runs {
		runs = append(runs, Run{
			RunID:     r.Info.RunID,
			RunName:   r.Info.RunName,
			Status:    r.Info.Status,
			StartTime: r.Info.StartTime,
			EndTime:   r.Info.EndTime,
			Metrics:   r.Data.Metrics,
			Params:    r.Data.Params,
		})
	}
	return runs, nil
}

// do executes the request and decodes a JSON response into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
