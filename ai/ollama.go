// ABOUTME: HTTP client for the local Ollama text-generation service
// ABOUTME: Wraps /api/generate and /api/tags with a timeout client
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultEndpoint = "http://localhost:11434"
	defaultModel    = "llama3.2"
)

// Client talks to a local Ollama server. Failures are expected and every
// caller degrades to a deterministic local response.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewClient creates an Ollama client. Empty arguments fall back to the
// STAKEHOLDR_OLLAMA_HOST / STAKEHOLDR_MODEL environment variables, then to
// localhost defaults.
func NewClient(endpoint, model string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("STAKEHOLDR_OLLAMA_HOST")
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = os.Getenv("STAKEHOLDR_MODEL")
	}
	if model == "" {
		model = defaultModel
	}

	return &Client{
		endpoint: endpoint,
		model:    model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// DefaultModel returns the model used when a request does not name one.
func (c *Client) DefaultModel() string {
	return c.model
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate requests a single non-streamed completion. One attempt, no retry.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = c.model
	}

	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Response, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the models the server has available.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var result tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		names = append(names, m.Name)
	}

	return names, nil
}

// CheckConnection reports whether the server answers at all.
func (c *Client) CheckConnection(ctx context.Context) bool {
	_, err := c.ListModels(ctx)
	return err == nil
}
