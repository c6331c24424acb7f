package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/credeq/credeq/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL = "http://localhost:11434/api"
	defaultTimeout = 30 * time.Second
)

// ollamaRequest mirrors the Ollama generate/embeddings request schema.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	// Temperature 0 forces greedy decoding for reproducible extraction.
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL points the client at an Ollama-compatible API.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMaxConcurrent bounds in-flight calls against the model API.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		c.gate = newGate(n)
	}
}

// Client talks to a local Ollama server. It implements both Embedder
// and Generator and is safe for concurrent use.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	embedModel    string
	generateModel string
	gate          *gate
}

// NewClient creates a model client for the given model names.
func NewClient(embedModel, generateModel string, opts ...Option) *Client {
	c := &Client{
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		embedModel:    embedModel,
		generateModel: generateModel,
		gate:          newGate(4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := c.gate.acquire(ctx); err != nil {
		return nil, fmt.Errorf("acquire model slot: %w", err)
	}
	defer c.gate.release()

	start := time.Now()
	body, err := c.post(ctx, "/embeddings", ollamaRequest{
		Model:  c.embedModel,
		Prompt: text,
	})
	metrics.RecordModelCallLatency("embed", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordModelCallError("embed")
		return nil, err
	}

	var resp embeddingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.RecordModelCallError("embed")
		return nil, fmt.Errorf("parse embeddings response: %w", err)
	}
	return resp.Embedding, nil
}

// Generate returns a bounded greedy completion for prompt.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := c.gate.acquire(ctx); err != nil {
		return "", fmt.Errorf("acquire model slot: %w", err)
	}
	defer c.gate.release()

	start := time.Now()
	body, err := c.post(ctx, "/generate", ollamaRequest{
		Model:  c.generateModel,
		Prompt: prompt,
		Options: ollamaOptions{
			Temperature: 0,
			NumPredict:  maxTokens,
		},
	})
	metrics.RecordModelCallLatency("generate", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordModelCallError("generate")
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.RecordModelCallError("generate")
		return "", fmt.Errorf("parse generate response: %w", err)
	}
	return resp.Response, nil
}

// post sends a non-streaming request to the Ollama API.
func (c *Client) post(ctx context.Context, endpoint string, req ollamaRequest) ([]byte, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model API error (status %d): %s", resp.StatusCode, body)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return respBody, nil
}
