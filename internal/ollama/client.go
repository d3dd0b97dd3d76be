package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/innerlog/sift/pkg/sift/sentiment"
)

// Client talks to an Ollama-style endpoint for the optional enrichment
// passes. Every caller treats it as best-effort: probe Available first, and
// on any failure fall back to the deterministic local path.
type Client struct {
	BaseURL    string // defaults to http://localhost:11434
	Model      string // generation model, defaults to gemma3:1b
	EmbedModel string // embedding model, defaults to nomic-embed-text

	HTTPClient *http.Client
}

const (
	defaultBaseURL    = "http://localhost:11434"
	defaultModel      = "gemma3:1b"
	defaultEmbedModel = "nomic-embed-text"

	probeTimeout      = 2 * time.Second
	classifyTimeout   = 10 * time.Second
	distortionTimeout = 8 * time.Second
)

// Available probes the endpoint with a short liveness check. It never blocks
// longer than the probe timeout.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// GenerateOptions tune a single-shot generation call.
type GenerateOptions struct {
	Temperature float64
	NumPredict  int
	Timeout     time.Duration
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate runs a single non-streaming completion and returns the raw
// response text.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = classifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  c.model(),
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.NumPredict,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ollama: generate http %d", resp.StatusCode)
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", fmt.Errorf("ollama: %s", payload.Error)
	}
	return payload.Response, nil
}

// Classify asks the model for a single-word sentiment label. The response is
// parsed defensively by substring; anything unrecognizable is NEUTRAL rather
// than an error, since the model occasionally pads its answer.
func (c *Client) Classify(ctx context.Context, text string) (sentiment.Label, error) {
	prompt := fmt.Sprintf(`Analyze the sentiment of this text and respond with ONLY one word: POSITIVE, NEGATIVE, or NEUTRAL.

Text: %q

Sentiment:`, text)

	response, err := c.Generate(ctx, prompt, GenerateOptions{
		Temperature: 0.1,
		NumPredict:  10,
		Timeout:     classifyTimeout,
	})
	if err != nil {
		return sentiment.Neutral, err
	}

	answer := strings.ToUpper(strings.TrimSpace(response))
	switch {
	case strings.Contains(answer, "POSITIVE"):
		return sentiment.Positive, nil
	case strings.Contains(answer, "NEGATIVE"):
		return sentiment.Negative, nil
	default:
		return sentiment.Neutral, nil
	}
}

// SuggestDistortions asks the model to name applicable cognitive distortions
// from the closed list. The raw free-text answer is returned for the detector
// to parse.
func (c *Client) SuggestDistortions(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Analyze this journal entry for cognitive distortions. List any you find from: all-or-nothing, overgeneralization, catastrophizing, should-statements, emotional-reasoning.

Text: %q

List the distortions found (comma-separated) or "none":`, text)

	return c.Generate(ctx, prompt, GenerateOptions{
		Temperature: 0.2,
		NumPredict:  50,
		Timeout:     distortionTimeout,
	})
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
	Error     string    `json:"error"`
}

// Embed returns the embedding vector for text. Unlike the classification
// paths this fails loudly: there is no local fallback for embeddings, so the
// caller decides how to degrade.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(embedRequest{Model: c.embedModel(), Prompt: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ollama: embeddings http %d", resp.StatusCode)
	}

	var payload embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("ollama: %s", payload.Error)
	}
	if len(payload.Embedding) == 0 {
		return nil, fmt.Errorf("ollama: empty embedding response")
	}
	return payload.Embedding, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return defaultBaseURL
}

func (c *Client) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModel
}

func (c *Client) embedModel() string {
	if c.EmbedModel != "" {
		return c.EmbedModel
	}
	return defaultEmbedModel
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}
