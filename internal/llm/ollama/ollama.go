// Package ollama is a generation client for an Ollama-compatible chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Default configuration values.
const (
	DefaultURL     = "http://localhost:11434/api/chat"
	DefaultModel   = "llama3:latest"
	DefaultTimeout = 120 * time.Second
)

const systemPrompt = "You are a helpful assistant for a fixed set of documents. " +
	"You MUST answer strictly and only using the information in the provided CONTEXT. " +
	"If the answer is not explicitly in the context, you MUST reply: " +
	"\"I am not sure; the documents I have do not say that clearly.\" " +
	"Do NOT invent facts. Do not use outside knowledge. " +
	"Be clear, concise, and friendly."

// Client calls the chat endpoint with strict grounding instructions.
type Client struct {
	url    string
	model  string
	client *http.Client
}

// Config configures the generation client.
type Config struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// NewClient creates a generation client, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		url:    cfg.URL,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate asks the backend to answer question using only docContext.
// Transport failures, non-2xx statuses, timeouts and malformed bodies all
// surface as a plain error; the caller treats them uniformly.
func (c *Client) Generate(ctx context.Context, question, docContext string) (string, error) {
	userPrompt := fmt.Sprintf(
		"QUESTION:\n%s\n\nCONTEXT (from the documents):\n%s\n\n"+
			"Now give a clear, friendly answer using only this context. "+
			"If the context does not contain the answer, say you are not sure.",
		question, docContext,
	)

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("generation backend returned %s", resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("generation backend returned no content")
	}
	return chatResp.Message.Content, nil
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string { return c.model }
