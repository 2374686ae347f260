// Package genai is a thin text-generation client over an OpenAI-compatible
// chat completions endpoint (Gemini by default).
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

var (
	ErrNotConfigured = errors.New("genai: api key not configured")
	ErrEmptyResponse = errors.New("genai: empty response")
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New always returns a client; without an API key every call fails with
// ErrNotConfigured.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{model: cfg.Model, timeout: cfg.Timeout}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return c
	}

	apiCfg := openai.DefaultConfig(apiKey)
	apiCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	c.api = openai.NewClientWithConfig(apiCfg)
	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Generate sends a single user prompt and returns the trimmed reply, which may
// be empty. A response without choices is ErrEmptyResponse. There is no retry.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("genai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
