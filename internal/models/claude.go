// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package models

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pdiddy/prompt-workstation/internal/httputil"
	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const anthropicVersion = "2023-06-01"

// ClaudeClient sends a single prompt string to the Claude Messages API.
// Structured prompts are flattened to their string form.
type ClaudeClient struct {
	APIKey string
	Model  string
	Client *http.Client
	Logger *slog.Logger
}

// NewClaude returns a ClaudeClient for cfg. client may be nil.
func NewClaude(cfg types.ModelConfig, client *http.Client, logger *slog.Logger) *ClaudeClient {
	return &ClaudeClient{APIKey: cfg.APIKey, Model: cfg.Model, Client: client, Logger: logger}
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string  `json:"type"`
	Text *string `json:"text"`
}

// Name returns the model identifier.
func (c *ClaudeClient) Name() string { return c.Model }

// Generate returns the first text block of the Claude response, or a stub
// when no API key is configured.
func (c *ClaudeClient) Generate(ctx context.Context, prompt types.Prompt, opts types.Options) (string, error) {
	if c.APIKey == "" {
		return stub(c.Logger, "claude", c.Model, reasonNoKey, prompt), nil
	}
	opts = withDefaults(opts)

	reqBody := claudeRequest{
		Model:       c.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Messages: []claudeMessage{
			{Role: string(types.RoleUser), Content: prompt.String()},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": anthropicVersion,
	}

	var resp claudeResponse
	if err := httputil.PostJSON(ctx, c.Client, claudeAPIURL, headers, reqBody, &resp); err != nil {
		return "", c.fail(err)
	}

	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		if block.Text == nil {
			return "", c.fail(errors.New("text block has no text"))
		}
		return *block.Text, nil
	}
	if len(resp.Content) == 0 {
		return "", c.fail(errors.New("response has no content"))
	}
	return "", c.fail(errors.New("no text content in response"))
}

func (c *ClaudeClient) fail(err error) error {
	return &BackendError{Backend: "claude", Model: c.Model, Err: err}
}
