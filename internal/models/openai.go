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

// openAIAPIURL is the Chat Completions endpoint. Package-level var for test substitution.
var openAIAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIClient sends chat-style messages to the OpenAI Chat Completions API.
// A plain prompt is sent as one user message.
type OpenAIClient struct {
	APIKey string
	Model  string
	Client *http.Client
	Logger *slog.Logger
}

// NewOpenAI returns an OpenAIClient for cfg. client may be nil.
func NewOpenAI(cfg types.ModelConfig, client *http.Client, logger *slog.Logger) *OpenAIClient {
	return &OpenAIClient{APIKey: cfg.APIKey, Model: cfg.Model, Client: client, Logger: logger}
}

type chatRequest struct {
	Model       string          `json:"model"`
	Messages    []types.Message `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// chatMessage keeps Content as a pointer so a missing field is detectable.
type chatMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// Name returns the model identifier.
func (c *OpenAIClient) Name() string { return c.Model }

// Generate returns choices[0].message.content, or a stub when no API key is
// configured.
func (c *OpenAIClient) Generate(ctx context.Context, prompt types.Prompt, opts types.Options) (string, error) {
	if c.APIKey == "" {
		return stub(c.Logger, "openai", c.Model, reasonNoKey, prompt), nil
	}
	opts = withDefaults(opts)

	messages := prompt.Messages
	if !prompt.IsChat() {
		messages = []types.Message{{Role: types.RoleUser, Content: prompt.Text}}
	}

	reqBody := chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.APIKey}

	var resp chatResponse
	if err := httputil.PostJSON(ctx, c.Client, openAIAPIURL, headers, reqBody, &resp); err != nil {
		return "", c.fail(err)
	}

	if len(resp.Choices) == 0 {
		return "", c.fail(errors.New("response has no choices"))
	}
	if resp.Choices[0].Message == nil {
		return "", c.fail(errors.New("first choice has no message"))
	}
	if resp.Choices[0].Message.Content == nil {
		return "", c.fail(errors.New("first choice message has no content"))
	}
	return *resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) fail(err error) error {
	return &BackendError{Backend: "openai", Model: c.Model, Err: err}
}
