// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package models

import (
	"context"
	"log/slog"

	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// MediaClient is the placeholder for the unified language+vision model.
// No backend integration exists yet, so Generate always returns a stub,
// whether or not an API key is set.
type MediaClient struct {
	APIKey string
	Model  string
	Logger *slog.Logger
}

// NewMedia returns a MediaClient for cfg.
func NewMedia(cfg types.ModelConfig, logger *slog.Logger) *MediaClient {
	return &MediaClient{APIKey: cfg.APIKey, Model: cfg.Model, Logger: logger}
}

// Name returns the model identifier.
func (c *MediaClient) Name() string { return c.Model }

// Generate returns the stub response.
func (c *MediaClient) Generate(_ context.Context, prompt types.Prompt, _ types.Options) (string, error) {
	return stub(c.Logger, "ulm", c.Model, "backend not implemented", prompt), nil
}
