// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package models wraps the generative backends behind one Client interface.
// Every variant falls back to a deterministic stub response when it has no
// credential, so the workflow can run end to end without network access.
package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// Client generates text from a prompt. Implementations make at most one
// backend call per Generate and never retry.
type Client interface {
	// Name returns the model identifier the client is bound to.
	Name() string

	Generate(ctx context.Context, prompt types.Prompt, opts types.Options) (string, error)
}

// ErrBackend marks failures of a real (non-stub) backend call.
var ErrBackend = errors.New("model backend error")

// BackendError wraps a failed backend call with the backend and model it
// targeted. errors.Is(err, ErrBackend) reports true for any BackendError.
type BackendError struct {
	Backend string
	Model   string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend (model %s): %v", e.Backend, e.Model, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

const (
	// StubPrefix starts every stub response.
	StubPrefix = "[STUB] Model:"

	// stubPromptLimit is the number of prompt characters a stub echoes back.
	stubPromptLimit = 100

	reasonNoKey = "no API key configured"
)

// Stub returns the placeholder response for model and prompt. It embeds the
// model identifier and the first 100 characters of the prompt's string form.
func Stub(model string, prompt types.Prompt) string {
	return fmt.Sprintf("%s %s\nPrompt (truncated): %s", StubPrefix, model, truncate(prompt.String(), stubPromptLimit))
}

// IsStub reports whether text is a stub response.
func IsStub(text string) bool {
	return strings.HasPrefix(text, StubPrefix)
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// stub logs the fallback and returns the stub response.
func stub(logger *slog.Logger, backend, model, reason string, prompt types.Prompt) string {
	loggerOrDefault(logger).Warn("returning stub response",
		"backend", backend, "model", model, "reason", reason)
	return Stub(model, prompt)
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// ParseOptions builds Options from a loosely typed map. The recognized keys
// are "temperature" and "max_tokens"; anything else is ignored, as are values
// that cannot be read as numbers.
func ParseOptions(m map[string]any) types.Options {
	opts := types.DefaultOptions()
	if v, ok := toFloat(m["temperature"]); ok {
		opts.Temperature = v
	}
	if v, ok := toFloat(m["max_tokens"]); ok {
		opts.MaxTokens = int(v)
	}
	return opts
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// withDefaults fills zero-valued options.
func withDefaults(opts types.Options) types.Options {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = types.DefaultMaxTokens
	}
	return opts
}
