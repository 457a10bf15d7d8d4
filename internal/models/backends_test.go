// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package models

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// withURL points *target at a test server for the duration of the test.
func withURL(t *testing.T, target *string, h http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	old := *target
	*target = ts.URL
	t.Cleanup(func() {
		*target = old
		ts.Close()
	})
	return ts, &calls
}

func TestClaudeGenerate_Success(t *testing.T) {
	var got claudeRequest
	ts, calls := withURL(t, &claudeAPIURL, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content":[{"type":"tool_use"},{"type":"text","text":"- feature one"}]}`))
	})

	c := NewClaude(types.ModelConfig{Model: "claude-test", APIKey: "sk-test"}, ts.Client(), discardLogger())
	text, err := c.Generate(context.Background(), types.TextPrompt("gather requirements"), types.Options{Temperature: 0.3, MaxTokens: 100})
	require.NoError(t, err)

	assert.Equal(t, "- feature one", text)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	assert.Equal(t, []claudeMessage{{Role: "user", Content: "gather requirements"}}, got.Messages)
}

func TestClaudeGenerate_DefaultsMaxTokens(t *testing.T) {
	var got claudeRequest
	ts, _ := withURL(t, &claudeAPIURL, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	c := NewClaude(types.ModelConfig{Model: "m", APIKey: "k"}, ts.Client(), discardLogger())
	_, err := c.Generate(context.Background(), types.TextPrompt("p"), types.Options{})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultMaxTokens, got.MaxTokens)
}

func TestClaudeGenerate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errText string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, errText: "HTTP 500"},
		{name: "malformed json", status: http.StatusOK, body: `{"content":`, errText: "decoding response"},
		{name: "missing content", status: http.StatusOK, body: `{}`, errText: "no content"},
		{name: "no text block", status: http.StatusOK, body: `{"content":[{"type":"image"}]}`, errText: "no text content"},
		{name: "text block without text", status: http.StatusOK, body: `{"content":[{"type":"text"}]}`, errText: "text block has no text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := withURL(t, &claudeAPIURL, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			c := NewClaude(types.ModelConfig{Model: "m", APIKey: "k"}, ts.Client(), discardLogger())
			_, err := c.Generate(context.Background(), types.TextPrompt("p"), types.DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBackend)
			assert.Contains(t, err.Error(), tt.errText)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "no retry")
		})
	}
}

func TestClaudeGenerate_StubWithoutKey(t *testing.T) {
	_, calls := withURL(t, &claudeAPIURL, func(w http.ResponseWriter, _ *http.Request) {})

	c := NewClaude(types.ModelConfig{Model: "claude-3-sonnet-20240229"}, nil, discardLogger())
	text, err := c.Generate(context.Background(), types.TextPrompt("prompt body"), types.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, IsStub(text))
	assert.Contains(t, text, "claude-3-sonnet-20240229")
	assert.Contains(t, text, "prompt body")
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestOpenAIGenerate_ChatPromptSentAsIs(t *testing.T) {
	var got chatRequest
	ts, _ := withURL(t, &openAIAPIURL, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-oa", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"# Spec"}}]}`))
	})

	prompt := types.ChatPrompt(
		types.Message{Role: types.RoleSystem, Content: "be a writer"},
		types.Message{Role: types.RoleUser, Content: "requirements"},
	)
	c := NewOpenAI(types.ModelConfig{Model: "gpt-test", APIKey: "sk-oa"}, ts.Client(), discardLogger())
	text, err := c.Generate(context.Background(), prompt, types.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "# Spec", text)
	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, prompt.Messages, got.Messages)
	assert.Equal(t, 2048, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
}

func TestOpenAIGenerate_TextPromptWrapped(t *testing.T) {
	var got chatRequest
	ts, _ := withURL(t, &openAIAPIURL, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	})

	c := NewOpenAI(types.ModelConfig{Model: "m", APIKey: "k"}, ts.Client(), discardLogger())
	_, err := c.Generate(context.Background(), types.TextPrompt("hello"), types.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []types.Message{{Role: types.RoleUser, Content: "hello"}}, got.Messages)
}

func TestOpenAIGenerate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errText string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `bad key`, errText: "HTTP 401"},
		{name: "malformed json", status: http.StatusOK, body: `[`, errText: "decoding response"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, errText: "no choices"},
		{name: "choice without message", status: http.StatusOK, body: `{"choices":[{}]}`, errText: "no message"},
		{name: "message without content", status: http.StatusOK, body: `{"choices":[{"message":{"role":"assistant"}}]}`, errText: "has no content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := withURL(t, &openAIAPIURL, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			c := NewOpenAI(types.ModelConfig{Model: "m", APIKey: "k"}, ts.Client(), discardLogger())
			_, err := c.Generate(context.Background(), types.TextPrompt("p"), types.DefaultOptions())
			require.Error(t, err)

			var be *BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, "openai", be.Backend)
			assert.Contains(t, err.Error(), tt.errText)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		})
	}
}

func TestOpenAIGenerate_StubWithoutKey(t *testing.T) {
	_, calls := withURL(t, &openAIAPIURL, func(w http.ResponseWriter, _ *http.Request) {})

	c := NewOpenAI(types.ModelConfig{Model: "gpt-4o-preview"}, nil, discardLogger())
	text, err := c.Generate(context.Background(), types.ChatPrompt(types.Message{Role: types.RoleUser, Content: "x"}), types.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "[STUB] Model: gpt-4o-preview\nPrompt (truncated): user: x", text)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}
