// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads model API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Recognized key files: anthropic-api-key, openai-api-key, ulm-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// Key file names.
const (
	AnthropicAPIKey = "anthropic-api-key"
	OpenAIAPIKey    = "openai-api-key"
	ULMAPIKey       = "ulm-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Fill copies API keys from secrets into cfg for every backend whose key is
// still empty. Keys already set (from the environment or a config file) win.
func Fill(cfg *types.Config, secrets map[string]string) {
	fill(&cfg.Claude.APIKey, secrets[AnthropicAPIKey])
	fill(&cfg.OpenAI.APIKey, secrets[OpenAIAPIKey])
	fill(&cfg.ULM.APIKey, secrets[ULMAPIKey])
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
