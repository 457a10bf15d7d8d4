package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/prompt-workstation/internal/models"
	"github.com/pdiddy/prompt-workstation/pkg/types"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"claude.api_key":  "CLAUDE_API_KEY",
	"claude.model":    "CLAUDE_MODEL",
	"openai.api_key":  "OPENAI_API_KEY",
	"openai.model":    "OPENAI_MODEL",
	"ulm.api_key":     "ULM_API_KEY",
	"ulm.model":       "ULM_MODEL",
	"output_dir":      "WORKSTATION_OUTPUT_DIR",
	"templates_dir":   "WORKSTATION_TEMPLATES_DIR",
	"git_commit":      "WORKSTATION_GIT_COMMIT",
	"request_timeout": "WORKSTATION_REQUEST_TIMEOUT",
	"log.level":       "WORKSTATION_LOG_LEVEL",
	"log.format":      "WORKSTATION_LOG_FORMAT",
}

// flagBindings maps config keys to persistent flag names.
var flagBindings = map[string]string{
	"output_dir":    "output-dir",
	"templates_dir": "templates-dir",
	"git_commit":    "git-commit",
	"log.level":     "log-level",
	"log.format":    "log-format",
}

// bindFlags wires environment variables, flags, and defaults into v.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	def := types.DefaultConfig()
	v.SetDefault("claude.model", def.Claude.Model)
	v.SetDefault("openai.model", def.OpenAI.Model)
	v.SetDefault("ulm.model", def.ULM.Model)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("templates_dir", def.TemplatesDir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	if flags == nil {
		return
	}
	for key, name := range flagBindings {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// loadConfig reads the resolved settings from v into an immutable Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	c := types.Config{
		Claude: types.ModelConfig{
			Model:  v.GetString("claude.model"),
			APIKey: v.GetString("claude.api_key"),
		},
		OpenAI: types.ModelConfig{
			Model:  v.GetString("openai.model"),
			APIKey: v.GetString("openai.api_key"),
		},
		ULM: types.ModelConfig{
			Model:  v.GetString("ulm.model"),
			APIKey: v.GetString("ulm.api_key"),
		},
		OutputDir:    v.GetString("output_dir"),
		TemplatesDir: v.GetString("templates_dir"),
		GitCommit:    parseBool(v.GetString("git_commit")),
		Generation:   models.ParseOptions(v.GetStringMap("generation")),
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if raw := strings.TrimSpace(v.GetString("request_timeout")); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return types.Config{}, err
		}
		c.Timeout = d
	}
	if c.OutputDir == "" {
		return types.Config{}, fmt.Errorf("output_dir must not be empty")
	}
	return c, nil
}

// parseTimeout reads a Go duration such as "90s". A bare number is taken as
// seconds.
func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		secs, serr := strconv.ParseFloat(raw, 64)
		if serr != nil {
			return 0, fmt.Errorf("invalid request_timeout %q: %w", raw, err)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must be positive", raw)
	}
	return d, nil
}

// parseBool accepts 1, true, and yes (any case) as true.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
