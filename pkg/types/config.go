package types

import "time"

// Default model identifiers used when no override is configured.
const (
	DefaultClaudeModel = "claude-3-sonnet-20240229"
	DefaultOpenAIModel = "gpt-4o-preview"
	DefaultULMModel    = "ulm-image-beta"

	DefaultOutputDir    = "artifacts"
	DefaultTemplatesDir = "templates"
)

// HTTPConfig holds shared HTTP settings used by backends that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single model request. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ModelConfig identifies one generative backend and its credential.
type ModelConfig struct {
	// Model is the AI model identifier (e.g. "claude-3-sonnet-20240229").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the backend. An empty key selects
	// the stub response path.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format"`
}

// Config is the process-wide configuration. It is loaded once at startup
// and passed by value into the registry, clients, and artifact store.
type Config struct {
	HTTPConfig `yaml:",inline"`

	// Claude drives requirement gathering.
	Claude ModelConfig `json:"claude" yaml:"claude"`

	// OpenAI drives spec drafting.
	OpenAI ModelConfig `json:"openai" yaml:"openai"`

	// ULM is the media-generation placeholder.
	ULM ModelConfig `json:"ulm" yaml:"ulm"`

	// OutputDir is the flat directory artifacts are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// TemplatesDir holds external YAML/TOML template definitions.
	TemplatesDir string `json:"templates_dir" yaml:"templates_dir"`

	// Generation holds the options passed to every model call.
	Generation Options `json:"generation" yaml:"generation"`

	// GitCommit enables staging and committing each artifact after it is written.
	GitCommit bool `json:"git_commit" yaml:"git_commit"`

	Log LogConfig `json:"log" yaml:"log"`
}

// DefaultConfig returns a Config with every default applied and no credentials.
func DefaultConfig() Config {
	return Config{
		Claude:       ModelConfig{Model: DefaultClaudeModel},
		OpenAI:       ModelConfig{Model: DefaultOpenAIModel},
		ULM:          ModelConfig{Model: DefaultULMModel},
		OutputDir:    DefaultOutputDir,
		TemplatesDir: DefaultTemplatesDir,
		Generation:   DefaultOptions(),
		Log:          LogConfig{Level: "info", Format: "console"},
	}
}
