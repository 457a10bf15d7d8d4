package types

import "strings"

// Role tags a message in a structured prompt.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged entry of a structured prompt.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Prompt is the input to a model call: either a plain string or an ordered
// list of messages. The structured form lets a caller pair a system
// instruction with user content.
type Prompt struct {
	Text     string
	Messages []Message
}

// TextPrompt returns a plain-string prompt.
func TextPrompt(text string) Prompt {
	return Prompt{Text: text}
}

// ChatPrompt returns a structured prompt from the given messages.
func ChatPrompt(msgs ...Message) Prompt {
	return Prompt{Messages: msgs}
}

// IsChat reports whether the prompt carries structured messages.
func (p Prompt) IsChat() bool {
	return len(p.Messages) > 0
}

// String returns the serialized form of the prompt. Plain prompts return
// their text; structured prompts render as "role: content" entries, one per
// line.
func (p Prompt) String() string {
	if !p.IsChat() {
		return p.Text
	}
	var b strings.Builder
	for i, m := range p.Messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

// Default generation options.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
)

// Options tunes a single generation call.
type Options struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
}

// DefaultOptions returns the options applied when a caller sets none.
func DefaultOptions() Options {
	return Options{Temperature: DefaultTemperature, MaxTokens: DefaultMaxTokens}
}
