package llm

import "context"

// Message is a single chat turn in provider-agnostic form. Role is one of
// "system", "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options carries per-call tuning; providers fall back to their configured
// defaults for zero values.
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

type Option func(*Options)

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

func WithModel(m string) Option {
	return func(o *Options) { o.Model = m }
}

// LLMProvider is the contract every model backend satisfies.
type LLMProvider interface {
	// Chat sends a conversation and returns the model's reply text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate is the single-prompt convenience form of Chat.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
