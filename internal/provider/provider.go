// Package provider produces practice paragraphs. LLM backends (Gemini, OpenAI,
// Anthropic, OpenRouter) and an offline word-list generator share one Provider
// interface; Texts layers caching and fallback text on top.
package provider

import (
	"context"
	"encoding/json"
)

// Provider generates a single completion.
type Provider interface {
	// Generate sends req to the backend. When req.Schema is set the returned
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider is configured to use.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System string
	Prompt string

	// Topic is the subject Prompt was built from. Backends that do not talk
	// to a model use it instead of Prompt.
	Topic string

	Schema *Schema

	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// Schema is the JSON structure expected back from the model.
type Schema struct {
	// Name identifies the schema, kebab-case. It keys the compiled schema cache.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
