package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultFallbackText is served when no paragraph can be generated or recalled.
const DefaultFallbackText = "The quick brown fox jumps over the lazy dog."

const (
	paragraphMaxTokens   = 200
	paragraphTemperature = 0.7
	paragraphTopP        = 0.95
	paragraphTopK        = 40

	paragraphSystem = "You write short paragraphs for a touch-typing trainer. " +
		"Use plain prose with ASCII punctuation, no lists, no markdown."
)

// ParagraphSchema is the structured output requested from every backend.
var ParagraphSchema = &Schema{
	Name:        "practice-paragraph",
	Description: "A paragraph of typing practice text.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"paragraph": map[string]any{
				"type":        "string",
				"description": "The practice paragraph, 3-4 sentences.",
				"minLength":   1,
			},
		},
		"required":             []any{"paragraph"},
		"additionalProperties": false,
	},
}

type paragraphPayload struct {
	Paragraph string `json:"paragraph"`
}

// TextCache remembers generated paragraphs per topic. store.Store implements it.
type TextCache interface {
	CachedText(ctx context.Context, topic string) (string, error)
	CacheText(ctx context.Context, topic, body string) error
}

// Texts resolves a topic to practice text. Generate never returns an empty string:
// a failed backend call falls back to the cached paragraph for the topic, then
// to Fallback.
type Texts struct {
	Provider Provider  // nil skips generation
	Cache    TextCache // optional
	Fallback string    // empty selects DefaultFallbackText
	Timeout  time.Duration
	Log      io.Writer // warnings; nil discards them
}

func (t *Texts) Generate(ctx context.Context, topic string) string {
	if t.Provider != nil {
		text, err := t.generate(ctx, topic)
		if err == nil {
			t.remember(ctx, topic, text)
			return text
		}
		t.warnf("warning: text generation failed: %v", err)
	}
	if t.Cache != nil {
		text, err := t.Cache.CachedText(ctx, topic)
		if err == nil && strings.TrimSpace(text) != "" {
			t.warnf("using a previously generated text for %q", topic)
			return text
		}
	}
	if fb := Normalize(t.Fallback); fb != "" {
		return fb
	}
	return DefaultFallbackText
}

func (t *Texts) generate(ctx context.Context, topic string) (string, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	resp, err := t.Provider.Generate(ctx, ParagraphRequest(topic))
	if err != nil {
		return "", err
	}
	var payload paragraphPayload
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return "", &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	text := Normalize(payload.Paragraph)
	if text == "" {
		return "", &ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty paragraph")}
	}
	return text, nil
}

func (t *Texts) remember(ctx context.Context, topic, text string) {
	if t.Cache == nil {
		return
	}
	if err := t.Cache.CacheText(ctx, topic, text); err != nil {
		t.warnf("warning: failed to cache text: %v", err)
	}
}

func (t *Texts) warnf(format string, args ...any) {
	if t.Log == nil {
		return
	}
	if _, err := fmt.Fprintf(t.Log, format+"\n", args...); err != nil {
		// Best-effort logging.
		_ = err
	}
}

// ParagraphRequest builds the generation request for topic.
func ParagraphRequest(topic string) Request {
	topic = strings.TrimSpace(topic)
	return Request{
		System:      paragraphSystem,
		Prompt:      fmt.Sprintf("Generate a paragraph for typing practice about: %s. Make it 3-4 sentences long.", topic),
		Topic:       topic,
		Schema:      ParagraphSchema,
		MaxTokens:   paragraphMaxTokens,
		Temperature: paragraphTemperature,
		TopP:        paragraphTopP,
		TopK:        paragraphTopK,
	}
}

var typographic = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	"…", "...", "\u00a0", " ",
)

// Normalize replaces typographic punctuation with keyboard equivalents and
// collapses whitespace to single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(typographic.Replace(text)), " ")
}
