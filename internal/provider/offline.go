package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/verte-zerg/termtyper/internal/generator"
	"github.com/verte-zerg/termtyper/internal/wordlist"
)

// OfflineProvider builds paragraphs from a word list; it needs no network or key.
type OfflineProvider struct {
	words     []string
	filter    wordlist.FilterFunc
	gen       *generator.Generator
	sentences int
}

func NewOfflineProvider(cfg OfflineConfig) (*OfflineProvider, error) {
	words, err := wordlist.Load(cfg.WordList, cfg.Lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	gen := cfg.Generator
	if gen == nil {
		gen = generator.New()
	}
	return &OfflineProvider{
		words:     words,
		filter:    wordlist.FilterForLang(cfg.Lang),
		gen:       gen,
		sentences: cfg.Sentences,
	}, nil
}

// Generate returns {"paragraph": ...} built from the word pool, biased toward
// the words of req.Topic.
func (p *OfflineProvider) Generate(_ context.Context, req Request) (*Response, error) {
	var focus []string
	for _, w := range strings.Fields(strings.ToLower(req.Topic)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if p.filter(w) {
			focus = append(focus, w)
		}
	}
	text := p.gen.Paragraph(p.words, generator.Options{
		Sentences: p.sentences,
		CommaPct:  0.1,
		Focus:     focus,
	})
	content, err := json.Marshal(paragraphPayload{Paragraph: text})
	if err != nil {
		return nil, err
	}
	if err := checkResponse(req.Schema, content, StopEnd); err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: p.ModelID(), StopReason: StopEnd}, nil
}

func (p *OfflineProvider) ModelID() string { return "offline" }
