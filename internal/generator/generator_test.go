package generator

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"
)

func TestParagraphShape(t *testing.T) {
	g := NewSeeded(1)
	text := g.Paragraph([]string{"alpha", "beta", "gamma"}, Options{Sentences: 4, MinWords: 3, MaxWords: 5})

	sentences := strings.SplitAfter(text, ". ")
	if len(sentences) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %q", len(sentences), text)
	}
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if !strings.HasSuffix(s, ".") {
			t.Fatalf("sentence %q does not end with a period", s)
		}
		if !unicode.IsUpper([]rune(s)[0]) {
			t.Fatalf("sentence %q is not capitalised", s)
		}
		n := len(strings.Fields(s))
		if n < 3 || n > 5 {
			t.Fatalf("sentence %q has %d words", s, n)
		}
	}
}

func TestParagraphDeterministicWithSeed(t *testing.T) {
	words := []string{"one", "two", "three", "four"}
	a := NewSeeded(42).Paragraph(words, Options{CommaPct: 0.3})
	b := NewSeeded(42).Paragraph(words, Options{CommaPct: 0.3})
	if a != b {
		t.Fatalf("expected identical paragraphs, got %q and %q", a, b)
	}
}

func TestParagraphUsesFocusWords(t *testing.T) {
	g := NewSeeded(7)
	text := strings.ToLower(g.Paragraph([]string{"plain"}, Options{Focus: []string{"Rocket"}, FocusFactor: 50}))
	if !strings.Contains(text, "rocket") {
		t.Fatalf("expected focus word in %q", text)
	}
}

func TestParagraphEmptyPool(t *testing.T) {
	if got := New().Paragraph(nil, Options{}); got != "" {
		t.Fatalf("expected empty paragraph, got %q", got)
	}
}

func TestApplyCapsAndPunct(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	if got := applyCaps(rnd, "word", 1); got != "Word" {
		t.Fatalf("expected Word, got %q", got)
	}
	if got := applyCaps(rnd, "word", 0); got != "word" {
		t.Fatalf("expected unchanged word, got %q", got)
	}
	if got := applyPunct(rnd, "word", 1, []rune{','}); got != "word," {
		t.Fatalf("expected word with comma, got %q", got)
	}
	if got := applyPunct(rnd, "word", 1, nil); got != "word" {
		t.Fatalf("expected unchanged word, got %q", got)
	}
}
