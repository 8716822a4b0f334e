// Package generator builds practice paragraphs from a word pool.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	defaultSentences   = 3
	defaultMinWords    = 6
	defaultMaxWords    = 12
	defaultFocusFactor = 4.0
)

// Options shapes a generated paragraph. Zero values select defaults.
type Options struct {
	Sentences int
	MinWords  int // per sentence
	MaxWords  int
	CommaPct  float64 // chance of a comma after a word inside a sentence

	// Focus words are added to the pool and drawn FocusFactor times more often.
	Focus       []string
	FocusFactor float64
}

// Generator produces randomized practice text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Paragraph joins Sentences sentences drawn from words. Each sentence starts
// capitalised and ends with a period. It returns "" when there is nothing to draw from.
func (g *Generator) Paragraph(words []string, opts Options) string {
	opts = withDefaults(opts)
	pool, weights, total := weightedPool(words, opts.Focus, opts.FocusFactor)
	if len(pool) == 0 {
		return ""
	}

	sentences := make([]string, 0, opts.Sentences)
	for s := 0; s < opts.Sentences; s++ {
		n := opts.MinWords + g.rnd.Intn(opts.MaxWords-opts.MinWords+1)
		sentence := make([]string, 0, n)
		for i := 0; i < n; i++ {
			word := pool[g.pick(weights, total)]
			if i == 0 {
				word = applyCaps(g.rnd, word, 1)
			}
			if i < n-1 {
				word = applyPunct(g.rnd, word, opts.CommaPct, []rune{','})
			}
			sentence = append(sentence, word)
		}
		sentences = append(sentences, strings.Join(sentence, " ")+".")
	}
	return strings.Join(sentences, " ")
}

func withDefaults(opts Options) Options {
	if opts.Sentences <= 0 {
		opts.Sentences = defaultSentences
	}
	if opts.MinWords <= 0 {
		opts.MinWords = defaultMinWords
	}
	if opts.MaxWords < opts.MinWords {
		opts.MaxWords = max(opts.MinWords, defaultMaxWords)
	}
	if opts.FocusFactor <= 0 {
		opts.FocusFactor = defaultFocusFactor
	}
	return opts
}

// weightedPool merges focus words into words and weights them up.
func weightedPool(words, focus []string, factor float64) ([]string, []float64, float64) {
	focusSet := make(map[string]struct{}, len(focus))
	for _, w := range focus {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			focusSet[w] = struct{}{}
		}
	}

	pool := make([]string, 0, len(words)+len(focusSet))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		pool = append(pool, w)
	}
	for _, w := range focus {
		w = strings.ToLower(strings.TrimSpace(w))
		if _, ok := seen[w]; ok || w == "" {
			continue
		}
		seen[w] = struct{}{}
		pool = append(pool, w)
	}

	weights := make([]float64, len(pool))
	total := 0.0
	for i, w := range pool {
		weight := 1.0
		if _, ok := focusSet[w]; ok {
			weight = factor
		}
		weights[i] = weight
		total += weight
	}
	return pool, weights, total
}

func (g *Generator) pick(weights []float64, total float64) int {
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(weights) - 1
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
