// Package stats computes typing speed and accuracy metrics and prints session reports.
package stats

import (
	"sort"
	"time"
)

// CharsPerWord is the standard "one word = five characters" convention.
const CharsPerWord = 5.0

// ErrorCount is one bucket of the error histogram.
type ErrorCount struct {
	Char  rune
	Count int
}

// Snapshot holds the metrics of one attempt. It is recomputed from scratch on every call.
type Snapshot struct {
	Elapsed      time.Duration
	TotalChars   int
	CorrectChars int
	Accuracy     float64 // percent, 0-100
	WPM          float64
	Errors       []ErrorCount // most frequent first
}

// ElapsedSeconds returns the attempt duration in seconds, never negative.
func (s Snapshot) ElapsedSeconds() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return s.Elapsed.Seconds()
}

// Mistakes returns the number of typed characters that did not match the reference.
func (s Snapshot) Mistakes() int {
	return s.TotalChars - s.CorrectChars
}

// Compute derives metrics from a typed buffer and its reference text.
//
// Net WPM counts every typed character and divides by CharsPerWord; it does not
// look at word boundaries. Zero-length input or non-positive elapsed time yield zeros.
func Compute(typed, reference []rune, start, end time.Time) Snapshot {
	snap := Snapshot{
		Elapsed:    end.Sub(start),
		TotalChars: len(typed),
	}
	n := min(len(typed), len(reference))

	counts := map[rune]int{}
	var order []rune
	for i := 0; i < n; i++ {
		if typed[i] == reference[i] {
			snap.CorrectChars++
			continue
		}
		ch := typed[i]
		if _, seen := counts[ch]; !seen {
			order = append(order, ch)
		}
		counts[ch]++
	}
	snap.Errors = histogram(counts, order)

	if snap.TotalChars > 0 {
		snap.Accuracy = float64(snap.CorrectChars) / float64(snap.TotalChars) * 100
	}
	if minutes := snap.ElapsedSeconds() / 60; minutes > 0 {
		snap.WPM = (float64(snap.TotalChars) / CharsPerWord) / minutes
	}
	return snap
}

// histogram sorts by descending count; ties keep first-occurrence order.
func histogram(counts map[rune]int, order []rune) []ErrorCount {
	out := make([]ErrorCount, 0, len(order))
	for _, ch := range order {
		out = append(out, ErrorCount{Char: ch, Count: counts[ch]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
