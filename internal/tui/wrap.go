// Package tui renders the typing screen: wrapped reference text, scroll window and footer.
package tui

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Line is one wrapped row of the reference text.
type Line struct {
	Text  []rune
	Start int // absolute index of Text[0] in the reference
}

// End returns the index one past the last rune of the line.
func (l Line) End() int {
	return l.Start + len(l.Text)
}

// Layout word-wraps reference to rows of at most width cells. A newline ends its
// row and stays in it, and a breaking space stays at the end of its row, so every
// reference index belongs to exactly one line.
func Layout(reference []rune, width int) []Line {
	if width < 1 {
		width = 1
	}
	var lines []Line
	start := 0
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(reference); {
		r := reference[i]
		if r == '\n' {
			lines = append(lines, Line{Text: reference[start : i+1], Start: start})
			i++
			start, lineWidth, lastSpace = i, 0, -1
			continue
		}
		w := cellWidth(r)
		if lineWidth+w > width && i > start {
			end := i
			if lastSpace >= start {
				end = lastSpace + 1
			}
			lines = append(lines, Line{Text: reference[start:end], Start: start})
			start = end
			lineWidth = widthOf(reference[start:i])
			lastSpace = -1
			continue
		}
		lineWidth += w
		if r == ' ' {
			lastSpace = i
		}
		i++
	}
	if start < len(reference) || len(lines) == 0 {
		lines = append(lines, Line{Text: reference[start:], Start: start})
	}
	return lines
}

// CursorLine returns the index of the line holding cursor. A cursor past the end
// of the text belongs to the last line.
func CursorLine(lines []Line, cursor int) int {
	for i, l := range lines {
		if cursor < l.End() {
			return i
		}
	}
	if len(lines) == 0 {
		return 0
	}
	return len(lines) - 1
}

func displayRune(r rune) rune {
	switch {
	case r == '\n':
		return '↵'
	case unicode.IsControl(r):
		return ' '
	default:
		return r
	}
}

func cellWidth(r rune) int {
	return runewidth.RuneWidth(displayRune(r))
}

func widthOf(runes []rune) int {
	total := 0
	for _, r := range runes {
		total += cellWidth(r)
	}
	return total
}
