package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	// DefaultMargin is the number of columns kept free on the right of the text.
	DefaultMargin = 4
	// ReservedRows counts the non-text rows of a frame: header, two separators,
	// the two scroll indicators and the footer.
	ReservedRows = 6

	clearScreen = "\x1b[H\x1b[2J"
	lineBreak   = "\r\n"
)

type charClass uint8

const (
	classPending charClass = iota
	classCorrect
	classIncorrect
	classCursor
)

type styles struct {
	correct   lipgloss.Style
	incorrect lipgloss.Style
	cursor    lipgloss.Style
	pending   lipgloss.Style
	header    lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer) styles {
	return styles{
		correct:   lr.NewStyle().Foreground(lipgloss.Color("2")),
		incorrect: lr.NewStyle().Foreground(lipgloss.Color("1")),
		cursor:    lr.NewStyle().Underline(true),
		pending:   lr.NewStyle(),
		header:    lr.NewStyle().Bold(true),
		muted:     lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes one full frame per call to w. Its styles are bound to w, not
// to the process stdout.
type Renderer struct {
	w      io.Writer
	size   func() (width, height int)
	margin int
	lip    *lipgloss.Renderer
	styles styles
}

// NewRenderer returns a renderer that asks size for the terminal dimensions on
// every frame. A negative margin selects DefaultMargin.
func NewRenderer(w io.Writer, size func() (int, int), margin int) *Renderer {
	if margin < 0 {
		margin = DefaultMargin
	}
	lr := lipgloss.NewRenderer(w)
	return &Renderer{w: w, size: size, margin: margin, lip: lr, styles: newStyles(lr)}
}

// SetColorProfile overrides the color profile detected from w. Callers that
// wrap the terminal device in a plain writer pass the profile of the device.
func (r *Renderer) SetColorProfile(p termenv.Profile) {
	r.lip.SetColorProfile(p)
}

// Render clears the screen and draws reference with typed applied to it.
func (r *Renderer) Render(reference, typed []rune) error {
	width, height := r.size()
	if _, err := io.WriteString(r.w, r.Frame(reference, typed, width, height)); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// Frame renders a complete screen for the given state and terminal size.
func (r *Renderer) Frame(reference, typed []rune, width, height int) string {
	st := r.styles
	contentWidth := width - r.margin
	if contentWidth < 1 {
		contentWidth = 1
	}
	lines := Layout(reference, contentWidth)
	cursor := len(typed)
	first, last := Window(len(lines), CursorLine(lines, cursor), height-ReservedRows)
	separator := strings.Repeat("-", contentWidth)

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(st.header.Render("Type the following text:"))
	b.WriteString(lineBreak)
	b.WriteString(separator)
	b.WriteString(lineBreak)
	if first > 0 {
		b.WriteString(st.muted.Render(fmt.Sprintf("↑ %d more above", first)))
	}
	b.WriteString(lineBreak)
	for _, line := range lines[first:last] {
		for j, ch := range line.Text {
			b.WriteString(st.renderRune(reference, typed, line.Start+j, ch))
		}
		b.WriteString(lineBreak)
	}
	if hidden := len(lines) - last; hidden > 0 {
		b.WriteString(st.muted.Render(fmt.Sprintf("↓ %d more below", hidden)))
	}
	b.WriteString(lineBreak)
	b.WriteString(separator)
	b.WriteString(lineBreak)
	b.WriteString(renderFooter(len(typed), len(reference)))
	return b.String()
}

// Progress returns the completion percentage, capped at 100.
func Progress(typed, total int) int {
	if total <= 0 {
		return 0
	}
	p := typed * 100 / total
	if p > 100 {
		return 100
	}
	return p
}

func renderFooter(typed, total int) string {
	return fmt.Sprintf("Progress: %d%% | Press ESC to finish", Progress(typed, total))
}

func classify(reference, typed []rune, i int) charClass {
	switch {
	case i < len(typed) && i < len(reference) && typed[i] == reference[i]:
		return classCorrect
	case i < len(typed):
		return classIncorrect
	case i == len(typed):
		return classCursor
	default:
		return classPending
	}
}

func (st styles) renderRune(reference, typed []rune, i int, target rune) string {
	displayed := displayRune(target)
	switch classify(reference, typed, i) {
	case classCorrect:
		return st.correct.Render(string(displayed))
	case classIncorrect:
		if target == ' ' {
			displayed = '•'
		}
		return st.incorrect.Render(string(displayed))
	case classCursor:
		return st.cursor.Render(string(displayed))
	default:
		return st.pending.Render(string(displayed))
	}
}
