package tui

const (
	// EarlyLines keeps the top of the text pinned while the cursor is on one of the first lines.
	EarlyLines = 6
	// LinesAboveCursor is how many lines of context stay visible above the cursor once scrolling.
	LinesAboveCursor = 5
)

// Window picks the visible line range [first, last) for a text of lineCount lines.
// The cursor line is always inside the range.
func Window(lineCount, cursorLine, visible int) (first, last int) {
	if visible < 1 {
		visible = 1
	}
	if lineCount <= visible {
		return 0, lineCount
	}
	if cursorLine >= EarlyLines {
		first = cursorLine - LinesAboveCursor
	}
	if first+visible > lineCount {
		first = lineCount - visible
	}
	if cursorLine >= first+visible {
		first = cursorLine - visible + 1
	}
	if cursorLine < first {
		first = cursorLine
	}
	return first, first + visible
}
