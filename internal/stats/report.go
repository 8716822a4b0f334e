package stats

import (
	"fmt"
	"io"
	"strconv"
)

// TopErrors is the number of histogram entries shown in a report.
const TopErrors = 5

// RenderReport prints the end-of-attempt metrics. referenceLen is the length of the
// practice text; cancelled marks attempts ended with Escape.
func RenderReport(w io.Writer, snap Snapshot, referenceLen int, cancelled bool) error {
	title := "Typing session completed!"
	if cancelled {
		title = "Typing session cancelled."
	}
	lines := []string{
		"",
		title,
		"",
		"--- Performance Metrics ---",
		fmt.Sprintf("Words Per Minute (WPM): %.2f", snap.WPM),
		fmt.Sprintf("Accuracy: %.2f%%", snap.Accuracy),
		fmt.Sprintf("Time Taken: %.2f seconds", snap.ElapsedSeconds()),
		fmt.Sprintf("Characters Typed: %d/%d", snap.TotalChars, referenceLen),
		fmt.Sprintf("Correct Characters: %d", snap.CorrectChars),
		fmt.Sprintf("Errors: %d", snap.Mistakes()),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return renderErrorTable(w, snap.Errors)
}

func renderErrorTable(w io.Writer, errs []ErrorCount) error {
	if len(errs) == 0 {
		_, err := fmt.Fprintln(w, "No errors! Perfect typing!")
		return err
	}
	if _, err := fmt.Fprintln(w, "Most Common Errors:"); err != nil {
		return err
	}
	if len(errs) > TopErrors {
		errs = errs[:TopErrors]
	}
	tbl := table{columns: []column{{title: "Char"}, {title: "Count", right: true}}}
	for _, e := range errs {
		tbl.add(charLabel(e.Char), strconv.Itoa(e.Count))
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	return nil
}

func charLabel(ch rune) string {
	switch ch {
	case ' ':
		return "<space>"
	default:
		return "'" + string(ch) + "'"
	}
}
