package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type column struct {
	title string
	right bool
}

// table lays out cells in terminal columns; widths are measured in cells, so
// wide runes in labels keep the columns straight.
type table struct {
	columns []column
	rows    [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// lines returns the header followed by one line per row. Missing cells render
// blank and extra cells are dropped.
func (t *table) lines() []string {
	if len(t.columns) == 0 {
		return nil
	}
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = runewidth.StringWidth(col.title)
	}
	for _, row := range t.rows {
		for i := range widths {
			if w := runewidth.StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.title
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.join(header, widths))
	for _, row := range t.rows {
		out = append(out, t.join(row, widths))
	}
	return out
}

func (t *table) join(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		if t.columns[i].right {
			parts[i] = runewidth.FillLeft(cell(row, i), w)
		} else {
			parts[i] = runewidth.FillRight(cell(row, i), w)
		}
	}
	return strings.Join(parts, " ")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
