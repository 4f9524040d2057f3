package report

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxCellWidth is the display width beyond which table cells are truncated.
const MaxCellWidth = 48

// Table is a plain text table aligned by display width, so names with wide
// (CJK) characters line up.
type Table struct {
	Headers []string
	Rows    [][]string
	// Style, when set, decorates a cell after padding. It must not change
	// the visible width.
	Style func(col int, cell, padded string) string
}

// Write renders the table with a two-space gutter and a dashed rule under
// the header.
func (t *Table) Write(w io.Writer) error {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = make([]string, len(t.Headers))
		for i := range t.Headers {
			if i >= len(row) {
				continue
			}
			c := runewidth.Truncate(row[i], MaxCellWidth, "…")
			cells[r][i] = c
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	writeLine := func(row []string, style bool) {
		for i, c := range row {
			last := i == len(row)-1
			padded := c
			if !last {
				padded = runewidth.FillRight(c, widths[i])
			}
			if style && t.Style != nil {
				padded = t.Style(i, c, padded)
			}
			b.WriteString(padded)
			if !last {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	writeLine(t.Headers, false)
	rule := make([]string, len(widths))
	for i, wd := range widths {
		rule[i] = strings.Repeat("-", wd)
	}
	writeLine(rule, false)
	for _, row := range cells {
		writeLine(row, true)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
