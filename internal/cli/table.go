package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formats rows into aligned columns. Cell widths are measured with
// lipgloss so styled cells line up with plain ones.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a table. With no headers only the rows are rendered.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
	}
}

// AddRow adds a row. Rows shorter than the widest row are padded.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) columns() int {
	n := len(t.headers)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	return n
}

// Render returns the formatted table.
func (t *Table) Render() string {
	cols := t.columns()
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	var b strings.Builder
	gap := strings.Repeat(" ", t.padding)

	writeRow := func(row []string) {
		parts := make([]string, cols)
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			parts[i] = padRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	if len(t.headers) > 0 {
		writeRow(t.headers)
		sep := make([]string, cols)
		for i, w := range widths {
			sep[i] = strings.Repeat("-", w)
		}
		writeRow(sep)
	}
	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
