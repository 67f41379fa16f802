// Package view renders simulation results to the console: fixed-width cell
// tables, numbered lists and a Gantt strip.
package view

import (
	"fmt"
	"io"
	"strings"
)

// DefaultMinCellWidth is the narrowest a table column will render.
const DefaultMinCellWidth = 5

// Table collects rows and renders them with right-aligned cells whose widths
// grow to fit the widest content in each column.
type Table struct {
	minCellWidth int
	cellWidths   []int
	header       []string
	rows         [][]string
}

// NewTable creates a table with the given header. minCellWidth <= 0 uses DefaultMinCellWidth.
func NewTable(minCellWidth int, header ...any) *Table {
	if minCellWidth <= 0 {
		minCellWidth = DefaultMinCellWidth
	}
	t := &Table{minCellWidth: minCellWidth}
	t.header = t.fit(header)
	return t
}

// AddRow appends a row. Cells are formatted with fmt.Sprint.
func (t *Table) AddRow(items ...any) {
	t.rows = append(t.rows, t.fit(items))
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// fit stringifies items and widens columns so that every cell fits.
func (t *Table) fit(items []any) []string {
	cells := make([]string, len(items))
	for col, item := range items {
		cells[col] = fmt.Sprint(item)
		if col >= len(t.cellWidths) {
			t.cellWidths = append(t.cellWidths, t.minCellWidth)
		}
		t.cellWidths[col] = max(t.cellWidths[col], len(cells[col]))
	}
	return cells
}

// formatRow joins cells with sep, right-aligning each in its column width.
func (t *Table) formatRow(cells []string, sep string) string {
	var sb strings.Builder
	sb.WriteString(sep)
	for col, w := range t.cellWidths {
		cell := ""
		if col < len(cells) {
			cell = cells[col]
		}
		fmt.Fprintf(&sb, "%*s", w, cell)
		sb.WriteString(sep)
	}
	return sb.String()
}

// separatorLine draws a horizontal rule like +-----+-----+.
func (t *Table) separatorLine(joint, line string) string {
	parts := make([]string, len(t.cellWidths))
	for i, w := range t.cellWidths {
		parts[i] = strings.Repeat(line, w)
	}
	return joint + strings.Join(parts, joint) + joint
}

// String renders the table.
func (t *Table) String() string {
	var sb strings.Builder
	sep := t.separatorLine("+", "-")
	sb.WriteString(sep + "\n")
	if len(t.header) > 0 {
		sb.WriteString(t.formatRow(t.header, "|") + "\n")
		sb.WriteString(t.separatorLine("+", "=") + "\n")
	}
	for _, row := range t.rows {
		sb.WriteString(t.formatRow(row, "|") + "\n")
	}
	sb.WriteString(sep + "\n")
	return sb.String()
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	_, err := io.WriteString(w, t.String())
	return err
}
