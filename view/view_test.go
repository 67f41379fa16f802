package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheduling-sim/scheduling-sim/sim/trace"
)

func TestTable_RendersHeaderRowsAndSeparators(t *testing.T) {
	// GIVEN a table with a header and one row
	tbl := NewTable(5, "PID", "Burst")
	tbl.AddRow("P1", 12)

	// WHEN rendered
	got := tbl.String()

	// THEN cells are right-aligned at the minimum width
	want := strings.Join([]string{
		"+-----+-----+",
		"|  PID|Burst|",
		"+=====+=====+",
		"|   P1|   12|",
		"+-----+-----+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_ColumnsWidenToFitContent(t *testing.T) {
	// GIVEN a row wider than the header
	tbl := NewTable(0, "A")
	tbl.AddRow("wide cell")

	// WHEN rendered
	lines := strings.Split(strings.TrimSpace(tbl.String()), "\n")

	// THEN every line shares the widened column
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.Len(t, l, len("wide cell")+2, l)
	}
	assert.Equal(t, "|        A|", lines[1])
}

func TestTable_ShortRowsArePadded(t *testing.T) {
	tbl := NewTable(3, "a", "b")
	tbl.AddRow("x")

	assert.Contains(t, tbl.String(), "|  x|   |")
}

func TestTable_Render(t *testing.T) {
	tbl := NewTable(3, "x")
	var buf bytes.Buffer

	require.NoError(t, tbl.Render(&buf))

	assert.Equal(t, tbl.String(), buf.String())
}

func TestNumberedList(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		startAt  int
		reversed bool
		want     string
	}{
		{name: "from one", items: []string{"a", "b"}, startAt: 1, want: "[1] a\n[2] b"},
		{name: "from zero", items: []string{"a", "b"}, startAt: 0, want: "[0] a\n[1] b"},
		{name: "reversed keeps numbers", items: []string{"a", "b"}, startAt: 1, reversed: true, want: "[2] b\n[1] a"},
		{name: "empty", items: nil, startAt: 1, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NumberedList(tc.items, tc.startAt, tc.reversed))
		})
	}
}

func TestNumberedList_AlignsBullets(t *testing.T) {
	items := make([]int, 10)

	lines := strings.Split(NumberedList(items, 1, false), "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, " [1] 0", lines[0])
	assert.Equal(t, "[10] 0", lines[9])
}

func TestGantt(t *testing.T) {
	// GIVEN segments including an idle gap
	segs := []trace.Segment{
		{PID: 1, Start: 0, End: 2},
		{PID: 2, Start: 2, End: 4},
		{PID: trace.IdlePID, Start: 4, End: 5},
		{PID: 1, Start: 5, End: 10},
	}

	// WHEN rendered
	got := Gantt(segs)

	// THEN labels sit above their span and each boundary tick ends under its bar
	assert.Equal(t, "| P1 | P2 | idle | P1       |\n0    2    4      5         10", got)
}

func TestGantt_Empty(t *testing.T) {
	assert.Equal(t, "", Gantt(nil))
}
