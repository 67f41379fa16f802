package view

import (
	"fmt"
	"strings"

	"github.com/scheduling-sim/scheduling-sim/sim/trace"
)

// Gantt renders trace segments as a two-line strip: labels above, the tick at
// each segment boundary below.
//
//	| P1 | P2 | idle | P1       |
//	0    2    4      5         10
func Gantt(segments []trace.Segment) string {
	if len(segments) == 0 {
		return ""
	}
	var bars strings.Builder
	bars.WriteString("|")
	boundaries := []int{0}
	for _, seg := range segments {
		label := "idle"
		if seg.PID != trace.IdlePID {
			label = fmt.Sprintf("P%d", seg.PID)
		}
		width := max(int(seg.End-seg.Start)*2, len(label)+2)
		fmt.Fprintf(&bars, "%-*s|", width, " "+label)
		boundaries = append(boundaries, bars.Len()-1)
	}

	var ticks strings.Builder
	write := func(col int, s string) {
		if ticks.Len() > 0 && ticks.Len() >= col {
			// Overlapping labels keep a single separating space.
			ticks.WriteString(" ")
		} else {
			ticks.WriteString(strings.Repeat(" ", col-ticks.Len()))
		}
		ticks.WriteString(s)
	}
	write(0, fmt.Sprint(segments[0].Start))
	for i, seg := range segments {
		end := fmt.Sprint(seg.End)
		write(boundaries[i+1]-len(end)+1, end)
	}
	return bars.String() + "\n" + ticks.String()
}
