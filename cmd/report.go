package cmd

import (
	"fmt"
	"io"

	sim "github.com/scheduling-sim/scheduling-sim/sim"
	"github.com/scheduling-sim/scheduling-sim/sim/trace"
	"github.com/scheduling-sim/scheduling-sim/view"
)

// writeReport prints the per-process table, aggregate metrics and, when a
// trace was collected, the Gantt strip and trace summary.
func writeReport(w io.Writer, s *sim.Simulator) error {
	fmt.Fprintf(w, "Algorithm: %s\n", s.Scheduler.Name())
	if s.Trace != nil {
		fmt.Fprintf(w, "Run ID   : %s\n", s.Trace.RunID)
	}
	fmt.Fprintln(w)

	if err := processTable(s.Metrics).Render(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	s.Metrics.Print(w)

	if s.Trace == nil {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Gantt ===")
	fmt.Fprintln(w, view.Gantt(s.Trace.Segments()))

	summary := trace.Summarize(s.Trace)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Ticks                : %d (busy %d, idle %d)\n", summary.TotalTicks, summary.BusyTicks, summary.IdleTicks)
	fmt.Fprintf(w, "Completions          : %d\n", summary.Completions)
	fmt.Fprintf(w, "Evictions            : %d\n", summary.Evictions)
	if summary.MaxQueueLevel >= 0 {
		fmt.Fprintf(w, "Deepest Queue Level  : %d\n", summary.MaxQueueLevel)
	}
	return nil
}

func processTable(m *sim.Metrics) *view.Table {
	t := view.NewTable(view.DefaultMinCellWidth,
		"PID", "Arrival", "Burst", "Priority", "Level", "Start", "Finish", "Turnaround", "Waiting", "Response")
	for _, r := range m.Results {
		priority := "-"
		if r.HasPriority {
			priority = fmt.Sprint(r.Priority)
		}
		t.AddRow(fmt.Sprintf("P%d", r.PID), r.Arrival, r.Burst, priority, r.QueueLevel,
			orDash(r.FirstRun), orDash(r.Completion), orDash(r.Turnaround), orDash(r.Waiting), orDash(r.Response))
	}
	return t
}

// orDash renders the -1 "not applicable" marker as "-".
func orDash(v int64) string {
	if v < 0 {
		return "-"
	}
	return fmt.Sprint(v)
}
