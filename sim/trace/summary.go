package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks  int
	BusyTicks   int
	IdleTicks   int
	Utilization float64 // BusyTicks / TotalTicks
	Evictions   int
	Completions int
	// MaxQueueLevel is the deepest level any process ran at, -1 if none ran.
	MaxQueueLevel int
	// SlicesPerPID maps pid to the number of timeline segments it ran in.
	SlicesPerPID map[int]int
	// TicksPerPID maps pid to ticks spent on the processor.
	TicksPerPID map[int]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MaxQueueLevel: -1,
		SlicesPerPID:  make(map[int]int),
		TicksPerPID:   make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTicks = len(st.Timeline)
	for _, r := range st.Timeline {
		if r.PID == IdlePID {
			summary.IdleTicks++
			continue
		}
		summary.BusyTicks++
		summary.TicksPerPID[r.PID]++
		if r.QueueLevel > summary.MaxQueueLevel {
			summary.MaxQueueLevel = r.QueueLevel
		}
	}
	if summary.TotalTicks > 0 {
		summary.Utilization = float64(summary.BusyTicks) / float64(summary.TotalTicks)
	}

	for _, seg := range st.Segments() {
		if seg.PID != IdlePID {
			summary.SlicesPerPID[seg.PID]++
		}
	}
	summary.Evictions = len(st.Evictions)
	summary.Completions = len(st.Completions)

	return summary
}
