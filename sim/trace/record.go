// Package trace provides per-tick scheduling trace recording for post-run analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// IdlePID marks a tick on which the processor ran nothing.
const IdlePID = 0

// TimelineRecord captures what the processor ran during one tick.
type TimelineRecord struct {
	Clock      int64
	PID        int // IdlePID when the processor was idle
	QueueLevel int // queue level of the running process at dispatch time, -1 if none
}

// EvictionRecord captures a process leaving the processor with burst left,
// either through preemption or quantum expiry.
type EvictionRecord struct {
	Clock      int64
	PID        int
	Remaining  int64
	QueueLevel int // level before re-admission
}

// CompletionRecord captures a process finishing its burst.
type CompletionRecord struct {
	Clock int64 // tick at whose end the burst ran out
	PID   int
}

// Segment is a run of consecutive ticks on which the same PID held the processor.
type Segment struct {
	PID   int
	Start int64 // first tick, inclusive
	End   int64 // last tick, exclusive
}
