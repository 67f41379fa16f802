package trace

import "github.com/rs/xid"

// TraceLevel controls the verbosity of scheduling traces.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTimeline captures every tick, eviction and completion.
	TraceLevelTimeline TraceLevel = "timeline"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelTimeline: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether anything should be recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelTimeline
}

// SimulationTrace collects scheduling records during a simulation run.
type SimulationTrace struct {
	RunID       string
	Config      TraceConfig
	Timeline    []TimelineRecord
	Evictions   []EvictionRecord
	Completions []CompletionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording under a fresh run id.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		RunID:       xid.New().String(),
		Config:      config,
		Timeline:    make([]TimelineRecord, 0),
		Evictions:   make([]EvictionRecord, 0),
		Completions: make([]CompletionRecord, 0),
	}
}

// RecordTick appends a timeline record.
func (st *SimulationTrace) RecordTick(record TimelineRecord) {
	st.Timeline = append(st.Timeline, record)
}

// RecordEviction appends an eviction record.
func (st *SimulationTrace) RecordEviction(record EvictionRecord) {
	st.Evictions = append(st.Evictions, record)
}

// RecordCompletion appends a completion record.
func (st *SimulationTrace) RecordCompletion(record CompletionRecord) {
	st.Completions = append(st.Completions, record)
}

// Segments compresses the timeline into runs of the same PID, in clock order.
// Gaps in the recorded clocks start a new segment.
func (st *SimulationTrace) Segments() []Segment {
	var segs []Segment
	if st == nil {
		return segs
	}
	for _, r := range st.Timeline {
		n := len(segs)
		if n > 0 && segs[n-1].PID == r.PID && segs[n-1].End == r.Clock {
			segs[n-1].End = r.Clock + 1
			continue
		}
		segs = append(segs, Segment{PID: r.PID, Start: r.Clock, End: r.Clock + 1})
	}
	return segs
}
