package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DecrementMode selects who drives a RoundRobin's time window.
type DecrementMode int

const (
	// DecrementAutomatic registers the window decrement on processor ticks at construction.
	DecrementAutomatic DecrementMode = iota
	// DecrementManual leaves tick registration to an owning composite scheduler.
	DecrementManual
)

func (m DecrementMode) String() string {
	switch m {
	case DecrementAutomatic:
		return "automatic"
	case DecrementManual:
		return "manual"
	default:
		return fmt.Sprintf("DecrementMode(%d)", int(m))
	}
}

// RoundRobin serves processes in FIFO order and forces the running process back
// to the tail once it has used Quantum ticks of its dispatch cycle.
type RoundRobin struct {
	schedulerBase
	quantum int64
	window  int64
	mode    DecrementMode
	hookID  HookID
	owner   Scheduler // receives processes whose quantum expired
}

// NewRoundRobin creates a Round-Robin scheduler. Quantum must be positive.
func NewRoundRobin(processes []*Process, processor *Processor, quantum int64, mode DecrementMode) (*RoundRobin, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("%w: round robin quantum must be positive, got %d", ErrInvalidConfig, quantum)
	}
	if processor == nil {
		return nil, fmt.Errorf("%w: round robin requires a processor", ErrInvalidConfig)
	}
	rr := &RoundRobin{
		schedulerBase: newSchedulerBase(fmt.Sprintf("Round Robin (RR, q=%d)", quantum), processes, processor),
		quantum:       quantum,
		window:        quantum,
		mode:          mode,
	}
	rr.owner = rr
	rr.hookID = processor.NewHookID("rr")
	processor.OnClear(rr.hookID, rr.resetTimeWindow)
	if mode == DecrementAutomatic {
		processor.OnTick(rr.hookID, rr.DecrementTimeWindow)
	}
	return rr, nil
}

// Quantum returns the configured time quantum.
func (rr *RoundRobin) Quantum() int64 {
	return rr.quantum
}

// TimeWindow returns the ticks left in the current dispatch cycle.
func (rr *RoundRobin) TimeWindow() int64 {
	return rr.window
}

// Mode returns the decrement mode chosen at construction.
func (rr *RoundRobin) Mode() DecrementMode {
	return rr.mode
}

// HookID returns the key this layer uses for its processor hooks.
func (rr *RoundRobin) HookID() HookID {
	return rr.hookID
}

// SetOwner routes expired processes to owner.Enqueue instead of this queue's tail.
func (rr *RoundRobin) SetOwner(owner Scheduler) {
	if owner == nil {
		panic("SetOwner: owner must not be nil")
	}
	rr.owner = owner
}

// useManualDecrement hands tick registration over to an owning composite.
func (rr *RoundRobin) useManualDecrement() {
	if rr.mode == DecrementManual {
		return
	}
	rr.processor.OffTick(rr.hookID)
	rr.mode = DecrementManual
}

func (rr *RoundRobin) Enqueue(procs ...*Process) {
	rr.markAdmitted(procs)
	rr.ready.Enqueue(procs...)
}

// Run admits arrivals in (arrival, pid) order on every tick, busy or not.
func (rr *RoundRobin) Run(clock int64, _ bool) *ReadyQueue {
	if arrived := rr.GetArrivedProcesses(clock); len(arrived) > 0 {
		rr.Enqueue(arrived...)
	}
	return rr.ready
}

// DecrementTimeWindow consumes one tick of the window. When the window runs out
// and the current process still has burst left, the process is cleared from the
// processor and handed to the owner.
func (rr *RoundRobin) DecrementTimeWindow(ctx HookCtx) {
	rr.window--
	if rr.window > 0 {
		return
	}
	if !rr.processor.IsOccupied() || rr.processor.IsFinished() {
		return
	}
	expired := rr.processor.Clear()
	logrus.WithFields(logrus.Fields{
		"pid":       expired.PID,
		"clock":     ctx.Clock,
		"remaining": expired.BurstRemaining,
		"quantum":   rr.quantum,
	}).Debug("quantum expired")
	rr.owner.Enqueue(expired)
}

func (rr *RoundRobin) resetTimeWindow(_ HookCtx) {
	rr.window = rr.quantum
}
