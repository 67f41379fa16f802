// Defines the Process struct that models a single job in the scheduling simulation.
// Tracks arrival, burst consumption, queue level and the timestamps used for reporting.

package sim

import (
	"fmt"
)

// UnqueuedLevel marks a process that no composite scheduler has admitted yet.
const UnqueuedLevel = -1

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StatePending   ProcessState = "pending"   // not yet arrived or not yet admitted
	StateReady     ProcessState = "ready"     // waiting in a ready queue
	StateRunning   ProcessState = "running"   // current process on the processor
	StateCompleted ProcessState = "completed" // burst fully consumed
)

// Process models a job's scheduling attributes and its progress through the simulation.
type Process struct {
	PID int // Unique identifier, tie-break of last resort in every ordering

	Arrival        int64 // Tick at which the process becomes eligible for scheduling
	Burst          int64 // Total CPU ticks required
	BurstRemaining int64 // CPU ticks still to run

	Priority    int  // Static priority; lower value is more urgent
	HasPriority bool // Whether Priority was supplied for this process

	// QueueLevel is owned by the active composite scheduler. It starts at
	// UnqueuedLevel and grows by one on every (re-)admission.
	QueueLevel int

	State      ProcessState
	FirstRun   int64 // Tick of first dispatch, -1 until dispatched
	Completion int64 // Tick at which the burst finished, -1 until completed
}

// NewProcess creates a pending process without a priority.
func NewProcess(pid int, arrival, burst int64) *Process {
	return &Process{
		PID:            pid,
		Arrival:        arrival,
		Burst:          burst,
		BurstRemaining: burst,
		QueueLevel:     UnqueuedLevel,
		State:          StatePending,
		FirstRun:       -1,
		Completion:     -1,
	}
}

// NewPriorityProcess creates a pending process carrying a static priority.
func NewPriorityProcess(pid int, arrival, burst int64, priority int) *Process {
	p := NewProcess(pid, arrival, burst)
	p.Priority = priority
	p.HasPriority = true
	return p
}

// IsDone reports whether the whole burst has been consumed.
func (p *Process) IsDone() bool {
	return p.BurstRemaining <= 0
}

// Turnaround is completion minus arrival. Returns -1 for unfinished processes.
func (p *Process) Turnaround() int64 {
	if p.Completion < 0 {
		return -1
	}
	return p.Completion - p.Arrival
}

// Waiting is turnaround minus burst. Returns -1 for unfinished processes.
func (p *Process) Waiting() int64 {
	if p.Completion < 0 {
		return -1
	}
	return p.Turnaround() - p.Burst
}

// Response is first dispatch minus arrival. Returns -1 if never dispatched.
func (p *Process) Response() int64 {
	if p.FirstRun < 0 {
		return -1
	}
	return p.FirstRun - p.Arrival
}

// Reset restores the process to its pre-simulation state so a process set can be replayed.
func (p *Process) Reset() {
	p.BurstRemaining = p.Burst
	p.QueueLevel = UnqueuedLevel
	p.State = StatePending
	p.FirstRun = -1
	p.Completion = -1
}

func (p Process) String() string {
	return fmt.Sprintf("P%d", p.PID)
}

// Describe returns a verbose representation for debug logs.
func (p *Process) Describe() string {
	return fmt.Sprintf("Process: (PID: %d, State: %s, Arrival: %d, Burst: %d/%d, Priority: %d, Level: %d)",
		p.PID, p.State, p.Arrival, p.BurstRemaining, p.Burst, p.Priority, p.QueueLevel)
}
