package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetArrivedProcesses_OrdersByArrivalThenPID(t *testing.T) {
	// GIVEN processes listed out of order, one arriving later
	procs := []*Process{NewProcess(3, 1, 1), NewProcess(2, 1, 1), NewProcess(1, 2, 1), NewProcess(4, 0, 1)}
	s := NewFCFS(procs, NewProcessor())

	// WHEN queried at tick 1
	arrived := s.GetArrivedProcesses(1)

	// THEN only arrived processes are returned in (arrival, pid) order
	require.Len(t, arrived, 3)
	assert.Equal(t, []int{4, 2, 3}, pids(arrived))

	// WHEN they are admitted
	s.Enqueue(arrived...)

	// THEN they are not reported again
	assert.Empty(t, s.GetArrivedProcesses(1))
	assert.Equal(t, []int{1}, pids(s.GetArrivedProcesses(2)))
}

func TestOrderedSchedulers_QueueOrdering(t *testing.T) {
	tests := []struct {
		name string
		make func(procs []*Process, c *Processor) Scheduler
		want []int
	}{
		{name: "fcfs", make: func(p []*Process, c *Processor) Scheduler { return NewFCFS(p, c) }, want: []int{1, 2, 3, 4}},
		{name: "sjf", make: func(p []*Process, c *Processor) Scheduler { return NewSJF(p, c) }, want: []int{3, 4, 2, 1}},
		{name: "srtf", make: func(p []*Process, c *Processor) Scheduler { return NewSRTF(p, c) }, want: []int{3, 4, 2, 1}},
		{name: "prio-np", make: func(p []*Process, c *Processor) Scheduler { return NewPriorityNP(p, c) }, want: []int{2, 1, 3, 4}},
		{name: "prio-p", make: func(p []*Process, c *Processor) Scheduler { return NewPriority(p, c) }, want: []int{2, 1, 3, 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN four processes arriving together with mixed bursts and priorities
			procs := []*Process{
				NewPriorityProcess(1, 0, 6, 0),
				NewPriorityProcess(2, 0, 4, 0),
				NewPriorityProcess(3, 0, 2, 1),
				NewPriorityProcess(4, 0, 2, 1),
			}
			s := tc.make(procs, NewProcessor())

			// WHEN the scheduler runs on an idle processor
			rq := s.Run(0, true)

			// THEN the queue follows the strategy's key with (arrival, pid) ties
			assert.Equal(t, tc.want, rq.PIDs())
			assert.Same(t, rq, s.ReadyQueue())
		})
	}
}

func TestNonPreemptive_Run_WhileBusy_AdmitsNothing(t *testing.T) {
	// GIVEN FCFS running P1 when P2 arrives
	c := NewProcessor()
	p1, p2 := NewProcess(1, 0, 3), NewProcess(2, 1, 1)
	s := NewFCFS([]*Process{p1, p2}, c)
	c.Dispatch(s.Run(0, true).Dequeue(), 0)

	// WHEN the scheduler runs at tick 1
	rq := s.Run(1, true)

	// THEN P2 stays unadmitted until the processor is idle
	assert.Equal(t, 0, rq.Len())
	assert.False(t, s.IsQueued(p2))

	c.Clear()
	assert.Equal(t, []int{2}, s.Run(2, true).PIDs(), "late arrival is picked up once idle")
}

func TestPriority_PreemptsOnArrivalAndResorts(t *testing.T) {
	// GIVEN Prio-P running P1 (priority 5) when P2 (priority 1) arrives at tick 2
	c := NewProcessor()
	p1 := NewPriorityProcess(1, 0, 4, 5)
	p2 := NewPriorityProcess(2, 2, 2, 1)
	s := NewPriority([]*Process{p1, p2}, c)
	c.Dispatch(s.Run(0, true).Dequeue(), 0)
	c.Tick(0)
	c.Tick(1)

	// WHEN the scheduler runs at the arrival tick
	rq := s.Run(2, true)

	// THEN P1 is evicted and the queue is re-sorted by priority
	assert.True(t, c.IsIdle())
	assert.Equal(t, StateReady, p1.State)
	assert.Equal(t, int64(2), p1.BurstRemaining)
	assert.Equal(t, []int{2, 1}, rq.PIDs())
}

func TestPreemptive_AllowPreemptFalse_KeepsRunning(t *testing.T) {
	// GIVEN SRTF running a long process when a short one arrives
	c := NewProcessor()
	p1, p2 := NewProcess(1, 0, 5), NewProcess(2, 1, 1)
	s := NewSRTF([]*Process{p1, p2}, c)
	c.Dispatch(s.Run(0, false).Dequeue(), 0)
	c.Tick(0)

	// WHEN the scheduler runs with preemption disabled
	rq := s.Run(1, false)

	// THEN the arrival is queued but the current process keeps the processor
	assert.Same(t, p1, c.Current())
	assert.Equal(t, []int{2}, rq.PIDs())
}

func TestPreemptive_FinishedProcessIsNotEvicted(t *testing.T) {
	// GIVEN SRTF whose current process consumed its burst on the previous tick
	c := NewProcessor()
	p1, p2 := NewProcess(1, 0, 1), NewProcess(2, 1, 1)
	s := NewSRTF([]*Process{p1, p2}, c)
	c.Dispatch(s.Run(0, true).Dequeue(), 0)
	c.Tick(0)

	// WHEN the scheduler runs before the process is cleared
	s.Run(1, true)

	// THEN the finished process stays put for the driver to retire
	assert.True(t, c.IsFinished())
	assert.False(t, s.IsQueued(p1))
}

func TestSimulator_SRTF_ShortArrivalPreempts(t *testing.T) {
	// GIVEN SRTF with a short job arriving while a long one runs
	p1, p2 := NewProcess(1, 0, 5), NewProcess(2, 1, 2)

	// WHEN simulated
	s := runToCompletion(t, []*Process{p1, p2}, SRTFFactory(), true)

	// THEN the short job finishes first
	assert.Equal(t, int64(3), p2.Completion)
	assert.Equal(t, int64(7), p1.Completion)
	assert.Equal(t, 1, s.Metrics.Evictions)
}

func TestSimulator_Priority_WithAndWithoutPreemption(t *testing.T) {
	tests := []struct {
		name           string
		preempt        bool
		wantP1, wantP2 int64
		wantEvictions  int
	}{
		{name: "preemptive", preempt: true, wantP1: 6, wantP2: 4, wantEvictions: 1},
		{name: "preemption disabled", preempt: false, wantP1: 4, wantP2: 6, wantEvictions: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p1 := NewPriorityProcess(1, 0, 4, 5)
			p2 := NewPriorityProcess(2, 2, 2, 1)

			s := runToCompletion(t, []*Process{p1, p2}, PriorityFactory(), tc.preempt)

			assert.Equal(t, tc.wantP1, p1.Completion)
			assert.Equal(t, tc.wantP2, p2.Completion)
			assert.Equal(t, tc.wantEvictions, s.Metrics.Evictions)
		})
	}
}

func pids(procs []*Process) []int {
	out := make([]int, 0, len(procs))
	for _, p := range procs {
		out = append(out, p.PID)
	}
	return out
}
