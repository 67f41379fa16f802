package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProcess_StartsPendingAndUnqueued(t *testing.T) {
	p := NewProcess(3, 4, 6)

	assert.Equal(t, int64(6), p.BurstRemaining)
	assert.Equal(t, UnqueuedLevel, p.QueueLevel)
	assert.Equal(t, StatePending, p.State)
	assert.False(t, p.HasPriority)
	assert.Equal(t, int64(-1), p.FirstRun)
	assert.Equal(t, int64(-1), p.Completion)
	assert.Equal(t, "P3", p.String())
}

func TestProcess_DerivedTimings(t *testing.T) {
	tests := []struct {
		name                          string
		firstRun, completion          int64
		turnaround, waiting, response int64
	}{
		{name: "completed", firstRun: 3, completion: 10, turnaround: 8, waiting: 3, response: 1},
		{name: "dispatched but unfinished", firstRun: 3, completion: -1, turnaround: -1, waiting: -1, response: 1},
		{name: "never dispatched", firstRun: -1, completion: -1, turnaround: -1, waiting: -1, response: -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN a process arriving at 2 with a burst of 5
			p := NewProcess(1, 2, 5)
			p.FirstRun = tc.firstRun
			p.Completion = tc.completion

			// THEN derived timings follow completion, arrival and first dispatch
			assert.Equal(t, tc.turnaround, p.Turnaround())
			assert.Equal(t, tc.waiting, p.Waiting())
			assert.Equal(t, tc.response, p.Response())
		})
	}
}

func TestProcess_Reset_RestoresPreSimulationState(t *testing.T) {
	// GIVEN a process that ran to completion at level 2
	p := NewPriorityProcess(1, 0, 4, 2)
	p.BurstRemaining = 0
	p.QueueLevel = 2
	p.State = StateCompleted
	p.FirstRun = 1
	p.Completion = 9

	// WHEN Reset is called
	p.Reset()

	// THEN it is runnable again and keeps its static attributes
	assert.Equal(t, int64(4), p.BurstRemaining)
	assert.Equal(t, UnqueuedLevel, p.QueueLevel)
	assert.Equal(t, StatePending, p.State)
	assert.Equal(t, int64(-1), p.FirstRun)
	assert.Equal(t, int64(-1), p.Completion)
	assert.Equal(t, 2, p.Priority)
	assert.True(t, p.HasPriority)
}

func TestProcess_Describe_ReportsLiveState(t *testing.T) {
	// GIVEN a prioritized process partway through its burst at level 1
	p := NewProcess(7, 2, 5)
	p.Priority, p.HasPriority = 3, true
	p.BurstRemaining = 4
	p.QueueLevel = 1
	p.State = StateRunning

	// WHEN described
	got := p.Describe()

	// THEN every field shows its current value
	assert.Equal(t,
		"Process: (PID: 7, State: running, Arrival: 2, Burst: 4/5, Priority: 3, Level: 1)",
		got)
}
