package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_New_RequiresPriorityOnEveryProcess(t *testing.T) {
	// GIVEN a priority factory and a process set where P2 has no priority
	procs := []*Process{NewPriorityProcess(1, 0, 1, 0), NewProcess(2, 0, 1)}

	// WHEN materialised
	_, err := PriorityNPFactory().New(procs, NewProcessor())

	// THEN the error names the offending process
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "P2")
}

func TestFactory_New_NilProcessor(t *testing.T) {
	_, err := FCFSFactory().New(nil, nil)

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFactory_ZeroValue_HasNoBuild(t *testing.T) {
	_, err := Factory{Key: "bogus"}.New(nil, NewProcessor())

	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewMLFQFactory_Validation(t *testing.T) {
	tests := []struct {
		name     string
		quantums []int64
		last     Factory
		wantErr  bool
	}{
		{name: "fcfs terminal", quantums: []int64{2, 4}, last: FCFSFactory()},
		{name: "sjf terminal", quantums: []int64{1}, last: SJFFactory()},
		{name: "no quantums", quantums: nil, last: FCFSFactory(), wantErr: true},
		{name: "zero quantum", quantums: []int64{2, 0}, last: FCFSFactory(), wantErr: true},
		{name: "preemptive terminal", quantums: []int64{2}, last: SRTFFactory(), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewMLFQFactory(tc.quantums, tc.last)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "mlfq", f.Key)
			assert.True(t, f.Multilevel)
		})
	}
}

func TestNewMLFQFactory_InheritsTerminalPriorityRequirement(t *testing.T) {
	f, err := NewMLFQFactory([]int64{2}, PriorityNPFactory())
	require.NoError(t, err)

	assert.True(t, f.RequiresPriority)

	_, err = f.New([]*Process{NewProcess(1, 0, 1)}, NewProcessor())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewMLFQFactory_CopiesQuantums(t *testing.T) {
	// GIVEN a factory built from a caller-owned slice
	qs := []int64{2, 4}
	f, err := NewMLFQFactory(qs, FCFSFactory())
	require.NoError(t, err)

	// WHEN the caller mutates the slice afterwards
	qs[0] = 99

	// THEN the built scheduler keeps the quantum it was built with
	s, err := f.New(nil, NewProcessor())
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.(*MLFQ).RoundRobinLayers()[0].Quantum())
}

func TestNewMLQFactory_Validation(t *testing.T) {
	mlfq, err := NewMLFQFactory([]int64{2}, FCFSFactory())
	require.NoError(t, err)

	_, err = NewMLQFactory(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewMLQFactory([]Factory{FCFSFactory(), mlfq}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	f, err := NewMLQFactory([]Factory{FCFSFactory(), SJFFactory()}, func(*Process) int { return 0 })
	require.NoError(t, err)
	assert.False(t, f.RequiresPriority, "custom classifier on priority-free layers needs no priorities")
}

func TestNewMLQFactory_RebuildsRoundRobinAsManual(t *testing.T) {
	// GIVEN an MLQ factory whose first layer is an automatic Round-Robin
	rr, err := NewRoundRobinFactory(3, DecrementAutomatic)
	require.NoError(t, err)
	f, err := NewMLQFactory([]Factory{rr, FCFSFactory()}, nil)
	require.NoError(t, err)

	// WHEN materialised
	c := NewProcessor()
	s, err := f.New(nil, c)
	require.NoError(t, err)

	// THEN the layer is in manual mode and nothing ticks yet
	layer, ok := s.(*MLQ).Layers()[0].(*RoundRobin)
	require.True(t, ok)
	assert.Equal(t, DecrementManual, layer.Mode())
	assert.Equal(t, 0, c.TickHookCount())
}

func TestLastLayerChoices(t *testing.T) {
	keys := make([]string, 0)
	for _, f := range LastLayerChoices() {
		keys = append(keys, f.Key)
		assert.True(t, ValidLastLayers[f.Key])
	}

	assert.Equal(t, []string{"fcfs", "sjf", "prio-np"}, keys)
}
