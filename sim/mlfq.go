package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// noLayer marks the absence of a ticking layer.
const noLayer = -1

// MLFQ is a multilevel feedback queue: N Round-Robin layers with their own
// quanta followed by one non-preemptive terminal layer. Fresh arrivals enter
// layer 0; a process whose quantum expires is re-admitted one layer deeper.
//
// Only one Round-Robin layer decrements its time window at any instant: the one
// selected to feed the processor. Its tick hook is attached on selection and
// detached when the processor clears.
type MLFQ struct {
	schedulerBase
	rrLayers  []*RoundRobin
	lastLayer Scheduler
	layers    []Scheduler // rrLayers followed by lastLayer

	active  int // index into layers of the authoritative queue
	ticking int // index into rrLayers whose tick hook is attached, or noLayer
	hookID  HookID
}

// NewMLFQ wires Round-Robin layers (one per quantum) in manual decrement mode
// above lastLayer. All layers share processor.
func NewMLFQ(processes []*Process, processor *Processor, quantums []int64, lastLayer Scheduler) (*MLFQ, error) {
	if len(quantums) == 0 {
		return nil, fmt.Errorf("%w: mlfq needs at least one round robin quantum", ErrInvalidConfig)
	}
	if lastLayer == nil {
		return nil, fmt.Errorf("%w: mlfq needs a terminal layer", ErrInvalidConfig)
	}
	if processor == nil {
		return nil, fmt.Errorf("%w: mlfq requires a processor", ErrInvalidConfig)
	}
	for _, p := range processes {
		p.QueueLevel = UnqueuedLevel
	}

	m := &MLFQ{
		schedulerBase: newSchedulerBase("Multilevel Feedback Queue (MLFQ)", processes, processor),
		lastLayer:     lastLayer,
		ticking:       noLayer,
	}
	for i, q := range quantums {
		layer, err := NewRoundRobin(nil, processor, q, DecrementManual)
		if err != nil {
			return nil, fmt.Errorf("mlfq layer %d: %w", i, err)
		}
		layer.SetOwner(m)
		m.rrLayers = append(m.rrLayers, layer)
		m.layers = append(m.layers, layer)
	}
	m.layers = append(m.layers, lastLayer)
	m.active = len(m.layers) - 1

	m.hookID = processor.NewHookID("mlfq")
	processor.OnClear(m.hookID, m.detachTicking)
	return m, nil
}

// Layers returns every layer, Round-Robin layers first, terminal layer last.
func (m *MLFQ) Layers() []Scheduler {
	return m.layers
}

// RoundRobinLayers returns the time-sliced layers in priority order.
func (m *MLFQ) RoundRobinLayers() []*RoundRobin {
	return m.rrLayers
}

// LastLayer returns the terminal layer.
func (m *MLFQ) LastLayer() Scheduler {
	return m.lastLayer
}

// ActiveLayer returns the index of the layer whose queue is authoritative.
func (m *MLFQ) ActiveLayer() int {
	return m.active
}

// TickingLayer returns the index of the Round-Robin layer currently attached to
// processor ticks, or -1 when none is.
func (m *MLFQ) TickingLayer() int {
	return m.ticking
}

func (m *MLFQ) IsQueued(p *Process) bool {
	for _, layer := range m.layers {
		if layer.IsQueued(p) {
			return true
		}
	}
	return false
}

func (m *MLFQ) ReadyQueue() *ReadyQueue {
	return m.layers[m.active].ReadyQueue()
}

// Enqueue admits processes in (arrival, pid) order, moving each one layer deeper
// than its previous level. Levels past the terminal layer are clamped to it.
// Panics if a process is already queued in any layer.
func (m *MLFQ) Enqueue(procs ...*Process) {
	ordered := append([]*Process(nil), procs...)
	sortByArrival(ordered)
	last := len(m.layers) - 1
	for _, p := range ordered {
		if m.IsQueued(p) {
			panic(fmt.Sprintf("MLFQ.Enqueue: %v is already queued at level %d", p, p.QueueLevel))
		}
		m.admitted[p] = true
		p.QueueLevel++
		if p.QueueLevel > last {
			logrus.Warnf("MLFQ: %v demoted past terminal layer, clamping level %d to %d", p, p.QueueLevel, last)
			p.QueueLevel = last
		}
		logrus.WithFields(logrus.Fields{"pid": p.PID, "level": p.QueueLevel}).Debug("mlfq admit")
		m.layers[p.QueueLevel].Enqueue(p)
	}
}

// Run acts only while the processor is idle: it admits arrivals to layer 0, then
// selects the highest non-empty Round-Robin layer and attaches its tick hook, or
// falls back to the terminal layer.
func (m *MLFQ) Run(clock int64, _ bool) *ReadyQueue {
	if !m.processor.IsIdle() {
		return m.ReadyQueue()
	}
	if arrived := m.GetArrivedProcesses(clock); len(arrived) > 0 {
		m.Enqueue(arrived...)
	}

	for i, layer := range m.rrLayers {
		if layer.ReadyQueue().Len() > 0 {
			m.attachTicking(i)
			m.active = i
			return m.ReadyQueue()
		}
	}
	m.detachTicking(HookCtx{})
	m.active = len(m.layers) - 1
	return m.ReadyQueue()
}

func (m *MLFQ) attachTicking(layer int) {
	if m.ticking == layer {
		return
	}
	m.detachTicking(HookCtx{})
	rr := m.rrLayers[layer]
	m.processor.OnTick(rr.HookID(), rr.DecrementTimeWindow)
	m.ticking = layer
}

func (m *MLFQ) detachTicking(_ HookCtx) {
	if m.ticking == noLayer {
		return
	}
	m.processor.OffTick(m.rrLayers[m.ticking].HookID())
	m.ticking = noLayer
}
