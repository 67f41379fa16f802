package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Classifier assigns a process to an MLQ layer. Results outside the layer range
// are clamped.
type Classifier func(p *Process) int

// ClassifyByPriority maps a process's priority straight onto a layer index.
func ClassifyByPriority(p *Process) int {
	return p.Priority
}

// MLQ is a static multilevel queue: each process is assigned to one layer at
// admission and never migrates. Layers are scanned top-down while the processor
// is idle; Round-Robin layers are ticked only while selected.
type MLQ struct {
	schedulerBase
	layers   []Scheduler
	rrLayers map[int]*RoundRobin // layer index -> time-sliced layer
	classify Classifier

	active  int
	ticking int
	hookID  HookID
}

// NewMLQ composes layers in priority order. Round-Robin layers must be built in
// manual decrement mode on the same processor.
func NewMLQ(processes []*Process, processor *Processor, layers []Scheduler, classify Classifier) (*MLQ, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: mlq needs at least one layer", ErrInvalidConfig)
	}
	if processor == nil {
		return nil, fmt.Errorf("%w: mlq requires a processor", ErrInvalidConfig)
	}
	if classify == nil {
		classify = ClassifyByPriority
	}
	for _, p := range processes {
		p.QueueLevel = UnqueuedLevel
	}

	m := &MLQ{
		schedulerBase: newSchedulerBase("Multilevel Queue (MLQ)", processes, processor),
		layers:        layers,
		rrLayers:      make(map[int]*RoundRobin),
		classify:      classify,
		active:        len(layers) - 1,
		ticking:       noLayer,
	}
	for i, layer := range layers {
		rr, ok := layer.(*RoundRobin)
		if !ok {
			continue
		}
		if rr.Mode() != DecrementManual {
			return nil, fmt.Errorf("%w: mlq layer %d round robin must use manual decrement", ErrInvalidConfig, i)
		}
		m.rrLayers[i] = rr
	}
	m.hookID = processor.NewHookID("mlq")
	processor.OnClear(m.hookID, m.detachTicking)
	return m, nil
}

// Layers returns the layers in priority order.
func (m *MLQ) Layers() []Scheduler {
	return m.layers
}

// ActiveLayer returns the index of the layer whose queue is authoritative.
func (m *MLQ) ActiveLayer() int {
	return m.active
}

func (m *MLQ) IsQueued(p *Process) bool {
	for _, layer := range m.layers {
		if layer.IsQueued(p) {
			return true
		}
	}
	return false
}

func (m *MLQ) ReadyQueue() *ReadyQueue {
	return m.layers[m.active].ReadyQueue()
}

// Enqueue places each process in its classified layer. Panics if a process is
// already queued in any layer.
func (m *MLQ) Enqueue(procs ...*Process) {
	ordered := append([]*Process(nil), procs...)
	sortByArrival(ordered)
	for _, p := range ordered {
		if m.IsQueued(p) {
			panic(fmt.Sprintf("MLQ.Enqueue: %v is already queued at level %d", p, p.QueueLevel))
		}
		m.admitted[p] = true
		level := m.classify(p)
		if level < 0 {
			level = 0
		}
		if level > len(m.layers)-1 {
			level = len(m.layers) - 1
		}
		p.QueueLevel = level
		logrus.WithFields(logrus.Fields{"pid": p.PID, "level": level}).Debug("mlq admit")
		m.layers[level].Enqueue(p)
	}
}

// Run acts only while the processor is idle.
func (m *MLQ) Run(clock int64, _ bool) *ReadyQueue {
	if !m.processor.IsIdle() {
		return m.ReadyQueue()
	}
	if arrived := m.GetArrivedProcesses(clock); len(arrived) > 0 {
		m.Enqueue(arrived...)
	}

	m.active = len(m.layers) - 1
	for i, layer := range m.layers {
		if layer.ReadyQueue().Len() > 0 {
			m.active = i
			break
		}
	}
	if _, ok := m.rrLayers[m.active]; ok && m.ReadyQueue().Len() > 0 {
		m.attachTicking(m.active)
	} else {
		m.detachTicking(HookCtx{})
	}
	return m.ReadyQueue()
}

func (m *MLQ) attachTicking(layer int) {
	if m.ticking == layer {
		return
	}
	m.detachTicking(HookCtx{})
	rr := m.rrLayers[layer]
	m.processor.OnTick(rr.HookID(), rr.DecrementTimeWindow)
	m.ticking = layer
}

func (m *MLQ) detachTicking(_ HookCtx) {
	if m.ticking == noLayer {
		return
	}
	m.processor.OffTick(m.rrLayers[m.ticking].HookID())
	m.ticking = noLayer
}
