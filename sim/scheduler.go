package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Scheduler builds and orders a ready queue at a given timestamp.
// Every strategy, single-layer or composite, implements this contract.
type Scheduler interface {
	// Name returns the human-readable strategy title.
	Name() string
	// GetArrivedProcesses returns the never-admitted processes whose arrival is at or
	// before clock, ordered by (arrival, pid). It does not modify any state.
	GetArrivedProcesses(clock int64) []*Process
	// Enqueue admits processes into the ready queue using the strategy's ordering.
	Enqueue(procs ...*Process)
	// Run admits arrivals, applies the ordering/preemption rule and returns the
	// authoritative ready queue. Called once per simulated tick.
	Run(clock int64, allowPreempt bool) *ReadyQueue
	// IsQueued reports whether p sits in one of the scheduler's ready queues.
	IsQueued(p *Process) bool
	// ReadyQueue returns the current authoritative ready queue without side effects.
	ReadyQueue() *ReadyQueue
}

// schedulerBase holds the state shared by every strategy.
type schedulerBase struct {
	name      string
	processes []*Process
	processor *Processor
	ready     *ReadyQueue
	admitted  map[*Process]bool
}

func newSchedulerBase(name string, processes []*Process, processor *Processor) schedulerBase {
	return schedulerBase{
		name:      name,
		processes: processes,
		processor: processor,
		ready:     &ReadyQueue{},
		admitted:  make(map[*Process]bool),
	}
}

func (b *schedulerBase) Name() string {
	return b.name
}

func (b *schedulerBase) GetArrivedProcesses(clock int64) []*Process {
	var arrived []*Process
	for _, p := range b.processes {
		if p.Arrival <= clock && !b.admitted[p] {
			arrived = append(arrived, p)
		}
	}
	sortByArrival(arrived)
	return arrived
}

func (b *schedulerBase) IsQueued(p *Process) bool {
	return b.ready.Contains(p)
}

func (b *schedulerBase) ReadyQueue() *ReadyQueue {
	return b.ready
}

func (b *schedulerBase) markAdmitted(procs []*Process) {
	for _, p := range procs {
		b.admitted[p] = true
	}
}

// sortByArrival orders processes by (arrival, pid) in place.
func sortByArrival(procs []*Process) {
	sort.SliceStable(procs, func(i, j int) bool {
		return lessByArrival(procs[i], procs[j])
	})
}

func lessByArrival(a, b *Process) bool {
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	return a.PID < b.PID
}

func lessByBurst(a, b *Process) bool {
	if a.Burst != b.Burst {
		return a.Burst < b.Burst
	}
	return lessByArrival(a, b)
}

func lessByRemaining(a, b *Process) bool {
	if a.BurstRemaining != b.BurstRemaining {
		return a.BurstRemaining < b.BurstRemaining
	}
	return lessByArrival(a, b)
}

func lessByPriorityBurst(a, b *Process) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return lessByBurst(a, b)
}

func lessByPriorityRemaining(a, b *Process) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return lessByRemaining(a, b)
}

// orderedScheduler keeps its ready queue sorted by a fixed key. Non-preemptive
// variants only touch the queue while the processor is idle; preemptive ones
// evict the current process whenever new processes arrive.
type orderedScheduler struct {
	schedulerBase
	less       func(a, b *Process) bool
	preemptive bool
}

func (s *orderedScheduler) Enqueue(procs ...*Process) {
	s.markAdmitted(procs)
	s.ready.Enqueue(procs...)
	s.ready.SortBy(s.less)
}

func (s *orderedScheduler) Run(clock int64, allowPreempt bool) *ReadyQueue {
	if !s.preemptive && !s.processor.IsIdle() {
		return s.ready
	}
	arrived := s.GetArrivedProcesses(clock)
	if len(arrived) == 0 {
		return s.ready
	}
	if s.preemptive && allowPreempt && s.processor.IsOccupied() && !s.processor.IsFinished() {
		evicted := s.processor.Clear()
		logrus.WithFields(logrus.Fields{"pid": evicted.PID, "clock": clock, "scheduler": s.name}).
			Debug("preempted on arrival")
		s.ready.Enqueue(evicted)
	}
	s.Enqueue(arrived...)
	return s.ready
}

// FCFS orders by (arrival, pid) and never preempts.
type FCFS struct {
	orderedScheduler
}

// NewFCFS creates a First Come First Serve scheduler.
func NewFCFS(processes []*Process, processor *Processor) *FCFS {
	return &FCFS{orderedScheduler{
		schedulerBase: newSchedulerBase("First Come First Serve (FCFS)", processes, processor),
		less:          lessByArrival,
	}}
}

// SJF orders by (burst, arrival, pid) and never preempts.
// Warning: SJF can starve long processes under sustained load.
type SJF struct {
	orderedScheduler
}

// NewSJF creates a Shortest Job First scheduler.
func NewSJF(processes []*Process, processor *Processor) *SJF {
	return &SJF{orderedScheduler{
		schedulerBase: newSchedulerBase("Shortest Job First (SJF)", processes, processor),
		less:          lessByBurst,
	}}
}

// SRTF orders by (remaining burst, arrival, pid) and preempts on arrival.
type SRTF struct {
	orderedScheduler
}

// NewSRTF creates a Shortest Remaining Time First scheduler.
func NewSRTF(processes []*Process, processor *Processor) *SRTF {
	return &SRTF{orderedScheduler{
		schedulerBase: newSchedulerBase("Shortest Remaining Time First (SRTF)", processes, processor),
		less:          lessByRemaining,
		preemptive:    true,
	}}
}

// PriorityNP orders by (priority, burst, arrival, pid) and never preempts.
type PriorityNP struct {
	orderedScheduler
}

// NewPriorityNP creates a non-preemptive priority scheduler.
func NewPriorityNP(processes []*Process, processor *Processor) *PriorityNP {
	return &PriorityNP{orderedScheduler{
		schedulerBase: newSchedulerBase("Priority Non-Preemptive (Prio-NP)", processes, processor),
		less:          lessByPriorityBurst,
	}}
}

// Priority orders by (priority, remaining burst, arrival, pid) and preempts on arrival.
type Priority struct {
	orderedScheduler
}

// NewPriority creates a preemptive priority scheduler.
func NewPriority(processes []*Process, processor *Processor) *Priority {
	return &Priority{orderedScheduler{
		schedulerBase: newSchedulerBase("Priority Preemptive (Prio-P)", processes, processor),
		less:          lessByPriorityRemaining,
		preemptive:    true,
	}}
}
