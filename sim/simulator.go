// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/scheduling-sim/scheduling-sim/sim/trace"
)

// SimConfig groups the driving-loop parameters.
type SimConfig struct {
	Horizon int64             // last tick to simulate (exclusive); <= 0 means unbounded
	Preempt bool              // allow preemptive strategies to evict on arrival
	Trace   trace.TraceConfig // trace collection
}

// Simulator is the tick loop that drives a scheduler: every tick it asks the
// scheduler for its ready queue, dispatches the head when the processor is idle,
// runs the processor for one tick and retires finished processes.
type Simulator struct {
	Clock     int64
	Horizon   int64
	Preempt   bool
	Processes []*Process
	Processor *Processor
	Scheduler Scheduler
	Metrics   *Metrics
	Trace     *trace.SimulationTrace

	hookID    HookID
	completed int
}

// NewSimulator resets the process set, creates a processor and materialises the
// scheduler from factory.
func NewSimulator(processes []*Process, factory Factory, cfg SimConfig) (*Simulator, error) {
	seen := make(map[int]bool, len(processes))
	for _, p := range processes {
		if p == nil {
			return nil, fmt.Errorf("%w: nil process", ErrInvalidConfig)
		}
		if seen[p.PID] {
			return nil, fmt.Errorf("%w: duplicate pid %d", ErrInvalidConfig, p.PID)
		}
		seen[p.PID] = true
		p.Reset()
	}

	processor := NewProcessor()
	sched, err := factory.New(processes, processor)
	if err != nil {
		return nil, err
	}

	horizon := cfg.Horizon
	if horizon <= 0 {
		horizon = math.MaxInt64
	}
	s := &Simulator{
		Horizon:   horizon,
		Preempt:   cfg.Preempt,
		Processes: processes,
		Processor: processor,
		Scheduler: sched,
		Metrics:   NewMetrics(),
	}
	if cfg.Trace.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	// Registered after the scheduler so its own clear hooks run first.
	s.hookID = processor.NewHookID("simulator")
	processor.OnClear(s.hookID, s.onClear)
	return s, nil
}

// Done reports whether every process has completed.
func (s *Simulator) Done() bool {
	return s.completed == len(s.Processes)
}

// Step simulates one tick.
func (s *Simulator) Step() {
	ready := s.Scheduler.Run(s.Clock, s.Preempt)
	if s.Processor.IsIdle() {
		if p := ready.Dequeue(); p != nil {
			s.Processor.Dispatch(p, s.Clock)
			s.Metrics.Dispatches++
			logrus.Debugf("[tick %07d] dispatch %s", s.Clock, p.Describe())
		}
	}

	current := s.Processor.Current()
	if current == nil {
		s.Metrics.IdleTicks++
		s.recordTick(trace.IdlePID, UnqueuedLevel)
	} else {
		s.Metrics.BusyTicks++
		s.recordTick(current.PID, current.QueueLevel)
	}
	logrus.Debugf("[tick %07d] running=%v ready=%v", s.Clock, current, ready)

	s.Processor.Tick(s.Clock)
	if s.Processor.IsFinished() {
		s.Processor.Clear()
	}
	s.Clock++
}

// Run steps until every process completes or the horizon is reached.
func (s *Simulator) Run() {
	logrus.Infof("[tick %07d] Starting %s with %d processes", s.Clock, s.Scheduler.Name(), len(s.Processes))
	for !s.Done() && s.Clock < s.Horizon {
		s.Step()
	}
	s.Metrics.Collect(s.Processes)
	logrus.Infof("[tick %07d] Simulation ended, %d/%d processes completed", s.Clock, s.completed, len(s.Processes))
}

func (s *Simulator) onClear(ctx HookCtx) {
	p := ctx.Process
	if p.IsDone() {
		p.Completion = s.Clock + 1
		s.completed++
		logrus.WithFields(logrus.Fields{"pid": p.PID, "clock": s.Clock}).Info("process completed")
		if s.Trace != nil {
			s.Trace.RecordCompletion(trace.CompletionRecord{Clock: s.Clock, PID: p.PID})
		}
		return
	}
	s.Metrics.Evictions++
	if s.Trace != nil {
		s.Trace.RecordEviction(trace.EvictionRecord{
			Clock:      s.Clock,
			PID:        p.PID,
			Remaining:  p.BurstRemaining,
			QueueLevel: p.QueueLevel,
		})
	}
}

func (s *Simulator) recordTick(pid, level int) {
	if s.Trace == nil {
		return
	}
	s.Trace.RecordTick(trace.TimelineRecord{Clock: s.Clock, PID: pid, QueueLevel: level})
}
