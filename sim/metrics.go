// Tracks simulation-wide and per-process scheduling metrics such as
// turnaround, waiting and response times.

package sim

import (
	"fmt"
	"io"
	"sort"
)

// ProcessResult is the per-process outcome of a run.
type ProcessResult struct {
	PID         int
	Arrival     int64
	Burst       int64
	Priority    int // meaningful only when HasPriority
	HasPriority bool
	QueueLevel  int // final level, meaningful for composite schedulers
	FirstRun    int64
	Completion  int64
	Turnaround  int64
	Waiting     int64
	Response    int64
}

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	CompletedProcesses int
	Makespan           int64 // tick at which the last process completed
	BusyTicks          int64 // ticks with a process on the processor
	IdleTicks          int64 // ticks with nothing to run
	Dispatches         int   // context switches onto the processor
	Evictions          int   // preemptions and quantum expiries

	Results []ProcessResult // sorted by pid
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{Results: make([]ProcessResult, 0)}
}

// Collect fills per-process results from the process set.
func (m *Metrics) Collect(processes []*Process) {
	m.Results = m.Results[:0]
	m.CompletedProcesses = 0
	m.Makespan = 0
	for _, p := range processes {
		r := ProcessResult{
			PID:         p.PID,
			Arrival:     p.Arrival,
			Burst:       p.Burst,
			Priority:    p.Priority,
			HasPriority: p.HasPriority,
			QueueLevel:  p.QueueLevel,
			FirstRun:    p.FirstRun,
			Completion:  p.Completion,
			Turnaround:  p.Turnaround(),
			Waiting:     p.Waiting(),
			Response:    p.Response(),
		}
		if p.Completion >= 0 {
			m.CompletedProcesses++
			m.Makespan = max(m.Makespan, p.Completion)
		}
		m.Results = append(m.Results, r)
	}
	sort.Slice(m.Results, func(i, j int) bool { return m.Results[i].PID < m.Results[j].PID })
}

func (m *Metrics) completed(field func(r ProcessResult) int64) []int64 {
	vals := make([]int64, 0, len(m.Results))
	for _, r := range m.Results {
		if r.Completion >= 0 {
			vals = append(vals, field(r))
		}
	}
	return vals
}

// AvgTurnaround is the mean turnaround over completed processes.
func (m *Metrics) AvgTurnaround() float64 {
	return CalculateMean(m.completed(func(r ProcessResult) int64 { return r.Turnaround }))
}

// AvgWaiting is the mean waiting time over completed processes.
func (m *Metrics) AvgWaiting() float64 {
	return CalculateMean(m.completed(func(r ProcessResult) int64 { return r.Waiting }))
}

// AvgResponse is the mean response time over completed processes.
func (m *Metrics) AvgResponse() float64 {
	return CalculateMean(m.completed(func(r ProcessResult) int64 { return r.Response }))
}

// WaitingPercentile returns the p-th percentile waiting time over completed processes.
func (m *Metrics) WaitingPercentile(p float64) float64 {
	return CalculatePercentile(m.completed(func(r ProcessResult) int64 { return r.Waiting }), p)
}

// Throughput is completed processes per tick of makespan.
func (m *Metrics) Throughput() float64 {
	if m.Makespan == 0 {
		return 0
	}
	return float64(m.CompletedProcesses) / float64(m.Makespan)
}

// Utilization is the fraction of simulated ticks the processor was busy.
func (m *Metrics) Utilization() float64 {
	total := m.BusyTicks + m.IdleTicks
	if total == 0 {
		return 0
	}
	return float64(m.BusyTicks) / float64(total)
}

// Print writes the aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Completed Processes  : %d\n", m.CompletedProcesses)
	if m.CompletedProcesses > 0 {
		fmt.Fprintf(w, "Average Turnaround   : %.2f ticks\n", m.AvgTurnaround())
		fmt.Fprintf(w, "Average Waiting      : %.2f ticks\n", m.AvgWaiting())
		fmt.Fprintf(w, "P90 Waiting          : %.2f ticks\n", m.WaitingPercentile(90))
		fmt.Fprintf(w, "Average Response     : %.2f ticks\n", m.AvgResponse())
		fmt.Fprintf(w, "Makespan             : %d ticks\n", m.Makespan)
		fmt.Fprintf(w, "Throughput           : %.4f processes/tick\n", m.Throughput())
	}
	fmt.Fprintf(w, "CPU Utilization      : %.2f%%\n", 100*m.Utilization())
	fmt.Fprintf(w, "Dispatches           : %d\n", m.Dispatches)
	fmt.Fprintf(w, "Evictions            : %d\n", m.Evictions)
}
