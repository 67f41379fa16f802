// Package sim provides the tick-based CPU scheduling kernel.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - process.go: Process lifecycle (pending → ready → running → completed) and derived timings
//   - processor.go: the shared execution unit and its tick/clear hooks
//   - simulator.go: the tick loop that asks a Scheduler for its ready queue and dispatches
//
// # Strategies
//
// Every strategy implements Scheduler:
//   - scheduler.go: FCFS, SJF, SRTF, PriorityNP, Priority (sorted ready queues)
//   - round_robin.go: RoundRobin with a quantum-sized time window
//   - mlfq.go: MLFQ, Round-Robin layers with demotion above a terminal layer
//   - mlq.go: MLQ, static layers chosen by a Classifier
//
// Composite schedulers share one Processor with their layers. A Round-Robin
// layer decrements its window through a processor tick hook, and only while its
// composite has selected it.
//
// # Configuration
//
// Factory captures a strategy and its parameters before any process exists;
// NewFactory builds one from an AlgorithmConfig. Sub-packages:
//   - sim/trace/: per-tick dispatch, eviction and completion records
//   - sim/workload/: YAML scenarios and seeded process generation
package sim
