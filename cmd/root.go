package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/scheduling-sim/scheduling-sim/sim"
	"github.com/scheduling-sim/scheduling-sim/sim/trace"
	"github.com/scheduling-sim/scheduling-sim/sim/workload"
)

var (
	// Algorithm selection
	algorithm string   // Algorithm key (fcfs, sjf, srtf, prio-np, prio-p, rr, mlq, mlfq)
	quantum   int64    // Round Robin time quantum
	quantums  []int64  // MLFQ Round Robin layer quantums, highest layer first
	levels    int      // MLFQ total layer count (0 = len(quantums)+1)
	lastLayer string   // MLFQ terminal layer
	mlqLayers []string // MLQ layers as algorithm[:quantum], highest priority first
	noPreempt bool     // Disable eviction on arrival for preemptive strategies

	// Process set
	scenarioPath string // YAML scenario file
	seed         int64  // Seed for random process generation
	count        int    // Number of generated processes
	maxArrival   int64  // Latest generated arrival tick
	minBurst     int64  // Shortest generated burst
	maxBurst     int64  // Longest generated burst
	maxPriority  int    // Highest generated priority value, negative for none

	// Run
	horizon    int64  // Last tick to simulate, 0 = until all processes complete
	traceLevel string // Trace verbosity (none, timeline)
	logLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Tick-based CPU scheduling simulator",
}

// runCmd executes the simulation using parameters from CLI flags and an optional scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		scenario, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		processes, err := scenario.BuildProcesses()
		if err != nil {
			logrus.Fatalf("unable to build processes; %v", err)
		}
		factory, err := sim.NewFactory(scenario.Algorithm)
		if err != nil {
			logrus.Fatalf("unable to configure scheduler; %v", err)
		}

		s, err := sim.NewSimulator(processes, factory, sim.SimConfig{
			Horizon: scenario.Horizon,
			Preempt: scenario.Algorithm.AllowPreempt(),
			Trace:   trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
		})
		if err != nil {
			logrus.Fatalf("unable to create simulator; %v", err)
		}
		s.Run()
		if err := writeReport(os.Stdout, s); err != nil {
			logrus.Fatalf("unable to write report; %v", err)
		}

		logrus.Info("Simulation complete.")
	},
}

// resolveScenario loads --scenario when given and lets explicitly set flags
// override its algorithm block. Without a file, processes are generated.
func resolveScenario(cmd *cobra.Command) (*workload.ScenarioSpec, error) {
	flags := cmd.Flags()
	var scenario *workload.ScenarioSpec
	if scenarioPath != "" {
		loaded, err := workload.LoadScenario(scenarioPath)
		if err != nil {
			return nil, err
		}
		scenario = loaded
	} else {
		scenario = &workload.ScenarioSpec{
			Algorithm: sim.AlgorithmConfig{Name: algorithm},
			Generate: &workload.GenerateConfig{
				Seed:        seed,
				Count:       count,
				MaxArrival:  maxArrival,
				MinBurst:    minBurst,
				MaxBurst:    maxBurst,
				MaxPriority: maxPriority,
			},
		}
	}

	a := &scenario.Algorithm
	if flags.Changed("algorithm") {
		a.Name = algorithm
	}
	if flags.Changed("quantum") || (scenarioPath == "" && a.Quantum == 0) {
		a.Quantum = quantum
	}
	if flags.Changed("quantums") || (scenarioPath == "" && len(a.Quantums) == 0) {
		a.Quantums = quantums
	}
	if flags.Changed("levels") {
		a.Levels = levels
	}
	if flags.Changed("last-layer") || (scenarioPath == "" && a.LastLayer == "") {
		a.LastLayer = lastLayer
	}
	if flags.Changed("layers") || (scenarioPath == "" && len(a.Layers) == 0) {
		layers, err := parseLayers(mlqLayers)
		if err != nil {
			return nil, err
		}
		a.Layers = layers
	}
	if flags.Changed("no-preempt") {
		preempt := !noPreempt
		a.Preempt = &preempt
	}
	if flags.Changed("horizon") || scenarioPath == "" {
		scenario.Horizon = horizon
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	logrus.Infof("Resolved algorithm %q (horizon %d)", a.Name, scenario.Horizon)
	return scenario, nil
}

// parseLayers turns entries like "rr:2" or "fcfs" into MLQ layer configs.
func parseLayers(entries []string) ([]sim.LayerConfig, error) {
	layers := make([]sim.LayerConfig, 0, len(entries))
	for _, entry := range entries {
		name, q, hasQuantum := strings.Cut(entry, ":")
		l := sim.LayerConfig{Algorithm: strings.TrimSpace(name)}
		if hasQuantum {
			v, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("layer %q: invalid quantum: %w", entry, err)
			}
			l.Quantum = v
		}
		layers = append(layers, l)
	}
	return layers, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	gen := workload.DefaultGenerateConfig()

	runCmd.Flags().StringVar(&algorithm, "algorithm", "mlfq", "Scheduling algorithm (fcfs, sjf, srtf, prio-np, prio-p, rr, mlq, mlfq)")
	runCmd.Flags().Int64Var(&quantum, "quantum", 2, "Round Robin time quantum (in ticks)")
	runCmd.Flags().Int64SliceVar(&quantums, "quantums", []int64{2, 4}, "Comma-separated MLFQ Round Robin quantums, highest layer first")
	runCmd.Flags().IntVar(&levels, "levels", 0, "MLFQ total layer count including the terminal layer (0 = derived from quantums)")
	runCmd.Flags().StringVar(&lastLayer, "last-layer", "fcfs", "MLFQ terminal layer (fcfs, sjf, prio-np)")
	runCmd.Flags().StringSliceVar(&mlqLayers, "layers", []string{"rr:2", "sjf", "fcfs"}, "Comma-separated MLQ layers as algorithm[:quantum], highest priority first")
	runCmd.Flags().BoolVar(&noPreempt, "no-preempt", false, "Disable eviction on arrival for preemptive strategies")

	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file (algorithm, horizon, processes)")
	runCmd.Flags().Int64Var(&seed, "seed", gen.Seed, "Seed for random process generation")
	runCmd.Flags().IntVar(&count, "count", gen.Count, "Number of generated processes")
	runCmd.Flags().Int64Var(&maxArrival, "max-arrival", gen.MaxArrival, "Latest generated arrival tick")
	runCmd.Flags().Int64Var(&minBurst, "min-burst", gen.MinBurst, "Shortest generated burst")
	runCmd.Flags().Int64Var(&maxBurst, "max-burst", gen.MaxBurst, "Longest generated burst")
	runCmd.Flags().IntVar(&maxPriority, "max-priority", gen.MaxPriority, "Highest generated priority value (negative = no priorities)")

	runCmd.Flags().Int64Var(&horizon, "horizon", 0, "Total simulation horizon in ticks (0 = until all processes complete)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelTimeline), "Trace level (none, timeline)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(algorithmsCmd)
}
