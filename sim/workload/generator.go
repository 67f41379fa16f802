package workload

import (
	"fmt"

	"github.com/scheduling-sim/scheduling-sim/sim"
)

// GenerateConfig parameterizes random process generation.
type GenerateConfig struct {
	Seed        int64 `yaml:"seed"`
	Count       int   `yaml:"count"`
	MaxArrival  int64 `yaml:"max_arrival"` // arrivals drawn uniformly from [0, MaxArrival]
	MinBurst    int64 `yaml:"min_burst"`   // bursts drawn uniformly from [MinBurst, MaxBurst]
	MaxBurst    int64 `yaml:"max_burst"`
	MaxPriority int   `yaml:"max_priority"` // priorities drawn from [0, MaxPriority]; < 0 leaves them unset
}

// DefaultGenerateConfig returns a small, readable workload.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Seed: 42, Count: 5, MaxArrival: 10, MinBurst: 1, MaxBurst: 10, MaxPriority: 4}
}

// Validate checks parameter ranges.
func (c GenerateConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("generate count must be positive, got %d", c.Count)
	}
	if c.MaxArrival < 0 {
		return fmt.Errorf("generate max_arrival must be non-negative, got %d", c.MaxArrival)
	}
	if c.MinBurst <= 0 || c.MaxBurst < c.MinBurst {
		return fmt.Errorf("generate bursts need 0 < min_burst <= max_burst, got [%d, %d]", c.MinBurst, c.MaxBurst)
	}
	return nil
}

// Generate creates Count processes with pids 1..Count. Deterministic given the
// same config.
func Generate(cfg GenerateConfig) ([]*sim.Process, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(cfg.Seed)
	arrivals := rng.ForSubsystem(SubsystemArrivals)
	bursts := rng.ForSubsystem(SubsystemBursts)
	priorities := rng.ForSubsystem(SubsystemPriorities)

	procs := make([]*sim.Process, 0, cfg.Count)
	for i := 1; i <= cfg.Count; i++ {
		arrival := arrivals.Int63n(cfg.MaxArrival + 1)
		burst := cfg.MinBurst + bursts.Int63n(cfg.MaxBurst-cfg.MinBurst+1)
		if cfg.MaxPriority < 0 {
			procs = append(procs, sim.NewProcess(i, arrival, burst))
			continue
		}
		procs = append(procs, sim.NewPriorityProcess(i, arrival, burst, priorities.Intn(cfg.MaxPriority+1)))
	}
	return procs, nil
}
