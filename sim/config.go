package sim

import (
	"fmt"
	"sort"
)

// LayerConfig describes one MLQ layer.
type LayerConfig struct {
	Algorithm string `yaml:"algorithm"`
	Quantum   int64  `yaml:"quantum,omitempty"`
}

// AlgorithmConfig selects a scheduling strategy and its parameters.
// Loadable from YAML as part of a scenario; CLI flags fill the same struct.
type AlgorithmConfig struct {
	Name      string        `yaml:"name"`
	Quantum   int64         `yaml:"quantum,omitempty"`    // rr
	Quantums  []int64       `yaml:"quantums,omitempty"`   // mlfq, highest layer first
	Levels    int           `yaml:"levels,omitempty"`     // mlfq, total layers incl. terminal (0 = len(quantums)+1)
	LastLayer string        `yaml:"last_layer,omitempty"` // mlfq terminal layer (default fcfs)
	Layers    []LayerConfig `yaml:"layers,omitempty"`     // mlq, highest priority first
	Preempt   *bool         `yaml:"preempt,omitempty"`    // nil = preemption allowed
}

// ValidAlgorithms is the set of recognized algorithm names.
// Shared by Validate() and NewFactory() to avoid duplication.
var ValidAlgorithms = map[string]bool{
	"fcfs": true, "sjf": true, "srtf": true, "prio-np": true, "prio-p": true,
	"rr": true, "mlq": true, "mlfq": true,
}

// AlgorithmTitles maps each recognized algorithm name to a human-readable title.
var AlgorithmTitles = map[string]string{
	"fcfs":    "First Come First Serve (FCFS)",
	"sjf":     "Shortest Job First (SJF)",
	"srtf":    "Shortest Remaining Time First (SRTF)",
	"prio-np": "Priority Non-Preemptive (Prio-NP)",
	"prio-p":  "Priority Preemptive (Prio-P)",
	"rr":      "Round Robin (RR)",
	"mlq":     "Multilevel Queue (MLQ)",
	"mlfq":    "Multilevel Feedback Queue (MLFQ)",
}

// ValidLastLayers is the set of strategies accepted as an MLFQ terminal layer.
var ValidLastLayers = map[string]bool{"fcfs": true, "sjf": true, "prio-np": true}

// AlgorithmNames returns the recognized algorithm names in sorted order.
func AlgorithmNames() []string {
	names := make([]string, 0, len(ValidAlgorithms))
	for name := range ValidAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllowPreempt reports whether preemptive strategies may evict on arrival.
func (c AlgorithmConfig) AllowPreempt() bool {
	return c.Preempt == nil || *c.Preempt
}

// Validate checks names and parameter ranges without building anything.
func (c AlgorithmConfig) Validate() error {
	if !ValidAlgorithms[c.Name] {
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, c.Name)
	}
	switch c.Name {
	case "rr":
		if c.Quantum <= 0 {
			return fmt.Errorf("%w: rr quantum must be positive, got %d", ErrInvalidConfig, c.Quantum)
		}
	case "mlfq":
		if len(c.Quantums) == 0 {
			return fmt.Errorf("%w: mlfq needs at least one quantum", ErrInvalidConfig)
		}
		for i, q := range c.Quantums {
			if q <= 0 {
				return fmt.Errorf("%w: mlfq quantum %d must be positive, got %d", ErrInvalidConfig, i, q)
			}
		}
		if c.Levels != 0 && c.Levels != len(c.Quantums)+1 {
			return fmt.Errorf("%w: mlfq with %d levels needs %d quantums, got %d",
				ErrInvalidConfig, c.Levels, c.Levels-1, len(c.Quantums))
		}
		if c.LastLayer != "" && !ValidLastLayers[c.LastLayer] {
			return fmt.Errorf("%w: unknown mlfq last layer %q", ErrInvalidConfig, c.LastLayer)
		}
	case "mlq":
		if len(c.Layers) == 0 {
			return fmt.Errorf("%w: mlq needs at least one layer", ErrInvalidConfig)
		}
		for i, l := range c.Layers {
			if !ValidAlgorithms[l.Algorithm] || l.Algorithm == "mlq" || l.Algorithm == "mlfq" {
				return fmt.Errorf("%w: mlq layer %d has invalid algorithm %q", ErrInvalidConfig, i, l.Algorithm)
			}
			if l.Algorithm == "rr" && l.Quantum <= 0 {
				return fmt.Errorf("%w: mlq layer %d rr quantum must be positive, got %d", ErrInvalidConfig, i, l.Quantum)
			}
		}
	}
	return nil
}

// NewFactory builds the partially constructed scheduler described by c.
func NewFactory(c AlgorithmConfig) (Factory, error) {
	if err := c.Validate(); err != nil {
		return Factory{}, err
	}
	switch c.Name {
	case "rr":
		return NewRoundRobinFactory(c.Quantum, DecrementAutomatic)
	case "mlfq":
		lastName := c.LastLayer
		if lastName == "" {
			lastName = "fcfs"
		}
		last, err := singleLayerFactory(lastName, 0)
		if err != nil {
			return Factory{}, err
		}
		return NewMLFQFactory(c.Quantums, last)
	case "mlq":
		layers := make([]Factory, 0, len(c.Layers))
		for _, l := range c.Layers {
			f, err := singleLayerFactory(l.Algorithm, l.Quantum)
			if err != nil {
				return Factory{}, err
			}
			layers = append(layers, f)
		}
		return NewMLQFactory(layers, nil)
	default:
		return singleLayerFactory(c.Name, c.Quantum)
	}
}

func singleLayerFactory(name string, quantum int64) (Factory, error) {
	switch name {
	case "fcfs":
		return FCFSFactory(), nil
	case "sjf":
		return SJFFactory(), nil
	case "srtf":
		return SRTFFactory(), nil
	case "prio-np":
		return PriorityNPFactory(), nil
	case "prio-p":
		return PriorityFactory(), nil
	case "rr":
		return NewRoundRobinFactory(quantum, DecrementManual)
	default:
		return Factory{}, fmt.Errorf("%w: %q is not a single-layer algorithm", ErrInvalidConfig, name)
	}
}
