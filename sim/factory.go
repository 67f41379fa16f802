package sim

import (
	"fmt"
	"strings"
)

// BuildFunc materialises a scheduler once the live process set and processor exist.
type BuildFunc func(processes []*Process, processor *Processor) (Scheduler, error)

// Factory is a configured but not yet materialised scheduler. It lets the driver
// choose a strategy before any process data is known.
type Factory struct {
	Key              string // registry key, e.g. "mlfq"
	Title            string // human-readable name
	RequiresPriority bool   // every process must carry a priority
	Multilevel       bool   // composes other schedulers
	build            BuildFunc
}

// New materialises the scheduler. Fails if the factory needs priorities the
// process set lacks.
func (f Factory) New(processes []*Process, processor *Processor) (Scheduler, error) {
	if f.build == nil {
		return nil, fmt.Errorf("%w: factory %q has no build function", ErrInvalidConfig, f.Key)
	}
	if processor == nil {
		return nil, fmt.Errorf("%w: %s requires a processor", ErrInvalidConfig, f.Key)
	}
	if f.RequiresPriority {
		var missing []string
		for _, p := range processes {
			if !p.HasPriority {
				missing = append(missing, p.String())
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s requires a priority on every process, missing on %s",
				ErrInvalidConfig, f.Key, strings.Join(missing, ", "))
		}
	}
	return f.build(processes, processor)
}

func (f Factory) String() string {
	return f.Title
}

// FCFSFactory returns the factory for First Come First Serve.
func FCFSFactory() Factory {
	return Factory{Key: "fcfs", Title: AlgorithmTitles["fcfs"],
		build: func(pl []*Process, c *Processor) (Scheduler, error) { return NewFCFS(pl, c), nil }}
}

// SJFFactory returns the factory for Shortest Job First.
func SJFFactory() Factory {
	return Factory{Key: "sjf", Title: AlgorithmTitles["sjf"],
		build: func(pl []*Process, c *Processor) (Scheduler, error) { return NewSJF(pl, c), nil }}
}

// SRTFFactory returns the factory for Shortest Remaining Time First.
func SRTFFactory() Factory {
	return Factory{Key: "srtf", Title: AlgorithmTitles["srtf"],
		build: func(pl []*Process, c *Processor) (Scheduler, error) { return NewSRTF(pl, c), nil }}
}

// PriorityNPFactory returns the factory for non-preemptive priority scheduling.
func PriorityNPFactory() Factory {
	return Factory{Key: "prio-np", Title: AlgorithmTitles["prio-np"], RequiresPriority: true,
		build: func(pl []*Process, c *Processor) (Scheduler, error) { return NewPriorityNP(pl, c), nil }}
}

// PriorityFactory returns the factory for preemptive priority scheduling.
func PriorityFactory() Factory {
	return Factory{Key: "prio-p", Title: AlgorithmTitles["prio-p"], RequiresPriority: true,
		build: func(pl []*Process, c *Processor) (Scheduler, error) { return NewPriority(pl, c), nil }}
}

// NewRoundRobinFactory captures a quantum and decrement mode.
func NewRoundRobinFactory(quantum int64, mode DecrementMode) (Factory, error) {
	if quantum <= 0 {
		return Factory{}, fmt.Errorf("%w: round robin quantum must be positive, got %d", ErrInvalidConfig, quantum)
	}
	return Factory{Key: "rr", Title: fmt.Sprintf("Round Robin (RR, q=%d)", quantum),
		build: func(pl []*Process, c *Processor) (Scheduler, error) {
			return NewRoundRobin(pl, c, quantum, mode)
		}}, nil
}

// LastLayerChoices returns the strategies allowed as an MLFQ terminal layer.
func LastLayerChoices() []Factory {
	return []Factory{FCFSFactory(), SJFFactory(), PriorityNPFactory()}
}

// NewMLFQFactory captures the Round-Robin quanta (highest layer first) and the
// terminal layer. The terminal layer must be one of LastLayerChoices.
func NewMLFQFactory(quantums []int64, lastLayer Factory) (Factory, error) {
	if len(quantums) == 0 {
		return Factory{}, fmt.Errorf("%w: mlfq needs at least one round robin quantum", ErrInvalidConfig)
	}
	for i, q := range quantums {
		if q <= 0 {
			return Factory{}, fmt.Errorf("%w: mlfq quantum %d must be positive, got %d", ErrInvalidConfig, i, q)
		}
	}
	if !ValidLastLayers[lastLayer.Key] {
		return Factory{}, fmt.Errorf("%w: mlfq terminal layer must be one of fcfs, sjf, prio-np, got %q",
			ErrInvalidConfig, lastLayer.Key)
	}
	qs := append([]int64(nil), quantums...)
	return Factory{
		Key:              "mlfq",
		Title:            AlgorithmTitles["mlfq"],
		RequiresPriority: lastLayer.RequiresPriority,
		Multilevel:       true,
		build: func(pl []*Process, c *Processor) (Scheduler, error) {
			last, err := lastLayer.New(nil, c)
			if err != nil {
				return nil, fmt.Errorf("mlfq terminal layer: %w", err)
			}
			return NewMLFQ(pl, c, qs, last)
		},
	}, nil
}

// NewMLQFactory captures the layer strategies (highest priority first) and the
// classifier. Round-Robin layers are rebuilt in manual decrement mode. A nil
// classifier defaults to ClassifyByPriority, which requires priorities.
func NewMLQFactory(layers []Factory, classify Classifier) (Factory, error) {
	if len(layers) == 0 {
		return Factory{}, fmt.Errorf("%w: mlq needs at least one layer", ErrInvalidConfig)
	}
	requiresPriority := classify == nil
	for i, l := range layers {
		if l.Multilevel {
			return Factory{}, fmt.Errorf("%w: mlq layer %d cannot be multilevel (%s)", ErrInvalidConfig, i, l.Key)
		}
		if l.build == nil {
			return Factory{}, fmt.Errorf("%w: mlq layer %d has no build function", ErrInvalidConfig, i)
		}
		requiresPriority = requiresPriority || l.RequiresPriority
	}
	ls := append([]Factory(nil), layers...)
	return Factory{
		Key:              "mlq",
		Title:            AlgorithmTitles["mlq"],
		RequiresPriority: requiresPriority,
		Multilevel:       true,
		build: func(pl []*Process, c *Processor) (Scheduler, error) {
			built := make([]Scheduler, 0, len(ls))
			for i, l := range ls {
				layer, err := l.New(nil, c)
				if err != nil {
					return nil, fmt.Errorf("mlq layer %d: %w", i, err)
				}
				if rr, ok := layer.(*RoundRobin); ok {
					rr.useManualDecrement()
				}
				built = append(built, layer)
			}
			return NewMLQ(pl, c, built, classify)
		},
	}, nil
}
