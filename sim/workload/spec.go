package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/scheduling-sim/scheduling-sim/sim"
)

// ScenarioSpec is the top-level scenario configuration: which algorithm to run
// and on which processes. Loaded from YAML via LoadScenario(path).
type ScenarioSpec struct {
	Algorithm sim.AlgorithmConfig `yaml:"algorithm"`
	Horizon   int64               `yaml:"horizon,omitempty"` // 0 = run until every process completes
	Generate  *GenerateConfig     `yaml:"generate,omitempty"`
	Processes []ProcessSpec       `yaml:"processes,omitempty"`
}

// ProcessSpec describes one process. Priority is optional.
type ProcessSpec struct {
	PID      int   `yaml:"pid"`
	Arrival  int64 `yaml:"arrival"`
	Burst    int64 `yaml:"burst"`
	Priority *int  `yaml:"priority,omitempty"`
}

// LoadScenario reads and parses a YAML scenario file. Unknown fields are rejected.
func LoadScenario(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Unknown fields are rejected.
func ParseScenario(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// Validate checks the algorithm block and every process entry.
func (s *ScenarioSpec) Validate() error {
	if err := s.Algorithm.Validate(); err != nil {
		return err
	}
	if s.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", s.Horizon)
	}
	if len(s.Processes) == 0 && s.Generate == nil {
		return fmt.Errorf("at least one process or a generate block required")
	}
	if len(s.Processes) > 0 && s.Generate != nil {
		logrus.Warnf("scenario has both processes and a generate block; generate is ignored")
	}
	if len(s.Processes) == 0 {
		return s.Generate.Validate()
	}
	seen := make(map[int]bool, len(s.Processes))
	for i, p := range s.Processes {
		if p.PID <= 0 {
			return fmt.Errorf("process %d: pid must be positive, got %d", i, p.PID)
		}
		if seen[p.PID] {
			return fmt.Errorf("process %d: duplicate pid %d", i, p.PID)
		}
		seen[p.PID] = true
		if p.Arrival < 0 {
			return fmt.Errorf("process %d (pid %d): arrival must be non-negative, got %d", i, p.PID, p.Arrival)
		}
		if p.Burst <= 0 {
			return fmt.Errorf("process %d (pid %d): burst must be positive, got %d", i, p.PID, p.Burst)
		}
	}
	return nil
}

// BuildProcesses returns fresh processes for the scenario: the explicit list when
// present, otherwise the generated set.
func (s *ScenarioSpec) BuildProcesses() ([]*sim.Process, error) {
	if len(s.Processes) == 0 {
		if s.Generate == nil {
			return nil, fmt.Errorf("scenario has no processes")
		}
		return Generate(*s.Generate)
	}
	procs := make([]*sim.Process, 0, len(s.Processes))
	for _, p := range s.Processes {
		if p.Priority != nil {
			procs = append(procs, sim.NewPriorityProcess(p.PID, p.Arrival, p.Burst, *p.Priority))
			continue
		}
		procs = append(procs, sim.NewProcess(p.PID, p.Arrival, p.Burst))
	}
	return procs, nil
}
