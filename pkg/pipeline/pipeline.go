package pipeline

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoStages     = errors.New("pipeline defines no stages")
	ErrDuplicate    = errors.New("duplicate stage name")
	ErrUnknownStage = errors.New("stage depends on an unknown stage")
	ErrCycle        = errors.New("stages form a dependency cycle")
)

// Stage is one node of the pipeline graph.
//
// Needs lists the names of stages that must succeed before this one
// may run. Run holds the shell command the stage executes.
type Stage struct {
	Name  string   `yaml:"name"`
	Needs []string `yaml:"needs,omitempty"`
	Run   string   `yaml:"run"`
}

// Pipeline is a named DAG of stages.
type Pipeline struct {
	Name   string  `yaml:"name"`
	Stages []Stage `yaml:"stages"`
}

// Load reads a pipeline definition from a yaml file and validates it.
func Load(path string) (*Pipeline, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{}
	if err := yaml.Unmarshal(buf, p); err != nil {
		return nil, fmt.Errorf("cannot parse pipeline %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the graph: stages exist, names are unique, every
// dependency resolves, and no cycle exists.
func (p *Pipeline) Validate() error {
	if len(p.Stages) == 0 {
		return ErrNoStages
	}
	byName := map[string]Stage{}
	for _, s := range p.Stages {
		if _, ok := byName[s.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, s.Name)
		}
		byName[s.Name] = s
	}
	for _, s := range p.Stages {
		for _, need := range s.Needs {
			if _, ok := byName[need]; !ok {
				return fmt.Errorf("%w: %s needs %s", ErrUnknownStage, s.Name, need)
			}
		}
	}
	if _, err := p.Order(); err != nil {
		return err
	}
	return nil
}

// Order returns the stages in a topological order.
//
// Among stages whose dependencies are all satisfied, the one declared
// earlier comes first, so the order is deterministic.
func (p *Pipeline) Order() ([]Stage, error) {
	index := map[string]int{}
	for i, s := range p.Stages {
		index[s.Name] = i
	}

	indeg := make([]int, len(p.Stages))
	dependents := map[string][]int{}
	for i, s := range p.Stages {
		indeg[i] = len(s.Needs)
		for _, need := range s.Needs {
			dependents[need] = append(dependents[need], i)
		}
	}

	ready := []int{}
	for i, d := range indeg {
		if d == 0 {
			ready = append(ready, i)
		}
	}

	order := []Stage{}
	for len(ready) != 0 {
		sort.Ints(ready)
		next := ready[0]
		ready = ready[1:]

		s := p.Stages[next]
		order = append(order, s)
		for _, dep := range dependents[s.Name] {
			indeg[dep] -= 1
			if indeg[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(p.Stages) {
		stuck := []string{}
		for i, d := range indeg {
			if 0 < d {
				stuck = append(stuck, p.Stages[i].Name)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrCycle, stuck)
	}
	return order, nil
}
