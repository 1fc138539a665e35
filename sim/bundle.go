package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioBundle holds a complete simulation scenario, loadable from a
// YAML file. Nil section pointers mean "not set in YAML": an omitted
// section leaves that engine out of the run. WorkloadFile and ScriptFile
// name sibling spec files consumed by the driving layer; empty string
// means "not set".
type ScenarioBundle struct {
	Name         string           `yaml:"name"`
	Scheduler    *SchedulerConfig `yaml:"scheduler"`
	Memory       *MemoryConfig    `yaml:"memory"`
	WorkloadFile string           `yaml:"workload_file"`
	ScriptFile   string           `yaml:"script_file"`
}

// LoadScenarioBundle reads and parses a YAML scenario file.
func LoadScenarioBundle(path string) (*ScenarioBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var bundle ScenarioBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &bundle, nil
}

// Validate checks every section that is present and that the scenario
// drives at least one engine.
func (b *ScenarioBundle) Validate() error {
	if b.Scheduler == nil && b.Memory == nil {
		return fmt.Errorf("scenario %q configures neither scheduler nor memory", b.Name)
	}
	if b.Scheduler != nil {
		if err := b.Scheduler.Validate(); err != nil {
			return fmt.Errorf("scheduler section: %w", err)
		}
	}
	if b.Memory != nil {
		if err := b.Memory.Validate(); err != nil {
			return fmt.Errorf("memory section: %w", err)
		}
	}
	if b.ScriptFile != "" && b.Memory == nil {
		return fmt.Errorf("scenario %q names a script file but has no memory section", b.Name)
	}
	return nil
}
