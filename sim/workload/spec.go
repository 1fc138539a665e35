package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Seed       int64       `yaml:"seed"`
	Count      int         `yaml:"count"`
	NamePrefix string      `yaml:"name_prefix,omitempty"` // default "P"
	Arrival    ArrivalSpec `yaml:"arrival"`
	Burst      DistSpec    `yaml:"burst"`
	Priority   DistSpec    `yaml:"priority,omitempty"` // empty type = every process at the midpoint priority
}

// ArrivalSpec configures how arrival ticks are laid out.
type ArrivalSpec struct {
	Mode string   `yaml:"mode"`           // "batch" (default), "staggered", "poisson"
	Gap  int64    `yaml:"gap,omitempty"`  // staggered: ticks between consecutive arrivals (default 1)
	Rate *float64 `yaml:"rate,omitempty"` // poisson: mean arrivals per tick
}

// DistSpec parameterizes a sampled quantity (burst length or priority).
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalModes = map[string]bool{
		"": true, "batch": true, "staggered": true, "poisson": true,
	}
	validBurstTypes = map[string]bool{
		"fixed": true, "uniform": true, "gaussian": true,
	}
	validPriorityTypes = map[string]bool{
		"": true, "fixed": true, "uniform": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", s.Count)
	}
	if !validArrivalModes[s.Arrival.Mode] {
		return fmt.Errorf("unknown arrival mode %q; valid: batch, staggered, poisson", s.Arrival.Mode)
	}
	if s.Arrival.Gap < 0 {
		return fmt.Errorf("arrival gap must be non-negative, got %d", s.Arrival.Gap)
	}
	if s.Arrival.Mode == "poisson" {
		if s.Arrival.Rate == nil {
			return fmt.Errorf("poisson arrival requires a rate")
		}
		if err := validateFinitePositive("arrival.rate", *s.Arrival.Rate); err != nil {
			return err
		}
	}
	if !validBurstTypes[s.Burst.Type] {
		return fmt.Errorf("unknown burst distribution %q; valid: fixed, uniform, gaussian", s.Burst.Type)
	}
	if err := validateDistParams("burst", &s.Burst); err != nil {
		return err
	}
	if !validPriorityTypes[s.Priority.Type] {
		return fmt.Errorf("unknown priority distribution %q; valid: fixed, uniform, or empty", s.Priority.Type)
	}
	if err := validateDistParams("priority", &s.Priority); err != nil {
		return err
	}
	return nil
}

func validateDistParams(prefix string, d *DistSpec) error {
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) || val <= 0 {
		return fmt.Errorf("%s must be a finite positive number, got %f", name, val)
	}
	return nil
}
