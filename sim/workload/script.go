package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/os-sim/os-sim/sim"
)

// Allocation script op kinds.
const (
	OpAllocate = "allocate"
	OpFree     = "free"
)

// AllocOp is one step of an allocation script: either an allocation
// request for a fresh PID or a free of a previously allocated one.
type AllocOp struct {
	Op     string `yaml:"op"`
	PID    int    `yaml:"pid"`
	Label  string `yaml:"label,omitempty"`
	SizeKB int    `yaml:"size_kb,omitempty"`
}

// AllocScriptSpec configures seeded random allocation script generation.
// Loaded from YAML via LoadAllocScriptSpec(path). FreeWeight is the
// probability that an op frees a live allocation instead of allocating;
// generated sizes fall in [MinKB, MaxKB].
type AllocScriptSpec struct {
	Seed        int64   `yaml:"seed"`
	Ops         int     `yaml:"ops"`
	MinKB       int     `yaml:"min_kb"`
	MaxKB       int     `yaml:"max_kb"`
	FreeWeight  float64 `yaml:"free_weight"`
	LabelPrefix string  `yaml:"label_prefix,omitempty"` // default "app"
}

// LoadAllocScriptSpec reads and parses a YAML allocation script spec file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadAllocScriptSpec(path string) (*AllocScriptSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script spec: %w", err)
	}
	var spec AllocScriptSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing script spec: %w", err)
	}
	return &spec, nil
}

// Validate checks the op count, size bounds, and free weight.
func (s *AllocScriptSpec) Validate() error {
	if s.Ops < 0 {
		return fmt.Errorf("ops must be non-negative, got %d", s.Ops)
	}
	if s.MinKB < 1 {
		return fmt.Errorf("min_kb must be positive, got %d", s.MinKB)
	}
	if s.MaxKB < s.MinKB {
		return fmt.Errorf("max_kb %d is below min_kb %d", s.MaxKB, s.MinKB)
	}
	if s.FreeWeight < 0 || s.FreeWeight > 1 {
		return fmt.Errorf("free_weight must be in [0, 1], got %f", s.FreeWeight)
	}
	return nil
}

// GenerateScript creates an allocate/free op sequence from a spec.
// Deterministic given the same spec. Free ops only ever target PIDs the
// script allocated earlier and has not freed yet; when nothing is live
// the op falls back to an allocation.
func GenerateScript(spec *AllocScriptSpec) ([]AllocOp, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	scriptRNG := rng.ForSubsystem(sim.SubsystemScript)

	prefix := spec.LabelPrefix
	if prefix == "" {
		prefix = "app"
	}

	ops := make([]AllocOp, 0, spec.Ops)
	var live []int
	nextPID := 1
	for i := 0; i < spec.Ops; i++ {
		if len(live) > 0 && scriptRNG.Float64() < spec.FreeWeight {
			idx := scriptRNG.Intn(len(live))
			pid := live[idx]
			live = append(live[:idx], live[idx+1:]...)
			ops = append(ops, AllocOp{Op: OpFree, PID: pid})
			continue
		}
		size := spec.MinKB
		if spec.MaxKB > spec.MinKB {
			size += scriptRNG.Intn(spec.MaxKB - spec.MinKB + 1)
		}
		pid := nextPID
		nextPID++
		ops = append(ops, AllocOp{
			Op:     OpAllocate,
			PID:    pid,
			Label:  fmt.Sprintf("%s%d", prefix, pid),
			SizeKB: size,
		})
		live = append(live, pid)
	}
	return ops, nil
}
