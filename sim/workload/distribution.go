package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/os-sim/os-sim/sim"
)

// BurstSampler generates CPU burst lengths.
type BurstSampler interface {
	// Sample returns a positive burst length in ticks (>= 1).
	Sample(rng *rand.Rand) int64
}

// FixedSampler always returns the same burst length.
type FixedSampler struct {
	value int64
}

func (s *FixedSampler) Sample(_ *rand.Rand) int64 {
	if s.value < 1 {
		return 1
	}
	return s.value
}

// UniformSampler produces bursts uniformly distributed over [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	if s.min >= s.max {
		return clampBurst(s.min)
	}
	return clampBurst(s.min + rng.Int63n(s.max-s.min+1))
}

// GaussianSampler produces clamped Gaussian burst lengths.
type GaussianSampler struct {
	mean, stdDev float64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	val := rng.NormFloat64()*s.stdDev + s.mean
	return clampBurst(int64(math.Round(val)))
}

func clampBurst(v int64) int64 {
	if v < 1 {
		return 1
	}
	return v
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewBurstSampler creates a BurstSampler from a DistSpec.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	switch spec.Type {
	case "fixed":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &FixedSampler{value: int64(spec.Params["value"])}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		min, max := int64(spec.Params["min"]), int64(spec.Params["max"])
		if min > max {
			return nil, fmt.Errorf("uniform burst min %d exceeds max %d", min, max)
		}
		return &UniformSampler{min: min, max: max}, nil

	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev"); err != nil {
			return nil, err
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
		}, nil

	default:
		return nil, fmt.Errorf("unknown burst distribution %q", spec.Type)
	}
}

// PrioritySampler generates priority values inside the scheduler's
// supported range.
type PrioritySampler interface {
	Sample(rng *rand.Rand) int
}

// fixedPriority always returns the same priority.
type fixedPriority struct {
	value int
}

func (s *fixedPriority) Sample(_ *rand.Rand) int {
	return sim.ClampPriority(s.value)
}

// uniformPriority draws uniformly over [min, max], clamped to the valid
// priority range.
type uniformPriority struct {
	min, max int
}

func (s *uniformPriority) Sample(rng *rand.Rand) int {
	if s.min >= s.max {
		return sim.ClampPriority(s.min)
	}
	return sim.ClampPriority(s.min + rng.Intn(s.max-s.min+1))
}

// DefaultPriority is assigned when the spec leaves the priority
// distribution empty: the midpoint of the supported range.
const DefaultPriority = 3

// NewPrioritySampler creates a PrioritySampler from a DistSpec.
// An empty type yields a sampler fixed at DefaultPriority.
func NewPrioritySampler(spec DistSpec) (PrioritySampler, error) {
	switch spec.Type {
	case "":
		return &fixedPriority{value: DefaultPriority}, nil

	case "fixed":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &fixedPriority{value: int(spec.Params["value"])}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		min, max := int(spec.Params["min"]), int(spec.Params["max"])
		if min > max {
			return nil, fmt.Errorf("uniform priority min %d exceeds max %d", min, max)
		}
		return &uniformPriority{min: min, max: max}, nil

	default:
		return nil, fmt.Errorf("unknown priority distribution %q", spec.Type)
	}
}
