package workload

import (
	"math/rand"
)

// PoissonSampler generates exponentially-distributed inter-arrival gaps
// (CV=1), floored at one tick so consecutive arrivals never collapse onto
// the same draw.
type PoissonSampler struct {
	rate float64 // arrivals per tick
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) int64 {
	gap := int64(rng.ExpFloat64() / s.rate)
	if gap < 1 {
		return 1
	}
	return gap
}

// ArrivalTimes expands an arrival spec into count absolute arrival ticks.
// The result is non-decreasing; batch puts every process at tick 0,
// staggered spaces them by a fixed gap, poisson accumulates sampled gaps.
// The spec must have been validated.
func ArrivalTimes(spec ArrivalSpec, count int, rng *rand.Rand) []int64 {
	arrivals := make([]int64, count)
	switch spec.Mode {
	case "", "batch":
		// all zeros
	case "staggered":
		gap := spec.Gap
		if gap == 0 {
			gap = 1
		}
		for i := range arrivals {
			arrivals[i] = int64(i) * gap
		}
	case "poisson":
		sampler := &PoissonSampler{rate: *spec.Rate}
		current := int64(0)
		for i := range arrivals {
			current += sampler.SampleGap(rng)
			arrivals[i] = current
		}
	}
	return arrivals
}
