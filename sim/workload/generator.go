package workload

import (
	"fmt"
	"sort"

	"github.com/os-sim/os-sim/sim"
)

// GenerateProcesses creates a process workload from a WorkloadSpec.
// Deterministic given the same spec (the seed travels inside it).
// Returns processes sorted by arrival tick with sequential PIDs from 1
// and names formed from the spec's prefix.
func GenerateProcesses(spec *WorkloadSpec) ([]*sim.Process, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}
	if spec.Count == 0 {
		return nil, nil
	}

	burstSampler, err := NewBurstSampler(spec.Burst)
	if err != nil {
		return nil, fmt.Errorf("burst distribution: %w", err)
	}
	prioritySampler, err := NewPrioritySampler(spec.Priority)
	if err != nil {
		return nil, fmt.Errorf("priority distribution: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	workloadRNG := rng.ForSubsystem(sim.SubsystemWorkload)

	// Draw order is fixed: all arrival gaps first, then one burst and
	// one priority per process.
	arrivals := ArrivalTimes(spec.Arrival, spec.Count, workloadRNG)

	procs := make([]*sim.Process, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		burst := burstSampler.Sample(workloadRNG)
		priority := prioritySampler.Sample(workloadRNG)
		procs = append(procs, sim.NewProcess(0, "", arrivals[i], burst, priority))
	}

	// Sort by arrival tick (stable sort preserves generation order for ties)
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].Arrival < procs[j].Arrival
	})

	// Assign sequential PIDs and names after the sort
	prefix := spec.NamePrefix
	if prefix == "" {
		prefix = "P"
	}
	for i, p := range procs {
		p.PID = i + 1
		p.Name = fmt.Sprintf("%s%d", prefix, i+1)
	}

	return procs, nil
}
