package sim

import (
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration MUST
// produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Subsystem names for partitioned RNG derivation.
const (
	// SubsystemWorkload is the RNG stream for process generation
	// (arrival, burst, and priority sampling).
	SubsystemWorkload = "workload"

	// SubsystemScript is the RNG stream for allocation script
	// generation. Isolated from workload so adding script draws never
	// shifts the process stream for the same seed.
	SubsystemScript = "script"
)

// PartitionedRNG provides deterministic, isolated random number generation
// per subsystem. Each subsystem gets its own *rand.Rand derived from the
// master SimulationKey, so draws in one subsystem never perturb another.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a partitioned RNG from a simulation key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG for the named subsystem, creating it
// deterministically on first use. The same name always returns the same
// instance.
//
// The workload subsystem uses the master seed directly, so seeded runs
// keep producing the workloads they always have. All other subsystems
// derive their seed by XOR-ing the master seed with an FNV-1a hash of
// the subsystem name.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var seed int64
	if name == SubsystemWorkload {
		seed = int64(p.key)
	} else {
		seed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the master simulation key.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes the FNV-1a 64-bit hash of a string.
func fnv1a64(s string) int64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	var h uint64 = offset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return int64(h)
}
