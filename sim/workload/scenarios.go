package workload

import "sort"

// Built-in scenario presets for common workload patterns.
// Each returns a valid WorkloadSpec ready for use with GenerateProcesses.

// ScenarioConvoy mixes long and short CPU bursts arriving together at
// tick 0. Under FIFO a long burst convoys every short one behind it;
// round-robin breaks the convoy up.
func ScenarioConvoy(seed int64) *WorkloadSpec {
	return &WorkloadSpec{
		Seed:    seed,
		Count:   6,
		Arrival: ArrivalSpec{Mode: "batch"},
		Burst:   DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 18}},
	}
}

// ScenarioInteractive models short bursts trickling in over time with
// mixed priorities, the shape of a terminal session mix.
func ScenarioInteractive(seed int64) *WorkloadSpec {
	rate := 0.5
	return &WorkloadSpec{
		Seed:     seed,
		Count:    8,
		Arrival:  ArrivalSpec{Mode: "poisson", Rate: &rate},
		Burst:    DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 3, "std_dev": 1.5}},
		Priority: DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 5}},
	}
}

// ScenarioBatchHeavy models a small number of long low-priority jobs all
// submitted at once.
func ScenarioBatchHeavy(seed int64) *WorkloadSpec {
	return &WorkloadSpec{
		Seed:     seed,
		Count:    5,
		Arrival:  ArrivalSpec{Mode: "batch"},
		Burst:    DistSpec{Type: "uniform", Params: map[string]float64{"min": 10, "max": 30}},
		Priority: DistSpec{Type: "fixed", Params: map[string]float64{"value": 4}},
	}
}

// ScenarioThrash submits a steady stream of identical short bursts one
// tick apart. With a round-robin quantum of 1 the scheduler spends the
// whole run context-switching. Fully deterministic: no field draws from
// the RNG.
func ScenarioThrash(seed int64) *WorkloadSpec {
	return &WorkloadSpec{
		Seed:    seed,
		Count:   12,
		Arrival: ArrivalSpec{Mode: "staggered", Gap: 1},
		Burst:   DistSpec{Type: "fixed", Params: map[string]float64{"value": 3}},
	}
}

// ScriptChurn generates a long alternating allocate/free sequence that
// fragments partition-mode memory.
func ScriptChurn(seed int64) *AllocScriptSpec {
	return &AllocScriptSpec{
		Seed:       seed,
		Ops:        40,
		MinKB:      4,
		MaxKB:      128,
		FreeWeight: 0.35,
	}
}

// ScriptFill generates allocations only, driving memory toward
// exhaustion.
func ScriptFill(seed int64) *AllocScriptSpec {
	return &AllocScriptSpec{
		Seed:  seed,
		Ops:   16,
		MinKB: 16,
		MaxKB: 256,
	}
}

var scenarioRegistry = map[string]func(seed int64) *WorkloadSpec{
	"convoy":      ScenarioConvoy,
	"interactive": ScenarioInteractive,
	"batch-heavy": ScenarioBatchHeavy,
	"thrash":      ScenarioThrash,
}

var scriptRegistry = map[string]func(seed int64) *AllocScriptSpec{
	"churn": ScriptChurn,
	"fill":  ScriptFill,
}

// Scenario returns the named workload preset seeded with seed, and
// whether the name is known.
func Scenario(name string, seed int64) (*WorkloadSpec, bool) {
	build, ok := scenarioRegistry[name]
	if !ok {
		return nil, false
	}
	return build(seed), true
}

// ScenarioNames returns the workload preset names sorted for CLI help.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarioRegistry))
	for name := range scenarioRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScriptScenario returns the named allocation script preset seeded with
// seed, and whether the name is known.
func ScriptScenario(name string, seed int64) (*AllocScriptSpec, bool) {
	build, ok := scriptRegistry[name]
	if !ok {
		return nil, false
	}
	return build(seed), true
}

// ScriptScenarioNames returns the script preset names sorted for CLI help.
func ScriptScenarioNames() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
