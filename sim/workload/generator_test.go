package workload

import (
	"fmt"
	"testing"

	"github.com/os-sim/os-sim/sim"
)

func TestGenerateProcesses_SortedSequentialComplete(t *testing.T) {
	rate := 0.5
	spec := &WorkloadSpec{
		Seed:    42,
		Count:   10,
		Arrival: ArrivalSpec{Mode: "poisson", Rate: &rate},
		Burst:   DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 8}},
		Priority: DistSpec{Type: "uniform", Params: map[string]float64{
			"min": float64(sim.PriorityHighest), "max": float64(sim.PriorityLowest)}},
	}

	procs, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(procs) != 10 {
		t.Fatalf("got %d processes, want 10", len(procs))
	}
	for i, p := range procs {
		if p.PID != i+1 {
			t.Errorf("process %d: PID = %d, want %d", i, p.PID, i+1)
			break
		}
		if want := fmt.Sprintf("P%d", i+1); p.Name != want {
			t.Errorf("process %d: Name = %q, want %q", i, p.Name, want)
			break
		}
		if p.State != sim.StateNew {
			t.Errorf("process %d: State = %q, want %q", i, p.State, sim.StateNew)
			break
		}
		if p.Burst < 1 || p.Burst > 8 {
			t.Errorf("process %d: Burst = %d, want in [1, 8]", i, p.Burst)
			break
		}
		if p.Remaining != p.Burst {
			t.Errorf("process %d: Remaining = %d, want %d", i, p.Remaining, p.Burst)
			break
		}
		if p.Priority < sim.PriorityHighest || p.Priority > sim.PriorityLowest {
			t.Errorf("process %d: Priority = %d out of range", i, p.Priority)
			break
		}
	}
	// Verify sorted by arrival tick
	for i := 1; i < len(procs); i++ {
		if procs[i].Arrival < procs[i-1].Arrival {
			t.Errorf("processes not sorted: [%d].Arrival=%d < [%d].Arrival=%d",
				i, procs[i].Arrival, i-1, procs[i-1].Arrival)
			break
		}
	}
}

func TestGenerateProcesses_Deterministic(t *testing.T) {
	rate := 1.0
	spec := &WorkloadSpec{
		Seed:    7,
		Count:   12,
		Arrival: ArrivalSpec{Mode: "poisson", Rate: &rate},
		Burst:   DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": 2}},
	}

	p1, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatal(err)
	}

	if len(p1) != len(p2) {
		t.Fatalf("different counts: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i].Arrival != p2[i].Arrival || p1[i].Burst != p2[i].Burst || p1[i].Priority != p2[i].Priority {
			t.Errorf("process %d differs: (%d,%d,%d) vs (%d,%d,%d)", i,
				p1[i].Arrival, p1[i].Burst, p1[i].Priority,
				p2[i].Arrival, p2[i].Burst, p2[i].Priority)
			break
		}
	}
}

func TestGenerateProcesses_DifferentSeedsDiffer(t *testing.T) {
	base := WorkloadSpec{
		Count:   10,
		Arrival: ArrivalSpec{Mode: "batch"},
		Burst:   DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 100}},
	}
	specA, specB := base, base
	specA.Seed = 1
	specB.Seed = 2

	pa, err := GenerateProcesses(&specA)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := GenerateProcesses(&specB)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range pa {
		if pa[i].Burst != pb[i].Burst {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical burst sequences")
	}
}

func TestGenerateProcesses_ZeroCount(t *testing.T) {
	spec := &WorkloadSpec{
		Count: 0,
		Burst: DistSpec{Type: "fixed", Params: map[string]float64{"value": 5}},
	}
	procs, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(procs) != 0 {
		t.Errorf("got %d processes, want 0", len(procs))
	}
}

func TestGenerateProcesses_InvalidSpec(t *testing.T) {
	spec := &WorkloadSpec{Count: 3, Burst: DistSpec{Type: "lognormal"}}
	if _, err := GenerateProcesses(spec); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestGenerateProcesses_MissingBurstParams(t *testing.T) {
	// Type passes validation; the sampler factory catches missing params
	spec := &WorkloadSpec{Count: 3, Burst: DistSpec{Type: "uniform"}}
	if _, err := GenerateProcesses(spec); err == nil {
		t.Fatal("expected error for missing burst params")
	}
}

func TestGenerateProcesses_NamePrefix(t *testing.T) {
	spec := &WorkloadSpec{
		Seed:       1,
		Count:      3,
		NamePrefix: "job",
		Burst:      DistSpec{Type: "fixed", Params: map[string]float64{"value": 2}},
	}
	procs, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range procs {
		if want := fmt.Sprintf("job%d", i+1); p.Name != want {
			t.Errorf("process %d: Name = %q, want %q", i, p.Name, want)
		}
	}
}

func TestGenerateProcesses_BatchArrivesAtZero(t *testing.T) {
	spec := &WorkloadSpec{
		Seed:    9,
		Count:   5,
		Arrival: ArrivalSpec{Mode: "batch"},
		Burst:   DistSpec{Type: "fixed", Params: map[string]float64{"value": 3}},
	}
	procs, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range procs {
		if p.Arrival != 0 {
			t.Errorf("process %d: Arrival = %d, want 0", i, p.Arrival)
		}
	}
}

func TestGenerateProcesses_FeedsScheduler(t *testing.T) {
	// GIVEN a generated workload submitted to a fifo scheduler
	spec := &WorkloadSpec{
		Seed:    42,
		Count:   6,
		Arrival: ArrivalSpec{Mode: "batch"},
		Burst:   DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 5}},
	}
	procs, err := GenerateProcesses(spec)
	if err != nil {
		t.Fatal(err)
	}

	sched, err := sim.NewScheduler(sim.SchedulerConfig{Discipline: sim.DisciplineFIFO})
	if err != nil {
		t.Fatal(err)
	}
	var totalBurst int64
	for _, p := range procs {
		totalBurst += p.Burst
		sched.Submit(p)
	}

	// WHEN the scheduler runs to completion
	ticks := sched.RunToCompletion()

	// THEN every process terminates and the makespan equals the total burst
	if ticks != int(totalBurst) {
		t.Errorf("ticks = %d, want %d", ticks, totalBurst)
	}
	if got := len(sched.Terminated()); got != len(procs) {
		t.Errorf("terminated = %d, want %d", got, len(procs))
	}
}
