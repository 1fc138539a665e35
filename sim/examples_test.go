package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExampleConfigs_FIFOConvoy verifies that fifo-convoy.yaml loads
// correctly and configures a FIFO scheduler over an external workload file.
func TestExampleConfigs_FIFOConvoy(t *testing.T) {
	// GIVEN the fifo-convoy.yaml example scenario
	path := filepath.Join("..", "examples", "fifo-convoy.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err, "failed to load fifo-convoy.yaml")

	// THEN validation passes
	require.NoError(t, bundle.Validate(), "validation failed")

	// THEN the scheduler section selects FIFO and no memory section is set
	require.NotNil(t, bundle.Scheduler, "expected a scheduler section")
	assert.Equal(t, DisciplineFIFO, bundle.Scheduler.Discipline)
	assert.Nil(t, bundle.Memory)

	// THEN the scenario names its sibling workload file
	assert.Equal(t, "convoy-workload.yaml", bundle.WorkloadFile)
	assert.Empty(t, bundle.ScriptFile)
}

// TestExampleConfigs_RRInteractive verifies that rr-interactive.yaml loads
// correctly and configures round-robin with the documented quantum.
func TestExampleConfigs_RRInteractive(t *testing.T) {
	// GIVEN the rr-interactive.yaml example scenario
	path := filepath.Join("..", "examples", "rr-interactive.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err, "failed to load rr-interactive.yaml")

	// THEN validation passes
	require.NoError(t, bundle.Validate(), "validation failed")

	// THEN the scheduler section selects round-robin with quantum 2
	require.NotNil(t, bundle.Scheduler, "expected a scheduler section")
	assert.Equal(t, DisciplineRoundRobin, bundle.Scheduler.Discipline)
	assert.Equal(t, int64(2), bundle.Scheduler.Quantum)
	assert.Equal(t, "interactive-workload.yaml", bundle.WorkloadFile)
}

// TestExampleConfigs_MemoryChurn verifies that memory-churn.yaml loads
// correctly and configures a best-fit memory over an external script file.
func TestExampleConfigs_MemoryChurn(t *testing.T) {
	// GIVEN the memory-churn.yaml example scenario
	path := filepath.Join("..", "examples", "memory-churn.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err, "failed to load memory-churn.yaml")

	// THEN validation passes
	require.NoError(t, bundle.Validate(), "validation failed")

	// THEN the memory section selects best-fit over 1024 KB and no
	// scheduler section is set
	require.NotNil(t, bundle.Memory, "expected a memory section")
	assert.Nil(t, bundle.Scheduler)
	assert.Equal(t, PlacementBestFit, bundle.Memory.Placement)
	assert.Equal(t, 1024, bundle.Memory.TotalKB)
	assert.Equal(t, "churn-script.yaml", bundle.ScriptFile)
}

// TestExampleConfigs_FullDemo verifies that full-demo.yaml loads correctly
// and configures both engines: priority scheduling plus 32 KB paging.
func TestExampleConfigs_FullDemo(t *testing.T) {
	// GIVEN the full-demo.yaml example scenario
	path := filepath.Join("..", "examples", "full-demo.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err, "failed to load full-demo.yaml")

	// THEN validation passes
	require.NoError(t, bundle.Validate(), "validation failed")

	// THEN both sections are present
	require.NotNil(t, bundle.Scheduler, "expected a scheduler section")
	require.NotNil(t, bundle.Memory, "expected a memory section")
	assert.Equal(t, DisciplinePriority, bundle.Scheduler.Discipline)
	assert.Equal(t, PlacementPaging, bundle.Memory.Placement)
	assert.Equal(t, 2048, bundle.Memory.TotalKB)
	assert.Equal(t, 32, bundle.Memory.PageSizeKB)

	// THEN both engines construct from their sections
	s, err := NewScheduler(*bundle.Scheduler)
	require.NoError(t, err)
	assert.Equal(t, DisciplinePriority, s.Discipline())
	m, err := NewMemory(*bundle.Memory)
	require.NoError(t, err)
	assert.Equal(t, 2048, m.TotalKB())
}

// TestExampleConfigs_FIFOConvoy_ConvoyEffect verifies that the fifo-convoy
// configuration produces the convoy effect the example exists to show:
// short jobs stuck behind a long one.
func TestExampleConfigs_FIFOConvoy_ConvoyEffect(t *testing.T) {
	// GIVEN a scheduler built from the fifo-convoy.yaml scheduler section
	path := filepath.Join("..", "examples", "fifo-convoy.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err)
	s, err := NewScheduler(*bundle.Scheduler)
	require.NoError(t, err)

	// GIVEN one long job ahead of two short ones, all arriving together
	procs := []*Process{
		NewProcess(1, "long", 0, 10, 3),
		NewProcess(2, "short_a", 0, 1, 3),
		NewProcess(3, "short_b", 0, 1, 3),
	}

	// WHEN the workload runs to completion
	ticks := RunStaged(s, procs)

	// THEN the run spans exactly the summed bursts
	assert.Equal(t, 12, ticks)

	// THEN completion follows submission order despite the burst imbalance
	done := s.Terminated()
	require.Len(t, done, 3)
	assert.Equal(t, 1, done[0].PID)
	assert.Equal(t, 2, done[1].PID)
	assert.Equal(t, 3, done[2].PID)

	// THEN the last short job waited out the entire convoy
	assert.Equal(t, int64(12), done[2].CompletionTime)
	assert.Equal(t, int64(11), done[2].WaitTime)
}

// TestExampleConfigs_RRInteractive_QuantumSharing verifies that the
// rr-interactive quantum interleaves equal jobs instead of running them
// back to back.
func TestExampleConfigs_RRInteractive_QuantumSharing(t *testing.T) {
	// GIVEN a scheduler built from the rr-interactive.yaml scheduler section
	path := filepath.Join("..", "examples", "rr-interactive.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err)
	s, err := NewScheduler(*bundle.Scheduler)
	require.NoError(t, err)

	// GIVEN two equal jobs longer than the quantum
	procs := []*Process{
		NewProcess(1, "task1", 0, 3, 3),
		NewProcess(2, "task2", 0, 3, 3),
	}

	// WHEN the workload runs to completion
	ticks := RunStaged(s, procs)

	// THEN with quantum 2 each job is preempted once: P1 runs ticks 0-1,
	// P2 runs 2-3, P1 finishes at tick 4, P2 at tick 5
	assert.Equal(t, 6, ticks)
	done := s.Terminated()
	require.Len(t, done, 2)
	assert.Equal(t, 1, done[0].PID)
	assert.Equal(t, int64(5), done[0].CompletionTime)
	assert.Equal(t, 2, done[1].PID)
	assert.Equal(t, int64(6), done[1].CompletionTime)

	// THEN the second job got the CPU before the first one finished
	assert.Equal(t, int64(2), done[1].ResponseTime)
}

// TestExampleConfigs_MemoryChurn_BestFitBehavior verifies that the
// memory-churn placement picks the tightest hole, not the first one.
func TestExampleConfigs_MemoryChurn_BestFitBehavior(t *testing.T) {
	// GIVEN a memory built from the memory-churn.yaml memory section
	path := filepath.Join("..", "examples", "memory-churn.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err)
	m, err := NewMemory(*bundle.Memory)
	require.NoError(t, err)

	// GIVEN a layout with a large hole before a small one:
	// [os 102][free 500][P2 100][P3 250][free 72]
	mustAllocate(t, m, 1, "a", 500)
	mustAllocate(t, m, 2, "b", 100)
	mustAllocate(t, m, 3, "c", 250)
	m.Free(1)

	// WHEN allocating 60 KB
	mustAllocate(t, m, 4, "d", 60)

	// THEN best-fit carved the 72 KB hole at the tail, not the 500 KB one
	blocks := m.Blocks()
	require.Len(t, blocks, 6)
	assert.Equal(t, BlockFree, blocks[1].Kind)
	assert.Equal(t, 500, blocks[1].SizeKB, "front hole should be untouched")
	assert.Equal(t, 4, blocks[4].PID)
	assert.Equal(t, 60, blocks[4].SizeKB)
	assert.Equal(t, BlockFree, blocks[5].Kind)
	assert.Equal(t, 12, blocks[5].SizeKB, "leftover of the 72 KB hole")

	// THEN the stats reflect two free blocks out of six
	st := m.Stats()
	assert.Equal(t, 2, st.FreeBlocks)
	assert.Equal(t, 500, st.LargestFreeKB)
	assert.InDelta(t, 33.3, st.FragmentationRatio, 0.1)
}

// TestExampleConfigs_FullDemo_PagingBehavior verifies that the full-demo
// memory section commits whole 32 KB pages and reclaims them on free.
func TestExampleConfigs_FullDemo_PagingBehavior(t *testing.T) {
	// GIVEN a memory built from the full-demo.yaml memory section
	path := filepath.Join("..", "examples", "full-demo.yaml")
	bundle, err := LoadScenarioBundle(path)
	require.NoError(t, err)
	m, err := NewMemory(*bundle.Memory)
	require.NoError(t, err)

	// 2048 KB total: 204 KB system block, 1844 KB free
	require.Equal(t, 1844, m.FreeKB())

	// WHEN allocating 40 KB
	mustAllocate(t, m, 1, "app", 40)

	// THEN two full pages are committed: 64 KB leave the free pool
	assert.Equal(t, 1780, m.FreeKB())
	blocks := m.Blocks()
	require.Len(t, blocks, 4)
	assert.Equal(t, 32, blocks[2].SizeKB)
	assert.Equal(t, 32, blocks[3].SizeKB)
	assert.Equal(t, "app_P1", blocks[2].Label)
	assert.Equal(t, "app_P2", blocks[3].Label)

	// WHEN freeing the process
	m.Free(1)

	// THEN the pages leave the sequence and the free pool is whole again
	assert.Equal(t, 1844, m.FreeKB())
	assert.Len(t, m.Blocks(), 2)
}

// TestExampleConfigs_AllShippedScenariosValidate sweeps every scenario in
// examples/ so a new example cannot ship broken.
func TestExampleConfigs_AllShippedScenariosValidate(t *testing.T) {
	scenarios := []string{
		"fifo-convoy.yaml",
		"rr-interactive.yaml",
		"memory-churn.yaml",
		"full-demo.yaml",
	}
	for _, name := range scenarios {
		t.Run(name, func(t *testing.T) {
			bundle, err := LoadScenarioBundle(filepath.Join("..", "examples", name))
			require.NoError(t, err)
			assert.NoError(t, bundle.Validate())
		})
	}
}

// mustAllocate fails the test unless the allocation succeeds outright.
func mustAllocate(t *testing.T, m *Memory, pid int, label string, sizeKB int) {
	t.Helper()
	ok, err := m.Allocate(pid, label, sizeKB)
	require.NoError(t, err)
	require.True(t, ok, "allocation of %d KB for P%d should fit", sizeKB, pid)
}
