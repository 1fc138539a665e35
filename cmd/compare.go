package cmd

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/os-sim/os-sim/sim"
	"github.com/os-sim/os-sim/sim/workload"
	"github.com/os-sim/os-sim/tracing"
)

// CLI flags specific to compare. The script source gets its own vars so
// that leaving them unset skips the placement comparison entirely.
var (
	compareScript       string // YAML allocation script spec path
	compareScriptPreset string // Named script preset
)

// compareCmd runs the identical workload under every scheduling discipline
// and prints one metrics row per discipline. With a script source it also
// replays the identical script under every placement algorithm. Same input,
// alternative policy: any difference between rows is the policy's doing.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run one workload under every discipline and compare metrics",
	Run: func(cmd *cobra.Command, args []string) {
		spec := resolveWorkloadSpec(cmd)

		_, span := startRunSpan("compare.run", map[string]string{
			"disciplines": strconv.Itoa(len(sim.ValidDisciplineNames())),
		})

		fmt.Println("=== Discipline Comparison ===")
		fmt.Printf("%-12s %9s %11s %10s %9s %12s\n",
			"discipline", "makespan", "throughput", "mean wait", "p99 wait", "mean turnar.")
		for _, name := range sim.ValidDisciplineNames() {
			// Processes are mutated by a run, so each discipline gets a
			// fresh deterministic copy of the same workload.
			procs, err := workload.GenerateProcesses(spec)
			if err != nil {
				logrus.Fatalf("Workload generation failed: %v", err)
			}
			s, err := sim.NewScheduler(sim.SchedulerConfig{Discipline: name, Quantum: quantum})
			if err != nil {
				logrus.Fatalf("Scheduler setup failed: %v", err)
			}
			sim.RunStaged(s, procs)
			m := sim.ComputeSchedulerMetrics(s.Terminated(), s.Clock())
			fmt.Printf("%-12s %9d %11.4f %10.2f %9.1f %12.2f\n",
				name, m.Makespan, m.Throughput, m.MeanWait, m.P99Wait, m.MeanTurnaround)
		}

		if compareScript != "" || compareScriptPreset != "" {
			comparePlacements(cmd)
		}
		tracing.EndSpan(span, nil)
	},
}

// comparePlacements replays the same script against every placement
// algorithm, each on a fresh Memory.
func comparePlacements(cmd *cobra.Command) {
	spec := resolveScriptSpec(cmd, compareScript, compareScriptPreset)
	ops, err := workload.GenerateScript(spec)
	if err != nil {
		logrus.Fatalf("Script generation failed: %v", err)
	}

	fmt.Println("=== Placement Comparison ===")
	fmt.Printf("%-10s %9s %9s %7s %13s\n",
		"placement", "attempts", "failures", "frag%", "largest free")
	for _, name := range sim.ValidPlacementNames() {
		m, err := sim.NewMemory(sim.MemoryConfig{TotalKB: totalKB, Placement: name, PageSizeKB: pageSizeKB})
		if err != nil {
			logrus.Fatalf("Memory setup failed: %v", err)
		}
		attempts, failures := 0, 0
		for i, op := range ops {
			switch op.Op {
			case workload.OpAllocate:
				ok, err := m.Allocate(op.PID, op.Label, op.SizeKB)
				if err != nil {
					logrus.Fatalf("Op %d invalid: %v", i, err)
				}
				attempts++
				if !ok {
					failures++
				}
			case workload.OpFree:
				m.Free(op.PID)
			}
		}
		st := m.Stats()
		fmt.Printf("%-10s %9d %9d %6.1f%% %10d KB\n",
			name, attempts, failures, st.FragmentationRatio, st.LargestFreeKB)
	}
}

// init sets up compare flags and attaches the subcommand
func init() {
	compareCmd.Flags().Int64Var(&quantum, "quantum", 2, "Round-robin quantum in ticks")
	compareCmd.Flags().StringVar(&workloadFile, "workload", "", "Path to a YAML workload spec")
	compareCmd.Flags().StringVar(&workloadPreset, "preset", "", "Named workload preset")
	compareCmd.Flags().IntVar(&count, "count", defaultCount, "Process count for the fallback workload")
	compareCmd.Flags().StringVar(&compareScript, "script", "", "Also compare placements against this YAML script spec")
	compareCmd.Flags().StringVar(&compareScriptPreset, "script-preset", "", "Also compare placements against this script preset")
	compareCmd.Flags().IntVar(&totalKB, "total-kb", 1024, "Simulated memory capacity in KB")
	compareCmd.Flags().IntVar(&pageSizeKB, "page-size-kb", 0, "Page size for paging mode (0 = default 32)")

	rootCmd.AddCommand(compareCmd)
}
