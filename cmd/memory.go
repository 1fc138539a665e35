package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/os-sim/os-sim/sim"
	"github.com/os-sim/os-sim/sim/trace"
	"github.com/os-sim/os-sim/sim/workload"
	"github.com/os-sim/os-sim/tracing"
)

// CLI flags for memory runs. The compare command reuses the capacity flags.
var (
	totalKB      int    // Simulated memory capacity in KB
	placement    string // Placement algorithm
	pageSizeKB   int    // Page size for paging mode (0 = default)
	scriptFile   string // YAML allocation script spec path
	scriptPreset string // Named script preset
)

// memoryCmd replays an allocation script against the memory simulator and
// reports the final layout.
var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Replay an allocation script against the memory simulator",
	Run: func(cmd *cobra.Command, args []string) {
		spec := resolveScriptSpec(cmd, scriptFile, scriptPreset)
		ops, err := workload.GenerateScript(spec)
		if err != nil {
			logrus.Fatalf("Script generation failed: %v", err)
		}

		m, err := sim.NewMemory(sim.MemoryConfig{TotalKB: totalKB, Placement: placement, PageSizeKB: pageSizeKB})
		if err != nil {
			logrus.Fatalf("Memory setup failed: %v", err)
		}
		st := newDecisionTrace()
		m.AttachTrace(st)

		_, span := startRunSpan("memory.run", map[string]string{
			"placement": m.Placement(),
			"ops":       strconv.Itoa(len(ops)),
		})

		logrus.Infof("Replaying %d ops against %d KB under %s (seed=%d)", len(ops), m.TotalKB(), m.Placement(), spec.Seed)
		failures := replayScript(m, ops)
		span.WithAttributes(map[string]string{"failures": strconv.Itoa(failures)})
		tracing.EndSpan(span, nil)

		printBlockMap(m.Blocks())
		m.Stats().Print()
		if st != nil {
			summary := trace.Summarize(st)
			fmt.Printf("Attempts / Failures  : %d / %d\n", summary.AllocationAttempts, summary.AllocationFailures)
			fmt.Printf("Reclaimed            : %d KB\n", summary.ReclaimedKB)
		}
	},
}

// resolveScriptSpec picks the allocation script source: an explicit file
// wins over the named preset. An explicit --seed overrides the file's own
// seed.
func resolveScriptSpec(cmd *cobra.Command, file, presetName string) *workload.AllocScriptSpec {
	if file != "" {
		spec, err := workload.LoadAllocScriptSpec(file)
		if err != nil {
			logrus.Fatalf("Failed to load script %s: %v", file, err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		return spec
	}
	spec, ok := workload.ScriptScenario(presetName, seed)
	if !ok {
		logrus.Fatalf("Unknown script preset %q (have: %v)", presetName, workload.ScriptScenarioNames())
	}
	return spec
}

// replayScript applies each op in order, printing the outcome, and returns
// the number of failed allocations. A failed placement is a normal outcome;
// the replay continues past it.
func replayScript(m *sim.Memory, ops []workload.AllocOp) int {
	failures := 0
	for i, op := range ops {
		switch op.Op {
		case workload.OpAllocate:
			ok, err := m.Allocate(op.PID, op.Label, op.SizeKB)
			if err != nil {
				logrus.Fatalf("Op %d invalid: %v", i, err)
			}
			if ok {
				fmt.Printf("%3d allocate %-8s %4d KB -> ok\n", i, op.Label, op.SizeKB)
			} else {
				fmt.Printf("%3d allocate %-8s %4d KB -> NO FIT\n", i, op.Label, op.SizeKB)
				failures++
			}
		case workload.OpFree:
			m.Free(op.PID)
			fmt.Printf("%3d free     P%d\n", i, op.PID)
		default:
			logrus.Fatalf("Op %d has unknown kind %q", i, op.Op)
		}
	}
	return failures
}

// mapWidth is the character width of the proportional block map bar.
const mapWidth = 64

// printBlockMap renders the block sequence: one row per block, then a
// proportional one-line bar (= system, # allocated, . free).
func printBlockMap(blocks []sim.MemoryBlock) {
	fmt.Println("=== Block Map ===")
	total := 0
	for _, b := range blocks {
		total += b.SizeKB
	}
	var bar strings.Builder
	for _, b := range blocks {
		label := b.Label
		if b.Kind == sim.BlockAllocated {
			label = fmt.Sprintf("P%d %s", b.PID, b.Label)
		}
		fmt.Printf("#%-3d %-9s %6d KB  %s\n", b.ID, b.Kind, b.SizeKB, label)

		ch := "."
		switch b.Kind {
		case sim.BlockSystem:
			ch = "="
		case sim.BlockAllocated:
			ch = "#"
		}
		w := 1
		if total > 0 {
			if w = b.SizeKB * mapWidth / total; w < 1 {
				w = 1
			}
		}
		bar.WriteString(strings.Repeat(ch, w))
	}
	fmt.Printf("[%s]\n", bar.String())
}

// init sets up memory flags and attaches the subcommand
func init() {
	memoryCmd.Flags().IntVar(&totalKB, "total-kb", 1024, "Simulated memory capacity in KB")
	memoryCmd.Flags().StringVar(&placement, "placement", sim.PlacementFirstFit, "Placement algorithm ("+strings.Join(sim.ValidPlacementNames(), ", ")+")")
	memoryCmd.Flags().IntVar(&pageSizeKB, "page-size-kb", 0, "Page size for paging mode (0 = default 32)")
	memoryCmd.Flags().StringVar(&scriptFile, "script", "", "Path to a YAML allocation script spec")
	memoryCmd.Flags().StringVar(&scriptPreset, "script-preset", "churn", "Named script preset ("+strings.Join(workload.ScriptScenarioNames(), ", ")+")")

	rootCmd.AddCommand(memoryCmd)
}
