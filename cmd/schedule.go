package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/os-sim/os-sim/sim"
	"github.com/os-sim/os-sim/sim/trace"
	"github.com/os-sim/os-sim/sim/workload"
	"github.com/os-sim/os-sim/tracing"
)

// defaultCount is the process count of the fallback workload generated when
// neither --workload nor --preset is given.
const defaultCount = 8

// CLI flags for scheduler runs. The compare command reuses the workload
// selection flags, so those live in shared vars.
var (
	discipline     string // Scheduling discipline
	quantum        int64  // Round-robin quantum in ticks
	workloadFile   string // YAML workload spec path
	workloadPreset string // Named workload preset
	count          int    // Process count for the fallback workload
	tickMS         int    // Wall-clock milliseconds per tick
	traceLevel     string // Decision trace level
	exportWaits    string // CSV destination for the wait-time series
	jsonOut        bool   // Metrics as JSON instead of the table
)

// scheduleCmd runs one workload through the CPU scheduler and reports
// per-process and aggregate timing metrics.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run a workload through the CPU scheduler",
	Run: func(cmd *cobra.Command, args []string) {
		spec := resolveWorkloadSpec(cmd)
		procs, err := workload.GenerateProcesses(spec)
		if err != nil {
			logrus.Fatalf("Workload generation failed: %v", err)
		}

		s, err := sim.NewScheduler(sim.SchedulerConfig{Discipline: discipline, Quantum: quantum})
		if err != nil {
			logrus.Fatalf("Scheduler setup failed: %v", err)
		}
		st := newDecisionTrace()
		s.AttachTrace(st)

		_, span := startRunSpan("schedule.run", map[string]string{
			"discipline": s.Discipline(),
			"processes":  strconv.Itoa(len(procs)),
		})

		logrus.Infof("Scheduling %d processes under %s (seed=%d)", len(procs), s.Discipline(), spec.Seed)
		startTime := time.Now()
		ticks := runStagedPaced(s, procs, time.Duration(tickMS)*time.Millisecond)

		metrics := sim.ComputeSchedulerMetrics(s.Terminated(), s.Clock())
		span.WithAttributes(map[string]string{
			"ticks":     strconv.Itoa(ticks),
			"completed": strconv.Itoa(metrics.Completed),
		})
		tracing.EndSpan(span, nil)

		reportSchedulerRun(metrics, st)
		if exportWaits != "" {
			metrics.SaveSeries(metrics.Waits, exportWaits)
		}
		logrus.Infof("Run complete in %s (%d ticks)", time.Since(startTime).Round(time.Millisecond), ticks)
	},
}

// resolveWorkloadSpec picks the workload source: an explicit spec file wins,
// then a named preset, then the generated fallback workload of --count
// processes. An explicit --seed overrides the file's own seed, so seeded
// reruns of a shared spec stay reproducible per user.
func resolveWorkloadSpec(cmd *cobra.Command) *workload.WorkloadSpec {
	switch {
	case workloadFile != "":
		spec, err := workload.LoadWorkloadSpec(workloadFile)
		if err != nil {
			logrus.Fatalf("Failed to load workload %s: %v", workloadFile, err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		return spec
	case workloadPreset != "":
		spec, ok := workload.Scenario(workloadPreset, seed)
		if !ok {
			logrus.Fatalf("Unknown workload preset %q (have: %v)", workloadPreset, workload.ScenarioNames())
		}
		return spec
	default:
		return defaultWorkloadSpec(seed, count)
	}
}

// defaultWorkloadSpec is the fallback workload: a batch of n processes with
// uniform bursts and midpoint priority.
func defaultWorkloadSpec(seed int64, n int) *workload.WorkloadSpec {
	return &workload.WorkloadSpec{
		Seed:  seed,
		Count: n,
		Burst: workload.DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 10}},
	}
}

// newDecisionTrace builds a SimulationTrace for the --trace flag value, or
// returns nil when tracing is off.
func newDecisionTrace() *trace.SimulationTrace {
	if !trace.IsValidTraceLevel(traceLevel) {
		logrus.Fatalf("Invalid trace level: %s", traceLevel)
	}
	if trace.TraceLevel(traceLevel) != trace.TraceLevelDecisions {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
}

// runStagedPaced drives the scheduler with arrival staging, sleeping delay
// between ticks so a human can follow the run. Pacing never reorders core
// operations; it only spaces out the same Tick calls, so a paced run
// produces exactly the metrics of an unpaced one.
func runStagedPaced(s *sim.Scheduler, procs []*sim.Process, delay time.Duration) int {
	if delay <= 0 {
		return sim.RunStaged(s, procs)
	}

	staged := make([]*sim.Process, len(procs))
	copy(staged, procs)
	sort.SliceStable(staged, func(i, j int) bool {
		return staged[i].Arrival < staged[j].Arrival
	})

	ticks := 0
	next := 0
	for {
		for next < len(staged) && staged[next].Arrival <= s.Clock() {
			s.Submit(staged[next])
			next++
		}
		if next >= len(staged) && !s.HasWork() {
			return ticks
		}
		s.Tick()
		ticks++

		snap := s.Snapshot()
		running := "idle"
		if snap.Running != nil {
			running = snap.Running.Name
		}
		logrus.Debugf("[tick %04d] running=%s ready=%d done=%d",
			snap.Clock, running, len(snap.Ready), len(snap.Terminated))
		time.Sleep(delay)
	}
}

// reportSchedulerRun prints the end-of-run report: metrics as a table or
// JSON, plus the CPU timeline when decision tracing was on.
func reportSchedulerRun(metrics *sim.SchedulerMetrics, st *trace.SimulationTrace) {
	if jsonOut {
		out, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			logrus.Fatalf("Failed to encode metrics: %v", err)
		}
		fmt.Println(string(out))
	} else {
		metrics.Print()
	}
	if st != nil {
		printTimeline(trace.Summarize(st))
	}
}

// barWidth caps timeline bars so long bursts stay on one terminal line.
const barWidth = 60

// printTimeline renders the CPU occupancy slices recovered from the
// decision trace, one row per dispatch interval.
func printTimeline(summary *trace.TraceSummary) {
	if len(summary.Gantt) == 0 {
		return
	}
	fmt.Println("=== CPU Timeline ===")
	for _, slice := range summary.Gantt {
		width := int(slice.Stop - slice.Start)
		if width > barWidth {
			width = barWidth
		}
		fmt.Printf("P%-4d %5d..%-5d %s\n", slice.PID, slice.Start, slice.Stop, strings.Repeat("#", width))
	}
	if summary.Preemptions > 0 {
		fmt.Printf("(%d preemptions)\n", summary.Preemptions)
	}
}

// init sets up schedule flags and attaches the subcommand
func init() {
	scheduleCmd.Flags().StringVar(&discipline, "discipline", sim.DisciplineFIFO, "Scheduling discipline ("+strings.Join(sim.ValidDisciplineNames(), ", ")+")")
	scheduleCmd.Flags().Int64Var(&quantum, "quantum", 2, "Round-robin quantum in ticks")
	scheduleCmd.Flags().StringVar(&workloadFile, "workload", "", "Path to a YAML workload spec")
	scheduleCmd.Flags().StringVar(&workloadPreset, "preset", "", "Named workload preset ("+strings.Join(workload.ScenarioNames(), ", ")+")")
	scheduleCmd.Flags().IntVar(&count, "count", defaultCount, "Process count for the fallback workload")
	scheduleCmd.Flags().IntVar(&tickMS, "tick-ms", 0, "Wall-clock milliseconds per tick (0 = no pacing)")
	scheduleCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	scheduleCmd.Flags().StringVar(&exportWaits, "export-waits", "", "Write the sorted wait-time series to this CSV file")
	scheduleCmd.Flags().BoolVar(&jsonOut, "json", false, "Print metrics as JSON")

	rootCmd.AddCommand(scheduleCmd)
}
