package cmd

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/os-sim/os-sim/sim"
	"github.com/os-sim/os-sim/sim/workload"
	"github.com/os-sim/os-sim/tracing"
)

var scenarioFile string

// scenarioCmd loads a YAML scenario bundle and runs whichever engines it
// configures. The two engines never interact; a bundle with both sections
// is two independent runs sharing one seed.
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run a YAML scenario bundle",
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := sim.LoadScenarioBundle(scenarioFile)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		logrus.Infof("Running scenario %q", bundle.Name)

		ctx, span := startRunSpan("scenario.run", map[string]string{"scenario": bundle.Name})

		dir := filepath.Dir(scenarioFile)
		if bundle.Scheduler != nil {
			runScenarioScheduler(ctx, cmd, bundle, dir)
		}
		if bundle.Memory != nil {
			runScenarioMemory(ctx, cmd, bundle, dir)
		}
		tracing.EndSpan(span, nil)
	},
}

// resolveSibling resolves a spec file reference relative to the scenario
// file's directory. Absolute references pass through.
func resolveSibling(dir, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}

// runScenarioScheduler runs the bundle's scheduler section against its
// workload file, or against the fallback workload when none is named.
func runScenarioScheduler(ctx context.Context, cmd *cobra.Command, bundle *sim.ScenarioBundle, dir string) {
	var spec *workload.WorkloadSpec
	if bundle.WorkloadFile != "" {
		loaded, err := workload.LoadWorkloadSpec(resolveSibling(dir, bundle.WorkloadFile))
		if err != nil {
			logrus.Fatalf("Failed to load workload %s: %v", bundle.WorkloadFile, err)
		}
		if cmd.Flags().Changed("seed") {
			loaded.Seed = seed
		}
		spec = loaded
	} else {
		spec = defaultWorkloadSpec(seed, defaultCount)
	}
	procs, err := workload.GenerateProcesses(spec)
	if err != nil {
		logrus.Fatalf("Workload generation failed: %v", err)
	}

	s, err := sim.NewScheduler(*bundle.Scheduler)
	if err != nil {
		logrus.Fatalf("Scheduler setup failed: %v", err)
	}

	_, span := tracing.StartSpan(ctx, "scenario.schedule")
	span.WithAttributes(map[string]string{
		"discipline": s.Discipline(),
		"processes":  strconv.Itoa(len(procs)),
	})

	logrus.Infof("Scheduling %d processes under %s", len(procs), s.Discipline())
	ticks := sim.RunStaged(s, procs)

	metrics := sim.ComputeSchedulerMetrics(s.Terminated(), s.Clock())
	span.WithAttributes(map[string]string{"ticks": strconv.Itoa(ticks)})
	tracing.EndSpan(span, nil)
	metrics.Print()
}

// runScenarioMemory replays the bundle's script file, or the churn preset
// when none is named, against the bundle's memory section.
func runScenarioMemory(ctx context.Context, cmd *cobra.Command, bundle *sim.ScenarioBundle, dir string) {
	var spec *workload.AllocScriptSpec
	if bundle.ScriptFile != "" {
		loaded, err := workload.LoadAllocScriptSpec(resolveSibling(dir, bundle.ScriptFile))
		if err != nil {
			logrus.Fatalf("Failed to load script %s: %v", bundle.ScriptFile, err)
		}
		if cmd.Flags().Changed("seed") {
			loaded.Seed = seed
		}
		spec = loaded
	} else {
		spec, _ = workload.ScriptScenario("churn", seed)
	}
	ops, err := workload.GenerateScript(spec)
	if err != nil {
		logrus.Fatalf("Script generation failed: %v", err)
	}

	m, err := sim.NewMemory(*bundle.Memory)
	if err != nil {
		logrus.Fatalf("Memory setup failed: %v", err)
	}

	_, span := tracing.StartSpan(ctx, "scenario.memory")
	span.WithAttributes(map[string]string{
		"placement": m.Placement(),
		"ops":       strconv.Itoa(len(ops)),
	})

	logrus.Infof("Replaying %d ops against %d KB under %s", len(ops), m.TotalKB(), m.Placement())
	failures := replayScript(m, ops)

	span.WithAttributes(map[string]string{"failures": strconv.Itoa(failures)})
	tracing.EndSpan(span, nil)
	printBlockMap(m.Blocks())
	m.Stats().Print()
}

// init sets up scenario flags and attaches the subcommand
func init() {
	scenarioCmd.Flags().StringVar(&scenarioFile, "file", "", "Path to a YAML scenario bundle")
	_ = scenarioCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(scenarioCmd)
}
