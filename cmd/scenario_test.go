package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSibling_RelativeJoinsScenarioDir(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "wl.yaml"), resolveSibling("scenarios", "wl.yaml"))
}

func TestResolveSibling_AbsolutePassesThrough(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "tmp", "wl.yaml")
	assert.Equal(t, abs, resolveSibling("scenarios", abs))
}

func TestScenarioRun_BothSectionsReported(t *testing.T) {
	// GIVEN a scenario bundle naming both engines and a sibling workload
	dir := t.TempDir()
	wl := "seed: 5\ncount: 4\nburst:\n  type: fixed\n  params:\n    value: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wl.yaml"), []byte(wl), 0o644))
	sc := `name: demo
scheduler:
  discipline: round-robin
  quantum: 2
memory:
  total_kb: 1000
  placement: best-fit
workload_file: wl.yaml
`
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sc), 0o644))

	prev := scenarioFile
	t.Cleanup(func() { scenarioFile = prev })
	scenarioFile = path

	// WHEN the scenario command runs
	out := captureStdout(t, func() { scenarioCmd.Run(scenarioCmd, nil) })

	// THEN both engine reports appear on stdout
	assert.Contains(t, out, "Scheduling Metrics")
	assert.Contains(t, out, "Completed Processes  : 4")
	assert.Contains(t, out, "Block Map")
	assert.Contains(t, out, "Memory Stats")
}

func TestScenarioRun_ShippedExamples(t *testing.T) {
	// GIVEN every scenario shipped under examples/
	cases := []struct {
		file  string
		wants []string
	}{
		{"fifo-convoy.yaml", []string{"Scheduling Metrics", "Completed Processes  : 6"}},
		{"rr-interactive.yaml", []string{"Scheduling Metrics", "Completed Processes  : 8"}},
		{"memory-churn.yaml", []string{"Block Map", "Memory Stats"}},
		{"full-demo.yaml", []string{"Scheduling Metrics", "Block Map", "Memory Stats"}},
	}
	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			prev := scenarioFile
			t.Cleanup(func() { scenarioFile = prev })
			scenarioFile = filepath.Join("..", "examples", tc.file)

			// WHEN the scenario command runs it end to end
			out := captureStdout(t, func() { scenarioCmd.Run(scenarioCmd, nil) })

			// THEN the engine reports reach stdout
			for _, want := range tc.wants {
				assert.Contains(t, out, want)
			}
		})
	}
}
