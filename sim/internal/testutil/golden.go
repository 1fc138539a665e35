// Package testutil provides shared test infrastructure for the simulator.
// It consolidates golden dataset types and assertion helpers used by the
// sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase pins the full outcome of one scheduling run: the input
// workload and the expected per-process timing vectors.
type GoldenTestCase struct {
	Name       string          `json:"name"`
	Discipline string          `json:"discipline"`
	Quantum    int64           `json:"quantum,omitempty"`
	Processes  []GoldenProcess `json:"processes"`
	Metrics    GoldenMetrics   `json:"metrics"`
}

// GoldenProcess describes one submitted process.
type GoldenProcess struct {
	PID      int    `json:"pid"`
	Name     string `json:"name"`
	Arrival  int64  `json:"arrival"`
	Burst    int64  `json:"burst"`
	Priority int    `json:"priority,omitempty"`
}

// GoldenMetrics holds the expected outcomes. The vectors are indexed in
// the same order as the case's Processes list.
type GoldenMetrics struct {
	Makespan    int64   `json:"makespan"`
	Completions []int64 `json:"completions"`
	Waits       []int64 `json:"waits"`
	Responses   []int64 `json:"responses"`
	Turnarounds []int64 `json:"turnarounds"`

	MeanWait       float64 `json:"mean_wait"`
	MeanTurnaround float64 `json:"mean_turnaround"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
