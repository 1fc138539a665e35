package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCalculatePercentile_EmptyInput_ReturnsZero(t *testing.T) {
	// GIVEN empty float64 slice
	// WHEN CalculatePercentile is called
	result := CalculatePercentile([]float64{}, 99)
	// THEN it returns 0 (not panic)
	if result != 0.0 {
		t.Errorf("expected 0.0 for empty input, got %f", result)
	}

	// Also verify with int64 (generic constraint covers both)
	resultInt := CalculatePercentile([]int64{}, 50)
	if resultInt != 0.0 {
		t.Errorf("expected 0.0 for empty int64 input, got %f", resultInt)
	}
}

func TestCalculatePercentile_SingleElement_ReturnsElement(t *testing.T) {
	// GIVEN a single-element slice
	// WHEN CalculatePercentile is called
	result := CalculatePercentile([]int64{7}, 99)
	// THEN it returns the element itself
	if result != 7.0 {
		t.Errorf("expected 7.0 for single element, got %f", result)
	}
}

func TestCalculatePercentile_InterpolatesBetweenRanks(t *testing.T) {
	// GIVEN two sorted values
	// WHEN the median is requested
	result := CalculatePercentile([]int64{0, 10}, 50)
	// THEN the rank falls halfway between them
	if result != 5.0 {
		t.Errorf("expected 5.0, got %f", result)
	}
}

func TestCalculatePercentile_ExactRank(t *testing.T) {
	// GIVEN five sorted values
	// WHEN the median is requested
	result := CalculatePercentile([]int64{1, 2, 3, 4, 5}, 50)
	// THEN the middle element is returned without interpolation
	if result != 3.0 {
		t.Errorf("expected 3.0, got %f", result)
	}
}

func TestCalculateMean_EmptyInput_ReturnsZero(t *testing.T) {
	if got := CalculateMean([]int64{}); got != 0.0 {
		t.Errorf("expected 0.0 for empty input, got %f", got)
	}
}

func TestCalculateMean_Averages(t *testing.T) {
	if got := CalculateMean([]int64{2, 4, 6}); got != 4.0 {
		t.Errorf("expected 4.0, got %f", got)
	}
}

func TestSaveSeries_WritesCommaSeparatedValues(t *testing.T) {
	// GIVEN a metric series and a destination file
	m := &SchedulerMetrics{}
	path := filepath.Join(t.TempDir(), "waits.csv")

	// WHEN the series is saved
	m.SaveSeries([]int64{0, 3, 7}, path)

	// THEN the file holds the comma-separated values
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading series file: %v", err)
	}
	if string(data) != "0, 3, 7, " {
		t.Errorf("unexpected file content %q", string(data))
	}
}
