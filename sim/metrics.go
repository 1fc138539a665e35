// Tracks run-wide scheduling performance metrics for final reporting.

package sim

import (
	"fmt"
	"slices"
)

// SchedulerMetrics aggregates statistics over a finished scheduling run.
// Useful for comparing disciplines on the same workload and for spotting
// starvation (high tail wait under a low mean).
type SchedulerMetrics struct {
	Completed  int     // number of processes that ran to termination
	Makespan   int64   // clock value when the last process completed
	Throughput float64 // completed processes per tick

	MeanWait       float64
	MeanTurnaround float64
	MeanResponse   float64

	P50Wait float64
	P90Wait float64
	P99Wait float64

	P50Turnaround float64
	P90Turnaround float64
	P99Turnaround float64

	// Sorted series retained for percentile export and histograms.
	Waits       []int64
	Turnarounds []int64
	Responses   []int64
}

// ComputeSchedulerMetrics derives metrics from the terminated list and the
// final clock value. Processes still waiting or running are not counted.
func ComputeSchedulerMetrics(done []*Process, makespan int64) *SchedulerMetrics {
	m := &SchedulerMetrics{
		Completed: len(done),
		Makespan:  makespan,
	}
	if len(done) == 0 {
		return m
	}

	for _, p := range done {
		m.Waits = append(m.Waits, p.WaitTime)
		m.Turnarounds = append(m.Turnarounds, p.Turnaround())
		m.Responses = append(m.Responses, p.ResponseTime)
	}
	slices.Sort(m.Waits)
	slices.Sort(m.Turnarounds)
	slices.Sort(m.Responses)

	m.MeanWait = CalculateMean(m.Waits)
	m.MeanTurnaround = CalculateMean(m.Turnarounds)
	m.MeanResponse = CalculateMean(m.Responses)

	m.P50Wait = CalculatePercentile(m.Waits, 50)
	m.P90Wait = CalculatePercentile(m.Waits, 90)
	m.P99Wait = CalculatePercentile(m.Waits, 99)

	m.P50Turnaround = CalculatePercentile(m.Turnarounds, 50)
	m.P90Turnaround = CalculatePercentile(m.Turnarounds, 90)
	m.P99Turnaround = CalculatePercentile(m.Turnarounds, 99)

	if makespan > 0 {
		m.Throughput = float64(m.Completed) / float64(makespan)
	}
	return m
}

// Print displays aggregated metrics at the end of a run.
func (m *SchedulerMetrics) Print() {
	fmt.Println("=== Scheduling Metrics ===")
	fmt.Printf("Completed Processes  : %d\n", m.Completed)
	fmt.Printf("Makespan             : %d ticks\n", m.Makespan)
	if m.Completed > 0 {
		fmt.Printf("Throughput           : %.4f proc/tick\n", m.Throughput)
		fmt.Printf("Average Wait         : %.2f ticks\n", m.MeanWait)
		fmt.Printf("Average Turnaround   : %.2f ticks\n", m.MeanTurnaround)
		fmt.Printf("Average Response     : %.2f ticks\n", m.MeanResponse)
		fmt.Printf("Wait p50/p90/p99     : %.1f / %.1f / %.1f ticks\n", m.P50Wait, m.P90Wait, m.P99Wait)
		fmt.Printf("Turnaround p50/p90/p99 : %.1f / %.1f / %.1f ticks\n", m.P50Turnaround, m.P90Turnaround, m.P99Turnaround)
	}
}
