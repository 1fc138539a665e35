package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Dispatches         int
	Preemptions        int
	Completions        int
	MeanWait           float64
	MaxWait            int64
	AllocationAttempts int
	AllocationFailures int
	ReclaimedKB        int
	Gantt              []GanttSlice
	ServiceTicks       map[int]int64 // PID → total ticks on the CPU
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServiceTicks: make(map[int]int64),
	}
	if st == nil {
		return summary
	}

	summary.Dispatches = len(st.Dispatches)
	summary.Preemptions = len(st.Preemptions)
	summary.Completions = len(st.Completions)

	if len(st.Completions) > 0 {
		var totalWait int64
		for _, c := range st.Completions {
			totalWait += c.Wait
			if c.Wait > summary.MaxWait {
				summary.MaxWait = c.Wait
			}
		}
		summary.MeanWait = float64(totalWait) / float64(len(st.Completions))
	}

	for _, a := range st.Allocations {
		summary.AllocationAttempts++
		if !a.Succeeded {
			summary.AllocationFailures++
		}
	}
	for _, f := range st.Frees {
		summary.ReclaimedKB += f.ReclaimedKB
	}

	// Rebuild the CPU occupancy timeline. The CPU is exclusive, so
	// dispatches and the events that end them (preemption or completion)
	// strictly alternate; pairing them in chronological order recovers
	// every occupancy slice.
	ends := mergeEndClocks(st.Preemptions, st.Completions)
	for i, d := range st.Dispatches {
		if i >= len(ends) {
			// Trailing dispatch from a run captured mid-flight.
			break
		}
		slice := GanttSlice{PID: d.PID, Start: d.Clock, Stop: ends[i]}
		summary.Gantt = append(summary.Gantt, slice)
		summary.ServiceTicks[d.PID] += slice.Stop - slice.Start
	}

	return summary
}

// mergeEndClocks merges the preemption and completion clock sequences, each
// already chronological, into one ascending sequence.
func mergeEndClocks(ps []PreemptionRecord, cs []CompletionRecord) []int64 {
	out := make([]int64, 0, len(ps)+len(cs))
	i, j := 0, 0
	for i < len(ps) && j < len(cs) {
		if ps[i].Clock <= cs[j].Clock {
			out = append(out, ps[i].Clock)
			i++
		} else {
			out = append(out, cs[j].Clock)
			j++
		}
	}
	for ; i < len(ps); i++ {
		out = append(out, ps[i].Clock)
	}
	for ; j < len(cs); j++ {
		out = append(out, cs[j].Clock)
	}
	return out
}
