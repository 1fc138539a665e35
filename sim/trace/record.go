// Package trace provides decision-trace recording for scheduling and memory
// analysis. This package has no dependencies on sim/; it stores pure data
// types, so reporting tools can consume traces without importing the engines.
package trace

// DispatchRecord captures a process being placed on the CPU.
type DispatchRecord struct {
	PID   int
	Clock int64 // tick at which execution starts
	// Response is clock minus arrival, recorded on first dispatch only;
	// re-dispatches after preemption repeat the original value.
	Response int64
}

// PreemptionRecord captures a quantum expiry forcing a process off the CPU.
type PreemptionRecord struct {
	PID       int
	Clock     int64 // tick boundary at which the process left the CPU
	Remaining int64 // work still owed when preempted
}

// CompletionRecord captures a process finishing its burst.
type CompletionRecord struct {
	PID        int
	Clock      int64 // completion time (end-of-tick boundary)
	Wait       int64
	Turnaround int64
}

// AllocationRecord captures a single memory allocation attempt.
type AllocationRecord struct {
	PID       int
	Label     string
	SizeKB    int
	Placement string // algorithm in effect when the attempt was made
	Succeeded bool
	Reason    string // why the attempt failed; empty on success
}

// FreeRecord captures a release of all memory owned by a process.
type FreeRecord struct {
	PID         int
	ReclaimedKB int
	Blocks      int // number of blocks or pages returned
}

// GanttSlice is one contiguous interval of CPU occupancy, derived from
// dispatch and preemption/completion records. Start is inclusive, Stop
// exclusive: the process executed during ticks [Start, Stop).
type GanttSlice struct {
	PID   int
	Start int64
	Stop  int64
}
