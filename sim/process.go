// Defines the Process struct that models a single simulated process (PCB)
// in the scheduling engine. Tracks identity, CPU demand, scheduling state,
// and the derived timing metrics (wait, response, completion).

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	// StateNew is the state of a freshly created process, before submission.
	StateNew ProcessState = "new"
	// StateReady means the process sits in the ready queue awaiting dispatch.
	StateReady ProcessState = "ready"
	// StateRunning means the process occupies the (single) running slot.
	StateRunning ProcessState = "running"
	// StateBlocked is reserved for future I/O modeling. No discipline
	// implemented here ever parks a process in it.
	StateBlocked ProcessState = "blocked"
	// StateTerminated means the process has consumed its full burst.
	StateTerminated ProcessState = "terminated"
)

// Sentinel for timing metrics that have not been recorded yet.
const MetricUnset int64 = -1

// Priority bounds. Lower numbers are more urgent; values outside the range
// are clamped by NewProcess.
const (
	PriorityHighest = 1
	PriorityLowest  = 5
)

// Process models a single process's lifecycle in the scheduling simulation.
// Each process has:
// - a caller-assigned positive PID and a display name
// - an arrival tick and a total CPU burst (both fixed at creation)
// - a remaining-work counter decremented by the scheduler tick loop
// - timing metrics filled in as the lifecycle progresses
type Process struct {
	PID  int    // Unique positive identifier, assigned by the caller
	Name string // Display name

	Arrival   int64 // Tick at which the process enters the system (>= 0)
	Burst     int64 // Total CPU ticks required (> 0)
	Remaining int64 // CPU ticks still owed; starts at Burst, 0 once terminated
	Priority  int   // 1 (highest) .. 5 (lowest)

	State ProcessState

	WaitTime       int64 // CompletionTime - Arrival - Burst, recorded at termination
	ResponseTime   int64 // clock - Arrival at first dispatch; MetricUnset before that
	CompletionTime int64 // boundary tick after the final unit of work; MetricUnset before that
}

// NewProcess builds a Process in the new state with Remaining = burst and
// unset response/completion metrics. Priority is normalized into
// [PriorityHighest, PriorityLowest]. The caller is responsible for a
// positive pid, a positive burst, and a non-negative arrival; the scheduler
// accepts whatever it is handed (see Scheduler.Submit).
func NewProcess(pid int, name string, arrival, burst int64, priority int) *Process {
	return &Process{
		PID:            pid,
		Name:           name,
		Arrival:        arrival,
		Burst:          burst,
		Remaining:      burst,
		Priority:       ClampPriority(priority),
		State:          StateNew,
		ResponseTime:   MetricUnset,
		CompletionTime: MetricUnset,
	}
}

// ClampPriority normalizes a raw priority value into the supported range.
func ClampPriority(p int) int {
	if p < PriorityHighest {
		return PriorityHighest
	}
	if p > PriorityLowest {
		return PriorityLowest
	}
	return p
}

// Turnaround returns CompletionTime - Arrival, or MetricUnset if the
// process has not terminated yet.
func (p *Process) Turnaround() int64 {
	if p.CompletionTime == MetricUnset {
		return MetricUnset
	}
	return p.CompletionTime - p.Arrival
}

// String returns a human-readable one-line representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process(PID: %d, Name: %s, State: %s, Remaining: %d/%d)",
		p.PID, p.Name, p.State, p.Remaining, p.Burst)
}
