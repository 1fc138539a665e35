package sim

import (
	"fmt"
	"sort"
)

// Discipline decides how submitted processes enter the ready queue and
// whether the running process is forced out on quantum expiry.
// Implementations must be deterministic: same submission order in, same
// queue order out.
type Discipline interface {
	Name() string
	// Admit places a newly submitted process into the ready queue
	// according to the discipline's ordering rules.
	Admit(rq *ReadyQueue, p *Process)
	// Quantum returns the tick budget a dispatched process receives
	// before preemption, or 0 if the discipline never preempts.
	Quantum() int64
}

// Discipline names accepted by configuration.
const (
	DisciplineFIFO       = "fifo"
	DisciplineRoundRobin = "round-robin"
	DisciplinePriority   = "priority"
)

// ValidDisciplines is the set of recognized discipline names.
// Shared by SchedulerConfig.Validate and NewDiscipline to avoid duplication.
// Empty string defaults to FIFO (for CLI flag default compatibility).
var ValidDisciplines = map[string]bool{
	"":                   true,
	DisciplineFIFO:       true,
	DisciplineRoundRobin: true,
	DisciplinePriority:   true,
}

// IsValidDiscipline returns true if name is a recognized discipline.
func IsValidDiscipline(name string) bool {
	return ValidDisciplines[name]
}

// ValidDisciplineNames returns the recognized discipline names sorted,
// excluding the empty default. Derived from ValidDisciplines so CLI help
// text can never drift from validation.
func ValidDisciplineNames() []string {
	names := make([]string, 0, len(ValidDisciplines))
	for name := range ValidDisciplines {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FIFODiscipline dispatches processes in pure submission order and never
// preempts. This is the default discipline.
type FIFODiscipline struct{}

func (f *FIFODiscipline) Name() string { return DisciplineFIFO }

func (f *FIFODiscipline) Admit(rq *ReadyQueue, p *Process) {
	rq.Enqueue(p)
}

func (f *FIFODiscipline) Quantum() int64 { return 0 }

// RoundRobinDiscipline dispatches in submission order but limits each stay
// on the CPU to a fixed quantum of ticks; on expiry the process rejoins the
// tail of the ready queue.
type RoundRobinDiscipline struct {
	quantum int64
}

func (r *RoundRobinDiscipline) Name() string { return DisciplineRoundRobin }

func (r *RoundRobinDiscipline) Admit(rq *ReadyQueue, p *Process) {
	rq.Enqueue(p)
}

func (r *RoundRobinDiscipline) Quantum() int64 { return r.quantum }

// PriorityDiscipline keeps the ready queue sorted ascending by priority
// value (1 = most urgent). The sort is stable: processes sharing a priority
// keep their relative submission order, so equal-priority sets degrade to
// FIFO behavior. It never preempts a running process.
type PriorityDiscipline struct{}

func (p *PriorityDiscipline) Name() string { return DisciplinePriority }

func (p *PriorityDiscipline) Admit(rq *ReadyQueue, proc *Process) {
	rq.Enqueue(proc)
	// Rebuild ordering with a stable sort; an unstable sort would break
	// the FIFO tie rule for equal priorities.
	rq.Reorder(func(ps []*Process) {
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Priority < ps[j].Priority
		})
	})
}

func (p *PriorityDiscipline) Quantum() int64 { return 0 }

// NewDiscipline creates a Discipline by name.
// Valid names: "fifo" (default), "round-robin", "priority".
// Empty string defaults to FIFODiscipline (for CLI flag default compatibility).
// Panics on unrecognized names or on a non-positive round-robin quantum;
// both are rejected earlier by SchedulerConfig.Validate.
func NewDiscipline(name string, quantum int64) Discipline {
	if !IsValidDiscipline(name) {
		panic(fmt.Sprintf("unknown discipline %q", name))
	}
	switch name {
	case "", DisciplineFIFO:
		return &FIFODiscipline{}
	case DisciplineRoundRobin:
		if quantum < 1 {
			panic(fmt.Sprintf("round-robin quantum must be >= 1, got %d", quantum))
		}
		return &RoundRobinDiscipline{quantum: quantum}
	case DisciplinePriority:
		return &PriorityDiscipline{}
	default:
		panic(fmt.Sprintf("unhandled discipline %q", name))
	}
}
