// sim/scheduler.go
package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/os-sim/os-sim/sim/trace"
)

// Scheduler is the core CPU scheduling engine. It owns simulation time, the
// ready queue, the single CPU slot, and the terminated list. Time advances
// only through Tick; the caller controls pacing (real-time delays live in
// the CLI layer, never here).
type Scheduler struct {
	clock      int64
	discipline Discipline
	ready      *ReadyQueue
	running    *Process
	// quantumLeft counts down the running process's remaining tick budget.
	// Unused (stays 0) under non-preemptive disciplines.
	quantumLeft int64
	terminated  []*Process
	trace       *trace.SimulationTrace
}

// NewScheduler creates a Scheduler with the configured discipline.
// The configuration is validated first; unknown discipline names and a
// non-positive round-robin quantum are rejected here, so the factory
// below cannot panic on user input.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		discipline: NewDiscipline(cfg.Discipline, cfg.Quantum),
		ready:      NewReadyQueue(),
		terminated: make([]*Process, 0),
	}, nil
}

// AttachTrace starts recording scheduling decisions into st.
// A nil st disables recording.
func (s *Scheduler) AttachTrace(st *trace.SimulationTrace) {
	s.trace = st
}

// Submit admits a process to the ready queue. The discipline decides where
// it lands: FIFO and round-robin append to the tail, priority keeps the
// queue sorted. Submitting nil is a no-op.
func (s *Scheduler) Submit(p *Process) {
	if p == nil {
		return
	}
	p.State = StateReady
	s.discipline.Admit(s.ready, p)
	logrus.Debugf("[tick %07d] submit P%d (burst=%d priority=%d)", s.clock, p.PID, p.Burst, p.Priority)
}

// Tick advances the simulation by exactly one time unit:
// dispatch if the CPU is idle, execute one unit of work, retire the running
// process if it finished, otherwise preempt it if its quantum expired, then
// advance the clock. Returns true iff work remains afterwards.
func (s *Scheduler) Tick() bool {
	if s.running == nil && s.ready.Len() > 0 {
		p := s.ready.Dequeue()
		p.State = StateRunning
		if p.ResponseTime == MetricUnset {
			p.ResponseTime = s.clock - p.Arrival
		}
		s.quantumLeft = s.discipline.Quantum()
		s.running = p
		logrus.Debugf("[tick %07d] dispatch P%d (remaining=%d)", s.clock, p.PID, p.Remaining)
		if s.trace != nil {
			s.trace.RecordDispatch(trace.DispatchRecord{PID: p.PID, Clock: s.clock, Response: p.ResponseTime})
		}
	}

	if s.running != nil {
		s.running.Remaining--
		if s.quantumLeft > 0 {
			s.quantumLeft--
		}

		if s.running.Remaining <= 0 {
			// The unit of work finishes at the END of the current tick,
			// so completion lands on clock+1.
			p := s.running
			p.State = StateTerminated
			p.CompletionTime = s.clock + 1
			p.WaitTime = p.CompletionTime - p.Arrival - p.Burst
			s.terminated = append(s.terminated, p)
			s.running = nil
			logrus.Debugf("[tick %07d] complete P%d (completion=%d wait=%d)", s.clock, p.PID, p.CompletionTime, p.WaitTime)
			if s.trace != nil {
				s.trace.RecordCompletion(trace.CompletionRecord{
					PID:        p.PID,
					Clock:      p.CompletionTime,
					Wait:       p.WaitTime,
					Turnaround: p.Turnaround(),
				})
			}
		} else if s.discipline.Quantum() > 0 && s.quantumLeft == 0 {
			// Quantum exhausted with work left: back to the tail.
			p := s.running
			p.State = StateReady
			s.discipline.Admit(s.ready, p)
			s.running = nil
			logrus.Debugf("[tick %07d] preempt P%d (remaining=%d)", s.clock, p.PID, p.Remaining)
			if s.trace != nil {
				s.trace.RecordPreemption(trace.PreemptionRecord{PID: p.PID, Clock: s.clock + 1, Remaining: p.Remaining})
			}
		}
	}

	s.clock++
	return s.HasWork()
}

// HasWork reports whether a process is running or waiting.
func (s *Scheduler) HasWork() bool {
	return s.running != nil || s.ready.Len() > 0
}

// RunToCompletion ticks until no work remains and returns the number of
// ticks executed. Processes submitted mid-run are picked up normally; the
// loop only stops once both the CPU and the ready queue are empty.
func (s *Scheduler) RunToCompletion() int {
	ticks := 0
	for s.HasWork() {
		s.Tick()
		ticks++
	}
	return ticks
}

// RunStaged drives a full workload through s, submitting each process
// when the clock reaches its arrival tick and idling through gaps where
// nothing has arrived yet. Returns the number of ticks executed. The
// input order does not matter; processes are staged in arrival order.
func RunStaged(s *Scheduler, procs []*Process) int {
	staged := make([]*Process, len(procs))
	copy(staged, procs)
	sort.SliceStable(staged, func(i, j int) bool {
		return staged[i].Arrival < staged[j].Arrival
	})

	ticks := 0
	next := 0
	for {
		for next < len(staged) && staged[next].Arrival <= s.clock {
			s.Submit(staged[next])
			next++
		}
		if next >= len(staged) && !s.HasWork() {
			return ticks
		}
		s.Tick()
		ticks++
	}
}

// Reconfigure swaps the scheduling discipline. This is a whole-run reset:
// the ready queue, running slot, terminated list, and clock all restart
// from zero, because metrics computed under one discipline are meaningless
// under another.
func (s *Scheduler) Reconfigure(cfg SchedulerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.discipline = NewDiscipline(cfg.Discipline, cfg.Quantum)
	s.ready.Clear()
	s.running = nil
	s.terminated = make([]*Process, 0)
	s.clock = 0
	s.quantumLeft = 0
	return nil
}

// SetQuantum changes the round-robin quantum mid-run. The process currently
// on the CPU has its remaining budget reset to the new value. Returns an
// error under any other discipline or for q < 1.
func (s *Scheduler) SetQuantum(q int64) error {
	rr, ok := s.discipline.(*RoundRobinDiscipline)
	if !ok {
		return fmt.Errorf("quantum applies to round-robin only, current discipline is %s", s.discipline.Name())
	}
	if q < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidQuantum, q)
	}
	rr.quantum = q
	if s.running != nil {
		s.quantumLeft = q
	}
	return nil
}

// Clock returns the current simulation time in ticks.
func (s *Scheduler) Clock() int64 {
	return s.clock
}

// Discipline returns the name of the active scheduling discipline.
func (s *Scheduler) Discipline() string {
	return s.discipline.Name()
}

// Running returns the process currently on the CPU, or nil when idle.
func (s *Scheduler) Running() *Process {
	return s.running
}

// ReadyLen returns the number of processes waiting in the ready queue.
func (s *Scheduler) ReadyLen() int {
	return s.ready.Len()
}

// Terminated returns the completed processes in completion order. The slice
// is a copy; the processes themselves are shared and must not be mutated.
func (s *Scheduler) Terminated() []*Process {
	out := make([]*Process, len(s.terminated))
	copy(out, s.terminated)
	return out
}
