package sim

// SchedulerSnapshot is a point-in-time copy of scheduler state for
// rendering. Every field is a copy; a presentation layer can hold or
// mutate it freely without corrupting queue ordering.
type SchedulerSnapshot struct {
	Clock      int64
	Discipline string
	Quantum    int64
	Running    *Process  // nil when the CPU is idle
	Ready      []Process // ready-queue order
	Terminated []Process // completion order
}

// Snapshot captures the current scheduler state.
func (s *Scheduler) Snapshot() SchedulerSnapshot {
	snap := SchedulerSnapshot{
		Clock:      s.clock,
		Discipline: s.discipline.Name(),
		Quantum:    s.discipline.Quantum(),
		Ready:      make([]Process, 0, s.ready.Len()),
		Terminated: make([]Process, 0, len(s.terminated)),
	}
	if s.running != nil {
		cp := *s.running
		snap.Running = &cp
	}
	for _, p := range s.ready.Items() {
		snap.Ready = append(snap.Ready, *p)
	}
	for _, p := range s.terminated {
		snap.Terminated = append(snap.Terminated, *p)
	}
	return snap
}

// MemorySnapshot is a point-in-time copy of memory state for rendering.
type MemorySnapshot struct {
	Algorithm  string
	PageSizeKB int
	TotalKB    int
	Blocks     []MemoryBlock
	Owned      map[int][]int // PID -> owned block IDs in allocation order
}

// Snapshot captures the current memory state.
func (m *Memory) Snapshot() MemorySnapshot {
	snap := MemorySnapshot{
		Algorithm:  m.placement.Name(),
		PageSizeKB: m.pageSizeKB,
		TotalKB:    m.totalKB,
		Blocks:     m.Blocks(),
		Owned:      make(map[int][]int, len(m.owned)),
	}
	for pid, blocks := range m.owned {
		ids := make([]int, 0, len(blocks))
		for _, b := range blocks {
			ids = append(ids, b.ID)
		}
		snap.Owned[pid] = ids
	}
	return snap
}
