package sim

import "fmt"

// DefaultPageSizeKB is the page size used by paging mode when the
// configuration leaves PageSizeKB unset.
const DefaultPageSizeKB = 32

// SchedulerConfig groups CPU scheduler parameters for NewScheduler.
type SchedulerConfig struct {
	Discipline string `yaml:"discipline"` // "fifo" (default), "round-robin", "priority"
	Quantum    int64  `yaml:"quantum"`    // ticks per dispatch, round-robin only (must be >= 1)
}

// Validate checks the discipline name and parameter ranges.
func (c SchedulerConfig) Validate() error {
	if !IsValidDiscipline(c.Discipline) {
		return fmt.Errorf("%w: %q", ErrUnknownDiscipline, c.Discipline)
	}
	if c.Discipline == DisciplineRoundRobin && c.Quantum < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidQuantum, c.Quantum)
	}
	return nil
}

// MemoryConfig groups memory simulator parameters for NewMemory.
type MemoryConfig struct {
	TotalKB    int    `yaml:"total_kb"`     // total capacity in KB (must be > 0)
	Placement  string `yaml:"placement"`    // "first-fit" (default), "best-fit", "worst-fit", "paging"
	PageSizeKB int    `yaml:"page_size_kb"` // page size for paging mode (0 = default 32)
}

// Validate checks the placement name and parameter ranges.
func (c MemoryConfig) Validate() error {
	if c.TotalKB <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTotal, c.TotalKB)
	}
	if !IsValidPlacement(c.Placement) {
		return fmt.Errorf("%w: %q", ErrUnknownPlacement, c.Placement)
	}
	if c.PageSizeKB < 0 {
		return fmt.Errorf("page_size_kb must be non-negative, got %d", c.PageSizeKB)
	}
	return nil
}

// pageSize resolves the effective page size, applying the default.
func (c MemoryConfig) pageSize() int {
	if c.PageSizeKB == 0 {
		return DefaultPageSizeKB
	}
	return c.PageSizeKB
}
