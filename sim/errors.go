package sim

import "errors"

// Configuration and argument errors shared across the scheduler and memory
// engines. Sentinel variables let callers detect conditions via errors.Is
// instead of string comparisons; constructors wrap them with context.

var (
	// ErrUnknownDiscipline is returned when a scheduling discipline name is
	// not one of the recognized set.
	ErrUnknownDiscipline = errors.New("sim: unknown scheduling discipline")

	// ErrInvalidQuantum is returned when round-robin is configured with a
	// quantum below one tick.
	ErrInvalidQuantum = errors.New("sim: round-robin quantum must be at least 1")

	// ErrUnknownPlacement is returned when a memory placement algorithm name
	// is not one of the recognized set.
	ErrUnknownPlacement = errors.New("sim: unknown placement algorithm")

	// ErrInvalidSize is returned when an allocation request is for zero or
	// negative kilobytes.
	ErrInvalidSize = errors.New("sim: allocation size must be positive")

	// ErrInvalidTotal is returned when memory is initialized or reset with a
	// non-positive total capacity.
	ErrInvalidTotal = errors.New("sim: total memory must be positive")
)
