// Package sim provides the core engines for the OS scheduling and memory
// allocation simulator.
//
// # Reading Guide
//
// Start with these three files to understand the scheduling engine:
//   - process.go: Process lifecycle (new → ready → running → terminated) and timing fields
//   - discipline.go: Ready-queue ordering strategies (FIFO, round-robin, priority)
//   - scheduler.go: The tick loop: dispatch, execute, terminate or preempt
//
// And these three for the memory engine:
//   - block.go: The ordered block sequence that models physical memory
//   - placement.go: Placement strategies (first-fit, best-fit, worst-fit, paging)
//   - memory.go: Allocation, freeing, coalescing, and fragmentation accounting
//
// # Architecture
//
// Both engines are single-threaded synchronous state machines. Nothing
// inside the package blocks, sleeps, or spawns goroutines; the caller
// drives time by invoking Tick (scheduler) or Allocate/Free (memory), and
// owns any pacing or animation. Callers that share one engine across
// goroutines must serialize with their own mutex.
//
// Sub-packages build on the core:
//   - sim/trace/: decision trace recording and Gantt reconstruction
//   - sim/workload/: seeded process and allocation-script generation
//
// # Key Interfaces
//
// The extension points are small strategy interfaces selected by name at
// configuration time:
//   - Discipline: how submitted processes enter the ready queue and
//     whether the running one is preempted on quantum expiry
//   - Placement: which free region an allocation request lands in
//
// Both are validated through shared name maps (ValidDisciplines,
// ValidPlacements) so config validation and factories cannot drift.
package sim
