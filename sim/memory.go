// sim/memory.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/os-sim/os-sim/sim/trace"
)

// Memory is the memory allocation engine. It maintains the simulated
// physical memory as an ordered block sequence plus a registry mapping each
// process to the blocks it owns. All mutation goes through Allocate, Free,
// and Reset; each call runs to completion before returning, so the sequence
// is never observable in a half-mutated state.
type Memory struct {
	totalKB    int
	pageSizeKB int
	placement  Placement
	blocks     []*MemoryBlock
	// owned maps PID to its blocks in allocation order. Entries hold the
	// same pointers as blocks, so a block stays reachable through both
	// views no matter how the sequence shifts.
	owned map[int][]*MemoryBlock
	trace *trace.SimulationTrace
}

// NewMemory creates a Memory with the configured capacity and placement
// algorithm and the startup layout in place.
func NewMemory(cfg MemoryConfig) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Memory{
		pageSizeKB: cfg.pageSize(),
		placement:  NewPlacement(cfg.Placement),
	}
	m.initialize(cfg.TotalKB)
	return m, nil
}

// initialize builds the startup layout: one system block holding 10% of the
// total, then one free block holding the remaining 90%.
func (m *Memory) initialize(totalKB int) {
	systemKB := totalKB / 10
	m.totalKB = totalKB
	m.blocks = []*MemoryBlock{
		{ID: 0, Kind: BlockSystem, SizeKB: systemKB, Label: "os"},
		{ID: 1, Kind: BlockFree, SizeKB: totalKB - systemKB},
	}
	m.owned = make(map[int][]*MemoryBlock)
}

// AttachTrace starts recording allocation decisions into st.
// A nil st disables recording.
func (m *Memory) AttachTrace(st *trace.SimulationTrace) {
	m.trace = st
}

// Configure swaps the placement algorithm. Existing allocations are not
// retroactively altered; only future Allocate and Free calls follow the new
// algorithm.
func (m *Memory) Configure(algorithm string) error {
	if !IsValidPlacement(algorithm) {
		return fmt.Errorf("%w: %q", ErrUnknownPlacement, algorithm)
	}
	m.placement = NewPlacement(algorithm)
	return nil
}

// Placement returns the name of the active placement algorithm.
func (m *Memory) Placement() string {
	return m.placement.Name()
}

// Allocate requests sizeKB kilobytes for pid under the active placement
// algorithm. A request that cannot be satisfied returns (false, nil) with
// zero state change; that is a normal outcome, not an error. The only error
// is a non-positive size.
func (m *Memory) Allocate(pid int, label string, sizeKB int) (bool, error) {
	if sizeKB <= 0 {
		return false, fmt.Errorf("%w, got %d", ErrInvalidSize, sizeKB)
	}

	ok := m.placement.Place(m, pid, label, sizeKB)
	if ok {
		logrus.Debugf("allocated %dKB to P%d (%s) via %s", sizeKB, pid, label, m.placement.Name())
	} else {
		logrus.Debugf("cannot place %dKB for P%d via %s", sizeKB, pid, m.placement.Name())
	}
	if m.trace != nil {
		reason := ""
		if !ok {
			reason = "no eligible placement"
		}
		m.trace.RecordAllocation(trace.AllocationRecord{
			PID:       pid,
			Label:     label,
			SizeKB:    sizeKB,
			Placement: m.placement.Name(),
			Succeeded: ok,
			Reason:    reason,
		})
	}
	return ok, nil
}

// Free releases everything pid owns. A pid with no registered blocks is a
// silent no-op. Under partition algorithms the owned blocks revert to free
// in place and adjacent free neighbors merge; under paging the owned pages
// leave the sequence and their sizes return to the first free block (or a
// new tail block when none exists).
func (m *Memory) Free(pid int) {
	owned, ok := m.owned[pid]
	if !ok {
		return
	}
	delete(m.owned, pid)

	reclaimed := 0
	for _, b := range owned {
		reclaimed += b.SizeKB
	}

	if m.placement.Name() == PlacementPaging {
		m.releasePages(owned, reclaimed)
	} else {
		for _, b := range owned {
			b.Kind = BlockFree
			b.Label = ""
			b.PID = 0
		}
		m.coalesce()
	}

	logrus.Debugf("freed %dKB from P%d (%d blocks)", reclaimed, pid, len(owned))
	if m.trace != nil {
		m.trace.RecordFree(trace.FreeRecord{PID: pid, ReclaimedKB: reclaimed, Blocks: len(owned)})
	}
}

// releasePages removes the owned pages from the sequence and folds their
// combined size into the first free block, appending a new tail free block
// if the sequence has none.
func (m *Memory) releasePages(owned []*MemoryBlock, reclaimed int) {
	drop := make(map[*MemoryBlock]bool, len(owned))
	for _, b := range owned {
		drop[b] = true
	}
	next := make([]*MemoryBlock, 0, len(m.blocks))
	for _, b := range m.blocks {
		if !drop[b] {
			next = append(next, b)
		}
	}
	m.blocks = next

	for _, b := range m.blocks {
		if b.Kind == BlockFree {
			b.SizeKB += reclaimed
			m.renumber()
			return
		}
	}
	m.blocks = append(m.blocks, &MemoryBlock{Kind: BlockFree, SizeKB: reclaimed})
	m.renumber()
}

// coalesce merges adjacent free pairs into the earlier position, rescanning
// from the merge point until no pair remains. System blocks never merge.
func (m *Memory) coalesce() {
	i := 0
	for i+1 < len(m.blocks) {
		a, b := m.blocks[i], m.blocks[i+1]
		if a.Kind == BlockFree && b.Kind == BlockFree {
			a.SizeKB += b.SizeKB
			m.blocks = append(m.blocks[:i+1], m.blocks[i+2:]...)
			// the grown block may now touch another free neighbor
			continue
		}
		i++
	}
	m.renumber()
}

// carve turns the free block at index i into an allocated block of exactly
// sizeKB, inserting a new free block immediately after it when leftover
// space remains.
func (m *Memory) carve(i int, pid int, label string, sizeKB int) {
	b := m.blocks[i]
	leftover := b.SizeKB - sizeKB
	b.Kind = BlockAllocated
	b.SizeKB = sizeKB
	b.Label = label
	b.PID = pid
	if leftover > 0 {
		rest := &MemoryBlock{Kind: BlockFree, SizeKB: leftover}
		m.blocks = append(m.blocks, nil)
		copy(m.blocks[i+2:], m.blocks[i+1:])
		m.blocks[i+1] = rest
	}
	m.register(pid, b)
	m.renumber()
}

// register appends blocks to pid's ownership list.
func (m *Memory) register(pid int, blocks ...*MemoryBlock) {
	m.owned[pid] = append(m.owned[pid], blocks...)
}

// renumber reassigns block IDs to match list position.
func (m *Memory) renumber() {
	for i, b := range m.blocks {
		b.ID = i
	}
}

// TotalKB returns the configured total capacity.
func (m *Memory) TotalKB() int {
	return m.totalKB
}

// FreeKB returns the summed size of all free blocks.
func (m *Memory) FreeKB() int {
	free := 0
	for _, b := range m.blocks {
		if b.Kind == BlockFree {
			free += b.SizeKB
		}
	}
	return free
}

// UsedKB returns total minus free (system space counts as used).
func (m *Memory) UsedKB() int {
	return m.totalKB - m.FreeKB()
}

// FragmentationRatio returns the free-block-count share of all blocks as a
// percentage in [0,100]: freeBlocks/allBlocks*100 when more than one free
// block exists, else 0. This is a block-count ratio, not a wasted-space
// ratio.
func (m *Memory) FragmentationRatio() float64 {
	freeCount := 0
	for _, b := range m.blocks {
		if b.Kind == BlockFree {
			freeCount++
		}
	}
	if freeCount <= 1 {
		return 0
	}
	return float64(freeCount) / float64(len(m.blocks)) * 100
}

// Reset discards all blocks and registrations and reinitializes the startup
// layout with the given capacity. The placement algorithm is kept.
func (m *Memory) Reset(totalKB int) error {
	if totalKB <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidTotal, totalKB)
	}
	m.initialize(totalKB)
	return nil
}

// Blocks returns a copy of the block sequence in list order. Mutating the
// result does not affect the engine.
func (m *Memory) Blocks() []MemoryBlock {
	out := make([]MemoryBlock, len(m.blocks))
	for i, b := range m.blocks {
		out[i] = *b
	}
	return out
}

// MemoryStats summarizes the current memory state for reporting.
type MemoryStats struct {
	TotalKB            int
	UsedKB             int
	FreeKB             int
	FragmentationRatio float64
	Blocks             int
	FreeBlocks         int
	LargestFreeKB      int
}

// Stats computes the current summary statistics.
func (m *Memory) Stats() MemoryStats {
	st := MemoryStats{
		TotalKB:            m.totalKB,
		FreeKB:             m.FreeKB(),
		FragmentationRatio: m.FragmentationRatio(),
		Blocks:             len(m.blocks),
	}
	st.UsedKB = st.TotalKB - st.FreeKB
	for _, b := range m.blocks {
		if b.Kind == BlockFree {
			st.FreeBlocks++
			if b.SizeKB > st.LargestFreeKB {
				st.LargestFreeKB = b.SizeKB
			}
		}
	}
	return st
}

// Print displays the summary statistics.
func (st MemoryStats) Print() {
	fmt.Println("=== Memory Stats ===")
	fmt.Printf("Total                : %d KB\n", st.TotalKB)
	fmt.Printf("Used                 : %d KB\n", st.UsedKB)
	fmt.Printf("Free                 : %d KB\n", st.FreeKB)
	fmt.Printf("Fragmentation        : %.1f%%\n", st.FragmentationRatio)
	fmt.Printf("Blocks (free/total)  : %d / %d\n", st.FreeBlocks, st.Blocks)
	fmt.Printf("Largest Free Block   : %d KB\n", st.LargestFreeKB)
}
