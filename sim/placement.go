package sim

import (
	"fmt"
	"sort"
)

// Placement algorithm names accepted by configuration.
const (
	PlacementFirstFit = "first-fit"
	PlacementBestFit  = "best-fit"
	PlacementWorstFit = "worst-fit"
	PlacementPaging   = "paging"
)

// ValidPlacements is the set of recognized placement algorithm names.
// Shared by MemoryConfig.Validate, Configure, and NewPlacement.
// Empty string defaults to first-fit.
var ValidPlacements = map[string]bool{
	"":                true,
	PlacementFirstFit: true,
	PlacementBestFit:  true,
	PlacementWorstFit: true,
	PlacementPaging:   true,
}

// IsValidPlacement returns true if name is a recognized placement algorithm.
func IsValidPlacement(name string) bool {
	return ValidPlacements[name]
}

// ValidPlacementNames returns the recognized placement names sorted,
// excluding the empty default.
func ValidPlacementNames() []string {
	names := make([]string, 0, len(ValidPlacements))
	for name := range ValidPlacements {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Placement decides where an allocation request lands in the block
// sequence. Place must leave m completely untouched when it returns false;
// a failed attempt is observable only through its return value.
type Placement interface {
	Name() string
	Place(m *Memory, pid int, label string, sizeKB int) bool
}

// FirstFitPlacement selects the first free block large enough, in list
// order. Fast and simple; tends to concentrate small leftovers near the
// front of memory.
type FirstFitPlacement struct{}

func (f *FirstFitPlacement) Name() string { return PlacementFirstFit }

func (f *FirstFitPlacement) Place(m *Memory, pid int, label string, sizeKB int) bool {
	for i, b := range m.blocks {
		if b.Kind == BlockFree && b.SizeKB >= sizeKB {
			m.carve(i, pid, label, sizeKB)
			return true
		}
	}
	return false
}

// BestFitPlacement selects the free block with the smallest sufficient
// size, minimizing leftover. The first block found wins ties.
type BestFitPlacement struct{}

func (b *BestFitPlacement) Name() string { return PlacementBestFit }

func (b *BestFitPlacement) Place(m *Memory, pid int, label string, sizeKB int) bool {
	best := -1
	for i, blk := range m.blocks {
		if blk.Kind != BlockFree || blk.SizeKB < sizeKB {
			continue
		}
		if best == -1 || blk.SizeKB < m.blocks[best].SizeKB {
			best = i
		}
	}
	if best == -1 {
		return false
	}
	m.carve(best, pid, label, sizeKB)
	return true
}

// WorstFitPlacement selects the free block with the largest size,
// maximizing leftover so the remainder stays useful. The first block found
// wins ties.
type WorstFitPlacement struct{}

func (w *WorstFitPlacement) Name() string { return PlacementWorstFit }

func (w *WorstFitPlacement) Place(m *Memory, pid int, label string, sizeKB int) bool {
	worst := -1
	for i, blk := range m.blocks {
		if blk.Kind != BlockFree || blk.SizeKB < sizeKB {
			continue
		}
		if worst == -1 || blk.SizeKB > m.blocks[worst].SizeKB {
			worst = i
		}
	}
	if worst == -1 {
		return false
	}
	m.carve(worst, pid, label, sizeKB)
	return true
}

// PagingPlacement splits the request into fixed-size pages gathered from
// free blocks in list order. The commit is atomic: feasibility is computed
// over the unmutated sequence first, and a shortfall changes nothing.
type PagingPlacement struct{}

func (p *PagingPlacement) Name() string { return PlacementPaging }

func (p *PagingPlacement) Place(m *Memory, pid int, label string, sizeKB int) bool {
	pageKB := m.pageSizeKB
	pagesNeeded := (sizeKB + pageKB - 1) / pageKB

	available := 0
	for _, b := range m.blocks {
		if b.Kind == BlockFree {
			available += b.SizeKB / pageKB
		}
		if available >= pagesNeeded {
			break
		}
	}
	if available < pagesNeeded {
		return false
	}

	// Consume free blocks in order; fully drained blocks leave the
	// sequence, partially drained ones shrink in place.
	next := make([]*MemoryBlock, 0, len(m.blocks))
	pages := make([]*MemoryBlock, 0, pagesNeeded)
	remaining := pagesNeeded
	for _, b := range m.blocks {
		if remaining == 0 || b.Kind != BlockFree {
			next = append(next, b)
			continue
		}
		take := b.SizeKB / pageKB
		if take > remaining {
			take = remaining
		}
		if take == 0 {
			next = append(next, b)
			continue
		}
		remaining -= take
		for i := 0; i < take; i++ {
			pages = append(pages, &MemoryBlock{
				Kind:   BlockAllocated,
				SizeKB: pageKB,
				PID:    pid,
			})
		}
		leftover := b.SizeKB - take*pageKB
		if leftover > 0 {
			b.SizeKB = leftover
			next = append(next, b)
		}
	}

	// Page numbers count from 1 across the whole allocation.
	for i, pg := range pages {
		pg.Label = fmt.Sprintf("%s_P%d", label, i+1)
	}

	// Pages land at the tail, not at the address they were carved from.
	m.blocks = append(next, pages...)
	m.register(pid, pages...)
	m.renumber()
	return true
}

// NewPlacement creates a Placement by name.
// Valid names: "first-fit" (default), "best-fit", "worst-fit", "paging".
// Panics on unrecognized names; MemoryConfig.Validate and Configure reject
// them beforehand.
func NewPlacement(name string) Placement {
	if !IsValidPlacement(name) {
		panic(fmt.Sprintf("unknown placement %q", name))
	}
	switch name {
	case "", PlacementFirstFit:
		return &FirstFitPlacement{}
	case PlacementBestFit:
		return &BestFitPlacement{}
	case PlacementWorstFit:
		return &WorstFitPlacement{}
	case PlacementPaging:
		return &PagingPlacement{}
	default:
		panic(fmt.Sprintf("unhandled placement %q", name))
	}
}
