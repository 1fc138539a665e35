package sim

// BlockKind classifies a region of simulated memory.
type BlockKind string

const (
	// BlockSystem is the reserved region carved out at startup. It is never
	// allocated, merged, or freed.
	BlockSystem BlockKind = "system"
	// BlockFree is a region available for allocation.
	BlockFree BlockKind = "free"
	// BlockAllocated is a region owned by a process.
	BlockAllocated BlockKind = "allocated"
	// BlockFragmented is reserved for renderers that want to flag unusable
	// slivers. The engine never produces it.
	BlockFragmented BlockKind = "fragmented"
)

// MemoryBlock represents one contiguous region of simulated memory.
// In partition mode, list order is address order. Paging appends new pages
// at the tail instead of keeping them where they were carved, so once
// paging is used the list order stops tracking address order (the size
// accounting still holds).
type MemoryBlock struct {
	ID     int // position in the block sequence, renumbered after every mutation
	Kind   BlockKind
	SizeKB int
	Label  string // owner label; "os" for the system block, empty for free blocks
	PID    int    // owning process; 0 when unowned
}
