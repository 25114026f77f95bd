package arena

import "github.com/aledsdavies/fjson/value"

// SlotArena hands out []*value.Value backing slices for array
// construction from pre-allocated blocks, the array-slot counterpart to
// EntryArena. See EntryArena's comment for why a block is only ever
// bump-allocated from, never reused by overlapping sub-slices.
type SlotArena struct {
	blockSize int
	current   []*value.Value
}

// NewSlotArena returns a SlotArena whose blocks hold blockSize pointers
// each. A blockSize <= 0 defaults to 64.
func NewSlotArena(blockSize int) *SlotArena {
	if blockSize <= 0 {
		blockSize = 64
	}
	return &SlotArena{blockSize: blockSize}
}

// Reserve returns a fresh, empty []*value.Value with capacity for at
// least n elements, bump-allocated from the current block when it fits,
// or its own block otherwise. The returned slice is only valid until the
// arena is Released.
func (a *SlotArena) Reserve(n int) []*value.Value {
	if n > a.blockSize {
		return make([]*value.Value, 0, n)
	}
	if cap(a.current)-len(a.current) < n {
		a.current = make([]*value.Value, 0, a.blockSize)
	}
	start := len(a.current)
	a.current = a.current[:start+n]
	return a.current[start:start : start+n]
}

// Release drops the arena's current block. No per-slot destructor runs.
func (a *SlotArena) Release() {
	a.current = nil
}
