package arena

import "github.com/aledsdavies/fjson/value"

// EntryArena hands out []value.Entry backing slices from pre-allocated
// blocks, the "linked blocks" of spec §4.9, so a caller building many
// objects in one parse does not pay the runtime allocator once per
// object. It is the block-allocator counterpart to Interner: where
// Interner dedupes the key *strings*, EntryArena dedupes the growth
// churn of the entry slice itself.
//
// Each block is only ever bump-allocated from once a sub-slice of it has
// been handed out, since two live sub-slices of the same backing array
// that both still had spare capacity could silently alias on append.
type EntryArena struct {
	blockSize int
	current   []value.Entry
}

// NewEntryArena returns an EntryArena whose blocks hold blockSize entries
// each. A blockSize <= 0 defaults to 64.
func NewEntryArena(blockSize int) *EntryArena {
	if blockSize <= 0 {
		blockSize = 64
	}
	return &EntryArena{blockSize: blockSize}
}

// Reserve returns a fresh, empty []value.Entry with capacity for at least
// n entries. Requests at or under the arena's block size are bump-
// allocated from the current block; larger requests get their own block.
// The returned slice is only valid until the arena is Released.
func (a *EntryArena) Reserve(n int) []value.Entry {
	if n > a.blockSize {
		return make([]value.Entry, 0, n)
	}
	if cap(a.current)-len(a.current) < n {
		a.current = make([]value.Entry, 0, a.blockSize)
	}
	start := len(a.current)
	a.current = a.current[:start+n]
	slice := a.current[start : start : start+n]
	return slice
}

// Release drops the arena's current block. Per spec §4.9 there is no
// per-entry destructor: the caller must have already finished using any
// Value tree built from slices this arena reserved.
func (a *EntryArena) Release() {
	a.current = nil
}
