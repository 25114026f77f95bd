// Package arena implements the Value-tree memory layout spec §4.9
// describes: a grow-only string arena, block-allocated entry/slot
// arenas, and a per-parse string interner for repeated object keys.
//
// These are opt-in allocators a caller can use to cut allocation churn
// when building many Values in one parse; the default parser.Parse code
// path only wires in Interner (see parser.WithInterner), the one piece
// spec §4.9 calls out as belonging to the parser itself. StringArena,
// EntryArena, and SlotArena are provided standalone for a caller that
// wants to bypass per-node allocation in its own Value construction —
// see DESIGN.md for why the parser's own object/array construction
// doesn't adopt them by default.
package arena

// Arenas bundles one of each allocator for a single parse or build pass.
// Nothing in this package requires using the bundle; it exists for a
// caller that wants one Release call to tear down the three block
// allocators together; the Interner has no Release and is left as is.
type Arenas struct {
	Strings  *StringArena
	Entries  *EntryArena
	Slots    *SlotArena
	Interner *Interner
}

// NewArenas returns a fresh Arenas bundle. blockSize sizes EntryArena and
// SlotArena's blocks; stringCapHint sizes StringArena's initial buffer.
func NewArenas(blockSize, stringCapHint int) *Arenas {
	return &Arenas{
		Strings:  NewStringArena(stringCapHint),
		Entries:  NewEntryArena(blockSize),
		Slots:    NewSlotArena(blockSize),
		Interner: NewInterner(),
	}
}

// Release tears down Strings, Entries and Slots; Interner is not
// touched. No per-node
// destructor runs; the caller must be done with any Value tree built
// from this bundle's arenas.
func (a *Arenas) Release() {
	a.Strings.Release()
	a.Entries.Release()
	a.Slots.Release()
}
