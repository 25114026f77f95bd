package value

// Entry is one key/value member of an Object, in source order.
type Entry struct {
	Key   string
	Value *Value
}

// Object is a mapping from string keys to Values that preserves insertion
// order (spec §3.1). Duplicate keys follow last-writer-wins for lookup,
// but every occurrence is kept in Entries for callers that want to see the
// full source-order history (e.g. a canonical printer emitting a
// diagnostic, or a plugin inspecting a DuplicateKey event).
type Object struct {
	entries []Entry
	index   map[string]int // key -> index into entries of latest occurrence
}

// NewObject returns an empty Object ready for Set.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set inserts or overwrites k. It always appends a new Entry (so repeated
// keys are preserved in source order) and reports whether k was already
// present, so the parser can fire a DuplicateKey event without scanning
// Entries itself.
func (o *Object) Set(k string, v *Value) (wasDuplicate bool) {
	_, wasDuplicate = o.index[k]
	o.index[k] = len(o.entries)
	o.entries = append(o.entries, Entry{Key: k, Value: v})
	return wasDuplicate
}

// Get returns the last-writer-wins value for k.
func (o *Object) Get(k string) (*Value, bool) {
	i, ok := o.index[k]
	if !ok {
		return nil, false
	}
	return o.entries[i].Value, true
}

// Entries returns every member in source order, including superseded
// duplicate-key occurrences. Callers must not mutate the returned slice.
func (o *Object) Entries() []Entry {
	return o.entries
}

// Len returns the number of entries, including duplicates.
func (o *Object) Len() int {
	return len(o.entries)
}

// Keys returns the set of distinct keys in the order of their first
// occurrence.
func (o *Object) Keys() []string {
	seen := make(map[string]bool, len(o.entries))
	keys := make([]string, 0, len(o.entries))
	for _, e := range o.entries {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e.Key)
		}
	}
	return keys
}
