package arena

// StringArena is a grow-only byte buffer that decoded strings are copied
// into once, so a Value string can be represented as an (offset, length)
// view into one shared buffer instead of its own heap allocation (spec
// §4.9 "one for decoded strings (grow-only byte buffer; Value strings as
// (offset,len) views)").
//
// Views are returned as plain Go strings (a copy out of the buffer), not
// as an unsafe zero-copy cast over the buffer's backing array: nothing in
// the reference corpus this repo is grounded on reaches for the unsafe
// package, and a forgiving-JSON-parser's correctness story is not worth
// trading for it. The benefit StringArena keeps is the one that doesn't
// need unsafe: a single growing allocation standing in for N small ones.
type StringArena struct {
	buf []byte
}

// NewStringArena returns an empty StringArena with capacity hint cap.
func NewStringArena(capHint int) *StringArena {
	if capHint < 0 {
		capHint = 0
	}
	return &StringArena{buf: make([]byte, 0, capHint)}
}

// Append copies s into the arena and returns the (offset, length) view
// needed to read it back out with View.
func (a *StringArena) Append(s string) (offset, length int) {
	offset = len(a.buf)
	a.buf = append(a.buf, s...)
	return offset, len(s)
}

// View returns the string previously stored at (offset, length).
func (a *StringArena) View(offset, length int) string {
	return string(a.buf[offset : offset+length])
}

// Len reports the arena's current buffer size, for test/diagnostic use.
func (a *StringArena) Len() int {
	return len(a.buf)
}

// Release drops the underlying buffer. No per-string destructor runs;
// every (offset, length) view handed out becomes invalid.
func (a *StringArena) Release() {
	a.buf = nil
}
