package fjerr

import "fmt"

// Span is a half-open byte range [Start, End) into the original input.
type Span struct {
	Start int
	End   int
}

// String renders a span as "start-end" for debug output.
func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Len reports the number of bytes the span covers.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// LineIndex maps byte offsets to 1-based (line, column) pairs using a
// cached newline index, per spec.md §7 ("the formatter translates span to
// (line, column) using a cached newline index for the input").
type LineIndex struct {
	// newlines[i] is the byte offset of the i-th '\n' in the source.
	newlines []int
}

// NewLineIndex builds a LineIndex over src. Building is O(n); lookups are
// O(log n).
func NewLineIndex(src []byte) *LineIndex {
	li := &LineIndex{}
	for i, b := range src {
		if b == '\n' {
			li.newlines = append(li.newlines, i)
		}
	}
	return li
}

// Position returns the 1-based line and column for a byte offset.
func (li *LineIndex) Position(offset int) (line, column int) {
	// binary search for the first newline offset >= offset
	lo, hi := 0, len(li.newlines)
	for lo < hi {
		mid := (lo + hi) / 2
		if li.newlines[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line = lo + 1
	lineStart := 0
	if lo > 0 {
		lineStart = li.newlines[lo-1] + 1
	}
	column = offset - lineStart + 1
	return line, column
}
