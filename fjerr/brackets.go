package fjerr

// BracketKind identifies which container a bracket opens, for
// BracketMismatch diagnostics.
type BracketKind uint8

const (
	BraceBracket   BracketKind = iota // { }
	SquareBracket                     // [ ]
)

// bracketFrame records one still-open container.
type bracketFrame struct {
	kind BracketKind
	span Span
}

// BracketTracker tracks opening brackets so a mismatched or unclosed
// closer can be reported with the position of the opener it should have
// matched, per spec §3.4 ("an optional secondary span for mismatched-
// bracket pairing"). Adapted from the teacher parser's own BracketTracker.
type BracketTracker struct {
	stack []bracketFrame
}

// Push records an opening bracket.
func (bt *BracketTracker) Push(kind BracketKind, span Span) {
	bt.stack = append(bt.stack, bracketFrame{kind: kind, span: span})
}

// Pop matches a closing bracket against the innermost opener. It returns a
// BracketMismatch error when the stack is empty or the kinds disagree, and
// nil on a clean match.
func (bt *BracketTracker) Pop(kind BracketKind, closeSpan Span) *Error {
	if len(bt.stack) == 0 {
		return New(BracketMismatch, closeSpan, "unexpected closing bracket with no matching opener")
	}
	top := bt.stack[len(bt.stack)-1]
	bt.stack = bt.stack[:len(bt.stack)-1]
	if top.kind != kind {
		return New(BracketMismatch, closeSpan, "mismatched brackets").WithSecondary(top.span)
	}
	return nil
}

// Unclosed returns the spans of every bracket still open, innermost last.
func (bt *BracketTracker) Unclosed() []Span {
	spans := make([]Span, len(bt.stack))
	for i, f := range bt.stack {
		spans[i] = f.span
	}
	return spans
}

// IsEmpty reports whether every opened bracket has been matched.
func (bt *BracketTracker) IsEmpty() bool {
	return len(bt.stack) == 0
}
