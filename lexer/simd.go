package lexer

import "bytes"

// isInteresting marks every byte class the scalar scanner treats
// specially: quotes, backslash, newline, the six structural punctuators,
// '/', '#', '-', and the decimal digits (spec §4.1's SIMD fast-path byte
// set). Everything else is "boring" whitespace/ident filler that can be
// skipped in bulk.
var isInteresting [256]bool

func init() {
	for _, c := range []byte("\"'\\\n{}[],:/#-0123456789") {
		isInteresting[c] = true
	}
}

// fastForwardBoring advances past a run of "boring" bytes starting at pos,
// using bytes.IndexFunc with a table-lookup predicate. IndexFunc decodes
// and tests one rune at a time in Go; it is not a vectorized scan. It
// returns the position of the next interesting byte, or len(input) at EOF.
//
// This MUST return the same position a byte-at-a-time scan over
// isInteresting would: the property test in lexer_test.go checks exactly
// that scalarFindInteresting and fastForwardBoring agree on every input.
func fastForwardBoring(input []byte, pos int) int {
	rest := input[pos:]
	idx := bytes.IndexFunc(rest, func(r rune) bool {
		return r < 256 && isInteresting[byte(r)]
	})
	if idx < 0 {
		return len(input)
	}
	return pos + idx
}

// scalarFindInteresting is the reference byte-at-a-time implementation
// fastForwardBoring must agree with.
func scalarFindInteresting(input []byte, pos int) int {
	for i := pos; i < len(input); i++ {
		if isInteresting[input[i]] {
			return i
		}
	}
	return len(input)
}
