package arena

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Interner deduplicates strings seen at least twice within one parse,
// keyed on a 64-bit blake2b-derived fingerprint (spec §4.9 "A string
// interner keyed on a 64-bit fingerprint deduplicates object keys seen
// ≥ 2 times in a parse"), grounded on the teacher's own keyed-fingerprint
// pattern in core/sdk/secret/idfactory.go (there BLAKE2 keys a PRF for
// opaque IDs; here it only needs to be a fast, well-distributed hash, so
// the unkeyed Sum256 is enough).
//
// An Interner is scoped to one parse (spec §5 "the string interner is
// per-parse, not process-wide") and is not safe for concurrent use.
type Interner struct {
	counts map[string]int
	seen   map[uint64][]string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{counts: make(map[string]int), seen: make(map[uint64][]string)}
}

// Intern returns a canonical copy of s once s has been seen twice or more;
// the first occurrence is returned unchanged (there is nothing yet to
// deduplicate against). Collisions on the 64-bit fingerprint are resolved
// by an exact byte comparison against every candidate sharing it.
func (in *Interner) Intern(s string) string {
	in.counts[s]++
	if in.counts[s] == 1 {
		return s
	}
	fp := fingerprint(s)
	for _, candidate := range in.seen[fp] {
		if candidate == s {
			return candidate
		}
	}
	in.seen[fp] = append(in.seen[fp], s)
	return s
}

// Len reports how many distinct strings have been interned (seen twice or
// more), for test/diagnostic use.
func (in *Interner) Len() int {
	n := 0
	for _, v := range in.seen {
		n += len(v)
	}
	return n
}

func fingerprint(s string) uint64 {
	sum := blake2b.Sum256([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}
