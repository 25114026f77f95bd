package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/value"
)

func TestInternerReturnsSameStringFromSecondOccurrenceOnward(t *testing.T) {
	in := NewInterner()
	a := in.Intern("name")
	require.Equal(t, "name", a)
	require.Equal(t, 0, in.Len(), "first occurrence is not yet interned")

	b := in.Intern("name")
	require.Equal(t, "name", b)
	require.Equal(t, 1, in.Len())

	c := in.Intern("name")
	require.Equal(t, "name", c)
	require.Equal(t, 1, in.Len(), "a third occurrence reuses the canonical copy, not a new entry")
}

func TestInternerKeepsDistinctStringsDistinct(t *testing.T) {
	in := NewInterner()
	for i := 0; i < 2; i++ {
		in.Intern("a")
		in.Intern("b")
	}
	require.Equal(t, 2, in.Len())
}

func TestInternerHandlesFingerprintCollisionsByExactMatch(t *testing.T) {
	in := NewInterner()
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for _, w := range words {
		in.Intern(w)
		in.Intern(w)
	}
	require.Equal(t, len(words), in.Len())
	for _, w := range words {
		require.Equal(t, w, in.Intern(w))
	}
}

func TestStringArenaAppendAndView(t *testing.T) {
	a := NewStringArena(0)
	off1, len1 := a.Append("hello")
	off2, len2 := a.Append("world")
	require.Equal(t, "hello", a.View(off1, len1))
	require.Equal(t, "world", a.View(off2, len2))
	require.Equal(t, 10, a.Len())

	a.Release()
	require.Equal(t, 0, a.Len())
}

func TestEntryArenaBumpAllocatesWithinBlock(t *testing.T) {
	a := NewEntryArena(4)
	first := a.Reserve(2)
	require.Len(t, first, 0)
	require.Equal(t, 2, cap(first))
	first = append(first, value.Entry{Key: "a"}, value.Entry{Key: "b"})

	second := a.Reserve(2)
	second = append(second, value.Entry{Key: "c"}, value.Entry{Key: "d"})

	require.Equal(t, "a", first[0].Key)
	require.Equal(t, "b", first[1].Key)
	require.Equal(t, "c", second[0].Key)
	require.Equal(t, "d", second[1].Key)
}

func TestEntryArenaOversizedRequestGetsOwnBlock(t *testing.T) {
	a := NewEntryArena(4)
	big := a.Reserve(10)
	require.Equal(t, 10, cap(big))
}

func TestSlotArenaBumpAllocatesWithinBlock(t *testing.T) {
	a := NewSlotArena(4)
	one := value.Integer(1)
	two := value.Integer(2)

	first := a.Reserve(1)
	first = append(first, one)
	second := a.Reserve(1)
	second = append(second, two)

	require.Same(t, one, first[0])
	require.Same(t, two, second[0])
}
