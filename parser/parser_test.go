package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/arena"
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/value"
)

func mustParse(t *testing.T, src string, opts options.Options) *value.Value {
	t.Helper()
	v, err := Parse([]byte(src), NewConfig(opts))
	require.Nil(t, err, "parse error for %q", src)
	return v
}

func TestParseScenario1_DuplicateKeys(t *testing.T) {
	var dups []string
	cfg := NewConfig(options.Default(), WithDuplicateKeyHook(func(k string, _ fjerr.Span) bool {
		dups = append(dups, k)
		return false
	}))
	v, err := Parse([]byte(`{"a":1,"a":2}`), cfg)
	require.Nil(t, err)
	obj, ok := v.Object()
	require.True(t, ok)
	require.Equal(t, 2, obj.Len())
	got, ok := obj.Get("a")
	require.True(t, ok)
	n, _ := got.Int()
	require.Equal(t, int64(2), n)
	require.Equal(t, []string{"a"}, dups)
}

func TestParseDuplicateKeyRejectedByHook(t *testing.T) {
	cfg := NewConfig(options.Default(), WithDuplicateKeyHook(func(k string, _ fjerr.Span) bool {
		return true
	}))
	_, err := Parse([]byte(`{"a":1,"a":2}`), cfg)
	require.NotNil(t, err)
	require.Equal(t, fjerr.DuplicateKeyRejected, err.Kind)
}

func TestParseInternerDedupesRepeatedKeysAcrossObjects(t *testing.T) {
	in := arena.NewInterner()
	cfg := NewConfig(options.Default(), WithInterner(in))
	v, err := Parse([]byte(`[{"name":"a"},{"name":"b"},{"name":"c"}]`), cfg)
	require.Nil(t, err)

	arr, ok := v.Array()
	require.True(t, ok)
	require.Len(t, arr, 3)

	var keys []string
	for _, elem := range arr {
		obj, ok := elem.Object()
		require.True(t, ok)
		keys = append(keys, obj.Keys()...)
	}
	require.Equal(t, []string{"name", "name", "name"}, keys)
	require.Equal(t, 1, in.Len(), "the third and later occurrences should canonicalise to one interned copy")
}

func TestParseIterativeInternerDedupesRepeatedKeys(t *testing.T) {
	in := arena.NewInterner()
	cfg := NewConfig(options.Default(), WithInterner(in))
	_, err := ParseIterative([]byte(`[{"id":1},{"id":2},{"id":3}]`), cfg)
	require.Nil(t, err)
	require.Equal(t, 1, in.Len())
}

func TestParseScenario2_UnquotedKeysAndTrailingComma(t *testing.T) {
	v := mustParse(t, `{ a: 1, b: 2, }`, options.Default())
	obj, _ := v.Object()
	require.Equal(t, 2, obj.Len())
	av, _ := obj.Get("a")
	n, _ := av.Int()
	require.Equal(t, int64(1), n)
}

func TestParseScenario3_CommentAndNewlineAsComma(t *testing.T) {
	v := mustParse(t, "// hi\n[1\n2\n3]", options.Default())
	arr, ok := v.Array()
	require.True(t, ok)
	require.Len(t, arr, 3)
	for i, want := range []int64{1, 2, 3} {
		n, _ := arr[i].Int()
		require.Equal(t, want, n)
	}
}

func TestParseScenario4_ImplicitTopLevelObject(t *testing.T) {
	v := mustParse(t, `key: "value", n: 42`, options.Default())
	obj, ok := v.Object()
	require.True(t, ok)
	kv, _ := obj.Get("key")
	s, _ := kv.Str()
	require.Equal(t, "value", s)
	nv, _ := obj.Get("n")
	n, _ := nv.Int()
	require.Equal(t, int64(42), n)
}

func TestParseScenario5_ExtendedNumbers(t *testing.T) {
	v := mustParse(t, `{"x": 0x1F_F, "y": 1_000_000.5}`, options.Default())
	obj, _ := v.Object()
	x, _ := obj.Get("x")
	require.True(t, x.IsInteger())
	xi, _ := x.Int()
	require.Equal(t, int64(511), xi)

	y, _ := obj.Get("y")
	require.True(t, y.IsFloat())
	yf, _ := y.Float()
	require.Equal(t, 1000000.5, yf)
}

func TestParseEmptyObjectAndArray(t *testing.T) {
	v := mustParse(t, `{}`, options.Default())
	obj, _ := v.Object()
	require.Equal(t, 0, obj.Len())

	v = mustParse(t, `[]`, options.Default())
	arr, _ := v.Array()
	require.Len(t, arr, 0)
}

func TestParseEmptyInputIsUnexpectedEof(t *testing.T) {
	_, err := Parse([]byte(""), NewConfig(options.Default()))
	require.NotNil(t, err)
	require.Equal(t, fjerr.UnexpectedEof, err.Kind)

	_, err = Parse([]byte("   // just a comment\n"), NewConfig(options.Default()))
	require.NotNil(t, err)
	require.Equal(t, fjerr.UnexpectedEof, err.Kind)
}

func TestParseTrailingCommaRejectedWhenDisallowed(t *testing.T) {
	opts := options.Default(options.WithTrailingCommas(false))
	_, err := Parse([]byte(`[1, 2,]`), NewConfig(opts))
	require.NotNil(t, err)
	require.Equal(t, fjerr.TrailingComma, err.Kind)
}

func TestParseBracketMismatch(t *testing.T) {
	_, err := Parse([]byte(`[1, 2}`), NewConfig(options.Default()))
	require.NotNil(t, err)
	require.Equal(t, fjerr.BracketMismatch, err.Kind)
	require.NotNil(t, err.Secondary, "a BracketMismatch must point back at the opener it should have matched")
}

func TestParseBracketMismatchObjectClosedBySquareBracket(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1]`), NewConfig(options.Default()))
	require.NotNil(t, err)
	require.Equal(t, fjerr.BracketMismatch, err.Kind)
}

func TestParseIterativeBracketMismatch(t *testing.T) {
	_, err := ParseIterative([]byte(`[1, 2}`), NewConfig(options.Default()))
	require.NotNil(t, err)
	require.Equal(t, fjerr.BracketMismatch, err.Kind)
}

func TestParseUnclosedBracket(t *testing.T) {
	opts := options.Default(options.WithRepair(false))
	_, err := Parse([]byte(`{"a": [1, 2, 3`), NewConfig(opts))
	require.NotNil(t, err)
}

func TestParseDepthExceeded(t *testing.T) {
	opts := options.Default(options.WithMaxDepth(2))
	_, err := Parse([]byte(`[[[1]]]`), NewConfig(opts))
	require.NotNil(t, err)
	require.Equal(t, fjerr.DepthExceeded, err.Kind)
}

func TestParseDepthExactlyAtLimitSucceeds(t *testing.T) {
	opts := options.Default(options.WithMaxDepth(2))
	_, err := Parse([]byte(`[[1]]`), NewConfig(opts))
	require.Nil(t, err)
}

func TestParseSingleQuotedStringKeyAndValue(t *testing.T) {
	v := mustParse(t, `{'a': 'b'}`, options.Default())
	obj, _ := v.Object()
	av, _ := obj.Get("a")
	s, _ := av.Str()
	require.Equal(t, "b", s)
}

func TestParseImplicitArrayTopLevel(t *testing.T) {
	v := mustParse(t, `1, 2, 3`, options.Default())
	arr, ok := v.Array()
	require.True(t, ok)
	require.Len(t, arr, 3)
}

func TestParseNoImplicitTopLevelRejectsBareValue(t *testing.T) {
	opts := options.Default(options.WithImplicitTopLevel(false))
	_, err := Parse([]byte(`1, 2, 3`), NewConfig(opts))
	require.NotNil(t, err)
}

// TestRecursiveIterativeEquivalence is the property spec §4.5 requires:
// the iterative parser must produce identical results to the recursive
// parser for every legal input.
func TestRecursiveIterativeEquivalence(t *testing.T) {
	inputs := []string{
		`{}`,
		`[]`,
		`{"a":1,"b":[1,2,3],"c":{"d":null,"e":true,"f":false}}`,
		`{ a: 1, b: 2, }`,
		"// hi\n[1\n2\n3]",
		`key: "value", n: 42`,
		`{"x": 0x1F_F, "y": 1_000_000.5}`,
		`[[[[[1]]]]]`,
		`"just a string"`,
		`[1, "two", 3.0, true, false, null, {"nested": [1,2]}]`,
	}
	for _, in := range inputs {
		rec, rerr := Parse([]byte(in), NewConfig(options.Default()))
		it, ierr := ParseIterative([]byte(in), NewConfig(options.Default()))
		if rerr != nil || ierr != nil {
			require.NotNil(t, rerr, "input %q: recursive unexpectedly succeeded", in)
			require.NotNil(t, ierr, "input %q: iterative unexpectedly succeeded", in)
			require.Equal(t, rerr.Kind, ierr.Kind, "input %q: error kind mismatch", in)
			continue
		}
		require.Equal(t, renderValue(rec), renderValue(it), "input %q: value tree mismatch", in)
	}
}

// TestIterativeHandlesDeepNesting exercises the iterative
// parser's actual purpose: input too deep for the recursive parser's host
// stack but still within max_depth.
func TestIterativeHandlesDeepNesting(t *testing.T) {
	depth := 2000
	src := make([]byte, 0, depth*2+1)
	for i := 0; i < depth; i++ {
		src = append(src, '[')
	}
	src = append(src, '1')
	for i := 0; i < depth; i++ {
		src = append(src, ']')
	}
	opts := options.Default(options.WithMaxDepth(depth + 1))
	v, err := ParseIterative(src, NewConfig(opts))
	require.Nil(t, err)
	for i := 0; i < depth; i++ {
		arr, ok := v.Array()
		require.True(t, ok)
		require.Len(t, arr, 1)
		v = arr[0]
	}
	n, ok := v.Int()
	require.True(t, ok)
	require.Equal(t, int64(1), n)
}

// renderValue is a small structural comparator good enough for equivalence
// testing without depending on a canonical printer.
func renderValue(v *value.Value) interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		b, _ := v.Bool()
		return b
	case value.KindInteger:
		n, _ := v.Int()
		return n
	case value.KindFloat:
		f, _ := v.Float()
		return f
	case value.KindString:
		s, _ := v.Str()
		return s
	case value.KindArray:
		arr, _ := v.Array()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = renderValue(e)
		}
		return out
	case value.KindObject:
		obj, _ := v.Object()
		out := make(map[string]interface{}, obj.Len())
		for _, e := range obj.Entries() {
			out[e.Key] = renderValue(e.Value)
		}
		return out
	}
	return nil
}
