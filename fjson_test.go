package fjson

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/stream"
)

func TestParseForgivingInput(t *testing.T) {
	v, err := Parse([]byte(`{ a: 1, b: 'two', c: [1, 2, 3,], } // trailing`), options.Default())
	require.Nil(t, err)
	obj, ok := v.Object()
	require.True(t, ok)
	require.Equal(t, 3, obj.Len())
}

func TestParseAttachesSourceForDiagnostics(t *testing.T) {
	_, err := Parse([]byte(`{`), options.Strict())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), ":")
}

func TestParseStreamingProducesExpectedEvents(t *testing.T) {
	e := ParseStreaming(options.Default())
	require.Nil(t, e.Feed([]byte(`{"a": 1}`)))
	require.Nil(t, e.Finish())

	var kinds []stream.EventKind
	for {
		ev, err := e.NextEvent()
		require.Nil(t, err)
		if ev == nil {
			break
		}
		kinds = append(kinds, ev.Kind)
		if ev.Kind == stream.EndOfInput {
			break
		}
	}
	require.Equal(t, []stream.EventKind{
		stream.StartObject, stream.Key, stream.Number, stream.EndObject, stream.EndOfInput,
	}, kinds)
}

func TestParseNDJSONStreamingSplitsOnNewlines(t *testing.T) {
	e := ParseNDJSONStreaming(options.Default())
	require.Nil(t, e.Feed([]byte("{\"a\":1}\n{\"a\":2}\n")))
	require.Nil(t, e.Finish())

	var starts int
	for {
		ev, err := e.NextEvent()
		require.Nil(t, err)
		if ev == nil || ev.Kind == stream.EndOfInput {
			break
		}
		if ev.Kind == stream.StartObject {
			starts++
		}
	}
	require.Equal(t, 2, starts)
}

func TestParseParallelMatchesParseOnSmallInput(t *testing.T) {
	src := []byte(`[1, 2, 3, {"a": "b"}]`)
	v1, err1 := Parse(src, options.Default())
	require.Nil(t, err1)
	v2, err2 := ParseParallel(src, options.Default(), 4)
	require.Nil(t, err2)

	arr1, _ := v1.Array()
	arr2, _ := v2.Array()
	require.Len(t, arr2, len(arr1))
}

func TestParseWithRepairFixesUnclosedBrackets(t *testing.T) {
	res, err := ParseWithRepair([]byte(`{"a": [1, 2, 3`), options.Default())
	require.Nil(t, err)
	require.NotNil(t, res.Value)
	require.NotEmpty(t, res.Repairs)
	require.Equal(t, "BalanceBrackets", string(res.Repairs[0].Strategy))
}

func TestParseWithRepairReturnsNoActionsForCleanInput(t *testing.T) {
	res, err := ParseWithRepair([]byte(`{"a": 1}`), options.Default())
	require.Nil(t, err)
	require.Empty(t, res.Repairs)
}
