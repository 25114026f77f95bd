package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/value"
)

func drainAll(t *testing.T, e *Engine) []Event {
	t.Helper()
	var out []Event
	for {
		ev, err := e.NextEvent()
		require.Nil(t, err)
		if ev == nil {
			break
		}
		out = append(out, *ev)
		if ev.Kind == EndOfInput {
			break
		}
	}
	return out
}

func kinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func TestEngineSingleValueOneShot(t *testing.T) {
	e := New(options.Default())
	require.Nil(t, e.Feed([]byte(`{"a":1,"b":[true,null]}`)))
	require.Nil(t, e.Finish())
	evs := drainAll(t, e)
	require.Equal(t, []EventKind{
		StartObject, Key, Number, Key, StartArray, Bool, Null, EndArray, EndObject, EndOfInput,
	}, kinds(evs))
}

// TestEngineFeedByByte is the chunk-boundary equivalence property spec §8
// asks for: feeding one byte at a time must produce the same event
// sequence as parsing the whole input in one shot.
func TestEngineFeedByByte(t *testing.T) {
	input := []byte(`{"name": "ok", "values": [1, 2, 3], "nested": {"x": 1.5}}`)

	whole := New(options.Default())
	require.Nil(t, whole.Feed(input))
	require.Nil(t, whole.Finish())
	wantEvents := drainAll(t, whole)

	byByte := New(options.Default())
	var gotEvents []Event
	for i := range input {
		require.Nil(t, byByte.Feed(input[i:i+1]))
		for {
			ev, err := byByte.NextEvent()
			require.Nil(t, err)
			if ev == nil {
				break
			}
			gotEvents = append(gotEvents, *ev)
		}
	}
	require.Nil(t, byByte.Finish())
	for {
		ev, err := byByte.NextEvent()
		require.Nil(t, err)
		if ev == nil {
			break
		}
		gotEvents = append(gotEvents, *ev)
		if ev.Kind == EndOfInput {
			break
		}
	}

	require.Equal(t, kinds(wantEvents), kinds(gotEvents))
	require.Equal(t, len(wantEvents), len(gotEvents))
	for i := range wantEvents {
		require.Equal(t, wantEvents[i].Span, gotEvents[i].Span, "event %d span mismatch", i)
	}
}

func TestEngineSpansAreCumulativeAcrossChunks(t *testing.T) {
	e := New(options.Default())
	// Feed "1, " in one chunk and "2" in the next: the second number's span
	// must be offset by the first chunk's length, not restart at 0.
	require.Nil(t, e.Feed([]byte(`1, `)))
	require.Nil(t, e.Feed([]byte(`2`)))
	require.Nil(t, e.Finish())
	evs := drainAll(t, e)
	require.Len(t, evs, 3) // Number(1), Number(2), EndOfInput
	require.Equal(t, Number, evs[0].Kind)
	require.Equal(t, 0, evs[0].Span.Start)
	require.Equal(t, Number, evs[1].Kind)
	require.Equal(t, 3, evs[1].Span.Start)
}

func TestEngineNDJSONMode(t *testing.T) {
	e := New(options.Default(), WithNDJSON(true))
	require.Nil(t, e.Feed([]byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}")))
	require.Nil(t, e.Finish())
	evs := drainAll(t, e)
	var starts int
	for _, ev := range evs {
		if ev.Kind == StartObject {
			starts++
		}
	}
	require.Equal(t, 3, starts)
}

func TestEngineUnclosedContainerFailsOnFinish(t *testing.T) {
	e := New(options.Default(options.WithRepair(false)))
	require.Nil(t, e.Feed([]byte(`{"a": [1, 2`)))
	err := e.Finish()
	require.NotNil(t, err)
}

func TestEngineIncompleteValueYieldsNoEventsUntilMoreData(t *testing.T) {
	e := New(options.Default())
	require.Nil(t, e.Feed([]byte(`{"a": 1`)))
	ev, err := e.NextEvent()
	require.Nil(t, err)
	require.Nil(t, ev, "must not emit events for an incomplete top-level value")

	require.Nil(t, e.Feed([]byte(`}`)))
	require.Nil(t, e.Finish())
	evs := drainAll(t, e)
	require.Equal(t, []EventKind{StartObject, Key, Number, EndObject, EndOfInput}, kinds(evs))
}

// TestValueToEventsMatchesDirectParse cross-checks appendEvents against a
// direct parser.Parse + structural walk, guarding against the event walker
// silently diverging from the parser's own notion of the tree.
func TestValueToEventsMatchesDirectParse(t *testing.T) {
	src := []byte(`{"k": [1, "s", false, {"nested": null}]}`)
	v, perr := parser.Parse(src, parser.NewConfig(options.Default()))
	require.Nil(t, perr)
	require.Equal(t, value.KindObject, v.Kind())

	e := New(options.Default())
	require.Nil(t, e.Feed(src))
	require.Nil(t, e.Finish())
	evs := drainAll(t, e)
	require.Equal(t, []EventKind{
		StartObject, Key, StartArray, Number, String, Bool, StartObject, Key, Null, EndObject, EndArray, EndObject, EndOfInput,
	}, kinds(evs))
}
