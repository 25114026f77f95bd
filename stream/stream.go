// Package stream implements the push/pull Streaming Engine (spec §4.6):
// feed bytes incrementally, pull an event sequence without ever holding a
// full Value tree for more than one top-level value at a time.
package stream

import (
	"log/slog"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/numeric"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/value"
)

// EventKind is one member of the event alphabet (spec §4.6).
type EventKind uint8

const (
	StartObject EventKind = iota
	EndObject
	StartArray
	EndArray
	Key
	Null
	Bool
	Number
	String
	EndOfInput
)

var eventKindNames = [...]string{
	"StartObject", "EndObject", "StartArray", "EndArray",
	"Key", "Null", "Bool", "Number", "String", "EndOfInput",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is one item of the streaming alphabet, carrying a span relative to
// the cumulative byte offset across every chunk fed so far.
type Event struct {
	Kind   EventKind
	Span   fjerr.Span
	Key    string
	Str    string
	BoolV  bool
	Number numeric.Number
}

// Engine is the incremental push/pull parser (spec §4.6). It is not safe
// for concurrent use: Feed and NextEvent must be called from one
// goroutine, matching the teacher's own non-shared incremental readers.
type Engine struct {
	opts   options.Options
	ndjson bool
	log    *slog.Logger

	buf      []byte
	scanFrom int // offset into buf where the next boundary scan resumes
	queue    []Event

	finished     bool
	eofDelivered bool
	lineNo       int
}

// EngineOpt configures a new Engine.
type EngineOpt func(*Engine)

// WithNDJSON enables newline-delimited JSON mode, in which the engine
// counts one line per top-level value it emits. Splitting the input into
// top-level values is the same in both modes: the engine emits events for
// every complete top-level value, whether the values are separated by
// newlines, commas or other whitespace. The line count is not reported
// in error spans.
func WithNDJSON(enabled bool) EngineOpt {
	return func(e *Engine) { e.ndjson = enabled }
}

// New builds an Engine over opts.
func New(opts options.Options, eo ...EngineOpt) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{opts: opts, log: log, lineNo: 1}
	for _, o := range eo {
		o(e)
	}
	return e
}

// Feed appends data to the engine's buffer and greedily turns as many
// complete top-level values into queued events as the buffer currently
// allows. Partial values remain buffered until the next Feed or Finish.
func (e *Engine) Feed(data []byte) *fjerr.Error {
	e.buf = append(e.buf, data...)
	return e.drain()
}

// drain scans forward from scanFrom, converting every complete top-level
// value it can find into events, until ScanBoundary reports it needs more
// data.
func (e *Engine) drain() *fjerr.Error {
	for {
		start := skipLeading(e.buf, e.scanFrom, e.opts)
		if start >= len(e.buf) {
			e.scanFrom = start
			return nil
		}
		end, ok := ScanBoundary(e.buf, start, e.opts)
		if !ok {
			return nil // incomplete; wait for more bytes or Finish
		}
		if err := e.emitChunk(e.buf[start:end], start); err != nil {
			return err
		}
		if e.ndjson {
			e.lineNo++
		}
		e.scanFrom = end
	}
}

// skipLeading advances past whitespace and (if enabled) comments with no
// content consideration, mirroring ScanBoundary's own skip logic for the
// gap between two top-level values.
func skipLeading(buf []byte, pos int, opts options.Options) int {
	for pos < len(buf) {
		c := buf[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f' || c == ',':
			pos++
		case opts.AllowComments && c == '/' && pos+1 < len(buf) && buf[pos+1] == '/':
			pos += 2
			for pos < len(buf) && buf[pos] != '\n' {
				pos++
			}
		case opts.AllowComments && c == '#':
			pos++
			for pos < len(buf) && buf[pos] != '\n' {
				pos++
			}
		case opts.AllowComments && c == '/' && pos+1 < len(buf) && buf[pos+1] == '*':
			end := pos + 2
			for end+1 < len(buf) && !(buf[end] == '*' && buf[end+1] == '/') {
				end++
			}
			if end+1 >= len(buf) {
				return pos // unterminated block comment: wait for more data
			}
			pos = end + 2
		default:
			return pos
		}
	}
	return pos
}

// emitChunk parses a complete, self-contained top-level value slice and
// appends its event sequence to the queue, offsetting every span by base
// so it reads as a cumulative byte offset across the whole stream.
func (e *Engine) emitChunk(chunk []byte, base int) *fjerr.Error {
	cfg := parser.NewConfig(e.opts)
	v, err := parser.Parse(chunk, cfg)
	if err != nil {
		err.Span.Start += base
		err.Span.End += base
		if err.Secondary != nil {
			err.Secondary.Start += base
			err.Secondary.End += base
		}
		return err
	}
	appendEvents(&e.queue, v, base)
	return nil
}

// appendEvents walks v in source order, the same order Entries()/Array()
// already preserve, emitting one event per node (spec §4.6 "Ordering:
// events for a given chunk are emitted in source order").
func appendEvents(q *[]Event, v *value.Value, base int) {
	sp := offsetSpan(v.Span(), base)
	switch v.Kind() {
	case value.KindNull:
		*q = append(*q, Event{Kind: Null, Span: sp})
	case value.KindBool:
		b, _ := v.Bool()
		*q = append(*q, Event{Kind: Bool, Span: sp, BoolV: b})
	case value.KindInteger:
		n, _ := v.Int()
		*q = append(*q, Event{Kind: Number, Span: sp, Number: numeric.Number{Kind: numeric.Integer, I: n}})
	case value.KindFloat:
		f, _ := v.Float()
		*q = append(*q, Event{Kind: Number, Span: sp, Number: numeric.Number{Kind: numeric.Float, F: f}})
	case value.KindString:
		s, _ := v.Str()
		*q = append(*q, Event{Kind: String, Span: sp, Str: s})
	case value.KindArray:
		*q = append(*q, Event{Kind: StartArray, Span: sp})
		arr, _ := v.Array()
		for _, el := range arr {
			appendEvents(q, el, base)
		}
		*q = append(*q, Event{Kind: EndArray, Span: sp})
	case value.KindObject:
		*q = append(*q, Event{Kind: StartObject, Span: sp})
		obj, _ := v.Object()
		for _, entry := range obj.Entries() {
			*q = append(*q, Event{Kind: Key, Span: offsetSpan(entry.Value.Span(), base), Key: entry.Key})
			appendEvents(q, entry.Value, base)
		}
		*q = append(*q, Event{Kind: EndObject, Span: sp})
	}
}

func offsetSpan(s fjerr.Span, base int) fjerr.Span {
	return fjerr.Span{Start: s.Start + base, End: s.End + base}
}

// NextEvent returns the next queued event, or (nil, nil) if the buffer
// cannot yet produce one and the caller should Feed more data (spec §4.6
// "next_event() -> Option<Event> | Error").
func (e *Engine) NextEvent() (*Event, *fjerr.Error) {
	if len(e.queue) > 0 {
		ev := e.queue[0]
		e.queue = e.queue[1:]
		return &ev, nil
	}
	if e.finished && !e.eofDelivered {
		e.eofDelivered = true
		return &Event{Kind: EndOfInput, Span: fjerr.Span{Start: len(e.buf), End: len(e.buf)}}, nil
	}
	return nil, nil
}

// Finish asserts end of input: any remaining buffered content must form a
// complete value (or be pure trailing whitespace/comments), otherwise it's
// an UnexpectedEof naming the span of whatever opener never closed.
func (e *Engine) Finish() *fjerr.Error {
	e.finished = true
	start := skipLeading(e.buf, e.scanFrom, e.opts)
	if start >= len(e.buf) {
		e.scanFrom = start
		return nil
	}
	// Treat the remaining bytes as the final, now-complete slice: no more
	// data is coming, so whatever ScanBoundary couldn't close is a real
	// error, surfaced by handing the remainder to the parser directly
	// (it reports the precise unclosed-opener span via its own
	// BracketTracker).
	if err := e.emitChunk(e.buf[start:], start); err != nil {
		return err
	}
	e.scanFrom = len(e.buf)
	return nil
}
