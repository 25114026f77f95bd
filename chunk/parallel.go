package chunk

import (
	"runtime"
	"sync"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/value"
)

// ParseParallel implements spec §6's `parse_parallel(bytes, options,
// worker_count) -> Result<Value, Error>`, guaranteed to return identical
// results to parser.Parse for the same input.
//
// Below chunk.MinSize, or when the input has no internal safe split
// point, it degrades to a single synchronous parser.Parse call. Above
// it, Split partitions the input, a bounded worker pool (a buffered
// channel used as a semaphore plus a sync.WaitGroup, the teacher's own
// concurrency idiom in runtime/decorators/parallel.go) parses each chunk
// concurrently, and Merge combines the per-chunk Values back into one
// tree in chunk order — the only synchronisation point, per spec §5.
func ParseParallel(src []byte, opts options.Options, workerCount int) (*value.Value, *fjerr.Error) {
	if workerCount < 1 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	if len(src) < MinSize {
		return parser.Parse(src, parser.NewConfig(opts))
	}

	chunks := Split(src, opts, workerCount)
	if len(chunks) == 1 {
		return parser.Parse(src, parser.NewConfig(opts))
	}

	type outcome struct {
		v   *value.Value
		err *fjerr.Error
	}
	results := make([]outcome, len(chunks))
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup

	for i, c := range chunks {
		wg.Add(1)
		i, c := i, c
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			wrapped, delta := wrapChunk(c)
			v, err := parser.Parse(wrapped, parser.NewConfig(opts))
			if err != nil {
				err.Span.Start += c.Base - delta
				err.Span.End += c.Base - delta
				if err.Secondary != nil {
					err.Secondary.Start += c.Base - delta
					err.Secondary.End += c.Base - delta
				}
			}
			results[i] = outcome{v: v, err: err}
		}()
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
	}

	values := make([]*value.Value, len(results))
	for i, r := range results {
		values[i] = r.v
	}
	return Merge(values, outerKind(chunks[0].Wrap), fjerr.Span{Start: 0, End: len(src)})
}

// wrapChunk returns the bytes parser.Parse should actually see for c, and
// how many leading bytes were prepended (so callers can translate an
// error span's offset back to the original input). A chunk's Data is a
// bare run of array elements or object members once it's been peeled out
// of its container — re-framing it as `[Data]` or `{Data}` makes it a
// complete, independently parseable document again, per spec §4.10's
// "parse each chunk through an implicit-sequence reader (or re-wrap the
// chunk in its container's brackets)".
func wrapChunk(c Chunk) ([]byte, int) {
	switch c.Wrap {
	case '[':
		buf := make([]byte, 0, len(c.Data)+2)
		buf = append(buf, '[')
		buf = append(buf, c.Data...)
		buf = append(buf, ']')
		return buf, 1
	case '{':
		buf := make([]byte, 0, len(c.Data)+2)
		buf = append(buf, '{')
		buf = append(buf, c.Data...)
		buf = append(buf, '}')
		return buf, 1
	default:
		return c.Data, 0
	}
}

// outerKind reports the value.Kind the whole (unsplit) input would parse
// to, derived from the wrap byte every Chunk of one Split call shares —
// deterministic, unlike inferring it from a chunk's own parsed Value,
// which degenerates when a peeled array's elements are themselves
// objects (spec §6/§8 parity bug: a split array-of-objects must still
// merge back into an array, not an object).
func outerKind(wrap byte) value.Kind {
	switch wrap {
	case '{':
		return value.KindObject
	default:
		return value.KindArray
	}
}

// Merge combines chunk-ordered Values produced by independent parses of
// adjacent byte ranges back into one Value, per spec §4.10: concatenation
// for an array/NDJSON split, sequential member insertion (in chunk order,
// so last-writer-wins resolves exactly as a single full parse would) for
// an object split. kind is the container kind of the whole (unsplit)
// input — see outerKind — not inferred from any one chunk's Value, so a
// split array of objects can never be mistaken for an object merge. A
// single-element slice is returned unchanged regardless of kind.
func Merge(values []*value.Value, kind value.Kind, outer fjerr.Span) (*value.Value, *fjerr.Error) {
	if len(values) == 1 {
		return values[0], nil
	}
	if len(values) == 0 {
		if kind == value.KindObject {
			empty := value.ObjectValue(value.NewObject())
			empty.SetSpan(outer)
			return empty, nil
		}
		empty := value.Array(nil)
		empty.SetSpan(outer)
		return empty, nil
	}

	switch kind {
	case value.KindObject:
		obj := value.NewObject()
		for _, v := range values {
			src, ok := v.Object()
			if !ok {
				return nil, fjerr.New(fjerr.UnexpectedToken, outer, "chunk merge: expected object, found %s", v.Kind())
			}
			for _, e := range src.Entries() {
				obj.Set(e.Key, e.Value)
			}
		}
		merged := value.ObjectValue(obj)
		merged.SetSpan(outer)
		return merged, nil

	default:
		var elems []*value.Value
		for _, v := range values {
			arr, ok := v.Array()
			if !ok {
				return nil, fjerr.New(fjerr.UnexpectedToken, outer, "chunk merge: expected array, found %s", v.Kind())
			}
			elems = append(elems, arr...)
		}
		merged := value.Array(elems)
		merged.SetSpan(outer)
		return merged, nil
	}
}
