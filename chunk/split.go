// Package chunk implements the Parallel Chunker (spec §4.10): splitting a
// large input at safe boundaries, parsing each piece on its own worker,
// and merging the per-chunk results back into one Value in source order.
package chunk

import (
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/stream"
)

// MinSize is the input size spec §4.10 names ("For inputs ≥ 1 MiB") as
// the point where splitting is worth attempting. ParseParallel still
// accepts smaller input; it just runs it on a single worker, since below
// this size the fan-out/merge overhead dominates any parallelism gain.
const MinSize = 1 << 20

// Chunk is one independently parseable byte range of the original input.
type Chunk struct {
	Data []byte
	Base int // Chunk.Data[0]'s offset in the original input

	// Wrap is the bracket byte ('{', '[', or 0) ParseParallel must wrap
	// Data in before handing it to parser.Parse. Data is never a full
	// document on its own once it's come from inside a peeled container:
	// it is a bare run of comma-separated array elements or object
	// members, which only round-trips through Parse once it is re-framed
	// as `[elements]` or `{members}`. Wrap is 0 when Data is already a
	// complete, independently parseable top-level sequence (e.g. a bare
	// implicit-array run of scalars).
	Wrap byte
}

// span is a content-relative (start, end) byte range.
type span struct{ start, end int }

// Split locates safe split points in buf (spec §4.10: "outside any
// string, comment, or escape, at top-level commas or newlines, or at a
// top-level array element boundary for NDJSON") and groups them into at
// most workerCount chunks of roughly equal size. A buffer that has no
// internal safe split point comes back as one Chunk: a single scalar as
// the whole input, and a bracketed container with zero or one element as
// its body between the brackets, with Wrap set to the opening bracket.
func Split(buf []byte, opts options.Options, workerCount int) []Chunk {
	if workerCount < 1 {
		workerCount = 1
	}
	start := skipInsignificant(buf, 0, opts)
	if start >= len(buf) {
		return []Chunk{{Data: buf, Base: 0}}
	}
	end := len(buf)

	// A bare top-level object with no enclosing '{' '}' (spec §4.4's
	// implicit object body) is a member sequence from byte 0, exactly
	// like a peeled object's body — detect it up front so splitSequence
	// scans it with topLevelMemberSpans instead of treating its first key
	// as a complete top-level value the way topLevelSpans would.
	wrap := byte(0)
	if buf[start] != '{' && buf[start] != '[' && looksLikeImplicitObject(buf, start, end, opts) {
		wrap = '{'
	}
	return splitSequence(buf, start, end, opts, workerCount, wrap)
}

// splitSequence splits content[start:end) under the given wrap mode into
// chunks:
//
//   - wrap == '{': content is a run of top-level "key: value" object
//     members (scanned with topLevelMemberSpans).
//   - wrap == '[' or 0: content is a run of top-level values (scanned
//     with topLevelSpans) — array elements if wrap == '[', a bare
//     implicit-array sequence if wrap == 0.
//
// When wrap == 0 and the run collapses to exactly one element that is
// itself a bracketed container spanning the whole range, splitSequence
// peels the brackets and recurses one level with wrap set to that
// bracket, so a single huge top-level array or object is still split on
// its own members instead of coming back as one unsplittable chunk.
func splitSequence(buf []byte, start, end int, opts options.Options, workerCount int, wrap byte) []Chunk {
	var elems []span
	var complete bool
	if wrap == '{' {
		elems, complete = topLevelMemberSpans(buf, start, end, opts)
	} else {
		elems, complete = topLevelSpans(buf, start, end, opts)
	}

	if !complete {
		// Scanning could not account for every byte up to end as a clean
		// run of values (or members) — e.g. malformed trailing content
		// after a well-formed container. Splitting further here could
		// silently drop that trailing content from every worker's view,
		// letting ParseParallel succeed where parser.Parse would not.
		// Fall back to one chunk so the single-chunk degrade path in
		// ParseParallel reproduces the same outcome parser.Parse gives.
		return []Chunk{{Data: buf[start:end], Base: start, Wrap: wrap}}
	}

	switch len(elems) {
	case 0:
		return []Chunk{{Data: buf[start:end], Base: start, Wrap: wrap}}
	case 1:
		e := elems[0]
		if wrap == 0 && e.start == start && (buf[e.start] == '{' || buf[e.start] == '[') {
			innerEnd := trimmedEnd(buf, e.end)
			if innerEnd > e.start+1 && (buf[innerEnd-1] == '}' || buf[innerEnd-1] == ']') {
				return splitSequence(buf, e.start+1, innerEnd-1, opts, workerCount, buf[e.start])
			}
		}
		return []Chunk{{Data: buf[start:end], Base: start, Wrap: wrap}}
	default:
		if wrap == 0 && (buf[elems[0].start] == '{' || buf[elems[0].start] == '[') {
			// Multiple top-level values led by '{'/'[' with no wrapping
			// array/object of our own: parser.Parse's document grammar
			// always treats a leading '{'/'[' as exactly one value, so
			// this input could never succeed as a single Parse call
			// either. Leave it as one chunk so ParseParallel's
			// single-chunk degrade path surfaces the identical error (or
			// success) a plain Parse would.
			return []Chunk{{Data: buf[start:end], Base: start, Wrap: wrap}}
		}
		return bucket(buf, elems, workerCount, wrap)
	}
}

// topLevelSpans repeatedly applies stream.ScanBoundary over buf[start:end)
// to collect the (start, end) span of every top-level value in that
// range, the same boundary detector the streaming engine uses to find
// one complete value at a time. The returned bool is false if scanning
// stopped before reaching end on something other than trailing
// whitespace — content remained that this scan could not account for.
func topLevelSpans(buf []byte, start, end int, opts options.Options) ([]span, bool) {
	var spans []span
	window := buf[:end]
	pos := start
	for {
		pos = skipInsignificant(window, pos, opts)
		if pos >= end {
			return spans, true
		}
		e, ok := stream.ScanBoundary(window, pos, opts)
		if !ok || e > end {
			return spans, false
		}
		spans = append(spans, span{start: pos, end: e})
		pos = e
	}
}

// topLevelMemberSpans scans buf[start:end) as a sequence of top-level
// "key : value" object members — the body of a peeled {...}, or a bare
// implicit object body. It must never stop at the key alone the way
// topLevelSpans/ScanBoundary would (a member key is not itself a
// complete document value): each span covers from a member's key through
// the end of its value. The returned bool mirrors topLevelSpans's.
func topLevelMemberSpans(buf []byte, start, end int, opts options.Options) ([]span, bool) {
	var spans []span
	pos := start
	for {
		pos = skipInsignificant(buf[:end], pos, opts)
		if pos >= end {
			return spans, true
		}
		memberStart := pos
		keyEnd, ok := scanKey(buf, pos, end, opts)
		if !ok {
			return spans, false
		}
		pos = skipInsignificant(buf[:end], keyEnd, opts)
		if pos >= end || buf[pos] != ':' {
			return spans, false
		}
		pos++
		pos = skipInsignificant(buf[:end], pos, opts)
		valEnd, ok := stream.ScanBoundary(buf[:end], pos, opts)
		if !ok || valEnd > end {
			return spans, false
		}
		spans = append(spans, span{start: memberStart, end: valEnd})
		pos = valEnd
	}
}

// scanKey returns the offset one past a member key — a quoted string (or
// single-quoted, if enabled) or a bare unquoted identifier run — starting
// at buf[pos]. It does not decode the key, only finds its extent.
func scanKey(buf []byte, pos, end int, opts options.Options) (int, bool) {
	if pos >= end {
		return 0, false
	}
	c := buf[pos]
	if c == '"' || (opts.AllowSingleQuotes && c == '\'') {
		quote := c
		i := pos + 1
		for i < end {
			if buf[i] == '\\' {
				i += 2
				continue
			}
			if buf[i] == quote {
				return i + 1, true
			}
			i++
		}
		return 0, false
	}
	if !opts.AllowUnquotedKeys {
		return 0, false
	}
	i := pos
	for i < end {
		b := buf[i]
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f' || b == ':' {
			break
		}
		i++
	}
	if i == pos {
		return 0, false
	}
	return i, true
}

// looksLikeImplicitObject reports whether buf[start:end) opens with a
// member key immediately followed by ':', mirroring
// parser.parseImplicitTopLevel's own object-vs-array lookahead.
func looksLikeImplicitObject(buf []byte, start, end int, opts options.Options) bool {
	keyEnd, ok := scanKey(buf, start, end, opts)
	if !ok {
		return false
	}
	pos := skipInsignificant(buf[:end], keyEnd, opts)
	return pos < end && buf[pos] == ':'
}

// bucket groups elems into at most workerCount contiguous runs of roughly
// equal total byte length, never splitting inside one element, and tags
// every produced Chunk with wrap.
func bucket(buf []byte, elems []span, workerCount int, wrap byte) []Chunk {
	total := elems[len(elems)-1].end - elems[0].start
	target := total / workerCount
	if target < 1 {
		target = total
	}

	var chunks []Chunk
	runStart := elems[0].start
	runBytes := 0
	for i, e := range elems {
		runBytes += e.end - e.start
		last := i == len(elems)-1
		if last || (runBytes >= target && len(chunks) < workerCount-1) {
			chunks = append(chunks, Chunk{Data: buf[runStart:e.end], Base: runStart, Wrap: wrap})
			if !last {
				runStart = elems[i+1].start
				runBytes = 0
			}
		}
	}
	return chunks
}

// skipInsignificant advances past whitespace, commas, and (when enabled)
// comments, mirroring the streaming engine's own lead-in skip so a chunk
// boundary never starts mid-separator.
func skipInsignificant(buf []byte, pos int, opts options.Options) int {
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
			pos += 2
			for pos+1 < len(buf) && !(buf[pos] == '*' && buf[pos+1] == '/') {
				pos++
			}
			pos += 2
		default:
			return pos
		}
	}
	return pos
}

// trimmedEnd returns the offset one past the last non-whitespace byte in
// buf[:end].
func trimmedEnd(buf []byte, end int) int {
	for end > 0 {
		c := buf[end-1]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f' {
			end--
			continue
		}
		break
	}
	return end
}
