// Package fjson is a forgiving JSON parser: RFC 8259 plus the common
// relaxations — comments, unquoted keys, single-quoted strings, trailing
// commas, an implicit top-level container, newline-as-separator, and
// extended numeric literals — with an optional repair engine, a
// streaming/event interface, pluggable parse-time hooks, and a parallel
// chunker for large input.
//
// This file is the public facade spec §6 names: five entry points over
// the internal parser/stream/chunk/repair packages, matching the
// teacher's own thin-SDK-over-engine shape (core/planfmt.ToSDKSteps et
// al. over the unexported plan engine).
package fjson

import (
	"github.com/aledsdavies/fjson/chunk"
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/repair"
	"github.com/aledsdavies/fjson/stream"
	"github.com/aledsdavies/fjson/value"
)

// Parse is the default entry point (spec §6 `parse(bytes, options) ->
// Result<Value, Error>`). It switches to the iterative parser when
// opts.MaxDepth exceeds options.IterativeThreshold, whatever the actual
// nesting of src.
func Parse(src []byte, opts options.Options) (*value.Value, *fjerr.Error) {
	v, err := parser.Parse(src, parser.NewConfig(opts))
	if err != nil {
		err.WithSource(src)
	}
	return v, err
}

// ParseStreaming returns a push/pull streaming parser (spec §6
// `parse_streaming(options) -> StreamingParser`): feed it bytes with
// Feed, drain decoded events with NextEvent, and call Finish once no more
// input is coming.
func ParseStreaming(opts options.Options) *stream.Engine {
	return stream.New(opts)
}

// ParseNDJSONStreaming returns a streaming parser in NDJSON mode (spec §6
// `parse_ndjson_streaming(options)`). Top-level values are split exactly
// as in ParseStreaming: a newline between them is one separator among
// others (commas and other whitespace separate them too); see
// stream.WithNDJSON.
func ParseNDJSONStreaming(opts options.Options) *stream.Engine {
	return stream.New(opts, stream.WithNDJSON(true))
}

// ParseParallel splits large input at safe boundaries and parses the
// pieces concurrently (spec §6 `parse_parallel(bytes, options,
// worker_count) -> Result<Value, Error>`), guaranteed to return results
// identical to Parse for the same input. worker_count <= 0 means "let the
// core choose" (runtime.GOMAXPROCS).
func ParseParallel(src []byte, opts options.Options, workerCount int) (*value.Value, *fjerr.Error) {
	v, err := chunk.ParseParallel(src, opts, workerCount)
	if err != nil {
		err.WithSource(src)
	}
	return v, err
}

// RepairResult is the outcome of ParseWithRepair: the recovered Value and
// the audit trail of edits the repair engine applied, when
// options.ReportRepairs is set.
type RepairResult struct {
	Value   *value.Value
	Repairs []repair.Action
}

// ParseWithRepair runs the three-tier repair engine (spec §6
// `parse_with_repair(bytes, options) -> {value, repairs}`): a strict
// parse, then a forgiving parse under opts, then edit-based repair, each
// tried in order until one succeeds.
func ParseWithRepair(src []byte, opts options.Options) (*RepairResult, *fjerr.Error) {
	res, err := repair.Repair(src, opts)
	if err != nil {
		err.WithSource(src)
		return nil, err
	}
	return &RepairResult{Value: res.Value, Repairs: res.Actions}, nil
}
