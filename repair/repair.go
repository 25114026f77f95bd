// Package repair implements the three-tier repair engine (spec §4.7):
// fast strict parse, then forgiving parse, then edit-based repair with an
// audit trail of the edits applied.
package repair

import (
	"log/slog"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/value"
)

// Strategy names one of the seven edit strategies spec §4.7 enumerates.
type Strategy string

const (
	BalanceBrackets    Strategy = "BalanceBrackets"
	QuoteKeys          Strategy = "QuoteKeys"
	NormaliseQuotes    Strategy = "NormaliseQuotes"
	InsertMissingComma Strategy = "InsertMissingComma"
	DropTrailingComma  Strategy = "DropTrailingComma"
	CoerceLiteral      Strategy = "CoerceLiteral"
	UnquoteNumber      Strategy = "UnquoteNumber"
)

// confidence is the fixed score spec §4.7 assigns each strategy.
var confidence = map[Strategy]float64{
	BalanceBrackets:    0.9,
	QuoteKeys:          0.85,
	NormaliseQuotes:    0.8,
	InsertMissingComma: 0.75,
	DropTrailingComma:  0.9,
	CoerceLiteral:      0.7,
	UnquoteNumber:      0.7,
}

// Action is one entry of the audit trail returned when ReportRepairs is
// set: the strategy applied, the span it covers in the *original* input,
// the text it was replaced with, and the strategy's confidence.
type Action struct {
	Strategy     Strategy
	OriginalSpan fjerr.Span
	Replacement  string
	Confidence   float64
	Description  string
}

// Result is what Repair returns on success: the parsed Value and, if
// ReportRepairs was set, the audit trail of edits that produced it.
type Result struct {
	Value   *value.Value
	Actions []Action
}

// Repair applies the three-tier strategy of spec §4.7 to src. Tiers 1 and
// 2 return a nil Actions slice; tier 3 returns its audit trail when
// ReportRepairs is set and a nil Actions slice otherwise.
func Repair(src []byte, opts options.Options) (*Result, *fjerr.Error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	// Tier 1: fast path, standard strict JSON. No coercion here — spec §8
	// requires parse_with_repair(I).value == parse(I, forgiving=on).value
	// with repairs == [] whenever the forgiving parser would already
	// succeed, so a clean tier-1/tier-2 result must come back untouched.
	if v, err := parser.Parse(src, parser.NewConfig(options.Strict())); err == nil {
		return &Result{Value: v}, nil
	}

	// Tier 2: forgiving path, the caller's own (presumably forgiving)
	// options, unmodified.
	if v, err := parser.Parse(src, parser.NewConfig(opts)); err == nil {
		return &Result{Value: v}, nil
	}

	// Tier 3: edit-based repair.
	log.Debug("fjson: entering edit-based repair", "input_len", len(src))
	return repairByEdits(src, opts, log)
}

// bufEdit records one applied edit in the coordinates of the buffer as it
// existed immediately before the edit, so later edits' spans can be
// translated back through history to the original input.
type bufEdit struct {
	start, end int
	newLen     int
}

// translateToOriginal maps pos, a position in the buffer as it exists
// after every edit in history was applied, back to its position in the
// buffer before history[0] was applied (i.e. the original input), by
// undoing each edit's effect on position in reverse order.
func translateToOriginal(pos int, history []bufEdit) int {
	for i := len(history) - 1; i >= 0; i-- {
		e := history[i]
		switch {
		case pos < e.start:
			// unaffected by this edit
		case pos >= e.start+e.newLen:
			pos = pos - e.newLen + (e.end - e.start)
		default:
			pos = e.start
		}
	}
	return pos
}

func repairByEdits(src []byte, opts options.Options, log *slog.Logger) (*Result, *fjerr.Error) {
	buf := append([]byte(nil), src...)
	var history []bufEdit
	var actions []Action

	maxRepairs := opts.MaxRepairs
	if maxRepairs <= 0 {
		maxRepairs = 1
	}

	for i := 0; i <= maxRepairs; i++ {
		v, perr := parser.Parse(buf, parser.NewConfig(opts))
		if perr == nil {
			if opts.CoerceTypes {
				coerced := coerceLiterals(v)
				for j := range coerced {
					coerced[j].OriginalSpan = fjerr.Span{
						Start: translateToOriginal(coerced[j].OriginalSpan.Start, history),
						End:   translateToOriginal(coerced[j].OriginalSpan.End, history),
					}
				}
				if opts.ReportRepairs {
					actions = append(actions, coerced...)
				}
			}
			if !opts.ReportRepairs {
				actions = nil
			}
			log.Debug("fjson: repair succeeded", "edits", len(actions))
			return &Result{Value: v, Actions: actions}, nil
		}
		if i == maxRepairs {
			break
		}

		edit, strat, desc, ok := proposeEdit(buf, perr, opts)
		if !ok {
			return nil, fjerr.New(fjerr.Unrepairable, perr.Span,
				"no applicable repair strategy for %s: %s", perr.Kind, perr.Message)
		}

		conf := confidence[strat]
		if opts.FastRepair && conf < 0.85 {
			return nil, fjerr.New(fjerr.Unrepairable, perr.Span,
				"strategy %s below fast_repair confidence threshold", strat)
		}

		origSpan := fjerr.Span{
			Start: translateToOriginal(edit.start, history),
			End:   translateToOriginal(edit.end, history),
		}
		actions = append(actions, Action{
			Strategy:     strat,
			OriginalSpan: origSpan,
			Replacement:  string(edit.replacement),
			Confidence:   conf,
			Description:  desc,
		})
		log.Debug("fjson: applying repair", "strategy", strat, "span", origSpan)

		buf = applyEdit(buf, edit)
		history = append(history, bufEdit{start: edit.start, end: edit.end, newLen: len(edit.replacement)})
	}

	return nil, fjerr.New(fjerr.TooManyRepairs, fjerr.Span{}, "exceeded max_repairs (%d)", maxRepairs)
}

// rawEdit is a byte-range replacement in the buffer's current coordinates.
type rawEdit struct {
	start, end  int
	replacement []byte
}

func applyEdit(buf []byte, e rawEdit) []byte {
	out := make([]byte, 0, len(buf)-(e.end-e.start)+len(e.replacement))
	out = append(out, buf[:e.start]...)
	out = append(out, e.replacement...)
	out = append(out, buf[e.end:]...)
	return out
}
