package repair

import (
	"strings"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
)

// proposeEdit inspects a parse failure and picks one of the five byte-level
// edit strategies (BalanceBrackets, QuoteKeys, NormaliseQuotes,
// InsertMissingComma, DropTrailingComma), or reports ok=false when none
// applies (the caller then raises Unrepairable). CoerceLiteral and
// UnquoteNumber are not edits; coerce.go applies them after a parse.
func proposeEdit(buf []byte, perr *fjerr.Error, opts options.Options) (edit rawEdit, strat Strategy, desc string, ok bool) {
	switch perr.Kind {
	case fjerr.TrailingComma:
		return dropTrailingComma(buf, perr)

	case fjerr.UnexpectedToken:
		if perr.Span.Start >= len(buf) {
			return balanceBrackets(buf)
		}
		if strings.Contains(perr.Message, "unquoted object keys are not allowed") {
			return quoteKeys(buf, perr)
		}
		return insertMissingComma(perr)

	case fjerr.UnexpectedEof:
		return balanceBrackets(buf)

	case fjerr.BracketMismatch:
		return dropStrayCloser(perr)

	case fjerr.UnexpectedByte:
		if perr.Span.Start < len(buf) && buf[perr.Span.Start] == '\'' && !opts.AllowSingleQuotes {
			return normaliseQuotes(buf, perr)
		}
		return rawEdit{}, "", "", false

	default:
		return rawEdit{}, "", "", false
	}
}

// dropTrailingComma removes the comma immediately preceding the closing
// bracket named by perr.Span (spec's `DropTrailingComma`, confidence 0.9).
func dropTrailingComma(buf []byte, perr *fjerr.Error) (rawEdit, Strategy, string, bool) {
	i := perr.Span.Start - 1
	for i >= 0 && isJSONSpace(buf[i]) {
		i--
	}
	if i < 0 || buf[i] != ',' {
		return rawEdit{}, "", "", false
	}
	return rawEdit{start: i, end: i + 1, replacement: nil}, DropTrailingComma,
		"removed trailing comma before closing bracket", true
}

// balanceBrackets appends the minimum run of closers needed to match every
// bracket scanUnclosedBrackets finds still open (spec's `BalanceBrackets`,
// confidence 0.9).
func balanceBrackets(buf []byte) (rawEdit, Strategy, string, bool) {
	openers := scanUnclosedBrackets(buf)
	if len(openers) == 0 {
		return rawEdit{}, "", "", false
	}
	closers := make([]byte, len(openers))
	for i, o := range openers {
		c := byte('}')
		if o == '[' {
			c = ']'
		}
		closers[len(openers)-1-i] = c
	}
	return rawEdit{start: len(buf), end: len(buf), replacement: closers}, BalanceBrackets,
		"inserted closing brackets to balance unclosed openers", true
}

// dropStrayCloser removes a closing bracket that has no matching opener,
// or that mismatches the innermost opener (also filed under
// `BalanceBrackets`: spec doesn't split "insert" vs "drop" into separate
// named strategies).
func dropStrayCloser(perr *fjerr.Error) (rawEdit, Strategy, string, bool) {
	if perr.Span.End <= perr.Span.Start {
		return rawEdit{}, "", "", false
	}
	return rawEdit{start: perr.Span.Start, end: perr.Span.End, replacement: nil}, BalanceBrackets,
		"dropped unmatched closing bracket", true
}

// quoteKeys wraps a bare identifier key (already located by the parser at
// perr.Span) in double quotes (spec's `QuoteKeys`, confidence 0.85).
func quoteKeys(buf []byte, perr *fjerr.Error) (rawEdit, Strategy, string, bool) {
	if perr.Span.End > len(buf) || perr.Span.Start < 0 || perr.Span.Start >= perr.Span.End {
		return rawEdit{}, "", "", false
	}
	ident := buf[perr.Span.Start:perr.Span.End]
	repl := make([]byte, 0, len(ident)+2)
	repl = append(repl, '"')
	repl = append(repl, ident...)
	repl = append(repl, '"')
	return rawEdit{start: perr.Span.Start, end: perr.Span.End, replacement: repl}, QuoteKeys,
		"wrapped bare identifier key in double quotes", true
}

// insertMissingComma inserts a comma immediately before the unexpected
// token at perr.Span.Start (spec's `InsertMissingComma`, confidence 0.75).
// It does not check what precedes that token: any UnexpectedToken failure
// inside the input gets this edit.
func insertMissingComma(perr *fjerr.Error) (rawEdit, Strategy, string, bool) {
	if perr.Span.Start <= 0 {
		return rawEdit{}, "", "", false
	}
	return rawEdit{start: perr.Span.Start, end: perr.Span.Start, replacement: []byte{','}}, InsertMissingComma,
		"inserted comma between two adjacent values", true
}

// normaliseQuotes rewrites a single-quoted string literal at perr.Span.Start
// into a double-quoted one, escaping any interior double quote and
// unescaping a now-unnecessary escaped single quote (spec's
// `NormaliseQuotes`, confidence 0.8).
func normaliseQuotes(buf []byte, perr *fjerr.Error) (rawEdit, Strategy, string, bool) {
	start := perr.Span.Start
	i := start + 1
	var body []byte
	for i < len(buf) {
		c := buf[i]
		switch {
		case c == '\\' && i+1 < len(buf):
			next := buf[i+1]
			if next == '\'' {
				body = append(body, '\'')
			} else {
				body = append(body, '\\', next)
			}
			i += 2
		case c == '\'':
			i++
			replacement := make([]byte, 0, len(body)+2)
			replacement = append(replacement, '"')
			for _, b := range body {
				if b == '"' {
					replacement = append(replacement, '\\', '"')
				} else {
					replacement = append(replacement, b)
				}
			}
			replacement = append(replacement, '"')
			return rawEdit{start: start, end: i, replacement: replacement}, NormaliseQuotes,
				"converted single-quoted string to double-quoted", true
		default:
			body = append(body, c)
			i++
		}
	}
	return rawEdit{}, "", "", false // unterminated, nothing safe to rewrite
}

// scanUnclosedBrackets walks buf tracking only bracket depth, string, and
// comment state (never validating grammar, same discipline as
// stream.ScanBoundary) and returns every opener byte still on the stack
// at end of input, outermost first.
func scanUnclosedBrackets(buf []byte) []byte {
	var stack []byte
	i := 0
	for i < len(buf) {
		c := buf[i]
		switch {
		case c == '"' || c == '\'':
			quote := c
			i++
			for i < len(buf) && buf[i] != quote {
				if buf[i] == '\\' {
					i++
				}
				i++
			}
			i++
		case c == '/' && i+1 < len(buf) && buf[i+1] == '/':
			i += 2
			for i < len(buf) && buf[i] != '\n' {
				i++
			}
		case c == '#':
			i++
			for i < len(buf) && buf[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(buf) && buf[i+1] == '*':
			i += 2
			for i+1 < len(buf) && !(buf[i] == '*' && buf[i+1] == '/') {
				i++
			}
			i += 2
		case c == '{' || c == '[':
			stack = append(stack, c)
			i++
		case c == '}' || c == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			i++
		default:
			i++
		}
	}
	return stack
}

func isJSONSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}
