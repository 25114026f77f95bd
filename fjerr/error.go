// Package fjerr implements the closed error taxonomy for fjson (spec §7).
//
// Every error carries a Kind from a fixed enumeration, a primary Span, an
// optional secondary Span (for bracket-mismatch pairing), and zero or more
// advisory hints. Kinds never reuse a host-language exception class.
package fjerr

import (
	"fmt"
	"strings"
)

// Kind is the closed taxonomy of error categories (spec §7).
type Kind int

const (
	UnexpectedByte Kind = iota
	UnexpectedToken
	UnexpectedEof
	UnterminatedString
	UnterminatedComment
	InvalidEscape
	InvalidUtf8
	InvalidNumber
	TrailingComma
	DepthExceeded
	DuplicateKeyRejected
	BracketMismatch
	PluginError
	RepairFailed
	TooManyRepairs
	Unrepairable
)

var kindNames = [...]string{
	"UnexpectedByte",
	"UnexpectedToken",
	"UnexpectedEof",
	"UnterminatedString",
	"UnterminatedComment",
	"InvalidEscape",
	"InvalidUtf8",
	"InvalidNumber",
	"TrailingComma",
	"DepthExceeded",
	"DuplicateKeyRejected",
	"BracketMismatch",
	"PluginError",
	"RepairFailed",
	"TooManyRepairs",
	"Unrepairable",
}

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Error is the single error type produced by every fjson layer. It is never
// wrapped in a host exception class; callers type-switch or use errors.As
// against *Error and compare Kind.
type Error struct {
	Kind      Kind
	Message   string
	Span      Span
	Secondary *Span // non-nil for BracketMismatch and similar paired errors
	Hints     []string
	Cause     error // set by PluginError and wrapped repair failures

	// Source, when set, lets Error() render a line:column position and a
	// code-context arrow instead of a bare byte offset.
	Source []byte
}

// Error implements the error interface with the deterministic
// "line:column: kind: message" format required by spec §6/§7.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Source != nil {
		line, col := NewLineIndex(e.Source).Position(e.Span.Start)
		fmt.Fprintf(&b, "%d:%d: %s: %s", line, col, e.Kind, e.Message)
	} else {
		fmt.Fprintf(&b, "%d: %s: %s", e.Span.Start, e.Kind, e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithHint appends an advisory hint and returns the error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hints = append(e.Hints, hint)
	return e
}

// WithSource attaches the original input so Error() can render line:column.
func (e *Error) WithSource(src []byte) *Error {
	e.Source = src
	return e
}

// New builds an Error of the given kind at span with a formatted message.
func New(kind Kind, span Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error that records a causing error (used by PluginError and
// the repair dispatcher).
func Wrap(kind Kind, span Span, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithSecondary attaches a secondary span (e.g. the unmatched opening
// bracket for a BracketMismatch error) and returns the error for chaining.
func (e *Error) WithSecondary(span Span) *Error {
	e.Secondary = &span
	return e
}

// Snippet renders a Rust/Clang-style source excerpt with a caret under the
// error position, in the manner of the teacher's ParseError.createCodeSnippet.
// It returns "" if no source was attached.
func (e *Error) Snippet() string {
	if e.Source == nil {
		return ""
	}
	li := NewLineIndex(e.Source)
	line, col := li.Position(e.Span.Start)
	lines := strings.Split(string(e.Source), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	content := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", line, col)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", line, content)
	b.WriteString("   | ")
	if col > 0 && col <= len(content)+1 {
		b.WriteString(strings.Repeat(" ", col-1) + "^")
	}
	return b.String()
}

// Code returns a stable numeric code for the error's Kind, per spec §6's
// "structured error object with stable numeric codes". Codes are the
// taxonomy's ordinal position and are part of the public contract: new
// kinds are appended, never inserted.
func (e *Error) Code() int {
	return int(e.Kind)
}
