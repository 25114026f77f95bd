package lexer

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/token"
)

// lexString scans a quoted string bounded by quote (" or '), respecting
// escapes so an escaped quote never terminates the string. It does not
// decode escapes itself (that is strdecode's job, §4.3); it only finds the
// correctly-matched closing quote and captures the raw lexeme.
func (l *Lexer) lexString(quote byte) (token.Token, *fjerr.Error) {
	start := l.pos
	i := l.pos + 1
	for {
		// Both quote characters and backslash are in the SIMD fast-path
		// byte set (simd.go), so everything between them is "boring" and
		// can be skipped in one vectorized jump rather than byte by byte.
		i = fastForwardBoring(l.input, i)
		if i >= len(l.input) {
			return token.Token{}, fjerr.New(fjerr.UnterminatedString, fjerr.Span{Start: start, End: i}, "string is not terminated by a closing quote")
		}
		c := l.input[i]
		switch {
		case c == '\\':
			if i+1 >= len(l.input) {
				return token.Token{}, fjerr.New(fjerr.UnterminatedString, fjerr.Span{Start: start, End: i + 1}, "dangling escape at end of string")
			}
			i += 2
		case c == quote:
			i++
			l.pos = i
			return token.Token{Kind: token.String, Span: fjerr.Span{Start: start, End: i}, Lexeme: l.input[start:i]}, nil
		default:
			i++
		}
	}
}
