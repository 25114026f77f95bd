package lexer

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/token"
)

// lexNumber scans the longest numeric lexeme starting at the current
// position (spec §4.2): a decimal integer/float, or (always recognized by
// the lexer; the forgiving-vs-strict decision is numeric.Parse's) an
// extended-base integer, with '_' digit grouping and a leading '+' sign.
func (l *Lexer) lexNumber() (token.Token, *fjerr.Error) {
	start := l.pos
	if l.input[l.pos] == '+' || l.input[l.pos] == '-' {
		l.pos++
	}

	base := token.Base10
	if l.pos+1 < len(l.input) && l.input[l.pos] == '0' {
		switch l.input[l.pos+1] {
		case 'x', 'X':
			base = token.Base16
			l.pos += 2
			l.consumeRun(isHexOrUnderscore)
			return l.finishNumber(start, base), nil
		case 'o', 'O':
			base = token.Base8
			l.pos += 2
			l.consumeRun(isOctalOrUnderscore)
			return l.finishNumber(start, base), nil
		case 'b', 'B':
			base = token.Base2
			l.pos += 2
			l.consumeRun(isBinaryOrUnderscore)
			return l.finishNumber(start, base), nil
		}
	}

	l.consumeRun(isDecimalOrUnderscore)
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		l.consumeRun(isDecimalOrUnderscore)
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.input) && isDecimalOrUnderscore(l.input[l.pos]) {
			l.consumeRun(isDecimalOrUnderscore)
		} else {
			l.pos = save // no digits after 'e': not an exponent, back off
		}
	}
	return l.finishNumber(start, base), nil
}

func (l *Lexer) finishNumber(start int, base token.NumberBase) token.Token {
	return token.Token{Kind: token.Number, Base: base, Span: fjerr.Span{Start: start, End: l.pos}, Lexeme: l.input[start:l.pos]}
}

func (l *Lexer) consumeRun(pred func(byte) bool) {
	for l.pos < len(l.input) && pred(l.input[l.pos]) {
		l.pos++
	}
}

func isDecimalOrUnderscore(c byte) bool { return (c >= '0' && c <= '9') || c == '_' }
func isHexOrUnderscore(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '_'
}
func isOctalOrUnderscore(c byte) bool { return (c >= '0' && c <= '7') || c == '_' }
func isBinaryOrUnderscore(c byte) bool { return c == '0' || c == '1' || c == '_' }
