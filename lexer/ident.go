package lexer

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/token"
)

// lexIdent scans a bare identifier [A-Za-z_$][A-Za-z0-9_$]* (spec §3.3
// "allow_unquoted_keys"). The lexer does not know whether it is in key
// position, so it always emits UnquotedIdent except for the three
// reserved literals true/false/null, which get dedicated token kinds
// regardless of position, per the grammar in §4.4.
func (l *Lexer) lexIdent() (token.Token, *fjerr.Error) {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if int(c) >= 128 || !isIdentPart[c] {
			break
		}
		l.pos++
	}
	lexeme := l.input[start:l.pos]
	span := fjerr.Span{Start: start, End: l.pos}

	switch string(lexeme) {
	case "true":
		return token.Token{Kind: token.True, Span: span, Lexeme: lexeme}, nil
	case "false":
		return token.Token{Kind: token.False, Span: span, Lexeme: lexeme}, nil
	case "null":
		return token.Token{Kind: token.Null, Span: span, Lexeme: lexeme}, nil
	default:
		return token.Token{Kind: token.UnquotedIdent, Span: span, Lexeme: lexeme}, nil
	}
}
