package lexer

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/token"
)

// lexComment scans a "//" line comment or a "/* */" block comment. The
// caller has already checked l.input[l.pos:l.pos+2] is "//" or "/*".
func (l *Lexer) lexComment() (token.Token, *fjerr.Error) {
	start := l.pos
	if l.input[l.pos+1] == '/' {
		l.pos += 2
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
		return token.Token{Kind: token.Comment, CommentKind: token.LineSlash, Span: fjerr.Span{Start: start, End: l.pos}, Lexeme: l.input[start:l.pos]}, nil
	}
	return l.lexBlockComment(start)
}

// lexHashComment scans a "# ..." line comment to end of line. The caller
// has already checked l.input[l.pos] == '#'.
func (l *Lexer) lexHashComment() (token.Token, *fjerr.Error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	return token.Token{Kind: token.Comment, CommentKind: token.LineHash, Span: fjerr.Span{Start: start, End: l.pos}, Lexeme: l.input[start:l.pos]}, nil
}

// lexBlockComment scans "/* ... */". Nesting is off unless
// NestedBlockComments is set (spec §9 open question; default non-nestable,
// per the caller's options). A "/*" with no matching "*/" is
// UnterminatedComment.
func (l *Lexer) lexBlockComment(start int) (token.Token, *fjerr.Error) {
	l.pos += 2 // consume "/*"
	depth := 1
	for l.pos < len(l.input) {
		if l.opts.NestedBlockComments && l.pos+1 < len(l.input) && l.input[l.pos] == '/' && l.input[l.pos+1] == '*' {
			depth++
			l.pos += 2
			continue
		}
		if l.pos+1 < len(l.input) && l.input[l.pos] == '*' && l.input[l.pos+1] == '/' {
			depth--
			l.pos += 2
			if depth == 0 {
				return token.Token{Kind: token.Comment, CommentKind: token.Block, Span: fjerr.Span{Start: start, End: l.pos}, Lexeme: l.input[start:l.pos]}, nil
			}
			continue
		}
		l.pos++
	}
	return token.Token{}, fjerr.New(fjerr.UnterminatedComment, fjerr.Span{Start: start, End: l.pos}, "block comment is not terminated by \"*/\"")
}
