package parser

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/lexer"
	"github.com/aledsdavies/fjson/token"
)

// tokenStream wraps a lexer.Lexer with an arbitrary-depth look-ahead
// buffer. lexer.Lexer itself only buffers one token (Peek/Next); the
// top-level implicit-document disambiguation (spec §4.4) needs to look
// two tokens ahead without consuming either, so the parser keeps its own
// small FIFO of already-scanned tokens in front of the lexer.
type tokenStream struct {
	lex *lexer.Lexer
	buf []token.Token
}

func newTokenStream(lex *lexer.Lexer) *tokenStream {
	return &tokenStream{lex: lex}
}

// fill ensures at least n tokens are buffered (stopping early at EOF,
// which it leaves as the last buffered token forever after).
func (s *tokenStream) fill(n int) *fjerr.Error {
	for len(s.buf) < n {
		if len(s.buf) > 0 && s.buf[len(s.buf)-1].Kind == token.EOF {
			return nil
		}
		tok, err := s.lex.Next()
		if err != nil {
			return err
		}
		s.buf = append(s.buf, tok)
	}
	return nil
}

// peekAt returns the token n positions ahead without consuming it (0 is
// the next token to be returned by next()).
func (s *tokenStream) peekAt(n int) (token.Token, *fjerr.Error) {
	if err := s.fill(n + 1); err != nil {
		return token.Token{}, err
	}
	if n >= len(s.buf) {
		return s.buf[len(s.buf)-1], nil // past EOF: keep returning EOF
	}
	return s.buf[n], nil
}

func (s *tokenStream) peek() (token.Token, *fjerr.Error) { return s.peekAt(0) }

// next consumes and returns the next token.
func (s *tokenStream) next() (token.Token, *fjerr.Error) {
	if err := s.fill(1); err != nil {
		return token.Token{}, err
	}
	tok := s.buf[0]
	s.buf = s.buf[1:]
	return tok, nil
}

// pos returns the current byte offset: the start of the next buffered
// token, or the lexer's live position if nothing is buffered.
func (s *tokenStream) pos() int {
	if len(s.buf) > 0 {
		return s.buf[0].Span.Start
	}
	return s.lex.Pos()
}
