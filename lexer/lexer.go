// Package lexer converts a UTF-8 byte slice into the fjson token stream
// with spans (spec §4.1), honouring the forgiving options: comments,
// single quotes, unquoted identifiers, and newline-as-comma.
package lexer

import (
	"log/slog"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/token"
)

// ASCII classification tables, in the style of a hand-rolled fast-path
// lexer: a branch-free byte lookup beats a chain of comparisons in the
// hot loop that runs once per input byte.
var (
	isSpace      [128]bool // ' ', '\t', '\r', '\v', '\f' (not '\n': handled separately)
	isIdentStart [128]bool
	isIdentPart  [128]bool
	singleChar   [128]token.Kind
)

func init() {
	for i := 0; i < 128; i++ {
		c := byte(i)
		isSpace[i] = c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
		isIdentStart[i] = (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
		isIdentPart[i] = isIdentStart[i] || (c >= '0' && c <= '9')
		singleChar[i] = token.Illegal
	}
	singleChar['{'] = token.LBrace
	singleChar['}'] = token.RBrace
	singleChar['['] = token.LBracket
	singleChar[']'] = token.RBracket
	singleChar[':'] = token.Colon
	singleChar[','] = token.Comma
}

// Lexer scans one input buffer, left to right, with a single token of
// look-ahead buffered for Peek.
type Lexer struct {
	input []byte
	pos   int
	opts  options.Options
	log   *slog.Logger

	// depth tracks container nesting so newline-as-comma can tell whether
	// a newline is "inside a container" (spec §4.1): depth is incremented
	// on every LBrace/LBracket token produced and decremented on every
	// RBrace/RBracket. The lexer has no notion of matching brackets; that
	// validation is the parser's job (§4.4), so depth can go negative on
	// malformed input without the lexer caring.
	depth int

	peeked    *token.Token
	peekedErr *fjerr.Error
}

// New builds a Lexer over input with opts.
func New(input []byte, opts options.Options) *Lexer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Lexer{input: input, opts: opts, log: log}
}

// Pos returns the current byte offset (spec §4.1 "span()").
func (l *Lexer) Pos() int { return l.pos }

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (token.Token, *fjerr.Error) {
	if l.peeked == nil && l.peekedErr == nil {
		t, err := l.scan()
		l.peeked = &t
		l.peekedErr = err
	}
	if l.peekedErr != nil {
		return token.Token{}, l.peekedErr
	}
	return *l.peeked, nil
}

// Next consumes whitespace (and comments if enabled) then returns one
// token.
func (l *Lexer) Next() (token.Token, *fjerr.Error) {
	if l.peeked != nil || l.peekedErr != nil {
		t, err := *l.peeked, l.peekedErr
		l.peeked, l.peekedErr = nil, nil
		l.trackDepth(t)
		return t, err
	}
	t, err := l.scan()
	if err == nil {
		l.trackDepth(t)
	}
	return t, err
}

// EnterImplicitContainer tells the lexer to treat newlines as significant
// separators even though no '{'/'[' has been seen. The implicit top-level
// container (spec §4.4 "implicit_object_body"/"implicit_array_body") has
// no bracket tokens to drive trackDepth, so the parser calls this once,
// before scanning the implicit body, to get the same newline-as-comma
// behaviour a bracketed container gets for free.
func (l *Lexer) EnterImplicitContainer() {
	l.depth++
}

func (l *Lexer) trackDepth(t token.Token) {
	switch t.Kind {
	case token.LBrace, token.LBracket:
		l.depth++
	case token.RBrace, token.RBracket:
		l.depth--
	}
}

// scan is the core state machine: Start -> {Whitespace, Comment, String,
// Number, Ident, Punct, Eof}.
func (l *Lexer) scan() (token.Token, *fjerr.Error) {
	for {
		if err := l.skipWhitespace(); err != nil {
			return token.Token{}, err
		}
		if l.pos >= len(l.input) {
			return token.Token{Kind: token.EOF, Span: fjerr.Span{Start: l.pos, End: l.pos}}, nil
		}
		c := l.input[l.pos]

		if l.opts.NewlineAsComma && l.depth > 0 && (c == '\n' || c == '\r') {
			return l.lexNewlineRun(), nil
		}

		if l.opts.AllowComments && c == '/' && l.pos+1 < len(l.input) && (l.input[l.pos+1] == '/' || l.input[l.pos+1] == '*') {
			tok, err := l.lexComment()
			if err != nil {
				return token.Token{}, err
			}
			if l.opts.PreserveComments {
				return tok, nil
			}
			continue
		}
		if l.opts.AllowComments && c == '#' {
			tok, err := l.lexHashComment()
			if err != nil {
				return token.Token{}, err
			}
			if l.opts.PreserveComments {
				return tok, nil
			}
			continue
		}
		break
	}

	start := l.pos
	c := l.input[l.pos]

	switch {
	case c == '"':
		return l.lexString('"')
	case l.opts.AllowSingleQuotes && c == '\'':
		return l.lexString('\'')
	case c == '-' || (c >= '0' && c <= '9') || c == '+':
		return l.lexNumber()
	case int(c) < 128 && isIdentStart[c]:
		return l.lexIdent()
	case int(c) < 128 && singleChar[c] != token.Illegal:
		l.pos++
		return token.Token{Kind: singleChar[c], Span: fjerr.Span{Start: start, End: l.pos}, Lexeme: l.input[start:l.pos]}, nil
	default:
		l.pos++
		return token.Token{}, fjerr.New(fjerr.UnexpectedByte, fjerr.Span{Start: start, End: l.pos}, "unexpected byte 0x%02x", c)
	}
}

// skipWhitespace consumes ASCII whitespace (not newlines when they are
// significant as separators) and stops at the first non-whitespace byte,
// a newline that must be surfaced, or a possible comment start.
func (l *Lexer) skipWhitespace() *fjerr.Error {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if int(c) < 128 && isSpace[c] {
			l.pos++
			continue
		}
		if c == '\n' {
			if l.opts.NewlineAsComma && l.depth > 0 {
				return nil
			}
			l.pos++
			continue
		}
		break
	}
	return nil
}

// lexNewlineRun consumes one or more consecutive newlines (collapsing a
// run of separators, spec §4.4 "two consecutive separators collapse")
// into a single Newline token.
func (l *Lexer) lexNewlineRun() token.Token {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\n' {
			l.pos++
			continue
		}
		if int(c) < 128 && isSpace[c] {
			l.pos++
			continue
		}
		if c == '\r' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '\n' {
			l.pos += 2
			continue
		}
		break
	}
	return token.Token{Kind: token.Newline, Span: fjerr.Span{Start: start, End: l.pos}, Lexeme: l.input[start:l.pos]}
}

