// Package parser builds a value.Value tree from a token stream (spec
// §4.4/§4.5): a recursive-descent Parse and an explicit-stack
// ParseIterative over the identical grammar, diagnostics, and output.
package parser

import (
	"log/slog"

	"github.com/aledsdavies/fjson/arena"
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/lexer"
	"github.com/aledsdavies/fjson/numeric"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/strdecode"
	"github.com/aledsdavies/fjson/token"
	"github.com/aledsdavies/fjson/value"
)

// DuplicateKeyFunc is offered a key that already exists in the enclosing
// object (spec §4.4 "A DuplicateKey event is offered to plugins; it is
// not an error" — by default). It may be nil. Returning reject=true turns
// this particular duplicate into a hard DuplicateKeyRejected parse error,
// for a caller that wants stricter-than-default behaviour without going
// through the post-parse plugin layer (see DESIGN.md's Open Questions).
type DuplicateKeyFunc func(key string, span fjerr.Span) (reject bool)

// Config configures a single parse call, in the teacher's functional-
// options idiom.
type Config struct {
	Opts        options.Options
	OnDuplicate DuplicateKeyFunc

	// Interner, when set, canonicalises decoded object keys seen twice or
	// more within this parse (spec §4.9). Nil disables interning.
	Interner *arena.Interner
}

// ConfigOpt mutates a Config being built by NewConfig.
type ConfigOpt func(*Config)

// NewConfig builds a Config from opts and o.
func NewConfig(opts options.Options, o ...ConfigOpt) Config {
	c := Config{Opts: opts}
	for _, opt := range o {
		opt(&c)
	}
	return c
}

// WithDuplicateKeyHook installs f as the DuplicateKey event sink.
func WithDuplicateKeyHook(f DuplicateKeyFunc) ConfigOpt {
	return func(c *Config) { c.OnDuplicate = f }
}

// WithInterner installs in as the object-key interner for this parse.
func WithInterner(in *arena.Interner) ConfigOpt {
	return func(c *Config) { c.Interner = in }
}

// parser holds the state shared by the recursive descent in this file:
// the token stream, the bracket tracker for BracketMismatch diagnostics,
// and the container-depth counter for DepthExceeded.
type parser struct {
	toks  *tokenStream
	cfg   Config
	src   []byte
	brk   fjerr.BracketTracker
	depth int
	log   *slog.Logger

	// iterResult stashes ParseIterative's finished value once its explicit
	// stack has fully unwound (see runIterative/closeFrame in
	// iterative.go). Unused by the recursive parser.
	iterResult *value.Value
}

func newParser(src []byte, cfg Config) *parser {
	log := cfg.Opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &parser{
		toks: newTokenStream(lexer.New(src, cfg.Opts)),
		cfg:  cfg,
		src:  src,
		log:  log,
	}
}

func (p *parser) fail(err *fjerr.Error) *fjerr.Error {
	if err != nil {
		err.WithSource(p.src)
	}
	return err
}

// Parse runs the recursive-descent parser over src (spec §4.4). It
// automatically delegates to ParseIterative when cfg.Opts.MaxDepth exceeds
// options.IterativeThreshold: an unbounded recursive descent over a very
// deep input risks a Go stack overflow the iterative parser avoids.
func Parse(src []byte, cfg Config) (*value.Value, *fjerr.Error) {
	if cfg.Opts.MaxDepth > options.IterativeThreshold {
		return ParseIterative(src, cfg)
	}
	p := newParser(src, cfg)
	v, err := p.parseDocument()
	if err != nil {
		return nil, p.fail(err)
	}
	return v, nil
}

// parseDocument implements the `document` production, including the
// implicit-top-level disambiguation (spec §4.4 "Top-level disambiguation").
func (p *parser) parseDocument() (*value.Value, *fjerr.Error) {
	tok, err := p.toks.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.LBrace, token.LBracket:
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return v, p.expectEOF()
	case token.EOF:
		// Empty input, or input containing only whitespace/comments, is
		// always UnexpectedEof regardless of implicit_top_level (spec §8
		// "Boundary behaviours").
		return nil, fjerr.New(fjerr.UnexpectedEof, tok.Span, "empty input")
	}
	if !p.cfg.Opts.ImplicitTopLevel {
		return nil, fjerr.New(fjerr.UnexpectedToken, tok.Span, "expected '{' or '[' at top level")
	}
	return p.parseImplicitTopLevel()
}

// parseImplicitTopLevel decides object-vs-array by peeking two tokens
// ahead without backtracking (spec §4.4): if the first token is key-
// shaped (string or unquoted ident) and immediately followed by ':', the
// whole input is an implicit object body; otherwise an implicit array
// body. The decision is made once.
func (p *parser) parseImplicitTopLevel() (*value.Value, *fjerr.Error) {
	first, err := p.toks.peekAt(0)
	if err != nil {
		return nil, err
	}
	isKeyShaped := first.Kind == token.String || (p.cfg.Opts.AllowUnquotedKeys && first.Kind == token.UnquotedIdent)
	if isKeyShaped {
		second, err := p.toks.peekAt(1)
		if err != nil {
			return nil, err
		}
		if second.Kind == token.Colon {
			p.toks.lex.EnterImplicitContainer()
			obj, err := p.parseImplicitObjectBody()
			if err != nil {
				return nil, err
			}
			return value.ObjectValue(obj), p.expectEOF()
		}
	}
	p.toks.lex.EnterImplicitContainer()
	elems, err := p.parseImplicitArrayBody()
	if err != nil {
		return nil, err
	}
	return value.Array(elems), p.expectEOF()
}

func (p *parser) expectEOF() *fjerr.Error {
	p.skipSeparatorRun()
	tok, err := p.toks.next()
	if err != nil {
		return err
	}
	if tok.Kind != token.EOF {
		return fjerr.New(fjerr.UnexpectedToken, tok.Span, "unexpected trailing input after top-level value").
			WithHint("a document holds exactly one top-level value")
	}
	return nil
}

// parseValue implements the `value` production.
func (p *parser) parseValue() (*value.Value, *fjerr.Error) {
	tok, err := p.toks.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.LBrace:
		return p.parseObject()
	case token.LBracket:
		return p.parseArray()
	case token.String:
		p.toks.next()
		s, derr := strdecode.Decode(tok.Lexeme, tok.Span.Start)
		if derr != nil {
			return nil, derr
		}
		v := value.String(s)
		v.SetSpan(tok.Span)
		return v, nil
	case token.Number:
		p.toks.next()
		n, nerr := numeric.Parse(tok.Lexeme, tok.Base, tok.Span)
		if nerr != nil {
			return nil, nerr
		}
		var v *value.Value
		if n.Kind == numeric.Integer {
			v = value.Integer(n.I)
		} else {
			v = value.Float(n.F)
		}
		v.SetSpan(tok.Span)
		return v, nil
	case token.True:
		p.toks.next()
		v := value.Bool(true)
		v.SetSpan(tok.Span)
		return v, nil
	case token.False:
		p.toks.next()
		v := value.Bool(false)
		v.SetSpan(tok.Span)
		return v, nil
	case token.Null:
		p.toks.next()
		v := value.Null()
		v.SetSpan(tok.Span)
		return v, nil
	default:
		return nil, fjerr.New(fjerr.UnexpectedToken, tok.Span, "unexpected token %s", tok.Kind).
			WithHint("expected '{', '[', a string, a number, true, false, or null")
	}
}

// parseObject implements `object := '{' (member (sep member)* trailing_sep?)? '}'`.
func (p *parser) parseObject() (*value.Value, *fjerr.Error) {
	open, _ := p.toks.next() // LBrace, already peeked by caller
	p.brk.Push(fjerr.BraceBracket, open.Span)
	p.depth++
	if p.depth > p.cfg.Opts.MaxDepth {
		return nil, fjerr.New(fjerr.DepthExceeded, open.Span, "maximum nesting depth %d exceeded", p.cfg.Opts.MaxDepth)
	}
	defer func() { p.depth-- }()

	obj := value.NewObject()
	tok, err := p.toks.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.RBrace {
		close, _ := p.toks.next()
		if berr := p.brk.Pop(fjerr.BraceBracket, close.Span); berr != nil {
			return nil, berr
		}
		v := value.ObjectValue(obj)
		v.SetSpan(fjerr.Span{Start: open.Span.Start, End: close.Span.End})
		return v, nil
	}

	for {
		if err := p.parseMember(obj); err != nil {
			return nil, err
		}
		tok, err := p.toks.peek()
		if err != nil {
			return nil, err
		}
		if p.isSeparator(tok) {
			p.toks.next()
			p.skipSeparatorRun()
			tok, err = p.toks.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.RBrace {
				if !p.cfg.Opts.AllowTrailingCommas {
					return nil, fjerr.New(fjerr.TrailingComma, tok.Span, "trailing comma before '}' is not allowed")
				}
				break
			}
			continue
		}
		break
	}

	close, err := p.toks.next()
	if err != nil {
		return nil, err
	}
	if close.Kind != token.RBrace {
		if close.Kind == token.RBracket {
			// A real mismatched pair: run it through the tracker so the
			// error carries the opener's span as BracketMismatch's
			// secondary, rather than a generic UnexpectedToken.
			return nil, p.brk.Pop(fjerr.SquareBracket, close.Span)
		}
		return nil, fjerr.New(fjerr.UnexpectedToken, close.Span, "expected ',' or '}'").
			WithSecondary(open.Span)
	}
	if berr := p.brk.Pop(fjerr.BraceBracket, close.Span); berr != nil {
		return nil, berr
	}
	v := value.ObjectValue(obj)
	v.SetSpan(fjerr.Span{Start: open.Span.Start, End: close.Span.End})
	return v, nil
}

// parseMember implements `member := key ':' value`.
func (p *parser) parseMember(obj *value.Object) *fjerr.Error {
	keyTok, err := p.toks.next()
	if err != nil {
		return err
	}
	var key string
	switch keyTok.Kind {
	case token.String:
		key, err = strdecode.Decode(keyTok.Lexeme, keyTok.Span.Start)
		if err != nil {
			return err
		}
	case token.UnquotedIdent:
		if !p.cfg.Opts.AllowUnquotedKeys {
			return fjerr.New(fjerr.UnexpectedToken, keyTok.Span, "unquoted object keys are not allowed")
		}
		key = keyTok.Text()
	default:
		return fjerr.New(fjerr.UnexpectedToken, keyTok.Span, "expected a string or identifier key, found %s", keyTok.Kind)
	}
	if p.cfg.Interner != nil {
		key = p.cfg.Interner.Intern(key)
	}

	colon, err := p.toks.next()
	if err != nil {
		return err
	}
	if colon.Kind != token.Colon {
		return fjerr.New(fjerr.UnexpectedToken, colon.Span, "expected ':' after object key")
	}

	val, err := p.parseValue()
	if err != nil {
		return err
	}
	if obj.Set(key, val) && p.cfg.OnDuplicate != nil {
		if p.cfg.OnDuplicate(key, keyTok.Span) {
			return fjerr.New(fjerr.DuplicateKeyRejected, keyTok.Span, "duplicate key %q rejected", key)
		}
	}
	return nil
}

// parseArray implements `array := '[' (value (sep value)* trailing_sep?)? ']'`.
func (p *parser) parseArray() (*value.Value, *fjerr.Error) {
	open, _ := p.toks.next() // LBracket, already peeked by caller
	p.brk.Push(fjerr.SquareBracket, open.Span)
	p.depth++
	if p.depth > p.cfg.Opts.MaxDepth {
		return nil, fjerr.New(fjerr.DepthExceeded, open.Span, "maximum nesting depth %d exceeded", p.cfg.Opts.MaxDepth)
	}
	defer func() { p.depth-- }()

	var elems []*value.Value
	tok, err := p.toks.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.RBracket {
		close, _ := p.toks.next()
		if berr := p.brk.Pop(fjerr.SquareBracket, close.Span); berr != nil {
			return nil, berr
		}
		v := value.Array(elems)
		v.SetSpan(fjerr.Span{Start: open.Span.Start, End: close.Span.End})
		return v, nil
	}

	for {
		el, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)

		tok, err := p.toks.peek()
		if err != nil {
			return nil, err
		}
		if p.isSeparator(tok) {
			p.toks.next()
			p.skipSeparatorRun()
			tok, err = p.toks.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.RBracket {
				if !p.cfg.Opts.AllowTrailingCommas {
					return nil, fjerr.New(fjerr.TrailingComma, tok.Span, "trailing comma before ']' is not allowed")
				}
				break
			}
			continue
		}
		break
	}

	close, err := p.toks.next()
	if err != nil {
		return nil, err
	}
	if close.Kind != token.RBracket {
		if close.Kind == token.RBrace {
			return nil, p.brk.Pop(fjerr.BraceBracket, close.Span)
		}
		return nil, fjerr.New(fjerr.UnexpectedToken, close.Span, "expected ',' or ']'").
			WithSecondary(open.Span)
	}
	if berr := p.brk.Pop(fjerr.SquareBracket, close.Span); berr != nil {
		return nil, berr
	}
	v := value.Array(elems)
	v.SetSpan(fjerr.Span{Start: open.Span.Start, End: close.Span.End})
	return v, nil
}

// isSeparator reports whether tok is a legal `sep` token: ',' always, a
// Newline only when newline_as_comma is enabled (the lexer only ever
// emits Newline tokens when that option is on, so the Kind check alone
// suffices).
func (p *parser) isSeparator(tok token.Token) bool {
	return tok.Kind == token.Comma || tok.Kind == token.Newline
}

// skipSeparatorRun collapses consecutive separator tokens into one (spec
// §4.4 "two consecutive separators collapse"): having already consumed
// one separator, swallow any further Comma/Newline tokens before the next
// member/value or closer.
func (p *parser) skipSeparatorRun() {
	for {
		tok, err := p.toks.peek()
		if err != nil || !p.isSeparator(tok) {
			return
		}
		p.toks.next()
	}
}

// parseImplicitObjectBody parses `implicit_object_body`: a bare comma/
// newline-separated member list with no enclosing braces.
func (p *parser) parseImplicitObjectBody() (*value.Object, *fjerr.Error) {
	obj := value.NewObject()
	p.skipSeparatorRun()
	tok, err := p.toks.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.EOF {
		return obj, nil
	}
	for {
		if err := p.parseMember(obj); err != nil {
			return nil, err
		}
		tok, err := p.toks.peek()
		if err != nil {
			return nil, err
		}
		if p.isSeparator(tok) {
			p.toks.next()
			p.skipSeparatorRun()
			tok, err = p.toks.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.EOF {
				break
			}
			continue
		}
		break
	}
	return obj, nil
}

// parseImplicitArrayBody parses `implicit_array_body`: a bare comma/
// newline-separated value list with no enclosing brackets.
func (p *parser) parseImplicitArrayBody() ([]*value.Value, *fjerr.Error) {
	var elems []*value.Value
	p.skipSeparatorRun()
	tok, err := p.toks.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.EOF {
		return elems, nil
	}
	for {
		el, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)

		tok, err := p.toks.peek()
		if err != nil {
			return nil, err
		}
		if p.isSeparator(tok) {
			p.toks.next()
			p.skipSeparatorRun()
			tok, err = p.toks.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.EOF {
				break
			}
			continue
		}
		break
	}
	return elems, nil
}
