package parser

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/numeric"
	"github.com/aledsdavies/fjson/strdecode"
	"github.com/aledsdavies/fjson/token"
	"github.com/aledsdavies/fjson/value"
)

// frameState names the explicit-stack states spec §4.5 lists
// (StartContainer, ExpectMemberKey, ExpectColon, ExpectValue,
// ExpectSeparator), split into an object/array pair where trailing-comma
// legality differs between "just opened" and "just after a separator".
type frameState int

const (
	stateContainerStart frameState = iota // just opened; empty close is always legal
	stateExpectMemberKey                  // object: expect a key, or close if trailing commas allow it
	stateExpectColon
	stateExpectValue          // array: expect a value, or close if trailing commas allow it
	stateExpectValueForMember // object: expect the value half of `key ':' value`
	stateExpectSeparatorOrClose
)

// frame is one open container on the iterative parser's explicit stack.
type frame struct {
	isObject   bool
	isImplicit bool // top-level implicit body: closes on EOF, not a bracket
	openSpan   fjerr.Span
	obj        *value.Object
	elems      []*value.Value
	state      frameState
	key        string
	keySpan    fjerr.Span
}

// ParseIterative runs the explicit-stack parser over src (spec §4.5): same
// grammar, diagnostics, and output as Parse, implemented without Go call-
// stack recursion so very deep input cannot overflow the host stack.
func ParseIterative(src []byte, cfg Config) (*value.Value, *fjerr.Error) {
	p := newParser(src, cfg)
	v, err := p.runIterative()
	if err != nil {
		return nil, p.fail(err)
	}
	return v, nil
}

func (p *parser) runIterative() (*value.Value, *fjerr.Error) {
	first, err := p.toks.peek()
	if err != nil {
		return nil, err
	}

	var stack []*frame

	switch first.Kind {
	case token.LBrace, token.LBracket:
		f, err := p.openBracketed(first)
		if err != nil {
			return nil, err
		}
		stack = append(stack, f)
	case token.EOF:
		return nil, fjerr.New(fjerr.UnexpectedEof, first.Span, "empty input")
	default:
		if !p.cfg.Opts.ImplicitTopLevel {
			return nil, fjerr.New(fjerr.UnexpectedToken, first.Span, "expected '{' or '[' at top level")
		}
		f, err := p.openImplicit()
		if err != nil {
			return nil, err
		}
		stack = append(stack, f)
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		newStack, err := p.stepFrame(stack, top)
		if err != nil {
			return nil, err
		}
		stack = newStack
	}

	result, err := p.popResult()
	if err != nil {
		return nil, err
	}
	return result, p.expectEOF()
}

// result holds the single finished value once the stack has fully
// unwound; closeFrame stashes it in p.iterResult rather than
// threading an extra return value through every stepFrame call.
//
// This field is only ever read once per ParseIterative call and is safe
// against reentrancy because each call constructs its own *parser.
func (p *parser) popResult() (*value.Value, *fjerr.Error) {
	if p.iterResult == nil {
		return nil, fjerr.New(fjerr.UnexpectedEof, fjerr.Span{Start: len(p.src), End: len(p.src)}, "unexpected end of input")
	}
	return p.iterResult, nil
}

// stepFrame advances the stack by exactly one token-consuming step applied
// to top (always stack[len(stack)-1]) and returns the (possibly shorter or
// longer) resulting stack.
func (p *parser) stepFrame(stack []*frame, top *frame) ([]*frame, *fjerr.Error) {
	switch top.state {
	case stateContainerStart, stateExpectMemberKey, stateExpectValue:
		tok, perr := p.toks.peek()
		if perr != nil {
			return nil, perr
		}
		if closer, ok := p.isCloser(top, tok); ok {
			if top.state != stateContainerStart && !p.cfg.Opts.AllowTrailingCommas {
				return nil, fjerr.New(fjerr.TrailingComma, tok.Span, "trailing comma is not allowed")
			}
			return p.closeFrame(stack, top, closer)
		}
		if top.isImplicit && tok.Kind == token.EOF {
			return p.closeFrame(stack, top, tok)
		}
		if top.isObject {
			if err := p.consumeMemberKey(top); err != nil {
				return nil, err
			}
			top.state = stateExpectColon
			return stack, nil
		}
		return p.startValue(stack, top, stateExpectValue)

	case stateExpectColon:
		colon, nerr := p.toks.next()
		if nerr != nil {
			return nil, nerr
		}
		if colon.Kind != token.Colon {
			return nil, fjerr.New(fjerr.UnexpectedToken, colon.Span, "expected ':' after object key")
		}
		top.state = stateExpectValueForMember
		return stack, nil

	case stateExpectValueForMember:
		return p.startValue(stack, top, stateExpectValueForMember)

	case stateExpectSeparatorOrClose:
		tok, perr := p.toks.peek()
		if perr != nil {
			return nil, perr
		}
		if closer, ok := p.isCloser(top, tok); ok {
			return p.closeFrame(stack, top, closer)
		}
		if top.isImplicit && tok.Kind == token.EOF {
			return p.closeFrame(stack, top, tok)
		}
		if !p.isSeparator(tok) {
			expected := "',' or ']'"
			if top.isObject {
				expected = "',' or '}'"
			}
			e := fjerr.New(fjerr.UnexpectedToken, tok.Span, "expected %s", expected)
			if !top.isImplicit {
				e = e.WithSecondary(top.openSpan)
			}
			return nil, e
		}
		p.toks.next()
		p.skipSeparatorRun()
		if top.isObject {
			top.state = stateExpectMemberKey
		} else {
			top.state = stateExpectValue
		}
		return stack, nil
	}
	return nil, fjerr.New(fjerr.UnexpectedToken, fjerr.Span{}, "internal: unreachable parser state")
}

// isCloser reports whether tok is a closing bracket for top — the correct
// one or not. A wrong-kind closer (e.g. ']' while top is an object) is
// still reported here so closeFrame can run it through the bracket
// tracker and surface a real BracketMismatch instead of a generic
// UnexpectedToken.
func (p *parser) isCloser(top *frame, tok token.Token) (token.Token, bool) {
	if top.isImplicit {
		return token.Token{}, false
	}
	if tok.Kind == token.RBrace || tok.Kind == token.RBracket {
		return tok, true
	}
	return token.Token{}, false
}

// consumeMemberKey reads `key` into top.key/top.keySpan (spec §4.4
// `key := string | unquoted_ident`).
func (p *parser) consumeMemberKey(top *frame) *fjerr.Error {
	keyTok, err := p.toks.next()
	if err != nil {
		return err
	}
	switch keyTok.Kind {
	case token.String:
		k, derr := strdecode.Decode(keyTok.Lexeme, keyTok.Span.Start)
		if derr != nil {
			return derr
		}
		if p.cfg.Interner != nil {
			k = p.cfg.Interner.Intern(k)
		}
		top.key, top.keySpan = k, keyTok.Span
		return nil
	case token.UnquotedIdent:
		if !p.cfg.Opts.AllowUnquotedKeys {
			return fjerr.New(fjerr.UnexpectedToken, keyTok.Span, "unquoted object keys are not allowed")
		}
		k := keyTok.Text()
		if p.cfg.Interner != nil {
			k = p.cfg.Interner.Intern(k)
		}
		top.key, top.keySpan = k, keyTok.Span
		return nil
	default:
		return fjerr.New(fjerr.UnexpectedToken, keyTok.Span, "expected a string or identifier key, found %s", keyTok.Kind)
	}
}

// startValue consumes one `value` for top: a scalar is decoded and
// attached immediately (top.state becomes onDoneState's separator-or-close
// successor); '{'/'[' pushes a new child frame instead, leaving top's
// state as onDoneState so the value gets attached once the child closes.
func (p *parser) startValue(stack []*frame, top *frame, onDoneState frameState) ([]*frame, *fjerr.Error) {
	tok, perr := p.toks.peek()
	if perr != nil {
		return nil, perr
	}
	if tok.Kind == token.LBrace || tok.Kind == token.LBracket {
		child, err := p.openBracketed(tok)
		if err != nil {
			return nil, err
		}
		top.state = onDoneState
		return append(stack, child), nil
	}

	v, err := p.scanScalar(tok)
	if err != nil {
		return nil, err
	}
	if err := p.attach(top, v); err != nil {
		return nil, err
	}
	top.state = stateExpectSeparatorOrClose
	return stack, nil
}

// scanScalar consumes and decodes a string/number/true/false/null token
// already identified by tok (still unread from the stream).
func (p *parser) scanScalar(tok token.Token) (*value.Value, *fjerr.Error) {
	switch tok.Kind {
	case token.String:
		p.toks.next()
		s, err := strdecode.Decode(tok.Lexeme, tok.Span.Start)
		if err != nil {
			return nil, err
		}
		v := value.String(s)
		v.SetSpan(tok.Span)
		return v, nil
	case token.Number:
		p.toks.next()
		n, err := numeric.Parse(tok.Lexeme, tok.Base, tok.Span)
		if err != nil {
			return nil, err
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

// attach inserts v into top as either the next array element or the
// pending member's value.
func (p *parser) attach(top *frame, v *value.Value) *fjerr.Error {
	if top.isObject {
		if top.obj.Set(top.key, v) && p.cfg.OnDuplicate != nil {
			if p.cfg.OnDuplicate(top.key, top.keySpan) {
				return fjerr.New(fjerr.DuplicateKeyRejected, top.keySpan, "duplicate key %q rejected", top.key)
			}
		}
		return nil
	}
	top.elems = append(top.elems, v)
	return nil
}

// openBracketed consumes an already-peeked '{' or '[' token, pushes the
// bracket tracker, and checks the depth limit.
func (p *parser) openBracketed(open token.Token) (*frame, *fjerr.Error) {
	p.toks.next()
	isObject := open.Kind == token.LBrace
	kind := fjerr.SquareBracket
	if isObject {
		kind = fjerr.BraceBracket
	}
	p.brk.Push(kind, open.Span)
	p.depth++
	if p.depth > p.cfg.Opts.MaxDepth {
		return nil, fjerr.New(fjerr.DepthExceeded, open.Span, "maximum nesting depth %d exceeded", p.cfg.Opts.MaxDepth)
	}
	f := &frame{isObject: isObject, openSpan: open.Span, state: stateContainerStart}
	if isObject {
		f.obj = value.NewObject()
	}
	return f, nil
}

// openImplicit starts the single top-level implicit body (spec §4.4
// "implicit_object_body"/"implicit_array_body"), deciding object-vs-array
// the same way the recursive parser does: a key-shaped token immediately
// followed by ':' means object, otherwise array. Newlines are made
// significant separators for the whole body via EnterImplicitContainer,
// matching a bracketed container's depth-gated behaviour.
func (p *parser) openImplicit() (*frame, *fjerr.Error) {
	first, err := p.toks.peekAt(0)
	if err != nil {
		return nil, err
	}
	isKeyShaped := first.Kind == token.String || (p.cfg.Opts.AllowUnquotedKeys && first.Kind == token.UnquotedIdent)
	isObject := false
	if isKeyShaped {
		second, err := p.toks.peekAt(1)
		if err != nil {
			return nil, err
		}
		isObject = second.Kind == token.Colon
	}
	p.toks.lex.EnterImplicitContainer()
	f := &frame{isObject: isObject, isImplicit: true, state: stateContainerStart}
	if isObject {
		f.obj = value.NewObject()
	}
	return f, nil
}

// closeFrame finishes top: pops the bracket tracker (for a bracketed
// frame) or accepts EOF (for the implicit top-level frame), builds its
// Value, pops it off the stack, and either stores it as the final result
// (empty stack) or attaches it to the new top of stack.
func (p *parser) closeFrame(stack []*frame, top *frame, closeTok token.Token) ([]*frame, *fjerr.Error) {
	var v *value.Value
	if top.isImplicit {
		if top.isObject {
			v = value.ObjectValue(top.obj)
		} else {
			v = value.Array(top.elems)
		}
	} else {
		p.toks.next() // consume the closing bracket
		// Derive the bracket kind from the token actually found, not from
		// top.isObject: a wrong-kind closer must still reach Pop so the
		// tracker's own stack state produces a typed BracketMismatch.
		kind := fjerr.SquareBracket
		if closeTok.Kind == token.RBrace {
			kind = fjerr.BraceBracket
		}
		if berr := p.brk.Pop(kind, closeTok.Span); berr != nil {
			return nil, berr
		}
		p.depth--
		if top.isObject {
			v = value.ObjectValue(top.obj)
		} else {
			v = value.Array(top.elems)
		}
		v.SetSpan(fjerr.Span{Start: top.openSpan.Start, End: closeTok.Span.End})
	}

	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		p.iterResult = v
		return stack, nil
	}
	parent := stack[len(stack)-1]
	if err := p.attach(parent, v); err != nil {
		return nil, err
	}
	parent.state = stateExpectSeparatorOrClose
	return stack, nil
}
