package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/token"
)

func scanAll(t *testing.T, src string, opts options.Options) []token.Token {
	t.Helper()
	l := New([]byte(src), opts)
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.Nil(t, err, "unexpected lex error for %q", src)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexPunctuationAndWhitespace(t *testing.T) {
	toks := scanAll(t, " { \"a\" : 1 , \"b\" : 2 } ", options.Default())
	require.Equal(t, []token.Kind{
		token.LBrace, token.String, token.Colon, token.Number, token.Comma,
		token.String, token.Colon, token.Number, token.RBrace, token.EOF,
	}, kinds(toks))
}

func TestLexCommentsSkippedByDefault(t *testing.T) {
	toks := scanAll(t, "// leading\n[1, 2 /* mid */, 3] # trailing", options.Default())
	require.Equal(t, []token.Kind{
		token.LBracket, token.Number, token.Comma, token.Number, token.Comma,
		token.Number, token.RBracket, token.EOF,
	}, kinds(toks))
}

func TestLexCommentsPreserved(t *testing.T) {
	opts := options.Default(options.WithPreserveComments(true))
	toks := scanAll(t, "// hi\n1", opts)
	require.Equal(t, token.Comment, toks[0].Kind)
	require.Equal(t, token.LineSlash, toks[0].CommentKind)
}

func TestLexSingleQuoteString(t *testing.T) {
	toks := scanAll(t, `'it''s'`, options.Default())
	require.Equal(t, token.String, toks[0].Kind)
	require.Equal(t, `'it'`, toks[0].Text())
}

func TestLexUnquotedIdentAndReservedWords(t *testing.T) {
	toks := scanAll(t, "foo true false null $bar_2", options.Default())
	require.Equal(t, []token.Kind{
		token.UnquotedIdent, token.True, token.False, token.Null, token.UnquotedIdent, token.EOF,
	}, kinds(toks))
}

// TestNewlineAsCommaInsideContainer exercises spec §8 scenario 3:
// "// hi\n[1\n2\n3]" with defaults collapses the interior newlines into
// separators while the lexer itself just emits a Newline token per run;
// it is the parser's job to treat Newline as a separator.
func TestNewlineAsCommaInsideContainer(t *testing.T) {
	toks := scanAll(t, "// hi\n[1\n2\n3]", options.Default())
	require.Equal(t, []token.Kind{
		token.LBracket, token.Number, token.Newline, token.Number, token.Newline,
		token.Number, token.RBracket, token.EOF,
	}, kinds(toks))
}

func TestNewlineOutsideContainerIsNotASeparator(t *testing.T) {
	toks := scanAll(t, "1\n2", options.Default())
	require.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
}

func TestNewlineAsCommaDisabled(t *testing.T) {
	opts := options.Default(options.WithNewlineAsComma(false))
	toks := scanAll(t, "[1\n2]", opts)
	require.Equal(t, []token.Kind{
		token.LBracket, token.Number, token.Number, token.RBracket, token.EOF,
	}, kinds(toks))
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New([]byte(`"abc`), options.Default())
	_, err := l.Next()
	require.NotNil(t, err)
	require.Equal(t, fjerr.UnterminatedString, err.Kind)
}

func TestUnterminatedBlockComment(t *testing.T) {
	l := New([]byte("/* never closed"), options.Default())
	_, err := l.Next()
	require.NotNil(t, err)
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New([]byte("1 2"), options.Default())
	p1, err := l.Peek()
	require.Nil(t, err)
	require.Equal(t, token.Number, p1.Kind)
	n1, err := l.Next()
	require.Nil(t, err)
	require.Equal(t, p1.Span, n1.Span)
	n2, _ := l.Next()
	require.Equal(t, "2", n2.Text())
}

// TestFastForwardBoringAgreesWithScalar checks the SIMD-flavoured skip in
// simd.go never disagrees with the byte-at-a-time reference scan it
// stands in for, across a mix of strings, punctuation, and plain runs.
func TestFastForwardBoringAgreesWithScalar(t *testing.T) {
	samples := []string{
		"",
		"hello world",
		`"a string with \"escapes\" inside"`,
		"no interesting bytes here at all just letters",
		"1234567890",
		"{}[],:",
		"mixed123and-signs+here",
		"line1\nline2\nline3",
	}
	for _, s := range samples {
		input := []byte(s)
		for pos := 0; pos <= len(input); pos++ {
			require.Equal(t, scalarFindInteresting(input, pos), fastForwardBoring(input, pos), "mismatch for %q at pos %d", s, pos)
		}
	}
}
