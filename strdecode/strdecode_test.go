package strdecode_test

import (
	"testing"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/strdecode"
	"github.com/stretchr/testify/require"
)

func TestSimpleEscapes(t *testing.T) {
	s, err := strdecode.Decode([]byte(`"a\nb\tc"`), 0)
	require.Nil(t, err)
	require.Equal(t, "a\nb\tc", s)
}

func TestHexByteEscape(t *testing.T) {
	s, err := strdecode.Decode([]byte(`"\x41"`), 0)
	require.Nil(t, err)
	require.Equal(t, "A", s)
}

func TestUnicodeEscape(t *testing.T) {
	s, err := strdecode.Decode([]byte("\"\\u00e9\""), 0)
	require.Nil(t, err)
	require.Equal(t, "é", s)
}

func TestSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as the UTF-16 surrogate pair D83D DE00.
	s, err := strdecode.Decode([]byte("\"\\uD83D\\uDE00\""), 0)
	require.Nil(t, err)
	require.Equal(t, "😀", s)
}

func TestLoneHighSurrogateIsError(t *testing.T) {
	_, err := strdecode.Decode([]byte(`"\uD800"`), 0)
	require.NotNil(t, err)
	require.Equal(t, fjerr.InvalidEscape, err.Kind)
}

func TestLoneLowSurrogateIsError(t *testing.T) {
	_, err := strdecode.Decode([]byte(`"\uDC00"`), 0)
	require.NotNil(t, err)
	require.Equal(t, fjerr.InvalidEscape, err.Kind)
}

func TestRawControlByteRejected(t *testing.T) {
	_, err := strdecode.Decode([]byte("\"a\nb\""), 0)
	require.NotNil(t, err)
}

func TestInvalidEscapeSequence(t *testing.T) {
	_, err := strdecode.Decode([]byte(`"\q"`), 0)
	require.NotNil(t, err)
	require.Equal(t, fjerr.InvalidEscape, err.Kind)
}

func TestSingleQuoteLexeme(t *testing.T) {
	s, err := strdecode.Decode([]byte(`'it\'s'`), 0)
	require.Nil(t, err)
	require.Equal(t, "it's", s)
}
