// Package strdecode implements the string decoder (spec §4.3): it takes a
// raw lexeme including its surrounding quote bytes and produces a UTF-8
// byte sequence with all escapes resolved, or an error.
package strdecode

import (
	"strings"
	"unicode/utf8"

	"github.com/aledsdavies/fjson/fjerr"
)

// Decode resolves lexeme (quotes included, quote is either '"' or '\'')
// into its string value. offset is the byte position of lexeme's first
// byte in the original input, used to anchor error spans precisely.
func Decode(lexeme []byte, offset int) (string, *fjerr.Error) {
	if len(lexeme) < 2 {
		return "", fjerr.New(fjerr.UnterminatedString, fjerr.Span{Start: offset, End: offset + len(lexeme)}, "string lexeme missing closing quote")
	}
	quote := lexeme[0]
	body := lexeme[1 : len(lexeme)-1]

	var b strings.Builder
	b.Grow(len(body))

	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '\\':
			n, adv, err := decodeEscape(body[i:], offset+1+i)
			if err != nil {
				return "", err
			}
			b.WriteRune(n)
			i += adv
		case c < 0x20:
			return "", fjerr.New(fjerr.UnexpectedByte, fjerr.Span{Start: offset + 1 + i, End: offset + 1 + i + 1},
				"raw control byte 0x%02x must be escaped inside a string", c)
		case c == quote:
			// Only possible if the caller mis-sliced; the lexer guarantees
			// interior quotes of this kind are escaped.
			return "", fjerr.New(fjerr.UnterminatedString, fjerr.Span{Start: offset, End: offset + len(lexeme)}, "unescaped quote inside string body")
		default:
			r, size := utf8.DecodeRune(body[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", fjerr.New(fjerr.InvalidUtf8, fjerr.Span{Start: offset + 1 + i, End: offset + 1 + i + 1}, "invalid UTF-8 byte in string")
			}
			b.WriteRune(r)
			i += size
		}
	}

	out := b.String()
	if !utf8.ValidString(out) {
		return "", fjerr.New(fjerr.InvalidUtf8, fjerr.Span{Start: offset, End: offset + len(lexeme)}, "decoded string is not valid UTF-8")
	}
	return out, nil
}

// decodeEscape resolves one escape sequence starting at body[0] == '\\'. It
// returns the decoded rune, the number of bytes of body consumed, and any
// error. pos is the absolute byte offset of body[0] for error spans.
func decodeEscape(body []byte, pos int) (rune, int, *fjerr.Error) {
	if len(body) < 2 {
		return 0, 0, fjerr.New(fjerr.UnterminatedString, fjerr.Span{Start: pos, End: pos + 1}, "dangling escape at end of string")
	}
	switch body[1] {
	case '"':
		return '"', 2, nil
	case '\'':
		return '\'', 2, nil
	case '\\':
		return '\\', 2, nil
	case '/':
		return '/', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'x':
		return decodeHexByteEscape(body, pos)
	case 'u':
		return decodeUnicodeEscape(body, pos)
	default:
		return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 2}, "invalid escape sequence \\%c", body[1])
	}
}

// decodeHexByteEscape resolves \xHH. The resulting byte is required to
// appear inside a valid UTF-8 sequence; since \x always stands alone as a
// single decoded byte here, any non-ASCII value is necessarily invalid
// UTF-8 on its own, per spec §4.3.
func decodeHexByteEscape(body []byte, pos int) (rune, int, *fjerr.Error) {
	if len(body) < 4 {
		return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + len(body)}, "truncated \\x escape")
	}
	v, ok := hexByte(body[2], body[3])
	if !ok {
		return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 4}, "invalid hex digit in \\x escape")
	}
	if v >= utf8.RuneSelf {
		return 0, 0, fjerr.New(fjerr.InvalidUtf8, fjerr.Span{Start: pos, End: pos + 4}, "\\x%02x is not a valid standalone UTF-8 byte", v)
	}
	return rune(v), 4, nil
}

// decodeUnicodeEscape resolves \uHHHH, including a \uHHHH\uHHHH surrogate
// pair. A lone surrogate half is InvalidEscape.
func decodeUnicodeEscape(body []byte, pos int) (rune, int, *fjerr.Error) {
	if len(body) < 6 {
		return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + len(body)}, "truncated \\u escape")
	}
	hi, err := hexWord(body[2:6])
	if err != nil {
		return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 6}, "invalid hex digits in \\u escape")
	}

	if hi >= 0xD800 && hi <= 0xDBFF {
		// High surrogate: must be followed by a low surrogate.
		if len(body) < 12 || body[6] != '\\' || body[7] != 'u' {
			return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 6}, "lone UTF-16 high surrogate \\u%04x", hi)
		}
		lo, err := hexWord(body[8:12])
		if err != nil {
			return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 12}, "invalid hex digits in surrogate's \\u escape")
		}
		if lo < 0xDC00 || lo > 0xDFFF {
			return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 12}, "high surrogate \\u%04x not followed by a low surrogate", hi)
		}
		r := 0x10000 + (rune(hi)-0xD800)<<10 + (rune(lo) - 0xDC00)
		return r, 12, nil
	}
	if hi >= 0xDC00 && hi <= 0xDFFF {
		return 0, 0, fjerr.New(fjerr.InvalidEscape, fjerr.Span{Start: pos, End: pos + 6}, "lone UTF-16 low surrogate \\u%04x", hi)
	}
	return rune(hi), 6, nil
}

func hexWord(b []byte) (uint16, error) {
	v, ok := hexByte(b[0], b[1])
	if !ok {
		return 0, errInvalidHex
	}
	v2, ok := hexByte(b[2], b[3])
	if !ok {
		return 0, errInvalidHex
	}
	return uint16(v)<<8 | uint16(v2), nil
}

var errInvalidHex = &hexError{}

type hexError struct{}

func (*hexError) Error() string { return "invalid hex digit" }

func hexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	if !ok1 || !ok2 {
		return 0, false
	}
	return h<<4 | l, true
}

func hexNibble(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
