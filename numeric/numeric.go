// Package numeric implements the number parser (spec §4.2): it resolves a
// lexer-captured numeric lexeme into an integer or float, honouring the
// extended bases, underscore grouping, and the Integer-vs-Float decision
// rule.
package numeric

import (
	"math"
	"strconv"
	"strings"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/token"
)

// Kind tags the resolved value, mirroring value.Kind's Integer/Float split.
type Kind uint8

const (
	Integer Kind = iota
	Float
)

// Number is the resolved numeric value: exactly one of I or F is
// meaningful, selected by Kind.
type Number struct {
	Kind Kind
	I    int64
	F    float64
}

// Parse resolves lexeme (as captured by the lexer, including any leading
// sign but excluding surrounding whitespace) at base into a Number, or
// returns an InvalidNumber error anchored at span.
func Parse(lexeme []byte, base token.NumberBase, span fjerr.Span) (Number, *fjerr.Error) {
	s := string(lexeme)
	if s == "" {
		return Number{}, fjerr.New(fjerr.InvalidNumber, span, "empty numeric lexeme")
	}

	negative := false
	rest := s
	switch rest[0] {
	case '-':
		negative = true
		rest = rest[1:]
	case '+':
		rest = rest[1:]
	}

	// Strip a base prefix for non-decimal literals; Parse is called with the
	// lexer's own base tag so the prefix, if any, has already been
	// identified, but the lexeme still carries it for the underscore and
	// digit-run checks below.
	digits := rest
	switch base {
	case token.Base16:
		digits = trimPrefix(rest, "0x", "0X")
	case token.Base8:
		digits = trimPrefix(rest, "0o", "0O")
	case token.Base2:
		digits = trimPrefix(rest, "0b", "0B")
	}

	if err := validateUnderscores(digits, base == token.Base16, span); err != nil {
		return Number{}, err
	}
	clean := strings.ReplaceAll(digits, "_", "")

	if base != token.Base10 {
		if clean == "" {
			return Number{}, fjerr.New(fjerr.InvalidNumber, span, "no digits after base prefix")
		}
		bits := baseOf(base)
		u, err := strconv.ParseUint(clean, bits, 64)
		if err != nil {
			return Number{}, fjerr.New(fjerr.InvalidNumber, span, "invalid base-%d integer literal", bits)
		}
		n := int64(u)
		if negative {
			// Non-decimal integers that don't fit i64 are an error, never
			// silently converted to Float (spec §4.2 rule 2); a negative
			// base-N literal whose magnitude exceeds MaxInt64 is rejected
			// the same way a ParseInt overflow would be.
			if u > uint64(math.MaxInt64)+1 {
				return Number{}, fjerr.New(fjerr.InvalidNumber, span, "base-%d integer literal out of range", bits)
			}
			n = -n
		} else if u > uint64(math.MaxInt64) {
			return Number{}, fjerr.New(fjerr.InvalidNumber, span, "base-%d integer literal out of range", bits)
		}
		return Number{Kind: Integer, I: n}, nil
	}

	// Decimal: float syntax is signalled by '.', 'e'/'E'; 'p'/'P' would be a
	// hex-float exponent, which the grammar does not produce for a decimal
	// literal and which spec §4.2 rejects outright if ever seen.
	if strings.ContainsAny(clean, "pP") {
		return Number{}, fjerr.New(fjerr.InvalidNumber, span, "hex-float literals are not supported")
	}
	isFloat := strings.ContainsAny(clean, ".eE")

	if clean == "" {
		return Number{}, fjerr.New(fjerr.InvalidNumber, span, "empty numeric lexeme")
	}

	if !isFloat {
		u, err := strconv.ParseUint(clean, 10, 64)
		if err == nil {
			if negative {
				if u > uint64(math.MaxInt64)+1 {
					return floatFallback(s, span, negative)
				}
				return Number{Kind: Integer, I: -int64(u)}, nil
			}
			if u <= uint64(math.MaxInt64) {
				return Number{Kind: Integer, I: int64(u)}, nil
			}
		}
		// Overflowed i64: a decimal integer may still be representable as
		// a finite float (spec §4.2 rule 2).
		return floatFallback(s, span, negative)
	}

	normalized := normalizeFloatSyntax(clean)
	text := normalized
	if negative {
		text = "-" + normalized
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, fjerr.New(fjerr.InvalidNumber, span, "invalid or non-finite float literal")
	}
	return Number{Kind: Float, F: f}, nil
}

func floatFallback(original string, span fjerr.Span, negative bool) (Number, *fjerr.Error) {
	f, err := strconv.ParseFloat(original, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, fjerr.New(fjerr.InvalidNumber, span, "integer literal out of range and not representable as a finite float")
	}
	return Number{Kind: Float, F: f}, nil
}

// normalizeFloatSyntax handles a leading or trailing '.' on a decimal
// literal (spec §4.2's forgiving extension), e.g. ".5" -> "0.5",
// "5." -> "5.0".
func normalizeFloatSyntax(s string) string {
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if strings.HasSuffix(s, ".") {
		s = s + "0"
	}
	// strconv.ParseFloat already accepts bare "5e3" fine; only the dot
	// edge cases need help.
	return s
}

func trimPrefix(s string, prefixes ...string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return s[len(p):]
		}
	}
	return s
}

func baseOf(b token.NumberBase) int {
	switch b {
	case token.Base16:
		return 16
	case token.Base8:
		return 8
	case token.Base2:
		return 2
	default:
		return 10
	}
}

// validateUnderscores enforces "_" as a digit-group separator anywhere
// between two digits: no leading, trailing, or adjacent underscores.
func validateUnderscores(s string, hex bool, span fjerr.Span) *fjerr.Error {
	digit := isDecimalDigit
	if hex {
		digit = isHexDigit
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 {
			return fjerr.New(fjerr.InvalidNumber, span, "underscore may not lead or trail a numeric literal")
		}
		if s[i+1] == '_' {
			return fjerr.New(fjerr.InvalidNumber, span, "adjacent underscores are not allowed")
		}
		if !digit(s[i-1]) || !digit(s[i+1]) {
			return fjerr.New(fjerr.InvalidNumber, span, "underscore must separate two digits")
		}
	}
	return nil
}

func isDecimalDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
