// Package printer implements the canonical output surfaces spec §6 names
// a caller needs alongside parsing: a canonical printer that round-trips
// any Value to strict RFC 8259 JSON, and (spec §4.9/[FULL] domain stack)
// a binary canonical encoding via CBOR. The deterministic textual error
// formatter spec §6 also requires is not duplicated here — fjerr.Error's
// own Error()/Snippet() already produce the "line:column: <kind>:
// <message>" format with an optional context arrow.
package printer

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/fjson/value"
)

// Print renders v as strict RFC 8259 JSON: quoted keys, canonical string
// escaping, and number formatting that preserves the Integer-vs-Float
// distinction on re-parse (spec §3.1's "Number carries a kind tag" must
// survive a print/parse round-trip).
func Print(v *value.Value) string {
	var b strings.Builder
	write(&b, v)
	return b.String()
}

func write(b *strings.Builder, v *value.Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBool:
		bv, _ := v.Bool()
		if bv {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KindInteger:
		n, _ := v.Int()
		b.WriteString(strconv.FormatInt(n, 10))
	case value.KindFloat:
		f, _ := v.Float()
		writeFloat(b, f)
	case value.KindString:
		s, _ := v.Str()
		writeString(b, s)
	case value.KindArray:
		arr, _ := v.Array()
		b.WriteByte('[')
		for i, e := range arr {
			if i > 0 {
				b.WriteByte(',')
			}
			write(b, e)
		}
		b.WriteByte(']')
	case value.KindObject:
		obj, _ := v.Object()
		b.WriteByte('{')
		for i, e := range obj.Entries() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, e.Key)
			b.WriteByte(':')
			write(b, e.Value)
		}
		b.WriteByte('}')
	}
}

// writeFloat formats f with Go's shortest round-trippable representation,
// then forces a decimal point onto an integral result (e.g. "100" ->
// "100.0") so re-parsing the printed text resolves to Float again per
// spec §4.3's Integer-vs-Float decision rule (a bare digit run with no
// '.' or exponent parses back as Integer).
func writeFloat(b *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	b.WriteString(s)
}

// writeString escapes s per RFC 8259 §7: '"', '\\', and every control
// byte U+0000–U+001F get a \u or short escape; everything else (including
// multi-byte UTF-8) is copied through unchanged, since decoded Value
// strings are already valid UTF-8 (spec §3.1 invariant).
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				const hex = "0123456789abcdef"
				b.WriteByte(hex[(r>>12)&0xf])
				b.WriteByte(hex[(r>>8)&0xf])
				b.WriteByte(hex[(r>>4)&0xf])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
