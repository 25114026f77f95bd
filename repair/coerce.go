package repair

import (
	"regexp"

	"github.com/aledsdavies/fjson/numeric"
	"github.com/aledsdavies/fjson/token"
	"github.com/aledsdavies/fjson/value"
)

// numberLiteral matches a string whose entire content is itself a valid
// JSON number (spec's `UnquoteNumber`): optional sign, digits, optional
// fraction, optional exponent. Extended bases/underscores are a forgiving-
// lexer concept, not something a plain decoded string carries, so this
// intentionally only covers the RFC 8259 number grammar.
var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// coerceLiterals walks v post-parse, turning a String value that spells
// out "true", "false", "null", or a bare number into its typed form
// (spec §4.7 `CoerceLiteral`/`UnquoteNumber`). It mutates the tree in
// place via Value.Replace so parent containers need no restructuring, and
// returns one Action per coercion for the audit trail.
func coerceLiterals(v *value.Value) []Action {
	var actions []Action
	coerceOne(v, &actions)
	walkCoerce(v, &actions)
	return actions
}

func walkCoerce(v *value.Value, actions *[]Action) {
	switch v.Kind() {
	case value.KindArray:
		arr, _ := v.Array()
		for _, el := range arr {
			coerceOne(el, actions)
			walkCoerce(el, actions)
		}
	case value.KindObject:
		obj, _ := v.Object()
		for _, e := range obj.Entries() {
			coerceOne(e.Value, actions)
			walkCoerce(e.Value, actions)
		}
	}
}

func coerceOne(v *value.Value, actions *[]Action) {
	if v.Kind() != value.KindString {
		return
	}
	s, _ := v.Str()
	switch s {
	case "true":
		v.Replace(value.Bool(true))
		*actions = append(*actions, Action{
			Strategy: CoerceLiteral, OriginalSpan: v.Span(), Replacement: "true",
			Confidence: confidence[CoerceLiteral], Description: `coerced string "true" to boolean true`,
		})
		return
	case "false":
		v.Replace(value.Bool(false))
		*actions = append(*actions, Action{
			Strategy: CoerceLiteral, OriginalSpan: v.Span(), Replacement: "false",
			Confidence: confidence[CoerceLiteral], Description: `coerced string "false" to boolean false`,
		})
		return
	case "null":
		v.Replace(value.Null())
		*actions = append(*actions, Action{
			Strategy: CoerceLiteral, OriginalSpan: v.Span(), Replacement: "null",
			Confidence: confidence[CoerceLiteral], Description: `coerced string "null" to null`,
		})
		return
	}
	if numberLiteral.MatchString(s) {
		n, err := numeric.Parse([]byte(s), token.Base10, v.Span())
		if err != nil {
			return
		}
		var nv *value.Value
		if n.Kind == numeric.Integer {
			nv = value.Integer(n.I)
		} else {
			nv = value.Float(n.F)
		}
		v.Replace(nv)
		*actions = append(*actions, Action{
			Strategy: UnquoteNumber, OriginalSpan: v.Span(), Replacement: s,
			Confidence: confidence[UnquoteNumber], Description: "unquoted a numeric string literal",
		})
	}
}
