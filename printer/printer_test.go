package printer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/value"
)

func TestPrintScalars(t *testing.T) {
	require.Equal(t, "null", Print(value.Null()))
	require.Equal(t, "true", Print(value.Bool(true)))
	require.Equal(t, "false", Print(value.Bool(false)))
	require.Equal(t, "42", Print(value.Integer(42)))
	require.Equal(t, "-7", Print(value.Integer(-7)))
	require.Equal(t, `"hi"`, Print(value.String("hi")))
}

func TestPrintFloatAlwaysKeepsDecimalPoint(t *testing.T) {
	require.Equal(t, "100.0", Print(value.Float(100)))
	require.Equal(t, "3.5", Print(value.Float(3.5)))
}

func TestPrintStringEscaping(t *testing.T) {
	require.Equal(t, `"a\"b\\c\nd"`, Print(value.String("a\"b\\c\nd")))
	require.Equal(t, "\"\\u0001\"", Print(value.String("\x01")))
	require.Equal(t, `"héllo"`, Print(value.String("héllo")))
}

func TestPrintArrayAndObject(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Integer(1))
	obj.Set("b", value.Array([]*value.Value{value.Integer(1), value.Integer(2)}))
	v := value.ObjectValue(obj)
	require.Equal(t, `{"a":1,"b":[1,2]}`, Print(v))
}

// TestPrintRoundTripsThroughStrictParse is the spec §6 property: the
// canonical printer round-trips any Value to strict RFC 8259 JSON.
func TestPrintRoundTripsThroughStrictParse(t *testing.T) {
	src := `{"name": "a\nb", "n": 3.0, "tags": [1, 2, 3], "nested": {"x": null, "y": true}}`
	v, err := parser.Parse([]byte(src), parser.NewConfig(options.Default()))
	require.Nil(t, err)

	printed := Print(v)

	reparsed, rerr := parser.Parse([]byte(printed), parser.NewConfig(options.Strict()))
	require.Nil(t, rerr, "canonical output %q must be strict RFC 8259 JSON", printed)
	require.Equal(t, render(v), render(reparsed))
}

func TestCBORRoundTrip(t *testing.T) {
	src := `{"name": "widget", "count": 3, "price": 9.5, "active": true, "note": null, "tags": ["a", "b"]}`
	v, err := parser.Parse([]byte(src), parser.NewConfig(options.Default()))
	require.Nil(t, err)

	data, encErr := EncodeCBOR(v)
	require.NoError(t, encErr)

	decoded, decErr := DecodeCBOR(data)
	require.NoError(t, decErr)

	require.Equal(t, render(v), render(decoded))
}

func TestEncodeCBORIsDeterministic(t *testing.T) {
	obj := value.NewObject()
	obj.Set("z", value.Integer(1))
	obj.Set("a", value.Integer(2))
	v := value.ObjectValue(obj)

	first, err := EncodeCBOR(v)
	require.NoError(t, err)
	second, err := EncodeCBOR(v)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// render mirrors the structural comparator used in parser/chunk tests,
// local to this package since Value's fields are unexported.
func render(v *value.Value) interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		b, _ := v.Bool()
		return b
	case value.KindInteger:
		n, _ := v.Int()
		return n
	case value.KindFloat:
		f, _ := v.Float()
		return f
	case value.KindString:
		s, _ := v.Str()
		return s
	case value.KindArray:
		arr, _ := v.Array()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = render(e)
		}
		return out
	case value.KindObject:
		obj, _ := v.Object()
		out := make(map[string]interface{}, obj.Len())
		for _, e := range obj.Entries() {
			out[e.Key] = render(e.Value)
		}
		return out
	}
	return nil
}
