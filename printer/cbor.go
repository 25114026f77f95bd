package printer

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/aledsdavies/fjson/value"
)

// EncodeCBOR renders v as deterministic binary CBOR (spec [FULL] domain
// stack: "a Value round-trip through a second, binary canonical wire
// format"), using cbor.CanonicalEncOptions() so the same Value always
// produces the same bytes — map keys sorted, shortest-form integers —
// the same determinism guarantee Print gives the JSON text form.
//
// Grounded on the teacher's core/planfmt.CanonicalPlan.MarshalBinary,
// which uses the identical CanonicalEncOptions().EncMode().Marshal
// pattern for deterministic structural hashing.
func EncodeCBOR(v *value.Value) ([]byte, error) {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("printer: building canonical CBOR encoder: %w", err)
	}
	return mode.Marshal(toPlain(v))
}

// DecodeCBOR parses CBOR bytes previously produced by EncodeCBOR back
// into a Value tree. Spans are not recoverable from CBOR (it carries no
// byte-offset information), so every node in the result has a zero Span.
func DecodeCBOR(data []byte) (*value.Value, error) {
	var x interface{}
	if err := cbor.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("printer: decoding CBOR: %w", err)
	}
	return fromPlain(x), nil
}

// toPlain converts a Value tree into the plain Go types (map[string]any,
// []any, int64, float64, string, bool, nil) the cbor library encodes
// directly, without needing a parallel struct tree the way the teacher's
// CanonicalPlan does (a JSON Value's shape is already exactly this set).
func toPlain(v *value.Value) interface{} {
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
			out[i] = toPlain(e)
		}
		return out
	case value.KindObject:
		obj, _ := v.Object()
		out := make(map[string]interface{}, obj.Len())
		for _, e := range obj.Entries() {
			out[e.Key] = toPlain(e.Value)
		}
		return out
	}
	return nil
}

// fromPlain converts cbor.Unmarshal's generic output back into a Value
// tree. CBOR maps decode into map[interface{}]interface{} by default;
// map[string]interface{} is handled too in case a caller's decode options
// differ.
func fromPlain(x interface{}) *value.Value {
	switch t := x.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(t)
	case int64:
		return value.Integer(t)
	case uint64:
		return value.Integer(int64(t))
	case float64:
		return value.Float(t)
	case string:
		return value.String(t)
	case []interface{}:
		elems := make([]*value.Value, len(t))
		for i, e := range t {
			elems[i] = fromPlain(e)
		}
		return value.Array(elems)
	case map[string]interface{}:
		obj := value.NewObject()
		for k, v := range t {
			obj.Set(k, fromPlain(v))
		}
		return value.ObjectValue(obj)
	case map[interface{}]interface{}:
		obj := value.NewObject()
		for k, v := range t {
			obj.Set(fmt.Sprintf("%v", k), fromPlain(v))
		}
		return value.ObjectValue(obj)
	default:
		return value.Null()
	}
}
