// Package value implements the result tree for fjson (spec §3.1): scalars,
// arrays, objects with ordered keys, and a number kind tag.
package value

import (
	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/internal/invariant"
)

// Kind is the tag of the Value variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "integer", "float", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a tagged variant over Null, Bool, Number{Integer|Float}, String,
// Array, Object. It is a single struct rather than an interface so a Value
// tree can live inside an arena without per-node boxing (spec §4.9).
//
// A Value exclusively owns its children and its string storage (spec
// §3.1 "Ownership"). It is immutable from the caller's point of view
// unless the caller holds exclusive access, and mutated only by plugin
// transform hooks during parse.
type Value struct {
	kind Kind
	span fjerr.Span

	b   bool
	i   int64
	f   float64
	s   string
	arr []*Value
	obj *Object
}

// Span returns the value's byte range in the original input. Values built
// outside a parse (e.g. by plugin transform hooks) may carry a zero Span.
func (v *Value) Span() fjerr.Span { return v.span }

// SetSpan overrides the value's span; used by the parser when nesting a
// value inside a container span and by transform hooks that need to
// re-tag a synthesized value.
func (v *Value) SetSpan(s fjerr.Span) { v.span = s }

// Kind returns the value's tag.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; ok is false if Kind() != KindBool.
func (v *Value) Bool() (b, ok bool) {
	return v.b, v.kind == KindBool
}

// IsInteger reports whether the value is a Number holding the Integer tag
// (spec §3.1 "Number carries a kind tag").
func (v *Value) IsInteger() bool { return v.kind == KindInteger }

// IsFloat reports whether the value is a Number holding the Float tag.
func (v *Value) IsFloat() bool { return v.kind == KindFloat }

// Int returns the int64 payload; ok is false unless IsInteger().
func (v *Value) Int() (n int64, ok bool) {
	return v.i, v.kind == KindInteger
}

// Float returns the value as a float64. Valid for both Integer and Float
// kinds (an Integer converts losslessly up to 2^53); ok is false otherwise.
func (v *Value) Float() (f float64, ok bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInteger:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Str returns the string payload; ok is false if Kind() != KindString.
func (v *Value) Str() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// Array returns the backing slice; ok is false if Kind() != KindArray.
// The slice is owned by the Value and must not be mutated by the caller.
func (v *Value) Array() (arr []*Value, ok bool) {
	return v.arr, v.kind == KindArray
}

// Object returns the backing Object; ok is false if Kind() != KindObject.
func (v *Value) Object() (obj *Object, ok bool) {
	return v.obj, v.kind == KindObject
}

// Index returns the array element at i, or nil if out of range or the
// value is not an array. Mirrors the teacher's fluent accessor style.
func (v *Value) Index(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Key returns the object member for k (last-writer-wins), or nil if the
// value is not an object or the key is absent.
func (v *Value) Key(k string) *Value {
	if v.kind != KindObject {
		return nil
	}
	val, _ := v.obj.Get(k)
	return val
}

// Constructors. Span defaults to the zero span; callers that need a real
// span (the parser) set it with SetSpan.

func Null() *Value            { return &Value{kind: KindNull} }
func Bool(b bool) *Value      { return &Value{kind: KindBool, b: b} }
func Integer(n int64) *Value  { return &Value{kind: KindInteger, i: n} }
func Float(f float64) *Value  { return &Value{kind: KindFloat, f: f} }
func String(s string) *Value  { return &Value{kind: KindString, s: s} }
func Array(elems []*Value) *Value { return &Value{kind: KindArray, arr: elems} }

func ObjectValue(obj *Object) *Value {
	invariant.Precondition(obj != nil, "ObjectValue requires a non-nil *Object")
	return &Value{kind: KindObject, obj: obj}
}

// Replace overwrites the receiver's kind and payload with src's, keeping
// the receiver's own identity (and span) stable so a parent array or
// object that already holds this *Value sees the change without any
// restructuring. This is the in-place mutation spec §4.8's
// transform_value(&mut value, path) hook needs, and what the repair
// engine's literal-coercion pass (CoerceLiteral/UnquoteNumber) uses to
// turn a quoted literal into its typed form without rebuilding the tree.
func (v *Value) Replace(src *Value) {
	v.kind = src.kind
	v.b = src.b
	v.i = src.i
	v.f = src.f
	v.s = src.s
	v.arr = src.arr
	v.obj = src.obj
}
