// Package jsonval provides the default implementation of the abstract Value
// capability the jsonpath evaluator requires of a document: array/object
// discrimination, indexed and keyed access, insertion-ordered iteration of
// object members, equality, and truthiness. Host programs that already have
// their own JSON representation may implement [Value] directly instead of
// decoding into this package's types.
package jsonval

import "iter"

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is the abstract view of a JSON (or JSON-like) value that the
// evaluator operates on. It never panics on a call that doesn't apply to its
// Kind; such calls return the zero value and, where applicable, false.
type Value interface {
	// Kind reports the dynamic type of the value.
	Kind() Kind
	// Bool returns the boolean value, or false if Kind is not KindBool.
	Bool() bool
	// Number returns the numeric value, or 0 if Kind is not KindNumber.
	Number() float64
	// String returns the string value, or "" if Kind is not KindString.
	String() string
	// Len returns the number of elements (KindArray) or members
	// (KindObject). Returns 0 for any other Kind.
	Len() int
	// Index returns the i'th array element. Returns (nil, false) if Kind is
	// not KindArray or i is out of bounds.
	Index(i int) (Value, bool)
	// Member returns the named object member. Returns (nil, false) if Kind
	// is not KindObject or name is absent.
	Member(name string) (Value, bool)
	// Keys iterates object member names in insertion order. Yields nothing
	// for any other Kind.
	Keys() iter.Seq[string]
	// Entries iterates object members in insertion order. Yields nothing
	// for any other Kind.
	Entries() iter.Seq2[string, Value]
	// Equal reports whether v and other have the RFC 9535 §2.3.5 equality
	// relation: same Kind family (numbers compare across int/float), and
	// recursively equal for arrays and objects. Array equality is
	// element-by-element in order; object equality compares membership
	// only and ignores member order. Filter comparisons use this method
	// (via ast.valuesEqual).
	Equal(other Value) bool
	// Truthy reports whether the value is truthy per RFC 9535 §9.3: not
	// false, not null, not zero, not "", and not an empty array/object.
	Truthy() bool
	// Raw returns the underlying native Go representation (nil, bool,
	// float64, string, []Value, or *Object).
	Raw() any
}

// Null is the JSON null value.
type Null struct{}

func (Null) Kind() Kind                        { return KindNull }
func (Null) Bool() bool                        { return false }
func (Null) Number() float64                   { return 0 }
func (Null) String() string                    { return "" }
func (Null) Len() int                          { return 0 }
func (Null) Index(int) (Value, bool)           { return nil, false }
func (Null) Member(string) (Value, bool)       { return nil, false }
func (Null) Keys() iter.Seq[string]            { return func(func(string) bool) {} }
func (Null) Entries() iter.Seq2[string, Value] { return func(func(string, Value) bool) {} }
func (Null) Truthy() bool                      { return false }
func (Null) Raw() any                          { return nil }
func (Null) Equal(other Value) bool            { return other != nil && other.Kind() == KindNull }

// Bool is a JSON boolean value.
type Bool bool

func (b Bool) Kind() Kind                        { return KindBool }
func (b Bool) Bool() bool                        { return bool(b) }
func (Bool) Number() float64                     { return 0 }
func (Bool) String() string                      { return "" }
func (Bool) Len() int                            { return 0 }
func (Bool) Index(int) (Value, bool)             { return nil, false }
func (Bool) Member(string) (Value, bool)         { return nil, false }
func (Bool) Keys() iter.Seq[string]              { return func(func(string) bool) {} }
func (Bool) Entries() iter.Seq2[string, Value]   { return func(func(string, Value) bool) {} }
func (b Bool) Truthy() bool                      { return bool(b) }
func (b Bool) Raw() any                          { return bool(b) }
func (b Bool) Equal(other Value) bool {
	return other != nil && other.Kind() == KindBool && other.Bool() == bool(b)
}

// Number is a JSON numeric value, represented as a float64 per RFC 9535,
// which does not distinguish integers from floats at the value level (that
// distinction matters only for index/step lexical tokens).
type Number float64

func (n Number) Kind() Kind                        { return KindNumber }
func (Number) Bool() bool                          { return false }
func (n Number) Number() float64                   { return float64(n) }
func (Number) String() string                      { return "" }
func (Number) Len() int                            { return 0 }
func (Number) Index(int) (Value, bool)             { return nil, false }
func (Number) Member(string) (Value, bool)         { return nil, false }
func (Number) Keys() iter.Seq[string]              { return func(func(string) bool) {} }
func (Number) Entries() iter.Seq2[string, Value]   { return func(func(string, Value) bool) {} }
func (n Number) Truthy() bool                      { return float64(n) != 0 }
func (n Number) Raw() any                          { return float64(n) }
func (n Number) Equal(other Value) bool {
	return other != nil && other.Kind() == KindNumber && other.Number() == float64(n)
}

// String is a JSON string value.
type String string

func (s String) Kind() Kind                        { return KindString }
func (String) Bool() bool                          { return false }
func (String) Number() float64                     { return 0 }
func (s String) String() string                    { return string(s) }
func (String) Len() int                            { return 0 }
func (String) Index(int) (Value, bool)             { return nil, false }
func (String) Member(string) (Value, bool)         { return nil, false }
func (String) Keys() iter.Seq[string]              { return func(func(string) bool) {} }
func (String) Entries() iter.Seq2[string, Value]   { return func(func(string, Value) bool) {} }
func (s String) Truthy() bool                      { return s != "" }
func (s String) Raw() any                          { return string(s) }
func (s String) Equal(other Value) bool {
	return other != nil && other.Kind() == KindString && other.String() == string(s)
}

// Array is an ordered list of JSON values.
type Array []Value

func (a Array) Kind() Kind                      { return KindArray }
func (Array) Bool() bool                        { return false }
func (Array) Number() float64                   { return 0 }
func (Array) String() string                    { return "" }
func (a Array) Len() int                        { return len(a) }
func (a Array) Index(i int) (Value, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i], true
}
func (Array) Member(string) (Value, bool)       { return nil, false }
func (Array) Keys() iter.Seq[string]            { return func(func(string) bool) {} }
func (Array) Entries() iter.Seq2[string, Value] { return func(func(string, Value) bool) {} }
func (a Array) Truthy() bool                    { return len(a) != 0 }
func (a Array) Raw() any                        { return []Value(a) }
func (a Array) Equal(other Value) bool {
	if other == nil || other.Kind() != KindArray {
		return false
	}
	if other.Len() != len(a) {
		return false
	}
	for i, v := range a {
		ov, _ := other.Index(i)
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Object is an ordered map of string keys to JSON values, preserving
// insertion order the way [Tangerg-lynx's kv.OrderedKV] does: a lookup map
// paired with a key-order slice.
type Object struct {
	index map[string]int
	keys  []string
	vals  []Value
}

// NewObject returns an empty *Object with room for n members.
func NewObject(n int) *Object {
	return &Object{index: make(map[string]int, n), keys: make([]string, 0, n), vals: make([]Value, 0, n)}
}

// Set inserts or updates the member named key. Updating an existing key
// preserves its original position.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

func (*Object) Kind() Kind                    { return KindObject }
func (*Object) Bool() bool                    { return false }
func (*Object) Number() float64               { return 0 }
func (*Object) String() string                { return "" }
func (o *Object) Len() int                    { return len(o.keys) }
func (*Object) Index(int) (Value, bool)       { return nil, false }
func (o *Object) Member(name string) (Value, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

func (o *Object) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range o.keys {
			if !yield(k) {
				return
			}
		}
	}
}

func (o *Object) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, k := range o.keys {
			if !yield(k, o.vals[i]) {
				return
			}
		}
	}
}

func (o *Object) Truthy() bool { return len(o.keys) != 0 }
func (o *Object) Raw() any     { return o }

func (o *Object) Equal(other Value) bool {
	if other == nil || other.Kind() != KindObject || other.Len() != len(o.keys) {
		return false
	}
	for i, k := range o.keys {
		ov, ok := other.Member(k)
		if !ok || !o.vals[i].Equal(ov) {
			return false
		}
	}
	return true
}

// Wrap converts a native Go value produced by encoding/json.Unmarshal (or
// similar) into a Value tree. Object member order is NOT guaranteed to
// survive, because Go's map iteration order is randomized; use [Decode] or
// [DecodeYAML] to preserve source order.
func Wrap(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case string:
		return String(v)
	case []any:
		arr := make(Array, len(v))
		for i, e := range v {
			arr[i] = Wrap(e)
		}
		return arr
	case map[string]any:
		obj := NewObject(len(v))
		for k, e := range v {
			obj.Set(k, Wrap(e))
		}
		return obj
	case Value:
		return v
	default:
		return Null{}
	}
}
