package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONPreservesOrder(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	v, err := Decode([]byte(`{"z": 1, "a": 2, "m": [1, 2, {"y": 1, "x": 2}]}`))
	r.NoError(err)
	r.Equal(KindObject, v.Kind())

	var keys []string
	for k := range v.Keys() {
		keys = append(keys, k)
	}
	a.Equal([]string{"z", "a", "m"}, keys)

	arr, ok := v.Member("m")
	r.True(ok)
	r.Equal(KindArray, arr.Kind())
	r.Equal(3, arr.Len())

	nested, ok := arr.Index(2)
	r.True(ok)
	var nestedKeys []string
	for k := range nested.Keys() {
		nestedKeys = append(nestedKeys, k)
	}
	a.Equal([]string{"y", "x"}, nestedKeys)
}

func TestDecodeJSONScalars(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for _, tc := range []struct {
		name string
		src  string
		kind Kind
	}{
		{name: "null", src: "null", kind: KindNull},
		{name: "true", src: "true", kind: KindBool},
		{name: "number", src: "42", kind: KindNumber},
		{name: "string", src: `"hi"`, kind: KindString},
		{name: "array", src: "[]", kind: KindArray},
		{name: "object", src: "{}", kind: KindObject},
	} {
		v, err := Decode([]byte(tc.src))
		r.NoErrorf(err, tc.name)
		a.Equalf(tc.kind, v.Kind(), tc.name)
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	_, err := Decode([]byte(`{not json`))
	r.Error(err)
}

func TestDecodeYAMLPreservesOrder(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	v, err := DecodeYAML([]byte("z: 1\na: 2\nm:\n  - 1\n  - 2\n"))
	r.NoError(err)
	r.Equal(KindObject, v.Kind())

	var keys []string
	for k := range v.Keys() {
		keys = append(keys, k)
	}
	a.Equal([]string{"z", "a", "m"}, keys)
}

func TestDecodeYAMLScalarTypes(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	v, err := DecodeYAML([]byte("a: true\nb: 3.5\nc: hello\nd: null\n"))
	r.NoError(err)

	bv, ok := v.Member("a")
	r.True(ok)
	a.True(bv.Bool())

	nv, ok := v.Member("b")
	r.True(ok)
	a.InDelta(3.5, nv.Number(), 0.0001)

	sv, ok := v.Member("c")
	r.True(ok)
	a.Equal("hello", sv.String())

	dv, ok := v.Member("d")
	r.True(ok)
	a.Equal(KindNull, dv.Kind())
}
