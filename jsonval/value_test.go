package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	obj := NewObject(0)
	obj.Set("z", Number(1))
	obj.Set("a", Number(2))
	obj.Set("m", Number(3))

	var keys []string
	for k := range obj.Keys() {
		keys = append(keys, k)
	}
	a.Equal([]string{"z", "a", "m"}, keys)
}

func TestObjectSetUpdatesInPlace(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	obj := NewObject(0)
	obj.Set("a", Number(1))
	obj.Set("b", Number(2))
	obj.Set("a", Number(99))

	var keys []string
	for k := range obj.Keys() {
		keys = append(keys, k)
	}
	a.Equal([]string{"a", "b"}, keys)

	v, ok := obj.Member("a")
	a.True(ok)
	a.Equal(Number(99), v)
}

func TestTruthy(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.False(Null{}.Truthy())
	a.False(Bool(false).Truthy())
	a.True(Bool(true).Truthy())
	a.False(Number(0).Truthy())
	a.True(Number(1).Truthy())
	a.False(String("").Truthy())
	a.True(String("x").Truthy())
	a.False(Array{}.Truthy())
	a.True(Array{Number(1)}.Truthy())
	a.False(NewObject(0).Truthy())

	obj := NewObject(0)
	obj.Set("k", Null{})
	a.True(obj.Truthy())
}

func TestEqual(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.True(Number(1).Equal(Number(1)))
	a.False(Number(1).Equal(Number(2)))
	a.True(String("x").Equal(String("x")))
	a.False(String("x").Equal(Number(1)))
	a.True(Null{}.Equal(Null{}))
	a.True(Array{Number(1), Number(2)}.Equal(Array{Number(1), Number(2)}))
	a.False(Array{Number(1)}.Equal(Array{Number(1), Number(2)}))

	o1 := NewObject(0)
	o1.Set("a", Number(1))
	o1.Set("b", Number(2))
	o2 := NewObject(0)
	o2.Set("b", Number(2))
	o2.Set("a", Number(1))
	a.True(o1.Equal(o2), "object equality ignores member order")
}

func TestIndexOutOfBounds(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	arr := Array{Number(1)}
	_, ok := arr.Index(1)
	a.False(ok)
	_, ok = arr.Index(-1)
	a.False(ok)
}

func TestMemberAbsent(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	obj := NewObject(0)
	_, ok := obj.Member("missing")
	a.False(ok)
}
