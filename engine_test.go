package jsonpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padparadscha/jsonpath/ast"
	"github.com/padparadscha/jsonpath/jsonval"
	"github.com/padparadscha/jsonpath/registry"
)

func mustDecode(t *testing.T, doc string) jsonval.Value {
	t.Helper()
	v, err := jsonval.Decode([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestEngineCompileAndFind(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	e := New()
	root := mustDecode(t, `{"a": [1, 2, 3]}`)

	path, err := e.Compile("$.a[*]")
	a.NoError(err)
	values := path.Select(root)
	a.Len(values, 3)

	values, err = e.Find("$.a[1]", root)
	a.NoError(err)
	a.Equal([]jsonval.Value{jsonval.Number(2)}, values)
}

func TestEngineCompileReturnsJSONPathError(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	e := New()
	_, err := e.Compile("a.b")
	a.Error(err)

	var jerr *JSONPathError
	a.True(errors.As(err, &jerr))
	a.Equal(SyntaxErrorKind, jerr.Kind)
	a.True(errors.Is(err, ErrSyntax))
}

func TestEngineStrictByDefaultRejectsExtensions(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	e := New()
	_, err := e.Compile("$.~name")
	a.Error(err)
	a.True(errors.Is(err, ErrExt))

	e = New(WithStrict(false))
	_, err = e.Compile("$.~name")
	a.NoError(err)
}

func TestEngineWithIndexRange(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	e := New(WithIndexRange(10))
	_, err := e.Compile("$[100]")
	a.Error(err)
	a.True(errors.Is(err, ErrSyntax))
}

func TestEngineWithRegistry(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	reg := registry.New()
	sig := ast.FunctionSignature{Params: []ast.ExpressionType{ast.ValueKind}, Return: ast.ValueKind}
	err := reg.Register("double", sig, func(args []ast.FilterResult) ast.FilterResult {
		v, ok := ast.AsValue(args[0])
		if !ok {
			return ast.Nothing
		}
		return ast.Value{V: jsonval.Number(v.Number() * 2)}
	})
	r.NoError(err)

	e := New(WithRegistry(reg))
	root := mustDecode(t, `[{"a": 2}, {"a": 3}]`)
	path, err := e.Compile("$[?double(@.a) == 4]")
	a.NoError(err)
	located := path.SelectLocated(root)
	a.Len(located, 1)
}

func TestPackageLevelCompile(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	path, err := Compile("$.a")
	a.NoError(err)
	a.NotNil(path)
}
