package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padparadscha/jsonpath/ast"
	"github.com/padparadscha/jsonpath/jsonval"
)

func TestLengthFunc(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, tc := range []struct {
		name string
		arg  ast.FilterResult
		want ast.FilterResult
	}{
		{name: "empty_string", arg: ast.Value{V: jsonval.String("")}, want: ast.Value{V: jsonval.Number(0)}},
		{name: "ascii_string", arg: ast.Value{V: jsonval.String("abc def")}, want: ast.Value{V: jsonval.Number(7)}},
		{name: "unicode_string", arg: ast.Value{V: jsonval.String("foö")}, want: ast.Value{V: jsonval.Number(3)}},
		{name: "array", arg: ast.Value{V: jsonval.Array{jsonval.Number(1), jsonval.Number(2)}}, want: ast.Value{V: jsonval.Number(2)}},
		{name: "object", arg: ast.Value{V: obj("a", jsonval.Number(1), "b", jsonval.Number(2), "c", jsonval.Number(3))}, want: ast.Value{V: jsonval.Number(3)}},
		{name: "number", arg: ast.Value{V: jsonval.Number(42)}, want: ast.Nothing},
		{name: "nothing", arg: ast.Nothing, want: ast.Nothing},
	} {
		got := lengthFunc([]ast.FilterResult{tc.arg})
		a.Equalf(tc.want, got, tc.name)
	}
}

func obj(pairs ...any) *jsonval.Object {
	o := jsonval.NewObject(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(jsonval.Value))
	}
	return o
}

func TestCountFunc(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	nodes := ast.Nodes{List: ast.NodeList{{Value: jsonval.Number(1)}, {Value: jsonval.Number(2)}}}
	a.Equal(ast.Value{V: jsonval.Number(2)}, countFunc([]ast.FilterResult{nodes}))

	a.Equal(ast.Value{V: jsonval.Number(0)}, countFunc([]ast.FilterResult{ast.Nodes{}}))
}

func TestValueFunc(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	single := ast.Nodes{List: ast.NodeList{{Value: jsonval.Number(9)}}}
	a.Equal(ast.Value{V: jsonval.Number(9)}, valueFunc([]ast.FilterResult{single}))

	empty := ast.Nodes{}
	a.Equal(ast.Nothing, valueFunc([]ast.FilterResult{empty}))

	multi := ast.Nodes{List: ast.NodeList{{Value: jsonval.Number(1)}, {Value: jsonval.Number(2)}}}
	a.Equal(ast.Nothing, valueFunc([]ast.FilterResult{multi}))
}

func TestMatchFunc(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, tc := range []struct {
		name    string
		subject string
		pattern string
		want    bool
	}{
		{name: "full_match", subject: "abc", pattern: "a.c", want: true},
		{name: "partial_not_full", subject: "xabcy", pattern: "abc", want: false},
		{name: "dot_excludes_newline", subject: "a\nc", pattern: "a.c", want: false},
		{name: "anchors_ignored_in_pattern", subject: "abc", pattern: "^abc$", want: true},
	} {
		got := matchFunc([]ast.FilterResult{
			ast.Value{V: jsonval.String(tc.subject)},
			ast.Value{V: jsonval.String(tc.pattern)},
		})
		a.Equalf(ast.Logical(tc.want), got, tc.name)
	}
}

func TestSearchFunc(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	got := searchFunc([]ast.FilterResult{
		ast.Value{V: jsonval.String("xabcy")},
		ast.Value{V: jsonval.String("abc")},
	})
	a.Equal(ast.Logical(true), got)

	got = searchFunc([]ast.FilterResult{
		ast.Value{V: jsonval.String("xyz")},
		ast.Value{V: jsonval.String("abc")},
	})
	a.Equal(ast.Logical(false), got)
}

func TestMatchFuncNonStringArgsAreFalse(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	got := matchFunc([]ast.FilterResult{
		ast.Value{V: jsonval.Number(1)},
		ast.Value{V: jsonval.String("1")},
	})
	a.Equal(ast.Logical(false), got)
}
