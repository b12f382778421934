package registry

import (
	"regexp"
	"regexp/syntax"
	"unicode/utf8"

	"github.com/padparadscha/jsonpath/ast"
	"github.com/padparadscha/jsonpath/jsonval"
)

// builtins are the RFC 9535-mandated function extensions, loaded into every
// Registry returned by New.
var builtins = []*Function{
	{
		Name:      "length",
		Signature: ast.FunctionSignature{Params: []ast.ExpressionType{ast.ValueKind}, Return: ast.ValueKind},
		Call:      lengthFunc,
	},
	{
		Name:      "count",
		Signature: ast.FunctionSignature{Params: []ast.ExpressionType{ast.NodesKind}, Return: ast.ValueKind},
		Call:      countFunc,
	},
	{
		Name:      "value",
		Signature: ast.FunctionSignature{Params: []ast.ExpressionType{ast.NodesKind}, Return: ast.ValueKind},
		Call:      valueFunc,
	},
	{
		Name:      "match",
		Signature: ast.FunctionSignature{Params: []ast.ExpressionType{ast.ValueKind, ast.ValueKind}, Return: ast.LogicalKind},
		Call:      matchFunc,
	},
	{
		Name:      "search",
		Signature: ast.FunctionSignature{Params: []ast.ExpressionType{ast.ValueKind, ast.ValueKind}, Return: ast.LogicalKind},
		Call:      searchFunc,
	},
}

// lengthFunc implements the length() function extension:
//
//   - a string's length is its count of Unicode scalar values
//   - an array's or object's length is its element/member count
//   - anything else (including Nothing) yields Nothing
func lengthFunc(args []ast.FilterResult) ast.FilterResult {
	v, ok := ast.AsValue(args[0])
	if !ok {
		return ast.Nothing
	}
	switch v.Kind() {
	case jsonval.KindString:
		return ast.Value{V: jsonval.Number(utf8.RuneCountInString(v.String()))}
	case jsonval.KindArray, jsonval.KindObject:
		return ast.Value{V: jsonval.Number(float64(v.Len()))}
	default:
		return ast.Nothing
	}
}

// countFunc implements the count() function extension: the number of nodes
// in its NodesKind argument.
func countFunc(args []ast.FilterResult) ast.FilterResult {
	nodes, ok := args[0].(ast.Nodes)
	if !ok {
		return ast.Value{V: jsonval.Number(0)}
	}
	return ast.Value{V: jsonval.Number(float64(len(nodes.List)))}
}

// valueFunc implements the value() function extension: the value of its
// argument's single node, or Nothing if the argument is empty or holds more
// than one node.
func valueFunc(args []ast.FilterResult) ast.FilterResult {
	nodes, ok := args[0].(ast.Nodes)
	if !ok || len(nodes.List) != 1 {
		return ast.Nothing
	}
	return ast.Value{V: nodes.List[0].Value}
}

// matchFunc implements the match() function extension: true if the first
// argument, taken as a whole, matches the regular expression compiled from
// the second argument. Non-string arguments, or a second argument that
// fails to compile, yield false rather than an error.
func matchFunc(args []ast.FilterResult) ast.FilterResult {
	subject, pattern, ok := stringArgs(args)
	if !ok {
		return ast.Logical(false)
	}
	rc := compileRegex(`\A(?:` + pattern + `)\z`)
	if rc == nil {
		return ast.Logical(false)
	}
	return ast.Logical(rc.MatchString(subject))
}

// searchFunc implements the search() function extension: true if some
// substring of the first argument matches the regular expression compiled
// from the second argument.
func searchFunc(args []ast.FilterResult) ast.FilterResult {
	subject, pattern, ok := stringArgs(args)
	if !ok {
		return ast.Logical(false)
	}
	rc := compileRegex(pattern)
	if rc == nil {
		return ast.Logical(false)
	}
	return ast.Logical(rc.MatchString(subject))
}

func stringArgs(args []ast.FilterResult) (subject, pattern string, ok bool) {
	sv, ok1 := ast.AsValue(args[0])
	pv, ok2 := ast.AsValue(args[1])
	if !ok1 || !ok2 || sv.Kind() != jsonval.KindString || pv.Kind() != jsonval.KindString {
		return "", "", false
	}
	return sv.String(), pv.String(), true
}

// compileRegex compiles str as an [RFC 9485] I-Regexp. To comply with its
// semantics, every "." is replaced with "[^\n\r]"; this requires compiling
// the regex twice, once to obtain an AST to rewrite and once more for the
// final pattern.
//
// [RFC 9485]: https://www.rfc-editor.org/rfc/rfc9485.html
func compileRegex(str string) *regexp.Regexp {
	r, err := syntax.Parse(str, syntax.Perl|syntax.DotNL)
	if err != nil {
		return nil
	}
	replaceDot(r)
	re, err := regexp.Compile(r.String())
	if err != nil {
		return nil
	}
	return re
}

var dotReplacement, _ = syntax.Parse(`[^\n\r]`, syntax.Perl)

// replaceDot recurses through re, replacing every "any character" node with
// dotReplacement.
func replaceDot(re *syntax.Regexp) {
	if re.Op == syntax.OpAnyChar {
		*re = *dotReplacement
		return
	}
	for _, sub := range re.Sub {
		replaceDot(sub)
	}
}
