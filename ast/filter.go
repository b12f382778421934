package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/padparadscha/jsonpath/jsonval"
)

// FilterContext is the evaluation environment for a filter expression: the
// document root, the value currently under test, and (when iterating an
// object's members or an array's elements) the key or index it was found
// under, for the non-standard CurrentKey (#) expression.
type FilterContext struct {
	Root       jsonval.Value
	Current    jsonval.Value
	HasKey     bool
	CurrentKey any // string (object member) or int (array element)
}

// FilterExpr is a node in a filter expression tree. Every variant listed in
// SPEC_FULL.md §3 (literals, Not, Logical, Comparison, RelativeQuery,
// RootQuery, Function, and the non-standard CurrentKey) implements it.
type FilterExpr interface {
	fmt.Stringer
	writeTo(buf *strings.Builder)
	// Evaluate runs the expression against ctx and returns its
	// FilterResult: Value, Nodes, Logical, or Nothing.
	Evaluate(ctx *FilterContext) FilterResult
}

func exprString(e FilterExpr) string {
	buf := new(strings.Builder)
	e.writeTo(buf)
	return buf.String()
}

// Literal is a filter expression literal: true, false, null, a quoted
// string, or a number.
type Literal struct {
	V jsonval.Value
}

func (l *Literal) Evaluate(*FilterContext) FilterResult { return Value{V: l.V} }

func (l *Literal) writeTo(buf *strings.Builder) {
	switch v := l.V.(type) {
	case jsonval.Null:
		buf.WriteString("null")
	case jsonval.Bool:
		if bool(v) {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case jsonval.String:
		buf.WriteString(strconv.Quote(string(v)))
	case jsonval.Number:
		buf.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
	default:
		buf.WriteString("null")
	}
}

func (l *Literal) String() string { return exprString(l) }

// Not negates the truthiness of Expr.
type Not struct {
	Expr FilterExpr
}

func (n *Not) Evaluate(ctx *FilterContext) FilterResult {
	return Logical(!Truthy(n.Expr.Evaluate(ctx)))
}

func (n *Not) writeTo(buf *strings.Builder) {
	buf.WriteByte('!')
	n.Expr.writeTo(buf)
}

func (n *Not) String() string { return exprString(n) }

// LogicalOp is the operator of a LogicalExpr: && or ||.
type LogicalOp uint8

const (
	And LogicalOp = iota + 1
	Or
)

func (op LogicalOp) String() string {
	if op == Or {
		return "||"
	}
	return "&&"
}

// LogicalExpr is a short-circuiting && or || of two filter expressions,
// coercing each side to boolean via Truthy.
type LogicalExpr struct {
	Left, Right FilterExpr
	Op          LogicalOp
}

func (l *LogicalExpr) Evaluate(ctx *FilterContext) FilterResult {
	left := Truthy(l.Left.Evaluate(ctx))
	if l.Op == And {
		if !left {
			return Logical(false)
		}
		return Logical(Truthy(l.Right.Evaluate(ctx)))
	}
	if left {
		return Logical(true)
	}
	return Logical(Truthy(l.Right.Evaluate(ctx)))
}

func (l *LogicalExpr) writeTo(buf *strings.Builder) {
	l.Left.writeTo(buf)
	fmt.Fprintf(buf, " %v ", l.Op)
	l.Right.writeTo(buf)
}

func (l *LogicalExpr) String() string { return exprString(l) }

// Comparison tests Left Op Right per RFC 9535 §2.3.5.
type Comparison struct {
	Left, Right FilterExpr
	Op          CompOp
}

func (c *Comparison) Evaluate(ctx *FilterContext) FilterResult {
	return Logical(c.Op.Test(c.Left.Evaluate(ctx), c.Right.Evaluate(ctx)))
}

func (c *Comparison) writeTo(buf *strings.Builder) {
	c.Left.writeTo(buf)
	buf.WriteByte(' ')
	c.Op.writeTo(buf)
	buf.WriteByte(' ')
	c.Right.writeTo(buf)
}

func (c *Comparison) String() string { return exprString(c) }

// RelativeQuery evaluates Query relative to the current node under test
// (the filter's @ root).
type RelativeQuery struct {
	Query *Query
}

func (r *RelativeQuery) Evaluate(ctx *FilterContext) FilterResult {
	return Nodes{List: r.Query.resolveFrom(ctx.Current, ctx.Root)}
}

func (r *RelativeQuery) writeTo(buf *strings.Builder) { buf.WriteString(r.Query.String()) }
func (r *RelativeQuery) String() string               { return exprString(r) }

// RootQuery evaluates Query relative to the document root ($).
type RootQuery struct {
	Query *Query
}

func (r *RootQuery) Evaluate(ctx *FilterContext) FilterResult {
	return Nodes{List: r.Query.resolveFrom(ctx.Root, ctx.Root)}
}

func (r *RootQuery) writeTo(buf *strings.Builder) { buf.WriteString(r.Query.String()) }
func (r *RootQuery) String() string               { return exprString(r) }

// FunctionCall invokes a registered function extension. ParamTypes and
// Return are copied from the FunctionSignature the parser resolved at parse
// time; Call is the registered Callable.
type FunctionCall struct {
	Name       string
	Args       []FilterExpr
	ParamTypes []ExpressionType
	Return     ExpressionType
	Call       Callable
}

func (f *FunctionCall) Evaluate(ctx *FilterContext) FilterResult {
	args := make([]FilterResult, len(f.Args))
	for i, a := range f.Args {
		want := ValueKind
		if i < len(f.ParamTypes) {
			want = f.ParamTypes[i]
		}
		args[i] = coerceArg(a.Evaluate(ctx), want)
	}
	return f.Call(args)
}

// coerceArg converts an evaluated argument to the declared parameter type,
// per SPEC_FULL.md §4.7's function-argument coercion rules.
func coerceArg(fr FilterResult, want ExpressionType) FilterResult {
	switch want {
	case NodesKind:
		// The type-checker only allows a query (which always evaluates to
		// Nodes) in a NodesKind slot.
		return fr
	case LogicalKind:
		return Logical(Truthy(fr))
	default: // ValueKind
		switch v := fr.(type) {
		case Nodes:
			if len(v.List) == 1 {
				return Value{V: v.List[0].Value}
			}
			return Nothing
		case Value:
			return v
		case nothingResult:
			return Nothing
		default:
			return Nothing
		}
	}
}

func (f *FunctionCall) writeTo(buf *strings.Builder) {
	buf.WriteString(f.Name)
	buf.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		a.writeTo(buf)
	}
	buf.WriteByte(')')
}

func (f *FunctionCall) String() string { return exprString(f) }

// CurrentKey is the non-standard # expression: the key (object member name)
// or index (array element position) of the node currently under test.
// Evaluates to Nothing outside of an object/array iteration context.
type CurrentKey struct{}

func (CurrentKey) Evaluate(ctx *FilterContext) FilterResult {
	if !ctx.HasKey {
		return Nothing
	}
	switch k := ctx.CurrentKey.(type) {
	case string:
		return Value{V: jsonval.String(k)}
	case int:
		return Value{V: jsonval.Number(float64(k))}
	default:
		return Nothing
	}
}

func (CurrentKey) writeTo(buf *strings.Builder) { buf.WriteByte('#') }
func (CurrentKey) String() string               { return "#" }
