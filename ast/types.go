package ast

import "github.com/padparadscha/jsonpath/jsonval"

// ExpressionType is RFC 9535's TypeSystem: the three types a filter
// expression or function parameter/return value may have.
type ExpressionType uint8

const (
	// LogicalKind is the type of a test-expression or comparison: true or
	// false.
	LogicalKind ExpressionType = iota + 1
	// ValueKind is the type of a single JSON value (a literal, a singular
	// query result, or a function returning ValueKind).
	ValueKind
	// NodesKind is the type of a node list produced by a (possibly
	// non-singular) query.
	NodesKind
)

// String names the ExpressionType, mirroring the GLOSSARY's
// Logical/Value/Nodes naming.
func (t ExpressionType) String() string {
	switch t {
	case LogicalKind:
		return "Logical"
	case ValueKind:
		return "Value"
	case NodesKind:
		return "Nodes"
	default:
		return "unknown"
	}
}

// ConvertsTo reports whether a value of type t may be supplied in a
// parameter or comparison position declared as want: any query may feed a
// NodesKind slot, and a LogicalKind slot admits any expression. It judges
// by type alone, so NodesKind never converts to ValueKind here; whether a
// singular query may feed a ValueKind slot depends on the query and is
// decided by the caller.
func (t ExpressionType) ConvertsTo(want ExpressionType) bool {
	if t == want {
		return true
	}
	switch want {
	case LogicalKind:
		// Any expression can be tested for truthiness.
		return true
	case NodesKind:
		return false
	case ValueKind:
		return false
	default:
		return false
	}
}

// FunctionSignature declares a function extension's parameter types and
// return type, consulted by the parser for arity/type checking and by the
// evaluator for argument coercion.
type FunctionSignature struct {
	Params []ExpressionType
	Return ExpressionType
}

// Callable is the implementation of a registered function extension. args
// are already coerced to the declared parameter types by the evaluator.
type Callable func(args []FilterResult) FilterResult

// FilterResult is the runtime value of an evaluated filter (sub)expression:
// one of Value, Nodes, Logical, or Nothing.
type FilterResult interface {
	isFilterResult()
	// Type reports the FilterResult's ExpressionType.
	Type() ExpressionType
}

// Value wraps a single JSON value (including booleans, strings, numbers,
// and null) produced by a literal or a ValueKind-returning expression.
type Value struct {
	V jsonval.Value
}

func (Value) isFilterResult()     {}
func (Value) Type() ExpressionType { return ValueKind }

// Nodes wraps the node list produced by a relative or root query used as a
// filter sub-expression.
type Nodes struct {
	List NodeList
}

func (Nodes) isFilterResult()     {}
func (Nodes) Type() ExpressionType { return NodesKind }

// nothingResult is the distinguished "no value" result: produced by
// ValueKind-returning functions with nothing to return, or by CurrentKey
// outside an object-member context. It is distinct from both JSON null and
// an empty node list, per RFC 9535 §2.4.2.
type nothingResult struct{}

func (nothingResult) isFilterResult()     {}
func (nothingResult) Type() ExpressionType { return ValueKind }

// Nothing is the engine's built-in Nothing sentinel. It is fixed: no Engine
// option substitutes a host-provided sentinel, and the AST and evaluator
// always produce and compare against this one.
var Nothing FilterResult = nothingResult{}

// IsNothing reports whether fr is the Nothing sentinel.
func IsNothing(fr FilterResult) bool {
	_, ok := fr.(nothingResult)
	return ok
}

// Logical is a boolean FilterResult, returned by Not, Logical
// (And/Or), and Comparison expressions, and by LogicalKind-returning
// functions.
type Logical bool

func (Logical) isFilterResult()     {}
func (Logical) Type() ExpressionType { return LogicalKind }

// Truthy implements RFC 9535 §9.3's truthiness relation, used to coerce any
// FilterResult to a boolean for Not, Logical, and standalone test-expression
// positions.
func Truthy(fr FilterResult) bool {
	switch v := fr.(type) {
	case nothingResult:
		return false
	case Nodes:
		return len(v.List) > 0
	case Logical:
		return bool(v)
	case Value:
		if v.V == nil {
			return false
		}
		return v.V.Truthy()
	default:
		return false
	}
}

// AsValue unwraps fr to a single jsonval.Value for comparison, or ok=false
// if fr is Nothing or a Nodes result that is not length-1 (such a Nodes
// result becomes Nothing for comparison purposes, per SPEC_FULL.md §4.7).
func AsValue(fr FilterResult) (jsonval.Value, bool) {
	switch v := fr.(type) {
	case Value:
		return v.V, true
	case Nodes:
		if len(v.List) == 1 {
			return v.List[0].Value, true
		}
		return nil, false
	default:
		return nil, false
	}
}
