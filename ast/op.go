package ast

//go:generate stringer -linecomment -output op_string.go -type CompOp

import (
	"strings"

	"github.com/padparadscha/jsonpath/jsonval"
)

// CompOp is a filter-expression comparison operator.
type CompOp uint8

//revive:disable:exported
const (
	Eq CompOp = iota + 1 // ==
	Ne                    // !=
	Lt                    // <
	Le                    // <=
	Gt                    // >
	Ge                    // >=
)

// writeTo writes op's source-syntax spelling to buf.
func (op CompOp) writeTo(buf *strings.Builder) {
	buf.WriteString(op.String())
}

// resolveOperand reduces a comparison operand's FilterResult to either a
// jsonval.Value, or nothing=true when the operand is the Nothing sentinel, a
// zero-length Nodes result, or (defensively) a multi-node Nodes result the
// type-checker should already have rejected.
func resolveOperand(fr FilterResult) (v jsonval.Value, nothing bool) {
	switch r := fr.(type) {
	case Value:
		return r.V, false
	case Nodes:
		if len(r.List) == 1 {
			return r.List[0].Value, false
		}
		return nil, true
	default:
		return nil, true
	}
}

// Test evaluates the comparison op between left and right per RFC 9535
// §2.3.5: a length-1 Nodes result unwraps to its single value; a
// zero-length (or, defensively, multi-element) Nodes result becomes
// Nothing; Nothing equals only Nothing; ordering comparisons require both
// operands to be numbers or both to be strings, and are otherwise false.
func (op CompOp) Test(left, right FilterResult) bool {
	lv, lNothing := resolveOperand(left)
	rv, rNothing := resolveOperand(right)

	if lNothing || rNothing {
		eq := lNothing && rNothing
		switch op {
		case Eq:
			return eq
		case Ne:
			return !eq
		default:
			return false
		}
	}

	switch op {
	case Eq:
		return valuesEqual(lv, rv)
	case Ne:
		return !valuesEqual(lv, rv)
	case Lt:
		return sameOrderableType(lv, rv) && valueLess(lv, rv)
	case Gt:
		return sameOrderableType(lv, rv) && !valueLess(lv, rv) && !valuesEqual(lv, rv)
	case Le:
		return sameOrderableType(lv, rv) && (valueLess(lv, rv) || valuesEqual(lv, rv))
	case Ge:
		return sameOrderableType(lv, rv) && !valueLess(lv, rv)
	default:
		return false
	}
}

// valuesEqual implements RFC 9535 §2.3.5's equality relation: numbers
// compare numerically regardless of int/float origin, strings
// lexicographically, booleans and null only equal themselves, and arrays
// and objects compare structurally (object equality does not consider
// member order, only membership).
func valuesEqual(left, right jsonval.Value) bool {
	return left.Equal(right)
}

// sameOrderableType reports whether left and right are both numbers or both
// strings — the only two families RFC 9535 defines an ordering for.
func sameOrderableType(left, right jsonval.Value) bool {
	switch left.Kind() {
	case jsonval.KindNumber:
		return right.Kind() == jsonval.KindNumber
	case jsonval.KindString:
		return right.Kind() == jsonval.KindString
	default:
		return false
	}
}

// valueLess compares two same-orderable-family values.
func valueLess(left, right jsonval.Value) bool {
	switch left.Kind() {
	case jsonval.KindNumber:
		return left.Number() < right.Number()
	case jsonval.KindString:
		return left.String() < right.String()
	default:
		return false
	}
}
