package jsonpath

import (
	"errors"
	"fmt"

	"github.com/padparadscha/jsonpath/parser"
)

// ErrSyntax wraps a JSONPath query containing a syntax error.
var ErrSyntax = parser.ErrSyntax

// ErrType wraps a JSONPath query containing a type error: a comparison
// against a non-singular query, or a function used somewhere its declared
// return type does not fit.
var ErrType = parser.ErrType

// ErrName wraps a JSONPath query referencing an unregistered function.
var ErrName = parser.ErrName

// ErrExt wraps a JSONPath query using a non-standard extension while
// Strict is set.
var ErrExt = parser.ErrExt

// Kind classifies a JSONPathError.
type Kind uint8

const (
	// SyntaxErrorKind marks malformed query syntax.
	SyntaxErrorKind Kind = iota + 1
	// TypeErrorKind marks a query that parses but violates RFC 9535's type
	// system.
	TypeErrorKind
	// NameErrorKind marks a reference to an unregistered function.
	NameErrorKind
	// ExtErrorKind marks use of a non-standard extension while parsing in
	// strict mode.
	ExtErrorKind
)

func (k Kind) String() string {
	switch k {
	case SyntaxErrorKind:
		return "syntax error"
	case TypeErrorKind:
		return "type error"
	case NameErrorKind:
		return "name error"
	case ExtErrorKind:
		return "extension error"
	default:
		return "error"
	}
}

// JSONPathError is returned by Compile and Find when a query fails to parse. It
// preserves the underlying sentinel error for errors.Is and adds the Kind
// classification.
type JSONPathError struct {
	Kind Kind
	err  error
}

func (e *JSONPathError) Error() string {
	return fmt.Sprintf("jsonpath: %s: %s", e.Kind, e.err)
}

func (e *JSONPathError) Unwrap() error { return e.err }

// wrapParseError classifies err (as returned by parser.Parse) into a
// JSONPathError.
func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	kind := SyntaxErrorKind
	switch {
	case errors.Is(err, parser.ErrType):
		kind = TypeErrorKind
	case errors.Is(err, parser.ErrName):
		kind = NameErrorKind
	case errors.Is(err, parser.ErrExt):
		kind = ExtErrorKind
	case errors.Is(err, parser.ErrSyntax):
		kind = SyntaxErrorKind
	}
	return &JSONPathError{Kind: kind, err: err}
}
