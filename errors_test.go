package jsonpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal("syntax error", SyntaxErrorKind.String())
	a.Equal("type error", TypeErrorKind.String())
	a.Equal("name error", NameErrorKind.String())
	a.Equal("extension error", ExtErrorKind.String())
	a.Equal("error", Kind(0).String())
}

func TestJSONPathErrorClassification(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, tc := range []struct {
		name string
		path string
		kind Kind
		err  error
	}{
		{name: "syntax", path: "$[", kind: SyntaxErrorKind, err: ErrSyntax},
		{name: "type_non_singular_compare", path: "$[?@.* == 1]", kind: TypeErrorKind, err: ErrType},
		{name: "name_unknown_function", path: "$[?nope(@.a)]", kind: NameErrorKind, err: ErrName},
		{name: "extension_rejected_by_default", path: "$.~name", kind: ExtErrorKind, err: ErrExt},
	} {
		_, err := Compile(tc.path)

		var jerr *JSONPathError
		a.Truef(errors.As(err, &jerr), tc.name)
		a.Equalf(tc.kind, jerr.Kind, tc.name)
		a.Truef(errors.Is(err, tc.err), tc.name)
		a.Containsf(jerr.Error(), "jsonpath: ", tc.name)
	}
}

func TestWrapParseErrorNil(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Nil(wrapParseError(nil))
}
