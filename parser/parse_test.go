package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padparadscha/jsonpath/registry"
)

func TestParseValidQueries(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, path := range []string{
		"$",
		"$.a",
		"$.a.b",
		"$['a']",
		"$[0]",
		"$[-1]",
		"$[0:2]",
		"$[::2]",
		"$[*]",
		"$.*",
		"$..a",
		"$..*",
		"$..[0]",
		"$[0,1]",
		"$['a','b']",
		"$[?@.a]",
		"$[?@.a == 1]",
		"$[?@.a == 'x']",
		"$[?@.a != 1]",
		"$[?@.a < 1 && @.b > 2]",
		"$[?@.a < 1 || @.b > 2]",
		"$[?!@.a]",
		"$[?length(@.a) > 1]",
		"$[?count(@.*) == 2]",
		"$[?match(@.a, 'abc')]",
		"$[?search(@.a, 'abc')]",
		"$[?value(@.a) == 1]",
		"$[?@.a == @.b]",
		"$..[?@.a > 1]",
		"$[?(@.a > 1)]",
		"$[?@['a']]",
	} {
		_, err := Parse(registry.New(), path, Options{})
		a.NoErrorf(err, path)
	}
}

func TestParseExtensionsRequireNonStrict(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for _, path := range []string{"$.~", "$.~name", "$[~]", "$[~'name']", "$[~?@.a]", "$[?@.a == #]"} {
		_, err := Parse(registry.New(), path, Options{})
		a.NoErrorf(err, path)

		_, err = Parse(registry.New(), path, Options{Strict: true})
		r.Errorf(err, path)
		a.Truef(errors.Is(err, ErrExt), path)
	}
}

func TestParseRootMustLeadQuery(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "a.b", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrSyntax))
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$.a garbage", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrSyntax))
}

func TestParseRejectsUnknownFunction(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[?nope(@.a)]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrName))
}

func TestParseRejectsWrongArity(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[?length(@.a, @.b)]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrType))
}

func TestParseRejectsNonSingularComparison(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[?@.* == 1]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrType))
}

func TestParseRejectsNonSingularQueryAsValueArg(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[?length(@.*)==1]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrType))
}

func TestParseRejectsLiteralAsNodesArg(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[?count(1)==0]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrType))
}

func TestParseRejectsNonLogicalFunctionAsStandaloneFilter(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[?length(@.a)]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrType))
}

func TestParseRejectsLeadingZero(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[01]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrSyntax))
}

func TestParseRejectsNegativeZeroIndex(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[-0]", Options{})
	a.Error(err)
	a.True(errors.Is(err, ErrSyntax))
}

func TestParseRoundTripsToString(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	for _, path := range []string{"$['a']", "$[0]", "$[*]", "$..['a']"} {
		q, err := Parse(registry.New(), path, Options{})
		a.NoError(err)
		a.Equal(path, q.String())
	}
}

func TestParseIndexRangeOption(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	_, err := Parse(registry.New(), "$[100]", Options{MaxIndexMagnitude: 10})
	a.Error(err)
	a.True(errors.Is(err, ErrSyntax))

	_, err = Parse(registry.New(), "$[5]", Options{MaxIndexMagnitude: 10})
	a.NoError(err)
}
