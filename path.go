// Package jsonpath implements [RFC 9535] JSONPath query parsing and
// evaluation, plus a handful of non-standard extensions for addressing
// object keys directly: #, ~, ~?, and the ~name/~'name' shorthand.
//
// [RFC 9535]: https://www.rfc-editor.org/rfc/rfc9535.html
package jsonpath

import (
	"github.com/padparadscha/jsonpath/ast"
	"github.com/padparadscha/jsonpath/jsonval"
)

// Path is a compiled JSONPath query, safe for concurrent use and for
// repeated evaluation against different documents.
type Path struct {
	query *ast.Query
}

// String renders p back to its canonical RFC 9535 query syntax.
func (p *Path) String() string { return p.query.String() }

// MarshalText implements encoding.TextMarshaler.
func (p *Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Select runs p against root and returns the matched values, in the
// deterministic order defined by RFC 9535 §2.3-2.5 (and, for the
// non-standard recursive key selectors, document order of discovery).
func (p *Path) Select(root jsonval.Value) []jsonval.Value {
	return p.query.Resolve(root).Values()
}

// Located is a matched value together with its normalized path from the
// document root.
type Located struct {
	Path  ast.NormalizedPath
	Value jsonval.Value
}

// SelectLocated runs p against root and returns each match along with its
// normalized path.
func (p *Path) SelectLocated(root jsonval.Value) []Located {
	nodes := p.query.Resolve(root)
	out := make([]Located, len(nodes))
	for i, n := range nodes {
		out[i] = Located{Path: n.Location.Path(), Value: n.Value}
	}
	return out
}

// IsSingular reports whether p is guaranteed to select at most one node.
func (p *Path) IsSingular() bool { return p.query.IsSingular() }
