package ast

import (
	"strings"

	"github.com/padparadscha/jsonpath/jsonval"
)

// Query is an ordered sequence of Segments: either the root query ($) or a
// relative query (@) used inside a filter expression. A zero-segment Query
// denotes the singleton root/current value itself.
type Query struct {
	segments []*Segment
	root     bool
}

// NewQuery returns a Query over segments, rooted at $ if root is true and at
// @ (relative) otherwise.
func NewQuery(root bool, segments []*Segment) *Query {
	return &Query{segments: segments, root: root}
}

// Segments returns q's segments.
func (q *Query) Segments() []*Segment { return q.segments }

// IsRoot reports whether q is a root ($) query, as opposed to a relative
// (@) query.
func (q *Query) IsRoot() bool { return q.root }

// String renders q in RFC 9535 syntax.
func (q *Query) String() string {
	buf := new(strings.Builder)
	if q.root {
		buf.WriteByte('$')
	} else {
		buf.WriteByte('@')
	}
	for _, s := range q.segments {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Resolve runs q against root, the document root. This is the entry point
// for a compiled top-level query.
func (q *Query) Resolve(root jsonval.Value) NodeList {
	return q.resolveFrom(root, root)
}

// resolveFrom runs q starting from current if q is relative (@), or from
// root if q is a root query ($); root is always available for RootQuery
// filter sub-expressions regardless of which one q itself is.
func (q *Query) resolveFrom(current, root jsonval.Value) NodeList {
	start := current
	if q.root {
		start = root
	}
	nodes := NodeList{{Value: start}}
	for _, seg := range q.segments {
		nodes = seg.resolve(nodes, root)
	}
	return nodes
}

// IsSingular reports whether q is provably guaranteed to resolve to at most
// one node: every segment is a child segment containing exactly one Name or
// Index selector.
func (q *Query) IsSingular() bool {
	for _, s := range q.segments {
		if !s.isSingular() {
			return false
		}
	}
	return true
}

// Singular converts q into a SingularQuery expression usable as a filter
// comparable, or returns nil if q is not singular.
func (q *Query) Singular() *SingularQuery {
	if !q.IsSingular() {
		return nil
	}
	sels := make([]Selector, len(q.segments))
	for i, s := range q.segments {
		sels[i] = s.selectors[0]
	}
	return &SingularQuery{root: q.root, selectors: sels}
}

// SingularQuery is a query known at parse time to select at most one node:
// every step is a single Name or Index selector. It implements FilterExpr
// directly, short-circuiting the general segment machinery, and is what the
// parser emits for a query used in a ValueKind-requiring comparable
// position.
type SingularQuery struct {
	root      bool
	selectors []Selector
}

// Evaluate walks ctx.Current (or ctx.Root, if sq is rooted) one step at a
// time, stopping as soon as a step fails to match, and returns the result
// as a single-element (or empty) Nodes result.
func (sq *SingularQuery) Evaluate(ctx *FilterContext) FilterResult {
	cur := ctx.Current
	if sq.root {
		cur = ctx.Root
	}
	n := Node{Value: cur}
	for _, sel := range sq.selectors {
		matches := sel.Select(n, ctx.Root)
		if len(matches) == 0 {
			return Nodes{}
		}
		n = matches[0]
	}
	return Nodes{List: NodeList{n}}
}

func (sq *SingularQuery) writeTo(buf *strings.Builder) {
	if sq.root {
		buf.WriteByte('$')
	} else {
		buf.WriteByte('@')
	}
	for _, sel := range sq.selectors {
		buf.WriteByte('[')
		sel.writeTo(buf)
		buf.WriteByte(']')
	}
}

func (sq *SingularQuery) String() string { return exprString(sq) }
