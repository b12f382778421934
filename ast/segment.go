package ast

import (
	"strings"

	"github.com/padparadscha/jsonpath/jsonval"
)

// SegmentKind distinguishes a child segment ([...]) from a descendant
// segment (..[...]).
type SegmentKind uint8

const (
	ChildSegment SegmentKind = iota + 1
	DescendantSegment
)

// Segment is one step of a Query: a bracketed (or shorthand) list of
// Selectors, applied either to each input node directly (ChildSegment) or to
// each input node and all of its descendants, visited pre-order
// (DescendantSegment).
type Segment struct {
	selectors []Selector
	kind      SegmentKind
}

// Child returns a child segment selecting with sel.
func Child(sel ...Selector) *Segment {
	return &Segment{selectors: sel, kind: ChildSegment}
}

// Descendant returns a recursive-descent segment selecting with sel.
func Descendant(sel ...Selector) *Segment {
	return &Segment{selectors: sel, kind: DescendantSegment}
}

// Selectors returns s's selectors.
func (s *Segment) Selectors() []Selector { return s.selectors }

// IsDescendant reports whether s is a recursive-descent segment.
func (s *Segment) IsDescendant() bool { return s.kind == DescendantSegment }

// isSingular reports whether s is a child segment with exactly one Name or
// Index selector.
func (s *Segment) isSingular() bool {
	if s.kind != ChildSegment || len(s.selectors) != 1 {
		return false
	}
	switch s.selectors[0].(type) {
	case Name, Index:
		return true
	default:
		return false
	}
}

// String renders s in RFC 9535 bracketed syntax.
func (s *Segment) String() string {
	buf := new(strings.Builder)
	if s.kind == DescendantSegment {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	for i, sel := range s.selectors {
		if i > 0 {
			buf.WriteString(", ")
		}
		sel.writeTo(buf)
	}
	buf.WriteByte(']')
	return buf.String()
}

// resolve applies s to every node in nodes, concatenating the results in
// order.
func (s *Segment) resolve(nodes NodeList, root jsonval.Value) NodeList {
	var out NodeList
	for _, n := range nodes {
		if s.kind == ChildSegment {
			out = append(out, s.selectFrom(n, root)...)
		} else {
			s.visit(n, root, &out)
		}
	}
	return out
}

// selectFrom applies each of s's selectors to n, in order, concatenating
// their results.
func (s *Segment) selectFrom(n Node, root jsonval.Value) NodeList {
	var out NodeList
	for _, sel := range s.selectors {
		out = append(out, sel.Select(n, root)...)
	}
	return out
}

// visit implements the pre-order recursive-descent traversal: apply s's
// selectors to n, then recurse into n's children (array elements in index
// order, object members in insertion order).
func (s *Segment) visit(n Node, root jsonval.Value, out *NodeList) {
	*out = append(*out, s.selectFrom(n, root)...)
	switch n.Value.Kind() {
	case jsonval.KindArray:
		for i := 0; i < n.Value.Len(); i++ {
			child, ok := n.Value.Index(i)
			if !ok {
				continue
			}
			s.visit(Node{
				Value:    child,
				Location: n.Location.Append(IndexElement(i)),
				HasKey:   true,
				Key:      i,
			}, root, out)
		}
	case jsonval.KindObject:
		for k, v := range n.Value.Entries() {
			s.visit(Node{
				Value:    v,
				Location: n.Location.Append(NameElement(k)),
				HasKey:   true,
				Key:      k,
			}, root, out)
		}
	}
}
