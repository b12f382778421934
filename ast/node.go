// Package ast defines the typed JSONPath abstract syntax tree (queries,
// segments, selectors, and filter expressions) and the evaluator logic
// attached to it as methods, following the convention of putting
// Select-style evaluation directly on the AST node types rather than in a
// separate visitor.
package ast

import (
	"strconv"
	"strings"

	"github.com/padparadscha/jsonpath/jsonval"
)

// PathElement is one step of a Location: either a member name, an array
// index, or (for the non-standard key selectors) a key reference.
type PathElement interface {
	writeNormalizedTo(buf *strings.Builder)
}

// NameElement is a member-name step in a Location.
type NameElement string

func (n NameElement) writeNormalizedTo(buf *strings.Builder) {
	buf.WriteString("['")
	writeEscapedName(buf, string(n))
	buf.WriteString("']")
}

// IndexElement is an array-index step in a Location.
type IndexElement int

func (i IndexElement) writeNormalizedTo(buf *strings.Builder) {
	buf.WriteByte('[')
	buf.WriteString(strconv.Itoa(int(i)))
	buf.WriteByte(']')
}

// KeyElement is a step produced by a non-standard key selector (~name, ~, ~?):
// the located value IS the key string. Its normalized-path form, per
// SPEC_FULL.md §6.3, is [~'name'].
type KeyElement string

func (k KeyElement) writeNormalizedTo(buf *strings.Builder) {
	buf.WriteString("[~'")
	writeEscapedName(buf, string(k))
	buf.WriteString("']")
}

// writeEscapedName writes s to buf escaped per RFC 9535 §2.7's
// single-quoted member-name escaping rules.
func writeEscapedName(buf *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\'':
			buf.WriteString(`\'`)
		case '\\':
			buf.WriteString(`\\`)
		default:
			buf.WriteRune(r)
		}
	}
}

// NormalizedPath is the canonical $['a'][0]... path string's structured
// form, produced by flattening a Location.
type NormalizedPath []PathElement

// String renders np as RFC 9535's normalized path string.
func (np NormalizedPath) String() string {
	buf := new(strings.Builder)
	buf.WriteByte('$')
	for _, e := range np {
		e.writeNormalizedTo(buf)
	}
	return buf.String()
}

// location is an immutable singly-linked path from the root, so that
// sibling branches explored during evaluation share their ancestor chain
// instead of each copying it.
type location struct {
	parent *location
	elem   PathElement
}

// Location identifies the position of a Node relative to the document root.
// The nil *Location denotes the root itself.
type Location struct {
	tail *location
}

// Append returns a new Location extending loc with elem. loc is not
// modified, so callers may branch from the same Location repeatedly.
func (loc *Location) Append(elem PathElement) *Location {
	parent := (*location)(nil)
	if loc != nil {
		parent = loc.tail
	}
	return &Location{tail: &location{parent: parent, elem: elem}}
}

// Path flattens loc into a NormalizedPath, root first.
func (loc *Location) Path() NormalizedPath {
	if loc == nil {
		return nil
	}
	var elems []PathElement
	for n := loc.tail; n != nil; n = n.parent {
		elems = append(elems, n.elem)
	}
	for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
		elems[i], elems[j] = elems[j], elems[i]
	}
	return NormalizedPath(elems)
}

// String renders loc as a normalized path string.
func (loc *Location) String() string {
	return loc.Path().String()
}

// Node is a single located value produced by resolving a Query: the value
// itself, its Location from the root, and, when it was visited while
// iterating an object's members (or an array's elements), the key under
// which it was found.
type Node struct {
	Value    jsonval.Value
	Location *Location
	HasKey   bool
	Key      any // string for object members, int for array elements
}

// NodeList is an ordered sequence of Node values. Duplicates are permitted;
// order is the deterministic traversal order defined in SPEC_FULL.md §4.5.
type NodeList []Node

// Values returns just the values of nl, in order.
func (nl NodeList) Values() []jsonval.Value {
	vals := make([]jsonval.Value, len(nl))
	for i, n := range nl {
		vals[i] = n.Value
	}
	return vals
}
