package ast

import (
	"strconv"
	"strings"

	"github.com/padparadscha/jsonpath/jsonval"
)

// Selector is a single bracketed (or shorthand) step within a segment: a
// name, index, slice, wildcard, filter, or one of the non-standard key
// selectors.
type Selector interface {
	// Select applies the selector to n and returns the matched child nodes,
	// each carrying a Location extended from n.Location.
	Select(n Node, root jsonval.Value) NodeList
	writeTo(buf *strings.Builder)
	String() string
}

func selectorString(write func(*strings.Builder)) string {
	buf := new(strings.Builder)
	write(buf)
	return buf.String()
}

// Name selects the member of an object with the given name. Applied to
// anything but an object, it selects nothing.
type Name string

func (sel Name) Select(n Node, root jsonval.Value) NodeList {
	if n.Value.Kind() != jsonval.KindObject {
		return nil
	}
	v, ok := n.Value.Member(string(sel))
	if !ok {
		return nil
	}
	return NodeList{{
		Value:    v,
		Location: n.Location.Append(NameElement(sel)),
		HasKey:   true,
		Key:      string(sel),
	}}
}

func (sel Name) writeTo(buf *strings.Builder) {
	buf.WriteByte('\'')
	writeEscapedName(buf, string(sel))
	buf.WriteByte('\'')
}

func (sel Name) String() string { return selectorString(sel.writeTo) }

// Index selects the array element at the given index. A negative index
// counts from the end of the array (-1 is the last element). Applied to
// anything but an array, or to an out-of-range index, it selects nothing.
type Index int

func (sel Index) Select(n Node, root jsonval.Value) NodeList {
	if n.Value.Kind() != jsonval.KindArray {
		return nil
	}
	i := int(sel)
	L := n.Value.Len()
	if i < 0 {
		i += L
	}
	if i < 0 || i >= L {
		return nil
	}
	v, ok := n.Value.Index(i)
	if !ok {
		return nil
	}
	return NodeList{{
		Value:    v,
		Location: n.Location.Append(IndexElement(i)),
		HasKey:   true,
		Key:      i,
	}}
}

func (sel Index) writeTo(buf *strings.Builder) {
	buf.WriteString(strconv.Itoa(int(sel)))
}

func (sel Index) String() string { return selectorString(sel.writeTo) }

// Slice selects a range of array elements, per RFC 9535 §2.3.4. A nil bound
// uses the default for its position and Step's sign; Step defaults to 1 and
// must not be 0 (a zero step selects nothing).
type Slice struct {
	Start, Stop, Step *int64
}

func (sel Slice) Select(n Node, root jsonval.Value) NodeList {
	if n.Value.Kind() != jsonval.KindArray {
		return nil
	}
	L := int64(n.Value.Len())
	step := int64(1)
	if sel.Step != nil {
		step = *sel.Step
	}
	if step == 0 {
		return nil
	}

	var startEff, stopEff int64
	if step < 0 {
		startEff = L - 1
	} else {
		startEff = 0
	}
	if sel.Start != nil {
		st := *sel.Start
		if st < 0 {
			if step < 0 {
				startEff = max(L+st, -1)
			} else {
				startEff = max(L+st, 0)
			}
		} else {
			if step < 0 {
				startEff = min(st, L-1)
			} else {
				startEff = min(st, L)
			}
		}
	}

	if step < 0 {
		stopEff = -1
	} else {
		stopEff = L
	}
	if sel.Stop != nil {
		sp := *sel.Stop
		if sp < 0 {
			stopEff = max(L+sp, -1)
		} else {
			stopEff = min(sp, L)
		}
	}

	var out NodeList
	if step > 0 {
		for i := startEff; i < stopEff; i += step {
			out = append(out, sel.node(n, i))
		}
	} else {
		for i := startEff; i > stopEff; i += step {
			out = append(out, sel.node(n, i))
		}
	}
	return out
}

func (sel Slice) node(n Node, i int64) Node {
	v, _ := n.Value.Index(int(i))
	return Node{
		Value:    v,
		Location: n.Location.Append(IndexElement(int(i))),
		HasKey:   true,
		Key:      int(i),
	}
}

func (sel Slice) writeTo(buf *strings.Builder) {
	if sel.Start != nil {
		buf.WriteString(strconv.FormatInt(*sel.Start, 10))
	}
	buf.WriteByte(':')
	if sel.Stop != nil {
		buf.WriteString(strconv.FormatInt(*sel.Stop, 10))
	}
	if sel.Step != nil {
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(*sel.Step, 10))
	}
}

func (sel Slice) String() string { return selectorString(sel.writeTo) }

// Wild is the wildcard selector (*): every array element in index order, or
// every object member in insertion order.
type Wild struct{}

func (Wild) Select(n Node, root jsonval.Value) NodeList {
	var out NodeList
	switch n.Value.Kind() {
	case jsonval.KindArray:
		for i := 0; i < n.Value.Len(); i++ {
			v, ok := n.Value.Index(i)
			if !ok {
				continue
			}
			out = append(out, Node{
				Value:    v,
				Location: n.Location.Append(IndexElement(i)),
				HasKey:   true,
				Key:      i,
			})
		}
	case jsonval.KindObject:
		for k, v := range n.Value.Entries() {
			out = append(out, Node{
				Value:    v,
				Location: n.Location.Append(NameElement(k)),
				HasKey:   true,
				Key:      k,
			})
		}
	}
	return out
}

func (Wild) writeTo(buf *strings.Builder) { buf.WriteByte('*') }
func (Wild) String() string               { return "*" }

// Filter selects every array element or object member (in the same order as
// Wild) for which Expr is truthy, evaluated with Current set to the
// candidate and Root set to the document root.
type Filter struct {
	Expr FilterExpr
}

func (sel Filter) Select(n Node, root jsonval.Value) NodeList {
	candidates := Wild{}.Select(n, root)
	var out NodeList
	for _, c := range candidates {
		ctx := &FilterContext{Root: root, Current: c.Value, HasKey: c.HasKey, CurrentKey: c.Key}
		if Truthy(sel.Expr.Evaluate(ctx)) {
			out = append(out, c)
		}
	}
	return out
}

func (sel Filter) writeTo(buf *strings.Builder) {
	buf.WriteByte('?')
	sel.Expr.writeTo(buf)
}

func (sel Filter) String() string { return selectorString(sel.writeTo) }

// Key is the non-standard ~name / ~'name' / ~"name" selector: if the input
// is an object with a member named name, it selects the KEY ITSELF (as a
// jsonval.String), not the member's value.
type Key string

func (sel Key) Select(n Node, root jsonval.Value) NodeList {
	if n.Value.Kind() != jsonval.KindObject {
		return nil
	}
	if _, ok := n.Value.Member(string(sel)); !ok {
		return nil
	}
	return NodeList{{
		Value:    jsonval.String(sel),
		Location: n.Location.Append(KeyElement(sel)),
		HasKey:   true,
		Key:      string(sel),
	}}
}

func (sel Key) writeTo(buf *strings.Builder) {
	buf.WriteString("~'")
	writeEscapedName(buf, string(sel))
	buf.WriteString("'")
}

func (sel Key) String() string { return selectorString(sel.writeTo) }

// Keys is the non-standard ~ selector: every member name of an object,
// in insertion order, each as its own located value.
type Keys struct{}

func (Keys) Select(n Node, root jsonval.Value) NodeList {
	if n.Value.Kind() != jsonval.KindObject {
		return nil
	}
	var out NodeList
	for k := range n.Value.Keys() {
		out = append(out, Node{
			Value:    jsonval.String(k),
			Location: n.Location.Append(KeyElement(k)),
			HasKey:   true,
			Key:      k,
		})
	}
	return out
}

func (Keys) writeTo(buf *strings.Builder) { buf.WriteByte('~') }
func (Keys) String() string               { return "~" }

// KeysFilter is the non-standard ~?expr selector: like Filter, but Expr is
// tested against each object member's VALUE while the result emitted is the
// member's KEY.
type KeysFilter struct {
	Expr FilterExpr
}

func (sel KeysFilter) Select(n Node, root jsonval.Value) NodeList {
	if n.Value.Kind() != jsonval.KindObject {
		return nil
	}
	var out NodeList
	for k, v := range n.Value.Entries() {
		ctx := &FilterContext{Root: root, Current: v, HasKey: true, CurrentKey: k}
		if Truthy(sel.Expr.Evaluate(ctx)) {
			out = append(out, Node{
				Value:    jsonval.String(k),
				Location: n.Location.Append(KeyElement(k)),
				HasKey:   true,
				Key:      k,
			})
		}
	}
	return out
}

func (sel KeysFilter) writeTo(buf *strings.Builder) {
	buf.WriteString("~?")
	sel.Expr.writeTo(buf)
}

func (sel KeysFilter) String() string { return selectorString(sel.writeTo) }
