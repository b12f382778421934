package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padparadscha/jsonpath/jsonval"
)

func TestQueryResolveChildChain(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	root := obj("store", obj("book", jsonval.Array{
		obj("title", jsonval.String("A")),
		obj("title", jsonval.String("B")),
	}))

	q := NewQuery(true, []*Segment{
		Child(Name("store")),
		Child(Name("book")),
		Child(Wild{}),
		Child(Name("title")),
	})

	values := q.Resolve(root).Values()
	a.Equal([]jsonval.Value{jsonval.String("A"), jsonval.String("B")}, values)
}

func TestQueryString(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	q := NewQuery(true, []*Segment{Child(Name("a")), Descendant(Wild{})})
	a.Equal("$['a']..[*]", q.String())

	rel := NewQuery(false, []*Segment{Child(Index(0))})
	a.Equal("@[0]", rel.String())
}

func TestQueryIsSingular(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	singular := NewQuery(true, []*Segment{Child(Name("a")), Child(Index(0))})
	a.True(singular.IsSingular())
	sq := singular.Singular()
	a.NotNil(sq)

	nonSingular := NewQuery(true, []*Segment{Child(Wild{})})
	a.False(nonSingular.IsSingular())
	a.Nil(nonSingular.Singular())
}

func TestSingularQueryEvaluate(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	root := obj("a", jsonval.Array{jsonval.Number(1), jsonval.Number(2)})
	q := NewQuery(true, []*Segment{Child(Name("a")), Child(Index(1))})
	sq := q.Singular()
	a.NotNil(sq)

	ctx := &FilterContext{Root: root, Current: root}
	result := sq.Evaluate(ctx)
	nodes, ok := result.(Nodes)
	a.True(ok)
	a.Len(nodes.List, 1)
	a.Equal(jsonval.Number(2), nodes.List[0].Value)
}

func TestSingularQueryEvaluateMiss(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	root := obj("a", jsonval.Number(1))
	q := NewQuery(true, []*Segment{Child(Name("missing")), Child(Index(0))})
	sq := q.Singular()
	a.NotNil(sq)

	ctx := &FilterContext{Root: root, Current: root}
	result := sq.Evaluate(ctx)
	nodes, ok := result.(Nodes)
	a.True(ok)
	a.Empty(nodes.List)
}
