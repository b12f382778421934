// Package parser parses RFC 9535 JSONPath query text -- plus the
// non-standard #, ~, ~?, and key-shorthand extensions -- into an *ast.Query.
// Most callers will use package jsonpath instead of this package directly.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/padparadscha/jsonpath/ast"
	"github.com/padparadscha/jsonpath/internal/lexer"
	"github.com/padparadscha/jsonpath/jsonval"
	"github.com/padparadscha/jsonpath/registry"
)

// ErrSyntax is wrapped by errors describing malformed query syntax.
var ErrSyntax = errors.New("jsonpath: syntax error")

// ErrType is wrapped by errors describing a type mismatch caught during
// parsing: a non-singular query compared, or a function used where its
// declared return type does not fit.
var ErrType = errors.New("jsonpath: type error")

// ErrName is wrapped by errors describing a reference to an unregistered
// function.
var ErrName = errors.New("jsonpath: name error")

// ErrExt is wrapped by errors describing use of a non-standard extension
// (#, ~, ~?, key shorthand) while Options.Strict is set.
var ErrExt = errors.New("jsonpath: extension error")

// Options configures parsing.
type Options struct {
	// Strict disables the #, ~, ~?, and key-shorthand extensions, accepting
	// only RFC 9535 syntax.
	Strict bool
	// MaxIndexMagnitude bounds the magnitude of index and slice-step
	// literals. Zero selects the RFC 9535 default, 2^53-1.
	MaxIndexMagnitude int64
}

const defaultMaxIndexMagnitude = 1<<53 - 1

func (o Options) maxIndex() int64 {
	if o.MaxIndexMagnitude == 0 {
		return defaultMaxIndexMagnitude
	}
	return o.MaxIndexMagnitude
}

type parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	reg  *registry.Registry
	opts Options
}

// Parse parses path against reg's function extensions and returns the
// resulting query tree, or an error wrapping one of ErrSyntax, ErrType,
// ErrName, or ErrExt.
func Parse(reg *registry.Registry, path string, opts Options) (*ast.Query, error) {
	p := &parser{lex: lexer.New(path), reg: reg, opts: opts}
	p.advance()

	if p.cur.Kind != lexer.Kind('$') {
		if p.cur.Kind == lexer.EOF {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
		}
		return nil, p.unexpected()
	}
	p.advance()
	q, err := p.parseQueryFrom(true)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.unexpected()
	}
	return q, nil
}

func (p *parser) advance() { p.cur = p.lex.Scan() }

func (p *parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s (%d..%d)", ErrSyntax, msg, p.cur.Pos, p.cur.End)
}

func (p *parser) unexpected() error {
	if p.cur.Kind == lexer.Invalid {
		return fmt.Errorf("%w: %s (%d..%d)", ErrSyntax, p.cur.Val, p.cur.Pos, p.cur.End)
	}
	return p.errorf("unexpected %v", p.cur.Kind)
}

func (p *parser) requireExt(what string) error {
	if p.opts.Strict {
		return fmt.Errorf("%w: %s is a non-standard extension, rejected in strict mode (%d..%d)",
			ErrExt, what, p.cur.Pos, p.cur.End)
	}
	return nil
}

// parseQueryFrom parses the segment list of a query known to be rooted at $
// (root) or @ (relative), as indicated by root. The caller has already
// consumed the leading '$' or '@' token.
func (p *parser) parseQueryFrom(root bool) (*ast.Query, error) {
	var segs []*ast.Segment
	for {
		switch p.cur.Kind {
		case lexer.Kind('['):
			p.advance()
			sels, err := p.parseSelectors()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.Child(sels...))
		case lexer.Kind('.'):
			p.advance()
			sel, err := p.parseShorthandSelector()
			if err != nil {
				return nil, err
			}
			segs = append(segs, ast.Child(sel))
		case lexer.DotDot:
			p.advance()
			seg, err := p.parseDescendant()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		default:
			return ast.NewQuery(root, segs), nil
		}
	}
}

func (p *parser) parseShorthandSelector() (ast.Selector, error) {
	switch p.cur.Kind {
	case lexer.Identifier:
		name := p.cur.Val
		p.advance()
		return ast.Name(name), nil
	case lexer.Kind('*'):
		p.advance()
		return ast.Wild{}, nil
	case lexer.Kind('~'):
		if err := p.requireExt("the ~ key selector"); err != nil {
			return nil, err
		}
		p.advance()
		return p.parseTildeBody()
	default:
		return nil, p.unexpected()
	}
}

// parseTildeBody parses what follows a bare '~' (already consumed): an
// optional bare identifier or quoted string naming a Key selector, or
// nothing at all for the Keys selector.
func (p *parser) parseTildeBody() (ast.Selector, error) {
	switch p.cur.Kind {
	case lexer.Identifier:
		name := p.cur.Val
		p.advance()
		return ast.Key(name), nil
	case lexer.GoString:
		name := p.cur.Val
		p.advance()
		return ast.Key(name), nil
	default:
		return ast.Keys{}, nil
	}
}

func (p *parser) parseDescendant() (*ast.Segment, error) {
	switch p.cur.Kind {
	case lexer.Kind('['):
		p.advance()
		sels, err := p.parseSelectors()
		if err != nil {
			return nil, err
		}
		return ast.Descendant(sels...), nil
	case lexer.Identifier:
		name := p.cur.Val
		p.advance()
		return ast.Descendant(ast.Name(name)), nil
	case lexer.Kind('*'):
		p.advance()
		return ast.Descendant(ast.Wild{}), nil
	case lexer.Kind('~'):
		if err := p.requireExt("the ~ key selector"); err != nil {
			return nil, err
		}
		p.advance()
		sel, err := p.parseTildeBody()
		if err != nil {
			return nil, err
		}
		return ast.Descendant(sel), nil
	default:
		return nil, p.unexpected()
	}
}

func (p *parser) parseSelectors() ([]ast.Selector, error) {
	var sels []ast.Selector
	for {
		sel, err := p.parseOneSelector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)

		switch p.cur.Kind {
		case lexer.Kind(','):
			p.advance()
			continue
		case lexer.Kind(']'):
			p.advance()
			return sels, nil
		default:
			return nil, p.unexpected()
		}
	}
}

func (p *parser) parseOneSelector() (ast.Selector, error) {
	switch p.cur.Kind {
	case lexer.Kind('?'):
		p.advance()
		expr, err := p.parseLogicalOrExpr()
		if err != nil {
			return nil, err
		}
		return ast.Filter{Expr: expr}, nil
	case lexer.Kind('*'):
		p.advance()
		return ast.Wild{}, nil
	case lexer.GoString:
		name := p.cur.Val
		p.advance()
		return ast.Name(name), nil
	case lexer.Kind('~'):
		if err := p.requireExt("the ~ key selector"); err != nil {
			return nil, err
		}
		p.advance()
		return p.parseTildeBody()
	case lexer.TildeQuestion:
		if err := p.requireExt("the ~? key-filter selector"); err != nil {
			return nil, err
		}
		p.advance()
		expr, err := p.parseLogicalOrExpr()
		if err != nil {
			return nil, err
		}
		return ast.KeysFilter{Expr: expr}, nil
	case lexer.Integer:
		tok := p.cur
		p.advance()
		if p.cur.Kind != lexer.Kind(':') {
			idx, err := p.parsePathInt(tok)
			if err != nil {
				return nil, err
			}
			return ast.Index(idx), nil
		}
		start, err := p.parsePathInt(tok)
		if err != nil {
			return nil, err
		}
		return p.parseSlice(&start)
	case lexer.Kind(':'):
		return p.parseSlice(nil)
	default:
		return nil, p.unexpected()
	}
}

// parseSlice parses the rest of a slice selector. p.cur must be ':' on
// entry; first is the already-parsed leading start index, or nil if the
// selector began with ':'.
func (p *parser) parseSlice(first *int64) (ast.Slice, error) {
	sl := ast.Slice{Start: first}
	part := 0
	for p.cur.Kind == lexer.Kind(':') {
		part++
		if part > 2 {
			return ast.Slice{}, p.unexpected()
		}
		p.advance()
		var val *int64
		if p.cur.Kind == lexer.Integer {
			tok := p.cur
			n, err := p.parsePathInt(tok)
			if err != nil {
				return ast.Slice{}, err
			}
			val = &n
			p.advance()
		}
		switch part {
		case 1:
			sl.Stop = val
		case 2:
			sl.Step = val
		}
	}
	return sl, nil
}

// parsePathInt parses tok as an index or step literal, enforcing
// p.opts.maxIndex() and rejecting -0.
func (p *parser) parsePathInt(tok lexer.Token) (int64, error) {
	if tok.Val == "-0" {
		return 0, fmt.Errorf("%w: invalid integer literal %q (%d..%d)", ErrSyntax, tok.Val, tok.Pos, tok.End)
	}
	n, err := strconv.ParseInt(tok.Val, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, fmt.Errorf("%w: cannot parse %q: %v (%d..%d)", ErrSyntax, tok.Val, numErr.Err, tok.Pos, tok.End)
		}
		return 0, fmt.Errorf("%w: %v (%d..%d)", ErrSyntax, err, tok.Pos, tok.End)
	}
	limit := p.opts.maxIndex()
	if n > limit || n < -limit {
		return 0, fmt.Errorf("%w: %q out of range (%d..%d)", ErrSyntax, tok.Val, tok.Pos, tok.End)
	}
	return n, nil
}

// parseLogicalOrExpr parses a ||-separated chain of logical-and
// expressions.
func (p *parser) parseLogicalOrExpr() (ast.FilterExpr, error) {
	left, err := p.parseLogicalAndExpr()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.Or {
		p.advance()
		right, err := p.parseLogicalAndExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Left: left, Right: right, Op: ast.Or}
	}
	return left, nil
}

// parseLogicalAndExpr parses a &&-separated chain of basic expressions.
func (p *parser) parseLogicalAndExpr() (ast.FilterExpr, error) {
	left, err := p.parseBasicExpr()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.And {
		p.advance()
		right, err := p.parseBasicExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Left: left, Right: right, Op: ast.And}
	}
	return left, nil
}

// parseBasicExpr parses a paren-expr, a negation, a comparison, or a
// standalone test-expr (query existence test or logical function call).
func (p *parser) parseBasicExpr() (ast.FilterExpr, error) {
	switch p.cur.Kind {
	case lexer.Kind('!'):
		return p.parseNotExpr()
	case lexer.Kind('('):
		return p.parseParenExpr()
	case lexer.Kind('@'), lexer.Kind('$'):
		return p.parseQueryExpr()
	case lexer.Identifier:
		return p.parseFunctionExpr()
	case lexer.Kind('#'):
		return p.parseCurrentKeyExpr()
	default:
		left, err := p.parseComparable()
		if err != nil {
			return nil, err
		}
		if !p.isCompOpNext() {
			return nil, p.errorf("expected a comparison operator")
		}
		return p.parseComparisonTail(left)
	}
}

// parseFunctionExpr parses a function call in basic-expr position: a
// standalone test-expr if it returns LogicalKind and no comparison operator
// follows, otherwise the left operand of a comparison (requiring
// ValueKind).
func (p *parser) parseFunctionExpr() (ast.FilterExpr, error) {
	pos := p.cur.Pos
	fc, err := p.parseFunctionCall()
	if err != nil {
		return nil, err
	}
	if p.isCompOpNext() {
		if fc.Return != ast.ValueKind {
			return nil, fmt.Errorf("%w: function %s() cannot be used in a comparison", ErrType, fc.Name)
		}
		return p.parseComparisonTail(fc)
	}
	if fc.Return != ast.LogicalKind {
		return nil, fmt.Errorf("%w: function %s() does not return a logical value (%d..%d)", ErrType, fc.Name, pos, p.cur.Pos)
	}
	return fc, nil
}

// parseCurrentKeyExpr parses the non-standard # in basic-expr position. It
// is never a standalone test-expr -- only a comparison operand.
func (p *parser) parseCurrentKeyExpr() (ast.FilterExpr, error) {
	if err := p.requireExt("the # current-key expression"); err != nil {
		return nil, err
	}
	tok := p.cur
	p.advance()
	if !p.isCompOpNext() {
		return nil, fmt.Errorf("%w: # cannot be used as a standalone test-expression (%d..%d)", ErrType, tok.Pos, tok.End)
	}
	return p.parseComparisonTail(ast.CurrentKey{})
}

// parseQueryExpr parses a '@' or '$' query appearing in basic-expr
// position. Used as a standalone test-expr, it is an existence test (truthy
// when its Nodes result is non-empty); followed by a comparison operator,
// it must be singular, becoming the comparison's left operand.
func (p *parser) parseQueryExpr() (ast.FilterExpr, error) {
	pos := p.cur.Pos
	q, err := p.parseRawFilterSubQuery()
	if err != nil {
		return nil, err
	}
	if p.isCompOpNext() {
		sq := q.Singular()
		if sq == nil {
			return nil, fmt.Errorf("%w: query is not singular, cannot be used in a comparison (%d..%d)", ErrType, pos, p.cur.Pos)
		}
		return p.parseComparisonTail(sq)
	}
	if q.IsRoot() {
		return &ast.RootQuery{Query: q}, nil
	}
	return &ast.RelativeQuery{Query: q}, nil
}

func (p *parser) parseNotExpr() (ast.FilterExpr, error) {
	p.advance() // consume '!'
	if p.cur.Kind == lexer.Kind('(') {
		inner, err := p.parseParenExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Expr: inner}, nil
	}

	operand, err := p.parseComparableQueryOrFunc()
	if err != nil {
		return nil, err
	}
	return &ast.Not{Expr: operand}, nil
}

// parseComparableQueryOrFunc parses a query or a logical function call, for
// use as the operand of '!'. Literals and # may not be negated.
func (p *parser) parseComparableQueryOrFunc() (ast.FilterExpr, error) {
	switch p.cur.Kind {
	case lexer.Kind('@'), lexer.Kind('$'):
		return p.parseFilterQuery()
	case lexer.Identifier:
		pos := p.cur.Pos
		fc, err := p.parseFunctionCall()
		if err != nil {
			return nil, err
		}
		if fc.Return != ast.LogicalKind {
			return nil, fmt.Errorf("%w: function %s() does not return a logical value (%d..%d)", ErrType, fc.Name, pos, p.cur.Pos)
		}
		return fc, nil
	default:
		return nil, p.errorf("cannot negate a literal value")
	}
}

func (p *parser) parseParenExpr() (ast.FilterExpr, error) {
	p.advance() // consume '('
	inner, err := p.parseLogicalOrExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.Kind(')') {
		return nil, p.unexpected()
	}
	p.advance()
	return inner, nil
}

func (p *parser) isCompOpNext() bool {
	switch p.cur.Kind {
	case lexer.Eq, lexer.Ne, lexer.Le, lexer.Ge, lexer.Kind('<'), lexer.Kind('>'):
		return true
	default:
		return false
	}
}

func (p *parser) parseCompOp() (ast.CompOp, error) {
	switch p.cur.Kind {
	case lexer.Eq:
		p.advance()
		return ast.Eq, nil
	case lexer.Ne:
		p.advance()
		return ast.Ne, nil
	case lexer.Le:
		p.advance()
		return ast.Le, nil
	case lexer.Ge:
		p.advance()
		return ast.Ge, nil
	case lexer.Kind('<'):
		p.advance()
		return ast.Lt, nil
	case lexer.Kind('>'):
		p.advance()
		return ast.Gt, nil
	default:
		return 0, p.unexpected()
	}
}

func (p *parser) parseComparisonTail(left ast.FilterExpr) (ast.FilterExpr, error) {
	op, err := p.parseCompOp()
	if err != nil {
		return nil, err
	}
	right, err := p.parseComparable()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Left: left, Right: right, Op: op}, nil
}

// parseComparable parses a comparable: a literal, a singular query, a
// ValueKind-returning function call, or the non-standard #.
func (p *parser) parseComparable() (ast.FilterExpr, error) {
	switch p.cur.Kind {
	case lexer.GoString, lexer.Integer, lexer.Number, lexer.True, lexer.False, lexer.Null:
		return p.parseLiteral()
	case lexer.Kind('@'), lexer.Kind('$'):
		pos := p.cur.Pos
		q, err := p.parseRawFilterSubQuery()
		if err != nil {
			return nil, err
		}
		sq := q.Singular()
		if sq == nil {
			return nil, fmt.Errorf("%w: query is not singular, cannot be used in a comparison (%d..%d)", ErrType, pos, p.cur.Pos)
		}
		return sq, nil
	case lexer.Identifier:
		pos := p.cur.Pos
		fc, err := p.parseFunctionCall()
		if err != nil {
			return nil, err
		}
		if fc.Return != ast.ValueKind {
			return nil, fmt.Errorf("%w: function %s() cannot be used in a comparison (%d..%d)", ErrType, fc.Name, pos, p.cur.Pos)
		}
		return fc, nil
	case lexer.Kind('#'):
		if err := p.requireExt("the # current-key expression"); err != nil {
			return nil, err
		}
		p.advance()
		return ast.CurrentKey{}, nil
	default:
		return nil, p.unexpected()
	}
}

// parseRawFilterSubQuery consumes a leading '@' or '$' and parses the
// segments that follow into an *ast.Query.
func (p *parser) parseRawFilterSubQuery() (*ast.Query, error) {
	root := p.cur.Kind == lexer.Kind('$')
	p.advance()
	return p.parseQueryFrom(root)
}

// parseFilterQuery parses a full relative or root query used as a filter
// sub-expression (existence test or NodesKind function argument).
func (p *parser) parseFilterQuery() (ast.FilterExpr, error) {
	q, err := p.parseRawFilterSubQuery()
	if err != nil {
		return nil, err
	}
	if q.IsRoot() {
		return &ast.RootQuery{Query: q}, nil
	}
	return &ast.RelativeQuery{Query: q}, nil
}

func (p *parser) parseLiteral() (*ast.Literal, error) {
	tok := p.cur
	switch tok.Kind {
	case lexer.GoString:
		p.advance()
		return &ast.Literal{V: jsonval.String(tok.Val)}, nil
	case lexer.Integer:
		n, err := strconv.ParseInt(tok.Val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot parse %q: %v (%d..%d)", ErrSyntax, tok.Val, err, tok.Pos, tok.End)
		}
		p.advance()
		return &ast.Literal{V: jsonval.Number(float64(n))}, nil
	case lexer.Number:
		n, err := strconv.ParseFloat(tok.Val, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot parse %q: %v (%d..%d)", ErrSyntax, tok.Val, err, tok.Pos, tok.End)
		}
		p.advance()
		return &ast.Literal{V: jsonval.Number(n)}, nil
	case lexer.True:
		p.advance()
		return &ast.Literal{V: jsonval.Bool(true)}, nil
	case lexer.False:
		p.advance()
		return &ast.Literal{V: jsonval.Bool(false)}, nil
	case lexer.Null:
		p.advance()
		return &ast.Literal{V: jsonval.Null{}}, nil
	default:
		return nil, p.unexpected()
	}
}

// parseFunctionCall parses name(arg, ...), resolving name against p.reg and
// checking arity against its declared signature.
func (p *parser) parseFunctionCall() (*ast.FunctionCall, error) {
	nameTok := p.cur
	name := nameTok.Val
	p.advance()
	if p.cur.Kind != lexer.Kind('(') {
		return nil, p.unexpected()
	}
	p.advance()

	fn := p.reg.Get(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: unknown function %s() (%d..%d)", ErrName, name, nameTok.Pos, nameTok.End)
	}

	var args []ast.FilterExpr
	var argTypes []ast.ExpressionType
	var argPos []int
	var argEnd []int
	if p.cur.Kind != lexer.Kind(')') {
		for {
			pos := p.cur.Pos
			arg, got, err := p.parseFunctionArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			argTypes = append(argTypes, got)
			argPos = append(argPos, pos)
			argEnd = append(argEnd, p.cur.Pos)
			if p.cur.Kind == lexer.Kind(',') {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur.Kind != lexer.Kind(')') {
		return nil, p.unexpected()
	}
	closeParen := p.cur
	p.advance()

	if len(args) != len(fn.Signature.Params) {
		return nil, fmt.Errorf("%w: function %s() expects %d argument(s), found %d (%d..%d)",
			ErrType, name, len(fn.Signature.Params), len(args), nameTok.Pos, closeParen.End)
	}

	for i, arg := range args {
		if err := checkArgType(name, i, arg, argTypes[i], fn.Signature.Params[i], argPos[i], argEnd[i]); err != nil {
			return nil, err
		}
	}

	return &ast.FunctionCall{
		Name:       name,
		Args:       args,
		ParamTypes: fn.Signature.Params,
		Return:     fn.Signature.Return,
		Call:       fn.Call,
	}, nil
}

// parseFunctionArg parses one function-call argument: a literal,
// filter-query, function-expr, the non-standard #, or a parenthesized or
// negated logical-expr. It also returns the argument's static
// ast.ExpressionType, for checkArgType to validate against the callee's
// declared parameter type.
func (p *parser) parseFunctionArg() (ast.FilterExpr, ast.ExpressionType, error) {
	switch p.cur.Kind {
	case lexer.GoString, lexer.Integer, lexer.Number, lexer.True, lexer.False, lexer.Null:
		lit, err := p.parseLiteral()
		return lit, ast.ValueKind, err
	case lexer.Kind('@'), lexer.Kind('$'):
		q, err := p.parseFilterQuery()
		return q, ast.NodesKind, err
	case lexer.Identifier:
		fc, err := p.parseFunctionCall()
		if err != nil {
			return nil, 0, err
		}
		return fc, fc.Return, nil
	case lexer.Kind('#'):
		if err := p.requireExt("the # current-key expression"); err != nil {
			return nil, 0, err
		}
		p.advance()
		return ast.CurrentKey{}, ast.ValueKind, nil
	default:
		expr, err := p.parseLogicalOrExpr()
		return expr, ast.LogicalKind, err
	}
}

// checkArgType validates one function-call argument against its declared
// parameter type, per RFC 9535 §2.4.2's conversion rules (ast.ExpressionType
// .ConvertsTo implements the rules that don't depend on singularity; a
// NodesKind argument additionally converts to a ValueKind parameter when the
// underlying query is singular).
func checkArgType(name string, i int, arg ast.FilterExpr, got, want ast.ExpressionType, pos, end int) error {
	if got.ConvertsTo(want) {
		return nil
	}
	if want == ast.ValueKind && got == ast.NodesKind && querySingular(arg) {
		return nil
	}
	return fmt.Errorf("%w: function %s() argument %d must be %s, found %s (%d..%d)",
		ErrType, name, i+1, want, got, pos, end)
}

// querySingular reports whether arg is a relative or root query guaranteed
// to select at most one node.
func querySingular(arg ast.FilterExpr) bool {
	switch q := arg.(type) {
	case *ast.RelativeQuery:
		return q.Query.IsSingular()
	case *ast.RootQuery:
		return q.Query.IsSingular()
	default:
		return false
	}
}
