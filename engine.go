package jsonpath

import (
	"github.com/padparadscha/jsonpath/ast"
	"github.com/padparadscha/jsonpath/jsonval"
	"github.com/padparadscha/jsonpath/parser"
	"github.com/padparadscha/jsonpath/registry"
)

// Engine compiles and evaluates JSONPath queries against a configured
// function-extension Registry and parsing mode.
type Engine struct {
	reg  *registry.Registry
	opts parser.Options
}

// Option configures an Engine returned by New.
type Option func(*Engine)

// WithRegistry replaces the engine's default function-extension registry.
// Pass a Registry extended with registry.Registry.Register to add custom
// functions.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) { e.reg = reg }
}

// WithStrict sets whether parsing accepts only RFC 9535 syntax (true) or
// additionally accepts the #, ~, ~?, and key-shorthand non-standard
// extensions (false). Defaults to true.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.opts.Strict = strict }
}

// WithIndexRange overrides the magnitude bound RFC 9535 places on index and
// slice-step literals (by default, 2^53-1).
func WithIndexRange(maxMagnitude int64) Option {
	return func(e *Engine) { e.opts.MaxIndexMagnitude = maxMagnitude }
}

// New returns an Engine configured with opts, defaulting to the RFC
// 9535-mandated function extensions (length, count, value, match, search)
// and strict (extensions disabled) parsing.
func New(opts ...Option) *Engine {
	e := &Engine{reg: registry.New(), opts: parser.Options{Strict: true}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile parses path into a reusable Path, or returns a *JSONPathError.
func (e *Engine) Compile(path string) (*Path, error) {
	q, err := parser.Parse(e.reg, path, e.opts)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return &Path{query: q}, nil
}

// Find is a convenience wrapper that compiles path and selects against
// root in one call.
func (e *Engine) Find(path string, root jsonval.Value) ([]jsonval.Value, error) {
	p, err := e.Compile(path)
	if err != nil {
		return nil, err
	}
	return p.Select(root), nil
}

// Registry returns the engine's function-extension registry, for
// registering custom functions before compiling queries.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// defaultEngine backs the package-level Compile convenience function.
var defaultEngine = New()

// Compile parses path using the package's default Engine (RFC
// 9535-mandated functions, strict RFC 9535 syntax only).
func Compile(path string) (*Path, error) {
	return defaultEngine.Compile(path)
}

// Nothing is the evaluator's internal "no value" sentinel, exported so
// callers can recognize it if they inspect ast.FilterResult values directly
// (most callers never will; Path.Select only ever returns jsonval.Value).
var Nothing = ast.Nothing
