// Package registry provides the RFC 9535 JSONPath function extension
// registry: the set of named functions a filter expression may call, each
// declaring its parameter and return types and an implementation to run
// against already-coerced arguments.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/padparadscha/jsonpath/ast"
)

// Function is a registered function extension: its declared signature, for
// parse-time arity and type checking, and its runtime implementation.
type Function struct {
	Name      string
	Signature ast.FunctionSignature
	Call      ast.Callable
}

// Registry maintains the set of function extensions a parser consults while
// parsing function calls in filter expressions. It is safe for concurrent
// use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// New returns a Registry loaded with the RFC 9535-mandated function
// extensions: length, count, value, match, and search.
func New() *Registry {
	r := &Registry{funcs: make(map[string]*Function, len(builtins))}
	for _, fn := range builtins {
		r.funcs[fn.Name] = fn
	}
	return r
}

// ErrRegister is the sentinel wrapped by errors from Register.
var ErrRegister = errors.New("register")

// Register adds a new function extension to r. Returns ErrRegister if call
// is nil or name is already registered.
func (r *Registry) Register(name string, sig ast.FunctionSignature, call ast.Callable) error {
	if call == nil {
		return fmt.Errorf("%w: call is nil", ErrRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.funcs[name]; dup {
		return fmt.Errorf("%w: Register called twice for function %s", ErrRegister, name)
	}
	r.funcs[name] = &Function{Name: name, Signature: sig, Call: call}
	return nil
}

// Get returns the function extension registered as name, or nil if none is
// registered under that name.
func (r *Registry) Get(name string) *Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[name]
}
