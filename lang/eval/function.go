package eval

import (
	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/scope"
	"github.com/mna/loxtree/lang/value"
)

// UserFunction is a function declared in Lox source. It captures the scope
// id active at its declaration (its capture anchor), not its lexical text:
// looking up a free variable at call time walks up from a fresh activation
// scope branched off that anchor.
type UserFunction struct {
	name    string
	params  []string
	body    []ast.Stmt
	capture scope.ID
}

func (f *UserFunction) Name() string   { return f.name }
func (f *UserFunction) Arity() int     { return len(f.params) }
func (f *UserFunction) String() string { return "<fn " + f.name + ">" }
func (f *UserFunction) Type() string   { return "Function" }

var _ value.Callable = (*UserFunction)(nil)

// NativeFunc is the Go implementation behind a NativeFunction. line is the
// call-site line, for error reporting; args has already been checked
// against the declared arity.
type NativeFunc func(line int, args []value.Value) (value.Value, error)

// NativeFunction is a host-implemented callable, installed into globals at
// evaluator construction (currently just clock). It does not capture a
// scope: it has no free variables to resolve.
type NativeFunction struct {
	name  string
	arity int
	fn    NativeFunc
}

func (f *NativeFunction) Name() string   { return f.name }
func (f *NativeFunction) Arity() int     { return f.arity }
func (f *NativeFunction) String() string { return "<nativefn " + f.name + ">" }
func (f *NativeFunction) Type() string   { return "Function" }

var _ value.Callable = (*NativeFunction)(nil)
