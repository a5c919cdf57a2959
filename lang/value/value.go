// Package value defines the runtime value domain of the language: a fixed,
// closed set of tagged types (number, string, boolean, nil, callable) with
// no user-extensible type lattice.
package value

import "fmt"

// Value is the interface implemented by every value the evaluator can
// produce or manipulate.
type Value interface {
	// String returns the value's display form, as printed by the `print`
	// statement.
	String() string
	// Type returns a short, human-readable name of the value's type, used in
	// error messages (e.g. "got a String").
	Type() string
}

// Callable is implemented by values that may appear as the callee of a call
// expression: both user-defined functions and host-implemented natives.
type Callable interface {
	Value
	// Name returns the function's name, used in wrong-arity error messages.
	Name() string
	// Arity returns the number of parameters the callable expects.
	Arity() int
}

// Number is a double-precision floating point value.
type Number float64

func (n Number) String() string { return fmt.Sprintf("%g", float64(n)) }
func (n Number) Type() string   { return "Number" }

// String is a Lox string value.
type String string

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "String" }

// Boolean is a Lox boolean value.
type Boolean bool

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Boolean) Type() string { return "Boolean" }

// Nil is the singleton absent value.
type Nil struct{}

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }

// None is the single instance of Nil, returned wherever the language
// produces "no value" (missing initializer, missing return value, a call
// result that fell off the end of a function body).
var None = Nil{}

// Truthy implements the language's truthiness coercion: only Nil and
// Boolean(false) are falsey, every other value (including 0 and "") is
// truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(v)
	default:
		return true
	}
}

// Equal implements value equality: same tag and same underlying content.
// Numbers compare with plain IEEE-754 equality (NaN != NaN). Cross-tag
// comparisons are always false.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Boolean:
		b, ok := b.(Boolean)
		return ok && a == b
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Callable:
		b, ok := b.(Callable)
		// Callables are always backed by pointer types, so interface equality
		// is identity equality: two distinct function values are never equal,
		// even if they share a name.
		return ok && a == b
	default:
		return false
	}
}
