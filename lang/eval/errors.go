package eval

import (
	"errors"
	"fmt"

	"github.com/mna/loxtree/lang/value"
)

// RuntimeError is a single line-tagged runtime failure, printed to stderr by
// the `evaluate`/`run` CLI subcommands as `[line N]: message`.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("[line %d]: %s", e.Line, e.Msg) }

func notANumber(line int, gotType string) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf("Expected a number, got a %s", gotType)}
}

func wrongBinaryOperationType(line int, op, leftType, rightType string) error {
	return &RuntimeError{
		Line: line,
		Msg:  fmt.Sprintf("Operation %s expected 2 numbers. Received %s and %s", op, leftType, rightType),
	}
}

func zeroDivision(line int) error {
	return &RuntimeError{Line: line, Msg: "Division by zero"}
}

func undefinedVariable(line int, name string) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf("Undefined variable: %s", name)}
}

func notAFunction(line int, gotType string) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf("Expected a function, got a %s", gotType)}
}

func wrongNumberOfArguments(line int, fnName string, expected, received int) error {
	return &RuntimeError{
		Line: line,
		Msg:  fmt.Sprintf("%s expected %d arguments but received %d", fnName, expected, received),
	}
}

// errCannotWriteToStdout wraps a failure to write to the configured text
// sink. It carries no line: by the time a write fails, the faulting
// statement's position is no longer meaningfully the cause.
var errCannotWriteToStdout = errors.New("cannot write to stdout")

// errInvalidExpression signals an AST node reaching the evaluator in a shape
// the grammar should never produce — a parser bug, not a user-facing error.
var errInvalidExpression = errors.New("expression cannot be executed: invalid parser output")

// returnSignal is the internal, non-user-visible control-flow value used to
// unwind a `return` statement up to the nearest enclosing call boundary. It
// is never returned to a caller outside this package.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "return outside of a function call" }
