// Package eval walks an AST against a scope arena, producing side effects on
// a text sink and either normal completion or a runtime error. It is the
// CORE of the interpreter alongside lang/scope: everything else (scanning,
// parsing) exists only to feed it a statement list.
package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/scope"
	"github.com/mna/loxtree/lang/token"
	"github.com/mna/loxtree/lang/value"
)

// Evaluator owns one scope arena and one text sink, exactly as spec'd: no
// two evaluators ever share an arena, and nothing about evaluation is
// reentrant or concurrent.
type Evaluator struct {
	// Stdout is the sink `print` statements and clock-adjacent natives write
	// to. Defaults to os.Stdout if left nil at New.
	Stdout io.Writer

	ctx     context.Context
	arena   *scope.Arena
	current scope.ID
	globals scope.ID
}

// New creates an evaluator with a fresh arena: Root, a globals scope
// branched from it holding the `clock` native, and current set to globals.
func New(stdout io.Writer) *Evaluator {
	if stdout == nil {
		stdout = os.Stdout
	}
	a := scope.New()
	globals := a.Branch(scope.Root)
	e := &Evaluator{Stdout: stdout, ctx: context.Background(), arena: a, current: globals, globals: globals}

	e.arena.Define(globals, "clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(int, []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	return e
}

// Run executes a full program: every statement in order. A `return` that
// propagates all the way to the top level terminates the program silently
// (see SPEC_FULL.md's resolution of spec.md's open question on this).
func (e *Evaluator) Run(ctx context.Context, stmts []ast.Stmt) error {
	e.ctx = ctx
	for _, s := range stmts {
		if err := e.execStmt(s); err != nil {
			var rs *returnSignal
			if errors.As(err, &rs) {
				return nil
			}
			return err
		}
	}
	return nil
}

// EvalFirst evaluates only the expression carried by the program's first
// statement, which must be an expression statement or a print statement
// (the `evaluate` CLI subcommand's contract). It does not perform the print
// side effect itself even if the statement is a PrintStmt: the caller prints
// the returned value's string form.
func (e *Evaluator) EvalFirst(ctx context.Context, stmts []ast.Stmt) (value.Value, error) {
	e.ctx = ctx
	if len(stmts) == 0 {
		return value.None, errInvalidExpression
	}

	var expr ast.Expr
	switch s := stmts[0].(type) {
	case *ast.ExprStmt:
		expr = s.Expr
	case *ast.PrintStmt:
		expr = s.Expr
	default:
		return value.None, errInvalidExpression
	}
	return e.evalExpr(expr)
}

func (e *Evaluator) execStmt(s ast.Stmt) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}

	switch s := s.(type) {
	case *ast.ExprStmt:
		_, err := e.evalExpr(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := e.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(e.Stdout, v.String()); err != nil {
			return errCannotWriteToStdout
		}
		return nil

	case *ast.VarStmt:
		v, err := e.evalExpr(s.Init)
		if err != nil {
			return err
		}
		e.arena.Define(e.current, s.Name, v)
		return nil

	case *ast.BlockStmt:
		return e.execBlock(s.Stmts)

	case *ast.IfStmt:
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if value.Truthy(cond) {
			return e.execStmt(s.Then)
		}
		if s.Else != nil {
			return e.execStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			if err := e.ctx.Err(); err != nil {
				return err
			}
			cond, err := e.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !value.Truthy(cond) {
				return nil
			}
			if err := e.execStmt(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunStmt:
		anchor := e.arena.Branch(e.current)
		e.arena.Retain(anchor)
		e.arena.Define(e.current, s.Name, &UserFunction{
			name: s.Name, params: s.Params, body: s.Body, capture: anchor,
		})
		return nil

	case *ast.ReturnStmt:
		v, err := e.evalExpr(s.Value)
		if err != nil {
			return err
		}
		return &returnSignal{value: v}

	default:
		return errInvalidExpression
	}
}

// execBlock is the scoped-acquisition pattern spec.md requires for every
// block: current is always restored to its entry value, and the branched
// scope always released, whether the block ran to completion or unwound
// through a runtime error or a return.
func (e *Evaluator) execBlock(stmts []ast.Stmt) error {
	id := e.arena.Branch(e.current)
	prev := e.current
	e.current = id
	defer func() {
		e.arena.Release(id)
		e.current = prev
	}()

	for _, s := range stmts {
		if err := e.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalExpr(ex ast.Expr) (value.Value, error) {
	switch ex := ex.(type) {
	case *ast.LiteralExpr:
		return literalValue(ex), nil

	case *ast.VariableExpr:
		v, ok := e.arena.Get(e.current, ex.Name)
		if !ok {
			return nil, undefinedVariable(ex.Pos.Line(), ex.Name)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := e.evalExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if !e.arena.Assign(e.current, ex.Name, v) {
			return nil, undefinedVariable(ex.Pos.Line(), ex.Name)
		}
		return v, nil

	case *ast.GroupingExpr:
		return e.evalExpr(ex.Inner)

	case *ast.UnaryExpr:
		return e.evalUnary(ex)

	case *ast.BinaryExpr:
		return e.evalBinary(ex)

	case *ast.LogicalExpr:
		return e.evalLogical(ex)

	case *ast.CallExpr:
		return e.evalCall(ex)

	default:
		return nil, errInvalidExpression
	}
}

func literalValue(ex *ast.LiteralExpr) value.Value {
	switch v := ex.Value.(type) {
	case float64:
		return value.Number(v)
	case string:
		return value.String(v)
	case bool:
		return value.Boolean(v)
	default:
		return value.None
	}
}

func (e *Evaluator) evalUnary(ex *ast.UnaryExpr) (value.Value, error) {
	right, err := e.evalExpr(ex.Right)
	if err != nil {
		return nil, err
	}
	switch ex.Op {
	case token.MINUS:
		n, ok := right.(value.Number)
		if !ok {
			return nil, notANumber(ex.Pos.Line(), right.Type())
		}
		return -n, nil
	case token.BANG:
		return value.Boolean(!value.Truthy(right)), nil
	default:
		return nil, errInvalidExpression
	}
}

func (e *Evaluator) evalBinary(ex *ast.BinaryExpr) (value.Value, error) {
	left, err := e.evalExpr(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ex.Right)
	if err != nil {
		return nil, err
	}
	line := ex.Pos.Line()

	switch ex.Op {
	case token.EQ_EQ:
		return value.Boolean(value.Equal(left, right)), nil
	case token.BANG_EQ:
		return value.Boolean(!value.Equal(left, right)), nil

	case token.PLUS:
		if ln, ok := left.(value.Number); ok {
			if rn, ok := right.(value.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return ls + rs, nil
			}
		}
		return nil, wrongBinaryOperationType(line, ex.Op.String(), left.Type(), right.Type())

	case token.MINUS, token.STAR, token.SLASH, token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, wrongBinaryOperationType(line, ex.Op.String(), left.Type(), right.Type())
		}
		switch ex.Op {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, zeroDivision(line)
			}
			return ln / rn, nil
		case token.LT:
			return value.Boolean(ln < rn), nil
		case token.LT_EQ:
			return value.Boolean(ln <= rn), nil
		case token.GT:
			return value.Boolean(ln > rn), nil
		default: // token.GT_EQ
			return value.Boolean(ln >= rn), nil
		}

	default:
		return nil, errInvalidExpression
	}
}

func (e *Evaluator) evalLogical(ex *ast.LogicalExpr) (value.Value, error) {
	left, err := e.evalExpr(ex.Left)
	if err != nil {
		return nil, err
	}
	switch ex.Op {
	case token.OR:
		if value.Truthy(left) {
			return left, nil
		}
	case token.AND:
		if !value.Truthy(left) {
			return left, nil
		}
	default:
		return nil, errInvalidExpression
	}
	return e.evalExpr(ex.Right)
}

func (e *Evaluator) evalCall(ex *ast.CallExpr) (value.Value, error) {
	callee, err := e.evalExpr(ex.Callee)
	if err != nil {
		return nil, err
	}
	callable, ok := callee.(value.Callable)
	if !ok {
		return nil, notAFunction(ex.Pos.Line(), callee.Type())
	}

	args := make([]value.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if len(args) != callable.Arity() {
		return nil, wrongNumberOfArguments(ex.Pos.Line(), callable.Name(), callable.Arity(), len(args))
	}
	return e.call(callable, args, ex.Pos.Line())
}

// call implements the call protocol of SPEC_FULL.md §4.3.1: a user function
// runs within a scoped acquisition of a fresh activation scope branched from
// its capture anchor, with the activation always released on every exit
// path; a Return surfacing from the body is caught here and materialized
// into the call's result rather than propagating further. Native functions
// skip the scope dance entirely.
func (e *Evaluator) call(c value.Callable, args []value.Value, line int) (value.Value, error) {
	switch fn := c.(type) {
	case *NativeFunction:
		return fn.fn(line, args)

	case *UserFunction:
		activation := e.arena.Branch(fn.capture)
		prev := e.current
		e.current = activation
		defer func() {
			e.arena.Release(activation)
			e.current = prev
		}()

		for i, p := range fn.params {
			e.arena.Define(activation, p, args[i])
		}

		for _, s := range fn.body {
			if err := e.execStmt(s); err != nil {
				var rs *returnSignal
				if errors.As(err, &rs) {
					return rs.value, nil
				}
				return nil, err
			}
		}
		return value.None, nil

	default:
		return nil, notAFunction(line, c.Type())
	}
}
