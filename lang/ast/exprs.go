package ast

import (
	"fmt"

	"github.com/mna/loxtree/lang/token"
)

type (
	// LiteralExpr represents a literal number, string, boolean or nil.
	LiteralExpr struct {
		Pos token.Pos
		// Kind is one of token.NUMBER, token.STRING, token.TRUE, token.FALSE or
		// token.NIL.
		Kind token.Token
		// Value holds the literal's Go-native payload: float64 for NUMBER,
		// string for STRING, bool for TRUE/FALSE, nil for NIL.
		Value any
	}

	// VariableExpr represents a reference to a named variable.
	VariableExpr struct {
		Pos  token.Pos
		Name string
	}

	// AssignExpr represents an assignment to an existing variable, e.g. x = 1.
	AssignExpr struct {
		Pos   token.Pos
		Name  string
		Value Expr
	}

	// UnaryExpr represents a unary operator application, e.g. -x or !x.
	UnaryExpr struct {
		Pos   token.Pos
		Op    token.Token // MINUS or BANG
		Right Expr
	}

	// BinaryExpr represents a binary operator application, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		Pos   token.Pos // position of the operator
		Right Expr
	}

	// LogicalExpr represents `and`/`or`, kept distinct from BinaryExpr because
	// they short-circuit and never evaluate Right unconditionally.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token // AND or OR
		Pos   token.Pos
		Right Expr
	}

	// GroupingExpr represents a parenthesized expression.
	GroupingExpr struct {
		Pos   token.Pos
		Inner Expr
	}

	// CallExpr represents a function call, e.g. f(a, b).
	CallExpr struct {
		Callee Expr
		Pos    token.Pos // position of the opening '('
		Args   []Expr
	}
)

func (*LiteralExpr) expr()  {}
func (*VariableExpr) expr() {}
func (*AssignExpr) expr()   {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) expr()   {}
func (*LogicalExpr) expr()  {}
func (*GroupingExpr) expr() {}
func (*CallExpr) expr()     {}

func (n *LiteralExpr) Span() token.Pos  { return n.Pos }
func (n *VariableExpr) Span() token.Pos { return n.Pos }
func (n *AssignExpr) Span() token.Pos   { return n.Pos }
func (n *UnaryExpr) Span() token.Pos    { return n.Pos }
func (n *BinaryExpr) Span() token.Pos   { return n.Left.Span() }
func (n *LogicalExpr) Span() token.Pos  { return n.Left.Span() }
func (n *GroupingExpr) Span() token.Pos { return n.Pos }
func (n *CallExpr) Span() token.Pos     { return n.Callee.Span() }

func (n *LiteralExpr) Walk(Visitor) {}
func (n *VariableExpr) Walk(Visitor) {}
func (n *AssignExpr) Walk(v Visitor) { Walk(v, n.Value) }
func (n *UnaryExpr) Walk(v Visitor)  { Walk(v, n.Right) }
func (n *BinaryExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *LogicalExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *GroupingExpr) Walk(v Visitor) { Walk(v, n.Inner) }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("literal %#v", n.Value))
}
func (n *VariableExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "var "+n.Name)
}
func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "assign "+n.Name)
}
func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "unary "+n.Op.String())
}
func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "binary "+n.Op.String())
}
func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "logical "+n.Op.String())
}
func (n *GroupingExpr) Format(f fmt.State, verb rune) {
	format(f, verb, "group")
}
func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("call {args=%d}", len(n.Args)))
}
