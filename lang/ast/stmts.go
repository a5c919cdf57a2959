package ast

import (
	"fmt"

	"github.com/mna/loxtree/lang/token"
)

type (
	// ExprStmt represents an expression evaluated for its side effect, with
	// its value discarded.
	ExprStmt struct {
		Pos  token.Pos
		Expr Expr
	}

	// PrintStmt represents `print EXPR;`.
	PrintStmt struct {
		Pos  token.Pos
		Expr Expr
	}

	// VarStmt represents a variable declaration. Init is always non-nil: a
	// missing initializer is represented as a LiteralExpr holding nil.
	VarStmt struct {
		Pos  token.Pos
		Name string
		Init Expr
	}

	// BlockStmt represents a `{ ... }` block.
	BlockStmt struct {
		Pos   token.Pos
		Stmts []Stmt
	}

	// IfStmt represents `if (COND) THEN [else ELSE]`. Else is nil if absent.
	IfStmt struct {
		Pos    token.Pos
		Cond   Expr
		Then   Stmt
		Else   Stmt
	}

	// WhileStmt represents `while (COND) BODY`.
	WhileStmt struct {
		Pos  token.Pos
		Cond Expr
		Body Stmt
	}

	// FunStmt represents a function declaration, `fun NAME(PARAMS) { BODY }`.
	FunStmt struct {
		Pos    token.Pos
		Name   string
		Params []string
		Body   []Stmt
	}

	// ReturnStmt represents `return [EXPR];`. Value is always non-nil: a
	// missing return value is represented as a LiteralExpr holding nil.
	ReturnStmt struct {
		Pos   token.Pos
		Value Expr
	}
)

func (*ExprStmt) stmt()   {}
func (*PrintStmt) stmt()  {}
func (*VarStmt) stmt()    {}
func (*BlockStmt) stmt()  {}
func (*IfStmt) stmt()     {}
func (*WhileStmt) stmt()  {}
func (*FunStmt) stmt()    {}
func (*ReturnStmt) stmt() {}

func (n *ExprStmt) Span() token.Pos   { return n.Pos }
func (n *PrintStmt) Span() token.Pos  { return n.Pos }
func (n *VarStmt) Span() token.Pos    { return n.Pos }
func (n *BlockStmt) Span() token.Pos  { return n.Pos }
func (n *IfStmt) Span() token.Pos     { return n.Pos }
func (n *WhileStmt) Span() token.Pos  { return n.Pos }
func (n *FunStmt) Span() token.Pos    { return n.Pos }
func (n *ReturnStmt) Span() token.Pos { return n.Pos }

func (n *ExprStmt) Walk(v Visitor)  { Walk(v, n.Expr) }
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *VarStmt) Walk(v Visitor)   { Walk(v, n.Init) }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *FunStmt) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *ReturnStmt) Walk(v Visitor) { Walk(v, n.Value) }

func (n *ExprStmt) Format(f fmt.State, verb rune)  { format(f, verb, "exprStmt") }
func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, "print") }
func (n *VarStmt) Format(f fmt.State, verb rune)   { format(f, verb, "var "+n.Name) }
func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("block {stmts=%d}", len(n.Stmts)))
}
func (n *IfStmt) Format(f fmt.State, verb rune)    { format(f, verb, "if") }
func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, "while") }
func (n *FunStmt) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("fun %s(%d params)", n.Name, len(n.Params)))
}
func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, "return") }
