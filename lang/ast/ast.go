// Package ast defines the expression and statement node types that make up
// the abstract syntax tree produced by the parser and walked by the
// evaluator.
package ast

import (
	"fmt"
	"strings"

	"github.com/mna/loxtree/lang/token"
)

// Node is implemented by every expression and statement node.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a short, one-line
	// description of itself (its kind and the tokens that identify it, but
	// not its children — Walk is how a caller descends into children).
	fmt.Formatter

	// Span reports the position of the token that best identifies the node,
	// for use in the `parse` subcommand's tree printer and in error messages.
	Span() token.Pos

	// Walk visits the node's direct children, in source order.
	Walk(v Visitor)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmt()
}

// format renders a short node label, used by every node's Format method.
func format(f fmt.State, verb rune, label string) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%s)", verb, label)
		return
	}
	fmt.Fprint(f, strings.TrimSpace(label))
}
