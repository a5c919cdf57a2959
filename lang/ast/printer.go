package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a statement list as a prefix-style, indented tree,
// one node per line, for the `parse` CLI subcommand.
type Printer struct {
	// Output is the writer to print to.
	Output io.Writer
	// WithPos, if true, prefixes each line with the node's line number.
	WithPos bool
}

// Print renders every statement in stmts, in order.
func (p *Printer) Print(stmts []Stmt) error {
	pp := &printer{w: p.Output, withPos: p.WithPos}
	for _, s := range stmts {
		Walk(pp, s)
		if pp.err != nil {
			return pp.err
		}
	}
	return nil
}

type printer struct {
	w       io.Writer
	withPos bool
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(". ", indent))
	if p.withPos {
		fmt.Fprintf(&b, "[line %d] ", n.Span().Line())
	}
	fmt.Fprintf(&b, "%v\n", n)

	_, p.err = io.WriteString(p.w, b.String())
}
