package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/parser"
	"github.com/mna/loxtree/lang/scanner"
)

func (c *Cmd) parse(_ context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, code, ok := readSource(stdio, path)
	if !ok {
		return code
	}

	stmts, err := parser.ParseFile(path, src)
	if err != nil {
		printParseErrors(stdio, err)
		return ExitDataErr
	}

	p := ast.Printer{Output: stdio.Stdout}
	if err := p.Print(stmts); err != nil {
		return ExitIOErr
	}
	return ExitOK
}

// printParseErrors prints every scan error (in the scanner's own format)
// followed by every syntax error (in this package's format). The `parse`,
// `evaluate` and `run` subcommands all use it, so each of them reports every
// error found in one run; none of them stops at the first syntax error.
func printParseErrors(stdio mainer.Stdio, err error) {
	perr, ok := err.(*parser.Errors)
	if !ok {
		scanner.PrintError(stdio.Stderr, err)
		return
	}
	if len(perr.Scan) > 0 {
		scanner.PrintError(stdio.Stderr, perr.Scan)
	}
	for _, se := range perr.Syntax {
		fmt.Fprintln(stdio.Stderr, se.Error())
	}
}
