package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/loxtree/lang/eval"
	"github.com/mna/loxtree/lang/parser"
)

func (c *Cmd) evaluate(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, code, ok := readSource(stdio, path)
	if !ok {
		return code
	}

	stmts, err := parser.ParseFile(path, src)
	if err != nil {
		printParseErrors(stdio, err)
		return ExitDataErr
	}

	e := eval.New(stdio.Stdout)
	v, err := e.EvalFirst(ctx, stmts)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return ExitRuntime
	}
	fmt.Fprintln(stdio.Stdout, v.String())
	return ExitOK
}
