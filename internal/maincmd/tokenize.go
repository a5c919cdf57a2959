package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/loxtree/lang/scanner"
	"github.com/mna/loxtree/lang/token"
)

func (c *Cmd) tokenize(_ context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, code, ok := readSource(stdio, path)
	if !ok {
		return code
	}

	toks, err := scanner.ScanFile(path, src)
	for _, tv := range toks {
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", tv.Token.Kind(), tv.Value.Raw, literalColumn(tv))
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return ExitDataErr
	}
	return ExitOK
}

// literalColumn renders the LITERAL column of the `tokenize` output: the
// unescaped string content, the parsed number's lexeme, or "null" for every
// other token kind.
func literalColumn(tv scanner.TokenAndValue) string {
	switch tv.Token {
	case token.STRING, token.NUMBER:
		return tv.Value.Literal
	default:
		return "null"
	}
}
