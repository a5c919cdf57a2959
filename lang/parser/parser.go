// Package parser implements the recursive-descent parser that builds an
// abstract syntax tree from source text, scanning it internally rather than
// taking a pre-scanned token stream.
package parser

import (
	"errors"
	"fmt"
	stdtoken "go/token"

	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/scanner"
	"github.com/mna/loxtree/lang/token"
)

// ErrorKind distinguishes the three parse error shapes the language design
// names: a malformed expression at a known line, premature end of input,
// and a function declaration missing its name.
type ErrorKind int

// List of parse error kinds.
const (
	MalformedExpression ErrorKind = iota
	UnexpectedEOF
	MissingFunctionName
)

// SyntaxError is a single parse error.
type SyntaxError struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return "Unexpected end of file"
	case MissingFunctionName:
		return fmt.Sprintf("Malformed expression [line %d]: expected a function name", e.Line)
	default:
		return fmt.Sprintf("Malformed expression [line %d]: %s", e.Line, e.Msg)
	}
}

// SyntaxErrors accumulates every parse error found in one run, in the order
// synchronize() resumed after each one.
type SyntaxErrors []*SyntaxError

func (el SyntaxErrors) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return el[0].Error()
}

// Errors is returned by ParseFile when scanning or parsing a file failed. It
// keeps the two error kinds distinct because they print in different forms:
// Scan follows the scanner's `[line N] Error: message` style, Syntax follows
// this package's `Malformed expression [line N]: message` style. Either may
// be empty, but not both.
type Errors struct {
	Scan   scanner.ErrorList
	Syntax SyntaxErrors
}

func (e *Errors) Error() string {
	if len(e.Syntax) > 0 {
		return e.Syntax.Error()
	}
	if len(e.Scan) > 0 {
		return e.Scan.Error()
	}
	return "no errors"
}

// ParseFile scans and parses the source text of a single file (name is used
// only in scan error messages) into its top-level statement list. The
// returned error, if non-nil, is always an *Errors.
func ParseFile(name string, src []byte) ([]ast.Stmt, error) {
	var p parser
	var scanErrs scanner.ErrorList
	p.scan.Init(name, src, func(pos stdtoken.Position, msg string) { scanErrs.Add(pos, msg) })
	p.advance()

	stmts := p.parseProgram()
	scanErrs.Sort()

	if len(scanErrs) == 0 && len(p.errors) == 0 {
		return stmts, nil
	}
	return stmts, &Errors{Scan: scanErrs, Syntax: p.errors}
}

// errParse unwinds the Go call stack back to declaration(), where
// synchronize() picks up scanning at the next statement boundary. It carries
// no information of its own: the actual error was already appended to
// p.errors by whichever of errorAt/errorHere/missingFunctionName raised it.
var errParse = errors.New("parse error")

// parser walks a token stream one token of lookahead at a time, following
// the classic precedence ladder (assignment, or, and, equality, comparison,
// term, factor, unary, call, primary) from lowest to highest binding power.
type parser struct {
	scan scanner.Scanner
	tok  token.Token
	val  token.Value

	errors SyntaxErrors
}

func (p *parser) advance() {
	p.tok = p.scan.Scan(&p.val)
}

// expect consumes the current token if it is tok, returning its position;
// otherwise it records a parse error and unwinds via errParse.
func (p *parser) expect(tok token.Token) token.Pos {
	if p.tok != tok {
		p.errorHere(fmt.Sprintf("expect %s", tok))
		panic(errParse)
	}
	pos := p.val.Pos
	p.advance()
	return pos
}

// expectSemi consumes a trailing semicolon, the same as expect(token.SEMI),
// except that a statement may omit it when it is immediately followed by
// end of file (SPEC_FULL.md's resolution of spec.md's open question on
// trailing semicolons).
func (p *parser) expectSemi() {
	if p.tok == token.EOF {
		return
	}
	p.expect(token.SEMI)
}

func (p *parser) errorAt(line int, msg string) {
	p.errors = append(p.errors, &SyntaxError{Kind: MalformedExpression, Line: line, Msg: msg})
}

// errorHere reports msg at the current token's position, or, if the current
// token is EOF, reports the distinct "unexpected end of file" error instead
// (a missing line number there would be meaningless).
func (p *parser) errorHere(msg string) {
	if p.tok == token.EOF {
		p.errors = append(p.errors, &SyntaxError{Kind: UnexpectedEOF})
		return
	}
	p.errorAt(p.val.Pos.Line(), msg)
}
