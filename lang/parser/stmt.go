package parser

import (
	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/token"
	"golang.org/x/exp/slices"
)

// parseProgram parses a full source file: a sequence of declarations up to
// EOF.
func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.EOF {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// declaration parses one top-level-or-block statement, recovering from a
// parse error by discarding tokens up to the next statement boundary so
// that a single mistake doesn't prevent the rest of the file from being
// checked. A recovered statement contributes nothing to the tree (nil),
// rather than a placeholder "bad statement" node, since nothing downstream
// of parsing (the `parse` CLI printer, the evaluator) ever runs over a tree
// that carried a parse error in the first place.
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errParse {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch p.tok {
	case token.VAR:
		return p.varDecl()
	case token.FUN:
		return p.funDecl()
	default:
		return p.statement()
	}
}

// syncPoints are the tokens synchronize() treats as the start of a new
// statement, besides a semicolon.
var syncPoints = []token.Token{
	token.CLASS, token.FUN, token.VAR, token.FOR,
	token.IF, token.WHILE, token.PRINT, token.RETURN,
}

// synchronize discards tokens until it reaches one that plausibly begins a
// fresh statement: a semicolon (consumed, since it ends the broken
// statement) or a statement-leading keyword (left for the next declaration
// call to consume).
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMI {
			p.advance()
			return
		}
		if slices.Contains(syncPoints, p.tok) {
			return
		}
		p.advance()
	}
}

func (p *parser) varDecl() ast.Stmt {
	pos := p.val.Pos
	p.advance() // consume 'var'

	if p.tok != token.IDENT {
		p.errorHere("expect variable name")
		panic(errParse)
	}
	name := p.val.Raw
	p.advance()

	var init ast.Expr = &ast.LiteralExpr{Pos: pos, Kind: token.NIL, Value: nil}
	if p.tok == token.EQ {
		p.advance()
		init = p.expression()
	}
	p.expectSemi()
	return &ast.VarStmt{Pos: pos, Name: name, Init: init}
}

func (p *parser) funDecl() ast.Stmt {
	pos := p.val.Pos
	p.advance() // consume 'fun'

	if p.tok != token.IDENT {
		line := pos.Line()
		if !p.val.Pos.Unknown() {
			line = p.val.Pos.Line()
		}
		p.errors = append(p.errors, &SyntaxError{Kind: MissingFunctionName, Line: line})
		if p.tok == token.LPAREN {
			// parse the rest of the declaration so that recovery resumes after
			// its body, not inside it
			p.funBody(pos, "")
		}
		panic(errParse)
	}
	name := p.val.Raw
	p.advance()
	return p.funBody(pos, name)
}

func (p *parser) funBody(pos token.Pos, name string) ast.Stmt {
	p.expect(token.LPAREN)

	var params []string
	if p.tok != token.RPAREN {
		params = append(params, p.paramName())
		for p.tok == token.COMMA {
			p.advance()
			if p.tok == token.RPAREN {
				break // trailing comma
			}
			params = append(params, p.paramName())
		}
	}
	p.expect(token.RPAREN)
	if len(params) > 255 {
		p.errorAt(pos.Line(), "can't have more than 255 parameters")
	}

	p.expect(token.LBRACE)
	body := p.blockStmts()
	return &ast.FunStmt{Pos: pos, Name: name, Params: params, Body: body}
}

func (p *parser) paramName() string {
	if p.tok != token.IDENT {
		p.errorHere("expect parameter name")
		panic(errParse)
	}
	name := p.val.Raw
	p.advance()
	return name
}

func (p *parser) statement() ast.Stmt {
	switch p.tok {
	case token.PRINT:
		return p.printStmt()
	case token.LBRACE:
		return p.blockStmt()
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.FOR:
		return p.forStmt()
	case token.RETURN:
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() ast.Stmt {
	pos := p.val.Pos
	p.advance()
	expr := p.expression()
	p.expectSemi()
	return &ast.PrintStmt{Pos: pos, Expr: expr}
}

func (p *parser) exprStmt() ast.Stmt {
	pos := p.val.Pos
	expr := p.expression()
	p.expectSemi()
	return &ast.ExprStmt{Pos: pos, Expr: expr}
}

func (p *parser) blockStmt() ast.Stmt {
	pos := p.val.Pos
	p.advance() // consume '{'
	return &ast.BlockStmt{Pos: pos, Stmts: p.blockStmts()}
}

func (p *parser) blockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE)
	return stmts
}

func (p *parser) ifStmt() ast.Stmt {
	pos := p.val.Pos
	p.advance()
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)

	then := p.statement()
	var els ast.Stmt
	if p.tok == token.ELSE {
		p.advance()
		els = p.statement()
	}
	return &ast.IfStmt{Pos: pos, Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStmt() ast.Stmt {
	pos := p.val.Pos
	p.advance()
	p.expect(token.LPAREN)
	cond := p.expression()
	p.expect(token.RPAREN)
	return &ast.WhileStmt{Pos: pos, Cond: cond, Body: p.statement()}
}

// forStmt desugars `for (init; cond; inc) body` into a block containing
// init followed by a while loop over cond whose body runs body then inc,
// per the language design. Missing clauses default: cond to `true`,
// init/inc to nothing at all.
func (p *parser) forStmt() ast.Stmt {
	pos := p.val.Pos
	p.advance()
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok {
	case token.SEMI:
		p.advance()
	case token.VAR:
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr = &ast.LiteralExpr{Pos: pos, Kind: token.TRUE, Value: true}
	if p.tok != token.SEMI {
		cond = p.expression()
	}
	p.expect(token.SEMI)

	var inc ast.Expr
	if p.tok != token.RPAREN {
		inc = p.expression()
	}
	p.expect(token.RPAREN)

	body := p.statement()
	if inc != nil {
		body = &ast.BlockStmt{Pos: pos, Stmts: []ast.Stmt{body, &ast.ExprStmt{Pos: pos, Expr: inc}}}
	}
	body = &ast.WhileStmt{Pos: pos, Cond: cond, Body: body}
	if init != nil {
		body = &ast.BlockStmt{Pos: pos, Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) returnStmt() ast.Stmt {
	pos := p.val.Pos
	p.advance()

	var value ast.Expr = &ast.LiteralExpr{Pos: pos, Kind: token.NIL, Value: nil}
	if p.tok != token.SEMI && p.tok != token.EOF {
		value = p.expression()
	}
	p.expectSemi()
	return &ast.ReturnStmt{Pos: pos, Value: value}
}
