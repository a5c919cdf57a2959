package parser

import (
	"strconv"

	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/token"
)

func (p *parser) expression() ast.Expr { return p.assignment() }

// assignment is the only right-associative level: `a = b = c` parses as
// `a = (b = c)`. The left-hand side is parsed as an ordinary expression and
// only checked to be a variable reference once an `=` is seen, since the
// grammar can't distinguish an assignment target from any other expression
// until after it has already been parsed.
func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.tok == token.EQ {
		pos := p.val.Pos
		p.advance()
		value := p.assignment()

		if v, ok := expr.(*ast.VariableExpr); ok {
			return &ast.AssignExpr{Pos: pos, Name: v.Name, Value: value}
		}
		p.errorAt(pos.Line(), "invalid assignment target")
		return expr
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.tok == token.OR {
		pos := p.val.Pos
		p.advance()
		expr = &ast.LogicalExpr{Left: expr, Op: token.OR, Pos: pos, Right: p.and()}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.tok == token.AND {
		pos := p.val.Pos
		p.advance()
		expr = &ast.LogicalExpr{Left: expr, Op: token.AND, Pos: pos, Right: p.equality()}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.tok == token.BANG_EQ || p.tok == token.EQ_EQ {
		op, pos := p.tok, p.val.Pos
		p.advance()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Pos: pos, Right: p.comparison()}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.tok == token.GT || p.tok == token.GT_EQ || p.tok == token.LT || p.tok == token.LT_EQ {
		op, pos := p.tok, p.val.Pos
		p.advance()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Pos: pos, Right: p.term()}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op, pos := p.tok, p.val.Pos
		p.advance()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Pos: pos, Right: p.factor()}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.tok == token.STAR || p.tok == token.SLASH {
		op, pos := p.tok, p.val.Pos
		p.advance()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Pos: pos, Right: p.unary()}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.tok == token.BANG || p.tok == token.MINUS {
		op, pos := p.tok, p.val.Pos
		p.advance()
		return &ast.UnaryExpr{Pos: pos, Op: op, Right: p.unary()}
	}
	return p.call()
}

// call parses a primary expression followed by zero or more call suffixes,
// e.g. `f(1)(2)` for a function returning a function.
func (p *parser) call() ast.Expr {
	expr := p.primary()
	for p.tok == token.LPAREN {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	pos := p.val.Pos
	p.advance() // consume '('

	var args []ast.Expr
	if p.tok != token.RPAREN {
		args = append(args, p.expression())
		for p.tok == token.COMMA {
			p.advance()
			if p.tok == token.RPAREN {
				break // trailing comma
			}
			args = append(args, p.expression())
		}
	}
	p.expect(token.RPAREN)

	if len(args) > 255 {
		p.errorAt(pos.Line(), "can't have more than 255 arguments")
	}
	return &ast.CallExpr{Callee: callee, Pos: pos, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch p.tok {
	case token.FALSE:
		pos := p.val.Pos
		p.advance()
		return &ast.LiteralExpr{Pos: pos, Kind: token.FALSE, Value: false}

	case token.TRUE:
		pos := p.val.Pos
		p.advance()
		return &ast.LiteralExpr{Pos: pos, Kind: token.TRUE, Value: true}

	case token.NIL:
		pos := p.val.Pos
		p.advance()
		return &ast.LiteralExpr{Pos: pos, Kind: token.NIL, Value: nil}

	case token.NUMBER:
		pos, lit := p.val.Pos, p.val.Literal
		p.advance()
		f, _ := strconv.ParseFloat(lit, 64) // the scanner guarantees a well-formed literal
		return &ast.LiteralExpr{Pos: pos, Kind: token.NUMBER, Value: f}

	case token.STRING:
		pos, lit := p.val.Pos, p.val.Literal
		p.advance()
		return &ast.LiteralExpr{Pos: pos, Kind: token.STRING, Value: lit}

	case token.IDENT:
		pos, name := p.val.Pos, p.val.Raw
		p.advance()
		return &ast.VariableExpr{Pos: pos, Name: name}

	case token.LPAREN:
		pos := p.val.Pos
		p.advance()
		inner := p.expression()
		p.expect(token.RPAREN)
		return &ast.GroupingExpr{Pos: pos, Inner: inner}
	}

	p.errorHere("expect expression")
	panic(errParse)
}
