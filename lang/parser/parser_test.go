package parser_test

import (
	"testing"

	"github.com/mna/loxtree/lang/ast"
	"github.com/mna/loxtree/lang/parser"
	"github.com/mna/loxtree/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, err := parser.ParseFile("test", []byte(src))
	require.NoError(t, err)
	return stmts
}

func TestParsePrecedence(t *testing.T) {
	stmts := parseOK(t, "1 + 2 * 3 == 7;")
	require.Len(t, stmts, 1)

	es, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)

	eq, ok := es.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.EQ_EQ, eq.Op)

	add, ok := eq.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	stmts := parseOK(t, "var a = 0; var b = 0; a = b = 3;")
	require.Len(t, stmts, 3)

	es := stmts[2].(*ast.ExprStmt)
	outer, ok := es.Expr.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Name)

	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name)
}

func TestParseLogicalShortCircuitDistinctFromBinary(t *testing.T) {
	stmts := parseOK(t, "1 and 2 or 3;")
	es := stmts[0].(*ast.ExprStmt)
	_, ok := es.Expr.(*ast.LogicalExpr)
	assert.True(t, ok)
}

func TestParseCallTrailingComma(t *testing.T) {
	stmts := parseOK(t, "f(1, 2, 3,);")
	es := stmts[0].(*ast.ExprStmt)
	call, ok := es.Expr.(*ast.CallExpr)
	require.True(t, ok)
	assert.Len(t, call.Args, 3)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parseOK(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)

	_, ok = outer.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok)

	wh, ok := outer.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)

	body, ok := wh.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	_, ok = body.Stmts[0].(*ast.PrintStmt)
	assert.True(t, ok)
	_, ok = body.Stmts[1].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseForMissingClausesDefaultCondToTrue(t *testing.T) {
	stmts := parseOK(t, "for (;;) { 1; }")
	wh, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	lit, ok := wh.Cond.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts := parseOK(t, "fun add(a, b) { return a + b; }")
	fn, ok := stmts[0].(*ast.FunStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseTrailingSemicolonOmittedAtEOF(t *testing.T) {
	stmts := parseOK(t, "print 1")
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	assert.True(t, ok)

	stmts = parseOK(t, "var x = 1")
	require.Len(t, stmts, 1)
	_, ok = stmts[0].(*ast.VarStmt)
	assert.True(t, ok)

	stmts = parseOK(t, "return 1")
	require.Len(t, stmts, 1)
	_, ok = stmts[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseMalformedExpressionError(t *testing.T) {
	_, err := parser.ParseFile("test", []byte("var x = ;"))
	require.Error(t, err)

	errs, ok := err.(*parser.Errors)
	require.True(t, ok)
	require.Len(t, errs.Syntax, 1)
	assert.Equal(t, parser.MalformedExpression, errs.Syntax[0].Kind)
	assert.Contains(t, errs.Syntax[0].Error(), "Malformed expression [line 1]:")
}

func TestParseUnexpectedEndOfFile(t *testing.T) {
	_, err := parser.ParseFile("test", []byte("var x ="))
	require.Error(t, err)

	errs := err.(*parser.Errors)
	require.Len(t, errs.Syntax, 1)
	assert.Equal(t, "Unexpected end of file", errs.Syntax[0].Error())
}

func TestParseMissingFunctionName(t *testing.T) {
	_, err := parser.ParseFile("test", []byte("fun (a) { return a; }"))
	require.Error(t, err)

	errs := err.(*parser.Errors)
	require.Len(t, errs.Syntax, 1)
	assert.Equal(t, parser.MissingFunctionName, errs.Syntax[0].Kind)
}

func TestParseSynchronizeRecoversMultipleErrors(t *testing.T) {
	_, err := parser.ParseFile("test", []byte("var x = ;\nvar y = ;\nvar z = 1;"))
	require.Error(t, err)

	errs := err.(*parser.Errors)
	assert.Len(t, errs.Syntax, 2)
}
