package scanner_test

import (
	"bytes"
	"testing"

	"github.com/mna/loxtree/lang/scanner"
	"github.com/mna/loxtree/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanKinds(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := scanner.ScanFile("test", []byte(src))
	require.NoError(t, err)
	kinds := make([]token.Token, len(toks))
	for i, tv := range toks {
		kinds[i] = tv.Token
	}
	return kinds
}

func TestScanPunctuation(t *testing.T) {
	kinds := scanKinds(t, "(){},.-+;*/!!====<=<>=>")
	assert.Equal(t, []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQ, token.EQ_EQ, token.EQ, token.LT_EQ, token.LT, token.GT_EQ,
		token.GT, token.EOF,
	}, kinds)
}

func TestScanComment(t *testing.T) {
	kinds := scanKinds(t, "1 // a comment\n2")
	assert.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.EOF}, kinds)
}

func TestScanKeywordsAndIdents(t *testing.T) {
	kinds := scanKinds(t, "and class var foo while")
	assert.Equal(t, []token.Token{
		token.AND, token.CLASS, token.VAR, token.IDENT, token.WHILE, token.EOF,
	}, kinds)
}

func TestScanNumber(t *testing.T) {
	toks, err := scanner.ScanFile("test", []byte("123 45.67 8."))
	require.NoError(t, err)
	require.Len(t, toks, 4) // 123, 45.67, 8., EOF
	assert.Equal(t, "123", toks[0].Value.Literal)
	assert.Equal(t, "45.67", toks[1].Value.Literal)
	assert.Equal(t, token.NUMBER, toks[2].Token)
	assert.Equal(t, "8.", toks[2].Value.Literal)
}

func TestScanString(t *testing.T) {
	toks, err := scanner.ScanFile("test", []byte(`"hello world"`))
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Token)
	assert.Equal(t, "hello world", toks[0].Value.Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.ScanFile("test", []byte(`"unterminated`))
	require.Error(t, err)

	var buf bytes.Buffer
	scanner.PrintError(&buf, err)
	assert.Equal(t, "[line 1] Error: Unterminated string.\n", buf.String())
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := scanner.ScanFile("test", []byte("1 @ 2"))
	require.Error(t, err)

	var buf bytes.Buffer
	scanner.PrintError(&buf, err)
	assert.Equal(t, "[line 1] Error: Unexpected character: @\n", buf.String())
}

func TestScanMultipleErrorsAccumulate(t *testing.T) {
	_, err := scanner.ScanFile("test", []byte("@\n#\n"))
	require.Error(t, err)

	var buf bytes.Buffer
	scanner.PrintError(&buf, err)
	assert.Equal(t, "[line 1] Error: Unexpected character: @\n[line 2] Error: Unexpected character: #\n", buf.String())
}

func TestScanLineTracking(t *testing.T) {
	toks, err := scanner.ScanFile("test", []byte("1\n2\n\n3"))
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Value.Pos.Line())
	assert.Equal(t, 2, toks[1].Value.Pos.Line())
	assert.Equal(t, 4, toks[2].Value.Pos.Line())
}
