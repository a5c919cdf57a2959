// Package scanner tokenizes Lox source text. It is a straightforward
// hand-rolled scanner (the scanner is an external collaborator to the
// evaluator per the language design, not a core concern): it advances a
// rune at a time, recognizes the fixed punctuation/operator/keyword set,
// decimal number literals, double-quoted strings, and `//` comments, and
// reports errors through a stdlib go/scanner.ErrorList the same way the
// parser does.
package scanner

import (
	"fmt"
	"go/scanner"
	stdtoken "go/token"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mna/loxtree/lang/token"
)

type (
	// Error and ErrorList are re-exported from the standard library's
	// go/scanner package: a position-and-message error and a sortable,
	// deduplicating collection of them. Reusing them here (rather than
	// hand-rolling an equivalent type) keeps scan errors accumulating and
	// sorting the same way the parser's do; only the display format (below)
	// is specific to this language.
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError writes err to w, one line per error, in the `[line N] Error:
// message` form. It accepts a single *Error, an ErrorList, or any other
// error value (printed with its default formatting).
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "[line %d] Error: %s\n", e.Pos.Line, e.Msg)
		}
		return
	}
	if e, ok := err.(*Error); ok {
		fmt.Fprintf(w, "[line %d] Error: %s\n", e.Pos.Line, e.Msg)
		return
	}
	fmt.Fprintln(w, err)
}

// TokenAndValue pairs a Token with its scanned Value.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFile tokenizes the source text of a single file (identified by name,
// used only in error messages) and returns every token up to and including
// the terminating EOF, plus any accumulated scan errors. Scanning does not
// stop at the first error: it continues so that ScanFile reports as many
// problems as possible in one pass, matching the design of Error/ErrorList.
func ScanFile(name string, src []byte) ([]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	s.Init(name, src, func(pos stdtoken.Position, msg string) { el.Add(pos, msg) })

	var toks []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return toks, el.Err()
}

// Scanner tokenizes a single source file.
type Scanner struct {
	name string
	src  []byte
	err  func(pos stdtoken.Position, msg string)

	sb   strings.Builder
	cur  rune // current character, -1 at end of file
	off  int  // byte offset of cur
	roff int  // byte offset following cur
	line int  // 1-based line of cur
	col  int  // 1-based column of cur
}

// Init resets s to scan a new file named name with contents src.
func (s *Scanner) Init(name string, src []byte, errHandler func(stdtoken.Position, string)) {
	s.name = name
	s.src = src
	s.err = errHandler
	s.sb.Reset()
	s.off, s.roff = 0, 0
	s.line, s.col = 1, 0
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advance reads the next rune into s.cur; s.cur == -1 at end of file.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.errorAt(s.line, s.col+1, fmt.Sprintf("Unexpected character: %c", s.src[s.roff]))
		}
	}
	s.roff += w
	s.col++
	s.cur = r
}

// advanceIf consumes the current rune and returns true if it equals want.
func (s *Scanner) advanceIf(want rune) bool {
	if s.cur == want {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) errorAt(line, col int, msg string) {
	if s.err != nil {
		s.err(stdtoken.Position{Filename: s.name, Line: line, Column: col}, msg)
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case s.cur == ' ' || s.cur == '\t' || s.cur == '\r' || s.cur == '\n':
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

// Scan returns the next token. At end of file it returns token.EOF
// repeatedly.
func (s *Scanner) Scan(tokVal *token.Value) token.Token {
	s.skipWhitespaceAndComments()

	line, col := s.line, s.col
	pos := token.MakePos(line, max1(col))
	startOff := s.off

	switch cur := s.cur; {
	case cur == -1:
		*tokVal = token.Value{Pos: pos}
		return token.EOF

	case isDigit(cur):
		lit := s.number()
		*tokVal = token.Value{Pos: pos, Raw: lit, Literal: lit}
		return token.NUMBER

	case isAlpha(cur):
		lit := s.identifier()
		*tokVal = token.Value{Pos: pos, Raw: lit, Literal: lit}
		return token.Lookup(lit)

	case cur == '"':
		lit, val, ok := s.string(line, col)
		*tokVal = token.Value{Pos: pos, Raw: lit, Literal: val}
		if !ok {
			return token.ILLEGAL
		}
		return token.STRING
	}

	s.advance()
	tok := token.ILLEGAL
	switch s.src[startOff] {
	case '(':
		tok = token.LPAREN
	case ')':
		tok = token.RPAREN
	case '{':
		tok = token.LBRACE
	case '}':
		tok = token.RBRACE
	case ',':
		tok = token.COMMA
	case '.':
		tok = token.DOT
	case '-':
		tok = token.MINUS
	case '+':
		tok = token.PLUS
	case ';':
		tok = token.SEMI
	case '*':
		tok = token.STAR
	case '/':
		tok = token.SLASH
	case '!':
		tok = token.BANG
		if s.advanceIf('=') {
			tok = token.BANG_EQ
		}
	case '=':
		tok = token.EQ
		if s.advanceIf('=') {
			tok = token.EQ_EQ
		}
	case '<':
		tok = token.LT
		if s.advanceIf('=') {
			tok = token.LT_EQ
		}
	case '>':
		tok = token.GT
		if s.advanceIf('=') {
			tok = token.GT_EQ
		}
	default:
		s.errorAt(line, col, fmt.Sprintf("Unexpected character: %c", s.src[startOff]))
	}

	*tokVal = token.Value{Pos: pos, Raw: string(s.src[startOff:s.off])}
	return tok
}

func max1(col int) int {
	if col < 1 {
		return 1
	}
	return col
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }

func (s *Scanner) identifier() string {
	start := s.off
	for isAlphaNumeric(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number recognizes the grammar [0-9]+('.'[0-9]*)? — digits, optionally
// followed by a dot and more (possibly zero) digits. The dot, once seen, is
// always consumed as part of the number, trailing digits or not (`8.` is a
// valid literal).
func (s *Scanner) number() string {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
	return string(s.src[start:s.off])
}

// string scans a double-quoted string literal. Strings may span multiple
// lines and carry no escape sequences. An unterminated string is reported
// at its starting line, per the language design.
func (s *Scanner) string(startLine, startCol int) (lit, val string, ok bool) {
	start := s.off
	s.advance() // consume opening quote

	s.sb.Reset()
	for s.cur != '"' && s.cur != -1 {
		s.sb.WriteRune(s.cur)
		s.advance()
	}

	if s.cur == -1 {
		s.errorAt(startLine, startCol, "Unterminated string.")
		return string(s.src[start:s.off]), s.sb.String(), false
	}

	s.advance() // consume closing quote
	return string(s.src[start:s.off]), s.sb.String(), true
}
