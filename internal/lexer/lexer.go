// Package lexer tokenizes the s-expression notation of Ruby syntax trees.
//
// The notation is the one printed by the Ruby parser gem, extended with
// optional location annotations:
//
//	(lvasgn @1:0-1:7 :a
//	  (int @1:4-1:7 1))
//
// `;` starts a comment that runs to the end of the line.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kolkov/unparser/internal/token"
)

// Lexer tokenizes s-expression source.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF)
	offset  int            // Current byte offset
	pos     token.Position // Current position
	nextPos token.Position // Position of next character
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.pos

	if l.ch == 0 {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}

	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}

	case '"':
		s, ok := l.scanQuoted()
		if !ok {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated or invalid string"}
		}
		return Token{Type: token.STRING, Pos: pos, Value: s}

	case ':':
		return l.scanSymbol(pos)

	case '@':
		return l.scanLocation(pos)

	case '-', '+':
		if isDigit(l.peek()) || l.hasPrefix("Infinity", 1) {
			return l.scanNumber(pos)
		}
	}

	if isDigit(l.ch) {
		return l.scanNumber(pos)
	}
	if isIdentStart(l.ch) {
		return l.scanIdent(pos)
	}

	ch := l.ch
	l.next()
	return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected character " + strconv.QuoteRune(rune(ch))}
}

func (l *Lexer) scanQuoted() (string, bool) {
	start := l.endOffset()
	l.next() // consume opening quote
	for l.ch != '"' {
		if l.ch == 0 {
			return "", false
		}
		if l.ch == '\\' {
			l.next()
			if l.ch == 0 {
				return "", false
			}
		}
		l.next()
	}
	end := l.endOffset() + 1
	l.next() // consume closing quote
	s, err := strconv.Unquote(string(l.src[start:end]))
	if err != nil {
		return "", false
	}
	return s, true
}

func (l *Lexer) scanSymbol(pos token.Position) Token {
	l.next() // consume ':'
	if l.ch == '"' {
		s, ok := l.scanQuoted()
		if !ok {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated or invalid symbol"}
		}
		return Token{Type: token.SYMBOL, Pos: pos, Value: s}
	}
	if l.ch == 0 || isDelimiter(l.ch) {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "empty symbol"}
	}
	start := l.endOffset()
	for l.ch != 0 && !isDelimiter(l.ch) {
		l.next()
	}
	return Token{Type: token.SYMBOL, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

// scanLocation scans `@line:col-line:col` or `@end:line:col-line:col`.
func (l *Lexer) scanLocation(pos token.Position) Token {
	l.next() // consume '@'
	typ := token.LOCATION
	if l.hasPrefix("end:", 0) {
		typ = token.END_LOCATION
		for i := 0; i < len("end:"); i++ {
			l.next()
		}
	}
	if !isDigit(l.ch) {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "empty location"}
	}
	start := l.endOffset()
	for isDigit(l.ch) || l.ch == ':' || l.ch == '-' {
		l.next()
	}
	return Token{Type: typ, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

// scanNumber scans integers, floats and the rational (`3r`, `3/2r`) and
// imaginary (`2i`) suffix forms.
func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset
	if l.ch == '-' || l.ch == '+' {
		l.next()
	}
	if l.hasPrefix("Infinity", 0) {
		for i := 0; i < len("Infinity"); i++ {
			l.next()
		}
		return Token{Type: token.FLOAT, Pos: pos, Value: string(l.src[start:l.endOffset()])}
	}

	typ := token.INTEGER
	for isDigit(l.ch) || l.ch == '_' {
		l.next()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		typ = token.FLOAT
		l.next()
		for isDigit(l.ch) || l.ch == '_' {
			l.next()
		}
	}
	// Check for exponent: only consume e/E if followed by digit or +/- then digit
	if l.ch == 'e' || l.ch == 'E' {
		if l.hasValidExponent() {
			typ = token.FLOAT
			l.next() // consume e/E
			if l.ch == '+' || l.ch == '-' {
				l.next()
			}
			for isDigit(l.ch) {
				l.next()
			}
		}
	}
	if l.ch == '/' && typ == token.INTEGER && isDigit(l.peek()) {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
		if l.ch != 'r' {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "fraction without r suffix"}
		}
	}
	switch l.ch {
	case 'r':
		typ = token.RATIONAL
		l.next()
	case 'i':
		typ = token.COMPLEX
		l.next()
	}
	value := strings.ReplaceAll(string(l.src[start:l.endOffset()]), "_", "")
	return Token{Type: typ, Pos: pos, Value: value}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	// defined? is the only node type carrying a suffix
	if l.ch == '?' {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	switch name {
	case "Infinity", "NaN":
		return Token{Type: token.FLOAT, Pos: pos, Value: name}
	}
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// endOffset returns the correct end offset for slicing l.src.
// At EOF, l.pos is not updated, so we use len(l.src); otherwise l.pos.Offset.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

// hasValidExponent checks if current e/E is followed by a valid exponent.
// Returns true if next char is digit, or +/- followed by digit.
func (l *Lexer) hasValidExponent() bool {
	idx := l.offset // Next char position (after e/E)
	if idx >= len(l.src) {
		return false
	}

	ch := l.src[idx]
	if isDigit(ch) {
		return true
	}
	if ch == '+' || ch == '-' {
		idx++
		if idx < len(l.src) && isDigit(l.src[idx]) {
			return true
		}
	}
	return false
}

// peek returns the character after the current one without consuming it.
func (l *Lexer) peek() byte {
	if l.offset >= len(l.src) {
		return 0
	}
	return l.src[l.offset]
}

// hasPrefix reports whether the source at the current character plus skip
// bytes starts with s.
func (l *Lexer) hasPrefix(s string, skip int) bool {
	if l.ch == 0 {
		return false
	}
	idx := l.endOffset() + skip
	return idx <= len(l.src) && strings.HasPrefix(string(l.src[idx:]), s)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n', ',':
			l.next()
		case ';':
			for l.ch != 0 && l.ch != '\n' {
				l.next()
			}
		default:
			return
		}
	}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}

	l.pos = l.nextPos

	// Handle UTF-8
	if l.src[l.offset] >= utf8.RuneSelf {
		_, size := utf8.DecodeRune(l.src[l.offset:])
		l.offset += size
		l.nextPos.Column += size
		l.nextPos.Offset = l.offset
		l.ch = utf8.RuneSelf // Non-ASCII runes only occur inside quoted atoms
		return
	}

	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

// Helper functions

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '(', ')', '"', ';', ',':
		return true
	default:
		return false
	}
}
