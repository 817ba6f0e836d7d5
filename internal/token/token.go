// Package token defines positions and the lexical tokens of the
// s-expression notation used to describe Ruby syntax trees.
package token

//go:generate stringer -type=Token -linecomment

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Delimiters
	LPAREN // (
	RPAREN // )

	// Location annotations
	LOCATION     // @line:col-line:col
	END_LOCATION // @end:line:col-line:col

	// Keywords
	keywordStart
	NIL // nil
	keywordEnd

	// Literals
	NAME     // name
	SYMBOL   // symbol
	STRING   // string
	INTEGER  // integer
	FLOAT    // float
	RATIONAL // rational
	COMPLEX  // complex
)

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is an atomic child value.
func (t Token) IsLiteral() bool {
	switch t {
	case SYMBOL, STRING, INTEGER, FLOAT, RATIONAL, COMPLEX:
		return true
	default:
		return false
	}
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"nil": NIL,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
