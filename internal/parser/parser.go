package parser

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/lexer"
	"github.com/kolkov/unparser/internal/token"
)

// tokenName returns a human-readable name for a token type.
func tokenName(t token.Token) string {
	switch t {
	case token.ILLEGAL:
		return "illegal"
	case token.EOF:
		return "end of file"
	case token.LPAREN:
		return "("
	case token.RPAREN:
		return ")"
	case token.LOCATION:
		return "location"
	case token.END_LOCATION:
		return "end location"
	case token.NIL:
		return "nil"
	case token.NAME:
		return "name"
	case token.SYMBOL:
		return "symbol"
	case token.STRING:
		return "string"
	case token.INTEGER:
		return "integer"
	case token.FLOAT:
		return "float"
	case token.RATIONAL:
		return "rational"
	case token.COMPLEX:
		return "complex"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 10000

// Parser is a recursive descent reader for s-expressions.
type Parser struct {
	lexer *lexer.Lexer // Lexer instance
	tok   lexer.Token  // Current token
	err   *ParseError  // First error, parsing stops there
	depth int
}

// Parse reads a single node from src. Empty input yields a nil node.
func Parse(src string) (*ast.Node, error) {
	return ParseBytes([]byte(src))
}

// ParseBytes reads a single node from a byte slice.
func ParseBytes(src []byte) (*ast.Node, error) {
	p := &Parser{
		lexer: lexer.New(src),
	}
	p.next() // Initialize first token

	if p.tok.Type == token.EOF {
		return nil, nil
	}
	node := p.parseNode()
	if p.err == nil && p.tok.Type != token.EOF {
		p.error(expectedError(p.tok.Pos, "end of file", p.tokenDesc()))
	}
	if p.err != nil {
		return nil, p.err
	}
	return node, nil
}

// MustParse is like Parse but panics on error. Meant for tests.
func MustParse(src string) *ast.Node {
	node, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return node
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

// expect checks that the current token is tok and advances.
// If not, it records an error.
func (p *Parser) expect(tok token.Token) bool {
	if p.tok.Type != tok {
		p.error(expectedError(p.tok.Pos, tokenName(tok), p.tokenDesc()))
		return false
	}
	p.next()
	return true
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.INTEGER, token.FLOAT:
		return p.tok.Value
	case token.ILLEGAL:
		// ILLEGAL token's Value contains the actual error message
		return p.tok.Value
	case token.EOF:
		return "end of file"
	default:
		return tokenName(p.tok.Type)
	}
}

// error records the first parse error.
func (p *Parser) error(err *ParseError) {
	if p.err == nil {
		p.err = err
	}
}

// -----------------------------------------------------------------------------
// Nodes
// -----------------------------------------------------------------------------

func (p *Parser) parseNode() *ast.Node {
	if p.depth++; p.depth > maxDepth {
		p.error(errorf(p.tok.Pos, "nesting deeper than %d", maxDepth))
		return nil
	}
	defer func() { p.depth-- }()

	if !p.expect(token.LPAREN) {
		return nil
	}

	namePos := p.tok.Pos
	name := p.tok.Value
	if p.tok.Type != token.NAME && p.tok.Type != token.NIL {
		p.error(expectedError(namePos, "node type", p.tokenDesc()))
		return nil
	}
	kind := ast.LookupKind(name)
	if !kind.IsValid() {
		p.error(errorf(namePos, "unknown node type %q", name))
		return nil
	}
	p.next()

	node := &ast.Node{Kind: kind}
	p.parseLocations(node)

	for p.err == nil && p.tok.Type != token.RPAREN {
		if p.tok.Type == token.EOF {
			p.error(expectedError(p.tok.Pos, ")", "end of file"))
			return nil
		}
		node.Children = append(node.Children, p.parseChild())
	}
	if p.err != nil {
		return nil
	}
	p.next() // consume ')'
	return node
}

func (p *Parser) parseLocations(node *ast.Node) {
	for p.tok.Type == token.LOCATION || p.tok.Type == token.END_LOCATION {
		r, err := token.ParseRange(p.tok.Value)
		if err != nil {
			p.error(errorf(p.tok.Pos, "%v", err))
			return
		}
		if node.Loc == nil {
			node.Loc = &ast.Location{}
		}
		if p.tok.Type == token.LOCATION {
			node.Loc.Expression = r
		} else {
			node.Loc.End = r
		}
		p.next()
	}
}

func (p *Parser) parseChild() any {
	tok := p.tok
	switch tok.Type {
	case token.LPAREN:
		return p.parseNode()
	case token.NIL:
		p.next()
		return nil
	case token.SYMBOL, token.STRING:
		p.next()
		return tok.Value
	case token.INTEGER:
		p.next()
		return parseInteger(tok.Value)
	case token.FLOAT:
		p.next()
		f, err := parseFloat(tok.Value)
		if err != nil {
			p.error(errorf(tok.Pos, "invalid float %s", tok.Value))
		}
		return f
	case token.RATIONAL:
		p.next()
		r, ok := new(big.Rat).SetString(strings.TrimSuffix(tok.Value, "r"))
		if !ok {
			p.error(errorf(tok.Pos, "invalid rational %s", tok.Value))
		}
		return r
	case token.COMPLEX:
		p.next()
		f, err := parseFloat(strings.TrimSuffix(tok.Value, "i"))
		if err != nil || math.IsInf(f, 0) {
			p.error(errorf(tok.Pos, "invalid imaginary %s", tok.Value))
		}
		return complex(0, f)
	default:
		p.error(expectedError(tok.Pos, "child", p.tokenDesc()))
		return nil
	}
}

func parseInteger(s string) any {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	b, ok := new(big.Int).SetString(strings.TrimPrefix(s, "+"), 10)
	if !ok {
		return nil
	}
	return b
}

// parseFloat accepts Infinity/NaN spellings and maps out-of-range
// literals to ±Inf, the way Ruby reads `10e10000000000`.
func parseFloat(s string) (float64, error) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	return f, err
}
