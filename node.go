package unparser

import (
	"strings"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/comments"
	"github.com/kolkov/unparser/internal/token"
)

// Node is a syntax tree node: a parser gem node type and its children.
// Children are nodes, nil, strings (names and string values), int64 or
// *big.Int, float64, *big.Rat and complex128.
type Node = ast.Node

// Location holds the source ranges of a node.
type Location = ast.Location

// Comment is a source comment with its range.
type Comment = ast.Comment

// CommentKind distinguishes `#` comments from `=begin` documents.
type CommentKind = ast.CommentKind

// Range is a source range, written `line:col-line:col`.
type Range = token.Range

// Comment kinds.
const (
	InlineKind   = ast.Inline
	DocumentKind = ast.Document
)

// S builds a node from its parser gem type name, as in `s(:send, nil,
// :foo)`. It panics on an unknown name.
func S(kind string, children ...any) *Node {
	return ast.S(kind, children...)
}

// ParseRange reads a `line:col-line:col` range.
func ParseRange(s string) (Range, error) {
	return token.ParseRange(s)
}

// Association links a comment to the node it documents.
type Association = comments.Association

// Associate maps each comment to the node it documents: trailing comments
// to the node ending on their line, others to the node that follows them.
// Comments without a located node nearby are left out.
func Associate(root *Node, cs []Comment) []Association {
	return comments.Associate(root, cs)
}

// Sexp returns the s-expression of n in the parser gem's indented layout,
// with location annotations where n carries them. Parse reads it back.
func Sexp(n *Node) string {
	var sb strings.Builder
	_ = ast.NewPrinter(&sb).WithLocations().Multiline().Print(n)
	return sb.String()
}
