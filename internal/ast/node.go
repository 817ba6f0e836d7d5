// Package ast defines the syntax tree consumed by the unparser.
//
// The tree mirrors the s-expressions produced by the Ruby parser gem:
// every node carries a Kind and an ordered list of children. A child is
// one of
//   - *Node - a nested node
//   - nil - an absent child (for example the receiver of `foo`)
//   - string - identifier, symbol name or string contents
//   - int64 or *big.Int - integer literal value
//   - float64 - float literal value, possibly ±Inf or NaN
//   - *big.Rat - rational literal value
//   - complex128 - imaginary literal value
//
// Nodes are immutable after construction. Source locations are optional
// and only used to re-attach comments.
package ast

import (
	"fmt"
	"math"
	"math/big"

	"github.com/kolkov/unparser/internal/token"
)

// Location holds the source ranges of a node.
type Location struct {
	// Expression covers the whole node.
	Expression token.Range
	// End covers the closing keyword (`end` or `}`) when there is one.
	End token.Range
}

// Node is a single syntax tree node.
type Node struct {
	Kind     Kind
	Children []any
	Loc      *Location
}

// New creates a node without location information.
func New(kind Kind, children ...any) *Node {
	return &Node{Kind: kind, Children: children}
}

// WithLoc returns a shallow copy of n carrying loc.
func (n *Node) WithLoc(loc *Location) *Node {
	c := *n
	c.Loc = loc
	return &c
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i-th child or nil when i is out of range.
func (n *Node) Child(i int) any {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// NodeAt returns the i-th child if it is a node, nil otherwise.
func (n *Node) NodeAt(i int) *Node {
	c, _ := n.Child(i).(*Node)
	return c
}

// StringAt returns the i-th child if it is a string, "" otherwise.
func (n *Node) StringAt(i int) string {
	s, _ := n.Child(i).(string)
	return s
}

// Nodes returns the node children starting at index from, skipping
// absent children.
func (n *Node) Nodes(from int) []*Node {
	if n == nil || from >= len(n.Children) {
		return nil
	}
	out := make([]*Node, 0, len(n.Children)-from)
	for _, c := range n.Children[from:] {
		if cn, ok := c.(*Node); ok && cn != nil {
			out = append(out, cn)
		}
	}
	return out
}

// Is reports whether n is non-nil and of one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// Range returns the expression range of n, or a zero range.
func (n *Node) Range() token.Range {
	if n == nil || n.Loc == nil {
		return token.Range{}
	}
	return n.Loc.Expression
}

// EndRange returns the range of the closing keyword of n, or a zero range.
func (n *Node) EndRange() token.Range {
	if n == nil || n.Loc == nil {
		return token.Range{}
	}
	return n.Loc.End
}

// String returns the s-expression form of n.
func (n *Node) String() string {
	return String(n)
}

// Equal reports whether a and b are structurally equal, ignoring
// locations.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !equalChild(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func equalChild(a, b any) bool {
	switch av := a.(type) {
	case *Node:
		bv, ok := b.(*Node)
		return ok && Equal(av, bv)
	case nil:
		if bn, ok := b.(*Node); ok {
			return bn == nil
		}
		return b == nil
	case int64, *big.Int:
		ai, aok := Integer(a)
		bi, bok := Integer(b)
		return aok && bok && ai.Cmp(bi) == 0
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) && math.IsNaN(bv) {
			return true
		}
		return av == bv
	case *big.Rat:
		bv, ok := b.(*big.Rat)
		return ok && av.Cmp(bv) == 0
	default:
		return a == b
	}
}

// Integer converts an integer child to *big.Int.
func Integer(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case int64:
		return big.NewInt(x), true
	case int:
		return big.NewInt(int64(x)), true
	case *big.Int:
		return x, x != nil
	default:
		return nil, false
	}
}

// -----------------------------------------------------------------------------
// Constructor helpers
// -----------------------------------------------------------------------------

// S creates a node from a parser gem type name. It panics on unknown
// names and is meant for tests and hand-built trees.
func S(name string, children ...any) *Node {
	k := LookupKind(name)
	if !k.IsValid() {
		panic(fmt.Sprintf("ast: unknown node type %q", name))
	}
	return New(k, children...)
}

// Bare returns the zero-argument method call `name`.
func Bare(name string) *Node {
	return New(Send, nil, name)
}

// LvarNode returns a local variable reference.
func LvarNode(name string) *Node {
	return New(Lvar, name)
}

// IntNode returns an integer literal.
func IntNode(v int64) *Node {
	return New(Int, v)
}

// SymNode returns a symbol literal.
func SymNode(name string) *Node {
	return New(Sym, name)
}

// StrNode returns a string literal.
func StrNode(s string) *Node {
	return New(Str, s)
}
