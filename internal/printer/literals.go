package printer

import (
	"math"
	"math/big"
	"strings"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/literal"
	"github.com/kolkov/unparser/internal/precedence"
)

func (p *printer) integer(n *ast.Node) {
	s, err := literal.Integer(n.Child(0))
	if err != nil {
		p.malformed(n, "%v", err)
	}
	p.buf.Write(s)
}

func (p *printer) float(n *ast.Node) {
	f, ok := n.Child(0).(float64)
	if !ok {
		p.malformed(n, "child 0: want float, got %s", describe(n, 0))
	}
	p.buf.Write(literal.Float(f))
}

func (p *printer) rational(n *ast.Node) {
	p.require(p.opts.Capabilities.RationalLiterals, n)
	r, ok := n.Child(0).(*big.Rat)
	if !ok || r == nil {
		p.malformed(n, "child 0: want rational, got %s", describe(n, 0))
	}
	p.buf.Write(literal.Rational(r))
}

func (p *printer) complex(n *ast.Node) {
	p.require(p.opts.Capabilities.ImaginaryLiterals, n)
	c, ok := n.Child(0).(complex128)
	if !ok {
		p.malformed(n, "child 0: want complex, got %s", describe(n, 0))
	}
	s, err := literal.Imaginary(c)
	if err != nil {
		p.malformed(n, "%v", err)
	}
	p.buf.Write(s)
}

func (p *printer) str(n *ast.Node) {
	s, ok := n.Child(0).(string)
	if !ok {
		p.malformed(n, "child 0: want string, got %s", describe(n, 0))
	}
	p.buf.Write(literal.String(s))
}

func (p *printer) sym(n *ast.Node) {
	s, ok := n.Child(0).(string)
	if !ok {
		p.malformed(n, "child 0: want string, got %s", describe(n, 0))
	}
	p.buf.Write(literal.Symbol(s))
}

// startsWithNumber reports whether the rendering of n begins with an
// unsigned numeric literal. A unary sign written right before it would be
// read as part of the literal: `-1` is a literal, `-+1` a call of -@.
func startsWithNumber(n *ast.Node) bool {
	for n != nil {
		switch n.Kind {
		case ast.Int, ast.Rational, ast.Complex:
			return !precedence.IsNegativeLiteral(n)
		case ast.Float:
			f, ok := n.Child(0).(float64)
			return ok && f >= 0 && !math.IsInf(f, 0)
		case ast.Send:
			recv := n.NodeAt(0)
			if recv == nil {
				return false
			}
			op := n.StringAt(1)
			if _, ok := precedence.UnaryOp(op); ok && n.Len() == 2 {
				return false
			}
			ctx := precedence.ReceiverContext()
			if l, assoc, ok := precedence.Binary(op); ok && precedence.Of(n) == l {
				ctx = precedence.OperandOf(l, assoc, precedence.LeftSide)
			}
			if precedence.NeedsParens(recv, precedence.Of(recv), ctx) {
				return false
			}
			n = recv
		case ast.Irange, ast.Erange:
			left := n.NodeAt(0)
			ctx := precedence.OperandOf(precedence.Range, precedence.NonAssoc, precedence.LeftSide)
			if left == nil || precedence.NeedsParens(left, precedence.Of(left), ctx) {
				return false
			}
			n = left
		default:
			return false
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Interpolation
// -----------------------------------------------------------------------------

// segment is either literal text or an interpolated node.
type segment struct {
	text string
	node *ast.Node
}

// segments flattens the parts of a dstr, dsym, xstr or regexp, merging
// adjacent literal text. Nested dstr nodes come from adjacent literals
// the parser concatenated.
func (p *printer) segments(n *ast.Node, parts []any) []segment {
	var out []segment
	var text strings.Builder
	pending := false
	flush := func() {
		if pending {
			out = append(out, segment{text: text.String()})
			text.Reset()
			pending = false
		}
	}
	var walk func(parts []any)
	walk = func(parts []any) {
		for i, c := range parts {
			part, ok := c.(*ast.Node)
			if !ok || part == nil {
				p.malformed(n, "part %d: want node, got %T", i, c)
			}
			switch part.Kind {
			case ast.Str:
				s, ok := part.Child(0).(string)
				if !ok {
					p.malformed(part, "child 0: want string, got %s", describe(part, 0))
				}
				text.WriteString(s)
				pending = true
			case ast.Dstr:
				walk(part.Children)
			default:
				flush()
				out = append(out, segment{node: part})
			}
		}
	}
	walk(parts)
	flush()
	return out
}

// interpolated renders a double-quoted style literal with #{} parts.
func (p *printer) interpolated(n *ast.Node, open, close string, delim byte) {
	segs := p.segments(n, n.Children)
	p.buf.Write(open)
	for i, s := range segs {
		if s.node == nil {
			p.buf.Write(literal.Escape(s.text, delim))
			continue
		}
		var next string
		if i+1 < len(segs) {
			next = segs[i+1].text
		}
		p.interpolation(s.node, next)
	}
	p.buf.Write(close)
}

// interpolation renders one embedded part. Variables use the short `#@a`
// form unless the following text would extend the name.
func (p *printer) interpolation(n *ast.Node, next string) {
	switch n.Kind {
	case ast.Ivar, ast.Cvar, ast.Gvar:
		if next == "" || !continuesName(next[0]) {
			p.buf.Write("#")
			p.visit(n, precedence.StatementContext())
			return
		}
		p.buf.Write("#{")
		p.visit(n, precedence.StatementContext())
		p.buf.Write("}")
	case ast.Begin:
		p.buf.Write("#{")
		for i, stmt := range n.Nodes(0) {
			if i > 0 {
				p.buf.Write("; ")
			}
			p.visit(stmt, precedence.StatementContext())
		}
		p.buf.Write("}")
		p.comments.Consume(n)
	default:
		p.buf.Write("#{")
		p.visit(n, precedence.StatementContext())
		p.buf.Write("}")
	}
}

func continuesName(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// -----------------------------------------------------------------------------
// Regexp
// -----------------------------------------------------------------------------

func (p *printer) regexp(n *ast.Node) {
	if n.Len() == 0 {
		p.malformed(n, "missing regopt")
	}
	last := n.Len() - 1
	opts := p.child(n, last)
	if opts.Kind != ast.Regopt {
		p.malformed(n, "last child: want regopt, got %s", opts.Kind)
	}
	var names []string
	for i := range opts.Children {
		names = append(names, p.name(opts, i))
	}
	flags, err := literal.RegexpOptions(names)
	if err != nil {
		p.malformed(opts, "%v", err)
	}

	segs := p.segments(n, n.Children[:last])
	var texts []string
	for _, s := range segs {
		if s.node == nil {
			texts = append(texts, s.text)
		}
	}
	open, close, escapeSlash := literal.RegexpDelimiters(texts)

	p.buf.Write(open)
	for i, s := range segs {
		if s.node == nil {
			p.buf.Write(literal.RegexpBody(s.text, escapeSlash))
			continue
		}
		var next string
		if i+1 < len(segs) {
			next = segs[i+1].text
		}
		p.interpolation(s.node, next)
	}
	p.buf.Write(close, flags)
}

// -----------------------------------------------------------------------------
// Collections
// -----------------------------------------------------------------------------

func (p *printer) array(n *ast.Node) {
	p.buf.Write("[")
	p.list(p.nodes(n, 0), precedence.ArgumentContext())
	p.buf.Write("]")
}

// hash renders a hash literal. Without braces it is the trailing hash
// argument of a call: `foo(a: 1)`.
func (p *printer) hash(n *ast.Node, braces bool) {
	items := p.nodes(n, 0)
	if len(items) == 0 {
		p.buf.Write("{}")
		return
	}
	if braces {
		p.buf.Write("{ ")
	}
	for i, item := range items {
		if i > 0 {
			p.buf.Write(", ")
		}
		switch item.Kind {
		case ast.Pair:
			p.pair(item)
		case ast.Kwsplat:
			p.visit(item, precedence.ValueContext())
		default:
			p.malformed(n, "item %d: want pair or kwsplat, got %s", i, item.Kind)
		}
	}
	if braces {
		p.buf.Write(" }")
	}
}

func (p *printer) pair(n *ast.Node) {
	key, value := p.child(n, 0), p.child(n, 1)
	if p.buf.AtLineStart() {
		p.leadingComments(n.Range().Begin)
	}
	if key.Kind == ast.Sym {
		if label, ok := literal.Label(key.StringAt(0)); ok {
			p.buf.Write(label, " ")
			p.comments.Consume(key)
			p.visit(value, precedence.ValueContext())
			p.comments.Consume(n)
			return
		}
	}
	p.visit(key, precedence.ValueContext())
	p.buf.Write(" => ")
	p.visit(value, precedence.ValueContext())
	p.comments.Consume(n)
}

func (p *printer) splat(n *ast.Node) {
	p.buf.Write("*")
	if c := p.optional(n, 0); c != nil {
		p.visit(c, precedence.UnaryOperand(precedence.Unary))
	}
}

func (p *printer) kwsplat(n *ast.Node) {
	p.require(p.opts.Capabilities.KeywordSplat, n)
	p.buf.Write("**")
	p.visit(p.child(n, 0), precedence.UnaryOperand(precedence.Unary))
}

// rangeOp renders ranges and flip-flops, which share the `..`/`...`
// syntax.
func (p *printer) rangeOp(n *ast.Node) {
	op := ".."
	if n.Is(ast.Erange, ast.Eflipflop) {
		op = "..."
	}
	if left := p.optional(n, 0); left != nil {
		p.visit(left, precedence.OperandOf(precedence.Range, precedence.NonAssoc, precedence.LeftSide))
	}
	p.buf.Write(op)
	if right := p.optional(n, 1); right != nil {
		p.visit(right, precedence.OperandOf(precedence.Range, precedence.NonAssoc, precedence.RightSide))
	}
}

// -----------------------------------------------------------------------------
// Variables and constants
// -----------------------------------------------------------------------------

func (p *printer) nthRef(n *ast.Node) {
	s, err := literal.Integer(n.Child(0))
	if err != nil {
		p.malformed(n, "%v", err)
	}
	p.buf.Write("$", s)
}

func (p *printer) constant(n *ast.Node) {
	p.constScope(p.optional(n, 0))
	p.buf.Write(p.name(n, 1))
}

// constScope writes the `Scope::` or `::` prefix of a constant or
// constant assignment.
func (p *printer) constScope(scope *ast.Node) {
	switch {
	case scope == nil:
	case scope.Kind == ast.Cbase:
		p.buf.Write("::")
		p.comments.Consume(scope)
	default:
		p.visit(scope, precedence.ReceiverContext())
		p.buf.Write("::")
	}
}

// nodes returns the children of n from index from, which must all be
// nodes.
func (p *printer) nodes(n *ast.Node, from int) []*ast.Node {
	var out []*ast.Node
	for i := from; i < n.Len(); i++ {
		out = append(out, p.child(n, i))
	}
	return out
}
