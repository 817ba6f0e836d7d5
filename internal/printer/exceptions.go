package printer

import (
	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/precedence"
)

// group renders a parenthesized expression. Several statements go on
// separate lines inside the parentheses.
func (p *printer) group(n *ast.Node) {
	p.buf.Write("(")
	p.statements(n)
	p.buf.Write(")")
}

func (p *printer) kwbegin(n *ast.Node) {
	p.header(n)
	p.buf.Write("begin")
	p.nl()
	stmts := p.nodes(n, 0)
	if len(stmts) == 1 {
		p.clauses(stmts[0])
	} else {
		p.body(ast.New(ast.Begin, n.Children...))
	}
	p.closing(n, "end")
}

// isRescueModifier reports whether a rescue node fits `body rescue value`:
// a body and a single bare rescue clause without else.
func isRescueModifier(n *ast.Node) bool {
	if n.Len() != 3 || n.NodeAt(0) == nil || n.NodeAt(2) != nil {
		return false
	}
	res := n.NodeAt(1)
	return res.Is(ast.Resbody) && res.Len() == 3 &&
		res.NodeAt(0) == nil && res.NodeAt(1) == nil && res.NodeAt(2) != nil
}

func (p *printer) rescue(n *ast.Node) {
	if !isRescueModifier(n) {
		p.beginBlock(n)
		return
	}
	res := n.NodeAt(1)
	p.visit(n.NodeAt(0), precedence.OperandOf(precedence.RescueModifier, precedence.Left, precedence.LeftSide))
	p.buf.Write(" rescue ")
	p.visit(res.NodeAt(2), precedence.OperandOf(precedence.RescueModifier, precedence.Left, precedence.RightSide))
	p.comments.Consume(res)
}

// beginBlock wraps rescue and ensure clauses that appear outside a body
// in `begin ... end`.
func (p *printer) beginBlock(n *ast.Node) {
	p.buf.Write("begin")
	p.nl()
	p.clauses(n)
	p.buf.Write("end")
}

// clauses renders a body that may carry rescue, else and ensure clauses.
// The caller has written the opening line; the clause keywords are
// written at the current depth and their bodies one level deeper.
func (p *printer) clauses(n *ast.Node) {
	switch {
	case n.Is(ast.Ensure):
		if n.Len() != 2 {
			p.malformed(n, "want a body and an ensure body")
		}
		p.clauses(p.optional(n, 0))
		p.buf.Write("ensure")
		p.nl()
		p.body(p.optional(n, 1))
	case n.Is(ast.Rescue):
		if n.Len() < 2 {
			p.malformed(n, "want a body, rescue clauses and an else body")
		}
		p.body(p.optional(n, 0))
		last := n.Len() - 1
		for i := 1; i < last; i++ {
			p.resbody(p.child(n, i))
		}
		if els := p.optional(n, last); els != nil {
			p.buf.Write("else")
			p.nl()
			p.body(els)
		}
	default:
		p.body(n)
	}
	p.comments.Consume(n)
}

// resbody renders `rescue A, *b => e` and its body.
func (p *printer) resbody(n *ast.Node) {
	if n.Kind != ast.Resbody || n.Len() != 3 {
		p.malformed(n, "want a resbody with exceptions, variable and body")
	}
	if p.buf.AtLineStart() {
		p.leadingComments(n.Range().Begin)
	}
	p.buf.Write("rescue")
	if excs := p.optional(n, 0); excs != nil {
		p.buf.Write(" ")
		if excs.Kind == ast.Array {
			p.list(p.nodes(excs, 0), precedence.ArgumentContext())
			p.comments.Consume(excs)
		} else {
			p.visit(excs, precedence.ArgumentContext())
		}
	}
	if v := p.optional(n, 1); v != nil {
		p.buf.Write(" => ")
		p.target(v)
	}
	p.header(n)
	p.nl()
	p.body(p.optional(n, 2))
}
