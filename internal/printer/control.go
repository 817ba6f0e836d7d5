package printer

import (
	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/precedence"
)

// ifModifier reports whether n must be written `body if cond`: a
// one-branch conditional whose body introduces a local its condition
// reads.
func (p *printer) ifModifier(n *ast.Node) bool {
	then, els := p.optional(n, 1), p.optional(n, 2)
	if (then == nil) == (els == nil) {
		return false
	}
	body := then
	if body == nil {
		body = els
	}
	return p.scope.NeedsModifier(p.child(n, 0), body)
}

func (p *printer) loopModifier(n *ast.Node) bool {
	body := p.optional(n, 1)
	return body != nil && p.scope.NeedsModifier(p.child(n, 0), body)
}

func (p *printer) ifNode(n *ast.Node) {
	cond := p.child(n, 0)
	then, els := p.optional(n, 1), p.optional(n, 2)

	if p.ifModifier(n) {
		body, keyword := then, " if "
		if then == nil {
			body, keyword = els, " unless "
		}
		p.visit(body, precedence.StatementContext())
		p.buf.Write(keyword)
		p.visit(cond, precedence.ConditionContext())
		return
	}

	keyword := "if "
	if then == nil && els != nil {
		keyword, then, els = "unless ", els, nil
	}
	p.header(n)
	p.buf.Write(keyword)
	p.visit(cond, precedence.ConditionContext())
	p.nl()
	p.body(then)
	if els != nil {
		p.buf.Write("else")
		p.nl()
		p.body(els)
	}
	p.closing(n, "end")
}

func (p *printer) caseNode(n *ast.Node) {
	if n.Len() < 2 {
		p.malformed(n, "want a subject, clauses and an else branch")
	}
	p.header(n)
	p.buf.Write("case")
	if subject := p.optional(n, 0); subject != nil {
		p.buf.Write(" ")
		p.visit(subject, precedence.ConditionContext())
	}
	p.nl()

	last := n.Len() - 1
	for i := 1; i < last; i++ {
		w := p.child(n, i)
		if w.Kind != ast.When {
			p.malformed(n, "child %d: want when, got %s", i, w.Kind)
		}
		p.when(w)
	}
	if els := p.optional(n, last); els != nil {
		p.buf.Write("else")
		p.nl()
		p.body(els)
	}
	p.closing(n, "end")
}

// when renders `when a, *b` and its body; the body is the last child.
func (p *printer) when(n *ast.Node) {
	if n.Len() < 2 {
		p.malformed(n, "want conditions and a body")
	}
	if p.buf.AtLineStart() {
		p.leadingComments(n.Range().Begin)
	}
	last := n.Len() - 1
	conds := make([]*ast.Node, 0, last)
	for i := 0; i < last; i++ {
		conds = append(conds, p.child(n, i))
	}
	p.buf.Write("when ")
	p.list(conds, precedence.ArgumentContext())
	p.comments.ConsumeRange(n.Range())
	p.nl()
	p.body(p.optional(n, last))
}

func (p *printer) loop(n *ast.Node) {
	keyword := n.Kind.String()
	cond, body := p.child(n, 0), p.optional(n, 1)

	if p.loopModifier(n) {
		p.visit(body, precedence.StatementContext())
		p.buf.Write(" ", keyword, " ")
		p.visit(cond, precedence.ConditionContext())
		return
	}

	p.header(n)
	p.buf.Write(keyword, " ")
	p.visit(cond, precedence.ConditionContext())
	p.nl()
	p.body(body)
	p.closing(n, "end")
}

// postLoop renders `begin ... end while cond`.
func (p *printer) postLoop(n *ast.Node) {
	keyword := "while"
	if n.Kind == ast.UntilPost {
		keyword = "until"
	}
	cond, body := p.child(n, 0), p.child(n, 1)
	if body.Kind != ast.Kwbegin {
		p.malformed(n, "child 1: want kwbegin, got %s", body.Kind)
	}
	p.visit(body, precedence.StatementContext())
	p.buf.Write(" ", keyword, " ")
	p.visit(cond, precedence.ConditionContext())
}

func (p *printer) forLoop(n *ast.Node) {
	target, iter, body := p.child(n, 0), p.child(n, 1), p.optional(n, 2)
	p.header(n)
	p.buf.Write("for ")
	if target.Kind == ast.Mlhs {
		p.mlhs(target, true)
	} else {
		p.target(target)
	}
	p.buf.Write(" in ")
	p.visit(iter, precedence.ConditionContext())
	p.buf.Write(" do")
	p.nl()
	p.body(body)
	p.closing(n, "end")
}

// jump renders break, next and return with their optional values. A
// keyword conditional right after the keyword would read as a modifier,
// so it is parenthesized.
func (p *printer) jump(n *ast.Node) {
	p.buf.Write(n.Kind.String())
	args := p.nodes(n, 0)
	if len(args) == 0 {
		return
	}
	p.buf.Write(" ")
	for i, arg := range args {
		if i > 0 {
			p.buf.Write(", ")
		}
		if i == 0 && arg.Is(ast.If, ast.While, ast.Until) && p.level(arg) == precedence.Primary {
			p.buf.Write("(")
			p.visit(arg, precedence.StatementContext())
			p.buf.Write(")")
			continue
		}
		p.visit(arg, precedence.ArgumentContext())
	}
}

// logical renders and/or nodes as `&&` and `||`.
func (p *printer) logical(n *ast.Node) {
	level, op := precedence.AndOp, "&&"
	if n.Kind == ast.Or {
		level, op = precedence.OrOp, "||"
	}
	p.visit(p.child(n, 0), precedence.OperandOf(level, precedence.Left, precedence.LeftSide))
	p.buf.Write(" ", op, " ")
	p.visit(p.child(n, 1), precedence.OperandOf(level, precedence.Left, precedence.RightSide))
}

func (p *printer) not(n *ast.Node) {
	p.buf.Write("!")
	p.visit(p.child(n, 0), precedence.UnaryOperand(precedence.Unary))
}
