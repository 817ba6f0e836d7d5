package printer

import (
	"strings"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/precedence"
	"github.com/kolkov/unparser/internal/scope"
)

// valueIndex is the child index of the assigned value.
func valueIndex(k ast.Kind) int {
	if k == ast.Casgn {
		return 2
	}
	return 1
}

// assignment renders a single-target assignment. Value-less targets
// belong to mlhs, for, rescue and operator assignments, which write them
// through target and assignTarget.
func (p *printer) assignment(n *ast.Node) {
	i := valueIndex(n.Kind)
	if n.Len() <= i {
		p.malformed(n, "assignment without a value")
	}
	p.assignTarget(n)
	p.buf.Write(" = ")
	p.visit(p.child(n, i), precedence.AssignmentContext())
}

// assignTarget writes the target of an assignment and declares local
// variable targets, so the right-hand side already sees the name.
func (p *printer) assignTarget(n *ast.Node) {
	switch n.Kind {
	case ast.Lvasgn:
		name := p.name(n, 0)
		p.scope.Declare(name)
		p.buf.Write(name)
	case ast.Casgn:
		p.constScope(p.optional(n, 0))
		p.buf.Write(p.name(n, 1))
	default:
		p.buf.Write(p.name(n, 0))
	}
}

func (p *printer) masgn(n *ast.Node) {
	lhs := p.child(n, 0)
	if lhs.Kind != ast.Mlhs {
		p.malformed(n, "child 0: want mlhs, got %s", lhs.Kind)
	}
	p.mlhs(lhs, true)
	p.buf.Write(" = ")
	p.visit(p.child(n, 1), precedence.AssignmentContext())
}

// mlhs writes a destructuring target list. Nested lists are
// parenthesized; a top-level list with one plain target keeps its
// trailing comma (`a, = foo`).
func (p *printer) mlhs(n *ast.Node, top bool) {
	items := p.nodes(n, 0)
	if !top {
		p.buf.Write("(")
	}
	for i, item := range items {
		if i > 0 {
			p.buf.Write(", ")
		}
		p.target(item)
	}
	if top && len(items) == 1 && !items[0].Is(ast.Splat) {
		p.buf.Write(",")
	}
	if !top {
		p.buf.Write(")")
	}
	p.comments.Consume(n)
}

// target writes one element of a destructuring list.
func (p *printer) target(n *ast.Node) {
	switch {
	case n.Kind.IsAssignment():
		if n.Len() > valueIndex(n.Kind) {
			p.malformed(n, "destructuring target with a value")
		}
		p.assignTarget(n)
	case n.Kind == ast.Mlhs:
		p.mlhs(n, false)
	case n.Kind == ast.Splat:
		p.buf.Write("*")
		if c := p.optional(n, 0); c != nil {
			p.target(c)
		}
	case n.Kind == ast.Send:
		p.sendTarget(n)
	case n.Kind.IsArgument():
		p.param(n)
		return
	default:
		p.malformed(n, "not an assignment target")
	}
	p.comments.Consume(n)
}

// sendTarget writes `recv.attr` or `recv[args]` for the setter calls the
// parser puts in destructuring lists.
func (p *printer) sendTarget(n *ast.Node) {
	recv := p.child(n, 0)
	name := p.name(n, 1)
	args := p.nodes(n, 2)
	p.visit(recv, precedence.ReceiverContext())
	switch {
	case name == "[]=":
		p.buf.Write("[")
		p.list(args, precedence.ArgumentContext())
		p.buf.Write("]")
	case strings.HasSuffix(name, "=") && len(args) == 0:
		p.buf.Write(".", strings.TrimSuffix(name, "="))
	default:
		p.malformed(n, "%s is not a setter target", name)
	}
}

// opAssignment renders `a += 1`, `a ||= 1` and `a &&= 1`.
func (p *printer) opAssignment(n *ast.Node) {
	target := p.child(n, 0)
	var op string
	value := 1
	switch n.Kind {
	case ast.OpAsgn:
		op = p.name(n, 1) + "="
		value = 2
	case ast.OrAsgn:
		op = "||="
	case ast.AndAsgn:
		op = "&&="
	}

	if p.buf.AtLineStart() {
		p.leadingComments(target.Range().Begin)
	}
	switch {
	case target.Kind.IsAssignment():
		p.assignTarget(target)
	case target.Kind == ast.Send:
		p.opTarget(target)
	default:
		p.malformed(n, "child 0: %s is not an assignment target", target.Kind)
	}
	p.comments.Consume(target)
	p.buf.Write(" ", op, " ")
	p.visit(p.child(n, value), precedence.AssignmentContext())
}

// opTarget writes the call target of an operator assignment: `a.b`,
// `a[1]` or `a[]`.
func (p *printer) opTarget(n *ast.Node) {
	recv := p.optional(n, 0)
	name := p.name(n, 1)
	args := p.nodes(n, 2)
	if recv == nil {
		if len(args) > 0 {
			p.malformed(n, "receiverless call with arguments as assignment target")
		}
		p.buf.Write(name)
		return
	}
	p.visit(recv, precedence.ReceiverContext())
	if name == "[]" {
		p.buf.Write("[")
		p.list(args, precedence.ArgumentContext())
		p.buf.Write("]")
		return
	}
	if len(args) > 0 {
		p.malformed(n, "attribute target with arguments")
	}
	p.buf.Write(".", name)
}

// matchWithLvasgn renders `/(?<name>..)/ =~ value`, which declares the
// named captures as locals.
func (p *printer) matchWithLvasgn(n *ast.Node) {
	re := p.child(n, 0)
	p.visit(re, precedence.OperandOf(precedence.Equality, precedence.NonAssoc, precedence.LeftSide))
	p.buf.Write(" =~ ")
	p.visit(p.child(n, 1), precedence.OperandOf(precedence.Equality, precedence.NonAssoc, precedence.RightSide))
	for _, name := range scope.NamedCaptures(scope.RegexpSource(re)) {
		p.scope.Declare(name)
	}
}
