package printer

import (
	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/precedence"
	"github.com/kolkov/unparser/internal/scope"
)

func (p *printer) def(n *ast.Node) {
	p.header(n)
	p.buf.Write("def ", p.name(n, 0))
	p.method(n, p.optional(n, 1), p.optional(n, 2))
}

func (p *printer) defs(n *ast.Node) {
	p.header(n)
	p.buf.Write("def ")
	p.singleton(p.child(n, 0))
	p.buf.Write(".", p.name(n, 1))
	p.method(n, p.optional(n, 2), p.optional(n, 3))
}

// singleton writes the object of `def obj.name`. Anything but a variable,
// self or a plain constant is parenthesized.
func (p *printer) singleton(n *ast.Node) {
	switch {
	case n.Is(ast.Self, ast.Lvar, ast.Ivar, ast.Cvar, ast.Gvar):
		p.visit(n, precedence.StatementContext())
	case n.Is(ast.Const) && n.NodeAt(0) == nil:
		p.visit(n, precedence.StatementContext())
	case n.Is(ast.Send) && n.NodeAt(0) == nil && n.Len() == 2:
		p.buf.Write(p.name(n, 1))
		p.comments.Consume(n)
	default:
		p.buf.Write("(")
		p.visit(n, precedence.StatementContext())
		p.buf.Write(")")
	}
}

// method renders the parameter list and body of a method definition in a
// fresh scope.
func (p *printer) method(n, args, body *ast.Node) {
	p.scope.Scoped(scope.Method, func() {
		if args != nil {
			if args.Kind != ast.Args {
				p.malformed(n, "want args, got %s", args.Kind)
			}
			if params := p.nodes(args, 0); len(params) > 0 {
				p.buf.Write("(")
				p.params(params)
				p.buf.Write(")")
			}
			p.comments.Consume(args)
		}
		p.nl()
		if body != nil {
			p.clauses(body)
		}
	})
	p.closing(n, "end")
}

func (p *printer) class(n *ast.Node) {
	p.header(n)
	p.buf.Write("class ")
	p.visit(p.child(n, 0), precedence.ReceiverContext())
	if super := p.optional(n, 1); super != nil {
		p.buf.Write(" < ")
		p.visit(super, precedence.ReceiverContext())
	}
	p.moduleBody(n, p.optional(n, 2))
}

func (p *printer) sclass(n *ast.Node) {
	p.header(n)
	p.buf.Write("class << ")
	p.visit(p.child(n, 0), precedence.ReceiverContext())
	p.moduleBody(n, p.optional(n, 1))
}

func (p *printer) module(n *ast.Node) {
	p.header(n)
	p.buf.Write("module ")
	p.visit(p.child(n, 0), precedence.ReceiverContext())
	p.moduleBody(n, p.optional(n, 1))
}

// moduleBody renders a class or module body in a fresh scope. A rescue
// that fits the modifier form stays a statement.
func (p *printer) moduleBody(n, body *ast.Node) {
	p.scope.Scoped(scope.Method, func() {
		p.nl()
		switch {
		case body == nil:
		case body.Is(ast.Rescue) && isRescueModifier(body):
			p.body(body)
		default:
			p.clauses(body)
		}
	})
	p.closing(n, "end")
}

func (p *printer) undef(n *ast.Node) {
	p.buf.Write("undef ")
	p.list(p.nodes(n, 0), precedence.ArgumentContext())
}

func (p *printer) alias(n *ast.Node) {
	p.buf.Write("alias ")
	p.visit(p.child(n, 0), precedence.ArgumentContext())
	p.buf.Write(" ")
	p.visit(p.child(n, 1), precedence.ArgumentContext())
}

// exeBlock renders `BEGIN { ... }` and `END { ... }`.
func (p *printer) exeBlock(n *ast.Node) {
	keyword := "BEGIN"
	if n.Kind == ast.Postexe {
		keyword = "END"
	}
	p.header(n)
	p.buf.Write(keyword, " {")
	p.nl()
	p.body(p.optional(n, 0))
	p.closing(n, "}")
}
