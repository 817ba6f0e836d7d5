package printer

import (
	"strings"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/literal"
	"github.com/kolkov/unparser/internal/precedence"
	"github.com/kolkov/unparser/internal/scope"
)

var unaryPrefix = map[string]string{
	"!":  "!",
	"~":  "~",
	"+@": "+",
	"-@": "-",
}

func (p *printer) send(n *ast.Node) {
	recv := p.optional(n, 0)
	name := p.name(n, 1)
	args := p.nodes(n, 2)

	if recv == nil {
		if !literal.IsMethodName(name) && !literal.IsOperator(name) {
			p.malformed(n, "%q is not a method name", name)
		}
		if literal.IsBareCall(name) {
			p.buf.Write(name)
			if len(args) > 0 || p.needsEmptyParens(name) {
				p.arguments(args)
			}
			return
		}
		recv = ast.New(ast.Self)
	}

	switch {
	case name == "[]":
		p.visit(recv, precedence.ReceiverContext())
		p.buf.Write("[")
		p.list(args, precedence.ArgumentContext())
		p.buf.Write("]")
		return
	case name == "[]=" && len(args) > 0 && !args[len(args)-1].Is(ast.Splat, ast.BlockPass):
		p.visit(recv, precedence.ReceiverContext())
		p.buf.Write("[")
		p.list(args[:len(args)-1], precedence.ArgumentContext())
		p.buf.Write("] = ")
		p.visit(args[len(args)-1], precedence.AssignmentContext())
		return
	case precedence.IsAttributeAssign(n):
		p.visit(recv, precedence.ReceiverContext())
		p.buf.Write(".", strings.TrimSuffix(name, "="), " = ")
		p.visit(args[0], precedence.AssignmentContext())
		return
	}

	if len(args) == 1 && !args[0].Is(ast.Splat, ast.BlockPass) {
		if level, assoc, ok := precedence.Binary(name); ok {
			p.visit(recv, precedence.OperandOf(level, assoc, precedence.LeftSide))
			p.buf.Write(" ", name, " ")
			p.visit(args[0], precedence.OperandOf(level, assoc, precedence.RightSide))
			return
		}
	}
	if len(args) == 0 {
		if level, ok := precedence.UnaryOp(name); ok {
			p.unary(unaryPrefix[name], recv, level)
			return
		}
	}

	p.visit(recv, precedence.ReceiverContext())
	p.buf.Write(".", name)
	if len(args) > 0 || literal.IsOperator(name) {
		p.arguments(args)
	}
}

// needsEmptyParens reports whether a receiverless call without arguments
// must be written `name()`: when name is a local variable, or when it
// would read as a constant.
func (p *printer) needsEmptyParens(name string) bool {
	if p.scope.IsLocal(name) {
		return true
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

func (p *printer) unary(prefix string, operand *ast.Node, level precedence.Level) {
	p.buf.Write(prefix)
	ctx := precedence.UnaryOperand(level)
	if (prefix == "-" || prefix == "+") &&
		!precedence.NeedsParens(operand, p.level(operand), ctx) && startsWithNumber(operand) {
		p.buf.Write("+")
	}
	p.visit(operand, ctx)
}

// arguments writes a parenthesized argument list. A non-empty hash in
// last position, before any block pass, is written without braces.
func (p *printer) arguments(args []*ast.Node) {
	last := len(args) - 1
	if last >= 0 && args[last].Is(ast.BlockPass) {
		last--
	}
	p.buf.Write("(")
	for i, arg := range args {
		if i > 0 {
			p.buf.Write(", ")
		}
		if i == last && arg.Is(ast.Hash) && arg.Len() > 0 {
			if p.buf.AtLineStart() {
				p.leadingComments(arg.Range().Begin)
			}
			p.hash(arg, false)
			p.comments.Consume(arg)
			continue
		}
		p.visit(arg, precedence.ArgumentContext())
	}
	p.buf.Write(")")
}

func (p *printer) blockPass(n *ast.Node) {
	p.buf.Write("&")
	if c := p.optional(n, 0); c != nil {
		p.visit(c, precedence.UnaryOperand(precedence.Unary))
	}
}

func (p *printer) yield(n *ast.Node) {
	p.buf.Write("yield")
	if args := p.nodes(n, 0); len(args) > 0 {
		p.arguments(args)
	}
}

func (p *printer) super(n *ast.Node) {
	p.buf.Write("super")
	p.arguments(p.nodes(n, 0))
}

func (p *printer) defined(n *ast.Node) {
	p.buf.Write("defined?(")
	p.visit(p.child(n, 0), precedence.ArgumentContext())
	p.buf.Write(")")
}

// -----------------------------------------------------------------------------
// Blocks
// -----------------------------------------------------------------------------

func (p *printer) block(n *ast.Node) {
	call := p.child(n, 0)
	args := p.optional(n, 1)
	body := p.optional(n, 2)

	switch call.Kind {
	case ast.Send, ast.Super, ast.Zsuper, ast.Yield:
	default:
		p.malformed(n, "block attached to %s", call.Kind)
	}
	if p.buf.AtLineStart() {
		p.leadingComments(call.Range().Begin)
	}
	p.dispatch(call)
	p.comments.Consume(call)
	p.buf.Write(" do")

	p.scope.Scoped(scope.Block, func() {
		if args != nil && args.Len() > 0 {
			p.buf.Write(" |")
			p.blockParams(args)
			p.buf.Write("|")
		}
		p.nl()
		p.body(body)
	})
	p.closing(n, "end")
}

// blockParams writes block parameters; shadow arguments follow a `;`.
func (p *printer) blockParams(args *ast.Node) {
	var params, shadows []*ast.Node
	for _, a := range p.nodes(args, 0) {
		if a.Kind == ast.Shadowarg {
			shadows = append(shadows, a)
		} else {
			params = append(params, a)
		}
	}
	p.params(params)
	if len(shadows) > 0 {
		p.buf.Write("; ")
		p.params(shadows)
	}
}

// params writes formal parameters separated by ", ", declaring each name
// in the current frame.
func (p *printer) params(params []*ast.Node) {
	for i, a := range params {
		if i > 0 {
			p.buf.Write(", ")
		}
		p.param(a)
	}
}

func (p *printer) param(n *ast.Node) {
	switch n.Kind {
	case ast.Arg, ast.Shadowarg:
		name := p.name(n, 0)
		p.scope.Declare(name)
		p.buf.Write(name)
	case ast.Optarg:
		name := p.name(n, 0)
		p.scope.Declare(name)
		p.buf.Write(name, " = ")
		p.visit(p.child(n, 1), precedence.ArgumentContext())
	case ast.Restarg:
		p.buf.Write("*")
		p.optionalParamName(n)
	case ast.Blockarg:
		p.buf.Write("&")
		p.optionalParamName(n)
	case ast.Kwarg:
		p.require(p.opts.Capabilities.RequiredKeywordArgs, n)
		name := p.name(n, 0)
		p.scope.Declare(name)
		p.buf.Write(name, ":")
	case ast.Kwoptarg:
		p.require(p.opts.Capabilities.KeywordArgs, n)
		name := p.name(n, 0)
		p.scope.Declare(name)
		p.buf.Write(name, ": ")
		p.visit(p.child(n, 1), precedence.ArgumentContext())
	case ast.Kwrestarg:
		p.require(p.opts.Capabilities.KeywordSplat, n)
		p.buf.Write("**")
		p.optionalParamName(n)
	case ast.Mlhs:
		p.mlhs(n, false)
	default:
		p.malformed(n, "not a parameter")
	}
	p.comments.Consume(n)
}

func (p *printer) optionalParamName(n *ast.Node) {
	if name, ok := n.Child(0).(string); ok && name != "" {
		p.scope.Declare(name)
		p.buf.Write(name)
	}
}
