// Package printer renders Ruby syntax trees as source text.
//
// Each node kind has one rendering rule. Rules write into an
// emitter.Buffer, ask the precedence package whether a child needs
// parentheses, track local variables with a scope.Tracker so that bare
// identifiers keep meaning what they meant, and pull source comments from
// a comments.Stream as they pass the comments' positions.
//
// A rendering failure panics with one of the error types of this package;
// Print recovers it and discards the partial output.
package printer

import (
	"fmt"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/comments"
	"github.com/kolkov/unparser/internal/emitter"
	"github.com/kolkov/unparser/internal/precedence"
	"github.com/kolkov/unparser/internal/scope"
	"github.com/kolkov/unparser/internal/token"
)

// Capabilities lists the syntax a Ruby variant accepts beyond 1.9.
type Capabilities struct {
	KeywordArgs         bool // def foo(a: 1)
	RequiredKeywordArgs bool // def foo(a:)
	KeywordSplat        bool // **opts
	RationalLiterals    bool // 3r
	ImaginaryLiterals   bool // 2i
}

// Options configures a Print call.
type Options struct {
	Variant      string // Variant name used in error messages
	Capabilities Capabilities
}

type printer struct {
	buf      *emitter.Buffer
	scope    *scope.Tracker
	comments *comments.Stream
	opts     Options
}

// Print renders root and the given comments. A nil root renders only the
// comments.
func Print(root *ast.Node, cs []ast.Comment, opts Options) (out string, err error) {
	p := &printer{
		buf:      emitter.New(),
		scope:    scope.New(),
		comments: comments.NewStream(cs),
		opts:     opts,
	}

	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *UnsupportedNodeError:
				err = e
			case *UnsupportedConstructError:
				err = e
			case *MalformedNodeError:
				err = e
			default:
				panic(r) // Re-panic for programming errors
			}
			out = ""
		}
	}()

	p.statements(root)
	p.eofComments()
	return p.buf.String(), nil
}

// -----------------------------------------------------------------------------
// Visiting
// -----------------------------------------------------------------------------

// visit renders n into a slot described by ctx, adding parentheses when
// the slot requires them.
func (p *printer) visit(n *ast.Node, ctx precedence.Context) {
	if n == nil {
		panic(&MalformedNodeError{Kind: "nil", Message: "missing node"})
	}
	if p.buf.AtLineStart() {
		p.leadingComments(n.Range().Begin)
	}
	if precedence.NeedsParens(n, p.level(n), ctx) {
		p.buf.Write("(")
		p.dispatch(n)
		p.buf.Write(")")
	} else {
		p.dispatch(n)
	}
	p.comments.Consume(n)
}

// level is the precedence of n as this printer will render it.
func (p *printer) level(n *ast.Node) precedence.Level {
	switch n.Kind {
	case ast.If:
		if p.ifModifier(n) {
			return precedence.Statement
		}
	case ast.While, ast.Until:
		if p.loopModifier(n) {
			return precedence.Statement
		}
	case ast.Rescue:
		if !isRescueModifier(n) {
			return precedence.Primary
		}
	}
	return precedence.Of(n)
}

func (p *printer) dispatch(n *ast.Node) {
	switch n.Kind {
	// Literals
	case ast.Int:
		p.integer(n)
	case ast.Float:
		p.float(n)
	case ast.Rational:
		p.rational(n)
	case ast.Complex:
		p.complex(n)
	case ast.Str:
		p.str(n)
	case ast.Dstr:
		p.interpolated(n, `"`, `"`, '"')
	case ast.Xstr:
		p.interpolated(n, "`", "`", '`')
	case ast.Sym:
		p.sym(n)
	case ast.Dsym:
		p.interpolated(n, `:"`, `"`, '"')
	case ast.Regexp:
		p.regexp(n)
	case ast.Array:
		p.array(n)
	case ast.Hash:
		p.hash(n, true)
	case ast.Splat:
		p.splat(n)
	case ast.Kwsplat:
		p.kwsplat(n)
	case ast.Irange, ast.Eflipflop, ast.Erange, ast.Iflipflop:
		p.rangeOp(n)
	case ast.Nil, ast.True, ast.False, ast.Self:
		p.buf.Write(n.Kind.String())

	// Variables and constants
	case ast.Lvar, ast.Ivar, ast.Cvar, ast.Gvar, ast.BackRef:
		p.buf.Write(p.name(n, 0))
	case ast.NthRef:
		p.nthRef(n)
	case ast.Const:
		p.constant(n)

	// Assignment
	case ast.Lvasgn, ast.Ivasgn, ast.Cvasgn, ast.Cvdecl, ast.Gvasgn, ast.Casgn:
		p.assignment(n)
	case ast.Masgn:
		p.masgn(n)
	case ast.OpAsgn, ast.OrAsgn, ast.AndAsgn:
		p.opAssignment(n)
	case ast.MatchWithLvasgn:
		p.matchWithLvasgn(n)

	// Calls
	case ast.Send:
		p.send(n)
	case ast.Block:
		p.block(n)
	case ast.BlockPass:
		p.blockPass(n)
	case ast.Yield:
		p.yield(n)
	case ast.Super:
		p.super(n)
	case ast.Zsuper:
		p.buf.Write("super")
	case ast.Defined:
		p.defined(n)

	// Control flow
	case ast.If:
		p.ifNode(n)
	case ast.Case:
		p.caseNode(n)
	case ast.While, ast.Until:
		p.loop(n)
	case ast.WhilePost, ast.UntilPost:
		p.postLoop(n)
	case ast.For:
		p.forLoop(n)
	case ast.Break, ast.Next, ast.Return:
		p.jump(n)
	case ast.Retry, ast.Redo:
		p.buf.Write(n.Kind.String())
	case ast.And, ast.Or:
		p.logical(n)
	case ast.Not:
		p.not(n)
	case ast.MatchCurrentLine:
		p.visit(p.child(n, 0), precedence.StatementContext())

	// Grouping and exceptions
	case ast.Begin:
		p.group(n)
	case ast.Kwbegin:
		p.kwbegin(n)
	case ast.Rescue:
		p.rescue(n)
	case ast.Ensure:
		p.beginBlock(n)

	// Definitions
	case ast.Def:
		p.def(n)
	case ast.Defs:
		p.defs(n)
	case ast.Class:
		p.class(n)
	case ast.Sclass:
		p.sclass(n)
	case ast.Module:
		p.module(n)
	case ast.Undef:
		p.undef(n)
	case ast.Alias:
		p.alias(n)
	case ast.Preexe, ast.Postexe:
		p.exeBlock(n)

	// Kinds that only appear inside their parent's rendering.
	case ast.Pair, ast.Regopt, ast.Mlhs, ast.Args, ast.Resbody, ast.When, ast.Cbase:
		p.malformed(n, "%s outside of its parent construct", n.Kind)
	case ast.Arg, ast.Optarg, ast.Restarg, ast.Blockarg, ast.Kwarg, ast.Kwoptarg,
		ast.Kwrestarg, ast.Shadowarg:
		p.malformed(n, "argument outside of an argument list")

	default:
		panic(&UnsupportedNodeError{Kind: n.Kind.String()})
	}
}

// -----------------------------------------------------------------------------
// Statements and bodies
// -----------------------------------------------------------------------------

// statements renders the statements of a body separated by newlines. A
// begin node is a statement sequence here, not a parenthesized group.
func (p *printer) statements(n *ast.Node) {
	for i, stmt := range statementList(n) {
		if i > 0 {
			p.nl()
		}
		p.visit(stmt, precedence.StatementContext())
	}
}

func statementList(n *ast.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	if n.Kind == ast.Begin {
		return n.Nodes(0)
	}
	return []*ast.Node{n}
}

// body renders a body one level deeper, each statement on its own line.
func (p *printer) body(n *ast.Node) {
	if len(statementList(n)) == 0 {
		return
	}
	p.buf.Indented(func() {
		p.statements(n)
		p.nl()
	})
}

// closing writes the keyword that ends n, preceded by the comments that
// sit before it inside the construct.
func (p *printer) closing(n *ast.Node, keyword string) {
	p.buf.Indented(func() {
		p.leadingComments(n.EndRange().Begin)
	})
	p.buf.Write(keyword)
}

// header marks the first line of n as rendered, so that a comment
// trailing the opening line stays there.
func (p *printer) header(n *ast.Node) {
	if r := n.Range(); r.IsValid() {
		p.comments.ConsumeRange(token.Range{Begin: r.Begin, End: r.Begin})
	}
}

// -----------------------------------------------------------------------------
// Comments
// -----------------------------------------------------------------------------

// nl ends the current line, appending the comments that trailed the code
// rendered on it.
func (p *printer) nl() {
	for _, c := range p.comments.TakeEOL() {
		p.buf.Trailing(c.Text)
	}
	p.buf.Newline()
}

func (p *printer) leadingComments(pos token.Position) {
	cs := p.comments.TakeBefore(pos)
	if len(cs) == 0 {
		return
	}
	p.writeComments(cs)
	p.buf.Newline()
}

func (p *printer) eofComments() {
	for _, c := range p.comments.TakeEOL() {
		p.buf.Trailing(c.Text)
	}
	rest := p.comments.TakeAll()
	if len(rest) == 0 {
		return
	}
	if p.buf.Len() > 0 || p.buf.HasPending() {
		p.buf.Newline()
	}
	p.writeComments(rest)
}

func (p *printer) writeComments(cs []ast.Comment) {
	for i, c := range cs {
		if i > 0 {
			p.buf.Newline()
		}
		if c.IsDocument() {
			p.buf.WriteDocument(c.Text)
		} else {
			p.buf.Write(c.Text)
		}
	}
}

// -----------------------------------------------------------------------------
// Child access
// -----------------------------------------------------------------------------

func (p *printer) malformed(n *ast.Node, format string, args ...any) {
	panic(&MalformedNodeError{Kind: n.Kind.String(), Message: fmt.Sprintf(format, args...)})
}

func (p *printer) require(ok bool, n *ast.Node) {
	if !ok {
		panic(&UnsupportedConstructError{Kind: n.Kind.String(), Variant: p.opts.Variant})
	}
}

// child returns the i-th child, which must be a node.
func (p *printer) child(n *ast.Node, i int) *ast.Node {
	c, ok := n.Child(i).(*ast.Node)
	if !ok || c == nil {
		p.malformed(n, "child %d: want node, got %s", i, describe(n, i))
	}
	return c
}

// optional returns the i-th child, which must be a node or absent.
func (p *printer) optional(n *ast.Node, i int) *ast.Node {
	switch c := n.Child(i).(type) {
	case nil:
		return nil
	case *ast.Node:
		return c
	default:
		p.malformed(n, "child %d: want node or nil, got %T", i, c)
		return nil
	}
}

// name returns the i-th child, which must be a non-empty string.
func (p *printer) name(n *ast.Node, i int) string {
	s, ok := n.Child(i).(string)
	if !ok || s == "" {
		p.malformed(n, "child %d: want name, got %s", i, describe(n, i))
	}
	return s
}

func describe(n *ast.Node, i int) string {
	if i >= n.Len() {
		return "nothing"
	}
	switch c := n.Child(i).(type) {
	case nil:
		return "nil"
	case *ast.Node:
		if c == nil {
			return "nil"
		}
		return c.Kind.String()
	case string:
		return "string " + c
	default:
		return fmt.Sprintf("%T", c)
	}
}

// list renders nodes separated by ", ".
func (p *printer) list(nodes []*ast.Node, ctx precedence.Context) {
	for i, n := range nodes {
		if i > 0 {
			p.buf.Write(", ")
		}
		p.visit(n, ctx)
	}
}
