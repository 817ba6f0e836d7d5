// Package precedence decides where parentheses are required to keep a
// rendered expression parsing back into the same tree.
//
// Every construct has a Level. A parent passes a Context down to each
// child it embeds; NeedsParens compares the child's level with the
// context and applies the structural rules that numeric precedence alone
// cannot express.
package precedence

import (
	"math"
	"math/big"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/literal"
)

// Level is an operator precedence; higher binds tighter.
type Level int

const (
	Statement      Level = iota // and, or, not, modifiers, return x, masgn
	Assignment                  // = op= ||= &&=
	RescueModifier              // x rescue y
	Ternary                     // a ? b : c
	Range                       // .. ...
	OrOp                        // ||
	AndOp                       // &&
	Equality                    // <=> == === != =~ !~
	Comparison                  // > >= < <=
	BitOr                       // | ^
	BitAnd                      // &
	Shift                       // << >>
	Additive                    // + -
	Multiplicative              // * / %
	UnaryMinus                  // -a
	Power                       // **
	Unary                       // ! ~ +a
	Primary                     // literals, variables, calls, keyword blocks
)

// Assoc is the associativity of an operator.
type Assoc int

const (
	Left Assoc = iota
	Right
	NonAssoc
)

// Side is the operand position under a binary operator.
type Side int

const (
	NoSide Side = iota
	LeftSide
	RightSide
)

// Position is the syntactic slot a child is rendered into.
type Position int

const (
	InStatement Position = iota
	InOperand
	InReceiver
	InArgument
	InValue
	InCondition
	InAssignment
)

type operator struct {
	level Level
	assoc Assoc
}

var binary = map[string]operator{
	"**":  {Power, Right},
	"*":   {Multiplicative, Left},
	"/":   {Multiplicative, Left},
	"%":   {Multiplicative, Left},
	"+":   {Additive, Left},
	"-":   {Additive, Left},
	"<<":  {Shift, Left},
	">>":  {Shift, Left},
	"&":   {BitAnd, Left},
	"|":   {BitOr, Left},
	"^":   {BitOr, Left},
	">":   {Comparison, Left},
	">=":  {Comparison, Left},
	"<":   {Comparison, Left},
	"<=":  {Comparison, Left},
	"<=>": {Equality, NonAssoc},
	"==":  {Equality, NonAssoc},
	"===": {Equality, NonAssoc},
	"!=":  {Equality, NonAssoc},
	"=~":  {Equality, NonAssoc},
	"!~":  {Equality, NonAssoc},
	"&&":  {AndOp, Left},
	"||":  {OrOp, Left},
	"..":  {Range, NonAssoc},
	"...": {Range, NonAssoc},
}

var unary = map[string]Level{
	"!":  Unary,
	"~":  Unary,
	"+@": Unary,
	"-@": UnaryMinus,
}

// Binary returns the level and associativity of a binary operator method.
func Binary(op string) (Level, Assoc, bool) {
	o, ok := binary[op]
	return o.level, o.assoc, ok
}

// UnaryOp returns the level of a unary operator method (`!`, `~`, `+@`,
// `-@`).
func UnaryOp(op string) (Level, bool) {
	l, ok := unary[op]
	return l, ok
}

// Context describes the slot a child is rendered into.
type Context struct {
	Pos    Position
	Min    Level // lowest level rendered without parentheses
	Parent Level // level of the enclosing operator, if Side is set
	Assoc  Assoc // associativity of the enclosing operator
	Side   Side
}

// StatementContext is a statement in a body: nothing needs parentheses.
func StatementContext() Context {
	return Context{Pos: InStatement, Min: Statement}
}

// OperandOf is the left or right operand of a binary operator.
func OperandOf(op Level, assoc Assoc, side Side) Context {
	return Context{Pos: InOperand, Min: op, Parent: op, Assoc: assoc, Side: side}
}

// UnaryOperand is the operand of a prefix operator at level op.
func UnaryOperand(op Level) Context {
	return Context{Pos: InOperand, Min: op}
}

// ReceiverContext is the receiver of a message send.
func ReceiverContext() Context {
	return Context{Pos: InReceiver, Min: Primary}
}

// ArgumentContext is a call argument or an array element.
func ArgumentContext() Context {
	return Context{Pos: InArgument, Min: Assignment}
}

// ValueContext is a hash key or value.
func ValueContext() Context {
	return Context{Pos: InValue, Min: Assignment}
}

// ConditionContext is the condition of a keyword construct. Modifier
// forms and keyword commands are not valid conditions.
func ConditionContext() Context {
	return Context{Pos: InCondition, Min: Assignment}
}

// AssignmentContext is the right-hand side of an assignment.
func AssignmentContext() Context {
	return Context{Pos: InAssignment, Min: Assignment, Parent: Assignment, Assoc: Right, Side: RightSide}
}

// Of returns the level of n in its default rendering. Keyword constructs
// that the printer renders in modifier form are at Statement level; the
// printer passes that level explicitly.
func Of(n *ast.Node) Level {
	if n == nil {
		return Primary
	}
	switch n.Kind {
	case ast.Masgn:
		return Statement
	case ast.Lvasgn, ast.Ivasgn, ast.Cvasgn, ast.Cvdecl, ast.Gvasgn, ast.Casgn,
		ast.OpAsgn, ast.OrAsgn, ast.AndAsgn:
		// Targets inside mlhs have no value child and are not assignments.
		if n.Kind.IsAssignment() && n.Len() < 2 {
			return Primary
		}
		return Assignment
	case ast.And:
		return AndOp
	case ast.Or:
		return OrOp
	case ast.Not:
		return Unary
	case ast.Irange, ast.Erange, ast.Iflipflop, ast.Eflipflop:
		return Range
	case ast.MatchWithLvasgn:
		return Equality
	case ast.Rescue:
		return RescueModifier
	case ast.WhilePost, ast.UntilPost:
		return Statement
	case ast.Return, ast.Break, ast.Next:
		if n.Len() > 0 {
			return Statement
		}
		return Primary
	case ast.Send:
		return sendLevel(n)
	case ast.Rational:
		if r, ok := n.Child(0).(*big.Rat); ok && r != nil && literal.IsFraction(r) {
			return Multiplicative
		}
		return Primary
	case ast.Float:
		// -Float::INFINITY is a unary minus on a constant.
		if f, ok := n.Child(0).(float64); ok && math.IsInf(f, -1) {
			return UnaryMinus
		}
		return Primary
	default:
		return Primary
	}
}

func sendLevel(n *ast.Node) Level {
	recv := n.NodeAt(0)
	op := n.StringAt(1)
	args := n.Nodes(2)
	if recv == nil && literal.IsBareCall(op) {
		return Primary
	}
	switch {
	case op == "[]=" && len(args) > 0:
		return Assignment
	case IsAttributeAssign(n):
		return Assignment
	}
	if len(args) == 1 && !args[0].Is(ast.Splat, ast.BlockPass) {
		if l, _, ok := Binary(op); ok {
			return l
		}
	}
	if len(args) == 0 {
		if l, ok := UnaryOp(op); ok {
			return l
		}
	}
	return Primary
}

// IsAttributeAssign reports whether n is `recv.name = value`. A missing
// receiver is written as self.
func IsAttributeAssign(n *ast.Node) bool {
	if !n.Is(ast.Send) || n.Len() != 3 {
		return false
	}
	name := n.StringAt(1)
	if len(name) < 2 || name[len(name)-1] != '=' {
		return false
	}
	switch name {
	case "==", "!=", "===", "<=", ">=", "[]=":
		return false
	}
	return !n.NodeAt(2).Is(ast.Splat, ast.BlockPass)
}

// IsBlockConstruct reports whether n renders as a keyword construct
// closed by `end`.
func IsBlockConstruct(n *ast.Node) bool {
	return n.Is(ast.Def, ast.Defs, ast.Class, ast.Sclass, ast.Module, ast.Case,
		ast.If, ast.While, ast.Until, ast.Kwbegin, ast.For, ast.WhilePost, ast.UntilPost)
}

// IsNegativeLiteral reports whether n is a numeric literal with a minus
// sign.
func IsNegativeLiteral(n *ast.Node) bool {
	if n == nil {
		return false
	}
	v := n.Child(0)
	switch n.Kind {
	case ast.Int:
		i, ok := ast.Integer(v)
		return ok && i.Sign() < 0
	case ast.Float:
		f, ok := v.(float64)
		return ok && f < 0 && !math.IsInf(f, -1)
	case ast.Rational:
		r, ok := v.(*big.Rat)
		return ok && r.Sign() < 0
	case ast.Complex:
		c, ok := v.(complex128)
		return ok && imag(c) < 0
	default:
		return false
	}
}

// NeedsParens reports whether n, rendered at level, must be wrapped in
// parentheses in ctx.
func NeedsParens(n *ast.Node, level Level, ctx Context) bool {
	if level < ctx.Min {
		return true
	}
	if ctx.Side != NoSide && level == ctx.Parent {
		switch {
		case ctx.Assoc == NonAssoc:
			return true
		case ctx.Assoc == Left && ctx.Side == RightSide:
			return true
		case ctx.Assoc == Right && ctx.Side == LeftSide:
			return true
		}
	}
	switch ctx.Pos {
	case InReceiver:
		if IsBlockConstruct(n) {
			return true
		}
	case InOperand:
		if ctx.Parent == Power && ctx.Side == LeftSide && IsNegativeLiteral(n) {
			return true
		}
	}
	switch ctx.Pos {
	case InReceiver, InArgument, InValue, InCondition:
		if n.Is(ast.Masgn) || (n.Is(ast.Rescue) && level == RescueModifier) {
			return true
		}
	}
	return false
}
