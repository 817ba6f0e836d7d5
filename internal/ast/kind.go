package ast

// Kind identifies the type of a syntax tree node. The set is closed: the
// names follow the Ruby parser gem so that trees dumped by that parser can
// be read back unchanged.
type Kind uint8

const (
	Invalid Kind = iota

	// Literals
	Int
	Float
	Rational
	Complex
	Str
	Dstr
	Xstr
	Sym
	Dsym
	Regexp
	Regopt
	Array
	Hash
	Pair
	Kwsplat
	Splat
	Irange
	Erange
	Iflipflop
	Eflipflop
	Nil
	True
	False
	Self

	// Variable and constant access
	Lvar
	Ivar
	Cvar
	Gvar
	NthRef
	BackRef
	Const
	Cbase

	// Assignment
	Lvasgn
	Ivasgn
	Cvasgn
	Cvdecl
	Gvasgn
	Casgn
	Masgn
	Mlhs
	OpAsgn
	OrAsgn
	AndAsgn

	// Calls and blocks
	Send
	Block
	BlockPass
	Args
	Arg
	Optarg
	Restarg
	Blockarg
	Kwarg
	Kwoptarg
	Kwrestarg
	Shadowarg

	// Control flow
	If
	Case
	When
	While
	Until
	WhilePost
	UntilPost
	For
	Begin
	Kwbegin
	Rescue
	Resbody
	Ensure
	Retry
	Redo
	Break
	Next
	Return
	Yield
	Super
	Zsuper
	Defined
	And
	Or
	Not
	MatchCurrentLine
	MatchWithLvasgn

	// Definitions
	Undef
	Alias
	Preexe
	Postexe
	Def
	Defs
	Class
	Sclass
	Module

	numKinds
)

var kindNames = [numKinds]string{
	Invalid:          "<invalid>",
	Int:              "int",
	Float:            "float",
	Rational:         "rational",
	Complex:          "complex",
	Str:              "str",
	Dstr:             "dstr",
	Xstr:             "xstr",
	Sym:              "sym",
	Dsym:             "dsym",
	Regexp:           "regexp",
	Regopt:           "regopt",
	Array:            "array",
	Hash:             "hash",
	Pair:             "pair",
	Kwsplat:          "kwsplat",
	Splat:            "splat",
	Irange:           "irange",
	Erange:           "erange",
	Iflipflop:        "iflipflop",
	Eflipflop:        "eflipflop",
	Nil:              "nil",
	True:             "true",
	False:            "false",
	Self:             "self",
	Lvar:             "lvar",
	Ivar:             "ivar",
	Cvar:             "cvar",
	Gvar:             "gvar",
	NthRef:           "nth_ref",
	BackRef:          "back_ref",
	Const:            "const",
	Cbase:            "cbase",
	Lvasgn:           "lvasgn",
	Ivasgn:           "ivasgn",
	Cvasgn:           "cvasgn",
	Cvdecl:           "cvdecl",
	Gvasgn:           "gvasgn",
	Casgn:            "casgn",
	Masgn:            "masgn",
	Mlhs:             "mlhs",
	OpAsgn:           "op_asgn",
	OrAsgn:           "or_asgn",
	AndAsgn:          "and_asgn",
	Send:             "send",
	Block:            "block",
	BlockPass:        "block_pass",
	Args:             "args",
	Arg:              "arg",
	Optarg:           "optarg",
	Restarg:          "restarg",
	Blockarg:         "blockarg",
	Kwarg:            "kwarg",
	Kwoptarg:         "kwoptarg",
	Kwrestarg:        "kwrestarg",
	Shadowarg:        "shadowarg",
	If:               "if",
	Case:             "case",
	When:             "when",
	While:            "while",
	Until:            "until",
	WhilePost:        "while_post",
	UntilPost:        "until_post",
	For:              "for",
	Begin:            "begin",
	Kwbegin:          "kwbegin",
	Rescue:           "rescue",
	Resbody:          "resbody",
	Ensure:           "ensure",
	Retry:            "retry",
	Redo:             "redo",
	Break:            "break",
	Next:             "next",
	Return:           "return",
	Yield:            "yield",
	Super:            "super",
	Zsuper:           "zsuper",
	Defined:          "defined?",
	And:              "and",
	Or:               "or",
	Not:              "not",
	MatchCurrentLine: "match_current_line",
	MatchWithLvasgn:  "match_with_lvasgn",
	Undef:            "undef",
	Alias:            "alias",
	Preexe:           "preexe",
	Postexe:          "postexe",
	Def:              "def",
	Defs:             "defs",
	Class:            "class",
	Sclass:           "sclass",
	Module:           "module",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := Kind(1); k < numKinds; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// String returns the parser gem name of the kind.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "<invalid>"
}

// IsValid reports whether k is a member of the closed kind set.
func (k Kind) IsValid() bool {
	return k > Invalid && k < numKinds
}

// LookupKind returns the kind registered under name, or Invalid.
func LookupKind(name string) Kind {
	return kindsByName[name]
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds-1)
	for k := Kind(1); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsAssignment reports whether k is a single-target assignment.
func (k Kind) IsAssignment() bool {
	switch k {
	case Lvasgn, Ivasgn, Cvasgn, Cvdecl, Gvasgn, Casgn:
		return true
	default:
		return false
	}
}

// IsArgument reports whether k is a formal parameter kind.
func (k Kind) IsArgument() bool {
	switch k {
	case Arg, Optarg, Restarg, Blockarg, Kwarg, Kwoptarg, Kwrestarg, Shadowarg:
		return true
	default:
		return false
	}
}
