package literal

import (
	"unicode/utf8"

	"github.com/coregx/coregex"
)

// class is a lexical class of Ruby source, such as "identifier" or
// "instance variable name", matched against a whole string.
type class struct {
	name string
	re   *coregex.Regexp
}

// mustClass compiles an anchored pattern, panicking on error.
// Classes are package-level and read-only after init, so they are safe
// for concurrent use.
func mustClass(name, pattern string) *class {
	re, err := coregex.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		panic("literal: compiling " + name + ": " + err.Error())
	}
	return &class{name: name, re: re}
}

// Match reports whether s belongs to the class. Invalid UTF-8 never
// does: Ruby rejects it outside quotes.
func (c *class) Match(s string) bool {
	return utf8.ValidString(s) && c.re.MatchString(s)
}

const (
	identStart = `[A-Za-z_]|[^\x00-\x7F]`
	identChar  = `[A-Za-z0-9_]|[^\x00-\x7F]`
)

var (
	// foo, foo?, foo!, foo=, Foo
	methodName = mustClass("method name", `(?:`+identStart+`)(?:`+identChar+`)*[?!=]?`)
	// foo, Foo (no suffix)
	plainIdent = mustClass("identifier", `(?:`+identStart+`)(?:`+identChar+`)*`)
	// @foo, @@foo, $foo
	ivarName = mustClass("instance variable", `@(?:`+identStart+`)(?:`+identChar+`)*`)
	cvarName = mustClass("class variable", `@@(?:`+identStart+`)(?:`+identChar+`)*`)
	gvarName = mustClass("global variable", `\$(?:`+identStart+`)(?:`+identChar+`)*`)
	// $~ $* $$ $? $! $@ $/ $\ $; $, $. $= $: $< $> $" $& $` $' $+ $0 $-w $1
	specialGvar = mustClass("special global", `\$(?:[~*$?!@/\\;,.=:<>"&'+0`+"`"+`]|-[A-Za-z0-9_]|[1-9][0-9]*)`)
)

// operators are the operator method names that lex as bare symbols.
var operators = map[string]bool{
	"[]": true, "[]=": true, "+": true, "-": true, "*": true, "/": true,
	"%": true, "**": true, "==": true, "===": true, "!=": true, "=~": true,
	"!~": true, "!": true, "<": true, ">": true, "<=": true, ">=": true,
	"<=>": true, "<<": true, ">>": true, "&": true, "|": true, "^": true,
	"~": true, "+@": true, "-@": true, "`": true,
}

var keywords = map[string]bool{
	"__ENCODING__": true, "__FILE__": true, "__LINE__": true,
	"alias": true, "and": true, "begin": true, "BEGIN": true, "break": true,
	"case": true, "class": true, "def": true, "defined?": true, "do": true,
	"else": true, "elsif": true, "end": true, "END": true, "ensure": true,
	"false": true, "for": true, "if": true, "in": true, "module": true,
	"next": true, "nil": true, "not": true, "or": true, "redo": true,
	"rescue": true, "retry": true, "return": true, "self": true,
	"super": true, "then": true, "true": true, "undef": true,
	"unless": true, "until": true, "when": true, "while": true,
	"yield": true,
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool {
	return keywords[name]
}

// IsBareCall reports whether a call of name can be written without a
// receiver. Keywords, setters and operators need `self.`.
func IsBareCall(name string) bool {
	return IsMethodName(name) && !IsKeyword(name) && name[len(name)-1] != '='
}

// IsOperator reports whether name is an operator method name.
func IsOperator(name string) bool {
	return operators[name]
}

// IsIdentifier reports whether name is a plain identifier without a
// `?`, `!` or `=` suffix.
func IsIdentifier(name string) bool {
	return plainIdent.Match(name)
}

// IsMethodName reports whether name can be called with `recv.name`.
func IsMethodName(name string) bool {
	return methodName.Match(name)
}

// IsVariableName reports whether name is an instance, class or global
// variable name, including the special globals.
func IsVariableName(name string) bool {
	return ivarName.Match(name) || cvarName.Match(name) ||
		gvarName.Match(name) || specialGvar.Match(name)
}
