package printer_test

import (
	"errors"
	"testing"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/parser"
	"github.com/kolkov/unparser/internal/printer"
	"github.com/kolkov/unparser/internal/token"
)

var ruby21 = printer.Options{
	Variant: "2.1",
	Capabilities: printer.Capabilities{
		KeywordArgs:         true,
		RequiredKeywordArgs: true,
		KeywordSplat:        true,
		RationalLiterals:    true,
		ImaginaryLiterals:   true,
	},
}

type printTest struct {
	name string
	src  string
	want string
}

func runPrintTests(t *testing.T, tests []printTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := printer.Print(parser.MustParse(tt.src), nil, ruby21)
			if err != nil {
				t.Fatalf("Print(%s) error: %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("Print(%s) =\n%s\nwant:\n%s", tt.src, got, tt.want)
			}
		})
	}
}

func TestPrintLiterals(t *testing.T) {
	runPrintTests(t, []printTest{
		{"int", "(int 1)", "1"},
		{"negative int", "(int -1)", "-1"},
		{"float", "(float 1.5)", "1.5"},
		{"infinity", "(float -Infinity)", "-Float::INFINITY"},
		{"rational", "(rational 3r)", "3r"},
		{"fraction", "(rational 1/3r)", "1/3r"},
		{"imaginary", "(complex 2i)", "2i"},
		{"string", `(str "foo")`, `"foo"`},
		{"symbol", "(sym :foo)", ":foo"},
		{"quoted symbol", `(sym :"A B")`, `:"A B"`},
		{"invalid utf-8 symbol", `(sym :"\xff")`, `:"\xFF"`},
		{"invalid utf-8 key", `(hash (pair (sym :"a\xffb") (int 1)))`, `{ :"a\xFFb" => 1 }`},
		{"nil", "(nil)", "nil"},
		{"true", "(true)", "true"},
		{"self", "(self)", "self"},
		{"array", "(array (int 1) (splat (lvar :a)))", "[1, *a]"},
		{"empty array", "(array)", "[]"},
		{"hash", `(hash (pair (sym :a) (int 1)) (pair (str "b") (int 2)))`, `{ a: 1, "b" => 2 }`},
		{"empty hash", "(hash)", "{}"},
		{"kwsplat", "(hash (kwsplat (lvar :a)))", "{ **a }"},
		{"inclusive range", "(irange (int 1) (int 2))", "1..2"},
		{"endless range", "(erange (int 1) nil)", "1..."},
		{"nth ref", "(nth_ref 1)", "$1"},
		{"back ref", "(back_ref :$&)", "$&"},
		{"constant", "(const (const nil :A) :B)", "A::B"},
		{"top constant", "(const (cbase) :Foo)", "::Foo"},
	})
}

func TestPrintStrings(t *testing.T) {
	runPrintTests(t, []printTest{
		{"interpolation", `(dstr (str "a") (begin (lvar :b)) (str "c"))`, `"a#{b}c"`},
		{"ivar shorthand", `(dstr (ivar :@a) (str " x"))`, `"#@a x"`},
		{"ivar before name", `(dstr (ivar :@a) (str "x"))`, `"#{@a}x"`},
		{"several statements", `(dstr (begin (lvar :a) (lvar :b)))`, `"#{a; b}"`},
		{"adjacent literals", `(dstr (dstr (str "a") (begin (lvar :b))) (str "c"))`, `"a#{b}c"`},
		{"escaped hash", `(dstr (str "#{") (begin (lvar :b)))`, `"\#{#{b}"`},
		{"dsym", `(dsym (str "a") (begin (lvar :b)))`, `:"a#{b}"`},
		{"xstr", "(xstr (str \"ls\"))", "`ls`"},
		{"regexp", `(regexp (str "foo") (regopt :i))`, "/foo/i"},
		{"regexp options", `(regexp (str "foo") (regopt :x :m :i))`, "/foo/imx"},
		{"regexp with slash", `(regexp (str "a/b") (regopt))`, "%r{a/b}"},
		{"regexp interpolation", `(regexp (str "a") (begin (lvar :b)) (regopt))`, "/a#{b}/"},
	})
}

func TestPrintSends(t *testing.T) {
	runPrintTests(t, []printTest{
		{"bare call", "(send nil :foo)", "foo"},
		{"constant-like call", "(send nil :Foo)", "Foo()"},
		{"call with args", "(send nil :foo (int 1) (lvar :b))", "foo(1, b)"},
		{"method call", "(send (lvar :a) :bar)", "a.bar"},
		{"chained", "(send (send nil :foo) :bar)", "foo.bar"},
		{"self receiver", "(send (self) :foo)", "self.foo"},
		{"keyword name", "(send nil :class)", "self.class"},
		{"receiverless setter", "(send nil :foo= (int 1))", "self.foo = 1"},
		{"receiverless index", "(send nil :[] (int 1))", "self[1]"},
		{"receiverless index assign", "(send nil :[]= (int 1) (int 2))", "self[1] = 2"},
		{"receiverless operator", "(send nil :+ (int 1))", "self + 1"},
		{"receiverless setter as receiver", "(send (send nil :foo= (int 1)) :bar)", "(self.foo = 1).bar"},
		{"index", "(send (lvar :a) :[] (int 1))", "a[1]"},
		{"index assign", "(send (lvar :a) :[]= (int 1) (int 2))", "a[1] = 2"},
		{"index assign without args", "(send (lvar :array) :[]=)", "array.[]=()"},
		{"attribute assign", "(send (lvar :a) :foo= (int 1))", "a.foo = 1"},
		{"binary", "(send (lvar :a) :+ (int 1))", "a + 1"},
		{"not", "(send (lvar :a) :!)", "!a"},
		{"negate", "(send (lvar :a) :-@)", "-a"},
		{"trailing hash", "(send (lvar :a) :foo (hash (pair (sym :b) (int 1))))", "a.foo(b: 1)"},
		{"hash before block pass", "(send nil :foo (hash (pair (sym :b) (int 1))) (block_pass (lvar :c)))", "foo(b: 1, &c)"},
		{"hash not last", "(send nil :foo (hash (pair (sym :b) (int 1))) (int 2))", "foo({ b: 1 }, 2)"},
		{"block pass", "(send nil :foo (block_pass (lvar :blk)))", "foo(&blk)"},
		{"splat arg", "(send nil :foo (splat (lvar :a)))", "foo(*a)"},
		{"yield", "(yield)", "yield"},
		{"yield args", "(yield (int 1))", "yield(1)"},
		{"super", "(super)", "super()"},
		{"zsuper", "(zsuper)", "super"},
		{"defined", "(defined? (ivar :@a))", "defined?(@a)"},
		{"local shadows call", "(lvasgn :foo (send nil :foo))", "foo = foo()"},
		{"local receiver", "(begin (lvasgn :local (int 1)) (send (lvar :local) :bar))", "local = 1\nlocal.bar"},
	})
}

func TestPrintPrecedence(t *testing.T) {
	runPrintTests(t, []printTest{
		{"right nested or", "(or (lvar :a) (or (lvar :b) (lvar :c)))", "a || (b || c)"},
		{"left nested or", "(or (or (lvar :a) (lvar :b)) (lvar :c))", "a || b || c"},
		{"grouped operands", "(send (send (lvar :a) :+ (lvar :b)) :/ (send (lvar :c) :- (lvar :d)))", "(a + b) / (c - d)"},
		{"no parens needed", "(send (lvar :a) :+ (send (lvar :b) :* (lvar :c)))", "a + b * c"},
		{"right side same level", "(send (lvar :a) :- (send (lvar :b) :- (lvar :c)))", "a - (b - c)"},
		{"power is right assoc", "(send (lvar :a) :** (send (lvar :b) :** (lvar :c)))", "a ** b ** c"},
		{"equality is non assoc", "(send (send (lvar :a) :== (lvar :b)) :== (lvar :c))", "(a == b) == c"},
		{"negated literal", "(send (int 1) :-@)", "-+1"},
		{"plus literal", "(send (int 1) :+@)", "++1"},
		{"negated sum", "(send (send (lvar :a) :+ (lvar :b)) :-@)", "-(a + b)"},
		{"negative base", "(send (int -1) :** (int 2))", "(-1) ** 2"},
		{"range receiver", "(send (irange (int 1) (int 2)) :each)", "(1..2).each"},
		{"fraction receiver", "(send (rational 1/3r) :foo)", "(1/3r).foo"},
		{"infinity receiver", "(send (float -Infinity) :foo)", "(-Float::INFINITY).foo"},
		{"if receiver", "(send (if (lvar :a) (int 1) nil) :foo)", "(if a\n  1\nend).foo"},
		{"and", "(and (lvar :a) (lvar :b))", "a && b"},
		{"or of and", "(or (and (lvar :a) (lvar :b)) (lvar :c))", "a && b || c"},
		{"not of and", "(not (and (lvar :a) (lvar :b)))", "!(a && b)"},
		{"group", "(send (begin (send (lvar :a) :+ (lvar :b))) :* (lvar :c))", "(a + b) * c"},
		{"empty group receiver", "(send (begin) :foo)", "().foo"},
		{"assignment in condition", "(if (lvasgn :a (int 1)) (lvar :a) nil)", "if a = 1\n  a\nend"},
		{"assignment operand", "(send (lvasgn :a (int 1)) :+ (int 2))", "(a = 1) + 2"},
		{"masgn argument", "(send nil :foo (masgn (mlhs (lvasgn :a) (lvasgn :b)) (lvar :c)))", "foo((a, b = c))"},
	})
}

func TestPrintAssignments(t *testing.T) {
	runPrintTests(t, []printTest{
		{"local", "(lvasgn :a (int 1))", "a = 1"},
		{"ivar", "(ivasgn :@a (int 1))", "@a = 1"},
		{"cvar", "(cvdecl :@@a (int 1))", "@@a = 1"},
		{"gvar", "(gvasgn :$a (int 1))", "$a = 1"},
		{"constant", "(casgn nil :Foo (int 1))", "Foo = 1"},
		{"top constant", "(casgn (cbase) :Foo (int 1))", "::Foo = 1"},
		{"scoped constant", "(casgn (const nil :A) :B (int 1))", "A::B = 1"},
		{"chained", "(lvasgn :a (lvasgn :b (int 1)))", "a = b = 1"},
		{"masgn", "(masgn (mlhs (lvasgn :a) (lvasgn :b)) (array (int 1) (int 2)))", "a, b = [1, 2]"},
		{"masgn single", "(masgn (mlhs (lvasgn :a)) (lvar :b))", "a, = b"},
		{"masgn nested", "(masgn (mlhs (splat (lvasgn :a)) (mlhs (lvasgn :b) (lvasgn :c))) (lvar :d))", "*a, (b, c) = d"},
		{"masgn attribute", "(masgn (mlhs (send (self) :a=) (send (lvar :b) :[]= (int 1))) (lvar :c))", "self.a, b[1] = c"},
		{"op assign", "(op_asgn (lvasgn :a) :+ (int 1))", "a += 1"},
		{"or assign", "(or_asgn (ivasgn :@a) (int 1))", "@a ||= 1"},
		{"and assign", "(and_asgn (send (lvar :a) :b) (int 1))", "a.b &&= 1"},
		{"index op assign", "(op_asgn (send (lvar :a) :[] (int 1)) :+ (int 2))", "a[1] += 2"},
		{"rescue value", "(lvasgn :a (rescue (send nil :foo) (resbody nil nil (int 1)) nil))", "a = foo rescue 1"},
		{"named captures", `(begin (match_with_lvasgn (regexp (str "(?<x>a)") (regopt)) (str "a")) (send nil :p (lvar :x)))`, "/(?<x>a)/ =~ \"a\"\np(x)"},
	})
}

func TestPrintBlocks(t *testing.T) {
	runPrintTests(t, []printTest{
		{"empty", "(block (send nil :foo) (args) nil)", "foo do\nend"},
		{"param", "(block (send (lvar :a) :each) (args (arg :x)) (send nil :puts (lvar :x)))", "a.each do |x|\n  puts(x)\nend"},
		{"call args", "(block (send nil :foo (int 1)) (args) (nil))", "foo(1) do\n  nil\nend"},
		{"shadow args", "(block (send nil :foo) (args (arg :a) (shadowarg :b)) nil)", "foo do |a; b|\nend"},
		{"destructuring", "(block (send nil :foo) (args (mlhs (arg :a) (arg :b))) nil)", "foo do |(a, b)|\nend"},
		{"all params", "(block (send nil :foo) (args (arg :a) (optarg :b (int 1)) (restarg :c) (blockarg :d)) nil)", "foo do |a, b = 1, *c, &d|\nend"},
		{"anonymous splat", "(block (send nil :foo) (args (arg :a) (restarg)) nil)", "foo do |a, *|\nend"},
		{"block param is local", "(block (send nil :foo) (args (arg :bar)) (send nil :bar))", "foo do |bar|\n  bar()\nend"},
		{"block locals stay inside", "(begin (block (send nil :foo) (args) (lvasgn :a (int 1))) (send nil :a))", "foo do\n  a = 1\nend\na"},
		{"super block", "(block (zsuper) (args) nil)", "super do\nend"},
		{"block receiver", "(send (block (send nil :foo) (args) nil) :bar)", "foo do\nend.bar"},
	})
}

func TestPrintControl(t *testing.T) {
	runPrintTests(t, []printTest{
		{"if", "(if (lvar :a) (int 1) nil)", "if a\n  1\nend"},
		{"if else", "(if (lvar :a) (int 1) (int 2))", "if a\n  1\nelse\n  2\nend"},
		{"unless", "(if (lvar :a) nil (int 2))", "unless a\n  2\nend"},
		{"empty if", "(if (lvar :a) nil nil)", "if a\nend"},
		{"elsif chain", "(if (lvar :a) (int 1) (if (lvar :b) (int 2) nil))", "if a\n  1\nelse\n  if b\n    2\n  end\nend"},
		{"modifier if", "(if (lvar :foo) (lvasgn :foo (int 1)) nil)", "foo = 1 if foo"},
		{"modifier unless", "(if (lvar :foo) nil (lvasgn :foo (int 1)))", "foo = 1 unless foo"},
		{"modifier as value", "(lvasgn :a (if (lvar :foo) (lvasgn :foo (int 1)) nil))", "a = (foo = 1 if foo)"},
		{"modifier while", "(while (lvar :foo) (lvasgn :foo (send nil :bar)))", "foo = bar while foo"},
		{"declared local", "(def :foo (args (restarg :foo)) (if (lvar :foo) nil (lvasgn :foo (send nil :bar))))", "def foo(*foo)\n  unless foo\n    foo = bar\n  end\nend"},
		{"while", "(while (lvar :a) (send nil :foo))", "while a\n  foo\nend"},
		{"until", "(until (lvar :a) nil)", "until a\nend"},
		{"post loop", "(while_post (lvar :a) (kwbegin (send nil :foo)))", "begin\n  foo\nend while a"},
		{"post until", "(until_post (lvar :a) (kwbegin (send nil :foo) (send nil :bar)))", "begin\n  foo\n  bar\nend until a"},
		{"for", "(for (lvasgn :a) (lvar :b) (send nil :foo))", "for a in b do\n  foo\nend"},
		{"for destructuring", "(for (mlhs (lvasgn :a) (lvasgn :b)) (lvar :c) nil)", "for a, b in c do\nend"},
		{"case", "(case (lvar :a) (when (int 1) (int 2) (send nil :foo)) (when (int 3) nil) (send nil :bar))", "case a\nwhen 1, 2\n  foo\nwhen 3\nelse\n  bar\nend"},
		{"case without subject", "(case nil (when (lvar :a) nil) nil)", "case\nwhen a\nend"},
		{"when splat", "(case (lvar :a) (when (splat (lvar :b)) nil) nil)", "case a\nwhen *b\nend"},
		{"local from one if branch", "(begin (if (send nil :c) (lvasgn :x (int 1)) nil) (send nil :x))", "if c\n  x = 1\nend\nx()"},
		{"local from else branch", "(begin (if (send nil :c) (send nil :foo) (lvasgn :x (int 1))) (send nil :x))", "if c\n  foo\nelse\n  x = 1\nend\nx()"},
		{"local from when branch", "(begin (case (send nil :a) (when (int 1) (lvasgn :x (int 1))) nil) (send nil :x))", "case a\nwhen 1\n  x = 1\nend\nx()"},
		{"return", "(return)", "return"},
		{"return values", "(return (int 1) (int 2))", "return 1, 2"},
		{"break", "(break (lvar :a))", "break a"},
		{"next conditional", "(next (if (lvar :a) (int 1) nil))", "next (if a\n  1\nend)"},
		{"retry", "(retry)", "retry"},
		{"redo", "(redo)", "redo"},
		{"flip flop", "(if (iflipflop (lvar :a) (lvar :b)) nil nil)", "if a..b\nend"},
		{"match current line", "(if (match_current_line (regexp (str \"a\") (regopt))) nil nil)", "if /a/\nend"},
		{"regexp or next", "(or (match_current_line (regexp (str \"\") (regopt))) (next))", "// || next"},
	})
}

func TestPrintExceptions(t *testing.T) {
	runPrintTests(t, []printTest{
		{"rescue modifier", "(rescue (send nil :foo) (resbody nil nil (send nil :bar)) nil)", "foo rescue bar"},
		{"rescue argument", "(send nil :foo (rescue (lvar :a) (resbody nil nil (int 1)) nil))", "foo((a rescue 1))"},
		{"begin rescue", "(kwbegin (rescue (send nil :foo) (resbody (array (const nil :Error)) (lvasgn :e) (send nil :bar)) nil))",
			"begin\n  foo\nrescue Error => e\n  bar\nend"},
		{"rescue list", "(kwbegin (rescue nil (resbody (array (const nil :A) (splat (lvar :b))) nil nil) nil))",
			"begin\nrescue A, *b\nend"},
		{"all clauses", "(kwbegin (ensure (rescue (send nil :a) (resbody nil nil (send nil :b)) (send nil :c)) (send nil :d)))",
			"begin\n  a\nrescue\n  b\nelse\n  c\nensure\n  d\nend"},
		{"ensure only", "(kwbegin (ensure (send nil :a) (send nil :b)))", "begin\n  a\nensure\n  b\nend"},
		{"bare rescue with else", "(rescue (send nil :a) (resbody nil nil (send nil :b)) (send nil :c))",
			"begin\n  a\nrescue\n  b\nelse\n  c\nend"},
		{"empty begin", "(kwbegin)", "begin\nend"},
		{"begin statements", "(kwbegin (send nil :a) (send nil :b))", "begin\n  a\n  b\nend"},
		{"def rescue", "(def :foo (args) (rescue (send nil :a) (resbody nil nil (send nil :b)) nil))",
			"def foo\n  a\nrescue\n  b\nend"},
		{"def ensure", "(def :foo (args) (ensure (send nil :a) (send nil :b)))",
			"def foo\n  a\nensure\n  b\nend"},
	})
}

func TestPrintDefinitions(t *testing.T) {
	runPrintTests(t, []printTest{
		{"def", "(def :foo (args) nil)", "def foo\nend"},
		{"def params", "(def :foo (args (arg :a) (optarg :b (int 1)) (restarg :c) (blockarg :d)) nil)", "def foo(a, b = 1, *c, &d)\nend"},
		{"def keywords", "(def :foo (args (kwoptarg :a (int 1)) (kwarg :b) (kwrestarg :c)) nil)", "def foo(a: 1, b:, **c)\nend"},
		{"def body", "(def :foo (args (arg :a)) (send nil :a))", "def foo(a)\n  a()\nend"},
		{"def scope", "(begin (lvasgn :a (int 1)) (def :foo (args) (send nil :a)))", "a = 1\ndef foo\n  a\nend"},
		{"defs self", "(defs (self) :foo (args) nil)", "def self.foo\nend"},
		{"defs local", "(defs (lvar :a) :foo (args) nil)", "def a.foo\nend"},
		{"defs constant", "(defs (const nil :Foo) :bar (args) nil)", "def Foo.bar\nend"},
		{"defs call", "(defs (send nil :foo) :bar (args) nil)", "def foo.bar\nend"},
		{"defs expression", "(defs (send (lvar :a) :b) :foo (args) nil)", "def (a.b).foo\nend"},
		{"class", "(class (const nil :Foo) (const nil :Bar) (send nil :foo))", "class Foo < Bar\n  foo\nend"},
		{"empty class", "(class (const nil :Foo) nil nil)", "class Foo\nend"},
		{"class rescue", "(class (const nil :Foo) nil (rescue (send nil :a) (resbody nil nil (send nil :b)) nil))",
			"class Foo\n  a rescue b\nend"},
		{"sclass", "(sclass (self) (def :foo (args) nil))", "class << self\n  def foo\n  end\nend"},
		{"module", "(module (const (const nil :A) :B) nil)", "module A::B\nend"},
		{"undef", "(undef (sym :foo) (sym :bar))", "undef :foo, :bar"},
		{"alias", "(alias (sym :foo) (sym :bar))", "alias :foo :bar"},
		{"alias gvar", "(alias (gvar :$a) (gvar :$b))", "alias $a $b"},
		{"BEGIN", "(preexe (send nil :foo))", "BEGIN {\n  foo\n}"},
		{"END", "(postexe nil)", "END {\n}"},
		{"statements", "(begin (int 1) (int 2))", "1\n2"},
		{"empty root", "(begin)", ""},
	})
}

func comment(t *testing.T, kind ast.CommentKind, text, r string) ast.Comment {
	t.Helper()
	rng, err := token.ParseRange(r)
	if err != nil {
		t.Fatalf("ParseRange(%q) error: %v", r, err)
	}
	return ast.Comment{Kind: kind, Text: text, Range: rng}
}

func TestPrintComments(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		comments []ast.Comment
		want     string
	}{
		{
			name: "leading and trailing",
			src:  "(send @2:0-2:3 nil :foo)",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# leading", "1:0-1:9"),
				comment(t, ast.Inline, "# trailing", "2:4-2:14"),
			},
			want: "# leading\nfoo # trailing",
		},
		{
			name: "trailing comments merge",
			src:  "(send @1:0-1:5 (int @1:0-1:1 1) :+ (int @1:4-1:5 2))",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# first", "1:6-1:13"),
				comment(t, ast.Inline, "# second", "1:14-1:22"),
			},
			want: "1 + 2 # first # second",
		},
		{
			name: "before end",
			src:  "(def @1:0-3:3 @end:3:0-3:3 :noop (args) nil)",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# do nothing", "2:2-2:14"),
			},
			want: "def noop\n  # do nothing\nend",
		},
		{
			name: "inside block body",
			src:  "(block @1:0-4:3 @end:4:0-4:3 (send @1:0-1:3 nil :foo) (args) (send @3:2-3:5 nil :bar))",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# inside", "2:2-2:10"),
			},
			want: "foo do\n  # inside\n  bar\nend",
		},
		{
			name: "after condition",
			src:  "(if @1:0-3:3 @end:3:0-3:3 (lvar @1:3-1:4 :a) (lvar @2:2-2:3 :b) nil)",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# check", "1:5-1:12"),
			},
			want: "if a # check\n  b\nend",
		},
		{
			name: "document",
			src:  "(send @4:0-4:3 nil :foo)",
			comments: []ast.Comment{
				comment(t, ast.Document, "=begin\ndoc\n=end\n", "1:0-4:0"),
			},
			want: "=begin\ndoc\n=end\nfoo",
		},
		{
			name: "end of file",
			src:  "(send @1:0-1:3 nil :foo)",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# bye", "2:0-2:5"),
			},
			want: "foo\n# bye",
		},
		{
			name: "only comments",
			src:  "",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# one", "1:0-1:5"),
				comment(t, ast.Inline, "# two", "2:0-2:5"),
			},
			want: "# one\n# two",
		},
		{
			name: "between statements",
			src:  "(begin @1:0-3:3 (send @1:0-1:3 nil :foo) (send @3:0-3:3 nil :bar))",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# middle", "2:0-2:8"),
			},
			want: "foo\n# middle\nbar",
		},
		{
			name: "unlocated tree",
			src:  "(send nil :foo)",
			comments: []ast.Comment{
				comment(t, ast.Inline, "# lost", "1:4-1:10"),
			},
			want: "foo\n# lost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parser.MustParse(tt.src)
			got, err := printer.Print(root, tt.comments, ruby21)
			if err != nil {
				t.Fatalf("Print() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Print() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestPrintVariants(t *testing.T) {
	ruby19 := printer.Options{Variant: "1.9"}
	ruby20 := printer.Options{
		Variant:      "2.0",
		Capabilities: printer.Capabilities{KeywordArgs: true, KeywordSplat: true},
	}

	tests := []struct {
		name    string
		src     string
		opts    printer.Options
		kind    string
		wantErr bool
	}{
		{"optional keyword on 1.9", "(def :foo (args (kwoptarg :a (int 1))) nil)", ruby19, "kwoptarg", true},
		{"optional keyword on 2.0", "(def :foo (args (kwoptarg :a (int 1))) nil)", ruby20, "", false},
		{"required keyword on 2.0", "(def :foo (args (kwarg :a)) nil)", ruby20, "kwarg", true},
		{"keyword splat on 1.9", "(hash (kwsplat (lvar :a)))", ruby19, "kwsplat", true},
		{"keyword rest on 1.9", "(def :foo (args (kwrestarg :a)) nil)", ruby19, "kwrestarg", true},
		{"rational on 2.0", "(rational 3r)", ruby20, "rational", true},
		{"imaginary on 2.0", "(complex 2i)", ruby20, "complex", true},
		{"plain on 1.9", "(send nil :foo (int 1))", ruby19, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := printer.Print(parser.MustParse(tt.src), nil, tt.opts)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Print() error: %v", err)
				}
				return
			}
			if !errors.Is(err, printer.ErrUnsupportedConstruct) {
				t.Fatalf("Print() error = %v, want ErrUnsupportedConstruct", err)
			}
			var uce *printer.UnsupportedConstructError
			if !errors.As(err, &uce) {
				t.Fatalf("Print() error type = %T", err)
			}
			if uce.Kind != tt.kind || uce.Variant != tt.opts.Variant {
				t.Errorf("error = {%s %s}, want {%s %s}", uce.Kind, uce.Variant, tt.kind, tt.opts.Variant)
			}
			if out != "" {
				t.Errorf("Print() output = %q on error, want empty", out)
			}
		})
	}
}

func TestPrintMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing name", "(lvasgn)"},
		{"call name with a space", `(send nil :"foo bar")`},
		{"assignment without value", "(lvasgn :a)"},
		{"assignment without value in arguments", "(send nil :foo (ivasgn :@a))"},
		{"pair at top level", "(pair (sym :a) (int 1))"},
		{"argument outside args", "(arg :a)"},
		{"masgn without mlhs", "(masgn (lvasgn :a) (int 1))"},
		{"string child", "(str (int 1))"},
		{"block on literal", "(block (int 1) (args) nil)"},
		{"missing regopt", `(regexp (str "a"))`},
		{"post loop without begin", "(while_post (lvar :a) (send nil :foo))"},
		{"case without when", "(case (lvar :a) (int 1) nil)"},
		{"missing receiver", "(send (lvar :a) :+ nil)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := printer.Print(parser.MustParse(tt.src), nil, ruby21)
			if !errors.Is(err, printer.ErrMalformedNode) {
				t.Errorf("Print(%s) error = %v, want ErrMalformedNode", tt.src, err)
			}
		})
	}
}

func TestPrintUnsupported(t *testing.T) {
	_, err := printer.Print(ast.New(ast.Invalid), nil, ruby21)
	if !errors.Is(err, printer.ErrUnsupportedNode) {
		t.Fatalf("Print() error = %v, want ErrUnsupportedNode", err)
	}
	if got, want := err.Error(), "unsupported node kind: <invalid>"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPrintNilRoot(t *testing.T) {
	got, err := printer.Print(nil, nil, ruby21)
	if err != nil || got != "" {
		t.Errorf("Print(nil) = %q, %v, want empty", got, err)
	}
}

func TestPrintDeterministic(t *testing.T) {
	src := "(begin (lvasgn :a (int 1)) (if (lvar :b) (lvasgn :b (lvar :a)) nil) (block (send nil :foo) (args (arg :x)) (send (lvar :x) :+ (lvar :a))))"
	root := parser.MustParse(src)
	first, err := printer.Print(root, nil, ruby21)
	if err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	second, err := printer.Print(root, nil, ruby21)
	if err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	if first != second {
		t.Errorf("Print() not deterministic:\n%s\n---\n%s", first, second)
	}
	want := "a = 1\nb = a if b\nfoo do |x|\n  x + a\nend"
	if first != want {
		t.Errorf("Print() =\n%s\nwant:\n%s", first, want)
	}
}
