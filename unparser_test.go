package unparser_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kolkov/unparser"
)

func TestUnparseString(t *testing.T) {
	tests := []struct {
		name    string
		sexp    string
		config  *unparser.Config
		want    string
		wantErr bool
	}{
		{
			name: "local shadows call",
			sexp: "(lvasgn :foo (send nil :foo))",
			want: "foo = foo()",
		},
		{
			name: "if",
			sexp: "(if (lvar :a) (int 1) nil)",
			want: "if a\n  1\nend",
		},
		{
			name: "empty input",
			sexp: "",
			want: "",
		},
		{
			name:   "keyword arguments on 2.0",
			sexp:   "(def :foo (args (kwoptarg :a (int 1))) nil)",
			config: &unparser.Config{Variant: unparser.Ruby20},
			want:   "def foo(a: 1)\nend",
		},
		{
			name:    "required keyword on 2.0",
			sexp:    "(def :foo (args (kwarg :a)) nil)",
			config:  &unparser.Config{Variant: unparser.Ruby20},
			wantErr: true,
		},
		{
			name:    "unknown variant",
			sexp:    "(int 1)",
			config:  &unparser.Config{Variant: "3.0"},
			wantErr: true,
		},
		{
			name:    "syntax error",
			sexp:    "(send nil :foo",
			wantErr: true,
		},
		{
			name:    "malformed",
			sexp:    "(lvasgn)",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unparser.UnparseString(tt.sexp, tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("UnparseString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("UnparseString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnparseDoesNotModifyConfig(t *testing.T) {
	cfg := &unparser.Config{}
	if _, err := unparser.UnparseString("(int 1)", cfg); err != nil {
		t.Fatalf("UnparseString() error = %v", err)
	}
	if cfg.Variant != "" {
		t.Errorf("Config.Variant = %q after Unparse, want empty", cfg.Variant)
	}
}

func TestUnparseBuiltTree(t *testing.T) {
	root := unparser.S("send", unparser.S("lvar", "a"), "+", unparser.S("int", 1))
	got, err := unparser.Unparse(root, nil, nil)
	if err != nil {
		t.Fatalf("Unparse() error = %v", err)
	}
	if got != "a + 1" {
		t.Errorf("Unparse() = %q, want %q", got, "a + 1")
	}
}

func TestUnparseComments(t *testing.T) {
	root := unparser.MustParse("(send @1:0-1:3 nil :foo)")
	r, err := unparser.ParseRange("1:4-1:10")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	cs := []unparser.Comment{{Kind: unparser.InlineKind, Text: "# note", Range: r}}
	got, err := unparser.Unparse(root, cs, nil)
	if err != nil {
		t.Fatalf("Unparse() error = %v", err)
	}
	if want := "foo # note"; got != want {
		t.Errorf("Unparse() = %q, want %q", got, want)
	}
}

func TestMustUnparse(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustUnparse() should panic on a malformed tree")
		}
	}()

	_ = unparser.MustUnparse(unparser.MustParse("(lvasgn)"), nil, nil)
}

func TestMustParse(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse() should panic on invalid input")
		}
	}()

	_ = unparser.MustParse("(int")
}

func TestSexp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"atom children", "(send nil :foo (int 1))", "(send nil :foo\n  (int 1))"},
		{"located", "(int @1:0-1:1 1)", "(int @1:0-1:1 1)"},
		{"quoted symbol", `(sym :"a b")`, `(sym :"a b")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := unparser.MustParse(tt.in)
			got := unparser.Sexp(n)
			if got != tt.want {
				t.Errorf("Sexp() = %q, want %q", got, tt.want)
			}
			again, err := unparser.Parse(got)
			if err != nil {
				t.Fatalf("Parse(Sexp()) error = %v", err)
			}
			if unparser.Sexp(again) != got {
				t.Errorf("Sexp() is not stable across Parse")
			}
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := unparser.Parse("(int 1)\n(int")
	if err == nil {
		t.Fatal("expected error for invalid s-expression")
	}

	pe, ok := err.(*unparser.ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
	if !strings.HasPrefix(pe.Error(), "parse error at 2:") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		sexp   string
		config *unparser.Config
		target error
	}{
		{"malformed", "(masgn (lvasgn :a) (int 1))", nil, unparser.ErrMalformedNode},
		{"construct", "(complex 2i)", &unparser.Config{Variant: unparser.Ruby19}, unparser.ErrUnsupportedConstruct},
		{"variant", "(int 1)", &unparser.Config{Variant: "1.8"}, unparser.ErrUnknownVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unparser.UnparseString(tt.sexp, tt.config)
			if !errors.Is(err, tt.target) {
				t.Errorf("UnparseString() error = %v, want %v", err, tt.target)
			}
		})
	}

	_, err := unparser.UnparseString("(complex 2i)", &unparser.Config{Variant: unparser.Ruby19})
	var uce *unparser.UnsupportedConstructError
	if !errors.As(err, &uce) {
		t.Fatalf("expected *UnsupportedConstructError, got %T", err)
	}
	if uce.Kind != "complex" || uce.Variant != "1.9" {
		t.Errorf("UnsupportedConstructError = %+v", uce)
	}
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		variant unparser.Variant
		want    unparser.Capabilities
	}{
		{unparser.Ruby19, unparser.Capabilities{}},
		{unparser.Ruby20, unparser.Capabilities{KeywordArgs: true, KeywordSplat: true}},
		{unparser.Ruby21, unparser.Capabilities{
			KeywordArgs:         true,
			RequiredKeywordArgs: true,
			KeywordSplat:        true,
			RationalLiterals:    true,
			ImaginaryLiterals:   true,
		}},
		{"1.8", unparser.Capabilities{}},
	}
	for _, tt := range tests {
		if got := tt.variant.Capabilities(); got != tt.want {
			t.Errorf("Variant(%q).Capabilities() = %+v, want %+v", tt.variant, got, tt.want)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range unparser.Variants() {
		got, err := unparser.ParseVariant(string(v))
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %q, %v", v, got, err)
		}
	}
	if _, err := unparser.ParseVariant("2.2"); !errors.Is(err, unparser.ErrUnknownVariant) {
		t.Errorf("ParseVariant(2.2) error = %v, want ErrUnknownVariant", err)
	}
}

func TestExec(t *testing.T) {
	var out bytes.Buffer
	if err := unparser.Exec(`(send nil :puts (str "hi"))`, &out, nil); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if got, want := out.String(), "puts(\"hi\")\n"; got != want {
		t.Errorf("Exec() wrote %q, want %q", got, want)
	}

	out.Reset()
	if err := unparser.Exec("(lvasgn)", &out, nil); err == nil {
		t.Error("Exec() expected error")
	}
	if out.Len() != 0 {
		t.Errorf("Exec() wrote %q on error", out.String())
	}
}

func TestAssociate(t *testing.T) {
	doc, err := unparser.LoadDocument(filepath.Join("testdata", "class_comments.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	root, cs, err := doc.Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	assocs := unparser.Associate(root, cs)
	if len(assocs) != len(cs) {
		t.Fatalf("Associate() returned %d associations, want %d", len(assocs), len(cs))
	}
	want := []struct {
		kind     string
		trailing bool
	}{
		{"class", false},
		{"const", true},
		{"def", false},
		{"send", true},
	}
	for i, a := range assocs {
		if got := a.Node.Kind.String(); got != want[i].kind || a.Trailing != want[i].trailing {
			t.Errorf("association %d (%s) = %s trailing=%v, want %s trailing=%v",
				i, a.Comment.Text, got, a.Trailing, want[i].kind, want[i].trailing)
		}
	}
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures in testdata")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, err := unparser.LoadDocument(path)
			if err != nil {
				t.Fatalf("LoadDocument() error = %v", err)
			}
			got, err := doc.Unparse()
			if err != nil {
				t.Fatalf("Unparse() error = %v", err)
			}
			if got != doc.Expect {
				t.Errorf("Unparse() =\n%s\nwant:\n%s", got, doc.Expect)
			}
		})
	}
}

func TestUnparseConcurrent(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	type job struct {
		name   string
		root   *unparser.Node
		cs     []unparser.Comment
		cfg    *unparser.Config
		expect string
	}
	var jobs []job
	for _, path := range paths {
		doc, err := unparser.LoadDocument(path)
		if err != nil {
			t.Fatalf("LoadDocument() error = %v", err)
		}
		root, cs, err := doc.Tree()
		if err != nil {
			t.Fatalf("Tree() error = %v", err)
		}
		jobs = append(jobs, job{filepath.Base(path), root, cs, doc.Config(), doc.Expect})
	}
	// Named captures and labels go through the shared regexp classes.
	root := unparser.MustParse(`(begin
		(match_with_lvasgn (regexp (str "(?<year>\\d+)") (regopt)) (send nil :s))
		(send nil :foo (hash (pair (sym :year) (lvar :year)) (pair (sym :"a b") (int 1)))))`)
	jobs = append(jobs, job{"named captures", root, nil, nil,
		"/(?<year>\\d+)/ =~ s\nfoo(year: year, :\"a b\" => 1)"})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, j := range jobs {
				got, err := unparser.Unparse(j.root, j.cs, j.cfg)
				if err != nil {
					t.Errorf("%s: Unparse() error = %v", j.name, err)
					continue
				}
				if got != j.expect {
					t.Errorf("%s: Unparse() =\n%s\nwant:\n%s", j.name, got, j.expect)
				}
			}
		}()
	}
	wg.Wait()
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad yaml", "ast: [", "parsing doc.yaml"},
		{"bad variant", "variant: \"9.9\"\nast: (int 1)\n", "unknown Ruby variant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unparser.ParseDocument([]byte(tt.data), "doc.yaml")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseDocument() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	doc, err := unparser.ParseDocument([]byte("ast: (int 1)\ncomments:\n  - text: \"# x\"\n    range: \"1:0\"\n"), "doc.yaml")
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if _, _, err := doc.Tree(); err == nil || !strings.Contains(err.Error(), "comment 0") {
		t.Errorf("Tree() error = %v, want comment range error", err)
	}
}

func TestDocumentMarshal(t *testing.T) {
	doc := &unparser.Document{
		Variant: unparser.Ruby20,
		AST:     "(int @1:0-1:1 1)",
		Comments: []unparser.DocumentComment{
			{Text: "# one", Range: "1:2-1:7"},
		},
		Expect: "1 # one",
	}
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	back, err := unparser.ParseDocument(data, "doc.yaml")
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	got, err := back.Unparse()
	if err != nil {
		t.Fatalf("Unparse() error = %v", err)
	}
	if got != "1 # one" {
		t.Errorf("Unparse() = %q, want %q", got, "1 # one")
	}
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := unparser.LoadDocument(filepath.Join("testdata", "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading") {
		t.Errorf("LoadDocument() error = %v", err)
	}
}
