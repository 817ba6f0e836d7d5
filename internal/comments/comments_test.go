package comments_test

import (
	"testing"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/comments"
	"github.com/kolkov/unparser/internal/parser"
	"github.com/kolkov/unparser/internal/token"
)

func rng(t *testing.T, s string) token.Range {
	t.Helper()
	r, err := token.ParseRange(s)
	if err != nil {
		t.Fatalf("ParseRange(%q) error = %v", s, err)
	}
	return r
}

func inline(t *testing.T, text, r string) ast.Comment {
	return ast.Comment{Kind: ast.Inline, Text: text, Range: rng(t, r)}
}

func texts(cs []ast.Comment) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStreamSortsComments(t *testing.T) {
	s := comments.NewStream([]ast.Comment{
		inline(t, "# b", "2:0-2:3"),
		inline(t, "# a", "1:0-1:3"),
	})
	if got := texts(s.TakeAll()); !equal(got, []string{"# a", "# b"}) {
		t.Errorf("TakeAll() = %v, want [# a # b]", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestTakeBefore(t *testing.T) {
	s := comments.NewStream([]ast.Comment{
		inline(t, "# one", "1:0-1:5"),
		inline(t, "# two", "2:0-2:5"),
		inline(t, "# three", "4:0-4:7"),
	})

	got := s.TakeBefore(token.Position{Line: 3, Column: 0})
	if !equal(texts(got), []string{"# one", "# two"}) {
		t.Errorf("TakeBefore(3:0) = %v", texts(got))
	}
	if got := s.TakeBefore(token.Position{Line: 3, Column: 4}); len(got) != 0 {
		t.Errorf("second TakeBefore(3:4) = %v, want none", texts(got))
	}
	if got := s.TakeBefore(token.NoPos); got != nil {
		t.Errorf("TakeBefore(NoPos) = %v, want nil", texts(got))
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestTakeEOL(t *testing.T) {
	s := comments.NewStream([]ast.Comment{
		inline(t, "# first", "1:6-1:13"),
		inline(t, "# second", "1:14-1:22"),
		inline(t, "# next line", "2:0-2:11"),
	})

	if got := s.TakeEOL(); got != nil {
		t.Errorf("TakeEOL() before Consume = %v, want nil", texts(got))
	}

	node := parser.MustParse("(int @1:0-1:5 1)")
	s.Consume(node)
	got := s.TakeEOL()
	if !equal(texts(got), []string{"# first", "# second"}) {
		t.Errorf("TakeEOL() = %v, want [# first # second]", texts(got))
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestTakeEOLKeepsDocuments(t *testing.T) {
	doc := ast.Comment{Kind: ast.Document, Text: "=begin\ndoc\n=end", Range: rng(t, "2:0-4:4")}
	s := comments.NewStream([]ast.Comment{
		doc,
		inline(t, "# trailing", "2:0-2:10"),
	})
	s.ConsumeRange(rng(t, "1:0-2:0"))

	if got := s.TakeEOL(); !equal(texts(got), []string{"# trailing"}) {
		t.Errorf("TakeEOL() = %v, want [# trailing]", texts(got))
	}
	rest := s.TakeAll()
	if len(rest) != 1 || !rest[0].IsDocument() {
		t.Errorf("remaining = %v, want the document", texts(rest))
	}
}

func TestAssociate(t *testing.T) {
	root := parser.MustParse(`
(begin @1:0-5:3
  (lvasgn @1:0-1:7 :a (int @1:4-1:7 1))
  (def @3:0-5:3 @end:5:0-5:3 :foo (args)
    (send @4:2-4:5 nil :bar)))`)

	cs := []ast.Comment{
		inline(t, "# trailing", "1:8-1:18"),
		inline(t, "# leads def", "2:0-2:11"),
		inline(t, "# inside def", "3:10-3:22"),
	}

	got := comments.Associate(root, cs)
	if len(got) != 3 {
		t.Fatalf("Associate() returned %d associations, want 3", len(got))
	}

	tests := []struct {
		text     string
		kind     ast.Kind
		trailing bool
	}{
		{"# trailing", ast.Lvasgn, true},
		{"# leads def", ast.Def, false},
		{"# inside def", ast.Send, false},
	}
	for i, tt := range tests {
		a := got[i]
		if a.Comment.Text != tt.text {
			t.Errorf("association[%d] comment = %q, want %q", i, a.Comment.Text, tt.text)
		}
		if a.Node.Kind != tt.kind {
			t.Errorf("%s attached to %v, want %v", tt.text, a.Node.Kind, tt.kind)
		}
		if a.Trailing != tt.trailing {
			t.Errorf("%s trailing = %v, want %v", tt.text, a.Trailing, tt.trailing)
		}
	}
}

func TestAssociateDropsUnplaced(t *testing.T) {
	root := ast.IntNode(1) // no location
	got := comments.Associate(root, []ast.Comment{inline(t, "# lost", "1:0-1:6")})
	if len(got) != 0 {
		t.Errorf("Associate() = %v, want none", got)
	}
}
