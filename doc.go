// Package unparser renders Ruby syntax trees back to Ruby source.
//
// The input is the tree the Ruby `parser` gem produces, read from its
// s-expression notation, plus the source comments with their positions.
// The output is source that parses back to the same tree. Formatting is
// normalized: two-space indentation, `do ... end` blocks, parenthesized
// arguments and only the parentheses precedence requires.
//
// # Quick Start
//
// For s-expression input:
//
//	src, err := unparser.UnparseString(`(send (lvar :a) :+ (int 1))`, nil)
//	// src: "a + 1"
//
// With a target variant:
//
//	src, err := unparser.UnparseString(sexp, &unparser.Config{
//	    Variant: unparser.Ruby19,
//	})
//
// # Trees and Comments
//
// Trees read with [Parse] carry the source ranges written in the
// s-expression (`@line:col-line:col`). Comments are placed relative to
// those ranges: a comment before a node is written on the line before it,
// a comment on a node's last line trails the rendered line, and comments
// the tree does not account for are appended at the end.
//
//	root, err := unparser.Parse(`(send @1:0-1:3 nil :foo)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	src, err := unparser.Unparse(root, []unparser.Comment{note}, nil)
//
// # Fixture Documents
//
// A [Document] bundles a tree, its comments, a variant and the expected
// output in YAML. Documents back the golden tests of this package and the
// unparse command.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors in the s-expression
//   - [UnsupportedNodeError]: a node kind without a rendering rule
//   - [UnsupportedConstructError]: syntax the target variant lacks
//   - [MalformedNodeError]: a node whose children do not fit its kind
//
// # Thread Safety
//
// Every call to [Unparse] works on its own state. Trees and comments are
// only read, so one tree may be rendered from several goroutines.
package unparser
