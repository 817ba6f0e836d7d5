package unparser

import (
	"fmt"
	"io"

	"github.com/kolkov/unparser/internal/parser"
	"github.com/kolkov/unparser/internal/printer"
)

// Version is the unparser version string.
const Version = "0.1.0"

// Unparse renders root and its comments as Ruby source.
// The result has no trailing newline. A nil root renders only the
// comments.
//
// Parameters:
//   - root: syntax tree, as read by Parse
//   - comments: source comments, in any order (can be nil)
//   - cfg: rendering configuration (can be nil for defaults)
//
// Rendering is all or nothing: on error the returned string is empty.
//
// Example:
//
//	root := unparser.MustParse(`(lvasgn :foo (send nil :foo))`)
//	src, err := unparser.Unparse(root, nil, nil)
//	// src: "foo = foo()"
func Unparse(root *Node, comments []Comment, cfg *Config) (string, error) {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	c.applyDefaults()

	opts, err := c.options()
	if err != nil {
		return "", err
	}
	return printer.Print(root, comments, opts)
}

// MustUnparse is like Unparse but panics if rendering fails.
// It simplifies initialization of tables of generated source.
func MustUnparse(root *Node, comments []Comment, cfg *Config) string {
	src, err := Unparse(root, comments, cfg)
	if err != nil {
		panic(err)
	}
	return src
}

// UnparseString reads an s-expression and renders it without comments.
//
// Example:
//
//	src, err := unparser.UnparseString(`(if (lvar :a) (int 1) nil)`, nil)
//	// src: "if a\n  1\nend"
func UnparseString(sexp string, cfg *Config) (string, error) {
	root, err := Parse(sexp)
	if err != nil {
		return "", err
	}
	return Unparse(root, nil, cfg)
}

// Parse reads a syntax tree from its s-expression notation. Empty input
// yields a nil tree.
func Parse(sexp string) (*Node, error) {
	root, err := parser.Parse(sexp)
	if err != nil {
		return nil, convertParseError(err)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(sexp string) *Node {
	root, err := Parse(sexp)
	if err != nil {
		panic(err)
	}
	return root
}

// Exec renders an s-expression and writes the source, terminated by a
// newline, to output. Nothing is written on error.
//
// Example:
//
//	err := unparser.Exec(`(send nil :puts (str "hi"))`, os.Stdout, nil)
func Exec(sexp string, output io.Writer, cfg *Config) error {
	src, err := UnparseString(sexp, cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, src)
	return err
}
