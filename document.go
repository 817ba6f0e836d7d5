package unparser

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/unparser/internal/ast"
)

// Document is a tree with its comments, target variant and, optionally,
// the expected rendering. It is stored as YAML:
//
//	variant: "2.1"
//	ast: |
//	  (lvasgn @1:0-1:13 :foo (send @1:6-1:13 nil :foo))
//	comments:
//	  - text: "# note"
//	    range: "1:14-1:20"
//	expect: "foo = foo() # note"
type Document struct {
	// Path is the file the document was read from, for messages.
	Path string `yaml:"-"`

	Variant  Variant           `yaml:"variant,omitempty"`
	AST      string            `yaml:"ast"`
	Comments []DocumentComment `yaml:"comments,omitempty"`

	// Expect is the expected output. One trailing newline, as left by a
	// YAML block scalar, is dropped.
	Expect string `yaml:"expect,omitempty"`
}

// DocumentComment is the YAML form of a Comment.
type DocumentComment struct {
	Text  string `yaml:"text"`
	Range string `yaml:"range"`
	Kind  string `yaml:"kind,omitempty"` // "inline" (default) or "document"
}

// LoadDocument reads a document from a YAML file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseDocument(data, path)
}

// ParseDocument decodes a YAML document. path is only used in error
// messages.
func ParseDocument(data []byte, path string) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.Path = path
	doc.Expect = strings.TrimSuffix(doc.Expect, "\n")
	if doc.Variant != "" {
		if _, err := ParseVariant(string(doc.Variant)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &doc, nil
}

// Tree reads the document's tree and comments.
func (d *Document) Tree() (*Node, []Comment, error) {
	root, err := Parse(d.AST)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", d.Path, err)
	}
	cs := make([]Comment, 0, len(d.Comments))
	for i, c := range d.Comments {
		kind, ok := ast.LookupCommentKind(c.Kind)
		if !ok {
			return nil, nil, fmt.Errorf("%s: comment %d: unknown kind %q", d.Path, i, c.Kind)
		}
		r, err := ParseRange(c.Range)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: comment %d: %w", d.Path, i, err)
		}
		cs = append(cs, Comment{Kind: kind, Text: c.Text, Range: r})
	}
	return root, cs, nil
}

// Config returns the rendering configuration the document asks for.
func (d *Document) Config() *Config {
	return &Config{Variant: d.Variant}
}

// Unparse renders the document.
func (d *Document) Unparse() (string, error) {
	root, cs, err := d.Tree()
	if err != nil {
		return "", err
	}
	return Unparse(root, cs, d.Config())
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
