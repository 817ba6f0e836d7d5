package ast

import "github.com/kolkov/unparser/internal/token"

// CommentKind distinguishes `#` comments from `=begin`/`=end` documents.
type CommentKind uint8

const (
	// Inline is a `#` comment, either trailing code or on its own line.
	Inline CommentKind = iota
	// Document is an `=begin` ... `=end` block comment.
	Document
)

// String returns a human-readable name for the comment kind.
func (k CommentKind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Document:
		return "document"
	default:
		return "unknown"
	}
}

// LookupCommentKind maps "inline" and "document" to their kinds.
func LookupCommentKind(name string) (CommentKind, bool) {
	switch name {
	case "", "inline":
		return Inline, true
	case "document":
		return Document, true
	default:
		return Inline, false
	}
}

// Comment is a source comment with its position.
// Text includes the leading `#`, or both delimiter lines of a document.
type Comment struct {
	Kind  CommentKind
	Text  string
	Range token.Range
}

// IsDocument reports whether c is an `=begin`/`=end` block comment.
func (c Comment) IsDocument() bool {
	return c.Kind == Document
}
