// Package comments re-attaches source comments while a tree is rendered.
//
// The printer walks the tree in source order. Before a node is written it
// asks the Stream for the comments that end before the node starts; after
// a node is written it asks for the comments sitting on the node's last
// line. Whatever is left is flushed at the end of the output.
package comments

import (
	"sort"

	"github.com/kolkov/unparser/internal/ast"
	"github.com/kolkov/unparser/internal/token"
)

// Stream is the queue of comments not yet emitted, sorted by position.
type Stream struct {
	rest []ast.Comment
	last token.Range // range of the last rendered node
}

// NewStream creates a stream over a copy of comments sorted by start
// position. Comments with equal starts keep their original order.
func NewStream(comments []ast.Comment) *Stream {
	rest := make([]ast.Comment, len(comments))
	copy(rest, comments)
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Range.Begin.Before(rest[j].Range.Begin)
	})
	return &Stream{rest: rest}
}

// Len returns the number of comments not yet taken.
func (s *Stream) Len() int {
	return len(s.rest)
}

// Consume records n as the most recently rendered node. Nodes without a
// location are ignored.
func (s *Stream) Consume(n *ast.Node) {
	s.ConsumeRange(n.Range())
}

// ConsumeRange records r as the most recently rendered source range.
func (s *Stream) ConsumeRange(r token.Range) {
	if r.IsValid() {
		s.last = r
	}
}

// TakeBefore removes and returns the comments that end at or before pos.
func (s *Stream) TakeBefore(pos token.Position) []ast.Comment {
	if !pos.IsValid() {
		return nil
	}
	n := sort.Search(len(s.rest), func(i int) bool {
		return s.rest[i].Range.End.After(pos)
	})
	return s.take(n)
}

// TakeEOL removes and returns the comments that start on or before the
// last line of the most recently consumed range. Document comments among
// them stay queued: they belong in front of the next node.
func (s *Stream) TakeEOL() []ast.Comment {
	if !s.last.IsValid() {
		return nil
	}
	line := s.last.End.Line
	n := sort.Search(len(s.rest), func(i int) bool {
		return s.rest[i].Range.Begin.Line > line
	})
	taken := s.take(n)

	var docs, eol []ast.Comment
	for _, c := range taken {
		if c.IsDocument() {
			docs = append(docs, c)
		} else {
			eol = append(eol, c)
		}
	}
	if len(docs) > 0 {
		s.rest = append(docs, s.rest...)
	}
	return eol
}

// TakeAll removes and returns every remaining comment.
func (s *Stream) TakeAll() []ast.Comment {
	return s.take(len(s.rest))
}

func (s *Stream) take(n int) []ast.Comment {
	if n == 0 {
		return nil
	}
	taken := s.rest[:n:n]
	s.rest = s.rest[n:]
	return taken
}
