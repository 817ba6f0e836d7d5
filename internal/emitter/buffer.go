// Package emitter accumulates rendered source text.
//
// A Buffer tracks the indentation depth and whether the current line is
// still empty. Indentation is written lazily on the first fragment of a
// line, so blank lines never carry trailing whitespace. Trailing comments
// are parked in a pending slot and flushed when the line ends.
package emitter

import (
	"strings"
)

// IndentWidth is the number of spaces per indentation level.
const IndentWidth = 2

// Buffer is an append-only text accumulator. The zero value is ready to use.
type Buffer struct {
	sb      strings.Builder
	depth   int
	dirty   bool     // something was written on the current line
	pending []string // trailing comments for the current line
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Write appends fragments to the current line.
func (b *Buffer) Write(fragments ...string) {
	for _, f := range fragments {
		if f == "" {
			continue
		}
		if !b.dirty {
			b.writeIndent()
			b.dirty = true
		}
		b.sb.WriteString(f)
	}
}

func (b *Buffer) writeIndent() {
	for i := 0; i < b.depth*IndentWidth; i++ {
		b.sb.WriteByte(' ')
	}
}

// Newline flushes pending trailing comments and starts a new line.
func (b *Buffer) Newline() {
	b.flushPending()
	b.sb.WriteByte('\n')
	b.dirty = false
}

// FreshLine starts a new line unless the current one is still empty.
func (b *Buffer) FreshLine() {
	if b.dirty || len(b.pending) > 0 {
		b.Newline()
	}
}

// AtLineStart reports whether nothing was written on the current line.
func (b *Buffer) AtLineStart() bool {
	return !b.dirty
}

// Indent increases the indentation depth by one level.
func (b *Buffer) Indent() {
	b.depth++
}

// Dedent decreases the indentation depth by one level.
// It panics when the depth would become negative.
func (b *Buffer) Dedent() {
	if b.depth == 0 {
		panic("emitter: unbalanced Dedent")
	}
	b.depth--
}

// Depth returns the current indentation depth.
func (b *Buffer) Depth() int {
	return b.depth
}

// Indented runs fn one level deeper. The depth is restored even if fn
// panics.
func (b *Buffer) Indented(fn func()) {
	b.Indent()
	defer b.Dedent()
	fn()
}

// Trailing parks a comment to be appended, separated by a space, at the
// end of the current line.
func (b *Buffer) Trailing(text string) {
	b.pending = append(b.pending, text)
}

// HasPending reports whether trailing comments wait for the line to end.
func (b *Buffer) HasPending() bool {
	return len(b.pending) > 0
}

func (b *Buffer) flushPending() {
	for _, c := range b.pending {
		if b.dirty {
			b.sb.WriteByte(' ')
		} else {
			b.writeIndent()
			b.dirty = true
		}
		b.sb.WriteString(c)
	}
	b.pending = b.pending[:0]
}

// WriteDocument writes a block comment verbatim on its own lines,
// without indentation. The buffer is left at the end of the `=end` line.
func (b *Buffer) WriteDocument(text string) {
	b.FreshLine()
	b.sb.WriteString(strings.TrimRight(text, "\n"))
	b.dirty = true
}

// Len returns the number of bytes written so far, pending comments
// excluded.
func (b *Buffer) Len() int {
	return b.sb.Len()
}

// String returns the accumulated text with pending trailing comments
// appended. It does not modify the buffer.
func (b *Buffer) String() string {
	if len(b.pending) == 0 {
		return b.sb.String()
	}
	var tail strings.Builder
	dirty := b.dirty
	for _, c := range b.pending {
		if dirty {
			tail.WriteByte(' ')
		} else {
			tail.WriteString(strings.Repeat(" ", b.depth*IndentWidth))
			dirty = true
		}
		tail.WriteString(c)
	}
	return b.sb.String() + tail.String()
}
