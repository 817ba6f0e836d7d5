// Package scope tracks which bare identifiers are local variables.
//
// Ruby decides between a local variable reference and a zero-argument
// method call lexically: `foo` is a local iff an assignment or parameter
// named foo appeared earlier in the same scope or an enclosing block
// scope. The Tracker mirrors that rule while the printer walks the tree in
// source order.
package scope

import (
	"sort"
)

// FrameKind defines how a frame relates to its parent.
type FrameKind int

const (
	Root   FrameKind = iota // Top level
	Method                  // def, defs, class, sclass, module: fresh locals
	Block                   // Block or lambda body: inherits outer locals
)

// String returns a human-readable name for the frame kind.
func (k FrameKind) String() string {
	switch k {
	case Root:
		return "root"
	case Method:
		return "method"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Frame holds the local variable names of one lexical scope.
type Frame struct {
	parent *Frame
	kind   FrameKind
	names  map[string]struct{}
}

// Kind returns the frame kind.
func (f *Frame) Kind() FrameKind {
	return f.kind
}

// Parent returns the enclosing frame, or nil for the root.
func (f *Frame) Parent() *Frame {
	return f.parent
}

// Tracker is a stack of frames. Create one per rendering call.
type Tracker struct {
	current *Frame
	depth   int
}

// New creates a tracker holding a single root frame.
func New() *Tracker {
	return &Tracker{current: newFrame(nil, Root)}
}

func newFrame(parent *Frame, kind FrameKind) *Frame {
	return &Frame{
		parent: parent,
		kind:   kind,
		names:  make(map[string]struct{}),
	}
}

// Push enters a new frame.
func (t *Tracker) Push(kind FrameKind) {
	t.current = newFrame(t.current, kind)
	t.depth++
}

// Pop leaves the current frame. It panics when only the root is left.
func (t *Tracker) Pop() {
	if t.current.parent == nil {
		panic("scope: Pop on root frame")
	}
	t.current = t.current.parent
	t.depth--
}

// Scoped runs fn inside a new frame of the given kind. The frame is popped
// even if fn panics.
func (t *Tracker) Scoped(kind FrameKind, fn func()) {
	t.Push(kind)
	defer t.Pop()
	fn()
}

// Depth returns the number of frames above the root.
func (t *Tracker) Depth() int {
	return t.depth
}

// Current returns the innermost frame.
func (t *Tracker) Current() *Frame {
	return t.current
}

// Declare records name as a local of the current frame.
func (t *Tracker) Declare(name string) {
	if name == "" {
		return
	}
	t.current.names[name] = struct{}{}
}

// IsLocal reports whether name is visible as a local variable. Lookup
// walks outward through block frames and stops after the first method or
// root frame.
func (t *Tracker) IsLocal(name string) bool {
	for f := t.current; f != nil; f = f.parent {
		if _, ok := f.names[name]; ok {
			return true
		}
		if f.kind != Block {
			return false
		}
	}
	return false
}

// Locals returns the visible local names in sorted order.
func (t *Tracker) Locals() []string {
	seen := make(map[string]struct{})
	for f := t.current; f != nil; f = f.parent {
		for name := range f.names {
			seen[name] = struct{}{}
		}
		if f.kind != Block {
			break
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
