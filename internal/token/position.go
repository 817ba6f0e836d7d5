package token

import "fmt"

// Position represents a position in source code.
type Position struct {
	// Line number (1-indexed).
	Line int
	// Column is the byte offset on the line (0-indexed, as reported by the
	// Ruby parser).
	Column int
	// Offset is the byte offset from the start of source (0-indexed).
	// Zero when the producer only knows line and column.
	Offset int
}

// String returns a string representation of the position.
// Format: "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before returns true if p is before other in the source.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// After returns true if p is after other in the source.
func (p Position) After(other Position) bool {
	if p.Line != other.Line {
		return p.Line > other.Line
	}
	return p.Column > other.Column
}

// Compare returns -1, 0 or +1 depending on whether p is before, equal to
// or after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Before(other):
		return -1
	case p.After(other):
		return 1
	default:
		return 0
	}
}

// Range represents a half-open range in source code from Begin to End.
type Range struct {
	Begin Position
	End   Position
}

// String returns a string representation of the range.
// Format: "line:col-line:col", the format accepted by ParseRange.
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Begin, r.End)
}

// IsValid returns true if the range has a valid start.
func (r Range) IsValid() bool {
	return r.Begin.IsValid()
}

// Contains returns true if the range contains the given position.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Begin) && !p.After(r.End)
}

// Encloses returns true if other lies entirely within r.
func (r Range) Encloses(other Range) bool {
	return r.Contains(other.Begin) && r.Contains(other.End)
}

// ParseRange parses the "line:col-line:col" notation produced by String.
func ParseRange(s string) (Range, error) {
	var r Range
	_, err := fmt.Sscanf(s, "%d:%d-%d:%d", &r.Begin.Line, &r.Begin.Column, &r.End.Line, &r.End.Column)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if !r.Begin.IsValid() || r.End.Before(r.Begin) {
		return Range{}, fmt.Errorf("invalid range %q", s)
	}
	return r, nil
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}
