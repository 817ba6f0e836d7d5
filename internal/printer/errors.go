package printer

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is.
var (
	ErrUnsupportedNode      = errors.New("unsupported node kind")
	ErrUnsupportedConstruct = errors.New("unsupported construct for target variant")
	ErrMalformedNode        = errors.New("malformed node")
)

// UnsupportedNodeError reports a node kind the printer has no rule for.
type UnsupportedNodeError struct {
	Kind string // Node type name
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node kind: %s", e.Kind)
}

// Is makes errors.Is(err, ErrUnsupportedNode) succeed.
func (e *UnsupportedNodeError) Is(target error) bool {
	return target == ErrUnsupportedNode
}

// UnsupportedConstructError reports a node that cannot be written in the
// selected Ruby variant, such as keyword arguments under 1.9.
type UnsupportedConstructError struct {
	Kind    string // Node type name
	Variant string // Target variant
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("%s is not supported by Ruby %s", e.Kind, e.Variant)
}

// Is makes errors.Is(err, ErrUnsupportedConstruct) succeed.
func (e *UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

// MalformedNodeError reports a node whose children do not fit its kind.
type MalformedNodeError struct {
	Kind    string // Node type name
	Message string // What is wrong
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed %s node: %s", e.Kind, e.Message)
}

// Is makes errors.Is(err, ErrMalformedNode) succeed.
func (e *MalformedNodeError) Is(target error) bool {
	return target == ErrMalformedNode
}
