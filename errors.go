package unparser

import (
	"fmt"

	"github.com/kolkov/unparser/internal/parser"
	"github.com/kolkov/unparser/internal/printer"
)

// ParseError represents a syntax error in s-expression input.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 0-based column
	Message string // Error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// UnsupportedNodeError reports a node kind without a rendering rule.
type UnsupportedNodeError = printer.UnsupportedNodeError

// UnsupportedConstructError reports a node the target variant cannot
// express, such as a required keyword argument under Ruby 2.0.
type UnsupportedConstructError = printer.UnsupportedConstructError

// MalformedNodeError reports a node whose children do not fit its kind.
type MalformedNodeError = printer.MalformedNodeError

// Sentinels for errors.Is.
var (
	ErrUnsupportedNode      = printer.ErrUnsupportedNode
	ErrUnsupportedConstruct = printer.ErrUnsupportedConstruct
	ErrMalformedNode        = printer.ErrMalformedNode
)

// convertParseError maps a reader error to the public type.
func convertParseError(err error) error {
	if pe, ok := err.(*parser.ParseError); ok {
		return &ParseError{
			Line:    pe.Pos.Line,
			Column:  pe.Pos.Column,
			Message: pe.Message,
		}
	}
	return err
}
