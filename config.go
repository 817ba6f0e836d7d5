package unparser

import (
	"errors"
	"fmt"

	"github.com/kolkov/unparser/internal/printer"
)

// Variant names the Ruby version the output must parse under.
type Variant string

// Supported variants.
const (
	Ruby19 Variant = "1.9"
	Ruby20 Variant = "2.0"
	Ruby21 Variant = "2.1"
)

// DefaultVariant is used when Config.Variant is empty.
const DefaultVariant = Ruby21

// ErrUnknownVariant is returned for a variant outside 1.9, 2.0 and 2.1.
var ErrUnknownVariant = errors.New("unknown Ruby variant")

// Variants lists the supported variants, oldest first.
func Variants() []Variant {
	return []Variant{Ruby19, Ruby20, Ruby21}
}

// ParseVariant validates a variant name such as "2.0".
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Capabilities lists the syntax a variant accepts beyond Ruby 1.9.
type Capabilities struct {
	KeywordArgs         bool // def foo(a: 1), since 2.0
	RequiredKeywordArgs bool // def foo(a:), since 2.1
	KeywordSplat        bool // **opts, since 2.0
	RationalLiterals    bool // 3r, since 2.1
	ImaginaryLiterals   bool // 2i, since 2.1
}

// Capabilities returns the syntax v accepts. Unknown variants accept
// nothing beyond 1.9.
func (v Variant) Capabilities() Capabilities {
	switch v {
	case Ruby20:
		return Capabilities{KeywordArgs: true, KeywordSplat: true}
	case Ruby21:
		return Capabilities{
			KeywordArgs:         true,
			RequiredKeywordArgs: true,
			KeywordSplat:        true,
			RationalLiterals:    true,
			ImaginaryLiterals:   true,
		}
	default:
		return Capabilities{}
	}
}

// Config holds configuration options for rendering.
type Config struct {
	// Variant is the target Ruby version (default: "2.1").
	// Nodes the variant cannot express make Unparse fail with an
	// UnsupportedConstructError.
	Variant Variant
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Variant == "" {
		c.Variant = DefaultVariant
	}
}

// options validates c and converts it for the printer.
func (c *Config) options() (printer.Options, error) {
	v, err := ParseVariant(string(c.Variant))
	if err != nil {
		return printer.Options{}, err
	}
	return printer.Options{
		Variant:      string(v),
		Capabilities: printer.Capabilities(v.Capabilities()),
	}, nil
}
