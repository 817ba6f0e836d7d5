package ast

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Printer writes nodes in the s-expression notation read by the
// internal/parser package, e.g. `(send nil :foo (int 1))`.
type Printer struct {
	w         io.Writer
	indent    int
	err       error
	locations bool
	multiline bool
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithLocations makes the printer emit `@line:col-line:col` annotations.
func (p *Printer) WithLocations() *Printer {
	p.locations = true
	return p
}

// Multiline makes the printer put nested nodes on their own indented lines,
// the layout used by the Ruby parser gem.
func (p *Printer) Multiline() *Printer {
	p.multiline = true
	return p
}

// Print writes the s-expression of the node to the writer.
func (p *Printer) Print(node *Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "  ")
	}
}

func (p *Printer) printNode(n *Node) {
	if n == nil {
		p.printf("nil")
		return
	}

	p.printf("(%s", n.Kind)
	if p.locations && n.Loc != nil {
		if n.Loc.Expression.IsValid() {
			p.printf(" @%s", n.Loc.Expression)
		}
		if n.Loc.End.IsValid() {
			p.printf(" @end:%s", n.Loc.End)
		}
	}

	p.indent++
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn != nil && p.multiline {
			p.printf("\n")
			p.writeIndent()
			p.printNode(cn)
			continue
		}
		p.printf(" ")
		p.printAtom(n.Kind, c)
	}
	p.indent--
	p.printf(")")
}

func (p *Printer) printAtom(parent Kind, v any) {
	switch x := v.(type) {
	case nil:
		p.printf("nil")
	case *Node:
		p.printNode(x)
	case string:
		if parent == Str || parent == Xstr {
			p.printf("%s", strconv.Quote(x))
		} else {
			p.printf("%s", SymbolString(x))
		}
	case int64:
		p.printf("%d", x)
	case int:
		p.printf("%d", x)
	case *big.Int:
		p.printf("%s", x.String())
	case float64:
		p.printf("%s", floatString(x))
	case *big.Rat:
		if x.IsInt() {
			p.printf("%sr", x.Num())
		} else {
			p.printf("%s/%sr", x.Num(), x.Denom())
		}
	case complex128:
		p.printf("%si", strings.TrimSuffix(floatString(imag(x)), ".0"))
	default:
		p.printf("<%T>", v)
	}
}

// SymbolString returns the notation of a symbol child: `:name`, or
// `:"..."` when the name would not lex as a single atom.
func SymbolString(name string) string {
	if name == "" || strings.ContainsAny(name, " \t\r\n(),\"\\;") || !strconv.CanBackquote(name) {
		return ":" + strconv.Quote(name)
	}
	return ":" + name
}

func floatString(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// String returns the single-line s-expression of the node.
func String(node *Node) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.Print(node)
	return sb.String()
}
