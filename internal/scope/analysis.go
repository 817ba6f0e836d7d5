package scope

import (
	"sort"
	"strings"

	"github.com/coregx/coregex"

	"github.com/kolkov/unparser/internal/ast"
)

// namedGroup matches the opening of a Ruby named capture group, `(?<name>`.
var namedGroup = mustCompile(`\(\?<[A-Za-z_][A-Za-z0-9_]*>`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("scope: compiling " + pattern + ": " + err.Error())
	}
	return re
}

// NamedCaptures returns the group names of a regexp source in order of
// appearance. Escaped parentheses are skipped.
func NamedCaptures(pattern string) []string {
	var names []string
	for _, loc := range namedGroup.FindAllStringIndex(pattern, -1) {
		if escaped(pattern, loc[0]) {
			continue
		}
		names = append(names, pattern[loc[0]+len("(?<"):loc[1]-1])
	}
	return names
}

// escaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// RegexpSource joins the literal parts of a regexp node. Interpolated
// parts contribute nothing.
func RegexpSource(re *ast.Node) string {
	var sb strings.Builder
	for _, part := range re.Nodes(0) {
		if part.Kind == ast.Str {
			sb.WriteString(part.StringAt(0))
		}
	}
	return sb.String()
}

// isGate reports whether k opens a fresh local variable scope.
func isGate(k ast.Kind) bool {
	switch k {
	case ast.Def, ast.Defs, ast.Class, ast.Sclass, ast.Module:
		return true
	default:
		return false
	}
}

// TargetNames returns the local names bound by an assignment target,
// a multiple-assignment left-hand side or a parameter list.
func TargetNames(n *ast.Node) []string {
	var names []string
	var collect func(n *ast.Node)
	collect = func(n *ast.Node) {
		if n == nil {
			return
		}
		switch {
		case n.Kind == ast.Lvasgn || n.Kind.IsArgument():
			if name := n.StringAt(0); name != "" {
				names = append(names, name)
			}
		case n.Is(ast.Mlhs, ast.Args, ast.Splat):
			for _, c := range n.Nodes(0) {
				collect(c)
			}
		}
	}
	collect(n)
	return names
}

// AssignedNames returns the local names assigned anywhere in n, in
// source order and without duplicates. Method and class bodies are not
// entered; neither are block bodies, whose assignments are block-local.
func AssignedNames(n *ast.Node) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var visit func(n *ast.Node)
	visit = func(n *ast.Node) {
		if n == nil || isGate(n.Kind) {
			return
		}
		switch n.Kind {
		case ast.Lvasgn:
			add(n.StringAt(0))
		case ast.MatchWithLvasgn:
			for _, name := range NamedCaptures(RegexpSource(n.NodeAt(0))) {
				add(name)
			}
		case ast.Block:
			visit(n.NodeAt(0))
			return
		}
		for _, c := range n.Nodes(0) {
			visit(c)
		}
	}
	visit(n)
	return names
}

// FreeLocals returns the sorted names of local variable references in n
// that are not bound by a block parameter inside n.
func FreeLocals(n *ast.Node) []string {
	seen := make(map[string]bool)
	var visit func(n *ast.Node, bound map[string]bool)
	visit = func(n *ast.Node, bound map[string]bool) {
		if n == nil || isGate(n.Kind) {
			return
		}
		switch n.Kind {
		case ast.Lvar:
			if name := n.StringAt(0); !bound[name] {
				seen[name] = true
			}
			return
		case ast.Block:
			visit(n.NodeAt(0), bound)
			inner := make(map[string]bool, len(bound))
			for name := range bound {
				inner[name] = true
			}
			for _, name := range TargetNames(n.NodeAt(1)) {
				inner[name] = true
			}
			visit(n.NodeAt(2), inner)
			return
		}
		for _, c := range n.Nodes(0) {
			visit(c, bound)
		}
	}
	visit(n, map[string]bool{})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsModifier reports whether a conditional or loop must be rendered in
// modifier form (`body while cond`) for cond to keep referring to locals
// that body introduces. That is the case when cond references a name that
// is not yet local but is assigned in body.
func (t *Tracker) NeedsModifier(cond, body *ast.Node) bool {
	free := FreeLocals(cond)
	if len(free) == 0 {
		return false
	}
	assigned := make(map[string]bool)
	for _, name := range AssignedNames(body) {
		assigned[name] = true
	}
	for _, name := range free {
		if !t.IsLocal(name) && assigned[name] {
			return true
		}
	}
	return false
}
