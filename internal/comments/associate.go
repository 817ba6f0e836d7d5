package comments

import (
	"sort"

	"github.com/kolkov/unparser/internal/ast"
)

// Association links a comment to the node it documents.
type Association struct {
	Comment  ast.Comment
	Node     *ast.Node
	Trailing bool // comment follows the node on its last line
}

type span struct {
	node  *ast.Node
	order int
}

// Associate maps each comment to a node of root:
//   - a `#` comment on the same line as the end of a node is trailing and
//     goes to the outermost such node;
//   - otherwise the comment leads the outermost node starting after it
//     inside the innermost node enclosing it;
//   - failing that it goes to the innermost enclosing node.
//
// Nodes without locations never receive comments; comments that find no
// node are left out of the result. The result is in source order.
func Associate(root *ast.Node, comments []ast.Comment) []Association {
	var spans []span
	ast.Walk(root, func(n *ast.Node) bool {
		if n.Range().IsValid() {
			spans = append(spans, span{node: n, order: len(spans)})
		}
		return true
	})

	sorted := NewStream(comments).TakeAll()
	out := make([]Association, 0, len(sorted))
	for _, c := range sorted {
		if !c.IsDocument() {
			if n := trailingNode(spans, c); n != nil {
				out = append(out, Association{Comment: c, Node: n, Trailing: true})
				continue
			}
		}
		if n := leadingNode(spans, c); n != nil {
			out = append(out, Association{Comment: c, Node: n})
		}
	}
	return out
}

func trailingNode(spans []span, c ast.Comment) *ast.Node {
	var best *ast.Node
	for _, s := range spans {
		r := s.node.Range()
		if r.End.Line != c.Range.Begin.Line || r.End.After(c.Range.Begin) {
			continue
		}
		// Pre-order: the first hit with the smallest start is outermost.
		if best == nil || r.Begin.Before(best.Range().Begin) {
			best = s.node
		}
	}
	return best
}

func leadingNode(spans []span, c ast.Comment) *ast.Node {
	enclosing := innermostEnclosing(spans, c)

	var candidates []span
	for _, s := range spans {
		r := s.node.Range()
		if r.Begin.Before(c.Range.End) {
			continue
		}
		if enclosing != nil && !enclosing.Range().Encloses(r) {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			bi, bj := candidates[i].node.Range().Begin, candidates[j].node.Range().Begin
			if bi != bj {
				return bi.Before(bj)
			}
			return candidates[i].order < candidates[j].order
		})
		return candidates[0].node
	}
	return enclosing
}

func innermostEnclosing(spans []span, c ast.Comment) *ast.Node {
	var best *ast.Node
	for _, s := range spans {
		if s.node.Range().Encloses(c.Range) {
			best = s.node // pre-order: later hits are nested deeper
		}
	}
	return best
}
