package ast

// Walk traverses a tree in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: collect all local variable references
//
//	var names []string
//	ast.Walk(root, func(n *ast.Node) bool {
//	    if n.Kind == ast.Lvar {
//	        names = append(names, n.StringAt(0))
//	    }
//	    return true
//	})
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			Walk(cn, fn)
		}
	}
}

// WalkPost traverses a tree calling fn after the children of each node
// have been visited.
func WalkPost(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			WalkPost(cn, fn)
		}
	}
	fn(n)
}

// Inspect returns the nodes of a tree in pre-order.
func Inspect(n *Node) []*Node {
	var nodes []*Node
	Walk(n, func(x *Node) bool {
		nodes = append(nodes, x)
		return true
	})
	return nodes
}
