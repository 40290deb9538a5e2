package foldtree

// Visitor receives nodes during a Walk.
// Visit returns false to skip the node's children.
type Visitor interface {
	Visit(n *Node) bool
}

// VisitorFunc adapts an ordinary function to the Visitor interface.
type VisitorFunc func(n *Node) bool

// Visit calls f(n).
func (f VisitorFunc) Visit(n *Node) bool {
	return f(n)
}

// Walk visits every node of the forest in pre-order: roots in source order,
// each node before its children, children in source order.
// It uses an explicit stack, so deeply nested input cannot exhaust the call stack.
func (t *Tree) Walk(visitor Visitor) {
	if t == nil || visitor == nil {
		return
	}
	walkNodes(t.roots, visitor)
}

// WalkNode visits root and its descendants in pre-order.
func WalkNode(root *Node, visitor Visitor) {
	if root == nil || visitor == nil {
		return
	}
	walkNodes([]*Node{root}, visitor)
}

func walkNodes(start []*Node, visitor Visitor) {
	stack := make([]*Node, 0, len(start))

	// Push in reverse so the first node pops first.
	for i := len(start) - 1; i >= 0; i-- {
		stack = append(stack, start[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visitor.Visit(node) {
			continue
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}
