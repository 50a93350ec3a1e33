package node

// Visitor is called for every node reached by Walk. Returning false skips the
// node's children; siblings are still visited.
type Visitor func(n *Node) bool

// Walk traverses the subtree rooted at n depth-first, in document order:
// mapping values by key order, sequence items by index. Scalars are leaves.
// A nil root is a no-op. The visitor must not add or remove fields of the
// mapping currently being walked.
func Walk(n *Node, visit Visitor) {
	if n == nil || !visit(n) {
		return
	}
	switch n.Kind {
	case SequenceNode:
		for _, item := range n.Items {
			Walk(item, visit)
		}
	case MappingNode:
		for _, key := range n.keys {
			Walk(n.fields[key], visit)
		}
	}
}
