// Package node provides the in-memory document tree that SlimSwagger loads,
// prunes, and writes back out.
//
// An OpenAPI document is heterogeneous: any value may be a mapping, a sequence,
// or a scalar, and the shape differs between OAS 2.0 and OAS 3.x. Rather than
// decoding into version-specific structs, the tree is a tagged variant: every
// [Node] has a [Kind] and carries only the payload for that kind.
//
// Mappings preserve the key order of the source document, so a slimmed
// document diffs cleanly against the original. Scalars keep their resolved
// YAML tag (!!str, !!int, !!float, !!bool, !!null) so that JSON output emits
// numbers, booleans and null unquoted.
//
// # Reading and Writing
//
//	root, err := node.Decode(data) // JSON or YAML
//	paths, _ := root.Get("paths")
//	out, err := root.MarshalJSONIndent("", "  ")
//
// # Traversal
//
// [Walk] visits a subtree depth-first in document order. The visitor decides
// whether to descend into each node's children:
//
//	node.Walk(root, func(n *node.Node) bool {
//		if ref, ok := n.Get("$ref"); ok {
//			fmt.Println(ref.Value)
//		}
//		return true
//	})
//
// # Ownership
//
// Nodes are mutable and not safe for concurrent use. Callers that need the
// pre-mutation state must [Node.Clone] the tree first.
package node
