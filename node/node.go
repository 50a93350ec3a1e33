package node

import (
	"iter"
	"slices"
)

// Kind identifies which variant a Node holds.
type Kind uint8

const (
	// ScalarNode holds a single value in Tag/Value
	ScalarNode Kind = iota + 1
	// SequenceNode holds an ordered list in Items
	SequenceNode
	// MappingNode holds ordered key/value fields
	MappingNode
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	default:
		return "unknown"
	}
}

// Scalar tags, matching the YAML core schema short tags.
const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
	TagNull   = "!!null"
)

// Node is one value in a document tree.
type Node struct {
	Kind Kind
	// Tag is the scalar type tag (TagString, TagInt, ...). Empty for collections.
	Tag string
	// Value is the scalar's textual value. Empty for collections.
	Value string
	// Items holds sequence elements in order.
	Items []*Node

	keys   []string
	fields map[string]*Node
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{Kind: MappingNode, fields: make(map[string]*Node)}
}

// NewSequence returns a sequence node holding items.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceNode, Items: items}
}

// NewScalar returns a scalar node with the given tag and value.
func NewScalar(tag, value string) *Node {
	return &Node{Kind: ScalarNode, Tag: tag, Value: value}
}

// NewString returns a string scalar.
func NewString(s string) *Node {
	return NewScalar(TagString, s)
}

// NewNull returns a null scalar.
func NewNull() *Node {
	return NewScalar(TagNull, "null")
}

// IsMapping reports whether n is a non-nil mapping.
func (n *Node) IsMapping() bool { return n != nil && n.Kind == MappingNode }

// IsSequence reports whether n is a non-nil sequence.
func (n *Node) IsSequence() bool { return n != nil && n.Kind == SequenceNode }

// IsScalar reports whether n is a non-nil scalar.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == ScalarNode }

// IsNull reports whether n is nil or a null scalar.
func (n *Node) IsNull() bool { return n == nil || (n.Kind == ScalarNode && n.Tag == TagNull) }

// Len returns the number of fields of a mapping or items of a sequence.
// Scalars and nil nodes have length zero.
func (n *Node) Len() int {
	switch {
	case n.IsMapping():
		return len(n.keys)
	case n.IsSequence():
		return len(n.Items)
	}
	return 0
}

// Keys returns a copy of a mapping's keys in document order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	return slices.Clone(n.keys)
}

// Get returns the value stored under key. It returns false when n is not a
// mapping or the key is absent.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsMapping() {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Lookup follows a chain of mapping keys and returns the value at the end,
// or nil if any step is missing.
func (n *Node) Lookup(path ...string) *Node {
	cur := n
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Has reports whether a mapping contains key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// GetString returns the value of a scalar stored under key, or "".
func (n *Node) GetString(key string) string {
	v, ok := n.Get(key)
	if !ok || !v.IsScalar() || v.Tag == TagNull {
		return ""
	}
	return v.Value
}

// GetStrings returns the scalar values of a sequence stored under key.
// Non-scalar and null items are skipped.
func (n *Node) GetStrings(key string) []string {
	v, ok := n.Get(key)
	if !ok || !v.IsSequence() {
		return nil
	}
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.IsScalar() && item.Tag != TagNull {
			out = append(out, item.Value)
		}
	}
	return out
}

// Set stores value under key. New keys are appended; existing keys keep
// their position. Set on a non-mapping is a no-op.
func (n *Node) Set(key string, value *Node) {
	if !n.IsMapping() {
		return
	}
	if n.fields == nil {
		n.fields = make(map[string]*Node)
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
}

// Delete removes key from a mapping and reports whether it was present.
func (n *Node) Delete(key string) bool {
	if !n.IsMapping() {
		return false
	}
	if _, ok := n.fields[key]; !ok {
		return false
	}
	delete(n.fields, key)
	if i := slices.Index(n.keys, key); i >= 0 {
		n.keys = slices.Delete(n.keys, i, i+1)
	}
	return true
}

// Fields iterates over a mapping's fields in document order. The key set is
// snapshotted first, so fields may be deleted during iteration; deleted
// fields not yet visited are skipped.
func (n *Node) Fields() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if !n.IsMapping() {
			return
		}
		for _, key := range slices.Clone(n.keys) {
			v, ok := n.fields[key]
			if !ok {
				continue
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy of n. Cloning nil returns nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind, Tag: n.Tag, Value: n.Value}
	switch n.Kind {
	case SequenceNode:
		if n.Items != nil {
			out.Items = make([]*Node, len(n.Items))
			for i, item := range n.Items {
				out.Items[i] = item.Clone()
			}
		}
	case MappingNode:
		out.keys = slices.Clone(n.keys)
		out.fields = make(map[string]*Node, len(n.fields))
		for k, v := range n.fields {
			out.fields[k] = v.Clone()
		}
	}
	return out
}
