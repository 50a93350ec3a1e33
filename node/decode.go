package node

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// DefaultMaxNodes bounds the size of a decoded tree. Alias expansion copies
// the anchored subtree, so a small YAML file could otherwise expand without
// limit.
const DefaultMaxNodes = 50_000_000

// ErrEmptyDocument is returned when the input holds no YAML/JSON value.
var ErrEmptyDocument = errors.New("node: empty document")

// ErrTooLarge is returned when decoding would exceed the node budget.
var ErrTooLarge = errors.New("node: document exceeds maximum node count")

// Decode parses JSON or YAML into a tree. JSON is accepted because it is a
// subset of YAML 1.2.
func Decode(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("node: decoding: %w", err)
	}
	if doc.Kind == 0 {
		return nil, ErrEmptyDocument
	}
	return FromYAML(&doc)
}

// FromYAML converts a yaml.Node tree. Document wrappers are unwrapped,
// aliases are expanded into copies, and scalar tags are normalized to the
// five core tags; any other tag (timestamps, binary, custom) becomes a string.
func FromYAML(y *yaml.Node) (*Node, error) {
	c := &converter{budget: DefaultMaxNodes}
	return c.convert(y, 0)
}

type converter struct {
	budget int
}

// maxAliasDepth caps alias-of-alias chains.
const maxAliasDepth = 64

func (c *converter) convert(y *yaml.Node, aliasDepth int) (*Node, error) {
	if y == nil {
		return nil, ErrEmptyDocument
	}
	c.budget--
	if c.budget < 0 {
		return nil, ErrTooLarge
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return c.convert(y.Content[0], aliasDepth)

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, fmt.Errorf("node: alias nesting deeper than %d at line %d", maxAliasDepth, y.Line)
		}
		if y.Alias == nil {
			return nil, fmt.Errorf("node: unresolved alias at line %d", y.Line)
		}
		return c.convert(y.Alias, aliasDepth+1)

	case yaml.MappingNode:
		out := &Node{
			Kind:   MappingNode,
			keys:   make([]string, 0, len(y.Content)/2),
			fields: make(map[string]*Node, len(y.Content)/2),
		}
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode := y.Content[i]
			if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("node: non-scalar mapping key at line %d", keyNode.Line)
			}
			value, err := c.convert(y.Content[i+1], aliasDepth)
			if err != nil {
				return nil, err
			}
			out.Set(keyNode.Value, value)
		}
		return out, nil

	case yaml.SequenceNode:
		out := &Node{Kind: SequenceNode, Items: make([]*Node, 0, len(y.Content))}
		for _, item := range y.Content {
			child, err := c.convert(item, aliasDepth)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}
		return out, nil

	case yaml.ScalarNode:
		return NewScalar(normalizeTag(y.ShortTag()), y.Value), nil
	}

	return nil, fmt.Errorf("node: unsupported YAML node kind %d at line %d", y.Kind, y.Line)
}

func normalizeTag(tag string) string {
	switch tag {
	case TagString, TagInt, TagFloat, TagBool, TagNull:
		return tag
	default:
		return TagString
	}
}

// ToYAML converts n back into a yaml.Node tree suitable for yaml.Marshal.
func (n *Node) ToYAML() *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagNull, Value: "null"}
	}
	switch n.Kind {
	case MappingNode:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(n.keys))}
		for _, key := range n.keys {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: TagString, Value: key},
				n.fields[key].ToYAML(),
			)
		}
		return out
	case SequenceNode:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.Items))}
		for _, item := range n.Items {
			out.Content = append(out.Content, item.ToYAML())
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: n.Tag, Value: n.Value}
	}
}
