package resolver

import (
	"gopkg.in/yaml.v3"
)

// NodeHelper provides utilities for working with yaml.Node while preserving order
type NodeHelper struct{}

// Deref follows alias nodes to the node they point at
func (h *NodeHelper) Deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// GetMapValue gets a value from a mapping node by key
func (h *NodeHelper) GetMapValue(node *yaml.Node, key string) *yaml.Node {
	node = h.Deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if h.Deref(node.Content[i]).Value == key {
			return h.Deref(node.Content[i+1])
		}
	}
	return nil
}

// IterateMap iterates over a mapping node, calling fn for each key-value pair
func (h *NodeHelper) IterateMap(node *yaml.Node, fn func(key *yaml.Node, value *yaml.Node) error) error {
	node = h.Deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i], node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// GetRef returns the $ref of a mapping node. Only non-empty string values count.
func (h *NodeHelper) GetRef(node *yaml.Node) (string, bool) {
	refNode := h.GetMapValue(node, "$ref")
	if refNode == nil || refNode.Kind != yaml.ScalarNode || refNode.ShortTag() != "!!str" {
		return "", false
	}
	return refNode.Value, refNode.Value != ""
}

// CopyScalar returns a detached copy of a scalar node
func (h *NodeHelper) CopyScalar(node *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:   node.Kind,
		Style:  node.Style,
		Tag:    node.Tag,
		Value:  node.Value,
		Line:   node.Line,
		Column: node.Column,
	}
}

// NewContainer returns an empty node of the same kind as node
func (h *NodeHelper) NewContainer(node *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:   node.Kind,
		Style:  node.Style,
		Tag:    node.Tag,
		Line:   node.Line,
		Column: node.Column,
	}
}
