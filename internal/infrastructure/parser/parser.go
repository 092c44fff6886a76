package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/miorlan/yamlmodule/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrMultipleDocuments is returned for input holding more than one YAML document
var ErrMultipleDocuments = errors.New("source contains multiple documents")

// Parser provides parsing functionality that preserves key order
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

var _ domain.Parser = (*Parser)(nil)

// Parse parses YAML/JSON data into the root content node of its single document.
// Empty input yields a null scalar.
func (p *Parser) Parse(data []byte) (*yaml.Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NullNode(), nil
		}
		return nil, err
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrMultipleDocuments
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return NullNode(), nil
		}
		root = root.Content[0]
	}

	if err := checkUniqueKeys(root, make(map[*yaml.Node]bool)); err != nil {
		return nil, err
	}
	return root, nil
}

// NullNode returns a fresh null scalar
func NullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// checkUniqueKeys rejects mappings that repeat a key
func checkUniqueKeys(node *yaml.Node, seen map[*yaml.Node]bool) error {
	if node == nil || seen[node] {
		return nil
	}
	seen[node] = true

	switch node.Kind {
	case yaml.MappingNode:
		keys := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind == yaml.ScalarNode {
				if keys[key.Value] {
					return fmt.Errorf("line %d: map keys must be unique: %q", key.Line, key.Value)
				}
				keys[key.Value] = true
			}
			if err := checkUniqueKeys(node.Content[i+1], seen); err != nil {
				return err
			}
		}
	case yaml.SequenceNode, yaml.DocumentNode:
		for _, child := range node.Content {
			if err := checkUniqueKeys(child, seen); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		return checkUniqueKeys(node.Alias, seen)
	}
	return nil
}
