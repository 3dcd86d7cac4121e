package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrNotObject is returned when a document's root is not a schema object.
var ErrNotObject = errors.New("jsonschema: document root is not an object")

// ParseJSON decodes a JSON schema document. Property order is preserved.
func ParseJSON(data []byte) (*Schema, error) {
	var s *Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: invalid JSON: %w", err)
	}
	if s == nil {
		return nil, ErrNotObject
	}
	return s, nil
}

// ParseYAML decodes the first document of a YAML stream. The YAML tree is
// normalized to JSON (keeping mapping order) and then decoded by ParseJSON,
// so both formats share one set of decoding rules.
func ParseYAML(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("jsonschema: invalid YAML: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.AliasNode {
		root = root.Alias
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	buf := &bytes.Buffer{}
	if err := yamlNodeToJSON(root, buf); err != nil {
		return nil, err
	}
	return ParseJSON(buf.Bytes())
}

// yamlNodeToJSON writes n as JSON. Mapping keys must be scalars.
func yamlNodeToJSON(n *yaml.Node, buf *bytes.Buffer) error {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlNodeToJSON(n.Alias, buf)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("jsonschema: line %d: mapping key must be a scalar", k.Line)
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k.Value)
			if err != nil {
				return fmt.Errorf("jsonschema: line %d: %w", k.Line, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := yamlNodeToJSON(v, buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := yamlNodeToJSON(c, buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("jsonschema: line %d: %w", n.Line, err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("jsonschema: line %d: %w", n.Line, err)
		}
		buf.Write(b)
		return nil
	default:
		return fmt.Errorf("jsonschema: line %d: unsupported YAML node", n.Line)
	}
}
