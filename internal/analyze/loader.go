package analyze

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a JSON or YAML document and flattens it.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse flattens a JSON or YAML document, keeping its key order.
func Parse(data []byte) (*Schema, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return fromNode(&doc)
}

// FromValue flattens an in-memory document such as a decoded JSON body.
func FromValue(v any) (*Schema, error) {
	var doc yaml.Node

	if err := doc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	return fromNode(&doc)
}

func fromNode(doc *yaml.Node) (*Schema, error) {
	root := resolve(doc)
	if root == nil || root.Kind == 0 {
		return NewSchema(nil), nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, errors.New("document root must be an object")
	}

	var w walker
	if isJSONSchema(root) {
		w.schema("", root)
	} else {
		w.payload("", root)
	}

	return NewSchema(w.fields), nil
}
