package analyze

import (
	"strings"

	"gopkg.in/yaml.v3"

	"hrbridge/internal/common"
)

var tagKeys = []string{"x-semantic-tags", "semanticTags", "tags"}

type walker struct {
	fields []Field
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}

			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}

	return nil
}

// child returns the value of key in a mapping node.
func child(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}

	return nil
}

func isJSONSchema(n *yaml.Node) bool {
	if child(n, "$schema") != nil {
		return true
	}

	props := child(n, "properties")

	return props != nil && props.Kind == yaml.MappingNode
}

func (w *walker) schema(prefix string, n *yaml.Node) {
	props := child(n, "properties")
	if props != nil && props.Kind == yaml.MappingNode && len(props.Content) > 0 {
		for i := 0; i+1 < len(props.Content); i += 2 {
			w.schema(common.JoinPath(prefix, props.Content[i].Value), resolve(props.Content[i+1]))
		}

		return
	}

	if prefix == "" {
		return
	}

	f := Field{
		Path: prefix,
		Name: common.LeafName(prefix),
		Kind: schemaKind(n),
		Tags: stringList(n),
	}

	if sample := schemaSample(n); sample != nil {
		var v any
		if err := sample.Decode(&v); err == nil {
			f.Sample, f.HasSample = v, true
		}
	}

	w.fields = append(w.fields, f)
}

func (w *walker) payload(prefix string, n *yaml.Node) {
	if n.Kind == yaml.MappingNode && len(n.Content) > 0 {
		for i := 0; i+1 < len(n.Content); i += 2 {
			w.payload(common.JoinPath(prefix, n.Content[i].Value), resolve(n.Content[i+1]))
		}

		return
	}

	if prefix == "" {
		return
	}

	f := Field{
		Path: prefix,
		Name: common.LeafName(prefix),
		Kind: valueKind(n),
	}

	var v any
	if err := n.Decode(&v); err == nil {
		f.Sample, f.HasSample = v, true
	}

	w.fields = append(w.fields, f)
}

// schemaKind reads "type", which may be a name or a list of names; the first
// non-null entry wins.
func schemaKind(n *yaml.Node) FieldKind {
	t := child(n, "type")
	if t == nil {
		if child(n, "properties") != nil {
			return FieldKindObject
		}

		return FieldKindUnknown
	}

	if t.Kind == yaml.SequenceNode {
		kind := FieldKindUnknown
		for _, item := range t.Content {
			k := ParseFieldKind(item.Value)
			if k != FieldKindNull {
				return k
			}

			kind = k
		}

		return kind
	}

	return ParseFieldKind(t.Value)
}

func schemaSample(n *yaml.Node) *yaml.Node {
	if ex := child(n, "example"); ex != nil {
		return ex
	}

	if exs := child(n, "examples"); exs != nil && exs.Kind == yaml.SequenceNode && len(exs.Content) > 0 {
		return resolve(exs.Content[0])
	}

	return child(n, "default")
}

func stringList(n *yaml.Node) []string {
	for _, key := range tagKeys {
		list := child(n, key)
		if list == nil || list.Kind != yaml.SequenceNode {
			continue
		}

		tags := make([]string, 0, len(list.Content))
		for _, item := range list.Content {
			if v := strings.TrimSpace(item.Value); v != "" {
				tags = append(tags, v)
			}
		}

		return tags
	}

	return nil
}

func valueKind(n *yaml.Node) FieldKind {
	switch n.Kind {
	case yaml.SequenceNode:
		return FieldKindArray
	case yaml.MappingNode:
		return FieldKindObject
	}

	switch n.ShortTag() {
	case "!!str", "!!timestamp":
		return FieldKindString
	case "!!int":
		return FieldKindInteger
	case "!!float":
		return FieldKindNumber
	case "!!bool":
		return FieldKindBoolean
	case "!!null":
		return FieldKindNull
	default:
		return FieldKindUnknown
	}
}
