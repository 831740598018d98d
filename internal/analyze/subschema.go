package analyze

import (
	"hrbridge/internal/common"
)

// SubSchema renders the given leaf paths as a nested JSON Schema document.
// Paths missing from s are included with an unknown type so the slice sent
// to a model always names every requested field.
func (s *Schema) SubSchema(paths []string) map[string]any {
	root := objectSchema()

	for _, path := range paths {
		segments := common.SplitPath(path)
		if len(segments) == 0 {
			continue
		}

		node := root
		for _, seg := range segments[:len(segments)-1] {
			props := node["properties"].(map[string]any)

			next, ok := props[seg].(map[string]any)
			if !ok || next["properties"] == nil {
				next = objectSchema()
				props[seg] = next
			}

			node = next
		}

		leaf := map[string]any{}
		if f, ok := s.Field(path); ok {
			if f.Kind != FieldKindUnknown {
				leaf["type"] = f.Kind.String()
			}

			if len(f.Tags) > 0 {
				leaf["x-semantic-tags"] = f.Tags
			}

			if f.HasSample {
				leaf["example"] = f.Sample
			}
		}

		node["properties"].(map[string]any)[segments[len(segments)-1]] = leaf
	}

	return root
}

// Range returns the leaf paths in [from, to), clamped to the schema.
func (s *Schema) Range(from, to int) []string {
	n := s.Len()
	from = max(0, min(from, n))
	to = max(from, min(to, n))

	return s.Paths()[from:to]
}

func objectSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
