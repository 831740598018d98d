package analyze

import (
	"hrbridge/internal/common"
	"hrbridge/internal/mapping"
)

// FieldKind is the JSON type of a leaf.
type FieldKind int

const (
	FieldKindUnknown FieldKind = iota
	FieldKindString
	FieldKindNumber
	FieldKindInteger
	FieldKindBoolean
	FieldKindArray
	FieldKindObject // empty object, or an object schema without properties
	FieldKindNull
)

// String returns the JSON Schema type name of the kind.
func (k FieldKind) String() string {
	switch k {
	case FieldKindString:
		return "string"
	case FieldKindNumber:
		return "number"
	case FieldKindInteger:
		return "integer"
	case FieldKindBoolean:
		return "boolean"
	case FieldKindArray:
		return "array"
	case FieldKindObject:
		return "object"
	case FieldKindNull:
		return "null"
	default:
		return common.UnknownStr
	}
}

// ParseFieldKind maps a JSON Schema type name to a FieldKind.
func ParseFieldKind(s string) FieldKind {
	for k := FieldKindString; k <= FieldKindNull; k++ {
		if k.String() == s {
			return k
		}
	}

	return FieldKindUnknown
}

// Field is one leaf of a flattened document.
type Field struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Kind      FieldKind `json:"-"`
	Tags      []string  `json:"tags,omitempty"`
	Sample    any       `json:"sample,omitempty"`
	HasSample bool      `json:"-"`
}

// Ref returns the mapping reference for the field. The path doubles as id.
func (f Field) Ref() mapping.FieldRef {
	return mapping.FieldRef{
		ID:   f.Path,
		Name: f.Name,
		Type: f.Kind.String(),
		Path: f.Path,
	}
}

// Schema is an ordered set of leaf fields.
type Schema struct {
	Fields []Field
	byPath map[string]int
}

// NewSchema indexes fields. Later duplicates of a path are dropped.
func NewSchema(fields []Field) *Schema {
	fields = common.UniqueBy(fields, func(f Field) string { return f.Path })

	s := &Schema{Fields: fields, byPath: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.byPath[f.Path] = i
	}

	return s
}

// Len returns the number of leaf fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Fields)
}

// Field looks up a leaf by path.
func (s *Schema) Field(path string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}

	i, ok := s.byPath[path]
	if !ok {
		return Field{}, false
	}

	return s.Fields[i], true
}

// Paths returns every leaf path in order.
func (s *Schema) Paths() []string {
	if s == nil {
		return nil
	}

	paths := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		paths[i] = f.Path
	}

	return paths
}

// WithSamples returns a copy whose fields carry sample values looked up in
// payload. Fields absent from payload keep their existing sample.
func (s *Schema) WithSamples(payload any) *Schema {
	fields := make([]Field, 0, s.Len())
	for _, f := range s.Fields {
		if v, ok := mapping.Lookup(payload, f.Path); ok {
			f.Sample, f.HasSample = v, true
		}

		fields = append(fields, f)
	}

	return NewSchema(fields)
}

// Tagged returns a copy whose fields also carry the tags configured for
// their path.
func (s *Schema) Tagged(tags map[string][]string) *Schema {
	if len(tags) == 0 {
		return s
	}

	fields := make([]Field, 0, s.Len())
	for _, f := range s.Fields {
		if extra := tags[f.Path]; len(extra) > 0 {
			f.Tags = append(append([]string{}, f.Tags...), extra...)
		}

		fields = append(fields, f)
	}

	return NewSchema(fields)
}
