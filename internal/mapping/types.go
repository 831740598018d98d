package mapping

import (
	"hrbridge/internal/common"
	"hrbridge/internal/transform"
)

// FieldRef addresses one leaf of the source payload.
type FieldRef struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Path string `json:"path" yaml:"path"`
}

// LeafName returns Name, or the last path segment when Name is empty.
func (f FieldRef) LeafName() string {
	if f.Name != "" {
		return f.Name
	}

	return common.LeafName(f.Path)
}

// Mapping associates one source leaf with one destination path.
type Mapping struct {
	ID             string          `json:"id,omitempty" yaml:"id,omitempty"`
	SourceField    FieldRef        `json:"sourceField" yaml:"sourceField"`
	TargetPath     string          `json:"targetPath" yaml:"targetPath"`
	Transformation *transform.Spec `json:"transformation,omitempty" yaml:"transformation,omitempty"`
	Confidence     *float64        `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Reasoning      string          `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	AIGenerated    bool            `json:"aiGenerated,omitempty" yaml:"aiGenerated,omitempty"`
}

// IsTransformed reports whether the mapping carries a transformation.
func (m Mapping) IsTransformed() bool {
	return m.Transformation != nil
}

// Score returns the confidence, or 0 when absent.
func (m Mapping) Score() float64 {
	if m.Confidence == nil {
		return 0
	}

	return *m.Confidence
}

// WithConfidence returns a copy with the given confidence.
func (m Mapping) WithConfidence(c float64) Mapping {
	m.Confidence = &c
	return m
}

// SemanticRules configure name-based matching.
type SemanticRules struct {
	// SynonymGroups maps a group name to field-name variants considered
	// equivalent, e.g. "name": [name, nome, firstName].
	SynonymGroups map[string][]string `json:"synonymGroups,omitempty" yaml:"synonymGroups,omitempty"`
	// Categories group container tokens with the leaf names that belong
	// under them, e.g. "person": {containers: [person, employee], fields: [name, cpf]}.
	Categories map[string]Category `json:"categories,omitempty" yaml:"categories,omitempty"`
	// Tags attaches semantic tags to source paths in addition to the tags
	// carried by the schema itself.
	Tags map[string][]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Category is a structural grouping used by the hierarchical rule.
type Category struct {
	Containers []string `json:"containers" yaml:"containers"`
	Fields     []string `json:"fields" yaml:"fields"`
}

// IsEmpty reports whether no rule is configured.
func (r SemanticRules) IsEmpty() bool {
	return len(r.SynonymGroups) == 0 && len(r.Categories) == 0 && len(r.Tags) == 0
}

// File is a mapping document as read from or written to disk.
type File struct {
	Version  string    `json:"version" yaml:"version"`
	Source   string    `json:"source,omitempty" yaml:"source,omitempty"`
	Mappings []Mapping `json:"mappings" yaml:"mappings"`
}
