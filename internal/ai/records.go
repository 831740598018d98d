package ai

import (
	"encoding/json"
	"strings"

	"hrbridge/internal/analyze"
	"hrbridge/internal/common"
	"hrbridge/internal/mapping"
	"hrbridge/internal/transform"
)

var (
	sourceKeys = []string{"sourceField", "source_field", "sourcePath", "source_path", "source"}
	targetKeys = []string{"targetPath", "target_path", "targetField", "target"}
)

// passthroughTypes name "no transformation" in model output.
var passthroughTypes = map[string]bool{"": true, "none": true, "direct": true, "identity": true}

// toMappings converts model records into mappings. Records without a usable
// source or target, and records naming a source field the schema does not
// have, are dropped.
func toMappings(records []map[string]any, source *analyze.Schema) []mapping.Mapping {
	out := make([]mapping.Mapping, 0, len(records))

	for _, rec := range records {
		m, ok := toMapping(rec, source)
		if ok {
			out = append(out, m)
		}
	}

	return out
}

func toMapping(rec map[string]any, source *analyze.Schema) (mapping.Mapping, bool) {
	srcPath := sourcePath(rec)
	tgtPath := firstString(rec, targetKeys)

	if _, err := mapping.ParsePath(srcPath); err != nil {
		return mapping.Mapping{}, false
	}

	if _, err := mapping.ParsePath(tgtPath); err != nil {
		return mapping.Mapping{}, false
	}

	var ref mapping.FieldRef

	switch f, ok := source.Field(srcPath); {
	case ok:
		ref = f.Ref()
	case source.Len() == 0:
		ref = mapping.FieldRef{ID: srcPath, Name: common.LeafName(srcPath), Path: srcPath}
	default:
		return mapping.Mapping{}, false
	}

	reasoning, _ := rec["reasoning"].(string)

	return mapping.Mapping{
		ID:             mapping.ID(srcPath, tgtPath),
		SourceField:    ref,
		TargetPath:     tgtPath,
		Transformation: transformation(rec["transformation"]),
		Reasoning:      strings.TrimSpace(reasoning),
		AIGenerated:    true,
	}.WithConfidence(mapping.NormalizeConfidence(rec["confidence"])), true
}

// sourcePath accepts a bare path or a field object with a path (or id, or
// name) member.
func sourcePath(rec map[string]any) string {
	for _, k := range sourceKeys {
		switch v := rec[k].(type) {
		case string:
			return strings.TrimSpace(v)
		case map[string]any:
			if p := firstString(v, []string{"path", "id", "name"}); p != "" {
				return p
			}
		}
	}

	return ""
}

func firstString(rec map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	return ""
}

// transformation decodes a transformation object. A bare string is taken
// as the type name.
func transformation(raw any) *transform.Spec {
	var spec transform.Spec

	switch v := raw.(type) {
	case string:
		spec.Type = v
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}

		if err := json.Unmarshal(b, &spec); err != nil {
			return nil
		}
	default:
		return nil
	}

	spec.Type = strings.TrimSpace(spec.Type)
	if passthroughTypes[strings.ToLower(spec.Type)] {
		return nil
	}

	return &spec
}
