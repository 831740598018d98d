package plan

import (
	"hrbridge/internal/diagnostic"
	"hrbridge/internal/mapping"
)

// MappingSource specifies the origin of a plan's automatic mappings.
type MappingSource string

const (
	// SourceAI means the generative service produced the mappings.
	SourceAI MappingSource = "ai"
	// SourceRules means the rule-based matcher produced the mappings.
	SourceRules MappingSource = "rules"
	// SourcePinned means every destination path was pinned.
	SourcePinned MappingSource = "pinned"
)

// Plan is the output of the resolution pipeline.
type Plan struct {
	Mappings        []mapping.Mapping      `json:"mappings"`
	Source          MappingSource          `json:"source"`
	UnmappedTargets []string               `json:"unmappedTargets,omitempty"`
	Diagnostics     diagnostic.Diagnostics `json:"diagnostics"`
}

// Coverage returns the share of destination paths that received a mapping.
func (p *Plan) Coverage() float64 {
	mapped := len(p.Mappings)
	total := mapped + len(p.UnmappedTargets)

	if total == 0 {
		return 0
	}

	return float64(mapped) / float64(total)
}
