package server

import (
	"hrbridge/internal/diagnostic"
	"hrbridge/internal/gen"
	"hrbridge/internal/mapping"
	"hrbridge/internal/plan"
	"hrbridge/internal/store"
	"hrbridge/internal/transform"
)

// SuggestRequest asks for a mapping plan. Each side is either a catalog id
// or an inline schema (JSON Schema or a sample payload).
type SuggestRequest struct {
	SourceID          string                 `json:"sourceId,omitempty" doc:"Source system id from the pattern catalog"`
	SourceSchema      map[string]any         `json:"sourceSchema,omitempty" doc:"Inline source schema or sample payload"`
	SourceSample      map[string]any         `json:"sourceSample,omitempty"`
	DestinationID     string                 `json:"destinationId,omitempty"`
	DestinationSchema map[string]any         `json:"destinationSchema,omitempty"`
	SemanticRules     *mapping.SemanticRules `json:"semanticRules,omitempty"`
	Pinned            []mapping.Mapping      `json:"pinned,omitempty" doc:"Mappings kept verbatim"`
}

// SuggestResponse is a resolved mapping plan.
type SuggestResponse struct {
	Mappings        []mapping.Mapping      `json:"mappings"`
	Source          plan.MappingSource     `json:"source" enum:"ai,rules,pinned"`
	UnmappedTargets []string               `json:"unmappedTargets,omitempty"`
	Coverage        float64                `json:"coverage"`
	Diagnostics     diagnostic.Diagnostics `json:"diagnostics"`
}

// PreviewRequest runs one value through a chain of transformations.
type PreviewRequest struct {
	Value           any              `json:"value"`
	Transformations []transform.Spec `json:"transformations" minItems:"1"`
}

// CompileResponse carries the artifact and, when saved, its history id.
type CompileResponse struct {
	ID       string        `json:"id,omitempty"`
	Artifact *gen.Artifact `json:"artifact"`
}

// ListResponse lists stored integrations.
type ListResponse struct {
	Integrations []store.Summary `json:"integrations"`
}

func suggestResponse(p *plan.Plan) SuggestResponse {
	mappings := p.Mappings
	if mappings == nil {
		mappings = []mapping.Mapping{}
	}

	return SuggestResponse{
		Mappings:        mappings,
		Source:          p.Source,
		UnmappedTargets: p.UnmappedTargets,
		Coverage:        p.Coverage(),
		Diagnostics:     p.Diagnostics,
	}
}
