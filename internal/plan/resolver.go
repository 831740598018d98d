package plan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hrbridge/internal/ai"
	"hrbridge/internal/analyze"
	"hrbridge/internal/diagnostic"
	"hrbridge/internal/mapping"
	"hrbridge/internal/match"
	"hrbridge/internal/transform"
)

// Generator proposes mappings with a generative model.
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (*ai.Result, error)
}

// Request is the input of one resolution.
type Request struct {
	Source       *analyze.Schema
	SourceSample any
	Destination  *analyze.Schema
	Rules        mapping.SemanticRules
	// Pinned mappings are kept verbatim and take priority.
	Pinned []mapping.Mapping
}

// Resolver performs the resolution pipeline. It keeps no per-request state.
type Resolver struct {
	gen     Generator
	matcher *match.Matcher
	engine  *transform.Engine
	log     *zap.Logger
}

// NewResolver creates a Resolver. gen may be nil, in which case only the
// matcher is used. A nil matcher or engine gets the defaults.
func NewResolver(gen Generator, matcher *match.Matcher, engine *transform.Engine, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}

	if matcher == nil {
		matcher = match.NewMatcher(match.DefaultConfig(), log)
	}

	if engine == nil {
		engine = transform.NewEngine(log)
	}

	return &Resolver{gen: gen, matcher: matcher, engine: engine, log: log}
}

// Resolve builds the plan for req.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Plan, error) {
	if req.Source == nil || req.Destination == nil {
		return nil, errors.New("source and destination schemas are required")
	}

	source := req.Source
	if req.SourceSample != nil {
		source = source.WithSamples(req.SourceSample)
	}

	p := &Plan{}

	pinnedSources := make(map[string]bool, len(req.Pinned))
	pinnedTargets := make(map[string]bool, len(req.Pinned))

	for _, m := range req.Pinned {
		pinnedSources[m.SourceField.Path] = true
		pinnedTargets[m.TargetPath] = true
	}

	pool := remaining(source, pinnedSources)
	targets := remaining(req.Destination, pinnedTargets)

	var auto []mapping.Mapping

	switch {
	case targets.Len() == 0 || pool.Len() == 0:
		p.Source = SourcePinned
	case r.gen != nil:
		auto = r.generate(ctx, p, ai.Request{
			Source:       pool,
			SourceSample: req.SourceSample,
			Destination:  targets,
			Rules:        req.Rules,
		})
	default:
		p.Diagnostics.AddInfo(diagnostic.CodeAIFallback,
			"no AI service configured, using rule-based matcher", "", "")
	}

	if p.Source == "" {
		if auto == nil {
			auto = r.matcher.Match(pool.Fields, targets.Paths(), req.Rules)
			p.Source = SourceRules
		} else {
			p.Source = SourceAI
		}
	}

	p.Mappings = append(append([]mapping.Mapping{}, req.Pinned...), excludeTargets(auto, pinnedTargets)...)
	r.attachPreviews(p.Mappings, source)
	p.UnmappedTargets = unmapped(req.Destination, p.Mappings)

	if n := len(p.UnmappedTargets); n > 0 {
		p.Diagnostics.AddInfo(diagnostic.CodeCoverageGap,
			fmt.Sprintf("%d of %d destination fields unmapped", n, req.Destination.Len()), "", "")
	}

	r.log.Info("mapping plan resolved",
		zap.String("source", string(p.Source)),
		zap.Int("pinned", len(req.Pinned)),
		zap.Int("mappings", len(p.Mappings)),
		zap.Int("unmapped", len(p.UnmappedTargets)))

	return p, nil
}

// generate runs the model. A nil result means the caller must fall back.
func (r *Resolver) generate(ctx context.Context, p *Plan, req ai.Request) []mapping.Mapping {
	res, err := r.gen.Generate(ctx, req)
	if res != nil {
		p.Diagnostics.Merge(res.Diagnostics)
	}

	if err != nil {
		r.log.Warn("AI mapping generation failed, falling back to rules", zap.Error(err))
		p.Diagnostics.AddWarning(diagnostic.CodeAIFallback,
			fmt.Sprintf("AI mapping generation failed, using rule-based matcher: %v", err), "", "")

		return nil
	}

	return res.Mappings
}

// attachPreviews sets a display preview on transformed mappings whose source
// field has a sample. Specs are copied, never modified in place.
func (r *Resolver) attachPreviews(mappings []mapping.Mapping, source *analyze.Schema) {
	for i := range mappings {
		m := &mappings[i]
		if m.Transformation == nil || m.Transformation.Preview != nil {
			continue
		}

		f, ok := source.Field(m.SourceField.Path)
		if !ok || !f.HasSample {
			continue
		}

		spec := *m.Transformation
		preview := r.engine.Preview(f.Sample, spec)
		spec.Preview = &preview
		m.Transformation = &spec
	}
}

func remaining(s *analyze.Schema, taken map[string]bool) *analyze.Schema {
	if len(taken) == 0 {
		return s
	}

	fields := make([]analyze.Field, 0, s.Len())
	for _, f := range s.Fields {
		if !taken[f.Path] {
			fields = append(fields, f)
		}
	}

	return analyze.NewSchema(fields)
}

func excludeTargets(mappings []mapping.Mapping, taken map[string]bool) []mapping.Mapping {
	out := make([]mapping.Mapping, 0, len(mappings))
	for _, m := range mappings {
		if !taken[m.TargetPath] {
			out = append(out, m)
		}
	}

	return out
}

func unmapped(dst *analyze.Schema, mappings []mapping.Mapping) []string {
	mapped := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		mapped[m.TargetPath] = true
	}

	var out []string
	for _, p := range dst.Paths() {
		if !mapped[p] {
			out = append(out, p)
		}
	}

	return out
}
