package transform

import (
	"fmt"

	"go.uber.org/zap"
)

// applyFunc returns ok=false when the input is malformed for the kind;
// the engine then passes the value through unchanged.
type applyFunc func(value any, spec Spec) (any, bool)

// entry is the single definition of a kind: its Go rendition and its
// snippet rendition.
type entry struct {
	apply   applyFunc
	snippet string
}

var table = map[Kind]entry{
	KindFormatDocument: {apply: formatDocument, snippet: formatDocumentSnippet},
	KindConcat:         {apply: concat, snippet: concatSnippet},
	KindPhoneSplit:     {apply: phoneSplit, snippet: phoneSplitSnippet},
	KindNameSplit:      {apply: nameSplit, snippet: nameSplitSnippet},
	KindConvert:        {apply: convert, snippet: convertSnippet},
	KindNormalize:      {apply: normalize, snippet: normalizeSnippet},
	KindFormatDate:     {apply: formatDate, snippet: formatDateSnippet},
	KindCountryCode:    {apply: lookup, snippet: lookupSnippet},
	KindGenderCode:     {apply: lookup, snippet: lookupSnippet},
	KindCodeLookup:     {apply: lookup, snippet: lookupSnippet},
}

// Engine applies transformations. It is stateless apart from its logger and
// safe for concurrent use.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{log: log}
}

var defaultEngine = NewEngine(nil)

// Apply runs one transformation with a silent engine.
func Apply(value any, spec Spec) any {
	return defaultEngine.Apply(value, spec)
}

// ApplyAll folds specs over value with a silent engine.
func ApplyAll(value any, specs []Spec) any {
	return defaultEngine.ApplyAll(value, specs)
}

// Apply transforms value according to spec. It never panics: unsupported
// kinds and malformed input return value unchanged.
func (e *Engine) Apply(value any, spec Spec) (out any) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("transformation panicked",
				zap.String("type", spec.Type),
				zap.String("panic", fmt.Sprint(r)))

			out = value
		}
	}()

	kind := spec.Kind()

	switch {
	case kind == KindUnknown:
		e.log.Debug("unsupported transformation", zap.String("type", spec.Type))
		return value
	case value == nil:
		return nil
	}

	res, ok := table[kind].apply(value, spec)
	if !ok {
		e.log.Debug("transformation input rejected",
			zap.String("type", spec.Type),
			zap.String("operation", spec.Operation),
			zap.String("input", Stringify(value)))

		return value
	}

	return res
}

// ApplyAll applies specs left to right.
func (e *Engine) ApplyAll(value any, specs []Spec) any {
	for _, spec := range specs {
		value = e.Apply(value, spec)
	}

	return value
}

// Validate reports whether Apply completes for value. Kept as a predicate
// for callers that check transformations before saving them; Apply's
// recovery means it only fails if the engine itself is broken.
func (e *Engine) Validate(value any, spec Spec) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	e.Apply(value, spec)

	return true
}

// Preview stringifies the input and the result of the whole chain.
func (e *Engine) Preview(input any, specs ...Spec) Preview {
	return Preview{
		Input:  Stringify(input),
		Output: Stringify(e.ApplyAll(input, specs)),
	}
}
