package transform

import "regexp"

// documentPatterns lists the characters stripped per document pattern.
var documentPatterns = map[string]string{
	PatternCPF:   `[.\-]`,
	PatternCNPJ:  `[.\-/]`,
	PatternPhone: `[\s\-().]`,
	PatternCEP:   `[.\-]`,
}

const defaultDocumentPattern = `[.\-\s]`

var documentRegexps = func() map[string]*regexp.Regexp {
	compiled := map[string]*regexp.Regexp{
		defaultDocumentPattern: regexp.MustCompile(defaultDocumentPattern),
	}
	for _, expr := range documentPatterns {
		compiled[expr] = regexp.MustCompile(expr)
	}

	return compiled
}()

// documentPattern returns the strip expression for a document pattern name.
func documentPattern(pattern string) string {
	if expr, ok := documentPatterns[pattern]; ok {
		return expr
	}

	return defaultDocumentPattern
}

func formatDocument(value any, spec Spec) (any, bool) {
	s, ok := asText(value)
	if !ok {
		return nil, false
	}

	return documentRegexps[documentPattern(spec.Pattern)].ReplaceAllString(s, ""), true
}
