package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	textx "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func normalize(value any, spec Spec) (any, bool) {
	s, ok := value.(string)
	if !ok {
		return nil, false
	}

	switch spec.Operation {
	case OpUpperCase:
		return strings.ToUpper(s), true
	case OpLowerCase:
		return strings.ToLower(s), true
	case OpTitleCase:
		return titleCase(s), true
	case OpRemoveAccents:
		return RemoveAccents(s)
	default:
		return nil, false
	}
}

// titleCase upper-cases the first rune of every space-delimited token and
// lower-cases the rest. Spacing is preserved.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}

		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}

	return strings.Join(words, " ")
}

// RemoveAccents applies NFD decomposition and drops combining marks.
func RemoveAccents(s string) (string, bool) {
	t := textx.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

	out, _, err := textx.String(t, s)
	if err != nil {
		return "", false
	}

	return out, true
}
