package match

import (
	"strings"
	"unicode"

	"hrbridge/internal/common"
	"hrbridge/internal/transform"
)

// NormalizeIdent folds a field name to its comparison key: the lower-case,
// accent-free concatenation of its words. "dataAdmissão", "data_admissao"
// and "DATA-ADMISSAO" all fold to "dataadmissao".
func NormalizeIdent(s string) string {
	return strings.Join(Words(s), "")
}

// Words splits an identifier on separators and case changes and folds each
// word to lower case without accents.
//
//	"employeeID"     -> [employee id]
//	"CPFNumber"      -> [cpf number]
//	"data_admissão"  -> [data admissao]
func Words(s string) []string {
	if folded, ok := transform.RemoveAccents(s); ok {
		s = folded
	}

	var (
		words []string
		start = -1
	)

	runes := []rune(s)
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, strings.ToLower(string(runes[start:end])))
		}

		start = -1
	}

	for i, r := range runes {
		switch {
		case isSeparator(r):
			flush(i)
		case start < 0:
			start = i
		case wordBoundary(runes, i):
			flush(i)
			start = i
		}
	}

	flush(len(runes))

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// wordBoundary reports whether a new word starts at i: a lower-to-upper
// step ("firstName") or the last capital of an acronym followed by a
// lower-case letter ("CPFNumber").
func wordBoundary(runes []rune, i int) bool {
	cur, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(cur) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// PathTokens normalizes every segment of a dotted path.
func PathTokens(path string) []string {
	segments := common.SplitPath(path)
	for i, seg := range segments {
		segments[i] = NormalizeIdent(seg)
	}

	return segments
}
