package match

// Levenshtein returns the edit distance between a and b in runes. It keeps a
// single row of the DP table, sized by the shorter input.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	row := make([]int, len(short)+1)
	for i := range row {
		row[i] = i
	}

	for j, lr := range long {
		diag := row[0]
		row[0] = j + 1

		for i, sr := range short {
			above := row[i+1]

			cost := 1
			if sr == lr {
				cost = 0
			}

			row[i+1] = min(above+1, row[i]+1, diag+cost)
			diag = above
		}
	}

	return row[len(short)]
}

// LevenshteinNormalized maps the edit distance to a similarity in [0, 1],
// where 1 means equal: 1 - distance / max(len(a), len(b)).
func LevenshteinNormalized(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// NameSimilarity compares two field names after NormalizeIdent. The matcher
// uses it to order equally scored candidates.
func NameSimilarity(a, b string) float64 {
	return LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))
}
