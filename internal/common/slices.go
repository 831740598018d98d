package common

// UniqueBy keeps the first element for every key, preserving input order.
func UniqueBy[S ~[]E, E any, K comparable](s S, key func(E) K) S {
	seen := make(map[K]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, e)
	}

	return out
}
