package transform

// lookup resolves a value through the caller-supplied table; misses keep
// the original value.
func lookup(value any, spec Spec) (any, bool) {
	if len(spec.Mapping) == 0 {
		return nil, false
	}

	key, ok := asText(value)
	if !ok {
		if b, isBool := value.(bool); isBool {
			key = Stringify(b)
		} else {
			return nil, false
		}
	}

	out, ok := spec.Mapping[key]
	return out, ok
}
