package transform

import "strings"

func concat(value any, spec Spec) (any, bool) {
	items, ok := asList(value)
	if !ok {
		return nil, false
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		s := Stringify(item)
		if strings.TrimSpace(s) == "" {
			continue
		}

		parts = append(parts, s)
	}

	return strings.Join(parts, spec.Separator), true
}
