package mapping

import (
	"errors"
	"fmt"
	"strings"

	"hrbridge/internal/common"
)

// Path is a parsed dot-delimited JSON address.
type Path []string

// ParsePath parses a field path string into a Path.
// Supports: "email", "contact.email", "employee.address.zipCode".
func ParsePath(path string) (Path, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty path")
	}

	parts := strings.Split(path, common.PathSeparator)
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}
	}

	return Path(parts), nil
}

// String joins the segments back into dotted form.
func (p Path) String() string {
	return strings.Join(p, common.PathSeparator)
}

// Leaf returns the last segment.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// Get walks root along the path. ok is false when any segment is absent or
// an intermediate value is not an object.
func (p Path) Get(root any) (value any, ok bool) {
	value = root
	for _, seg := range p {
		obj, isObj := value.(map[string]any)
		if !isObj {
			return nil, false
		}

		value, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}

	return value, len(p) > 0
}

// Set writes value at the path, creating intermediate objects as needed.
// It fails when an intermediate segment already holds a non-object value, or
// when the leaf already holds an object written through a longer path.
func (p Path) Set(root map[string]any, value any) error {
	if len(p) == 0 {
		return errors.New("empty path")
	}

	node := root
	for i, seg := range p[:len(p)-1] {
		next, exists := node[seg]
		if !exists {
			child := map[string]any{}
			node[seg] = child
			node = child

			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot descend into %q: not an object", p[:i+1].String())
		}

		node = child
	}

	if _, isObject := node[p.Leaf()].(map[string]any); isObject {
		return fmt.Errorf("cannot overwrite %q: already holds nested fields", p.String())
	}

	node[p.Leaf()] = value

	return nil
}

// Lookup is Get on an unparsed path.
func Lookup(root any, path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	return p.Get(root)
}
