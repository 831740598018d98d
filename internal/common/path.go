package common

import "strings"

const (
	// PathSeparator delimits segments of a JSON field path.
	PathSeparator = "."
	// UnknownStr is the String() fallback for out-of-range enum values.
	UnknownStr = "unknown"
)

// LeafName returns the last segment of a dot-delimited path.
// Returns empty string if path is empty.
func LeafName(path string) string {
	if path == "" {
		return ""
	}

	if i := strings.LastIndex(path, PathSeparator); i >= 0 {
		return path[i+1:]
	}

	return path
}

// SplitPath splits a dot-delimited path into its segments, dropping empty ones.
func SplitPath(path string) []string {
	parts := strings.Split(path, PathSeparator)

	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}

	return segments
}

// JoinPath joins segments with the path separator, skipping a leading empty prefix.
func JoinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + PathSeparator + name
}
