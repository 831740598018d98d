package mapping

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"hrbridge/internal/common"
)

// DefaultConfidence is used when a raw score cannot be interpreted.
const DefaultConfidence = 0.5

// NormalizeConfidence folds a raw score into [0, 1]. Values above 1 are
// treated as percentages. Unparseable input and NaN yield DefaultConfidence.
func NormalizeConfidence(raw any) float64 {
	x, ok := toFloat(raw)
	if !ok || math.IsNaN(x) {
		return DefaultConfidence
	}

	if x > 1 {
		x /= 100
	}

	return clamp(x, 0, 1)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// DedupeBySource keeps the first mapping for every source path.
func DedupeBySource(mappings []Mapping) []Mapping {
	return common.UniqueBy(mappings, func(m Mapping) string {
		return m.SourceField.Path
	})
}

// SortByConfidence orders mappings by confidence, highest first. Equal
// confidences keep their input order.
func SortByConfidence(mappings []Mapping) {
	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].Score() > mappings[j].Score()
	})
}

// TargetCollisions returns target paths written by more than one mapping,
// in order of first collision.
func TargetCollisions(mappings []Mapping) []string {
	seen := make(map[string]int, len(mappings))

	var dup []string

	for _, m := range mappings {
		seen[m.TargetPath]++
		if seen[m.TargetPath] == 2 {
			dup = append(dup, m.TargetPath)
		}
	}

	return dup
}
