package transform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var truthyWords = []string{"true", "1", "yes", "sim"}

// decimalSyntax is the number grammar accepted by string_to_number. The
// generated script tests the same expression, so hex floats, infinities and
// trailing garbage pass through unchanged on both sides.
const decimalSyntax = `^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`

var decimalNumber = regexp.MustCompile(decimalSyntax)

func convert(value any, spec Spec) (any, bool) {
	switch spec.Operation {
	case OpStringToNumber:
		if f, ok := asFloat(value); ok {
			return f, isFinite(f)
		}

		s, ok := value.(string)
		if !ok {
			return nil, false
		}

		s = strings.TrimSpace(s)
		if !decimalNumber.MatchString(s) {
			return nil, false
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return nil, false
		}

		return f, true

	case OpNumberToString:
		if _, ok := asFloat(value); ok {
			return Stringify(value), true
		}

		s, ok := value.(string)
		return s, ok

	case OpStringToBoolean:
		if b, ok := value.(bool); ok {
			return b, true
		}

		s, ok := asText(value)
		if !ok {
			return nil, false
		}

		word := strings.ToLower(strings.TrimSpace(s))
		for _, t := range truthyWords {
			if word == t {
				return true, true
			}
		}

		return false, true

	case OpBooleanToString:
		b, ok := value.(bool)
		if !ok {
			return nil, false
		}

		return strconv.FormatBool(b), true

	default:
		return nil, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
