package gen

import (
	"strconv"
	"strings"
	"unicode"

	"hrbridge/internal/mapping"
	"hrbridge/internal/transform"
)

// VariableName derives the variable of a script task from the source field
// name and the task id. Task ids are unique per compile, so names are too.
func VariableName(field mapping.FieldRef, taskID int) string {
	return sanitize(field.LeafName()) + "_" + strconv.Itoa(taskID)
}

func sanitize(name string) string {
	if folded, ok := transform.RemoveAccents(name); ok {
		name = folded
	}

	var b strings.Builder

	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "field"
	}

	if unicode.IsDigit(rune(out[0])) {
		return "f" + out
	}

	return out
}

// zeroValue mirrors the script's default for absent input.
func zeroValue(spec transform.Spec) any {
	if spec.Kind() == transform.KindConvert {
		switch spec.Operation {
		case transform.OpStringToNumber:
			return 0.0
		case transform.OpStringToBoolean:
			return false
		}
	}

	return ""
}

func dataTypeOf(v any) DataType {
	switch v.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeDouble
	default:
		return TypeJSON
	}
}
