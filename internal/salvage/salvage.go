package salvage

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoArray is returned by Parse when the text holds no JSON array.
var ErrNoArray = errors.New("no JSON array found")

var (
	sourceKeys = []string{"sourceField", "source_field", "sourcePath", "source_path", "source"}
	targetKeys = []string{"targetPath", "target_path", "targetField", "target"}
)

// ExtractArray returns the first balanced [...] region of text that is valid
// JSON.
func ExtractArray(text string) (string, bool) {
	for from := 0; from < len(text); {
		i := strings.IndexByte(text[from:], '[')
		if i < 0 {
			return "", false
		}

		start := from + i
		if end, ok := closingBracket(text, start); ok && json.Valid([]byte(text[start:end+1])) {
			return text[start : end+1], true
		}

		from = start + 1
	}

	return "", false
}

// closingBracket finds the ']' balancing the '[' at start.
func closingBracket(text string, start int) (int, bool) {
	var (
		sc    scanner
		depth int
	)

	for i := start; i < len(text); i++ {
		if !sc.step(text[i]) {
			continue
		}

		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// Parse decodes the first JSON array of records in text.
func Parse(text string) ([]map[string]any, error) {
	arr, ok := ExtractArray(text)
	if !ok {
		return nil, ErrNoArray
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(arr), &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Records salvages as many well-formed records as possible from text.
func Records(text string) []map[string]any {
	if records, ok := trimToLastComma(text); ok {
		return records
	}

	return scanRecords(text)
}

// trimToLastComma cuts text at the last comma separating two elements of
// the outermost array, closes the array and parses it. An array that closes
// and parses whole is returned as is.
func trimToLastComma(text string) ([]map[string]any, bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return nil, false
	}

	var (
		sc        scanner
		depth     int
		lastComma = -1
	)

scan:
	for i := start; i < len(text); i++ {
		c := text[i]
		if !sc.step(c) {
			continue
		}

		switch c {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth > 0 {
				continue
			}

			var records []map[string]any
			if err := json.Unmarshal([]byte(text[start:i+1]), &records); err == nil && len(records) > 0 {
				return records, true
			}

			break scan
		case ',':
			if depth == 1 {
				lastComma = i
			}
		}
	}

	if lastComma < 0 {
		return nil, false
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(text[start:lastComma]+"]"), &records); err != nil {
		return nil, false
	}

	return records, len(records) > 0
}

// scanRecords parses every balanced top-level {...} region independently.
func scanRecords(text string) []map[string]any {
	var (
		sc      scanner
		depth   int
		start   int
		records = []map[string]any{}
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if !sc.step(c) {
			continue
		}

		switch c {
		case '{':
			if depth == 0 {
				start = i
			}

			depth++
		case '}':
			if depth == 0 {
				continue
			}

			depth--
			if depth > 0 {
				continue
			}

			var rec map[string]any
			if err := json.Unmarshal([]byte(text[start:i+1]), &rec); err != nil {
				continue
			}

			if hasAny(rec, sourceKeys) && hasAny(rec, targetKeys) {
				records = append(records, rec)
			}
		}
	}

	return records
}

func hasAny(rec map[string]any, keys []string) bool {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil && v != "" {
			return true
		}
	}

	return false
}
