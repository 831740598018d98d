package salvage

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{
			"sourceField": fmt.Sprintf("employee.field%d", i),
			"targetPath":  fmt.Sprintf("person.field%d", i),
			"confidence":  float64(90 - i),
			"reasoning":   `says "hi", {braces} [and] commas`,
		}
	}

	return out
}

func TestRecords_CleanTruncation(t *testing.T) {
	for n := 2; n <= 6; n++ {
		full, err := json.Marshal(records(n))
		require.NoError(t, err)

		last, err := json.Marshal(records(n)[n-1])
		require.NoError(t, err)

		// Cut at every offset inside the last record.
		lastStart := len(full) - 1 - len(last)
		for cut := lastStart + 1; cut < len(full)-1; cut++ {
			got := Records(string(full[:cut]))
			require.Len(t, got, n-1, "n=%d cut=%d", n, cut)
			assert.Equal(t, records(n)[:n-1], got)
		}
	}
}

func TestRecords_CompleteArrayKeepsEverything(t *testing.T) {
	full, err := json.Marshal(records(3))
	require.NoError(t, err)

	assert.Len(t, Records("Here you go:\n```json\n"+string(full)+"\n```"), 3)
}

func TestRecords_RecordScan(t *testing.T) {
	text := `[
  {"sourceField": "a", "targetPath": "x"},
  {"sourceField": "b", "targetPath": "y", "confidence": 9O},
  {"note": "no target", "sourceField": "c"},
  {"source_field": "d", "target_path": "z", "transformation": {"type": "concat"}}
  {"sourceField": "e", "target`

	got := Records(text)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["sourceField"])
	assert.Equal(t, "d", got[1]["source_field"])
	assert.Equal(t, map[string]any{"type": "concat"}, got[1]["transformation"])
}

func TestRecords_NeverPanics(t *testing.T) {
	full, _ := json.Marshal(records(4))

	inputs := []string{
		"",
		"garbage",
		"[",
		"]",
		"}{",
		"[,]",
		`["a", "b"]`,
		`[{"sourceField": "a", "targetPath": "b"},`,
		`{"unterminated": "str`,
		`"\`,
		strings.Repeat("[", 1000),
		strings.Repeat("}", 1000),
		string(full[:len(full)/2]),
	}

	for i := range len(full) {
		inputs = append(inputs, string(full[:i]))
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := Records(in)
			assert.NotNil(t, got)
		}, "input %q", in)
	}

	assert.Empty(t, Records(""))
	assert.Empty(t, Records("I cannot help with that."))
	assert.Len(t, Records(`[{"sourceField": "a", "targetPath": "b"},`), 1)
}

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"bare", `[1,2]`, `[1,2]`, true},
		{"wrapped", "Sure!\n```json\n[{\"a\": \"]\"}]\n```", `[{"a": "]"}]`, true},
		{"skips prose brackets", `see [note] then [{"a":1}]`, `[{"a":1}]`, true},
		{"nested", `x [[1],[2]] y`, `[[1],[2]]`, true},
		{"unterminated", `[{"a": 1}`, ``, false},
		{"none", `no array`, ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractArray(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(`result: [{"sourceField":"a","targetPath":"b"}] done`)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Parse(`nothing here`)
	assert.ErrorIs(t, err, ErrNoArray)

	_, err = Parse(`[1, 2]`)
	assert.Error(t, err)
}
