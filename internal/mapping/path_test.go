package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		input   string
		want    Path
		wantErr bool
	}{
		{"email", Path{"email"}, false},
		{"contact.email", Path{"contact", "email"}, false},
		{"employee.address.zip-code", Path{"employee", "address", "zip-code"}, false},
		{"", nil, true},
		{"  ", nil, true},
		{"a..b", nil, true},
		{".a", nil, true},
		{"a.", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestPath_Get(t *testing.T) {
	root := map[string]any{
		"employee": map[string]any{
			"name": "Maria",
			"tags": []any{"a"},
		},
	}

	v, ok := Lookup(root, "employee.name")
	assert.True(t, ok)
	assert.Equal(t, "Maria", v)

	_, ok = Lookup(root, "employee.tags.0")
	assert.False(t, ok)

	_, ok = Lookup(root, "employee.missing")
	assert.False(t, ok)

	_, ok = Lookup(root, "")
	assert.False(t, ok)
}

func TestPath_Set(t *testing.T) {
	root := map[string]any{}

	require.NoError(t, Path{"person", "name"}.Set(root, "x"))
	require.NoError(t, Path{"person", "email"}.Set(root, "y"))
	require.NoError(t, Path{"id"}.Set(root, 1))

	assert.Equal(t, map[string]any{
		"person": map[string]any{"name": "x", "email": "y"},
		"id":     1,
	}, root)

	err := Path{"id", "value"}.Set(root, 2)
	assert.ErrorContains(t, err, `"id"`)

	err = Path{"person"}.Set(root, "z")
	assert.ErrorContains(t, err, `"person"`)
	assert.Equal(t, map[string]any{"name": "x", "email": "y"}, root["person"])

	require.NoError(t, Path{"id"}.Set(root, 3))
	assert.Equal(t, 3, root["id"])
}
