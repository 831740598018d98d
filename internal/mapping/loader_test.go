package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrbridge/internal/transform"
)

func TestParse(t *testing.T) {
	yaml := `
source: senior-hcm
mappings:
  - sourceField:
      path: employee.cpf
      type: string
    targetPath: person.document
    transformation:
      type: format_document
      pattern: cpf
  - sourceField:
      name: mail
      path: employee.contact.email
    targetPath: person.email
    confidence: 95
    reasoning: strong semantic match
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, "senior-hcm", f.Source)
	require.Len(t, f.Mappings, 2)

	m := f.Mappings[0]
	assert.Equal(t, "cpf", m.SourceField.Name, "name defaults to leaf")
	assert.Equal(t, ID("employee.cpf", "person.document"), m.ID)
	require.NotNil(t, m.Transformation)
	assert.Equal(t, transform.KindFormatDocument, m.Transformation.Kind())
	assert.Equal(t, transform.PatternCPF, m.Transformation.Pattern)
	assert.True(t, m.IsTransformed())

	m = f.Mappings[1]
	assert.Equal(t, "mail", m.SourceField.Name)
	require.NotNil(t, m.Confidence)
	assert.InDelta(t, 0.95, *m.Confidence, 1e-9)
	assert.False(t, m.IsTransformed())
}

func TestParse_JSON(t *testing.T) {
	data := `{"version":"1","mappings":[{"sourceField":{"path":"a.b"},"targetPath":"c",
"transformation":{"type":"gender_code","mapping":{"M":"1"}}}]}`

	f, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, f.Mappings, 1)
	assert.Equal(t, map[string]any{"M": "1"}, f.Mappings[0].Transformation.Mapping)
}

func TestParse_InvalidPaths(t *testing.T) {
	_, err := Parse([]byte("mappings:\n  - sourceField: {path: a}\n    targetPath: \"x..y\"\n"))
	assert.ErrorContains(t, err, "mapping 0: target")

	_, err = Parse([]byte("mappings:\n  - targetPath: x\n"))
	assert.ErrorContains(t, err, "mapping 0: source")

	_, err = Parse([]byte("mappings: [unterminated"))
	assert.Error(t, err)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := &File{
		Version: CurrentVersion,
		Mappings: []Mapping{
			Mapping{
				ID:          ID("a", "b"),
				SourceField: FieldRef{Name: "a", Path: "a"},
				TargetPath:  "b",
			}.WithConfidence(0.7),
		},
	}

	for _, name := range []string{"m.yaml", "m.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(f, path))

		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, f, got, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "m.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"targetPath": "b"`)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read mapping file")
}
