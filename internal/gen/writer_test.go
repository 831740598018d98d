package gen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	a := compile(t, DefaultConfig(), scenario())

	files, err := a.Files()
	require.NoError(t, err)
	require.Len(t, files, 3)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteFiles(files, dir))

	doc, err := os.ReadFile(filepath.Join(dir, ArtifactFilename))
	require.NoError(t, err)

	var back Artifact
	require.NoError(t, json.Unmarshal(doc, &back))
	assert.Equal(t, a.Name, back.Name)
	assert.Len(t, back.Nodes, len(a.Nodes))

	code, err := os.ReadFile(filepath.Join(dir, "snippets", "cpf_1.js"))
	require.NoError(t, err)
	assert.Equal(t, a.Snippets[0].Code, string(code))
}
