package patterns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	s, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"minimal", "senior"}, s.Sources())
	assert.Equal(t, []string{"workday"}, s.Destinations())

	src, err := s.Get("senior")
	require.NoError(t, err)

	assert.Equal(t, "Senior HCM", src.Name)
	assert.Equal(t, []string{
		"funcionario.nome",
		"funcionario.cpf",
		"funcionario.email",
		"funcionario.telefone",
	}, src.Schema.Paths())

	cpf, ok := src.Schema.Field("funcionario.cpf")
	require.True(t, ok)
	assert.Equal(t, []string{"document", "tax_id"}, cpf.Tags)

	email, ok := src.Schema.Field("funcionario.email")
	require.True(t, ok)
	assert.Equal(t, []string{"email"}, email.Tags)

	assert.Contains(t, src.Rules.SynonymGroups, "phone")
	assert.Equal(t, "+5511999998888", src.SamplePayload["funcionario"].(map[string]any)["telefone"])

	minimal, err := s.Get("minimal")
	require.NoError(t, err)
	assert.Equal(t, "minimal", minimal.Name)
	assert.Equal(t, []string{"id"}, minimal.Schema.Paths())

	dst, err := s.Destination("workday")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"worker.fullName",
		"worker.email",
		"worker.nationalId",
		"worker.phone.areaCode",
		"worker.phone.number",
	}, dst.Schema.Paths())
}

func TestStore_Unknown(t *testing.T) {
	s, err := Parse([]byte("sources: {}\n"))
	require.NoError(t, err)

	_, err = s.Get("nope")
	assert.True(t, errors.Is(err, ErrUnknownSource))

	_, err = s.Destination("nope")
	assert.True(t, errors.Is(err, ErrUnknownDestination))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "sources: [unclosed"},
		{"schema not an object", "sources:\n  a:\n    schema: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}

	_, err := LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}
