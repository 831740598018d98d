package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"firstName", "firstname"},
		{"first_name", "firstname"},
		{"first-name", "firstname"},
		{"FIRST_NAME", "firstname"},
		{"employeeID", "employeeid"},
		{"CPFNumber", "cpfnumber"},

		// Accents are folded
		{"endereço", "endereco"},
		{"DataAdmissão", "dataadmissao"},
		{"Número_Série", "numeroserie"},

		{"", ""},
		{"a", "a"},
		{"ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"employeeID", []string{"employee", "id"}},
		{"firstName", []string{"first", "name"}},
		{"CPFNumber", []string{"cpf", "number"}},
		{"birth_date", []string{"birth", "date"}},
		{"data-admissão", []string{"data", "admissao"}},
		{"ALLCAPS", []string{"allcaps"}},
		{"__x__", []string{"x"}},
		{"", nil},
		{"AbC", []string{"ab", "c"}},
		{"parseURL", []string{"parse", "url"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.input))
		})
	}
}

func TestPathTokens(t *testing.T) {
	assert.Equal(t, []string{"employee", "personaldata", "firstname"},
		PathTokens("employee.personal_data.firstName"))
	assert.Empty(t, PathTokens(""))
}
