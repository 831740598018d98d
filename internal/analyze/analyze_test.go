package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "employee": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "x-semantic-tags": ["person.name", "fullName"], "example": "Maria Silva"},
        "cpf": {"type": "string", "examples": ["123.456.789-00"]},
        "active": {"type": ["null", "boolean"], "default": true},
        "contact": {
          "type": "object",
          "properties": {
            "email": {"type": "string"},
            "phones": {"type": "array", "items": {"type": "string"}}
          }
        },
        "meta": {"type": "object"}
      }
    },
    "salary": {"type": "number"}
  }
}`

func TestParse_JSONSchema(t *testing.T) {
	s, err := Parse([]byte(employeeSchema))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"employee.name",
		"employee.cpf",
		"employee.active",
		"employee.contact.email",
		"employee.contact.phones",
		"employee.meta",
		"salary",
	}, s.Paths(), "document order is kept")

	name, ok := s.Field("employee.name")
	require.True(t, ok)
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, FieldKindString, name.Kind)
	assert.Equal(t, []string{"person.name", "fullName"}, name.Tags)
	assert.Equal(t, "Maria Silva", name.Sample)

	cpf, _ := s.Field("employee.cpf")
	assert.Equal(t, "123.456.789-00", cpf.Sample)

	active, _ := s.Field("employee.active")
	assert.Equal(t, FieldKindBoolean, active.Kind)
	assert.Equal(t, true, active.Sample)

	phones, _ := s.Field("employee.contact.phones")
	assert.Equal(t, FieldKindArray, phones.Kind)
	assert.False(t, phones.HasSample)

	meta, _ := s.Field("employee.meta")
	assert.Equal(t, FieldKindObject, meta.Kind)
}

func TestParse_Payload(t *testing.T) {
	s, err := Parse([]byte(`{
  "employee": {"name": "Ana", "age": 31, "score": 7.5, "active": false, "phones": ["1"], "extra": {}, "nick": null},
  "id": "42"
}`))
	require.NoError(t, err)

	kinds := map[string]FieldKind{}
	for _, f := range s.Fields {
		kinds[f.Path] = f.Kind
	}

	assert.Equal(t, map[string]FieldKind{
		"employee.name":   FieldKindString,
		"employee.age":    FieldKindInteger,
		"employee.score":  FieldKindNumber,
		"employee.active": FieldKindBoolean,
		"employee.phones": FieldKindArray,
		"employee.extra":  FieldKindObject,
		"employee.nick":   FieldKindNull,
		"id":              FieldKindString,
	}, kinds)

	age, _ := s.Field("employee.age")
	assert.Equal(t, 31, age.Sample)
	assert.Equal(t, 8, s.Len())
}

func TestParse_YAMLAndErrors(t *testing.T) {
	s, err := Parse([]byte("person:\n  name: Joao\n  birth: 1990-01-02\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"person.name", "person.birth"}, s.Paths())

	s, err = Parse(nil)
	require.NoError(t, err)
	assert.Zero(t, s.Len())

	_, err = Parse([]byte(`[1, 2]`))
	assert.ErrorContains(t, err, "must be an object")

	_, err = Parse([]byte(`{"a": [`))
	assert.Error(t, err)
}

func TestFromValue_SortedKeys(t *testing.T) {
	s, err := FromValue(map[string]any{
		"b": "x",
		"a": map[string]any{"z": 1.5, "y": true},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.y", "a.z", "b"}, s.Paths())
}

func TestSchema_WithSamplesAndTags(t *testing.T) {
	s, err := Parse([]byte(employeeSchema))
	require.NoError(t, err)

	payload := map[string]any{
		"employee": map[string]any{"contact": map[string]any{"email": "a@b.com"}},
	}

	out := s.WithSamples(payload).Tagged(map[string][]string{"salary": {"compensation"}})

	email, _ := out.Field("employee.contact.email")
	assert.Equal(t, "a@b.com", email.Sample)
	assert.True(t, email.HasSample)

	name, _ := out.Field("employee.name")
	assert.Equal(t, "Maria Silva", name.Sample, "existing samples survive")

	salary, _ := out.Field("salary")
	assert.Equal(t, []string{"compensation"}, salary.Tags)

	orig, _ := s.Field("salary")
	assert.Empty(t, orig.Tags, "receiver is not modified")
}

func TestSchema_SubSchema(t *testing.T) {
	s, err := Parse([]byte(employeeSchema))
	require.NoError(t, err)

	sub := s.SubSchema([]string{"employee.cpf", "employee.contact.email", "missing.leaf"})

	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"employee": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"cpf": map[string]any{"type": "string", "example": "123.456.789-00"},
					"contact": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"email": map[string]any{"type": "string"},
						},
					},
				},
			},
			"missing": map[string]any{
				"type":       "object",
				"properties": map[string]any{"leaf": map[string]any{}},
			},
		},
	}, sub)
}

func TestSchema_Range(t *testing.T) {
	s := NewSchema([]Field{{Path: "a"}, {Path: "b"}, {Path: "c"}, {Path: "a"}})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b", "c"}, s.Range(1, 10))
	assert.Empty(t, s.Range(5, 7))
	assert.Equal(t, []string{"a"}, s.Range(-1, 1))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(employeeSchema), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestFieldKind_String(t *testing.T) {
	for k := FieldKindString; k <= FieldKindNull; k++ {
		assert.Equal(t, k, ParseFieldKind(k.String()))
	}

	assert.Equal(t, "unknown", FieldKind(42).String())
	assert.Equal(t, FieldKindUnknown, ParseFieldKind("date"))
}
