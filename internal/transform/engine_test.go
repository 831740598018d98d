package transform

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	gender := map[string]any{"M": "1", "F": "2"}

	tests := []struct {
		name     string
		value    any
		spec     Spec
		expected any
	}{
		{"cpf", "123.456.789-00", Spec{Type: "format_document", Pattern: PatternCPF}, "12345678900"},
		{"cnpj", "12.345.678/0001-90", Spec{Type: "format_document", Pattern: PatternCNPJ}, "12345678000190"},
		{"cep", "01310-100", Spec{Type: "format_document", Pattern: PatternCEP}, "01310100"},
		{"phone document", "(11) 99999-8888", Spec{Type: "format_document", Pattern: PatternPhone}, "11999998888"},
		{"default document", "12 34-5.6", Spec{Type: "format_document"}, "123456"},
		{"document rejects list", []any{"1"}, Spec{Type: "format_document"}, []any{"1"}},

		{"concat skips blanks", []any{"Rua A", "", "  ", nil, "123"}, Spec{Type: "concat", Separator: ", "}, "Rua A, 123"},
		{"concat strings", []string{"a", "b"}, Spec{Type: "concat", Separator: "-"}, "a-b"},
		{"concat scalar unchanged", "abc", Spec{Type: "concat", Separator: "-"}, "abc"},

		{"area code", "+5511999998888", Spec{Type: "phone_split", Operation: OpExtractAreaCode}, "11"},
		{"phone number", "+5511999998888", Spec{Type: "phone_split", Operation: OpExtractPhoneNumber}, "999998888"},
		{"country code", "+55 11 9999-8888", Spec{Type: "phone_split", Operation: OpExtractCountryCode}, "55"},
		{"phone parts", "+55 (11) 99999-8888", Spec{Type: "phone_split"}, map[string]any{
			"countryCode": "55", "areaCode": "11", "phoneNumber": "999998888",
		}},
		{"phone dashes", "+55-21-3333-4444", Spec{Type: "phone_split", Operation: OpExtractPhoneNumber}, "33334444"},
		{"phone unrecognized", "12345", Spec{Type: "phone_split", Operation: OpExtractAreaCode}, "12345"},

		{"first name", "Maria da Silva", Spec{Type: "name_split", Operation: OpSplitFirstName}, "Maria"},
		{"last name", "Maria da Silva", Spec{Type: "name_split", Operation: OpSplitLastName}, "da Silva"},
		{"single token last name", "Maria", Spec{Type: "name_split", Operation: OpSplitLastName}, ""},
		{"name parts", "  Ana   Souza ", Spec{Type: "name_split"}, map[string]any{"firstName": "Ana", "lastName": "Souza"}},

		{"string to number", "42.5", Spec{Type: "convert", Operation: OpStringToNumber}, 42.5},
		{"string to number fallback", "abc", Spec{Type: "convert", Operation: OpStringToNumber}, "abc"},
		{"string to number NaN", "NaN", Spec{Type: "convert", Operation: OpStringToNumber}, "NaN"},
		{"string to number infinity", "inf", Spec{Type: "convert", Operation: OpStringToNumber}, "inf"},
		{"string to number Infinity", "Infinity", Spec{Type: "convert", Operation: OpStringToNumber}, "Infinity"},
		{"string to number overflow", "1e999", Spec{Type: "convert", Operation: OpStringToNumber}, "1e999"},
		{"string to number hex float", "0x1p4", Spec{Type: "convert", Operation: OpStringToNumber}, "0x1p4"},
		{"string to number trailing text", "12abc", Spec{Type: "convert", Operation: OpStringToNumber}, "12abc"},
		{"string to number padded", " 7 ", Spec{Type: "convert", Operation: OpStringToNumber}, 7.0},
		{"string to number leading dot", "-.5e1", Spec{Type: "convert", Operation: OpStringToNumber}, -5.0},
		{"number to string", 12, Spec{Type: "convert", Operation: OpNumberToString}, "12"},
		{"float to string", 3.5, Spec{Type: "convert", Operation: OpNumberToString}, "3.5"},
		{"sim is true", "Sim", Spec{Type: "convert", Operation: OpStringToBoolean}, true},
		{"one is true", "1", Spec{Type: "convert", Operation: OpStringToBoolean}, true},
		{"no is false", "no", Spec{Type: "convert", Operation: OpStringToBoolean}, false},
		{"boolean to string", true, Spec{Type: "convert", Operation: OpBooleanToString}, "true"},
		{"unknown convert op", "x", Spec{Type: "convert", Operation: "explode"}, "x"},

		{"upper", "abc", Spec{Type: "normalize", Operation: OpUpperCase}, "ABC"},
		{"lower", "ABC", Spec{Type: "normalize", Operation: OpLowerCase}, "abc"},
		{"title", "joão DA silva", Spec{Type: "normalize", Operation: OpTitleCase}, "João Da Silva"},
		{"accents", "José Conceição", Spec{Type: "normalize", Operation: OpRemoveAccents}, "Jose Conceicao"},

		{"iso to dmy", "2024-01-15", Spec{Type: "format_date", OutputFormat: DateDMY}, "15/01/2024"},
		{"dmy to ymd", "15/01/2024", Spec{Type: "format_date", OutputFormat: DateYMD}, "2024-01-15"},
		{"to mdy", "2024-01-15T10:30:00Z", Spec{Type: "format_date", OutputFormat: DateMDY}, "01/15/2024"},
		{"to iso", "2024-01-15", Spec{Type: "format_date", OutputFormat: DateISO}, "2024-01-15T00:00:00.000Z"},
		{"time value", time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC), Spec{Type: "format_date", OutputFormat: DateDMY}, "02/05/2023"},
		{"invalid date", "not a date", Spec{Type: "format_date", OutputFormat: DateDMY}, "not a date"},
		{"impossible date", "2024-02-30", Spec{Type: "format_date", OutputFormat: DateDMY}, "2024-02-30"},
		{"unsupported output", "2024-01-15", Spec{Type: "format_date", OutputFormat: "yyyy"}, "2024-01-15"},

		{"gender hit", "M", Spec{Type: "gender_code", Mapping: gender}, "1"},
		{"gender miss", "X", Spec{Type: "gender_code", Mapping: gender}, "X"},
		{"country", "Brasil", Spec{Type: "country_code", Mapping: map[string]any{"Brasil": "BR"}}, "BR"},
		{"numeric key", 3.0, Spec{Type: "code_lookup", Mapping: map[string]any{"3": "three"}}, "three"},
		{"no table", "M", Spec{Type: "code_lookup"}, "M"},

		{"unknown kind", "abc", Spec{Type: "reverse"}, "abc"},
		{"empty kind", "abc", Spec{}, "abc"},
		{"nil input", nil, Spec{Type: "format_document"}, nil},
	}

	engine := NewEngine(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.Apply(tt.value, tt.spec))
		})
	}
}

func TestApply_NeverPanics(t *testing.T) {
	inputs := []any{
		nil, "", "   ", "x", 42, -1.5, math.NaN(), math.Inf(1), true,
		[]any{}, []any{nil, 1, map[string]any{}}, []string{"a"},
		map[string]any{"a": 1}, struct{ A int }{1}, make(chan int),
	}
	ops := []string{
		"", OpExtractAreaCode, OpSplitLastName, OpStringToNumber, OpNumberToString,
		OpStringToBoolean, OpBooleanToString, OpTitleCase, OpRemoveAccents,
	}

	engine := NewEngine(nil)

	for _, kind := range append(Kinds(), KindUnknown) {
		for _, op := range ops {
			spec := Spec{Type: kind.Name(), Operation: op, OutputFormat: DateISO, Pattern: "weird",
				Mapping: map[string]any{"x": "y"}}
			for _, in := range inputs {
				assert.NotPanics(t, func() {
					engine.Apply(in, spec)
				}, "kind %s op %q input %#v", kind, op, in)
				assert.True(t, engine.Validate(in, spec))
			}
		}
	}
}

func TestApply_IsPure(t *testing.T) {
	spec := Spec{Type: "phone_split"}
	first := Apply("+5511999998888", spec)

	for range 5 {
		assert.Equal(t, first, Apply("+5511999998888", spec))
	}
}

func TestApplyAll_FoldsLeftToRight(t *testing.T) {
	specs := []Spec{
		{Type: "name_split", Operation: OpSplitLastName},
		{Type: "normalize", Operation: OpRemoveAccents},
		{Type: "normalize", Operation: OpUpperCase},
	}

	assert.Equal(t, "DA CONCEICAO", ApplyAll("Maria da Conceição", specs))
	assert.Equal(t, "x", ApplyAll("x", nil))
}

func TestPreview(t *testing.T) {
	engine := NewEngine(nil)

	p := engine.Preview("123.456.789-00", Spec{Type: "format_document", Pattern: PatternCPF})
	assert.Equal(t, Preview{Input: "123.456.789-00", Output: "12345678900"}, p)

	p = engine.Preview("+5511999998888", Spec{Type: "phone_split"})
	assert.Equal(t, "+5511999998888", p.Input)
	assert.JSONEq(t, `{"areaCode":"11","countryCode":"55","phoneNumber":"999998888"}`, p.Output)

	p = engine.Preview(7)
	assert.Equal(t, Preview{Input: "7", Output: "7"}, p)
}

func TestSplitPhone(t *testing.T) {
	parts, ok := SplitPhone(" +5521988887777 ")
	require.True(t, ok)
	assert.Equal(t, PhoneParts{CountryCode: "55", AreaCode: "21", PhoneNumber: "988887777"}, parts)

	_, ok = SplitPhone("+1 415 555 0100")
	assert.False(t, ok)
}
