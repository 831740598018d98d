package transform

// Spec is a transformation request: a kind plus its kind-specific parameters.
// Type carries the wire name as received so unsupported kinds survive a
// round trip unchanged.
type Spec struct {
	Type         string         `json:"type" yaml:"type"`
	Operation    string         `json:"operation,omitempty" yaml:"operation,omitempty"`
	Pattern      string         `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Separator    string         `json:"separator,omitempty" yaml:"separator,omitempty"`
	OutputFormat string         `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty"`
	Mapping      map[string]any `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	Preview      *Preview       `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// Preview is a display-only input/output pair.
type Preview struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Of returns a Spec of the given kind with no parameters.
func Of(k Kind) Spec {
	return Spec{Type: k.Name()}
}

// Kind resolves the spec's wire name.
func (s Spec) Kind() Kind {
	return ParseKind(s.Type)
}

// Document operations.
const (
	PatternCPF   = "cpf"
	PatternCNPJ  = "cnpj"
	PatternPhone = "phone"
	PatternCEP   = "cep"
)

// Split operations.
const (
	OpExtractAreaCode    = "extract_area_code"
	OpExtractPhoneNumber = "extract_phone_number"
	OpExtractCountryCode = "extract_country_code"
	OpSplitFirstName     = "split_first_name"
	OpSplitLastName      = "split_last_name"
)

// Convert operations.
const (
	OpStringToNumber  = "string_to_number"
	OpNumberToString  = "number_to_string"
	OpStringToBoolean = "string_to_boolean"
	OpBooleanToString = "boolean_to_string"
)

// Normalize operations.
const (
	OpUpperCase     = "upper_case"
	OpLowerCase     = "lower_case"
	OpTitleCase     = "title_case"
	OpRemoveAccents = "remove_accents"
)

// Date output formats.
const (
	DateDMY = "dd/MM/yyyy"
	DateYMD = "yyyy-MM-dd"
	DateMDY = "MM/dd/yyyy"
	DateISO = "ISO"
)
