package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"hrbridge/internal/analyze"
	"hrbridge/internal/mapping"
	"hrbridge/internal/transform"
)

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"json": toJSON,
}).Parse(`You are an HR data integration specialist. Map fields of the SOURCE system to the DESTINATION schema.

SOURCE FIELDS (dot paths, types and semantic tags):
{{json .SourceFields}}

SOURCE EXAMPLE PAYLOAD:
{{json .SourceSample}}

DESTINATION SCHEMA{{if .Batch}} (batch {{.Batch}}, {{len .Paths}} fields){{end}}:
{{json .Destination}}
{{- if .Rules}}

SEMANTIC RULES:
{{json .Rules}}
{{- end}}

Available transformations (set "transformation" only when the value must change):
{{- range .Transformations}}
- {{.}}
{{- end}}

Respond ONLY with a JSON array, no prose and no markdown. One element per mapping:
{"sourceField": "<source path>", "targetPath": "<destination path>", "transformation": {"type": "<name>", ...} or null, "confidence": <0-100>, "reasoning": "<short reason>"}

Use only source paths listed above. Use only these destination paths:
{{- range .Paths}}
- {{.}}
{{- end}}
`))

var transformationHelp = map[transform.Kind]string{
	transform.KindFormatDocument: `format_document {"pattern": "cpf|cnpj|phone|cep"}: strip punctuation`,
	transform.KindConcat:         `concat {"separator": " "}: join an array of strings`,
	transform.KindPhoneSplit:     `phone_split {"operation": "extract_area_code|extract_phone_number|extract_country_code"}`,
	transform.KindNameSplit:      `name_split {"operation": "split_first_name|split_last_name"}`,
	transform.KindConvert:        `convert {"operation": "string_to_number|number_to_string|string_to_boolean|boolean_to_string"}`,
	transform.KindNormalize:      `normalize {"operation": "upper_case|lower_case|title_case|remove_accents"}`,
	transform.KindFormatDate:     `format_date {"outputFormat": "dd/MM/yyyy|yyyy-MM-dd|MM/dd/yyyy|ISO"}`,
	transform.KindCountryCode:    `country_code {"mapping": {"<value>": "<code>"}}`,
	transform.KindGenderCode:     `gender_code {"mapping": {"<value>": "<code>"}}`,
	transform.KindCodeLookup:     `code_lookup {"mapping": {"<value>": "<code>"}}`,
}

type sourceField struct {
	Path string   `json:"path"`
	Type string   `json:"type,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

type promptData struct {
	SourceFields    []sourceField
	SourceSample    any
	Destination     map[string]any
	Rules           *mapping.SemanticRules
	Batch           int
	Paths           []string
	Transformations []string
}

// buildPrompt renders the request for the given destination paths. batch is
// the 1-based batch number, or 0 in direct mode.
func buildPrompt(req Request, paths []string, batch int) (string, error) {
	data := promptData{
		SourceSample: req.SourceSample,
		Destination:  req.Destination.SubSchema(paths),
		Batch:        batch,
		Paths:        paths,
	}

	if !req.Rules.IsEmpty() {
		data.Rules = &req.Rules
	}

	for _, path := range req.Source.Paths() {
		f, _ := req.Source.Field(path)
		data.SourceFields = append(data.SourceFields, sourceField{
			Path: f.Path,
			Type: typeName(f.Kind),
			Tags: f.Tags,
		})
	}

	for _, k := range transform.Kinds() {
		data.Transformations = append(data.Transformations, transformationHelp[k])
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	return buf.String(), nil
}

func typeName(k analyze.FieldKind) string {
	if k == analyze.FieldKindUnknown {
		return ""
	}

	return k.String()
}

func toJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}

	return string(b), nil
}
