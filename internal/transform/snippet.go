package transform

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
)

// SourceParam is the integration parameter holding the source payload.
const SourceParam = "sourcePayload"

const formatDocumentSnippet = `result = String(value).replace(new RegExp({{lit .pattern}}, "g"), "");`

const concatSnippet = `if (Array.isArray(value)) {
  result = value.filter(function (p) {
    return p !== null && p !== undefined && String(p).trim() !== "";
  }).map(String).join({{lit .sep}});
} else {
  result = value;
}`

const phoneSplitSnippet = `var patterns = {{lit .patterns}};
var text = String(value).trim();
result = value;
for (var p = 0; p < patterns.length; p++) {
  var m = new RegExp(patterns[p]).exec(text);
  if (m) {
{{- if eq .op "extract_area_code"}}
    result = m[1];
{{- else if eq .op "extract_phone_number"}}
    result = m.slice(2).join("");
{{- else if eq .op "extract_country_code"}}
    result = {{lit .country}};
{{- else}}
    result = { countryCode: {{lit .country}}, areaCode: m[1], phoneNumber: m.slice(2).join("") };
{{- end}}
    break;
  }
}`

const nameSplitSnippet = `if (typeof value !== "string") {
  result = value;
} else {
  var tokens = value.trim().split(/\s+/).filter(function (t) {
    return t !== "";
  });
  var first = tokens.length > 0 ? tokens[0] : "";
  var last = tokens.slice(1).join(" ");
{{- if eq .op "split_first_name"}}
  result = first;
{{- else if eq .op "split_last_name"}}
  result = last;
{{- else}}
  result = { firstName: first, lastName: last };
{{- end}}
}`

const convertSnippet = `
{{- if eq .op "string_to_number"}}
var s = String(value).trim();
var n = typeof value === "number" ? value : (new RegExp({{lit .decimal}}).test(s) ? Number(s) : NaN);
result = isFinite(n) ? n : value;
{{- else if eq .op "number_to_string"}}
result = typeof value === "number" ? String(value) : value;
{{- else if eq .op "string_to_boolean"}}
result = typeof value === "boolean" ? value : {{lit .truthy}}.indexOf(String(value).trim().toLowerCase()) >= 0;
{{- else if eq .op "boolean_to_string"}}
result = typeof value === "boolean" ? String(value) : value;
{{- else}}
result = value;
{{- end}}`

const normalizeSnippet = `if (typeof value !== "string") {
  result = value;
} else {
{{- if eq .op "upper_case"}}
  result = value.toUpperCase();
{{- else if eq .op "lower_case"}}
  result = value.toLowerCase();
{{- else if eq .op "title_case"}}
  result = value.split(" ").map(function (w) {
    return w.charAt(0).toUpperCase() + w.slice(1).toLowerCase();
  }).join(" ");
{{- else if eq .op "remove_accents"}}
  result = value.normalize("NFD").replace(/[\u0300-\u036f]/g, "");
{{- else}}
  result = value;
{{- end}}
}`

const formatDateSnippet = `var m = /^(\d{2})\/(\d{2})\/(\d{4})$/.exec(String(value).trim());
var d = m ? new Date(Date.UTC(+m[3], +m[2] - 1, +m[1])) : new Date(value);
if (isNaN(d.getTime())) {
  result = value;
} else {
  var dd = ("0" + d.getUTCDate()).slice(-2);
  var mm = ("0" + (d.getUTCMonth() + 1)).slice(-2);
  var yyyy = String(d.getUTCFullYear());
{{- if eq .format "dd/MM/yyyy"}}
  result = dd + "/" + mm + "/" + yyyy;
{{- else if eq .format "yyyy-MM-dd"}}
  result = yyyy + "-" + mm + "-" + dd;
{{- else if eq .format "MM/dd/yyyy"}}
  result = mm + "/" + dd + "/" + yyyy;
{{- else if eq .format "ISO"}}
  result = d.toISOString();
{{- else}}
  result = value;
{{- end}}
}`

const lookupSnippet = `var table = {{lit .table}};
var key = String(value);
result = Object.prototype.hasOwnProperty.call(table, key) ? table[key] : value;`

const identitySnippet = `result = value;`

var scriptTemplate = template.Must(template.New("script").Funcs(snippetFuncs).Parse(
	`function executeScript(event) {
  var source = event.getParameter({{lit .InputParam}});
  var path = {{lit .InputPath}}.split(".");
  var value = source;
  for (var i = 0; i < path.length; i++) {
    if (value === null || value === undefined) {
      break;
    }
    value = value[path[i]];
  }
  var result;
  if (value === null || value === undefined) {
    result = {{.Default}};
  } else {
{{.Body}}
  }
  event.setParameter({{lit .VarName}}, result);
}
`))

var snippetFuncs = template.FuncMap{
	"lit": jsLiteral,
}

var bodyTemplates = func() map[Kind]*template.Template {
	compiled := make(map[Kind]*template.Template, len(table)+1)
	for kind, e := range table {
		compiled[kind] = template.Must(template.New(kind.Name()).Funcs(snippetFuncs).Parse(e.snippet))
	}

	compiled[KindUnknown] = template.Must(template.New("identity").Parse(identitySnippet))

	return compiled
}()

type scriptData struct {
	InputParam string
	InputPath  string
	VarName    string
	Default    string
	Body       string
}

// Snippet renders a self-contained script that reads inputPath from the
// source payload, applies spec, and writes the result to varName. Absent or
// null input yields the kind's zero value. known is false when spec's kind
// is unsupported; the script then copies the value through unchanged.
func Snippet(spec Spec, inputPath, varName string) (code string, known bool) {
	kind := spec.Kind()
	known = kind.IsKnown()

	body, err := renderBody(kind, spec)
	if err != nil {
		body, known = identitySnippet, false
	}

	var buf bytes.Buffer

	err = scriptTemplate.Execute(&buf, scriptData{
		InputParam: SourceParam,
		InputPath:  inputPath,
		VarName:    varName,
		Default:    nullDefault(kind, spec),
		Body:       indent(body, "    "),
	})
	if err != nil {
		return "", false
	}

	return buf.String(), known
}

func renderBody(kind Kind, spec Spec) (string, error) {
	tmpl, ok := bodyTemplates[kind]
	if !ok {
		tmpl = bodyTemplates[KindUnknown]
	}

	var buf bytes.Buffer

	err := tmpl.Execute(&buf, map[string]any{
		"op":       spec.Operation,
		"sep":      spec.Separator,
		"pattern":  documentPattern(spec.Pattern),
		"patterns": phonePatterns,
		"country":  brazilCountryCode,
		"truthy":   truthyWords,
		"decimal":  decimalSyntax,
		"format":   spec.OutputFormat,
		"table":    lookupTable(spec.Mapping),
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

// nullDefault is the script literal used when the input path is absent.
func nullDefault(kind Kind, spec Spec) string {
	if kind == KindConvert {
		switch spec.Operation {
		case OpStringToNumber:
			return "0"
		case OpStringToBoolean:
			return "false"
		}
	}

	return `""`
}

func lookupTable(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}

	return m
}

// jsLiteral renders v as a script literal. JSON is a subset of the
// runtime's literal syntax.
func jsLiteral(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}

	return string(b)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}
