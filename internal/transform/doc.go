// Package transform implements value-level conversions applied to mapped
// fields and the snippet generator that expresses the same conversions in
// the integration runtime's scripting language.
//
// Every transformation kind owns exactly one entry in the dispatch table:
// the Go function used to pre-apply it to sample data and live previews, and
// the snippet template compiled into task graphs. Keeping both in one entry
// prevents the two renditions from drifting apart.
//
// Apply is total: malformed input or an unsupported kind returns the input
// value unchanged.
//
// Supported kinds:
//   - format_document: strip punctuation from cpf, cnpj, phone, cep values
//   - concat: join non-blank array entries with a separator
//   - phone_split: decompose Brazilian phone numbers
//   - name_split: first name / remaining names
//   - convert: string/number/boolean conversions
//   - normalize: case changes and accent removal
//   - format_date: reformat a date into dd/MM/yyyy, yyyy-MM-dd, MM/dd/yyyy or ISO
//   - country_code, gender_code, code_lookup: caller-supplied table lookups
package transform
