// Package mapping defines the mapping model shared by the matcher, the AI
// orchestrator and the integration compiler, plus a YAML/JSON loader for
// hand-authored mapping files.
//
// # File format
//
//	version: "1"
//	source: senior-hcm
//	mappings:
//	  - sourceField:
//	      name: cpf
//	      type: string
//	      path: employee.cpf
//	    targetPath: person.document
//	    transformation:
//	      type: format_document
//	      pattern: cpf
//	  - sourceField:
//	      name: email
//	      path: employee.contact.email
//	    targetPath: person.email
//	    confidence: 0.95
//	    reasoning: strong semantic match
//
// JSON documents with the same shape are accepted.
//
// # Path syntax
//
// Paths are dot-delimited addresses into a JSON tree: "employee.contact.email".
// Segments may be any non-empty key that does not contain a dot.
//
// # Confidence
//
// Confidence values leaving the matcher or the orchestrator are always in
// [0, 1]. See NormalizeConfidence for how raw model output is folded into
// that range.
package mapping
