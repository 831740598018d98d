package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"hrbridge/internal/common"
)

// Diagnostics holds all diagnostic information produced while resolving or compiling mappings.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Infos    []Diagnostic `json:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// SourcePath identifies the source field this relates to (if any).
	SourcePath string `json:"sourcePath,omitempty"`
	// TargetPath identifies the destination path this relates to (if any).
	TargetPath string `json:"targetPath,omitempty"`
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// Codes shared across packages.
const (
	CodeAIFallback            = "ai_fallback"
	CodeCoverageGap           = "coverage_gap"
	CodeUnknownTransformation = "unknown_transformation"
	CodeTargetCollision       = "target_collision"
	CodeMissingSample         = "missing_sample"
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText renders the severity by name.
func (s DiagnosticSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, sourcePath, targetPath string) {
	diag := Diagnostic{
		Severity:   sev,
		Code:       code,
		Message:    message,
		SourcePath: sourcePath,
		TargetPath: targetPath,
	}

	switch sev {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError records an error.
func (d *Diagnostics) AddError(code, message, sourcePath, targetPath string) {
	d.add(DiagnosticError, code, message, sourcePath, targetPath)
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message, sourcePath, targetPath string) {
	d.add(DiagnosticWarning, code, message, sourcePath, targetPath)
}

// AddInfo records an info.
func (d *Diagnostics) AddInfo(code, message, sourcePath, targetPath string) {
	d.add(DiagnosticInfo, code, message, sourcePath, targetPath)
}

// All returns every diagnostic, most severe first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarning reports whether a warning with the given code was recorded.
func (d *Diagnostics) HasWarning(code string) bool {
	return slices.ContainsFunc(d.Warnings, func(w Diagnostic) bool { return w.Code == code })
}

// Merge appends other's diagnostics to d.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid reports whether no error was recorded.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error joins the error diagnostics into one error, or returns nil.
func (d *Diagnostics) Error() error {
	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.SourcePath != "" {
		prefix = append(prefix, d.SourcePath)
	}

	if d.TargetPath != "" {
		prefix = append(prefix, "-> "+d.TargetPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
