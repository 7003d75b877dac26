// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldInput = "input"

	// Configuration fields.
	FieldFormat          = "format"
	FieldBaseDir         = "base_dir"
	FieldSafeMode        = "safe_mode"
	FieldMaxIncludeDepth = "max_include_depth"
	FieldMaxSectionDepth = "max_section_depth"

	// Statistics fields.
	FieldTokens           = "tokens"
	FieldNodes            = "nodes"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldErrors           = "errors"
	FieldWarnings         = "warnings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
