package cli

import (
	"errors"

	"github.com/intergrado-cg/doctora/pkg/diag"
)

// Exit codes for doctora.
const (
	// ExitSuccess indicates a clean parse with no diagnostics.
	ExitSuccess = 0

	// ExitParseIssues indicates the parse completed but reported
	// diagnostics.
	ExitParseIssues = 1

	// ExitProcessingError indicates rendering or validation machinery
	// failed.
	ExitProcessingError = 2

	// ExitIOError indicates the input or config file could not be read.
	ExitIOError = 3
)

// ExitCodeFromDiagnostics determines the exit code from a diagnostic list.
// In strict mode warnings count as failures too.
func ExitCodeFromDiagnostics(diags diag.List, strict bool) int {
	if diags.HasErrors() {
		return ExitParseIssues
	}
	if strict && len(diags) > 0 {
		return ExitParseIssues
	}
	return ExitSuccess
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParseIssuesFound):
		return ExitParseIssues
	case errors.Is(err, ErrInputUnreadable):
		return ExitIOError
	default:
		return ExitProcessingError
	}
}
