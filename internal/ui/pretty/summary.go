package pretty

import (
	"fmt"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/diag"
)

// FormatSummaryOneLine formats a parse result as a single line.
// Example: "3 problems (2 errors, 1 warning)".
func (s *Styles) FormatSummaryOneLine(diags diag.List) string {
	if len(diags) == 0 {
		return s.Success.Render("No problems found") + "\n"
	}

	counts := diags.CountBySeverity()

	problemWord := "problems"
	if len(diags) == 1 {
		problemWord = "problem"
	}

	var severityParts []string
	if errors := counts[diag.SeverityError]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(plural(errors, "error")))
	}
	if warnings := counts[diag.SeverityWarning]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(plural(warnings, "warning")))
	}
	if infos := counts[diag.SeverityInfo]; infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	line := fmt.Sprintf("%d %s", len(diags), problemWord)
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}

	return s.Failure.Render(line) + "\n"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
