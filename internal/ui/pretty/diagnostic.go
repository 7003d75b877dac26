package pretty

import (
	"fmt"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

// FormatDiagnostic formats a single diagnostic for terminal output:
// the path:line:col location, the styled severity and message, the source
// line with a caret under the offending span, and any secondary labels.
// width bounds the source context line; zero means unbounded.
func (s *Styles) FormatDiagnostic(d diag.Diagnostic, src *adast.Source, showContext bool, width int) string {
	var builder strings.Builder

	line, col := src.LineAt(d.Span.Start)
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(displayPath(src)),
		line,
		col,
	)

	kind := s.Kind.Render("(" + string(d.Kind) + ")")

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		kind,
	))

	if showContext {
		builder.WriteString(s.FormatSourceContext(src, line, col, width))
	}

	for _, label := range d.Related {
		labelLine, labelCol := src.LineAt(label.Span.Start)
		builder.WriteString(fmt.Sprintf("    %s %s %s\n",
			s.Dim.Render("note:"),
			s.Label.Render(label.Message),
			s.Location.Render(fmt.Sprintf("(%s:%d:%d)", displayPath(src), labelLine, labelCol)),
		))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev diag.Severity) string {
	switch sev {
	case diag.SeverityError:
		return s.Error.Render("error")
	case diag.SeverityWarning:
		return s.Warning.Render("warning")
	case diag.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker,
// truncating the line to the terminal width.
func (s *Styles) FormatSourceContext(src *adast.Source, line, col, width int) string {
	content := src.LineContent(line)
	if content == nil {
		return ""
	}

	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	text := string(content)
	if limit := width - len(indent); width > 0 && len(text) > limit && limit > 3 {
		text = text[:limit-3] + "..."
	}

	builder.WriteString(indent + s.SourceLine.Render(text) + "\n")

	if col > 0 {
		padding := indent + strings.Repeat(" ", col-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func displayPath(src *adast.Source) string {
	if src.Path == "" {
		return "<input>"
	}
	return src.Path
}
