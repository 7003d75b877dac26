package diag

import "github.com/intergrado-cg/doctora/pkg/adast"

// defaultSeverity maps each kind to its default severity.
// UndefinedAttribute is a warning by default; it never blocks a parse.
var defaultSeverity = map[Kind]Severity{
	LexError:                   SeverityError,
	UnexpectedToken:            SeverityError,
	UnclosedDelimiter:          SeverityError,
	InvalidNesting:             SeverityWarning,
	IncludeDepthExceeded:       SeverityError,
	IncludeNotFound:            SeverityError,
	IncludePathViolation:       SeverityError,
	CircularAttributeReference: SeverityError,
	UndefinedAttribute:         SeverityWarning,
	SectionNestingViolation:    SeverityWarning,
}

// Builder helps construct Diagnostic values.
type Builder struct {
	d Diagnostic
}

// New starts building a diagnostic of the given kind at span.
// The severity defaults by kind and can be overridden.
func New(kind Kind, span adast.Span, message string) *Builder {
	sev, ok := defaultSeverity[kind]
	if !ok {
		sev = SeverityError
	}
	return &Builder{
		d: Diagnostic{
			Kind:     kind,
			Severity: sev,
			Message:  message,
			Span:     span,
		},
	}
}

// WithSeverity overrides the default severity.
func (b *Builder) WithSeverity(s Severity) *Builder {
	b.d.Severity = s
	return b
}

// WithLabel attaches a secondary labeled span.
func (b *Builder) WithLabel(message string, span adast.Span) *Builder {
	b.d.Related = append(b.d.Related, Label{Message: message, Span: span})
	return b
}

// Build returns the constructed Diagnostic.
func (b *Builder) Build() Diagnostic {
	return b.d
}
