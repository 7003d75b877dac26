// Package diag defines the diagnostic records produced by the tokenizer,
// parser, and validator, together with the error taxonomy and the ordered
// collection returned to callers.
package diag

import (
	"sort"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

// Kind is the stable error-kind tag of a diagnostic.
type Kind string

// The full error taxonomy. Every diagnostic carries exactly one kind.
const (
	LexError                   Kind = "lex-error"
	UnexpectedToken            Kind = "unexpected-token"
	UnclosedDelimiter          Kind = "unclosed-delimiter"
	InvalidNesting             Kind = "invalid-nesting"
	IncludeDepthExceeded       Kind = "include-depth-exceeded"
	IncludeNotFound            Kind = "include-not-found"
	IncludePathViolation       Kind = "include-path-violation"
	CircularAttributeReference Kind = "circular-attribute-reference"
	UndefinedAttribute         Kind = "undefined-attribute"
	SectionNestingViolation    Kind = "section-nesting-violation"
)

// Severity indicates the importance of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Label is a secondary span with an explanatory message, e.g. the opening
// delimiter of an unclosed block.
type Label struct {
	Message string
	Span    adast.Span
}

// Diagnostic is one self-contained error or warning record. A caller can
// render it without re-walking the AST.
type Diagnostic struct {
	// Kind is the stable error-kind tag.
	Kind Kind

	// Severity indicates the importance of the diagnostic.
	Severity Severity

	// Message is the human-readable description.
	Message string

	// Span is the primary source location.
	Span adast.Span

	// Related holds zero or more secondary labeled spans.
	Related []Label
}

// IsError returns true if the diagnostic severity is error.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// List is the ordered collection of diagnostics accumulated across the
// tokenizer, parser, and validator stages.
type List []Diagnostic

// Sort orders the list by primary span start position, then by end.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Span.Start != l[j].Span.Start {
			return l[i].Span.Start < l[j].Span.Start
		}
		return l[i].Span.End < l[j].Span.End
	})
}

// HasErrors returns true if any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.IsError() {
			return true
		}
	}
	return false
}

// CountBySeverity returns the number of diagnostics per severity.
func (l List) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range l {
		counts[d.Severity]++
	}
	return counts
}

// Filter returns the diagnostics matching kind.
func (l List) Filter(kind Kind) List {
	var out List
	for _, d := range l {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
