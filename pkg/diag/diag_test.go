package diag

import (
	"testing"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

func TestNew_DefaultSeverities(t *testing.T) {
	tests := []struct {
		kind Kind
		want Severity
	}{
		{LexError, SeverityError},
		{UnexpectedToken, SeverityError},
		{UnclosedDelimiter, SeverityError},
		{InvalidNesting, SeverityWarning},
		{IncludeDepthExceeded, SeverityError},
		{IncludeNotFound, SeverityError},
		{IncludePathViolation, SeverityError},
		{CircularAttributeReference, SeverityError},
		{UndefinedAttribute, SeverityWarning},
		{SectionNestingViolation, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d := New(tt.kind, adast.Span{}, "msg").Build()
			if d.Severity != tt.want {
				t.Errorf("severity = %v, want %v", d.Severity, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	span := adast.Span{Start: 3, End: 9}
	d := New(UnclosedDelimiter, span, "block is never closed").
		WithSeverity(SeverityWarning).
		WithLabel("opened here", adast.Span{Start: 0, End: 4}).
		Build()

	if d.Kind != UnclosedDelimiter {
		t.Errorf("kind = %v", d.Kind)
	}
	if d.Severity != SeverityWarning {
		t.Errorf("severity = %v, want the override", d.Severity)
	}
	if d.Span != span {
		t.Errorf("span = %+v, want %+v", d.Span, span)
	}
	if len(d.Related) != 1 || d.Related[0].Message != "opened here" {
		t.Errorf("related = %+v", d.Related)
	}
	if d.IsError() {
		t.Error("IsError() should follow the overridden severity")
	}
}

func TestList_Sort(t *testing.T) {
	list := List{
		New(LexError, adast.Span{Start: 20, End: 21}, "c").Build(),
		New(LexError, adast.Span{Start: 5, End: 9}, "a").Build(),
		New(LexError, adast.Span{Start: 5, End: 6}, "b").Build(),
	}

	list.Sort()

	if list[0].Message != "b" || list[1].Message != "a" || list[2].Message != "c" {
		t.Errorf("sorted order wrong: %q %q %q",
			list[0].Message, list[1].Message, list[2].Message)
	}
}

func TestList_HasErrorsAndCounts(t *testing.T) {
	var empty List
	if empty.HasErrors() {
		t.Error("empty list has no errors")
	}

	list := List{
		New(UnclosedDelimiter, adast.Span{}, "e").Build(),
		New(UndefinedAttribute, adast.Span{}, "w1").Build(),
		New(UndefinedAttribute, adast.Span{}, "w2").Build(),
	}

	if !list.HasErrors() {
		t.Error("expected HasErrors to report the error")
	}

	counts := list.CountBySeverity()
	if counts[SeverityError] != 1 || counts[SeverityWarning] != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestList_Filter(t *testing.T) {
	list := List{
		New(LexError, adast.Span{}, "a").Build(),
		New(UnclosedDelimiter, adast.Span{}, "b").Build(),
		New(LexError, adast.Span{}, "c").Build(),
	}

	lex := list.Filter(LexError)
	if len(lex) != 2 {
		t.Fatalf("Filter returned %d, want 2", len(lex))
	}
	for _, d := range lex {
		if d.Kind != LexError {
			t.Errorf("filtered kind = %v", d.Kind)
		}
	}

	if got := list.Filter(IncludeNotFound); len(got) != 0 {
		t.Errorf("Filter for an absent kind returned %d entries", len(got))
	}
}
