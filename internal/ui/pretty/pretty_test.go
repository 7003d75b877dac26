package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intergrado-cg/doctora/internal/ui/pretty"
	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

func plainStyles() *pretty.Styles {
	return pretty.NewStyles(false)
}

func TestFormatDiagnostic(t *testing.T) {
	src := adast.NewSource("doc.adoc", []byte("first line\nsecond line\n"))
	d := diag.New(diag.UnexpectedToken, adast.Span{Start: 11, End: 17}, "something is off").Build()

	out := plainStyles().FormatDiagnostic(d, src, false, 0)

	assert.Contains(t, out, "doc.adoc:2:1")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "something is off")
	assert.Contains(t, out, "(unexpected-token)")
	assert.NotContains(t, out, "second line", "context disabled")
}

func TestFormatDiagnostic_SourceContextAndCaret(t *testing.T) {
	src := adast.NewSource("doc.adoc", []byte("abc def\n"))
	d := diag.New(diag.LexError, adast.Span{Start: 4, End: 7}, "bad run").Build()

	out := plainStyles().FormatDiagnostic(d, src, true, 0)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t, "        abc def", lines[1])
	assert.Equal(t, "        "+strings.Repeat(" ", 4)+"^", lines[2])
}

func TestFormatDiagnostic_Labels(t *testing.T) {
	src := adast.NewSource("", []byte("----\ncontent\n"))
	d := diag.New(diag.UnclosedDelimiter, adast.Span{Start: 5, End: 12}, "never closed").
		WithLabel("opened here", adast.Span{Start: 0, End: 4}).
		Build()

	out := plainStyles().FormatDiagnostic(d, src, false, 0)

	assert.Contains(t, out, "note: opened here (<input>:1:1)")
	assert.Contains(t, out, "<input>:2:1")
}

func TestFormatSourceContext_Truncation(t *testing.T) {
	long := strings.Repeat("x", 120)
	src := adast.NewSource("doc.adoc", []byte(long+"\n"))

	out := plainStyles().FormatSourceContext(src, 1, 1, 40)
	firstLine, _, _ := strings.Cut(out, "\n")

	assert.Len(t, firstLine, 40)
	assert.True(t, strings.HasSuffix(firstLine, "..."))
}

func TestFormatSeverity(t *testing.T) {
	s := plainStyles()
	assert.Equal(t, "error", s.FormatSeverity(diag.SeverityError))
	assert.Equal(t, "warning", s.FormatSeverity(diag.SeverityWarning))
	assert.Equal(t, "info", s.FormatSeverity(diag.SeverityInfo))
}

func TestFormatSummaryOneLine(t *testing.T) {
	s := plainStyles()

	assert.Equal(t, "No problems found\n", s.FormatSummaryOneLine(nil))

	one := diag.List{
		diag.New(diag.UndefinedAttribute, adast.Span{}, "w").Build(),
	}
	assert.Equal(t, "1 problem (1 warning)\n", s.FormatSummaryOneLine(one))

	three := diag.List{
		diag.New(diag.LexError, adast.Span{}, "a").Build(),
		diag.New(diag.UnclosedDelimiter, adast.Span{}, "b").Build(),
		diag.New(diag.UndefinedAttribute, adast.Span{}, "c").Build(),
	}
	assert.Equal(t, "3 problems (2 errors, 1 warning)\n", s.FormatSummaryOneLine(three))
}

func TestTerminalWidth_Fallback(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf, 100))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is not a TTY")
}
