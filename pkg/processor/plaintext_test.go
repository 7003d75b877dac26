package processor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/parser"
	"github.com/intergrado-cg/doctora/pkg/processor"
)

func renderPlain(t *testing.T, content string) string {
	t.Helper()
	doc, diags := parser.ParseWithOptions([]byte(content), parser.Options{})
	require.False(t, diags.HasErrors(), "input must parse cleanly: %v", diags)

	registry := processor.DefaultRegistry()
	shared := &processor.Shared{
		Source:   adast.NewSource("test.adoc", []byte(content)),
		Registry: registry,
	}
	out, err := registry.Process("plain", doc, shared)
	require.NoError(t, err)
	return string(out)
}

func TestPlainText_Document(t *testing.T) {
	content := "= Title\n\nHello *world*.\n\n* one\n* two\n\n----\ncode here\n----\n"
	want := "Title\n\nHello world.\n\n- one\n- two\n\ncode here\n\n"

	assert.Equal(t, want, renderPlain(t, content))
}

func TestPlainText_SectionAndAttrRef(t *testing.T) {
	content := ":product: doctora\n\n== About\n\nUse {product}.\n"
	out := renderPlain(t, content)

	assert.Contains(t, out, "About\n")
	assert.Contains(t, out, "Use doctora.\n")
}

func TestPlainText_NestedList(t *testing.T) {
	content := "* top\n** inner\n* next\n"
	want := "- top\n  - inner\n- next\n\n"

	assert.Equal(t, want, renderPlain(t, content))
}

func TestPlainText_Table(t *testing.T) {
	content := "|===\n| a | b\n| c | d\n|===\n"
	out := renderPlain(t, content)

	assert.Contains(t, out, "a | b\n")
	assert.Contains(t, out, "c | d\n")
}

func TestPlainText_CommentBlockSkipped(t *testing.T) {
	content := "before\n\n////\nhidden\n////\n\nafter\n"
	out := renderPlain(t, content)

	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "before\n")
	assert.Contains(t, out, "after\n")
}

func TestPlainText_LinkText(t *testing.T) {
	content := "Browse https://example.com[the site].\n"
	assert.Equal(t, "Browse the site.\n\n", renderPlain(t, content))
}

func TestPlainText_BareLinkKeepsURL(t *testing.T) {
	content := "Browse https://example.com today.\n"
	out := renderPlain(t, content)

	assert.Contains(t, out, "https://example.com")
}

func TestRegistry_Lookup(t *testing.T) {
	registry := processor.DefaultRegistry()

	p, ok := registry.Lookup("plain")
	require.True(t, ok)
	assert.True(t, p.Identify("plain"))

	_, ok = registry.Lookup("pdf")
	assert.False(t, ok)
}

func TestRegistry_UnknownFormat(t *testing.T) {
	registry := processor.NewRegistry()
	_, err := registry.Process("plain", adast.NewDocument(), &processor.Shared{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `format "plain"`)
}

// stubProcessor identifies with every format and fails on purpose.
type stubProcessor struct{}

func (stubProcessor) Identify(string) bool { return true }

func (stubProcessor) Process(*adast.Node, *processor.Shared) ([]byte, error) {
	return nil, errors.New("stub")
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	registry := processor.DefaultRegistry()
	registry.Register(stubProcessor{})

	_, err := registry.Process("plain", adast.NewDocument(), &processor.Shared{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stub")
}
