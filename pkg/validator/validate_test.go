package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intergrado-cg/doctora/pkg/diag"
	"github.com/intergrado-cg/doctora/pkg/parser"
	"github.com/intergrado-cg/doctora/pkg/validator"
)

func TestValidate_UndefinedAttribute(t *testing.T) {
	doc, parseDiags := parser.ParseWithOptions([]byte("Version {never} here.\n"), parser.Options{})
	assert.Empty(t, parseDiags, "an undefined reference is not a parse error")

	diags := validator.Validate(doc, doc.Doc.Attributes, parser.Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UndefinedAttribute, diags[0].Kind)
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, `"never"`)
}

func TestValidate_ForwardReferenceDoesNotWarn(t *testing.T) {
	content := "Uses {later} early.\n\n:later: defined now\n"
	doc, _ := parser.ParseWithOptions([]byte(content), parser.Options{})

	diags := validator.Validate(doc, doc.Doc.Attributes, parser.Options{})
	assert.Empty(t, diags, "the final attribute table defines the name")
}

func TestValidate_UnsetAttributeWarns(t *testing.T) {
	content := "{flag} text\n\n:flag!:\n"
	doc, _ := parser.ParseWithOptions([]byte(content), parser.Options{})

	diags := validator.Validate(doc, doc.Doc.Attributes, parser.Options{})
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UndefinedAttribute, diags[0].Kind)
}

func TestValidate_SectionDepth(t *testing.T) {
	content := "= Doc\n\n== Two\n"
	doc, _ := parser.ParseWithOptions([]byte(content), parser.Options{})

	diags := validator.Validate(doc, doc.Doc.Attributes, parser.Options{MaxSectionDepth: 1})
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SectionNestingViolation, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "level 2")

	diags = validator.Validate(doc, doc.Doc.Attributes, parser.Options{MaxSectionDepth: 2})
	assert.Empty(t, diags)
}

// A document parsed with a permissive reader and no safe mode can still be
// validated against a stricter policy afterwards.
func TestValidate_IncludePathViolation(t *testing.T) {
	failing := parser.FuncFileReader(func(path string) ([]byte, error) {
		return nil, errors.New("unavailable")
	})
	doc, _ := parser.ParseWithOptions([]byte("include::../escape.adoc[]\n"), parser.Options{
		FileReader: failing,
	})

	diags := validator.Validate(doc, doc.Doc.Attributes, parser.Options{
		BaseDir:  "/docs",
		SafeMode: true,
	})
	require.Len(t, diags, 1)
	assert.Equal(t, diag.IncludePathViolation, diags[0].Kind)
}

func TestValidate_ResolvedIncludeSkipsPathCheck(t *testing.T) {
	reader := parser.FuncFileReader(func(path string) ([]byte, error) {
		return []byte("content\n"), nil
	})
	doc, _ := parser.ParseWithOptions([]byte("include::child.adoc[]\n"), parser.Options{
		FileReader: reader,
	})

	diags := validator.Validate(doc, doc.Doc.Attributes, parser.Options{
		BaseDir:  "/docs",
		SafeMode: true,
	})
	assert.Empty(t, diags)
}
