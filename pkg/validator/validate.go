// Package validator runs read-only checks over a parsed document tree that
// need the final attribute table or configured limits: references to
// attributes that were never defined, section nesting beyond the configured
// depth, and include targets that escape the configured base directory.
package validator

import (
	"fmt"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
	"github.com/intergrado-cg/doctora/pkg/parser"
)

// Validate walks doc and returns diagnostics. It never modifies the tree.
// attrs is the document's final attribute table; an attribute reference is
// undefined only if its name is absent there too, so forward references to
// attributes defined later in the document do not warn.
func Validate(doc *adast.Node, attrs adast.Attributes, opts parser.Options) diag.List {
	var diags diag.List
	opts = opts.Normalized()

	adast.Walk(doc, func(n *adast.Node) error {
		switch n.Kind {
		case adast.NodeAttributeRef:
			checkAttributeRef(n, attrs, &diags)
		case adast.NodeSection:
			checkSectionDepth(n, opts.MaxSectionDepth, &diags)
		case adast.NodeBlockMacro:
			checkIncludeTarget(n, opts, &diags)
		}
		return nil
	})

	diags.Sort()
	return diags
}

func checkAttributeRef(n *adast.Node, attrs adast.Attributes, diags *diag.List) {
	ref := n.Inline.AttrRef
	if ref == nil || ref.Defined {
		return
	}
	if value, ok := attrs[strings.ToLower(ref.Name)]; ok && value.IsSet() {
		return
	}
	*diags = append(*diags, diag.New(diag.UndefinedAttribute, n.Span,
		fmt.Sprintf("attribute %q is never defined; the reference renders literally", ref.Name)).Build())
}

func checkSectionDepth(n *adast.Node, maxDepth int, diags *diag.List) {
	level := n.Block.Level
	if level <= maxDepth {
		return
	}
	*diags = append(*diags, diag.New(diag.SectionNestingViolation, n.Span,
		fmt.Sprintf("section level %d exceeds the maximum depth %d", level, maxDepth)).Build())
}

// checkIncludeTarget re-checks path policy for include macros the parser
// could not resolve, so a document parsed with a permissive FileReader
// still reports targets that would escape the base directory.
func checkIncludeTarget(n *adast.Node, opts parser.Options, diags *diag.List) {
	macro := n.Block.Macro
	if macro == nil || macro.Name != "include" {
		return
	}
	if macro.Attributes["resolved"].Bool {
		return
	}
	if _, err := parser.ResolveIncludePath(macro.Target, opts.BaseDir, opts.SafeMode); err != nil {
		*diags = append(*diags, diag.New(diag.IncludePathViolation, n.Span, err.Error()).Build())
	}
}
