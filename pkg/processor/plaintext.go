package processor

import (
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

// PlainText renders a document as plain text: heading titles, paragraph
// text with formatting stripped, verbatim block content as-is, list items
// with a uniform marker, and table rows with cells joined by " | ".
type PlainText struct{}

// Identify reports whether PlainText handles the format.
func (PlainText) Identify(format string) bool {
	return format == "plain"
}

// Process renders the document.
func (PlainText) Process(doc *adast.Node, shared *Shared) ([]byte, error) {
	var b strings.Builder
	renderBlocks(&b, doc, shared, 0)
	return []byte(b.String()), nil
}

func renderBlocks(b *strings.Builder, n *adast.Node, shared *Shared, indent int) {
	for child := n.FirstChild; child != nil; child = child.Next {
		renderBlock(b, child, shared, indent)
	}
}

func renderBlock(b *strings.Builder, n *adast.Node, shared *Shared, indent int) {
	switch n.Kind {
	case adast.NodeHeader, adast.NodeSection:
		writeLine(b, indent, inlineText(n))
		b.WriteByte('\n')
		renderNestedBlocks(b, n, shared, indent)

	case adast.NodeParagraph:
		writeLine(b, indent, inlineText(n))
		b.WriteByte('\n')

	case adast.NodeDelimited:
		attrs := n.Block.Delimited
		if attrs != nil && attrs.Kind.IsVerbatim() {
			if attrs.Kind == adast.DelimComment {
				return
			}
			b.WriteString(strings.TrimRight(string(attrs.Content.Text(shared.Source.Content)), "\n"))
			b.WriteString("\n\n")
			return
		}
		renderBlocks(b, n, shared, indent)

	case adast.NodeList:
		renderList(b, n, shared, indent)
		b.WriteByte('\n')

	case adast.NodeTable:
		renderTable(b, n, shared, indent)
		b.WriteByte('\n')

	case adast.NodeBlockMacro:
		// Unresolved directives have no text rendering.

	default:
		if n.IsBlock() {
			renderBlocks(b, n, shared, indent)
		}
	}
}

// renderNestedBlocks renders the block children of a section, skipping the
// inline nodes that form its title.
func renderNestedBlocks(b *strings.Builder, n *adast.Node, shared *Shared, indent int) {
	for child := n.FirstChild; child != nil; child = child.Next {
		if !child.IsBlock() {
			continue
		}
		renderBlock(b, child, shared, indent)
	}
}

func renderList(b *strings.Builder, n *adast.Node, shared *Shared, indent int) {
	for item := n.FirstChild; item != nil; item = item.Next {
		if item.Kind != adast.NodeListItem {
			continue
		}
		writeLine(b, indent, "- "+inlineText(item))
		for child := item.FirstChild; child != nil; child = child.Next {
			if child.Kind == adast.NodeList {
				renderList(b, child, shared, indent+1)
			}
		}
	}
}

func renderTable(b *strings.Builder, n *adast.Node, shared *Shared, indent int) {
	for row := n.FirstChild; row != nil; row = row.Next {
		if row.Kind != adast.NodeTableRow {
			continue
		}
		var cells []string
		for cell := row.FirstChild; cell != nil; cell = cell.Next {
			if cell.Kind != adast.NodeTableCell {
				continue
			}
			cells = append(cells, strings.TrimSpace(inlineText(cell)))
		}
		writeLine(b, indent, strings.Join(cells, " | "))
	}
}

// inlineText flattens the inline children of n to text, substituting
// resolved attribute values and stripping formatting.
func inlineText(n *adast.Node) string {
	var b strings.Builder
	collectInlineText(&b, n)
	return strings.TrimSpace(b.String())
}

func collectInlineText(b *strings.Builder, n *adast.Node) {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.IsBlock() {
			continue
		}
		switch child.Kind {
		case adast.NodeText:
			b.WriteString(child.Inline.Text)
		case adast.NodeFormatted:
			collectInlineText(b, child)
		case adast.NodeAttributeRef:
			b.WriteString(child.Inline.AttrRef.Resolved)
		case adast.NodeLink:
			link := child.Inline.Link
			if link.Text != "" {
				b.WriteString(link.Text)
			} else {
				b.WriteString(link.URL)
			}
		case adast.NodeMacro:
			b.WriteString(child.Inline.Macro.Target)
		case adast.NodeLineBreak:
			b.WriteByte('\n')
		}
	}
}

func writeLine(b *strings.Builder, indent int, text string) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(text)
	b.WriteByte('\n')
}
