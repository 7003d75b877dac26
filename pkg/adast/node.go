// Package adast provides the core AsciiDoc AST representation for doctora.
// It defines:
// - Span: byte-offset source locations
// - Token: the classified lexical stream
// - Node: typed AST nodes referencing source spans
// - Source: line metadata for offset to line/column conversion
//
// Nodes are built by pkg/parser and are treated as immutable once a parse
// call returns them.
package adast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level AsciiDoc elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeHeader // document header (title line, author/revision)
	NodeSection
	NodeParagraph
	NodeDelimited
	NodeList
	NodeListItem
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeBlockMacro

	// Inline-level nodes.
	NodeText
	NodeFormatted
	NodeMacro
	NodeLink
	NodeAttributeRef
	NodeLineBreak
)

var nodeKindNames = [...]string{
	NodeDocument:     "Document",
	NodeHeader:       "Header",
	NodeSection:      "Section",
	NodeParagraph:    "Paragraph",
	NodeDelimited:    "Delimited",
	NodeList:         "List",
	NodeListItem:     "ListItem",
	NodeTable:        "Table",
	NodeTableRow:     "TableRow",
	NodeTableCell:    "TableCell",
	NodeBlockMacro:   "BlockMacro",
	NodeText:         "Text",
	NodeFormatted:    "Formatted",
	NodeMacro:        "Macro",
	NodeLink:         "Link",
	NodeAttributeRef: "AttributeRef",
	NodeLineBreak:    "LineBreak",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node represents a single node in the AsciiDoc AST.
// Nodes form a tree with parent/child/sibling links. Each node exclusively
// owns its children; there are no back-references other than Parent, so the
// tree contains no cycles by construction.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the byte range this node covers in the source.
	// It contains the spans of all children.
	Span Span

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	// Doc holds document-level data; set only on NodeDocument.
	Doc *DocumentAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeHeader, NodeSection, NodeParagraph, NodeDelimited,
		NodeList, NodeListItem, NodeTable, NodeTableRow, NodeTableCell,
		NodeBlockMacro:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeFormatted, NodeMacro, NodeLink, NodeAttributeRef,
		NodeLineBreak:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the source bytes covered by this node's span.
func (n *Node) Text(content []byte) []byte {
	return n.Span.Text(content)
}
