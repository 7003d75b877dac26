package adast

import "strconv"

// AttributeKind tags the variant held by an AttributeValue.
type AttributeKind uint8

const (
	AttrText AttributeKind = iota
	AttrBool
	AttrInt
	AttrUnset
)

// AttributeValue is a tagged value for a document attribute.
// Only the field matching Kind is meaningful.
type AttributeValue struct {
	Kind AttributeKind
	Text string
	Bool bool
	Int  int
}

// TextValue creates a text attribute value.
func TextValue(s string) AttributeValue {
	return AttributeValue{Kind: AttrText, Text: s}
}

// BoolValue creates a boolean attribute value.
func BoolValue(b bool) AttributeValue {
	return AttributeValue{Kind: AttrBool, Bool: b}
}

// IntValue creates an integer attribute value.
func IntValue(i int) AttributeValue {
	return AttributeValue{Kind: AttrInt, Int: i}
}

// UnsetValue creates an unset attribute value (from ':name!:' entries).
func UnsetValue() AttributeValue {
	return AttributeValue{Kind: AttrUnset}
}

// IsSet returns true unless the value is the unset variant.
func (v AttributeValue) IsSet() bool {
	return v.Kind != AttrUnset
}

// String renders the value as substitution text.
func (v AttributeValue) String() string {
	switch v.Kind {
	case AttrText:
		return v.Text
	case AttrBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case AttrInt:
		return strconv.Itoa(v.Int)
	default:
		return ""
	}
}

// Attributes maps attribute names to values. Keys are unique, last write
// wins, insertion order is irrelevant.
type Attributes map[string]AttributeValue

// Clone returns a shallow copy of the attribute table.
func (a Attributes) Clone() Attributes {
	clone := make(Attributes, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// DelimitedKind identifies the flavor of a delimited block.
type DelimitedKind uint8

const (
	DelimListing DelimitedKind = iota
	DelimSidebar
	DelimExample
	DelimQuote
	DelimLiteral
	DelimPassthrough
	DelimOpen
	DelimComment
)

var delimitedKindNames = [...]string{
	DelimListing:     "listing",
	DelimSidebar:     "sidebar",
	DelimExample:     "example",
	DelimQuote:       "quote",
	DelimLiteral:     "literal",
	DelimPassthrough: "passthrough",
	DelimOpen:        "open",
	DelimComment:     "comment",
}

func (k DelimitedKind) String() string {
	if int(k) < len(delimitedKindNames) {
		return delimitedKindNames[k]
	}
	return "unknown"
}

// IsVerbatim returns true for kinds whose content is raw text rather than
// recursively parsed blocks.
func (k DelimitedKind) IsVerbatim() bool {
	switch k {
	case DelimListing, DelimLiteral, DelimPassthrough, DelimComment:
		return true
	default:
		return false
	}
}

// ListStyle identifies the numbering style of a list.
type ListStyle uint8

const (
	ListUnordered ListStyle = iota
	ListArabic
	ListLowerAlpha
	ListUpperAlpha
	ListLowerRoman
	ListUpperRoman
)

var listStyleNames = [...]string{
	ListUnordered:  "unordered",
	ListArabic:     "arabic",
	ListLowerAlpha: "loweralpha",
	ListUpperAlpha: "upperalpha",
	ListLowerRoman: "lowerroman",
	ListUpperRoman: "upperroman",
}

func (s ListStyle) String() string {
	if int(s) < len(listStyleNames) {
		return listStyleNames[s]
	}
	return "unknown"
}

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// Level is the section level (1-6) for NodeSection and NodeHeader.
	Level int

	// ID is the section anchor id, if any.
	ID string

	// Delimited holds attributes for NodeDelimited.
	Delimited *DelimitedAttrs

	// List holds attributes for NodeList.
	List *ListAttrs

	// Table holds attributes for NodeTable and NodeTableCell.
	Table *TableAttrs

	// Macro holds attributes for NodeBlockMacro.
	Macro *MacroAttrs

	// Attributes holds block metadata (positional and named attributes
	// from the '[...]' attribute list preceding the block).
	Attributes Attributes
}

// DelimitedAttrs holds attributes for delimited block nodes.
type DelimitedAttrs struct {
	// Kind is the block flavor (listing, sidebar, ...).
	Kind DelimitedKind

	// DelimLen is the literal length of the opening delimiter run.
	DelimLen int

	// Content is the span of the raw content for verbatim kinds.
	Content Span

	// Language is the source language of a listing block, either declared
	// via the block attribute list or auto-detected.
	Language string

	// Unclosed is true when the closing delimiter was synthesized at
	// end of input.
	Unclosed bool
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Style is the list numbering style, fixed by the first marker.
	Style ListStyle

	// Marker is the literal first marker text ("*", "-", ".", "1.", ...).
	Marker string

	// Depth is the nesting depth implied by the marker run length.
	Depth int
}

// TableAttrs holds attributes for table and cell nodes.
type TableAttrs struct {
	// HasHeader is true when the first row is a header row.
	HasHeader bool

	// Nested is true for tables delimited with '!===' inside a cell.
	Nested bool

	// AsciiDocCell marks a cell whose content was recursively parsed as
	// blocks ("a|" style cells).
	AsciiDocCell bool
}

// MacroAttrs holds attributes for block and inline macro nodes.
type MacroAttrs struct {
	// Name is the macro name ("image", "include", ...).
	Name string

	// Target is the macro target between '::' and '['.
	Target string

	// Attributes is the parsed attribute list between brackets.
	Attributes Attributes
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText.
	Text string

	// Style is the formatting style for NodeFormatted.
	Style FormatStyle

	// Link holds link attributes for NodeLink.
	Link *LinkAttrs

	// AttrRef holds attributes for NodeAttributeRef.
	AttrRef *AttrRefAttrs

	// Macro holds attributes for NodeMacro.
	Macro *MacroAttrs
}

// FormatStyle identifies an inline formatting style.
type FormatStyle uint8

const (
	StyleBold FormatStyle = iota
	StyleItalic
	StyleMonospace
)

var formatStyleNames = [...]string{
	StyleBold:      "bold",
	StyleItalic:    "italic",
	StyleMonospace: "monospace",
}

func (s FormatStyle) String() string {
	if int(s) < len(formatStyleNames) {
		return formatStyleNames[s]
	}
	return "unknown"
}

// LinkAttrs holds attributes for link nodes.
type LinkAttrs struct {
	// URL is the link destination.
	URL string

	// Text is the optional display text.
	Text string
}

// AttrRefAttrs holds attributes for attribute-reference nodes.
type AttrRefAttrs struct {
	// Name is the referenced attribute name.
	Name string

	// Resolved is the substituted text at parse time; equals the literal
	// name when the reference was undefined or circular.
	Resolved string

	// Defined is true when the attribute was defined at resolution time.
	Defined bool
}

// DocumentAttrs holds document-level data on the root node.
type DocumentAttrs struct {
	// Title is the document header title, if any.
	Title string

	// Authors holds the header author line entries.
	Authors []string

	// Revision is the header revision line, if any.
	Revision string

	// Attributes is the final attribute table after parsing.
	Attributes Attributes
}
