package adast

import "testing"

func TestAppendChild(t *testing.T) {
	parent := NewNode(NodeParagraph)
	parent.Span = Span{Start: 10, End: 12}

	first := NewText("a", Span{Start: 10, End: 11})
	second := NewText("b", Span{Start: 11, End: 15})

	AppendChild(parent, first)
	AppendChild(parent, second)

	if parent.FirstChild != first || parent.LastChild != second {
		t.Error("child links are wrong after two appends")
	}
	if first.Next != second || second.Prev != first {
		t.Error("sibling links are wrong")
	}
	if first.Parent != parent || second.Parent != parent {
		t.Error("parent links are wrong")
	}
	if parent.ChildCount() != 2 {
		t.Errorf("ChildCount() = %d, want 2", parent.ChildCount())
	}

	// The parent span widens to cover the children.
	if parent.Span != (Span{Start: 10, End: 15}) {
		t.Errorf("parent span = %+v, want [10,15)", parent.Span)
	}
}

func TestAppendChild_Reparents(t *testing.T) {
	a := NewNode(NodeParagraph)
	b := NewNode(NodeParagraph)
	child := NewText("x", Span{Start: 0, End: 1})

	AppendChild(a, child)
	AppendChild(b, child)

	if a.HasChildren() {
		t.Error("first parent should be empty after reparenting")
	}
	if b.FirstChild != child || child.Parent != b {
		t.Error("child should now belong to the second parent")
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewNode(NodeList)
	a := NewNode(NodeListItem)
	b := NewNode(NodeListItem)
	c := NewNode(NodeListItem)
	AppendChild(parent, a)
	AppendChild(parent, b)
	AppendChild(parent, c)

	RemoveChild(parent, b)

	if parent.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", parent.ChildCount())
	}
	if a.Next != c || c.Prev != a {
		t.Error("sibling links not repaired after removal")
	}
	if b.Parent != nil || b.Prev != nil || b.Next != nil {
		t.Error("removed child keeps stale links")
	}
}

func TestNodeKindClassification(t *testing.T) {
	blocks := []NodeKind{
		NodeDocument, NodeHeader, NodeSection, NodeParagraph, NodeDelimited,
		NodeList, NodeListItem, NodeTable, NodeTableRow, NodeTableCell,
		NodeBlockMacro,
	}
	inlines := []NodeKind{
		NodeText, NodeFormatted, NodeMacro, NodeLink, NodeAttributeRef,
		NodeLineBreak,
	}

	for _, kind := range blocks {
		n := NewNode(kind)
		if !n.IsBlock() || n.IsInline() {
			t.Errorf("%v should classify as a block node", kind)
		}
	}
	for _, kind := range inlines {
		n := NewNode(kind)
		if !n.IsInline() || n.IsBlock() {
			t.Errorf("%v should classify as an inline node", kind)
		}
	}
}

func TestWalk_PreOrder(t *testing.T) {
	doc := NewDocument()
	section := NewNode(NodeSection)
	para := NewNode(NodeParagraph)
	text := NewText("x", Span{})
	AppendChild(para, text)
	AppendChild(section, para)
	AppendChild(doc, section)

	var order []NodeKind
	err := Walk(doc, func(n *Node) error {
		order = append(order, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk error: %v", err)
	}

	want := []NodeKind{NodeDocument, NodeSection, NodeParagraph, NodeText}
	if len(order) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit[%d] = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestFindByKindAndFirst(t *testing.T) {
	doc := NewDocument()
	for i := 0; i < 3; i++ {
		AppendChild(doc, NewNode(NodeParagraph))
	}
	AppendChild(doc, NewNode(NodeSection))

	if got := len(FindByKind(doc, NodeParagraph)); got != 3 {
		t.Errorf("FindByKind found %d paragraphs, want 3", got)
	}

	first := FindFirst(doc, func(n *Node) bool { return n.Kind == NodeSection })
	if first == nil || first.Kind != NodeSection {
		t.Error("FindFirst did not return the section")
	}

	none := FindFirst(doc, func(n *Node) bool { return n.Kind == NodeTable })
	if none != nil {
		t.Error("FindFirst should return nil when nothing matches")
	}
}

func TestWalkBlocksAndInlines(t *testing.T) {
	doc := NewDocument()
	para := NewNode(NodeParagraph)
	AppendChild(para, NewText("x", Span{}))
	AppendChild(doc, para)

	var blocks, inlines int
	WalkBlocks(doc, func(*Node) error { blocks++; return nil })
	WalkInlines(doc, func(*Node) error { inlines++; return nil })

	if blocks != 2 {
		t.Errorf("WalkBlocks visited %d, want 2", blocks)
	}
	if inlines != 1 {
		t.Errorf("WalkInlines visited %d, want 1", inlines)
	}
}

func TestAttributeValues(t *testing.T) {
	tests := []struct {
		name    string
		value   AttributeValue
		wantStr string
		wantSet bool
	}{
		{"text", TextValue("hello"), "hello", true},
		{"bool true", BoolValue(true), "true", true},
		{"bool false", BoolValue(false), "false", true},
		{"int", IntValue(42), "42", true},
		{"unset", UnsetValue(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
			if got := tt.value.IsSet(); got != tt.wantSet {
				t.Errorf("IsSet() = %v, want %v", got, tt.wantSet)
			}
		})
	}
}

func TestAttributesClone(t *testing.T) {
	original := Attributes{"a": TextValue("x")}
	clone := original.Clone()

	clone["a"] = TextValue("changed")
	clone["b"] = BoolValue(true)

	if original["a"].String() != "x" {
		t.Error("mutating the clone changed the original")
	}
	if _, ok := original["b"]; ok {
		t.Error("new clone keys leaked into the original")
	}
}
