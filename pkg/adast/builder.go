package adast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return &Node{
		Kind: NodeDocument,
		Doc:  &DocumentAttrs{Attributes: make(Attributes)},
	}
}

// NewText creates a text inline node covering span.
func NewText(text string, span Span) *Node {
	return &Node{
		Kind:   NodeText,
		Span:   span,
		Inline: &InlineAttrs{Text: text},
	}
}

// AppendChild appends a child node to a parent and widens the parent's span
// to cover the child. It maintains the sibling links correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
	parent.Span = parent.Span.Union(child.Span)
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}
