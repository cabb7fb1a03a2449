package node

// Text represents a run of character data. Text nodes have no children.
type Text struct {
	treeNode
	content []byte
}

var _ Node = (*Text)(nil)

func NewText(content []byte) *Text {
	return &Text{
		content: content,
	}
}

func (*Text) Type() NodeType {
	return TextNodeType
}

func (n *Text) LocalName() string {
	return "#text"
}

func (n *Text) Data() string {
	return string(n.content)
}

func (n *Text) SetData(s string) {
	n.content = append(n.content[:0], s...)
}

func (n *Text) AppendData(s string) {
	n.content = append(n.content, s...)
}

func (n *Text) Content(dst []byte) ([]byte, error) {
	return append(dst, n.content...), nil
}

func (n *Text) AddChild(child Node) error {
	// Text nodes can concatenate with other text nodes
	if t, ok := child.(*Text); ok {
		return n.AddContent(t.content)
	}
	return ErrInvalidOperation
}

func (n *Text) AddContent(b []byte) error {
	n.content = append(n.content, b...)
	return nil
}

func (n *Text) AddSibling(sibling Node) error {
	return addSibling(n, sibling)
}
