package node

// Comment holds the text of an XML comment. Comments are kept so that a
// document can be written back out; the traverser ignores them.
type Comment struct {
	treeNode
	content []byte
}

var _ Node = (*Comment)(nil)

func NewComment(content []byte) *Comment {
	return &Comment{
		content: content,
	}
}

func (*Comment) Type() NodeType {
	return CommentNodeType
}

func (*Comment) LocalName() string {
	return "#comment"
}

func (n *Comment) Data() string {
	return string(n.content)
}

// Content returns dst unchanged: comments do not contribute to the text
// content of their ancestors.
func (n *Comment) Content(dst []byte) ([]byte, error) {
	return dst, nil
}

func (n *Comment) AddChild(cur Node) error {
	if c, ok := cur.(*Comment); ok {
		return n.AddContent(c.content)
	}
	return ErrInvalidOperation
}

func (n *Comment) AddContent(b []byte) error {
	n.content = append(n.content, b...)
	return nil
}

func (n *Comment) AddSibling(cur Node) error {
	return addSibling(n, cur)
}
