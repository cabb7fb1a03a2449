package node

// NodeType represents the type of a node in the tree
type NodeType int

const (
	ElementNodeType NodeType = iota + 1
	TextNodeType
	CommentNodeType
	DocumentNodeType
)

func (t NodeType) String() string {
	switch t {
	case ElementNodeType:
		return "element"
	case TextNodeType:
		return "text"
	case CommentNodeType:
		return "comment"
	case DocumentNodeType:
		return "document"
	}
	return "invalid"
}

// Node interface defines the common functionality for all node types
type Node interface {
	// returns the treeNode (the part of the Node that handles the tree structure)
	getTreeNode() *treeNode

	// AddChild appends a node as the last child. The child must not
	// already have a parent.
	AddChild(Node) error
	AddContent([]byte) error
	AddSibling(Node) error

	Type() NodeType
	// Content appends the text content of the node to the provided byte
	// slice and returns the result. If dst is nil, a new slice is allocated.
	Content(dst []byte) ([]byte, error)

	FirstChild() Node
	LastChild() Node

	// LocalName returns the local name of the node.
	LocalName() string

	NextSibling() Node
	OwnerDocument() *Document
	Parent() Node
	PrevSibling() Node

	InsertBefore(newChild, refChild Node) (Node, error)
	RemoveChild(Node) (Node, error)
	ReplaceChild(newChild, oldChild Node) (Node, error)
	CloneNode(deep bool) (Node, error)
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n Node) string {
	buf, err := n.Content(nil)
	if err != nil {
		return ""
	}
	return string(buf)
}
