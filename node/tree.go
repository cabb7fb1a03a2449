package node

import (
	"errors"
)

// treeNode is the part of a Node that handles the tree structure.
type treeNode struct {
	firstChild Node
	lastChild  Node
	parent     Node
	next       Node
	prev       Node
	doc        *Document
}

func (n *treeNode) getTreeNode() *treeNode {
	return n
}

func (n *treeNode) OwnerDocument() *Document {
	return n.doc
}

func (n *treeNode) FirstChild() Node {
	return n.firstChild
}

func (n *treeNode) LastChild() Node {
	return n.lastChild
}

func (n *treeNode) Parent() Node {
	return n.parent
}

func (n *treeNode) NextSibling() Node {
	return n.next
}

func (n *treeNode) PrevSibling() Node {
	return n.prev
}

func (n *treeNode) Content(dst []byte) ([]byte, error) {
	result := dst
	for e := n.firstChild; e != nil; e = e.NextSibling() {
		var err error
		result, err = e.Content(result)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (n *treeNode) InsertBefore(Node, Node) (Node, error) {
	return nil, ErrNotImplemented
}

func (n *treeNode) RemoveChild(Node) (Node, error) {
	return nil, ErrNotImplemented
}

func (n *treeNode) ReplaceChild(Node, Node) (Node, error) {
	return nil, ErrNotImplemented
}

func (n *treeNode) CloneNode(bool) (Node, error) {
	return nil, ErrNotImplemented
}

func addSibling(n, sibling Node) error {
	if n == nil {
		return errors.New("cannot add sibling to nil node")
	}
	if sibling == nil {
		return errors.New("cannot add nil sibling")
	}

	st := sibling.getTreeNode()
	if st.parent != nil || st.prev != nil || st.next != nil {
		return ErrHierarchy
	}

	l := n
	lt := n.getTreeNode()
	for lt.next != nil {
		l = lt.next
		lt = l.getTreeNode()
	}

	lt.next = sibling
	st.prev = l
	if lt.parent != nil {
		st.parent = lt.parent
		lt.parent.getTreeNode().lastChild = sibling
	}
	if lt.doc != nil {
		st.doc = lt.doc
	}
	return nil
}

func addChild(parent, child Node) error {
	if child == nil {
		return errors.New("cannot add nil child")
	}
	if child.Type() == DocumentNodeType {
		return ErrInvalidOperation
	}

	pt := parent.getTreeNode()
	ct := child.getTreeNode()
	if ct.parent != nil {
		return ErrHierarchy
	}

	l := pt.lastChild
	if l == nil { // No children, set firstChild to cur, and bail out
		pt.firstChild = child
		pt.lastChild = child
		ct.parent = parent
		if pt.doc != nil {
			ct.doc = pt.doc
		}
		return nil
	}

	// addSibling handles setting the parent, and the
	// lastChild pointer
	return addSibling(l, child)
}

func addContent(n Node, content []byte) error {
	doc := n.OwnerDocument()
	var t *Text
	if doc != nil {
		t = doc.CreateText(content)
	} else {
		t = NewText(content)
	}
	return n.AddChild(t)
}
