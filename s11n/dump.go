// Package s11n writes a document tree back out as XML.
package s11n

import (
	"io"

	"github.com/lestrrat-go/dax/internal/pool"
	"github.com/lestrrat-go/dax/node"
	"github.com/pkg/errors"
)

// Dumper serializes nodes. Attributes are written in the order they were
// first set, and namespace declarations on the element that made them.
type Dumper struct{}

func (d *Dumper) DumpDoc(out io.Writer, doc *node.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	if _, err := io.WriteString(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if err := d.dumpNode(out, n, doc); err != nil {
			return err
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// DumpNode writes n and its subtree. Namespace declarations are only
// emitted when n is the document element.
func (d *Dumper) DumpNode(out io.Writer, n node.Node) error {
	if doc, ok := n.(*node.Document); ok {
		return d.DumpDoc(out, doc)
	}
	return d.dumpNode(out, n, n.OwnerDocument())
}

func (d *Dumper) dumpNode(out io.Writer, n node.Node, doc *node.Document) error {
	switch n := n.(type) {
	case *node.Text:
		return EscapeText(out, []byte(n.Data()), false)
	case *node.Comment:
		_, err := io.WriteString(out, "<!--"+n.Data()+"-->")
		return err
	case *node.Element:
		return d.dumpElement(out, n, doc)
	}
	return errors.Errorf("cannot serialize %s node", n.Type())
}

func (d *Dumper) dumpElement(out io.Writer, e *node.Element, doc *node.Document) error {
	attrs := e.Attributes(nil)
	name := e.TagName()

	buf := pool.ByteSlice().GetCapacity(len(name) + 2 + 24*len(attrs))
	defer func() { pool.ByteSlice().Put(buf) }()

	buf = append(buf, '<')
	buf = append(buf, name...)

	declared := make(map[string]struct{})
	for _, ns := range e.DeclaredNamespaces() {
		declared[ns.Prefix()] = struct{}{}
		buf = appendNamespace(buf, ns)
	}

	// The root also carries the first binding of every other prefix, so
	// that documents built without xmlns attributes stay well-formed. The
	// default namespace is never moved, as that would change the root's
	// own namespace.
	if doc != nil && doc.DocumentElement() == e {
		for _, ns := range doc.Namespaces() {
			switch ns.Prefix() {
			case "", "xml", "xmlns":
				continue
			}
			if _, ok := declared[ns.Prefix()]; ok {
				continue
			}
			declared[ns.Prefix()] = struct{}{}
			buf = appendNamespace(buf, ns)
		}
	}

	for _, attr := range attrs {
		buf = append(buf, ' ')
		buf = append(buf, attr.Name()...)
		buf = append(buf, `="`...)
		buf = appendAttrValue(buf, attr.Value())
		buf = append(buf, '"')
	}

	if e.FirstChild() == nil {
		buf = append(buf, "/>"...)
		_, err := out.Write(buf)
		return err
	}

	buf = append(buf, '>')
	if _, err := out.Write(buf); err != nil {
		return err
	}

	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if err := d.dumpNode(out, c, doc); err != nil {
			return errors.Wrapf(err, "failed to serialize child of <%s>", name)
		}
	}

	_, err := io.WriteString(out, "</"+name+">")
	return err
}

func appendNamespace(buf []byte, ns node.Namespace) []byte {
	if ns.Prefix() == "" {
		buf = append(buf, ` xmlns="`...)
	} else {
		buf = append(buf, " xmlns:"...)
		buf = append(buf, ns.Prefix()...)
		buf = append(buf, `="`...)
	}
	buf = appendAttrValue(buf, ns.URI())
	return append(buf, '"')
}

// appendAttrValue appends the escaped form of s to buf.
func appendAttrValue(buf []byte, s string) []byte {
	w := byteWriter{buf: buf}
	// writes to a byteWriter cannot fail
	_ = EscapeAttrValue(&w, []byte(s))
	return w.buf
}

type byteWriter struct {
	buf []byte
}

func (w *byteWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
