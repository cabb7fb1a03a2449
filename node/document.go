package node

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/internal/debug"
)

// Document represents the root document node. It owns the whole tree,
// the namespace bindings seen while parsing and the id registry.
type Document struct {
	treeNode
	namespaces []Namespace
	ids        map[string]*Element
	baseIRI    string
	logger     *slog.Logger
	cache      *cache.Cache
}

var _ Node = (*Document)(nil)

func NewDocument(options ...DocumentOption) *Document {
	doc := &Document{
		ids: make(map[string]*Element),
		namespaces: []Namespace{
			NewNamespace("xml", XMLNamespace),
			NewNamespace("xmlns", XMLNSNamespace),
		},
	}
	doc.treeNode = treeNode{
		doc: doc,
	}

	for _, o := range options {
		switch o.Ident() {
		case identLogger{}:
			if l, ok := o.Value().(*slog.Logger); ok {
				doc.logger = l
			}
		case identCache{}:
			if c, ok := o.Value().(*cache.Cache); ok {
				doc.cache = c
			}
		case identBaseIRI{}:
			if v, ok := o.Value().(string); ok {
				doc.baseIRI = v
			}
		}
	}

	if doc.logger == nil {
		doc.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if doc.cache == nil {
		doc.cache = cache.New(cache.WithLogger(doc.logger))
	}
	return doc
}

func (*Document) Type() NodeType {
	return DocumentNodeType
}

func (*Document) LocalName() string {
	return "#document"
}

func (d *Document) Logger() *slog.Logger {
	return d.logger
}

func (d *Document) Cache() *cache.Cache {
	return d.cache
}

func (d *Document) BaseIRI() string {
	return d.baseIRI
}

func (d *Document) SetBaseIRI(s string) {
	d.baseIRI = s
}

func (d *Document) AddChild(cur Node) error {
	return addChild(d, cur)
}

func (d *Document) AddContent(b []byte) error {
	return addContent(d, b)
}

func (d *Document) AddSibling(Node) error {
	return ErrInvalidOperation
}

// DocumentElement returns the first element child of the document.
func (d *Document) DocumentElement() *Element {
	for n := d.firstChild; n != nil; n = n.NextSibling() {
		if e, ok := n.(*Element); ok {
			return e
		}
	}
	return nil
}

// AddNamespace appends a (uri, prefix) binding. Bindings are never
// removed; an identical binding is not added twice.
func (d *Document) AddNamespace(uri, prefix string) {
	for _, ns := range d.namespaces {
		if ns.prefix == prefix && ns.href == uri {
			return
		}
	}
	if debug.Enabled {
		debug.Printf("Document.AddNamespace: %q -> %q", prefix, uri)
	}
	d.namespaces = append(d.namespaces, NewNamespace(prefix, uri))
}

// Namespaces returns the bindings in registration order, including the
// two predefined ones.
func (d *Document) Namespaces() []Namespace {
	return d.namespaces
}

// LookupNamespaceURI returns the first URI bound to prefix.
func (d *Document) LookupNamespaceURI(prefix string) (string, bool) {
	for _, ns := range d.namespaces {
		if ns.prefix == prefix {
			return ns.href, true
		}
	}
	return "", false
}

// LookupPrefix returns the first prefix bound to uri.
func (d *Document) LookupPrefix(uri string) (string, bool) {
	for _, ns := range d.namespaces {
		if ns.href == uri {
			return ns.prefix, true
		}
	}
	return "", false
}

func (d *Document) ElementByID(id string) *Element {
	return d.ids[id]
}

func (d *Document) registerID(id string, e *Element) error {
	if cur, ok := d.ids[id]; ok && cur != e {
		return ErrDuplicateID
	}
	d.ids[id] = e
	return nil
}

func (d *Document) unregisterID(id string, e *Element) {
	if cur, ok := d.ids[id]; ok && cur == e {
		delete(d.ids, id)
	}
}

// CreateElement creates an element in the SVG vocabulary.
func (d *Document) CreateElement(tagName string) (*Element, error) {
	return d.CreateElementNS(SVGNamespace, tagName)
}

// CreateElementNS creates an element for a qualified name. Only the SVG
// namespace (or no namespace) is recognized, and within it only the
// element kinds listed in Kind. Anything else yields ErrUnknownElement.
// A prefixed name with no namespace yields ErrPrefixWithoutNamespace.
func (d *Document) CreateElementNS(uri, qname string) (*Element, error) {
	prefix, local, err := splitQName(qname)
	if err != nil {
		return nil, err
	}
	if prefix != "" && uri == "" {
		return nil, fmt.Errorf("%w: %q", ErrPrefixWithoutNamespace, qname)
	}
	if uri != "" && uri != SVGNamespace {
		return nil, ErrUnknownElement
	}

	kind := lookupKind(local)
	if kind == KindUnknown {
		return nil, ErrUnknownElement
	}
	return newElement(d, kind, uri, prefix, local), nil
}

// CreatePlaceholder creates an element of KindUnknown. It stands in for
// elements outside the vocabulary so that their subtree still has a
// parent.
func (d *Document) CreatePlaceholder(uri, qname string) *Element {
	prefix, local, err := splitQName(qname)
	if err != nil {
		local = qname
		prefix = ""
	}
	return newElement(d, KindUnknown, uri, prefix, local)
}

func (d *Document) CreateText(content []byte) *Text {
	t := NewText(content)
	t.doc = d
	return t
}

func (d *Document) CreateTextNode(s string) *Text {
	return d.CreateText([]byte(s))
}

func (d *Document) CreateComment(content []byte) *Comment {
	c := NewComment(content)
	c.doc = d
	return c
}
