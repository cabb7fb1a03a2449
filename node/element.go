package node

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/internal/debug"
	"github.com/lestrrat-go/dax/internal/orderedmap"
)

type Element struct {
	treeNode
	kind    Kind
	data    Data
	local   string
	prefix  string
	uri     string
	attrs   *orderedmap.Map[attrKey, *Attribute]
	id      string
	baseIRI string

	listeners event.Listeners
	lifecycle lifecycle

	attrObservers []func(*Element, *Attribute)
	// namespace declarations made on this element, in document order
	nsDecls []Namespace
}

var _ Node = (*Element)(nil)
var _ event.Target = (*Element)(nil)

func newElement(doc *Document, kind Kind, uri, prefix, local string) *Element {
	e := &Element{
		kind:   kind,
		data:   newData(kind, local),
		local:  local,
		prefix: prefix,
		uri:    uri,
		attrs:  orderedmap.New[attrKey, *Attribute](),
	}
	e.doc = doc
	e.lifecycle.pending = 1
	return e
}

func (*Element) Type() NodeType {
	return ElementNodeType
}

func (e *Element) Kind() Kind {
	return e.kind
}

// Data returns the kind specific typed attributes.
func (e *Element) Data() Data {
	return e.data
}

func (e *Element) LocalName() string {
	return e.local
}

func (e *Element) Prefix() string {
	return e.prefix
}

func (e *Element) NamespaceURI() string {
	return e.uri
}

// TagName returns the qualified name as it appeared in the document.
func (e *Element) TagName() string {
	if e.prefix == "" {
		return e.local
	}
	return e.prefix + ":" + e.local
}

func (e *Element) AddChild(child Node) error {
	return addChild(e, child)
}

func (e *Element) AddContent(b []byte) error {
	return addContent(e, b)
}

func (e *Element) AddSibling(sibling Node) error {
	return addSibling(e, sibling)
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	return TextContent(e)
}

// ParentElement returns the parent if it is an element.
func (e *Element) ParentElement() *Element {
	p, _ := e.parent.(*Element)
	return p
}

func (e *Element) logger() *slog.Logger {
	if e.doc == nil {
		return slog.Default()
	}
	return e.doc.logger
}

// SetAttribute sets an attribute by its qualified name. A prefix is
// resolved through the owning document's namespace bindings.
func (e *Element) SetAttribute(name, value string) error {
	prefix, _, err := splitQName(name)
	if err != nil {
		return err
	}

	var uri string
	switch {
	case name == "xmlns" || prefix == "xmlns":
		uri = XMLNSNamespace
	case prefix != "":
		if e.doc != nil {
			uri, _ = e.doc.LookupNamespaceURI(prefix)
		}
	}
	return e.SetAttributeNS(uri, name, value)
}

// SetAttributeNS sets an attribute given its namespace and qualified
// name. Names that violate the namespace rules are rejected with one of
// the ErrMalformedQName, ErrPrefixWithoutNamespace, ErrXMLPrefixMismatch,
// ErrXMLNSPrefixMismatch and ErrXMLNSNamespaceMisuse errors and the
// attribute is not set.
//
// Namespace declarations (xmlns and xmlns:*) are registered on the
// owning document, kept in DeclaredNamespaces, and never stored as
// attributes.
//
// If the value does not match the grammar of a typed attribute the raw
// value is still stored, the typed value is left as it was, and an error
// wrapping ErrInvalidValue is returned.
func (e *Element) SetAttributeNS(uri, qname, value string) error {
	prefix, local, err := splitQName(qname)
	if err != nil {
		return fmt.Errorf("%w: %q", err, qname)
	}

	isXMLNS := prefix == "xmlns" || (prefix == "" && local == "xmlns")
	switch {
	case prefix != "" && uri == "":
		return fmt.Errorf("%w: %q", ErrPrefixWithoutNamespace, qname)
	case prefix == "xml" && uri != XMLNamespace:
		return fmt.Errorf("%w: %q in %q", ErrXMLPrefixMismatch, qname, uri)
	case isXMLNS && uri != XMLNSNamespace:
		return fmt.Errorf("%w: %q in %q", ErrXMLNSPrefixMismatch, qname, uri)
	case uri == XMLNSNamespace && !isXMLNS:
		return fmt.Errorf("%w: %q", ErrXMLNSNamespaceMisuse, qname)
	}

	if isXMLNS {
		nsPrefix := local
		if prefix == "" {
			nsPrefix = ""
		}
		e.declareNamespace(nsPrefix, value)
		if e.doc != nil {
			e.doc.AddNamespace(value, nsPrefix)
		}
		return nil
	}

	return e.setAttr(uri, prefix, local, value)
}

func (e *Element) setAttr(uri, prefix, local, value string) error {
	if debug.Enabled {
		debug.Printf("Element(%s).setAttr: {%s}%s = %q", e.TagName(), uri, local, value)
	}

	switch {
	case local == "id" && (uri == "" || uri == XMLNamespace):
		if err := e.SetID(value); err != nil {
			return err
		}
	case local == "base" && uri == XMLNamespace:
		e.baseIRI = value
	}

	attr := &Attribute{prefix: prefix, local: local, uri: uri, value: value}
	e.attrs.Put(attrKey{uri: uri, local: local}, attr)

	var typedErr error
	if err := e.data.setAttribute(uri, local, value); err != nil {
		typedErr = fmt.Errorf("%w %s=%q on <%s>: %w", ErrInvalidValue, attr.Name(), value, e.TagName(), err)
	} else if e.lifecycle.parsed && isHref(uri, local) {
		e.resourceChanged()
	}

	for _, fn := range e.attrObservers {
		fn(e, attr)
	}
	return typedErr
}

// GetAttribute returns the value of the attribute with the given
// qualified name, or the empty string.
func (e *Element) GetAttribute(name string) string {
	a := e.attributeByName(name)
	if a == nil {
		return ""
	}
	return a.value
}

func (e *Element) HasAttribute(name string) bool {
	return e.attributeByName(name) != nil
}

func (e *Element) attributeByName(name string) *Attribute {
	prefix, local, err := splitQName(name)
	if err != nil {
		return nil
	}
	var uri string
	if prefix != "" {
		if e.doc == nil {
			return nil
		}
		var ok bool
		if uri, ok = e.doc.LookupNamespaceURI(prefix); !ok {
			return nil
		}
	}
	a, _ := e.attrs.Get(attrKey{uri: uri, local: local})
	return a
}

func (e *Element) GetAttributeNS(uri, local string) string {
	a, ok := e.attrs.Get(attrKey{uri: uri, local: local})
	if !ok {
		return ""
	}
	return a.value
}

func (e *Element) HasAttributeNS(uri, local string) bool {
	_, ok := e.attrs.Get(attrKey{uri: uri, local: local})
	return ok
}

// Attributes populates the given slice with the attributes
// of the element, in the order they were first set. If the slice is nil,
// it will create a new slice and return it.
func (e *Element) Attributes(dst []*Attribute) []*Attribute {
	if dst == nil {
		dst = make([]*Attribute, 0, e.attrs.Len())
	} else {
		dst = dst[:0]
	}
	for _, attr := range e.attrs.Range() {
		dst = append(dst, attr)
	}
	return dst
}

func (e *Element) declareNamespace(prefix, uri string) {
	for i, ns := range e.nsDecls {
		if ns.prefix == prefix {
			e.nsDecls[i].href = uri
			return
		}
	}
	e.nsDecls = append(e.nsDecls, NewNamespace(prefix, uri))
}

// DeclaredNamespaces returns the xmlns declarations made on this element.
// The document keeps the bindings of all elements; this is the subset
// whose scope starts here.
func (e *Element) DeclaredNamespaces() []Namespace {
	return e.nsDecls
}

// OnAttributeChanged registers fn to be called after an attribute has
// been stored.
func (e *Element) OnAttributeChanged(fn func(*Element, *Attribute)) {
	e.attrObservers = append(e.attrObservers, fn)
}

func (e *Element) ID() string {
	return e.id
}

// SetID registers id in the owning document. If another element already
// uses id, the registration is rejected with ErrDuplicateID and the
// element keeps its previous id. An empty id clears the registration.
func (e *Element) SetID(id string) error {
	if id == e.id {
		return nil
	}
	if e.doc != nil && id != "" {
		if err := e.doc.registerID(id, e); err != nil {
			e.logger().Warn("duplicate id",
				slog.String("id", id),
				slog.String("element", e.TagName()),
			)
			return fmt.Errorf("%w: %q", err, id)
		}
	}
	if e.doc != nil && e.id != "" {
		e.doc.unregisterID(e.id, e)
	}
	e.id = id
	return nil
}

// BaseIRI returns the effective base IRI: the element's own xml:base
// resolved against the effective base of its parent, or the document's
// base IRI at the top.
func (e *Element) BaseIRI() string {
	var base string
	if p := e.ParentElement(); p != nil {
		base = p.BaseIRI()
	} else if e.doc != nil {
		base = e.doc.baseIRI
	}

	if e.baseIRI == "" {
		return base
	}
	if base == "" {
		return e.baseIRI
	}
	resolved, err := cache.ResolveIRI(base, e.baseIRI)
	if err != nil {
		return e.baseIRI
	}
	return resolved
}

func (e *Element) AddEventListener(typ event.Type, l event.Listener, useCapture bool) {
	e.listeners.Add(typ, l, useCapture)
}

func (e *Element) RemoveEventListener(typ event.Type, l event.Listener, useCapture bool) {
	e.listeners.Remove(typ, l, useCapture)
}

// DispatchEvent runs the listeners registered on this element. Events do
// not propagate to ancestors.
func (e *Element) DispatchEvent(ev *event.Event) bool {
	return e.listeners.Dispatch(e, ev, e.logger())
}

// HasEventListeners reports whether any listener is registered for typ.
func (e *Element) HasEventListeners(typ event.Type) bool {
	return e.listeners.Len(typ) > 0
}

// IsInvalidValue reports whether err came from a typed attribute that did
// not match its grammar.
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}
