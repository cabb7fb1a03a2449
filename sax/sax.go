package sax

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/lestrrat-go/dax/encoding"
	"github.com/lestrrat-go/dax/internal/debug"
	"github.com/lestrrat-go/dax/internal/stack"
	"github.com/lestrrat-go/dax/internal/stack/nsstack"
	"github.com/lestrrat-go/option"
	"github.com/pkg/errors"
)

const (
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNamespace = "http://www.w3.org/2000/xmlns/"
)

var (
	ErrNilInput           = errors.New("nil input")
	ErrUnexpectedEOF      = errors.New("unexpected end of input")
	ErrMismatchedEndTag   = errors.New("end tag does not match start tag")
	ErrUnexpectedEndTag   = errors.New("end tag without start tag")
	ErrMultipleRootsFound = errors.New("more than one root element")
)

type Option = option.Interface

type identCharsetReader struct{}

// CharsetReaderFunc converts input in the named charset to UTF-8.
type CharsetReaderFunc func(label string, input io.Reader) (io.Reader, error)

// WithCharsetReader replaces the charset conversion used for documents
// that declare a non UTF-8 encoding.
func WithCharsetReader(fn CharsetReaderFunc) Option {
	return option.New(identCharsetReader{}, fn)
}

// Reader turns an XML byte stream into Handler events. It reads raw
// tokens so that prefixes survive, and resolves them itself.
type Reader struct {
	dec  *xml.Decoder
	ns   *nsstack.Stack
	open stack.Stack[*parsedElement]
	// pending holds a token read ahead while checking for a self-closing tag
	pending    xml.Token
	pendingPos position
	pos        position
	sawRoot    bool
	finished   bool
}

type position struct {
	line   int
	column int
	offset int64
}

func (r *Reader) currentPos() position {
	line, col := r.dec.InputPos()
	return position{line: line, column: col, offset: r.dec.InputOffset()}
}

func NewReader(src io.Reader, options ...Option) (*Reader, error) {
	if src == nil {
		return nil, ErrNilInput
	}

	charsetReader := CharsetReaderFunc(encoding.NewReaderLabel)
	for _, o := range options {
		switch o.Ident() {
		case identCharsetReader{}:
			if fn, ok := o.Value().(CharsetReaderFunc); ok && fn != nil {
				charsetReader = fn
			}
		}
	}

	dec := xml.NewDecoder(src)
	dec.CharsetReader = charsetReader

	ns := nsstack.New()
	ns.PushScope()
	ns.Push("xml", xmlNamespace)
	ns.Push("xmlns", xmlnsNamespace)

	return &Reader{dec: dec, ns: ns}, nil
}

// Line is the 1-based line just after the token being reported.
func (r *Reader) Line() int {
	return r.pos.line
}

func (r *Reader) Column() int {
	return r.pos.column
}

// Offset is the byte offset just after the token being reported.
func (r *Reader) Offset() int64 {
	return r.pos.offset
}

func (r *Reader) next() (xml.Token, error) {
	if tok := r.pending; tok != nil {
		r.pending = nil
		r.pos = r.pendingPos
		return tok, nil
	}
	tok, err := r.dec.RawToken()
	r.pos = r.currentPos()
	if err != nil {
		return nil, err
	}
	return xml.CopyToken(tok), nil
}

// Parse reads the whole input, calling h for each event. It stops at the
// first error returned by the input or by h.
func (r *Reader) Parse(ctx context.Context, h Handler) error {
	if r.finished {
		return errors.New("reader already used")
	}
	r.finished = true

	if err := h.SetDocumentLocator(ctx, r); err != nil {
		return err
	}
	if err := h.StartDocument(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tok, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to read token")
		}

		if err := r.handle(ctx, h, tok); err != nil {
			return err
		}
	}

	if r.open.Len() > 0 {
		top, _ := r.open.Top()
		return errors.Wrapf(ErrUnexpectedEOF, "element <%s> is not closed", top.Name())
	}
	return h.EndDocument(ctx)
}

func (r *Reader) handle(ctx context.Context, h Handler, tok xml.Token) error {
	switch tok := tok.(type) {
	case xml.StartElement:
		return r.startElement(ctx, h, tok)
	case xml.EndElement:
		return r.endElement(ctx, h, tok)
	case xml.CharData:
		return h.Characters(ctx, []byte(tok))
	case xml.Comment:
		return h.Comment(ctx, []byte(tok))
	case xml.ProcInst:
		if tok.Target == "xml" {
			return nil
		}
		return h.ProcessingInstruction(ctx, tok.Target, string(tok.Inst))
	case xml.Directive:
		if debug.Enabled {
			debug.Printf("sax.Reader: skipping directive %q", tok)
		}
	}
	return nil
}

func (r *Reader) startElement(ctx context.Context, h Handler, tok xml.StartElement) error {
	if r.open.Len() == 0 {
		if r.sawRoot {
			return errors.Wrapf(ErrMultipleRootsFound, "<%s>", qname(tok.Name))
		}
		r.sawRoot = true
	}

	r.ns.PushScope()
	for _, a := range tok.Attr {
		switch {
		case a.Name.Space == "xmlns":
			r.ns.Push(a.Name.Local, a.Value)
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			r.ns.Push("", a.Value)
		}
	}

	elem := &parsedElement{
		prefix: tok.Name.Space,
		local:  tok.Name.Local,
	}
	elem.uri, _ = r.ns.Lookup(tok.Name.Space)
	elem.attrs = make([]ParsedAttribute, 0, len(tok.Attr))
	for _, a := range tok.Attr {
		attr := &parsedAttribute{
			prefix: a.Name.Space,
			local:  a.Name.Local,
			value:  a.Value,
		}
		switch {
		case attr.prefix == "" && attr.local == "xmlns":
			attr.uri = xmlnsNamespace
		case attr.prefix != "":
			// unprefixed attributes are in no namespace
			attr.uri, _ = r.ns.Lookup(attr.prefix)
		}
		elem.attrs = append(elem.attrs, attr)
	}

	// A self-closing tag is reported by RawToken as a start element
	// immediately followed by an end element, without consuming input
	// in between.
	next, err := r.dec.RawToken()
	empty := false
	switch {
	case err == io.EOF:
	case err != nil:
		return errors.Wrap(err, "failed to read token")
	default:
		if end, ok := next.(xml.EndElement); ok && end.Name == tok.Name && r.dec.InputOffset() == r.pos.offset {
			empty = true
		} else {
			r.pending = xml.CopyToken(next)
			r.pendingPos = r.currentPos()
		}
	}

	if debug.Enabled {
		debug.Printf("sax.Reader: start <%s> (empty=%t)", elem.Name(), empty)
	}

	if err := h.StartElementNS(ctx, elem, empty); err != nil {
		return err
	}
	if empty {
		r.ns.PopScope()
		return nil
	}
	r.open.Push(elem)
	return nil
}

func (r *Reader) endElement(ctx context.Context, h Handler, tok xml.EndElement) error {
	top, ok := r.open.Top()
	if !ok {
		return errors.Wrapf(ErrUnexpectedEndTag, "</%s>", qname(tok.Name))
	}
	if top.prefix != tok.Name.Space || top.local != tok.Name.Local {
		return errors.Wrapf(ErrMismatchedEndTag, "<%s> closed by </%s>", top.Name(), qname(tok.Name))
	}
	r.open.Pop()

	if err := h.EndElementNS(ctx, top); err != nil {
		return err
	}
	r.ns.PopScope()
	return nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

type parsedElement struct {
	prefix string
	uri    string
	local  string
	attrs  []ParsedAttribute
}

func (e *parsedElement) Prefix() string                { return e.prefix }
func (e *parsedElement) URI() string                   { return e.uri }
func (e *parsedElement) LocalName() string             { return e.local }
func (e *parsedElement) Attributes() []ParsedAttribute { return e.attrs }

func (e *parsedElement) Name() string {
	if e.prefix == "" {
		return e.local
	}
	return e.prefix + ":" + e.local
}

type parsedAttribute struct {
	prefix string
	uri    string
	local  string
	value  string
}

func (a *parsedAttribute) Prefix() string    { return a.prefix }
func (a *parsedAttribute) URI() string       { return a.uri }
func (a *parsedAttribute) LocalName() string { return a.local }
func (a *parsedAttribute) Value() string     { return a.value }

func (a *parsedAttribute) Name() string {
	if a.prefix == "" {
		return a.local
	}
	return a.prefix + ":" + a.local
}
