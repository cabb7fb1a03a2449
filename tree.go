package dax

import (
	"context"
	"log/slog"

	"github.com/lestrrat-go/dax/internal/debug"
	"github.com/lestrrat-go/dax/internal/lex"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/sax"
	"github.com/pkg/errors"
)

var _ sax.Handler = (*TreeBuilder)(nil)

// NewTreeBuilder creates a handler that builds a document created with
// the given options.
func NewTreeBuilder(options ...node.DocumentOption) *TreeBuilder {
	return &TreeBuilder{
		options: options,
	}
}

// Document returns the document built so far.
func (t *TreeBuilder) Document() *node.Document {
	return t.doc
}

func (t *TreeBuilder) SetDocumentLocator(_ context.Context, loc sax.DocumentLocator) error {
	t.loc = loc
	return nil
}

func (t *TreeBuilder) StartDocument(context.Context) error {
	if debug.Enabled {
		debug.Printf("START tree.StartDocument")
	}

	t.doc = node.NewDocument(t.options...)
	t.node = t.doc
	t.logger = t.doc.Logger()
	return nil
}

func (t *TreeBuilder) EndDocument(context.Context) error {
	if debug.Enabled {
		debug.Printf("END tree.EndDocument")
	}

	if t.doc.DocumentElement() == nil {
		return ErrNoRoot
	}
	return nil
}

func (t *TreeBuilder) line() slog.Attr {
	if t.loc == nil {
		return slog.Int("line", 0)
	}
	return slog.Int("line", t.loc.Line())
}

func (t *TreeBuilder) StartElementNS(_ context.Context, elem sax.ParsedElement, empty bool) error {
	if debug.Enabled {
		debug.Printf("START tree.StartElement: %s (empty=%t)", elem.Name(), empty)
	}

	e, err := t.doc.CreateElementNS(elem.URI(), elem.Name())
	if err != nil {
		t.logger.Warn("unknown element, using a placeholder",
			slog.String("element", elem.Name()),
			slog.String("uri", elem.URI()),
			slog.String("error", err.Error()),
			t.line(),
		)
		e = t.doc.CreatePlaceholder(elem.URI(), elem.Name())
	}

	if err := t.node.AddChild(e); err != nil {
		return errors.Wrapf(err, `failed to append <%s>`, elem.Name())
	}
	t.node = e

	for _, attr := range elem.Attributes() {
		if err := e.SetAttributeNS(attr.URI(), attr.Name(), attr.Value()); err != nil {
			t.logger.Warn("attribute rejected",
				slog.String("element", elem.Name()),
				slog.String("attribute", attr.Name()),
				slog.String("error", err.Error()),
				t.line(),
			)
		}
	}

	if empty {
		t.ascend(e)
	}
	return nil
}

func (t *TreeBuilder) EndElementNS(_ context.Context, elem sax.ParsedElement) error {
	if debug.Enabled {
		debug.Printf("END tree.EndElement: %s", elem.Name())
	}

	e, ok := t.node.(*node.Element)
	if !ok {
		return errors.Errorf(`end of <%s> outside of any element`, elem.Name())
	}
	t.ascend(e)
	return nil
}

// ascend finishes e and makes its parent the current node.
func (t *TreeBuilder) ascend(e *node.Element) {
	e.MarkParsed()
	t.node = e.Parent()
	if debug.Enabled {
		debug.Printf("tree: current node is now %s", t.node.LocalName())
	}
}

func (t *TreeBuilder) Characters(_ context.Context, data []byte) error {
	if _, ok := t.node.(*node.Document); ok {
		if !lex.OnlySpace(string(data)) {
			t.logger.Warn("text outside of the root element ignored", t.line())
		}
		return nil
	}

	// the node keeps its own copy of the token bytes
	text := t.doc.CreateText(append([]byte(nil), data...))
	return t.node.AddChild(text)
}

func (t *TreeBuilder) Comment(_ context.Context, data []byte) error {
	return t.node.AddChild(t.doc.CreateComment(append([]byte(nil), data...)))
}

func (t *TreeBuilder) ProcessingInstruction(_ context.Context, target, data string) error {
	if debug.Enabled {
		debug.Printf("tree: ignoring processing instruction %s %q", target, data)
	}
	return nil
}
