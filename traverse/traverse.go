// Package traverse walks a document tree and hands each element to a
// Backend, keeping track of the current transformation matrix (CTM).
package traverse

import (
	"log/slog"

	"github.com/lestrrat-go/dax/internal/debug"
	"github.com/lestrrat-go/dax/matrix"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type identLogger struct{}

// WithLogger sets the logger for elements that cannot be visited.
// Without it the owning document's logger is used.
func WithLogger(l *slog.Logger) Option {
	return option.New(identLogger{}, l)
}

// Traverser walks the tree below root. It never changes the tree and
// does not wait for elements that are not loaded yet; a backend that
// cares subscribes to Element.OnLoaded itself.
type Traverser struct {
	root    node.Node
	backend Backend
	ctm     matrix.Affine
	depth   int
	logger  *slog.Logger
}

// New creates a Traverser. root is usually a *node.Document or its
// document element.
func New(root node.Node, backend Backend, options ...Option) *Traverser {
	t := &Traverser{
		root:    root,
		backend: backend,
		ctm:     matrix.Identity,
	}
	for _, o := range options {
		switch o.Ident() {
		case identLogger{}:
			if l, ok := o.Value().(*slog.Logger); ok {
				t.logger = l
			}
		}
	}
	if t.logger == nil {
		if doc := ownerDocument(root); doc != nil {
			t.logger = doc.Logger()
		} else {
			t.logger = slog.New(slog.DiscardHandler)
		}
	}
	return t
}

func ownerDocument(n node.Node) *node.Document {
	if n == nil {
		return nil
	}
	if doc, ok := n.(*node.Document); ok {
		return doc
	}
	return n.OwnerDocument()
}

func (t *Traverser) Root() node.Node {
	return t.root
}

// CTM returns the transform from the coordinates of the element being
// visited to those of the root.
func (t *Traverser) CTM() matrix.Affine {
	return t.ctm
}

// Depth is the number of elements above the one being visited.
func (t *Traverser) Depth() int {
	return t.depth
}

// Apply walks the whole tree, starting over with an identity CTM.
func (t *Traverser) Apply() {
	t.ctm = matrix.Identity
	t.depth = 0
	if t.root == nil || t.backend == nil {
		return
	}
	if e, ok := t.root.(*node.Element); ok {
		t.visit(e)
		return
	}
	t.children(t.root)
}

func (t *Traverser) children(n node.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if e, ok := c.(*node.Element); ok {
			t.visit(e)
		}
	}
}

func (t *Traverser) visit(e *node.Element) {
	saved := t.ctm
	defer func() { t.ctm = saved }()

	data := e.Data()
	if tr, ok := data.(node.Transformer); ok {
		if m := tr.TransformMatrix(); m != nil {
			t.ctm = matrix.Multiply(m.Affine(), t.ctm)
		}
	}

	if debug.Enabled {
		debug.Printf("traverse: <%s> ctm=%v", e.TagName(), t.ctm)
	}

	if e.Kind().IsContainer() {
		t.container(e, data)
		return
	}

	b := t.backend
	switch d := data.(type) {
	case *node.Path:
		b.VisitPath(t, e, d)
	case *node.Rect:
		b.VisitRect(t, e, d)
	case *node.Circle:
		b.VisitCircle(t, e, d)
	case *node.Line:
		b.VisitLine(t, e, d)
	case *node.Polyline:
		b.VisitPolyline(t, e, d)
	case *node.TextData:
		b.VisitText(t, e, d)
	case *node.Video:
		b.VisitVideo(t, e, d)
	case *node.Image:
		b.VisitImage(t, e, d)
	case *node.AnimateTransform:
		b.VisitAnimateTransform(t, e, d)
	case *node.Animate:
		b.VisitAnimate(t, e, d)
	case *node.Script:
		b.VisitScript(t, e, d)
	case *node.Handler:
		b.VisitHandler(t, e, d)
	case *node.Desc:
		b.VisitDesc(t, e, d)
	case *node.Title:
		b.VisitTitle(t, e, d)
	default:
		t.logger.Debug("skipping element", slog.String("element", e.TagName()))
		return
	}

	// animations and handlers inside a leaf see the leaf's CTM
	t.descend(e)
}

// container brackets the children of a grouping element with its
// Enter and Exit callbacks.
func (t *Traverser) container(e *node.Element, data node.Data) {
	b := t.backend
	switch d := data.(type) {
	case *node.Svg:
		b.EnterSvg(t, e, d)
		t.descend(e)
		b.ExitSvg(t, e, d)
	case *node.Group:
		b.EnterGroup(t, e, d)
		t.descend(e)
		b.ExitGroup(t, e, d)
	default:
		t.logger.Debug("skipping container", slog.String("element", e.TagName()))
	}
}

func (t *Traverser) descend(e *node.Element) {
	t.depth++
	t.children(e)
	t.depth--
}
