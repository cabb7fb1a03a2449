package traverse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lestrrat-go/dax/matrix"
	"github.com/lestrrat-go/dax/node"
)

// Printer writes one line per element: indentation by depth, the tag
// name, the id if any, and the CTM when it is not the identity.
type Printer struct {
	out    io.Writer
	indent string
	err    error
}

var _ Backend = (*Printer)(nil)

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, indent: "  "}
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) line(t *Traverser, e *node.Element, extra string) {
	if p.err != nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(p.indent, t.Depth()))
	sb.WriteString(e.TagName())
	if id := e.ID(); id != "" {
		sb.WriteString(" #")
		sb.WriteString(id)
	}
	if extra != "" {
		sb.WriteByte(' ')
		sb.WriteString(extra)
	}
	if ctm := t.CTM(); !ctm.IsIdentity() {
		sb.WriteString(" ctm=")
		sb.WriteString(formatAffine(ctm))
	}
	if !e.IsLoaded() {
		sb.WriteString(" (pending)")
	}
	sb.WriteByte('\n')
	_, p.err = io.WriteString(p.out, sb.String())
}

func formatAffine(m matrix.Affine) string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (p *Printer) EnterSvg(t *Traverser, e *node.Element, d *node.Svg) {
	p.line(t, e, fmt.Sprintf("%sx%s", d.Width, d.Height))
}

func (p *Printer) ExitSvg(*Traverser, *node.Element, *node.Svg) {}

func (p *Printer) EnterGroup(t *Traverser, e *node.Element, _ *node.Group) {
	p.line(t, e, "")
}

func (p *Printer) ExitGroup(*Traverser, *node.Element, *node.Group) {}

func (p *Printer) VisitPath(t *Traverser, e *node.Element, d *node.Path) {
	p.line(t, e, fmt.Sprintf("commands=%d", len(d.Commands)))
}

func (p *Printer) VisitRect(t *Traverser, e *node.Element, d *node.Rect) {
	p.line(t, e, fmt.Sprintf("x=%g y=%g w=%g h=%g", d.X, d.Y, d.Width, d.Height))
}

func (p *Printer) VisitCircle(t *Traverser, e *node.Element, d *node.Circle) {
	p.line(t, e, fmt.Sprintf("cx=%g cy=%g r=%g", d.Cx, d.Cy, d.R))
}

func (p *Printer) VisitLine(t *Traverser, e *node.Element, d *node.Line) {
	p.line(t, e, fmt.Sprintf("%g,%g %g,%g", d.X1, d.Y1, d.X2, d.Y2))
}

func (p *Printer) VisitPolyline(t *Traverser, e *node.Element, d *node.Polyline) {
	p.line(t, e, fmt.Sprintf("points=%d", len(d.Points)))
}

func (p *Printer) VisitText(t *Traverser, e *node.Element, _ *node.TextData) {
	p.line(t, e, strconv.Quote(strings.TrimSpace(e.TextContent())))
}

func (p *Printer) VisitImage(t *Traverser, e *node.Element, d *node.Image) {
	p.line(t, e, imageURI(d))
}

func (p *Printer) VisitVideo(t *Traverser, e *node.Element, d *node.Video) {
	p.line(t, e, imageURI(&d.Image))
}

func imageURI(d *node.Image) string {
	if d.Entry != nil {
		return d.Entry.URI()
	}
	return d.Href
}

func (p *Printer) VisitAnimate(t *Traverser, e *node.Element, d *node.Animate) {
	p.line(t, e, fmt.Sprintf("attribute=%s dur=%s", d.AttributeName, d.Dur))
}

func (p *Printer) VisitAnimateTransform(t *Traverser, e *node.Element, d *node.AnimateTransform) {
	p.line(t, e, fmt.Sprintf("type=%s dur=%s", d.Type, d.Dur))
}

func (p *Printer) VisitScript(t *Traverser, e *node.Element, d *node.Script) {
	p.line(t, e, d.Type)
}

func (p *Printer) VisitHandler(t *Traverser, e *node.Element, d *node.Handler) {
	p.line(t, e, "event="+d.EventName)
}

func (p *Printer) VisitDesc(t *Traverser, e *node.Element, _ *node.Desc) {
	p.line(t, e, "")
}

func (p *Printer) VisitTitle(t *Traverser, e *node.Element, _ *node.Title) {
	p.line(t, e, strconv.Quote(strings.TrimSpace(e.TextContent())))
}
