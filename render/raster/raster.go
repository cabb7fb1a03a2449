// Package raster draws a document into an image by wrapping rasterx. It
// is a traverse.Backend.
package raster

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/lestrrat-go/dax/matrix"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/traverse"
	"github.com/lestrrat-go/option"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

type Option = option.Interface

type identBackground struct{}
type identLogger struct{}

// WithBackground fills the image with c before drawing.
func WithBackground(c color.Color) Option {
	return option.New(identBackground{}, c)
}

func WithLogger(l *slog.Logger) Option {
	return option.New(identLogger{}, l)
}

// Backend renders the shapes it visits into an RGBA image. Images whose
// resource is not ready yet are drawn when their element becomes loaded.
type Backend struct {
	traverse.NopBackend

	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	adder  rasterx.MatrixAdder
	// viewport maps the root viewBox to the image
	viewport matrix.Affine
	logger   *slog.Logger
	waiting  int
}

var _ traverse.Backend = (*Backend)(nil)

func New(width, height int, options ...Option) *Backend {
	var bg color.Color
	var logger *slog.Logger
	for _, o := range options {
		switch o.Ident() {
		case identBackground{}:
			if c, ok := o.Value().(color.Color); ok {
				bg = c
			}
		case identLogger{}:
			if l, ok := o.Value().(*slog.Logger); ok {
				logger = l
			}
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Backend{
		img:      img,
		filler:   rasterx.NewFiller(width, height, scanner),
		dasher:   rasterx.NewDasher(width, height, scanner),
		viewport: matrix.Identity,
		logger:   logger,
	}
}

func (b *Backend) Image() *image.RGBA {
	return b.img
}

// Waiting is the number of images that will be drawn once their
// resource is ready.
func (b *Backend) Waiting() int {
	return b.waiting
}

func toMatrix2D(m matrix.Affine) rasterx.Matrix2D {
	return rasterx.Matrix2D{A: m[0], B: m[1], C: m[2], D: m[3], E: m[4], F: m[5]}
}

func (b *Backend) transform(t *traverse.Traverser) matrix.Affine {
	return matrix.Multiply(t.CTM(), b.viewport)
}

func (b *Backend) EnterSvg(t *traverse.Traverser, _ *node.Element, d *node.Svg) {
	if t.Depth() > 0 || !d.HasViewBox || d.ViewBox.Width == 0 || d.ViewBox.Height == 0 {
		return
	}
	bounds := b.img.Bounds()
	sx := float64(bounds.Dx()) / d.ViewBox.Width
	sy := float64(bounds.Dy()) / d.ViewBox.Height
	b.viewport = matrix.Multiply(matrix.Translate(-d.ViewBox.X, -d.ViewBox.Y), matrix.Scale(sx, sy))
}

func (b *Backend) paint(p node.Paint, opacity float64) color.Color {
	c := color.Color(p.Color)
	if p.Kind == node.PaintCurrentColor {
		c = color.Black
	}
	return rasterx.ApplyOpacity(c, opacity)
}

// draw fills and strokes the outline produced by build.
func (b *Backend) draw(t *traverse.Traverser, s *node.Shape, build func(rasterx.Adder)) {
	m := toMatrix2D(b.transform(t))

	if s.Fill.IsVisible() {
		b.filler.Clear()
		b.adder.Adder = b.filler
		b.adder.M = m
		build(&b.adder)
		b.filler.SetColor(b.paint(s.Fill, s.Opacity))
		b.filler.Draw()
	}

	if s.Stroke.IsVisible() && s.StrokeWidth > 0 {
		width := s.StrokeWidth * b.transform(t).Expansion()
		b.dasher.Clear()
		b.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
			rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
		b.adder.Adder = b.dasher
		b.adder.M = m
		build(&b.adder)
		b.dasher.SetColor(b.paint(s.Stroke, s.Opacity))
		b.dasher.Draw()
	}
}

func (b *Backend) VisitRect(t *traverse.Traverser, _ *node.Element, d *node.Rect) {
	if d.Width <= 0 || d.Height <= 0 {
		return
	}
	b.draw(t, &d.Shape, func(a rasterx.Adder) {
		if d.Rx > 0 || d.Ry > 0 {
			rasterx.AddRoundRect(d.X, d.Y, d.X+d.Width, d.Y+d.Height, d.Rx, d.Ry, 0, rasterx.RoundGap, a)
			return
		}
		rasterx.AddRect(d.X, d.Y, d.X+d.Width, d.Y+d.Height, 0, a)
	})
}

func (b *Backend) VisitCircle(t *traverse.Traverser, _ *node.Element, d *node.Circle) {
	if d.R <= 0 {
		return
	}
	b.draw(t, &d.Shape, func(a rasterx.Adder) {
		rasterx.AddCircle(d.Cx, d.Cy, d.R, a)
	})
}

func (b *Backend) VisitLine(t *traverse.Traverser, _ *node.Element, d *node.Line) {
	s := d.Shape
	// a line has no inside
	s.Fill = node.Paint{Kind: node.PaintNone}
	b.draw(t, &s, func(a rasterx.Adder) {
		a.Start(rasterx.ToFixedP(d.X1, d.Y1))
		a.Line(rasterx.ToFixedP(d.X2, d.Y2))
		a.Stop(false)
	})
}

func (b *Backend) VisitPolyline(t *traverse.Traverser, _ *node.Element, d *node.Polyline) {
	if len(d.Points) < 2 {
		return
	}
	b.draw(t, &d.Shape, func(a rasterx.Adder) {
		a.Start(rasterx.ToFixedP(d.Points[0].X, d.Points[0].Y))
		for _, p := range d.Points[1:] {
			a.Line(rasterx.ToFixedP(p.X, p.Y))
		}
		a.Stop(false)
	})
}

func (b *Backend) VisitPath(t *traverse.Traverser, _ *node.Element, d *node.Path) {
	if len(d.Commands) == 0 {
		return
	}
	b.draw(t, &d.Shape, func(a rasterx.Adder) {
		addPath(a, d.Commands)
	})
}

func (b *Backend) VisitImage(t *traverse.Traverser, e *node.Element, d *node.Image) {
	b.image(t, e, d)
}

func (b *Backend) VisitVideo(_ *traverse.Traverser, _ *node.Element, d *node.Video) {
	b.logger.Debug("video is not rendered", slog.String("href", d.Href))
}

func (b *Backend) image(t *traverse.Traverser, e *node.Element, d *node.Image) {
	m := b.transform(t)
	if e.IsLoaded() {
		b.drawImage(m, d)
		return
	}

	b.waiting++
	var done bool
	e.OnLoaded(func(_ *node.Element, loaded bool) {
		if !loaded || done {
			return
		}
		done = true
		b.waiting--
		b.drawImage(m, d)
	})
}
