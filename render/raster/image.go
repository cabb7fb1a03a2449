package raster

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/lestrrat-go/dax/matrix"
	"github.com/lestrrat-go/dax/node"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

func (b *Backend) drawImage(m matrix.Affine, d *node.Image) {
	if d.Entry == nil {
		return
	}
	src, err := loadImage(d)
	if err != nil {
		b.logger.Warn("failed to load image",
			slog.String("uri", d.Entry.URI()),
			slog.String("error", err.Error()),
		)
		return
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return
	}
	w, h := d.Width, d.Height
	if w == 0 {
		w = float64(bounds.Dx())
	}
	if h == 0 {
		h = float64(bounds.Dy())
	}

	// source pixels -> the x, y, width, height box -> device
	place := matrix.Multiply(
		matrix.Translate(-float64(bounds.Min.X), -float64(bounds.Min.Y)),
		matrix.Multiply(matrix.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy())), matrix.Translate(d.X, d.Y)),
	)
	s2d := matrix.Multiply(place, m)
	aff := f64.Aff3{s2d[0], s2d[2], s2d[4], s2d[1], s2d[3], s2d[5]}
	draw.BiLinear.Transform(b.img, aff, src, bounds, draw.Over, nil)
}

func loadImage(d *node.Image) (image.Image, error) {
	path, err := d.Entry.LocalPath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
