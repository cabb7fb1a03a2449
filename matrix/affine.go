// Package matrix implements 2D affine transforms: the flattened six
// component form, the elementary operation list an SVG transform attribute
// is made of, and the transform-list grammar.
package matrix

import (
	"math"
)

// Affine is the flattened transform [a b c d e f], which maps a point as
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Affine [6]float64

// Identity is the transform that maps every point to itself.
var Identity = Affine{1, 0, 0, 1, 0, 0}

func Translate(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation by theta radians.
func Rotate(theta float64) Affine {
	s, c := math.Sincos(theta)
	return Affine{c, s, -s, c, 0, 0}
}

// Shear returns a skew along the x axis by theta radians.
func Shear(theta float64) Affine {
	return Affine{1, 0, math.Tan(theta), 1, 0, 0}
}

// ShearY returns a skew along the y axis by theta radians.
func ShearY(theta float64) Affine {
	return Affine{1, math.Tan(theta), 0, 1, 0, 0}
}

// Multiply returns the transform that applies a first, then b.
func Multiply(a, b Affine) Affine {
	return Affine{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

// MultiplyInto stores a∘b in dst. dst may alias a or b.
func MultiplyInto(dst *Affine, a, b *Affine) {
	*dst = Multiply(*a, *b)
}

func (m Affine) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse transform. The second return value is false
// when m is singular, in which case m is returned unchanged.
func (m Affine) Invert() (Affine, bool) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return m, false
	}
	inv := 1 / det
	return Affine{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}, true
}

// Expansion is the factor by which m scales lengths on average, derived
// from the determinant.
func (m Affine) Expansion() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// IsRectilinear reports whether m maps axis aligned rectangles to axis
// aligned rectangles.
func (m Affine) IsRectilinear() bool {
	return (m[1] == 0 && m[2] == 0) || (m[0] == 0 && m[3] == 0)
}

func (m Affine) IsIdentity() bool {
	return m == Identity
}

// Equal compares component-wise, allowing each component to differ by at
// most eps.
func (m Affine) Equal(o Affine, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Apply maps the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
