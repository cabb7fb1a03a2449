package matrix

import (
	"math"
	"strconv"
	"strings"
)

type OpKind int

const (
	OpTranslate OpKind = iota
	OpScale
	OpRotate
	OpRotateAround
	OpSkewX
	OpSkewY
	OpGeneric
)

func (k OpKind) String() string {
	switch k {
	case OpTranslate:
		return "translate"
	case OpScale:
		return "scale"
	case OpRotate, OpRotateAround:
		return "rotate"
	case OpSkewX:
		return "skewX"
	case OpSkewY:
		return "skewY"
	case OpGeneric:
		return "matrix"
	default:
		return "<unknown OpKind>"
	}
}

// Op is one elementary transform. Angles are in degrees.
type Op struct {
	Kind OpKind
	Args []float64
}

func (op Op) affine() Affine {
	switch op.Kind {
	case OpTranslate:
		return Translate(op.Args[0], op.Args[1])
	case OpScale:
		return Scale(op.Args[0], op.Args[1])
	case OpRotate:
		return Rotate(radians(op.Args[0]))
	case OpRotateAround:
		cx, cy := op.Args[1], op.Args[2]
		m := Multiply(Translate(-cx, -cy), Rotate(radians(op.Args[0])))
		return Multiply(m, Translate(cx, cy))
	case OpSkewX:
		return Shear(radians(op.Args[0]))
	case OpSkewY:
		return ShearY(radians(op.Args[0]))
	case OpGeneric:
		var a Affine
		copy(a[:], op.Args)
		return a
	}
	return Identity
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Matrix is a transform attribute value: the list of elementary
// operations as written, and their flattened composition. The zero value
// is not ready for use; use New.
//
// Methods on *Matrix mutate the receiver. A Matrix reachable from a
// document should be cloned before it is modified.
type Matrix struct {
	ops    []Op
	affine Affine
}

func New() *Matrix {
	return &Matrix{affine: Identity}
}

// FromAffine creates a matrix holding a single generic operation.
func FromAffine(a Affine) *Matrix {
	m := New()
	m.Generic(a)
	return m
}

func (m *Matrix) Clone() *Matrix {
	ops := make([]Op, len(m.ops))
	for i, op := range m.ops {
		ops[i] = Op{Kind: op.Kind, Args: append([]float64(nil), op.Args...)}
	}
	return &Matrix{ops: ops, affine: m.affine}
}

func (m *Matrix) Ops() []Op {
	return m.ops
}

func (m *Matrix) Affine() Affine {
	return m.affine
}

// push appends op. In a transform list the rightmost operation is applied
// to coordinates first, so the new operation runs before the existing ones.
func (m *Matrix) push(op Op) *Matrix {
	m.ops = append(m.ops, op)
	m.affine = Multiply(op.affine(), m.affine)
	return m
}

func (m *Matrix) Translate(tx, ty float64) *Matrix {
	return m.push(Op{Kind: OpTranslate, Args: []float64{tx, ty}})
}

func (m *Matrix) Scale(sx, sy float64) *Matrix {
	return m.push(Op{Kind: OpScale, Args: []float64{sx, sy}})
}

func (m *Matrix) Rotate(deg float64) *Matrix {
	return m.push(Op{Kind: OpRotate, Args: []float64{deg}})
}

func (m *Matrix) RotateAround(deg, cx, cy float64) *Matrix {
	return m.push(Op{Kind: OpRotateAround, Args: []float64{deg, cx, cy}})
}

func (m *Matrix) SkewX(deg float64) *Matrix {
	return m.push(Op{Kind: OpSkewX, Args: []float64{deg}})
}

func (m *Matrix) SkewY(deg float64) *Matrix {
	return m.push(Op{Kind: OpSkewY, Args: []float64{deg}})
}

func (m *Matrix) Generic(a Affine) *Matrix {
	return m.push(Op{Kind: OpGeneric, Args: a[:]})
}

func (m *Matrix) String() string {
	var sb strings.Builder
	for i, op := range m.ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.Kind.String())
		sb.WriteByte('(')
		for j, arg := range op.Args {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(arg, 'g', -1, 64))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func (m *Matrix) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Matrix) UnmarshalText(b []byte) error {
	return m.SetString(string(b))
}
