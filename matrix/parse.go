package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lestrrat-go/dax/internal/lex"
)

var errParamMismatch = errors.New("matrix: parameter count mismatch")

// Parse parses a transform list such as "translate(10,20) rotate(45)".
func Parse(s string) (*Matrix, error) {
	m := New()
	if err := m.SetString(s); err != nil {
		return nil, err
	}
	return m, nil
}

// SetString replaces the contents of m with the parsed transform list.
// On failure m is left untouched.
func (m *Matrix) SetString(s string) error {
	parsed := New()
	rest := lex.SkipSpace(s)
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return fmt.Errorf("matrix: missing '(' in %q: %w", s, lex.ErrSyntax)
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			return fmt.Errorf("matrix: missing ')' in %q: %w", s, lex.ErrSyntax)
		}
		closing += open

		name := strings.TrimSpace(rest[:open])
		args, err := lex.Floats(rest[open+1 : closing])
		if err != nil {
			return fmt.Errorf("matrix: invalid arguments to %s in %q: %w", name, s, err)
		}
		if err := parsed.apply(name, args); err != nil {
			return fmt.Errorf("matrix: %s in %q: %w", name, s, err)
		}
		rest = lex.SkipCommaSpace(rest[closing+1:])
	}

	*m = *parsed
	return nil
}

func (m *Matrix) apply(name string, args []float64) error {
	n := len(args)
	switch name {
	case "matrix":
		if n != 6 {
			return errParamMismatch
		}
		m.Generic(Affine{args[0], args[1], args[2], args[3], args[4], args[5]})
	case "translate":
		switch n {
		case 1:
			m.Translate(args[0], 0)
		case 2:
			m.Translate(args[0], args[1])
		default:
			return errParamMismatch
		}
	case "scale":
		switch n {
		case 1:
			m.Scale(args[0], args[0])
		case 2:
			m.Scale(args[0], args[1])
		default:
			return errParamMismatch
		}
	case "rotate":
		switch n {
		case 1:
			m.Rotate(args[0])
		case 3:
			m.RotateAround(args[0], args[1], args[2])
		default:
			return errParamMismatch
		}
	case "skewX":
		if n != 1 {
			return errParamMismatch
		}
		m.SkewX(args[0])
	case "skewY":
		if n != 1 {
			return errParamMismatch
		}
		m.SkewY(args[0])
	default:
		return lex.ErrSyntax
	}
	return nil
}
