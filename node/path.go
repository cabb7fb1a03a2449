package node

import (
	"fmt"

	"github.com/lestrrat-go/dax/internal/lex"
)

// PathCommand is one segment of path data. Op is the command letter as
// written (lower case for relative coordinates); implicit repetitions
// are expanded into separate commands.
type PathCommand struct {
	Op   byte
	Args []float64
}

// IsRelative reports whether the coordinates are relative to the current
// point.
func (c PathCommand) IsRelative() bool {
	return c.Op >= 'a' && c.Op <= 'z'
}

var pathArity = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'Q': 4, 'Z': 0,
}

func arity(op byte) (int, bool) {
	if op >= 'a' && op <= 'z' {
		op -= 'a' - 'A'
	}
	n, ok := pathArity[op]
	return n, ok
}

// ParsePathData parses the d attribute of a path.
func ParsePathData(d string) ([]PathCommand, error) {
	var cmds []PathCommand
	s := lex.SkipSpace(d)
	var op byte
	for len(s) > 0 {
		if _, ok := arity(s[0]); ok {
			op = s[0]
			s = lex.SkipSpace(s[1:])
		} else if c := s[0]; (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return nil, fmt.Errorf("unsupported path command %q: %w", c, lex.ErrSyntax)
		} else if op == 0 {
			return nil, fmt.Errorf("expected a command at %q: %w", s, lex.ErrSyntax)
		}

		n, _ := arity(op)
		args := make([]float64, n)
		for i := range n {
			v, rest, err := lex.Float(s)
			if err != nil {
				return nil, fmt.Errorf("argument %d of %q: %w", i+1, op, err)
			}
			args[i] = v
			s = lex.SkipCommaSpace(rest)
		}
		cmds = append(cmds, PathCommand{Op: op, Args: args})

		// coordinates following a moveto are implicit linetos
		switch op {
		case 'M':
			op = 'L'
		case 'm':
			op = 'l'
		case 'Z', 'z':
			op = 0
		}
	}

	if len(cmds) > 0 {
		if first := cmds[0].Op; first != 'M' && first != 'm' {
			return nil, fmt.Errorf("path data must start with a moveto: %w", lex.ErrSyntax)
		}
	}
	return cmds, nil
}
