package anim

import (
	"fmt"
	"strings"

	"github.com/lestrrat-go/dax/internal/lex"
)

const indefinite = "indefinite"

// RepeatCount is the number of times an animation repeats. The zero value
// means "indefinite".
type RepeatCount float64

// Indefinite repeats forever.
const Indefinite RepeatCount = 0

func ParseRepeatCount(s string) (RepeatCount, error) {
	var r RepeatCount
	if err := r.SetString(s); err != nil {
		return Indefinite, err
	}
	return r, nil
}

// SetString parses either "indefinite" or a number into r. On failure r is
// left untouched.
func (r *RepeatCount) SetString(s string) error {
	rest := lex.SkipSpace(s)
	var v float64
	if strings.HasPrefix(rest, indefinite) {
		rest = rest[len(indefinite):]
	} else {
		var err error
		v, rest, err = lex.SimpleFloat(rest)
		if err != nil {
			return fmt.Errorf("anim: invalid repeat count %q: %w", s, err)
		}
	}

	if !lex.OnlySpace(rest) {
		return fmt.Errorf("anim: trailing content in repeat count %q: %w", s, lex.ErrSyntax)
	}
	*r = RepeatCount(v)
	return nil
}

func (r RepeatCount) IsIndefinite() bool {
	return r == Indefinite
}

func (r RepeatCount) Value() float64 {
	return float64(r)
}

func (r RepeatCount) String() string {
	if r.IsIndefinite() {
		return indefinite
	}
	return fmt.Sprintf("%.2f", float64(r))
}

func (r RepeatCount) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RepeatCount) UnmarshalText(b []byte) error {
	return r.SetString(string(b))
}
