// Package anim implements the clock value and repeat count types used by
// the animation elements.
package anim

import (
	"fmt"
	"math"
	"strings"

	"github.com/lestrrat-go/dax/internal/lex"
)

type Unit int

const (
	Seconds Unit = iota
	Milliseconds
)

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	default:
		return "<unknown Unit>"
	}
}

// Duration is a clock value. The millisecond conversion is computed on
// first use and cached.
type Duration struct {
	unit  Unit
	value float64
	ms    uint
	msSet bool
}

func NewDuration(unit Unit, value float64) Duration {
	return Duration{unit: unit, value: value}
}

// ParseDuration parses a clock value such as "5s", "250ms" or "1.5".
// A missing unit means seconds.
func ParseDuration(s string) (Duration, error) {
	var d Duration
	if err := d.SetString(s); err != nil {
		return Duration{}, err
	}
	return d, nil
}

// SetString parses s into d. On failure d is left untouched.
func (d *Duration) SetString(s string) error {
	rest := lex.SkipSpace(s)
	v, rest, err := lex.SimpleFloat(rest)
	if err != nil {
		return fmt.Errorf("anim: invalid duration %q: %w", s, err)
	}

	unit := Seconds
	switch {
	case strings.HasPrefix(rest, "ms"):
		unit = Milliseconds
		rest = rest[2:]
	case strings.HasPrefix(rest, "s"):
		rest = rest[1:]
	}

	if !lex.OnlySpace(rest) {
		return fmt.Errorf("anim: trailing content in duration %q: %w", s, lex.ErrSyntax)
	}

	*d = Duration{unit: unit, value: v}
	return nil
}

func (d Duration) Unit() Unit {
	return d.unit
}

func (d Duration) Value() float64 {
	return d.value
}

// Ms returns the duration in milliseconds.
func (d *Duration) Ms() uint {
	if !d.msSet {
		v := d.value
		if d.unit == Seconds {
			v *= 1000
		}
		d.ms = uint(math.Round(v))
		d.msSet = true
	}
	return d.ms
}

func (d Duration) Seconds() float64 {
	if d.unit == Milliseconds {
		return d.value / 1000
	}
	return d.value
}

func (d Duration) String() string {
	return fmt.Sprintf("%.2f%s", d.value, d.unit)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	return d.SetString(string(b))
}
