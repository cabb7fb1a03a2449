package node

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lestrrat-go/dax/internal/lex"
	"golang.org/x/image/colornames"
)

// parseNumber parses a whole attribute value as a single number.
func parseNumber(s string) (float64, error) {
	v, rest, err := lex.Float(lex.SkipSpace(s))
	if err != nil {
		return 0, err
	}
	if !lex.OnlySpace(rest) {
		return 0, fmt.Errorf("trailing %q: %w", rest, lex.ErrSyntax)
	}
	return v, nil
}

type LengthUnit int

const (
	UnitNone LengthUnit = iota
	UnitPx
	UnitPt
	UnitPercent
	UnitEm
	UnitMm
	UnitCm
	UnitIn
)

var unitSuffixes = [...]string{
	UnitNone:    "",
	UnitPx:      "px",
	UnitPt:      "pt",
	UnitPercent: "%",
	UnitEm:      "em",
	UnitMm:      "mm",
	UnitCm:      "cm",
	UnitIn:      "in",
}

func (u LengthUnit) String() string {
	return unitSuffixes[u]
}

// Length is a number with an optional unit.
type Length struct {
	Value float64
	Unit  LengthUnit
}

func ParseLength(s string) (Length, error) {
	v, rest, err := lex.Float(lex.SkipSpace(s))
	if err != nil {
		return Length{}, err
	}
	rest = strings.TrimRight(rest, " \t\r\n")
	for u := UnitPx; int(u) < len(unitSuffixes); u++ {
		if rest == unitSuffixes[u] {
			return Length{Value: v, Unit: u}, nil
		}
	}
	if rest != "" {
		return Length{}, fmt.Errorf("unknown unit %q: %w", rest, lex.ErrSyntax)
	}
	return Length{Value: v}, nil
}

// Pixels converts the length to user units. Percentages are resolved
// against ref.
func (l Length) Pixels(ref float64) float64 {
	switch l.Unit {
	case UnitPt:
		return l.Value * 96 / 72
	case UnitPercent:
		return l.Value * ref / 100
	case UnitEm:
		return l.Value * 16
	case UnitMm:
		return l.Value * 96 / 25.4
	case UnitCm:
		return l.Value * 96 / 2.54
	case UnitIn:
		return l.Value * 96
	}
	return l.Value
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

// Box is the value of a viewBox attribute.
type Box struct {
	X, Y, Width, Height float64
}

func ParseBox(s string) (Box, error) {
	list, err := lex.Floats(s)
	if err != nil {
		return Box{}, err
	}
	if len(list) != 4 {
		return Box{}, fmt.Errorf("viewBox needs 4 numbers, got %d: %w", len(list), lex.ErrSyntax)
	}
	if list[2] < 0 || list[3] < 0 {
		return Box{}, fmt.Errorf("negative viewBox size: %w", lex.ErrSyntax)
	}
	return Box{X: list[0], Y: list[1], Width: list[2], Height: list[3]}, nil
}

// Knot is one coordinate pair of a point list.
type Knot struct {
	X, Y float64
}

// ParseKnots parses a "points" list. The number of coordinates must be
// even.
func ParseKnots(s string) ([]Knot, error) {
	list, err := lex.Floats(s)
	if err != nil {
		return nil, err
	}
	if len(list)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates: %w", lex.ErrSyntax)
	}
	knots := make([]Knot, 0, len(list)/2)
	for i := 0; i < len(list); i += 2 {
		knots = append(knots, Knot{X: list[i], Y: list[i+1]})
	}
	return knots, nil
}

type PaintKind int

const (
	PaintUnset PaintKind = iota
	PaintNone
	PaintColor
	PaintCurrentColor
)

// Paint is the value of fill and stroke.
type Paint struct {
	Kind  PaintKind
	Color color.RGBA
}

var black = color.RGBA{A: 0xff}

// IsVisible reports whether anything gets painted.
func (p Paint) IsVisible() bool {
	return p.Kind == PaintColor || p.Kind == PaintCurrentColor
}

func (p Paint) String() string {
	switch p.Kind {
	case PaintNone:
		return "none"
	case PaintCurrentColor:
		return "currentColor"
	case PaintColor:
		return fmt.Sprintf("#%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B)
	}
	return ""
}

// ParsePaint accepts "none", "currentColor", "#rgb", "#rrggbb",
// "rgb(r, g, b)" with integer or percentage components, and the SVG
// color keywords.
func ParsePaint(s string) (Paint, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "none":
		return Paint{Kind: PaintNone}, nil
	case "currentcolor":
		return Paint{Kind: PaintCurrentColor}, nil
	}

	if strings.HasPrefix(v, "#") {
		c, err := parseHexColor(v[1:])
		if err != nil {
			return Paint{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Paint{Kind: PaintColor, Color: c}, nil
	}

	if args, ok := strings.CutPrefix(v, "rgb("); ok {
		args, ok = strings.CutSuffix(args, ")")
		if !ok {
			return Paint{}, fmt.Errorf("missing ')' in %q: %w", s, lex.ErrSyntax)
		}
		c, err := parseRGB(args)
		if err != nil {
			return Paint{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Paint{Kind: PaintColor, Color: c}, nil
	}

	if cn, ok := colornames.Map[strings.ToLower(v)]; ok {
		return Paint{Kind: PaintColor, Color: cn}, nil
	}
	return Paint{}, fmt.Errorf("unknown color %q: %w", s, lex.ErrSyntax)
}

func parseHexColor(s string) (color.RGBA, error) {
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.RGBA{}, lex.ErrSyntax
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, lex.ErrSyntax
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func parseRGB(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, lex.ErrSyntax
	}
	var vals [3]uint8
	for i, part := range parts {
		part = strings.TrimSpace(part)
		percent := strings.HasSuffix(part, "%")
		part = strings.TrimSuffix(part, "%")
		f, err := parseNumber(part)
		if err != nil {
			return color.RGBA{}, err
		}
		if percent {
			f = f * 255 / 100
		}
		switch {
		case f < 0:
			f = 0
		case f > 255:
			f = 255
		}
		vals[i] = uint8(f + 0.5)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: 0xff}, nil
}
