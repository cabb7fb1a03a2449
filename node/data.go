package node

import (
	"fmt"

	"github.com/lestrrat-go/dax/anim"
	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/internal/lex"
	"github.com/lestrrat-go/dax/matrix"
)

// Data is the kind specific part of an element: the typed values of the
// attributes that kind understands. Use a type switch on Element.Data to
// get at them.
type Data interface {
	Kind() Kind

	// setAttribute updates the typed value for an attribute. Attributes
	// the kind does not know are ignored. On error the previous typed
	// value is kept.
	setAttribute(uri, local, value string) error
}

// Transformer is implemented by data variants that accept a transform
// attribute.
type Transformer interface {
	TransformMatrix() *matrix.Matrix
}

// Transformable holds the transform attribute. Transform is nil when the
// attribute is absent. The matrix may be shared; Clone it before
// modifying.
type Transformable struct {
	Transform *matrix.Matrix
}

func (t *Transformable) TransformMatrix() *matrix.Matrix {
	return t.Transform
}

func (t *Transformable) setAttribute(uri, local, value string) (bool, error) {
	if uri != "" || local != "transform" {
		return false, nil
	}
	m, err := matrix.Parse(value)
	if err != nil {
		return true, err
	}
	t.Transform = m
	return true, nil
}

// Shape carries the presentation attributes shared by the basic shapes.
type Shape struct {
	Transformable
	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
	Opacity     float64
}

func defaultShape() Shape {
	return Shape{
		Fill:        Paint{Kind: PaintColor, Color: black},
		Stroke:      Paint{Kind: PaintNone},
		StrokeWidth: 1,
		Opacity:     1,
	}
}

func (s *Shape) setAttribute(uri, local, value string) (bool, error) {
	if ok, err := s.Transformable.setAttribute(uri, local, value); ok {
		return ok, err
	}
	if uri != "" {
		return false, nil
	}
	switch local {
	case "fill":
		return true, setPaint(&s.Fill, value)
	case "stroke":
		return true, setPaint(&s.Stroke, value)
	case "stroke-width":
		return true, setNonNegative(&s.StrokeWidth, value)
	case "opacity":
		return true, setFloat(&s.Opacity, value)
	}
	return false, nil
}

func setFloat(dst *float64, value string) error {
	v, err := parseNumber(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setNonNegative(dst *float64, value string) error {
	v, err := parseNumber(value)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative value %q: %w", value, lex.ErrSyntax)
	}
	*dst = v
	return nil
}

func setLength(dst *Length, value string) error {
	v, err := ParseLength(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setPaint(dst *Paint, value string) error {
	v, err := ParsePaint(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func isHref(uri, local string) bool {
	return local == "href" && (uri == XLinkNamespace || uri == "")
}

type Svg struct {
	Width       Length
	Height      Length
	ViewBox     Box
	HasViewBox  bool
	Version     string
	BaseProfile string
}

func (*Svg) Kind() Kind { return KindSvg }

func (d *Svg) setAttribute(uri, local, value string) error {
	if uri != "" {
		return nil
	}
	switch local {
	case "width":
		return setLength(&d.Width, value)
	case "height":
		return setLength(&d.Height, value)
	case "viewBox":
		b, err := ParseBox(value)
		if err != nil {
			return err
		}
		d.ViewBox = b
		d.HasViewBox = true
	case "version":
		d.Version = value
	case "baseProfile":
		d.BaseProfile = value
	}
	return nil
}

type Group struct {
	Transformable
}

func (*Group) Kind() Kind { return KindGroup }

func (d *Group) setAttribute(uri, local, value string) error {
	_, err := d.Transformable.setAttribute(uri, local, value)
	return err
}

type Path struct {
	Shape
	D        string
	Commands []PathCommand
}

func (*Path) Kind() Kind { return KindPath }

func (d *Path) setAttribute(uri, local, value string) error {
	if uri == "" && local == "d" {
		cmds, err := ParsePathData(value)
		if err != nil {
			return err
		}
		d.D = value
		d.Commands = cmds
		return nil
	}
	_, err := d.Shape.setAttribute(uri, local, value)
	return err
}

type Rect struct {
	Shape
	X, Y          float64
	Width, Height float64
	Rx, Ry        float64
}

func (*Rect) Kind() Kind { return KindRect }

func (d *Rect) setAttribute(uri, local, value string) error {
	if uri == "" {
		switch local {
		case "x":
			return setFloat(&d.X, value)
		case "y":
			return setFloat(&d.Y, value)
		case "width":
			return setNonNegative(&d.Width, value)
		case "height":
			return setNonNegative(&d.Height, value)
		case "rx":
			return setNonNegative(&d.Rx, value)
		case "ry":
			return setNonNegative(&d.Ry, value)
		}
	}
	_, err := d.Shape.setAttribute(uri, local, value)
	return err
}

type Circle struct {
	Shape
	Cx, Cy, R float64
}

func (*Circle) Kind() Kind { return KindCircle }

func (d *Circle) setAttribute(uri, local, value string) error {
	if uri == "" {
		switch local {
		case "cx":
			return setFloat(&d.Cx, value)
		case "cy":
			return setFloat(&d.Cy, value)
		case "r":
			return setNonNegative(&d.R, value)
		}
	}
	_, err := d.Shape.setAttribute(uri, local, value)
	return err
}

type Line struct {
	Shape
	X1, Y1, X2, Y2 float64
}

func (*Line) Kind() Kind { return KindLine }

func (d *Line) setAttribute(uri, local, value string) error {
	if uri == "" {
		switch local {
		case "x1":
			return setFloat(&d.X1, value)
		case "y1":
			return setFloat(&d.Y1, value)
		case "x2":
			return setFloat(&d.X2, value)
		case "y2":
			return setFloat(&d.Y2, value)
		}
	}
	_, err := d.Shape.setAttribute(uri, local, value)
	return err
}

type Polyline struct {
	Shape
	Points []Knot
}

func (*Polyline) Kind() Kind { return KindPolyline }

func (d *Polyline) setAttribute(uri, local, value string) error {
	if uri == "" && local == "points" {
		knots, err := ParseKnots(value)
		if err != nil {
			return err
		}
		d.Points = knots
		return nil
	}
	_, err := d.Shape.setAttribute(uri, local, value)
	return err
}

// TextData is the data of a text element. The text itself is the
// element's text content.
type TextData struct {
	Transformable
	X, Y       float64
	FontFamily string
	FontSize   float64
	Fill       Paint
}

func (*TextData) Kind() Kind { return KindText }

func (d *TextData) setAttribute(uri, local, value string) error {
	if uri == "" {
		switch local {
		case "x":
			return setFloat(&d.X, value)
		case "y":
			return setFloat(&d.Y, value)
		case "font-family":
			d.FontFamily = value
			return nil
		case "font-size":
			return setNonNegative(&d.FontSize, value)
		case "fill":
			return setPaint(&d.Fill, value)
		}
	}
	_, err := d.Transformable.setAttribute(uri, local, value)
	return err
}

// Image refers to an external resource through Href. Entry is the cache
// entry for the resolved reference; the element does not become loaded
// until the entry is ready.
type Image struct {
	Transformable
	X, Y          float64
	Width, Height float64
	Href          string
	Entry         *cache.Entry
}

func (*Image) Kind() Kind { return KindImage }

func (d *Image) image() *Image { return d }

func (d *Image) setAttribute(uri, local, value string) error {
	if isHref(uri, local) {
		d.Href = value
		return nil
	}
	if uri == "" {
		switch local {
		case "x":
			return setFloat(&d.X, value)
		case "y":
			return setFloat(&d.Y, value)
		case "width":
			return setNonNegative(&d.Width, value)
		case "height":
			return setNonNegative(&d.Height, value)
		}
	}
	_, err := d.Transformable.setAttribute(uri, local, value)
	return err
}

type Video struct {
	Image
	Begin       anim.Duration
	RepeatCount anim.RepeatCount
	AudioLevel  float64
}

func (*Video) Kind() Kind { return KindVideo }

func (d *Video) setAttribute(uri, local, value string) error {
	if uri == "" {
		switch local {
		case "begin":
			return d.Begin.SetString(value)
		case "repeatCount":
			return d.RepeatCount.SetString(value)
		case "audio-level":
			return setFloat(&d.AudioLevel, value)
		}
	}
	return d.Image.setAttribute(uri, local, value)
}

type Animate struct {
	AttributeName string
	From, To      string
	Values        string
	Begin         anim.Duration
	Dur           anim.Duration
	RepeatCount   anim.RepeatCount
	Fill          string
}

func (*Animate) Kind() Kind { return KindAnimate }

func (d *Animate) setAttribute(uri, local, value string) error {
	if uri != "" {
		return nil
	}
	switch local {
	case "attributeName":
		d.AttributeName = value
	case "from":
		d.From = value
	case "to":
		d.To = value
	case "values":
		d.Values = value
	case "begin":
		return d.Begin.SetString(value)
	case "dur":
		return d.Dur.SetString(value)
	case "repeatCount":
		return d.RepeatCount.SetString(value)
	case "fill":
		if value != "freeze" && value != "remove" {
			return fmt.Errorf("fill must be freeze or remove: %w", lex.ErrSyntax)
		}
		d.Fill = value
	}
	return nil
}

type AnimateTransform struct {
	Animate
	Type string
}

func (*AnimateTransform) Kind() Kind { return KindAnimateTransform }

func (d *AnimateTransform) setAttribute(uri, local, value string) error {
	if uri == "" && local == "type" {
		switch value {
		case "translate", "scale", "rotate", "skewX", "skewY":
			d.Type = value
			return nil
		}
		return fmt.Errorf("unknown transform type %q: %w", value, lex.ErrSyntax)
	}
	return d.Animate.setAttribute(uri, local, value)
}

// Script holds the attributes of a script element. The code is the
// element's text content.
type Script struct {
	Type string
	Href string
}

func (*Script) Kind() Kind { return KindScript }

// IsECMAScript reports whether the script type names a language the
// script engine runs. An absent type counts as ECMAScript.
func (d *Script) IsECMAScript() bool {
	return isECMAScript(d.Type)
}

func isECMAScript(typ string) bool {
	switch typ {
	case "", "application/ecmascript", "text/ecmascript", "application/javascript", "text/javascript":
		return true
	}
	return false
}

func (d *Script) setAttribute(uri, local, value string) error {
	if isHref(uri, local) {
		d.Href = value
		return nil
	}
	if uri == "" && local == "type" {
		d.Type = value
	}
	return nil
}

// Handler binds its text content, run as script, to an event on its
// parent element.
type Handler struct {
	Type      string
	Event     event.Type
	EventName string
}

func (*Handler) Kind() Kind { return KindHandler }

func (d *Handler) IsECMAScript() bool {
	return isECMAScript(d.Type)
}

func (d *Handler) setAttribute(uri, local, value string) error {
	switch {
	case local == "event" && (uri == XMLEventsNamespace || uri == ""):
		typ := event.ParseType(value)
		if typ == event.Unknown {
			return fmt.Errorf("unknown event %q: %w", value, lex.ErrSyntax)
		}
		d.Event = typ
		d.EventName = value
	case uri == "" && local == "type":
		d.Type = value
	}
	return nil
}

type Desc struct{}

func (*Desc) Kind() Kind { return KindDesc }

func (*Desc) setAttribute(string, string, string) error { return nil }

type Title struct{}

func (*Title) Kind() Kind { return KindTitle }

func (*Title) setAttribute(string, string, string) error { return nil }

// Unknown is the data of a placeholder element. Name is the local name
// found in the document.
type Unknown struct {
	Name string
}

func (*Unknown) Kind() Kind { return KindUnknown }

func (*Unknown) setAttribute(string, string, string) error { return nil }
