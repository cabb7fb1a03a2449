// Package event implements the XML event record and the listener registry
// that event targets embed. Dispatch is target-only: there is no capture
// or bubbling phase.
package event

// Type identifies an event. The set is closed.
type Type int

const (
	Unknown Type = iota
	Load
	Click
	MouseDown
	MouseUp
	MouseOver
	MouseOut
	MouseMove
	KeyDown
	KeyUp
	Activate
	Timer
)

var typeNames = [...]string{
	Unknown:   "unknown",
	Load:      "load",
	Click:     "click",
	MouseDown: "mousedown",
	MouseUp:   "mouseup",
	MouseOver: "mouseover",
	MouseOut:  "mouseout",
	MouseMove: "mousemove",
	KeyDown:   "keydown",
	KeyUp:     "keyup",
	Activate:  "DOMActivate",
	Timer:     "SVGTimer",
}

// String returns the canonical event name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Unknown]
	}
	return typeNames[t]
}

// ParseType maps an event name to its Type. "SVGLoad" and "activate" are
// accepted as aliases.
func ParseType(name string) Type {
	switch name {
	case "SVGLoad":
		return Load
	case "activate":
		return Activate
	}
	for i, n := range typeNames {
		if i != int(Unknown) && n == name {
			return Type(i)
		}
	}
	return Unknown
}

// IsMouse reports whether events of type t carry a Mouse payload.
func (t Type) IsMouse() bool {
	switch t {
	case Click, MouseDown, MouseUp, MouseOver, MouseOut, MouseMove:
		return true
	}
	return false
}

// Mouse is the payload of mouse events.
type Mouse struct {
	ScreenX, ScreenY float64
	ClientX, ClientY float64
	Button           int
}

type Event struct {
	Type             Type
	Target           Target
	CurrentTarget    Target
	Cancelable       bool
	DefaultPrevented bool

	// Mouse is set for mouse event types only.
	Mouse *Mouse
}

func New(typ Type, cancelable bool) *Event {
	return &Event{Type: typ, Cancelable: cancelable}
}

func NewMouse(typ Type, m Mouse) *Event {
	return &Event{Type: typ, Cancelable: true, Mouse: &m}
}

// PreventDefault marks a cancelable event as handled. It has no effect on
// events that are not cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.DefaultPrevented = true
	}
}
