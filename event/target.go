package event

import (
	"log/slog"
	"reflect"
)

// Target is anything listeners can be attached to.
type Target interface {
	AddEventListener(typ Type, l Listener, useCapture bool)
	RemoveEventListener(typ Type, l Listener, useCapture bool)
	DispatchEvent(ev *Event) bool
}

type Listener interface {
	HandleEvent(ev *Event)
}

// ListenerFunc adapts a function to the Listener interface. Function
// values are not comparable, so a ListenerFunc cannot be removed once
// added; wrap it in a pointer type if removal is needed.
type ListenerFunc func(*Event)

func (f ListenerFunc) HandleEvent(ev *Event) {
	f(ev)
}

type registration struct {
	listener   Listener
	useCapture bool
}

// Listeners is the listener registry embedded by event targets.
// The zero value is ready to use.
type Listeners struct {
	m map[Type][]registration
}

// Add appends l to the listeners for typ. Adding the same listener twice
// makes it run twice.
func (ls *Listeners) Add(typ Type, l Listener, useCapture bool) {
	if l == nil {
		return
	}
	if ls.m == nil {
		ls.m = make(map[Type][]registration)
	}
	ls.m[typ] = append(ls.m[typ], registration{listener: l, useCapture: useCapture})
}

// Remove drops the first registration matching l and useCapture.
// It reports whether a registration was removed.
func (ls *Listeners) Remove(typ Type, l Listener, useCapture bool) bool {
	list := ls.m[typ]
	for i, r := range list {
		if r.useCapture != useCapture || !sameListener(r.listener, l) {
			continue
		}
		list = append(list[:i:i], list[i+1:]...)
		if len(list) == 0 {
			delete(ls.m, typ)
		} else {
			ls.m[typ] = list
		}
		return true
	}
	return false
}

func sameListener(a, b Listener) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func (ls *Listeners) Len(typ Type) int {
	return len(ls.m[typ])
}

// Dispatch invokes the listeners registered for ev.Type in registration
// order, with ev.Target and ev.CurrentTarget set to self. A dispatch with
// no listeners is logged and does nothing. The return value is false when
// a listener prevented the default action.
func (ls *Listeners) Dispatch(self Target, ev *Event, logger *slog.Logger) bool {
	if ev.Target == nil {
		ev.Target = self
	}
	ev.CurrentTarget = self

	list := ls.m[ev.Type]
	if len(list) == 0 {
		if logger != nil {
			logger.Warn("no listener registered for event", slog.String("event", ev.Type.String()))
		}
		return !ev.DefaultPrevented
	}

	// listeners may register more listeners while running
	snapshot := append([]registration(nil), list...)
	for _, r := range snapshot {
		r.listener.HandleEvent(ev)
	}
	return !ev.DefaultPrevented
}
