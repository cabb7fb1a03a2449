package event_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/lestrrat-go/dax/event"
	"github.com/stretchr/testify/require"
)

type target struct {
	listeners event.Listeners
	logger    *slog.Logger
}

func (t *target) AddEventListener(typ event.Type, l event.Listener, useCapture bool) {
	t.listeners.Add(typ, l, useCapture)
}

func (t *target) RemoveEventListener(typ event.Type, l event.Listener, useCapture bool) {
	t.listeners.Remove(typ, l, useCapture)
}

func (t *target) DispatchEvent(ev *event.Event) bool {
	return t.listeners.Dispatch(t, ev, t.logger)
}

type counter struct {
	n int
}

func (c *counter) HandleEvent(*event.Event) {
	c.n++
}

func TestType(t *testing.T) {
	for _, typ := range []event.Type{event.Load, event.Click, event.MouseMove, event.Timer, event.Activate} {
		require.Equal(t, typ, event.ParseType(typ.String()), "round trip of %s", typ)
	}
	require.Equal(t, event.Load, event.ParseType("SVGLoad"))
	require.Equal(t, event.Unknown, event.ParseType("bogus"))
	require.True(t, event.Click.IsMouse())
	require.False(t, event.Timer.IsMouse())
}

func TestDispatch(t *testing.T) {
	t.Run("RegistrationOrder", func(t *testing.T) {
		var tgt target
		var order []string
		tgt.AddEventListener(event.Click, event.ListenerFunc(func(*event.Event) { order = append(order, "first") }), false)
		tgt.AddEventListener(event.Click, event.ListenerFunc(func(*event.Event) { order = append(order, "second") }), false)
		tgt.AddEventListener(event.MouseUp, event.ListenerFunc(func(*event.Event) { order = append(order, "other") }), false)

		require.True(t, tgt.DispatchEvent(event.New(event.Click, false)))
		require.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("DuplicateListenerRunsTwice", func(t *testing.T) {
		var tgt target
		c := &counter{}
		tgt.AddEventListener(event.Load, c, false)
		tgt.AddEventListener(event.Load, c, false)
		tgt.DispatchEvent(event.New(event.Load, false))
		require.Equal(t, 2, c.n)
	})

	t.Run("TargetsAreSet", func(t *testing.T) {
		var tgt target
		var seen *event.Event
		tgt.AddEventListener(event.Click, event.ListenerFunc(func(ev *event.Event) { seen = ev }), false)
		ev := event.NewMouse(event.Click, event.Mouse{ClientX: 3, ClientY: 4, Button: 1})
		tgt.DispatchEvent(ev)
		require.Same(t, ev, seen)
		require.Equal(t, &tgt, seen.Target)
		require.Equal(t, &tgt, seen.CurrentTarget)
		require.Equal(t, 3.0, seen.Mouse.ClientX)
	})

	t.Run("PreventDefault", func(t *testing.T) {
		var tgt target
		tgt.AddEventListener(event.Click, event.ListenerFunc(func(ev *event.Event) { ev.PreventDefault() }), false)
		require.False(t, tgt.DispatchEvent(event.New(event.Click, true)))

		ev := event.New(event.Click, false)
		require.True(t, tgt.DispatchEvent(ev), "non-cancelable events cannot be prevented")
		require.False(t, ev.DefaultPrevented)
	})

	t.Run("NoListenerWarns", func(t *testing.T) {
		var buf bytes.Buffer
		tgt := target{logger: slog.New(slog.NewTextHandler(&buf, nil))}
		require.True(t, tgt.DispatchEvent(event.New(event.Timer, false)))
		require.Contains(t, buf.String(), "no listener registered")
		require.Contains(t, buf.String(), "SVGTimer")
	})

	t.Run("Remove", func(t *testing.T) {
		var tgt target
		c := &counter{}
		tgt.AddEventListener(event.Click, c, false)
		tgt.AddEventListener(event.Click, c, true)

		tgt.RemoveEventListener(event.Click, c, false)
		require.Equal(t, 1, tgt.listeners.Len(event.Click), "only the matching capture flag is removed")

		tgt.DispatchEvent(event.New(event.Click, false))
		require.Equal(t, 1, c.n)

		tgt.RemoveEventListener(event.Click, c, true)
		require.Equal(t, 0, tgt.listeners.Len(event.Click))
	})

	t.Run("RemoveFuncIsNoop", func(t *testing.T) {
		var tgt target
		f := event.ListenerFunc(func(*event.Event) {})
		tgt.AddEventListener(event.Click, f, false)
		require.False(t, tgt.listeners.Remove(event.Click, f, false))
		require.Equal(t, 1, tgt.listeners.Len(event.Click))
	})
}
