package script

import (
	"log/slog"

	"github.com/dop251/goja"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/node"
)

// jsListener calls a script function with the event. The same function
// object always maps to the same jsListener so that removal works.
type jsListener struct {
	engine *Engine
	fn     goja.Callable
}

func (l *jsListener) HandleEvent(ev *event.Event) {
	e := l.engine
	if _, err := l.fn(e.bindTarget(ev.CurrentTarget), e.bindEvent(ev)); err != nil {
		e.logger.Warn("event listener failed",
			slog.String("event", ev.Type.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (e *Engine) listenerFor(v goja.Value) *jsListener {
	fn, ok := goja.AssertFunction(v)
	if !ok {
		panic(e.vm.NewTypeError("listener is not a function"))
	}
	obj := v.ToObject(e.vm)
	if l, ok := e.listeners[obj]; ok {
		return l
	}
	l := &jsListener{engine: e, fn: fn}
	e.listeners[obj] = l
	return l
}

// defineListenerMethods adds addEventListener and removeEventListener
// bound to target.
func (e *Engine) defineListenerMethods(obj *goja.Object, target event.Target) {
	parse := func(call goja.FunctionCall, method string) (event.Type, *jsListener, bool) {
		if len(call.Arguments) < 2 {
			panic(e.vm.NewTypeError("Failed to execute '%s': 2 arguments required", method))
		}
		name := call.Argument(0).String()
		typ := event.ParseType(name)
		if typ == event.Unknown {
			e.logger.Warn("unknown event type", slog.String("event", name))
		}
		return typ, e.listenerFor(call.Argument(1)), call.Argument(2).ToBoolean()
	}

	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		typ, l, capture := parse(call, "addEventListener")
		if typ != event.Unknown {
			target.AddEventListener(typ, l, capture)
		}
		return goja.Undefined()
	})
	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		typ, l, capture := parse(call, "removeEventListener")
		target.RemoveEventListener(typ, l, capture)
		return goja.Undefined()
	})
}

func (e *Engine) bindTarget(t event.Target) goja.Value {
	switch t := t.(type) {
	case *node.Element:
		return e.bindElement(t)
	case *Timer:
		if obj, ok := e.timers[t]; ok {
			return obj
		}
	}
	return goja.Null()
}

func (e *Engine) bindDocument() *goja.Object {
	vm := e.vm
	doc := e.doc
	obj := vm.NewObject()

	obj.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		root := doc.DocumentElement()
		if root == nil {
			return goja.Null()
		}
		return e.bindElement(root)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		el := doc.ElementByID(call.Argument(0).String())
		if el == nil {
			return goja.Null()
		}
		return e.bindElement(el)
	})
	return obj
}

func (e *Engine) bindElement(el *node.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := e.elements[el]; ok {
		return obj
	}

	vm := e.vm
	obj := vm.NewObject()
	e.elements[el] = obj

	getter := func(fn func() goja.Value) goja.Value {
		return vm.ToValue(func(goja.FunctionCall) goja.Value { return fn() })
	}

	obj.DefineAccessorProperty("id", getter(func() goja.Value {
		return vm.ToValue(el.ID())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttribute("id", call.Argument(0).String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("localName", getter(func() goja.Value {
		return vm.ToValue(el.LocalName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("tagName", getter(func() goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("namespaceURI", getter(func() goja.Value {
		if uri := el.NamespaceURI(); uri != "" {
			return vm.ToValue(uri)
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("textContent", getter(func() goja.Value {
		return vm.ToValue(el.TextContent())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("parentNode", getter(func() goja.Value {
		return e.bindElement(el.ParentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})
	obj.Set("getAttributeNS", func(call goja.FunctionCall) goja.Value {
		uri, local := nullableString(call.Argument(0)), call.Argument(1).String()
		if !el.HasAttributeNS(uri, local) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttributeNS(uri, local))
	})
	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttribute(call.Argument(0).String(), call.Argument(1).String()); err != nil && !node.IsInvalidValue(err) {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	obj.Set("setAttributeNS", func(call goja.FunctionCall) goja.Value {
		uri := nullableString(call.Argument(0))
		if err := el.SetAttributeNS(uri, call.Argument(1).String(), call.Argument(2).String()); err != nil && !node.IsInvalidValue(err) {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	e.defineListenerMethods(obj, el)
	return obj
}

func nullableString(v goja.Value) string {
	if goja.IsNull(v) || goja.IsUndefined(v) {
		return ""
	}
	return v.String()
}

// createTimer implements the global createTimer(initialInterval,
// repeatInterval).
func (e *Engine) createTimer(call goja.FunctionCall) goja.Value {
	delay := call.Argument(0).ToInteger()
	repeat := int64(-1)
	if len(call.Arguments) > 1 {
		repeat = call.Argument(1).ToInteger()
	}
	return e.bindTimer(NewTimer(e.scheduler, delay, repeat, e.logger))
}

func (e *Engine) bindTimer(t *Timer) *goja.Object {
	vm := e.vm
	obj := vm.NewObject()
	e.timers[t] = obj

	obj.Set("start", func(goja.FunctionCall) goja.Value {
		t.Start()
		return goja.Undefined()
	})
	obj.Set("stop", func(goja.FunctionCall) goja.Value {
		t.Stop()
		return goja.Undefined()
	})
	obj.DefineAccessorProperty("running", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(t.Running())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("delay", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(t.Delay())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		t.SetDelay(call.Argument(0).ToInteger())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("repeatInterval", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(t.RepeatInterval())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		t.SetRepeatInterval(call.Argument(0).ToInteger())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	e.defineListenerMethods(obj, t)
	return obj
}

func (e *Engine) bindEvent(ev *event.Event) *goja.Object {
	vm := e.vm
	obj := vm.NewObject()
	obj.Set("type", ev.Type.String())
	obj.Set("target", e.bindTarget(ev.Target))
	obj.Set("currentTarget", e.bindTarget(ev.CurrentTarget))
	obj.Set("cancelable", ev.Cancelable)
	obj.DefineAccessorProperty("defaultPrevented", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(ev.DefaultPrevented)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.Set("preventDefault", func(goja.FunctionCall) goja.Value {
		ev.PreventDefault()
		return goja.Undefined()
	})
	if m := ev.Mouse; m != nil {
		obj.Set("screenX", m.ScreenX)
		obj.Set("screenY", m.ScreenY)
		obj.Set("clientX", m.ClientX)
		obj.Set("clientY", m.ClientY)
		obj.Set("button", m.Button)
	}
	return obj
}
