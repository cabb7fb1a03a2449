// Package script runs the ECMAScript found in a document: <script>
// elements, <handler> elements and the listeners and timers they create.
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dop251/goja"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type identScheduler struct{}
type identLogger struct{}

// WithScheduler sets the event loop timers are scheduled on. Without it
// the engine creates a Loop, available through Engine.Scheduler.
func WithScheduler(s Scheduler) Option {
	return option.New(identScheduler{}, s)
}

// WithLogger sets the logger for script failures. Without it the
// document's logger is used.
func WithLogger(l *slog.Logger) Option {
	return option.New(identLogger{}, l)
}

// Engine binds a document to a goja runtime. Like the document, it must
// only be used from one goroutine.
type Engine struct {
	vm        *goja.Runtime
	doc       *node.Document
	scheduler Scheduler
	logger    *slog.Logger

	elements  map[*node.Element]*goja.Object
	timers    map[*Timer]*goja.Object
	listeners map[*goja.Object]*jsListener
}

func New(doc *node.Document, options ...Option) *Engine {
	e := &Engine{
		vm:        goja.New(),
		doc:       doc,
		elements:  make(map[*node.Element]*goja.Object),
		timers:    make(map[*Timer]*goja.Object),
		listeners: make(map[*goja.Object]*jsListener),
	}
	for _, o := range options {
		switch o.Ident() {
		case identScheduler{}:
			if s, ok := o.Value().(Scheduler); ok {
				e.scheduler = s
			}
		case identLogger{}:
			if l, ok := o.Value().(*slog.Logger); ok {
				e.logger = l
			}
		}
	}
	if e.scheduler == nil {
		e.scheduler = NewLoop()
	}
	if e.logger == nil {
		e.logger = doc.Logger()
	}

	e.vm.Set("document", e.bindDocument())
	e.vm.Set("createTimer", e.createTimer)
	return e
}

func (e *Engine) Runtime() *goja.Runtime {
	return e.vm
}

func (e *Engine) Scheduler() Scheduler {
	return e.scheduler
}

// RunString evaluates src in the global scope.
func (e *Engine) RunString(ctx context.Context, src string) (goja.Value, error) {
	return e.run(ctx, "", src)
}

func (e *Engine) run(ctx context.Context, name, src string) (goja.Value, error) {
	stop := context.AfterFunc(ctx, func() {
		e.vm.Interrupt(ctx.Err())
	})
	defer func() {
		stop()
		e.vm.ClearInterrupt()
	}()
	return e.vm.RunScript(name, src)
}

// RunScripts registers every <handler> element on its parent and then
// runs every <script> element, in document order. A script that fails
// does not stop the others; the failures are returned together. If the
// root element is already loaded when the scripts are done, its load
// listeners are notified, since they could not have been registered
// while it loaded.
func (e *Engine) RunScripts(ctx context.Context) error {
	root := e.doc.DocumentElement()
	if root == nil {
		return nil
	}

	var scripts []*node.Element
	walk(root, func(el *node.Element) {
		switch d := el.Data().(type) {
		case *node.Handler:
			e.registerHandler(el, d)
		case *node.Script:
			scripts = append(scripts, el)
		}
	})

	var errs []error
	for _, el := range scripts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.runScript(ctx, el, el.Data().(*node.Script)); err != nil {
			e.logger.Warn("script failed", slog.String("element", el.TagName()), slog.String("id", el.ID()), slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if root.IsLoaded() && root.HasEventListeners(event.Load) {
		root.DispatchEvent(event.New(event.Load, false))
	}
	return errors.Join(errs...)
}

func walk(el *node.Element, fn func(*node.Element)) {
	fn(el)
	for c := el.FirstChild(); c != nil; c = c.NextSibling() {
		if child, ok := c.(*node.Element); ok {
			walk(child, fn)
		}
	}
}

func (e *Engine) runScript(ctx context.Context, el *node.Element, d *node.Script) error {
	if !d.IsECMAScript() {
		e.logger.Warn("unsupported script type", slog.String("type", d.Type))
		return nil
	}

	name := el.ID()
	src := el.TextContent()
	if d.Href != "" {
		entry := e.doc.Cache().EntryForHref(el, d.Href)
		if !entry.Ready() {
			return fmt.Errorf("script %s is not available", entry.URI())
		}
		path, err := entry.LocalPath()
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read script %s: %w", entry.URI(), err)
		}
		name = entry.URI()
		src = string(b)
	}

	_, err := e.run(ctx, name, src)
	return err
}

func (e *Engine) registerHandler(el *node.Element, d *node.Handler) {
	target := el.ParentElement()
	if target == nil || d.Event == event.Unknown {
		e.logger.Warn("handler ignored", slog.String("id", el.ID()), slog.String("event", d.EventName))
		return
	}
	if !d.IsECMAScript() {
		e.logger.Warn("unsupported handler type", slog.String("type", d.Type))
		return
	}

	body := strings.TrimSpace(el.TextContent())
	v, err := e.vm.RunString("(function(evt) {\n" + body + "\n})")
	if err != nil {
		e.logger.Warn("failed to compile handler", slog.String("id", el.ID()), slog.String("error", err.Error()))
		return
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return
	}
	target.AddEventListener(d.Event, &jsListener{engine: e, fn: fn}, false)
}
