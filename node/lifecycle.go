package node

import (
	"log/slog"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/internal/debug"
)

// lifecycle tracks the parsed/loaded state of an element.
//
// pending counts what the element still waits for: its own parse (the
// initial 1, also held by an unready resource) plus every direct element
// child that was not loaded when the element was parsed.
type lifecycle struct {
	parsed  bool
	loaded  bool
	pending uint32
	waiting *cache.Entry

	parsedObservers []func(*Element)
	loadedObservers []func(*Element, bool)
}

func (e *Element) IsParsed() bool {
	return e.lifecycle.parsed
}

func (e *Element) IsLoaded() bool {
	return e.lifecycle.loaded
}

// Pending returns how many conditions the element is still waiting on
// before it becomes loaded.
func (e *Element) Pending() uint32 {
	return e.lifecycle.pending
}

// OnParsed registers fn to be called when the element is parsed.
func (e *Element) OnParsed(fn func(*Element)) {
	e.lifecycle.parsedObservers = append(e.lifecycle.parsedObservers, fn)
}

// OnLoaded registers fn to be called whenever the loaded state is set.
// The second argument is the new state.
func (e *Element) OnLoaded(fn func(*Element, bool)) {
	e.lifecycle.loadedObservers = append(e.lifecycle.loadedObservers, fn)
}

// MarkParsed records that the element's content has been read. It takes
// effect once. The element then waits for each direct element child that
// is not loaded yet, and image and video elements also wait for their
// resource. When nothing is left to wait for it becomes loaded.
func (e *Element) MarkParsed() {
	lc := &e.lifecycle
	if lc.parsed {
		return
	}
	lc.parsed = true

	if debug.Enabled {
		debug.Printf("Element(%s).MarkParsed", e.TagName())
	}

	for n := e.firstChild; n != nil; n = n.NextSibling() {
		child, ok := n.(*Element)
		if !ok || child.lifecycle.loaded {
			continue
		}
		lc.pending++
		var done bool
		child.OnLoaded(func(_ *Element, loaded bool) {
			if !loaded || done {
				return
			}
			done = true
			e.release()
		})
	}

	for _, fn := range lc.parsedObservers {
		fn(e)
	}

	if e.waitForResource() {
		return
	}
	e.release()
}

// waitForResource looks up the cache entry for the href of an image or
// video. It reports whether the element now waits for the entry; the
// wait holds one pending count, released when the entry becomes ready.
func (e *Element) waitForResource() bool {
	holder, ok := e.data.(interface{ image() *Image })
	if !ok {
		return false
	}
	img := holder.image()
	if img.Href == "" || e.doc == nil {
		return false
	}

	entry := e.doc.cache.EntryForHref(e, img.Href)
	img.Entry = entry
	if entry.Ready() {
		return false
	}

	e.lifecycle.waiting = entry
	entry.OnReady(func(ready *cache.Entry) {
		if e.lifecycle.waiting != ready {
			// superseded by a later href
			return
		}
		e.lifecycle.waiting = nil
		e.release()
	})
	return true
}

// resourceChanged is called when the href of a parsed image or video
// changes. An element that has to wait again goes back to unloaded.
func (e *Element) resourceChanged() {
	lc := &e.lifecycle
	held := lc.waiting != nil
	lc.waiting = nil
	if !e.waitForResource() {
		if held {
			e.release()
		}
		return
	}
	if held {
		return
	}
	if lc.loaded {
		e.SetLoaded(false)
	} else {
		lc.pending++
	}
}

func (e *Element) release() {
	lc := &e.lifecycle
	if lc.pending > 0 {
		lc.pending--
	}
	if lc.pending == 0 && lc.parsed && !lc.loaded {
		e.SetLoaded(true)
	}
}

// SetLoaded sets the loaded state and notifies the OnLoaded observers.
// Setting true notifies the parent, which may become loaded in turn
// before SetLoaded returns. Setting false on a loaded element puts one
// pending count back and is seen by this element's observers only.
func (e *Element) SetLoaded(loaded bool) {
	lc := &e.lifecycle
	if loaded {
		if lc.loaded {
			return
		}
		lc.loaded = true
		lc.pending = 0
	} else {
		if !lc.loaded {
			return
		}
		lc.loaded = false
		lc.pending++
	}

	if debug.Enabled {
		debug.Printf("Element(%s).SetLoaded(%t)", e.TagName(), loaded)
	}

	for _, fn := range lc.loadedObservers {
		fn(e, loaded)
	}

	if loaded && e.listeners.Len(event.Load) > 0 {
		e.logger().Debug("dispatching load", slog.String("element", e.TagName()), slog.String("id", e.id))
		e.DispatchEvent(event.New(event.Load, false))
	}
}
