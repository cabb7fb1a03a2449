package cache

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
)

type Entry struct {
	uri       string
	localURI  string
	ready     bool
	cache     *Cache
	observers []func(*Entry)
}

// URI is the resolved IRI the entry was requested for.
func (e *Entry) URI() string {
	return e.uri
}

// LocalURI is the file:// location of the resource. It is empty until
// the entry is ready.
func (e *Entry) LocalURI() string {
	return e.localURI
}

func (e *Entry) Ready() bool {
	return e.ready
}

func (e *Entry) Cache() *Cache {
	return e.cache
}

// SetLocalURI records where the resource can be read. A file:// URI makes
// the entry ready and notifies the observers in registration order. Any
// other scheme is logged and the entry stays not ready.
func (e *Entry) SetLocalURI(uri string) {
	if !strings.HasPrefix(uri, "file://") {
		e.logger().Warn("unsupported local resource scheme",
			slog.String("uri", e.uri),
			slog.String("local", uri),
		)
		return
	}

	e.localURI = uri
	if e.ready {
		return
	}
	e.ready = true

	observers := e.observers
	e.observers = nil
	for _, fn := range observers {
		fn(e)
	}
}

// OnReady registers fn to be called once the entry is ready. If it
// already is, fn runs before OnReady returns.
func (e *Entry) OnReady(fn func(*Entry)) {
	if e.ready {
		fn(e)
		return
	}
	e.observers = append(e.observers, fn)
}

// LocalPath converts the local URI to a path on this system.
func (e *Entry) LocalPath() (string, error) {
	if !e.ready {
		return "", fmt.Errorf("%w: %s", ErrNotReady, e.uri)
	}
	u, err := url.Parse(e.localURI)
	if err != nil {
		return "", fmt.Errorf("failed to parse local uri %q: %w", e.localURI, err)
	}
	p := u.Path
	if u.Host != "" && u.Host != "localhost" {
		p = "//" + u.Host + p
	}
	return filepath.FromSlash(p), nil
}

func (e *Entry) logger() *slog.Logger {
	if e.cache == nil {
		return slog.Default()
	}
	return e.cache.logger
}
