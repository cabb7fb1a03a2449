// Package cache keeps track of the external resources a document refers
// to. An Entry records where a resource lives locally once it has been
// fetched and notifies observers when it becomes ready.
//
// A Cache is not safe for concurrent use. Fetchers that complete on
// another goroutine must hand the result back to the goroutine that owns
// the document before calling Entry.SetLocalURI.
package cache

import (
	"io"
	"log/slog"
	"strings"
)

// Fetcher brings a remote resource to local storage. When done it calls
// e.SetLocalURI with a file:// URI.
type Fetcher interface {
	Fetch(e *Entry)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(*Entry)

func (f FetchFunc) Fetch(e *Entry) {
	f(e)
}

// BaseIRIer is implemented by anything that has an effective base IRI,
// typically a document element.
type BaseIRIer interface {
	BaseIRI() string
}

type Cache struct {
	entries map[string]*Entry
	logger  *slog.Logger
	fetcher Fetcher
}

func New(options ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*Entry),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range options {
		switch o.Ident() {
		case identLogger{}:
			if l, ok := o.Value().(*slog.Logger); ok && l != nil {
				c.logger = l
			}
		case identFetcher{}:
			c.fetcher, _ = o.Value().(Fetcher)
		}
	}
	return c
}

func (c *Cache) Logger() *slog.Logger {
	return c.logger
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Lookup returns the entry for uri without creating one.
func (c *Cache) Lookup(uri string) (*Entry, bool) {
	e, ok := c.entries[uri]
	return e, ok
}

// EntryForURI returns the entry for uri, creating and requesting it the
// first time uri is seen. Later calls with the same uri return the same
// entry.
func (c *Cache) EntryForURI(uri string) *Entry {
	if e, ok := c.entries[uri]; ok {
		return e
	}

	e := &Entry{uri: uri, cache: c}
	c.entries[uri] = e
	c.request(e)
	return e
}

// EntryForHref resolves href against the effective base IRI of el and
// returns the entry for the resulting IRI. Absolute http:// and file://
// references are used as is.
func (c *Cache) EntryForHref(el BaseIRIer, href string) *Entry {
	if isDirect(href) || el == nil {
		return c.EntryForURI(href)
	}

	base := el.BaseIRI()
	resolved, err := ResolveIRI(base, href)
	if err != nil {
		c.logger.Warn("failed to resolve reference",
			slog.String("base", base),
			slog.String("uri", href),
			slog.Any("error", err),
		)
		resolved = href
	}
	return c.EntryForURI(resolved)
}

func isDirect(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "file://")
}

func (c *Cache) request(e *Entry) {
	switch {
	case strings.HasPrefix(e.uri, "file://"):
		e.SetLocalURI(e.uri)
	case c.fetcher != nil:
		c.fetcher.Fetch(e)
	default:
		c.logger.Warn("unsupported resource scheme", slog.String("uri", e.uri))
	}
}
