package cache_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/lestrrat-go/dax/cache"
	"github.com/stretchr/testify/require"
)

type baseIRI string

func (b baseIRI) BaseIRI() string {
	return string(b)
}

func TestEntryForHref(t *testing.T) {
	c := cache.New()

	testcases := []struct {
		base     string
		href     string
		expected string
	}{
		{"http://a.example.org/bbb/ccc/", "foo.jpg", "http://a.example.org/bbb/ccc/foo.jpg"},
		{"http://a.example.org/bbb/ccc/", "../foo.jpg", "http://a.example.org/bbb/foo.jpg"},
		{"http://a.example.org/bbb/ccc/d.svg", "/img/x.png", "http://a.example.org/img/x.png"},
		{"http://a.example.org/bbb/", "http://b.example.org/y.png", "http://b.example.org/y.png"},
		{"file:///srv/doc/", "img/z.png", "file:///srv/doc/img/z.png"},
	}

	for _, tc := range testcases {
		t.Run(tc.href, func(t *testing.T) {
			e := c.EntryForHref(baseIRI(tc.base), tc.href)
			require.Equal(t, tc.expected, e.URI())
		})
	}
}

func TestEntryForURI(t *testing.T) {
	t.Run("Deduplicates", func(t *testing.T) {
		c := cache.New()
		e1 := c.EntryForURI("http://example.org/a.png")
		e2 := c.EntryForURI("http://example.org/a.png")
		require.Same(t, e1, e2, "same uri yields the same entry")
		require.Equal(t, 1, c.Len())

		e3 := c.EntryForURI("http://example.org/b.png")
		require.NotSame(t, e1, e3)
		require.Equal(t, 2, c.Len())
	})

	t.Run("FileIsReadyImmediately", func(t *testing.T) {
		c := cache.New()
		e := c.EntryForURI("file:///tmp/a.png")
		require.True(t, e.Ready())
		require.Equal(t, "file:///tmp/a.png", e.LocalURI())

		p, err := e.LocalPath()
		require.NoError(t, err)
		require.Equal(t, filepath.FromSlash("/tmp/a.png"), p)

		var called bool
		e.OnReady(func(*cache.Entry) { called = true })
		require.True(t, called, "observers registered after readiness run immediately")
	})

	t.Run("UnsupportedSchemeWarns", func(t *testing.T) {
		var buf bytes.Buffer
		c := cache.New(cache.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		e := c.EntryForURI("http://example.org/a.png")
		require.False(t, e.Ready())
		require.Contains(t, buf.String(), "unsupported resource scheme")

		_, err := e.LocalPath()
		require.ErrorIs(t, err, cache.ErrNotReady)
	})

	t.Run("Fetcher", func(t *testing.T) {
		var pending []*cache.Entry
		c := cache.New(cache.WithFetcher(cache.FetchFunc(func(e *cache.Entry) {
			pending = append(pending, e)
		})))

		e := c.EntryForURI("http://example.org/a.png")
		require.False(t, e.Ready())
		require.Len(t, pending, 1)

		var order []int
		e.OnReady(func(*cache.Entry) { order = append(order, 1) })
		e.OnReady(func(*cache.Entry) { order = append(order, 2) })

		e.SetLocalURI("ftp://nope")
		require.False(t, e.Ready(), "non-file local uri is rejected")

		pending[0].SetLocalURI("file:///var/cache/a.png")
		require.True(t, e.Ready())
		require.Equal(t, []int{1, 2}, order)

		e.SetLocalURI("file:///var/cache/a2.png")
		require.Equal(t, []int{1, 2}, order, "observers fire once")
	})
}

func TestResolveIRI(t *testing.T) {
	s, err := cache.ResolveIRI("", "foo.jpg")
	require.NoError(t, err)
	require.Equal(t, "foo.jpg", s)

	_, err = cache.ResolveIRI("relative/", "foo.jpg")
	require.ErrorIs(t, err, cache.ErrRelativeIRI)

	s, err = cache.ResolveIRI("http://a/b/c/d;p?q", "g?y")
	require.NoError(t, err)
	require.Equal(t, "http://a/b/c/g?y", s)
}
