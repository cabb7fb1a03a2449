package node_test

import (
	"testing"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/event"
	"github.com/lestrrat-go/dax/node"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	t.Run("LeafLoadsWhenParsed", func(t *testing.T) {
		doc := node.NewDocument()
		e := mustCreate(t, doc, "rect")
		require.False(t, e.IsParsed())
		require.Equal(t, uint32(1), e.Pending(), "self is pending until parsed")

		var parsed bool
		e.OnParsed(func(*node.Element) { parsed = true })
		e.MarkParsed()
		require.True(t, parsed)
		require.True(t, e.IsParsed())
		require.True(t, e.IsLoaded())
		require.Equal(t, uint32(0), e.Pending())
	})

	t.Run("ParentWaitsForAllChildren", func(t *testing.T) {
		doc := node.NewDocument(node.WithCache(cache.New()))
		parent := mustCreate(t, doc, "g")
		c1 := mustCreate(t, doc, "image")
		c2 := mustCreate(t, doc, "image")
		require.NoError(t, c1.SetAttribute("href", "http://example.org/1.png"))
		require.NoError(t, c2.SetAttribute("href", "http://example.org/2.png"))
		require.NoError(t, parent.AddChild(c1))
		require.NoError(t, parent.AddChild(c2))

		c1.MarkParsed()
		c2.MarkParsed()
		require.False(t, c1.IsLoaded(), "waiting for the resource")
		require.False(t, c2.IsLoaded())

		parent.MarkParsed()
		require.False(t, parent.IsLoaded())
		require.Equal(t, uint32(2), parent.Pending())

		c1.Data().(*node.Image).Entry.SetLocalURI("file:///tmp/1.png")
		require.True(t, c1.IsLoaded())
		require.False(t, parent.IsLoaded(), "one child is still pending")
		require.Equal(t, uint32(1), parent.Pending())

		c2.Data().(*node.Image).Entry.SetLocalURI("file:///tmp/2.png")
		require.True(t, c2.IsLoaded())
		require.True(t, parent.IsLoaded())
	})

	t.Run("CascadeIsInnermostFirst", func(t *testing.T) {
		doc := node.NewDocument()
		root := mustCreate(t, doc, "svg")
		g := mustCreate(t, doc, "g")
		img := mustCreate(t, doc, "image")
		require.NoError(t, img.SetAttribute("href", "http://example.org/x.png"))
		require.NoError(t, doc.AddChild(root))
		require.NoError(t, root.AddChild(g))
		require.NoError(t, g.AddChild(img))

		var order []string
		for _, e := range []*node.Element{root, g, img} {
			e.OnLoaded(func(e *node.Element, loaded bool) {
				if loaded {
					order = append(order, e.LocalName())
				}
			})
		}

		img.MarkParsed()
		g.MarkParsed()
		root.MarkParsed()
		require.Empty(t, order)

		// ready is signalled synchronously by whoever completes the fetch
		img.Data().(*node.Image).Entry.SetLocalURI("file:///tmp/x.png")
		require.Equal(t, []string{"image", "g", "svg"}, order)
	})

	t.Run("ReadyResourceDoesNotDefer", func(t *testing.T) {
		doc := node.NewDocument()
		img := mustCreate(t, doc, "image")
		require.NoError(t, img.SetAttribute("href", "file:///tmp/ready.png"))
		img.MarkParsed()
		require.True(t, img.IsLoaded())
		require.True(t, img.Data().(*node.Image).Entry.Ready())
	})

	t.Run("LoadedChildrenAreNotCounted", func(t *testing.T) {
		doc := node.NewDocument()
		parent := mustCreate(t, doc, "g")
		child := mustCreate(t, doc, "rect")
		require.NoError(t, parent.AddChild(child))
		child.MarkParsed()
		parent.MarkParsed()
		require.True(t, parent.IsLoaded())
	})

	t.Run("Unload", func(t *testing.T) {
		doc := node.NewDocument()
		parent := mustCreate(t, doc, "g")
		child := mustCreate(t, doc, "rect")
		require.NoError(t, parent.AddChild(child))
		child.MarkParsed()
		parent.MarkParsed()

		var childEvents, parentEvents []bool
		child.OnLoaded(func(_ *node.Element, loaded bool) { childEvents = append(childEvents, loaded) })
		parent.OnLoaded(func(_ *node.Element, loaded bool) { parentEvents = append(parentEvents, loaded) })

		child.SetLoaded(false)
		require.False(t, child.IsLoaded())
		require.Equal(t, uint32(1), child.Pending())
		require.Equal(t, []bool{false}, childEvents)
		require.True(t, parent.IsLoaded(), "unloading is not cascaded")
		require.Empty(t, parentEvents)
	})

	t.Run("HrefChangeAfterLoad", func(t *testing.T) {
		var fetched []*cache.Entry
		c := cache.New(cache.WithFetcher(cache.FetchFunc(func(e *cache.Entry) { fetched = append(fetched, e) })))
		doc := node.NewDocument(node.WithCache(c))
		img := mustCreate(t, doc, "image")
		img.MarkParsed()
		require.True(t, img.IsLoaded(), "no href, nothing to wait for")

		require.NoError(t, img.SetAttribute("href", "http://example.org/late.png"))
		require.False(t, img.IsLoaded())
		require.Len(t, fetched, 1)

		fetched[0].SetLocalURI("file:///tmp/late.png")
		require.True(t, img.IsLoaded())
	})

	t.Run("LoadEvent", func(t *testing.T) {
		doc := node.NewDocument()
		e := mustCreate(t, doc, "svg")
		var fired int
		e.AddEventListener(event.Load, event.ListenerFunc(func(*event.Event) { fired++ }), false)
		e.MarkParsed()
		e.MarkParsed()
		require.Equal(t, 1, fired)
	})
}
