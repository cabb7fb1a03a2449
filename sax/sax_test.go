package sax_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/lestrrat-go/dax/sax"
	"github.com/stretchr/testify/require"
)

// recorder turns events into a flat list of strings.
func recorder(events *[]string) *sax.SAX2 {
	s := sax.New()
	s.StartDocumentHandler = func(context.Context) error {
		*events = append(*events, "startDocument")
		return nil
	}
	s.EndDocumentHandler = func(context.Context) error {
		*events = append(*events, "endDocument")
		return nil
	}
	s.StartElementNSHandler = func(_ context.Context, elem sax.ParsedElement, empty bool) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, "start %s {%s} empty=%t", elem.Name(), elem.URI(), empty)
		for _, a := range elem.Attributes() {
			fmt.Fprintf(&sb, " %s{%s}=%s", a.Name(), a.URI(), a.Value())
		}
		*events = append(*events, sb.String())
		return nil
	}
	s.EndElementNSHandler = func(_ context.Context, elem sax.ParsedElement) error {
		*events = append(*events, "end "+elem.Name())
		return nil
	}
	s.CharactersHandler = func(_ context.Context, data []byte) error {
		*events = append(*events, "text "+string(data))
		return nil
	}
	s.CommentHandler = func(_ context.Context, data []byte) error {
		*events = append(*events, "comment "+string(data))
		return nil
	}
	s.ProcessingInstructionHandler = func(_ context.Context, target, data string) error {
		*events = append(*events, "pi "+target+" "+data)
		return nil
	}
	return s
}

func parse(t *testing.T, input string) ([]string, error) {
	t.Helper()
	r, err := sax.NewReader(strings.NewReader(input))
	require.NoError(t, err)
	var events []string
	err = r.Parse(context.Background(), recorder(&events))
	return events, err
}

func TestReader(t *testing.T) {
	t.Run("EmptyElements", func(t *testing.T) {
		events, err := parse(t, `<?xml version="1.0"?><svg><desc>T</desc><rect x="10"/><g></g></svg>`)
		require.NoError(t, err)
		require.Equal(t, []string{
			"startDocument",
			"start svg {} empty=false",
			"start desc {} empty=false",
			"text T",
			"end desc",
			"start rect {} empty=true x{}=10",
			"start g {} empty=false",
			"end g",
			"end svg",
			"endDocument",
		}, events)
	})

	t.Run("Namespaces", func(t *testing.T) {
		const input = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
			`<image xlink:href="a.png" xml:base="b/"/>` +
			`<g xmlns:xlink="urn:shadow"><image xlink:href="c.png"/></g>` +
			`<image xlink:href="d.png"/>` +
			`</svg>`
		events, err := parse(t, input)
		require.NoError(t, err)
		require.Equal(t, []string{
			"startDocument",
			"start svg {http://www.w3.org/2000/svg} empty=false xmlns{http://www.w3.org/2000/xmlns/}=http://www.w3.org/2000/svg xmlns:xlink{http://www.w3.org/2000/xmlns/}=http://www.w3.org/1999/xlink",
			"start image {http://www.w3.org/2000/svg} empty=true xlink:href{http://www.w3.org/1999/xlink}=a.png xml:base{http://www.w3.org/XML/1998/namespace}=b/",
			"start g {http://www.w3.org/2000/svg} empty=false xmlns:xlink{http://www.w3.org/2000/xmlns/}=urn:shadow",
			"start image {http://www.w3.org/2000/svg} empty=true xlink:href{urn:shadow}=c.png",
			"end g",
			"start image {http://www.w3.org/2000/svg} empty=true xlink:href{http://www.w3.org/1999/xlink}=d.png",
			"end svg",
			"endDocument",
		}, events)
	})

	t.Run("CommentsAndPI", func(t *testing.T) {
		events, err := parse(t, `<svg><!-- hi --><?app data?></svg>`)
		require.NoError(t, err)
		require.Contains(t, events, "comment  hi ")
		require.Contains(t, events, "pi app data")
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := parse(t, `<svg><g></svg>`)
		require.ErrorIs(t, err, sax.ErrMismatchedEndTag)

		_, err = parse(t, `<svg><g>`)
		require.ErrorIs(t, err, sax.ErrUnexpectedEOF)

		_, err = parse(t, `<svg/><svg/>`)
		require.ErrorIs(t, err, sax.ErrMultipleRootsFound)

		_, err = parse(t, `<svg attr=></svg>`)
		require.Error(t, err)

		_, err = sax.NewReader(nil)
		require.ErrorIs(t, err, sax.ErrNilInput)
	})

	t.Run("HandlerErrorStops", func(t *testing.T) {
		r, err := sax.NewReader(strings.NewReader(`<svg><g/><g/></svg>`))
		require.NoError(t, err)

		stop := fmt.Errorf("stop")
		var count int
		h := sax.New()
		h.StartElementNSHandler = func(context.Context, sax.ParsedElement, bool) error {
			count++
			if count == 2 {
				return stop
			}
			return nil
		}
		require.ErrorIs(t, r.Parse(context.Background(), h), stop)
		require.Equal(t, 2, count)
	})

	t.Run("Locator", func(t *testing.T) {
		r, err := sax.NewReader(strings.NewReader("<svg>\n<g/>\n</svg>"))
		require.NoError(t, err)

		var loc sax.DocumentLocator
		var lines []int
		h := sax.New()
		h.SetDocumentLocatorHandler = func(_ context.Context, l sax.DocumentLocator) error {
			loc = l
			return nil
		}
		h.StartElementNSHandler = func(context.Context, sax.ParsedElement, bool) error {
			lines = append(lines, loc.Line())
			return nil
		}
		require.NoError(t, r.Parse(context.Background(), h))
		require.Equal(t, []int{1, 2}, lines)
	})

	t.Run("Latin1", func(t *testing.T) {
		events, err := parse(t, "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><title>caf\xe9</title></svg>")
		require.NoError(t, err)
		require.Contains(t, events, "text café")
	})
}
