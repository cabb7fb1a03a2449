package s11n_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/lestrrat-go/dax"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/s11n"
	"github.com/stretchr/testify/require"
)

func TestDumpDoc(t *testing.T) {
	const src = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
		`<!-- c --><rect width="1" x="2"/><text>a &amp; b &lt; c</text>` +
		`<image xlink:href="p.png" title="q&quot;"/><foo bar="1"><desc>kept</desc></foo></svg>`

	doc, err := dax.Parse(context.Background(), []byte(`<?xml version="1.0"?>`+src))
	require.NoError(t, err)

	var buf bytes.Buffer
	var d s11n.Dumper
	require.NoError(t, d.DumpDoc(&buf, doc))
	require.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+
		`<!-- c --><rect width="1" x="2"/><text>a &amp; b &lt; c</text>`+
		`<image xlink:href="p.png" title="q&#34;"/><foo bar="1"><desc>kept</desc></foo></svg>`+"\n", buf.String())

	t.Run("RoundTrip", func(t *testing.T) {
		again, err := dax.Parse(context.Background(), buf.Bytes())
		require.NoError(t, err)

		var buf2 bytes.Buffer
		require.NoError(t, d.DumpDoc(&buf2, again))
		require.Equal(t, buf.String(), buf2.String())
	})
}

func TestDumpNamespaces(t *testing.T) {
	testcases := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{
			Name:     "NestedDefault",
			Input:    `<svg xmlns="http://www.w3.org/2000/svg"><g><foo xmlns="urn:x"/></g><rect/></svg>`,
			Expected: `<svg xmlns="http://www.w3.org/2000/svg"><g><foo xmlns="urn:x"/></g><rect/></svg>`,
		},
		{
			Name:     "RedeclaredPrefix",
			Input:    `<svg xmlns:a="urn:a1"><g a:k="1"/><g xmlns:a="urn:a2" a:k="2"/></svg>`,
			Expected: `<svg xmlns:a="urn:a1"><g a:k="1"/><g xmlns:a="urn:a2" a:k="2"/></svg>`,
		},
		{
			Name:     "PrefixFromDescendant",
			Input:    `<svg><g xmlns:ev="http://www.w3.org/2001/xml-events"><handler ev:event="click"/></g></svg>`,
			Expected: `<svg xmlns:ev="http://www.w3.org/2001/xml-events"><g xmlns:ev="http://www.w3.org/2001/xml-events"><handler ev:event="click"/></g></svg>`,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			doc, err := dax.Parse(context.Background(), []byte(tc.Input))
			require.NoError(t, err)

			var buf bytes.Buffer
			var d s11n.Dumper
			require.NoError(t, d.DumpNode(&buf, doc.DocumentElement()))
			require.Equal(t, tc.Expected, buf.String())

			again, err := dax.Parse(context.Background(), buf.Bytes())
			require.NoError(t, err, "the output is well-formed")
			require.Equal(t, doc.DocumentElement().NamespaceURI(), again.DocumentElement().NamespaceURI())
		})
	}

	t.Run("NestedDefaultKeepsNamespace", func(t *testing.T) {
		doc, err := dax.Parse(context.Background(), []byte(`<svg xmlns="http://www.w3.org/2000/svg"><g><foo xmlns="urn:x"/></g><rect/></svg>`))
		require.NoError(t, err)

		var buf bytes.Buffer
		var d s11n.Dumper
		require.NoError(t, d.DumpDoc(&buf, doc))

		again, err := dax.Parse(context.Background(), buf.Bytes())
		require.NoError(t, err)
		g, ok := again.DocumentElement().FirstChild().(*node.Element)
		require.True(t, ok)
		foo, ok := g.FirstChild().(*node.Element)
		require.True(t, ok)
		require.Equal(t, "urn:x", foo.NamespaceURI())
		require.Equal(t, node.KindUnknown, foo.Kind())

		rect, ok := g.NextSibling().(*node.Element)
		require.True(t, ok)
		require.Equal(t, node.SVGNamespace, rect.NamespaceURI())
		require.Equal(t, node.KindRect, rect.Kind())
	})
}

func TestDumpNode(t *testing.T) {
	doc := node.NewDocument()
	root, err := doc.CreateElement("svg")
	require.NoError(t, err)
	require.NoError(t, doc.AddChild(root))
	g, err := doc.CreateElement("g")
	require.NoError(t, err)
	require.NoError(t, root.AddChild(g))
	require.NoError(t, g.SetAttribute("transform", "translate(1 2)"))
	require.NoError(t, g.SetAttribute("id", "a\tb"))
	require.NoError(t, g.AddChild(doc.CreateTextNode("x\ny")))

	var d s11n.Dumper
	t.Run("Subtree", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, d.DumpNode(&buf, g))
		require.Equal(t, `<g transform="translate(1 2)" id="a&#9;b">x`+"\n"+`y</g>`, buf.String())
	})

	t.Run("Root", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, d.DumpNode(&buf, root))
		require.Equal(t, `<svg><g transform="translate(1 2)" id="a&#9;b">x`+"\n"+`y</g></svg>`, buf.String())
	})
}

func TestEscapeText(t *testing.T) {
	testcases := []struct {
		Name     string
		Input    string
		Newline  bool
		Expected string
	}{
		{Name: "Plain", Input: "hello", Expected: "hello"},
		{Name: "Markup", Input: "a<b>&c", Expected: "a&lt;b&gt;&amp;c"},
		{Name: "KeepNewline", Input: "a\nb", Expected: "a\nb"},
		{Name: "EscapeNewline", Input: "a\nb", Newline: true, Expected: "a&#10;b"},
		{Name: "CarriageReturn", Input: "a\rb", Expected: "a&#13;b"},
		{Name: "Invalid", Input: "a\x01b\xffc", Expected: "a�b�c"},
		{Name: "Unicode", Input: "ü→", Expected: "ü→"},
	}
	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, s11n.EscapeText(&buf, []byte(tc.Input), tc.Newline))
			require.Equal(t, tc.Expected, buf.String())
		})
	}
}
