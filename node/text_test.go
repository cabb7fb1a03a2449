package node_test

import (
	"testing"

	"github.com/lestrrat-go/dax/node"
	"github.com/stretchr/testify/require"
)

func TestTextAddContent(t *testing.T) {
	n := node.NewText([]byte("Hello "))
	require.NoError(t, n.AddContent([]byte("World!")), "AddContent succeeds")

	buf, err := n.Content(nil)
	require.NoError(t, err, "Content() should succeed")
	require.Equal(t, []byte("Hello World!"), buf, "Content matches")
}

func TestTextData(t *testing.T) {
	n := node.NewText([]byte("abc"))
	n.AppendData("def")
	require.Equal(t, "abcdef", n.Data())
	n.SetData("x")
	require.Equal(t, "x", n.Data())
}

func TestTextAddChild(t *testing.T) {
	n1 := node.NewText([]byte("Hello "))
	n2 := node.NewText([]byte("World!"))

	require.NoError(t, n1.AddChild(n2), "AddChild succeeds")
	require.Equal(t, "Hello World!", n1.Data())
}

func TestTextAddChildInvalidNode(t *testing.T) {
	doc := node.NewDocument()
	n1 := doc.CreateTextNode("Hello ")
	e, err := doc.CreateElement("g")
	require.NoError(t, err)

	require.ErrorIs(t, n1.AddChild(e), node.ErrInvalidOperation, "AddChild fails")
	require.Equal(t, "Hello ", n1.Data())
}
