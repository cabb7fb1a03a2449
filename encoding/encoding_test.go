package encoding_test

import (
	"io"
	"strings"
	"testing"

	"github.com/lestrrat-go/dax/encoding"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, label := range []string{"UTF-8", "utf8", "Shift_JIS", "iso-8859-1", "windows-1252", "EUC-JP"} {
		require.NotNil(t, encoding.Load(label), "Load(%q)", label)
	}
	require.Nil(t, encoding.Load("no-such-charset"))
}

func TestISO88591(t *testing.T) {
	e := encoding.Load("iso-8859-1")
	dec := e.NewDecoder()
	enc := e.NewEncoder()
	for i := 0x20; i <= 0xff; i++ {
		if i >= 0x7f && i <= 0x9f {
			continue
		}
		v := string([]byte{byte(i)})
		s, err := dec.String(v)
		require.NoError(t, err, "decode %#x", i)

		v1, err := enc.String(s)
		require.NoError(t, err, "encode %q", s)
		require.Equal(t, v, v1, "round trip %#x", i)
	}
}

func TestNewReaderLabel(t *testing.T) {
	t.Run("Latin1", func(t *testing.T) {
		r, err := encoding.NewReaderLabel("ISO-8859-1", strings.NewReader("caf\xe9"))
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, "café", string(b))
	})
	t.Run("WHATWGFallback", func(t *testing.T) {
		r, err := encoding.NewReaderLabel("l1", strings.NewReader("caf\xe9"))
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, "café", string(b))
	})
	t.Run("Unknown", func(t *testing.T) {
		_, err := encoding.NewReaderLabel("no-such-charset", strings.NewReader(""))
		require.ErrorIs(t, err, encoding.ErrUnknownEncoding)
	})
}
