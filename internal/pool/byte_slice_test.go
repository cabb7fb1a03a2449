package pool_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/lestrrat-go/dax/internal/pool"
	"github.com/stretchr/testify/require"
)

func TestByteSlice(t *testing.T) {
	bs := pool.ByteSlice()

	t.Run("Get", func(t *testing.T) {
		b := bs.Get()
		require.Empty(t, b)
		require.GreaterOrEqual(t, cap(b), 64)

		b = append(b, "<svg/>"...)
		bs.Put(b)
		require.Empty(t, bs.Get(), "slices come back empty")
	})

	t.Run("GetCapacity", func(t *testing.T) {
		b := bs.GetCapacity(4096)
		require.Empty(t, b)
		require.GreaterOrEqual(t, cap(b), 4096)
		bs.Put(b)
	})

	t.Run("Concurrent", func(t *testing.T) {
		const n = 30
		const size = 128
		results := make([]string, n)

		var wg sync.WaitGroup
		wg.Add(n)
		for i := range n {
			go func() {
				defer wg.Done()
				b := bs.GetCapacity(size)
				defer bs.Put(b)
				for range size {
					b = append(b, byte('!'+i))
				}
				results[i] = string(b)
			}()
		}
		wg.Wait()

		for i, s := range results {
			require.Equal(t, string(bytes.Repeat([]byte{byte('!' + i)}, size)), s)
		}
	})
}
