package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	tbl := NewTable[string]()

	h := tbl.Put("alpha")
	require.NotZero(t, h)

	v, ok := tbl.Get(h)
	require.True(t, ok)
	assert.Equal(t, "alpha", v)
	assert.Equal(t, 1, tbl.Len())
}

func TestZeroHandleNeverValidates(t *testing.T) {
	tbl := NewTable[int]()
	tbl.Put(7)

	_, ok := tbl.Get(0)
	assert.False(t, ok)
}

func TestUnknownHandle(t *testing.T) {
	tbl := NewTable[int]()
	_, ok := tbl.Get(99)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	tbl := NewTable[string]()
	h := tbl.Put("beta")

	v, ok := tbl.Remove(h)
	require.True(t, ok)
	assert.Equal(t, "beta", v)
	assert.Zero(t, tbl.Len())

	_, ok = tbl.Get(h)
	assert.False(t, ok)

	_, ok = tbl.Remove(h)
	assert.False(t, ok)
}

func TestHandlesNeverReused(t *testing.T) {
	tbl := NewTable[int]()

	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		h := tbl.Put(i)
		require.False(t, seen[h], "handle %d issued twice", h)
		seen[h] = true
		tbl.Remove(h)
	}
}

func TestHandlesMonotonic(t *testing.T) {
	tbl := NewTable[int]()
	prev := uint64(0)
	for i := 0; i < 10; i++ {
		h := tbl.Put(i)
		assert.Greater(t, h, prev)
		prev = h
	}
}

func TestConcurrentUse(t *testing.T) {
	tbl := NewTable[int]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h := tbl.Put(n)
				_, ok := tbl.Get(h)
				assert.True(t, ok)
				tbl.Remove(h)
			}
		}(i)
	}
	wg.Wait()
	assert.Zero(t, tbl.Len())
}
