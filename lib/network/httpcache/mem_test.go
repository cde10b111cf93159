package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Adapter = (*MemCacheAdapter)(nil)

func TestMemCacheAdapter(t *testing.T) {
	a := NewMemCacheAdapter(10)
	now := time.Now()

	key := "key"
	resp := &Response{
		Value:      []byte("hello"),
		StatusCode: 200,
		Expiration: now,
	}

	a.Set(key, resp, now)

	cachedResp, ok := a.Get(key)
	require.Equal(t, true, ok)
	require.Equal(t, resp, cachedResp)

	a.Remove(key)
	_, ok = a.Get(key)
	require.False(t, ok)
}

func TestMemCacheAdapterEvictsOldest(t *testing.T) {
	a := NewMemCacheAdapter(2)

	a.Set("a", &Response{Value: []byte("a")}, time.Time{})
	a.Set("b", &Response{Value: []byte("b")}, time.Time{})
	a.Set("c", &Response{Value: []byte("c")}, time.Time{})

	_, ok := a.Get("a")
	require.False(t, ok)

	for _, key := range []string{"b", "c"} {
		cached, ok := a.Get(key)
		require.True(t, ok)
		require.Equal(t, []byte(key), cached.Value)
	}
}
