package memocache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New[string](10, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "alpha")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)
}

func TestTTLExpiry(t *testing.T) {
	c := New[bool](10, 60*time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("slug", true)

	_, ok := c.Get("slug")
	assert.True(t, ok)

	// Just before expiry the entry is still live.
	c.now = func() time.Time { return base.Add(59 * time.Second) }
	_, ok = c.Get("slug")
	assert.True(t, ok)

	// Past the TTL the entry is gone and evicted on access.
	c.now = func() time.Time { return base.Add(61 * time.Second) }
	_, ok = c.Get("slug")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c := New[int](3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the least recently used.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)
	assert.Equal(t, 3, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	for _, k := range []string{"a", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, "entry %q should survive eviction", k)
	}
}

func TestSetExistingRefreshes(t *testing.T) {
	c := New[int](2, 60*time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k", 1)

	c.now = func() time.Time { return base.Add(50 * time.Second) }
	c.Set("k", 2)

	// The rewrite reset the TTL clock.
	c.now = func() time.Time { return base.Add(100 * time.Second) }
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestDelete(t *testing.T) {
	c := New[string](10, time.Minute)
	c.Set("doc", "v1")
	c.Delete("doc")
	_, ok := c.Get("doc")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	c.Delete("doc")
}

func TestBoundHolds(t *testing.T) {
	c := New[int](100, time.Minute)
	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}
	assert.Equal(t, 100, c.Len())
}
