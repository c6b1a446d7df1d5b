package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New[float64](10)

	c.Set("USD:EUR", 0.92, time.Hour)

	got, ok := c.Get("USD:EUR")
	require.True(t, ok)
	assert.Equal(t, 0.92, got)

	_, ok = c.Get("EUR:USD")
	assert.False(t, ok, "directed pairs are distinct keys")
}

func TestCache_Replace(t *testing.T) {
	c := New[float64](10)

	c.Set("USD:EUR", 0.92, time.Hour)
	c.Set("USD:EUR", 0.95, time.Hour)

	got, ok := c.Get("USD:EUR")
	require.True(t, ok)
	assert.Equal(t, 0.95, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ExpiryIsLazy(t *testing.T) {
	c := New[float64](10)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("USD:EUR", 0.92, time.Hour)

	_, ok := c.Get("USD:EUR")
	require.True(t, ok)

	current = current.Add(time.Hour + time.Second)

	_, ok = c.Get("USD:EUR")
	assert.False(t, ok, "expired entry must be a miss")
	assert.Equal(t, 0, c.Len(), "expired entry is deleted on read")
}

func TestCache_HasExpirySideEffect(t *testing.T) {
	c := New[float64](10)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("USD:JPY", 147.2, time.Minute)
	assert.True(t, c.Has("USD:JPY"))

	current = current.Add(2 * time.Minute)
	assert.False(t, c.Has("USD:JPY"))
	assert.Equal(t, 0, c.Len())
}

func TestCache_EvictionAtCapacity(t *testing.T) {
	c := New[int](3)

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("c", 3, time.Hour)
	c.Set("d", 4, time.Hour)

	assert.Equal(t, 3, c.Len(), "size never exceeds capacity")

	_, ok := c.Get("a")
	assert.False(t, ok, "least recently inserted entry is evicted")
	for _, key := range []string{"b", "c", "d"} {
		assert.True(t, c.Has(key), "entry %q should survive eviction", key)
	}
}

func TestCache_ReplaceDoesNotEvict(t *testing.T) {
	c := New[int](2)

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	// Replacing an existing key at capacity must not push anything out.
	c.Set("a", 10, time.Hour)

	assert.True(t, c.Has("a"))
	assert.True(t, c.Has("b"))
	assert.Equal(t, 2, c.Len())
}

func TestCache_ReplaceRefreshesInsertionOrder(t *testing.T) {
	c := New[int](2)

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("a", 10, time.Hour) // re-insertion moves "a" to the back
	c.Set("c", 3, time.Hour)

	_, ok := c.Get("b")
	assert.False(t, ok, "oldest insertion (b) is evicted")
	assert.True(t, c.Has("a"))
	assert.True(t, c.Has("c"))
}

func TestCache_Clear(t *testing.T) {
	c := New[int](10)

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("a"))

	// The cache stays usable after a reset.
	c.Set("c", 3, time.Hour)
	assert.True(t, c.Has("c"))
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := New[int](0)

	for i := 0; i < DefaultCapacity+50; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i, time.Hour)
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}

func TestCache_QueueStaysBoundedUnderChurn(t *testing.T) {
	c := New[float64](10)
	current := time.Now()
	c.now = func() time.Time { return current }

	// A fixed pair set refreshed below capacity never triggers eviction, so
	// stale queue slots must be reclaimed on the write path instead.
	keys := []string{"USD:EUR", "USD:IDR", "USD:JPY", "EUR:GBP", "GBP:JPY"}
	for cycle := 0; cycle < 1000; cycle++ {
		for _, key := range keys {
			c.Set(key, float64(cycle), time.Minute)
		}
		current = current.Add(2 * time.Minute)
		for _, key := range keys {
			c.Has(key) // expires and deletes the entry
		}
	}

	assert.Equal(t, 0, c.Len())
	assert.LessOrEqual(t, len(c.queue), 2*c.capacity+1,
		"queue bookkeeping must stay proportional to capacity")

	// And under pure replacement of live entries.
	for i := 0; i < 1000; i++ {
		c.Set("USD:EUR", float64(i), time.Hour)
	}
	assert.Equal(t, 1, c.Len())
	assert.LessOrEqual(t, len(c.queue), 2*c.capacity+1)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i%60)
				c.Set(key, g*1000+i, time.Minute)
				c.Get(key)
				c.Has(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
