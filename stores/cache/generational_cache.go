package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Generation is captured by Begin and checked again by Set.
type Generation uint64

// Cache wraps ttlcache with generation-based invalidation tracking.
//
// A reader that misses calls Begin, fetches from the node and then calls Set. If InvalidateAll
// ran in between, the generation has moved on and the fetched value is dropped, so a fetch that
// started before a new block was seen can never repopulate a tip-derived entry after it.
//
// Values go in and come out through the clone func, callers never hold an alias to a cached value.
type Cache[K comparable, V any] struct {
	name       string
	ttlCache   *ttlcache.Cache[K, V]
	clone      func(V) V
	mu         sync.Mutex // orders Set against InvalidateAll
	generation atomic.Uint64
	stopped    atomic.Bool
}

// New creates a started cache bounded to capacity entries (least recently used evicted first)
// with an absolute ttl per entry. A nil clone returns values as stored.
func New[K comparable, V any](name string, capacity int, ttl time.Duration, clone func(V) V) *Cache[K, V] {
	initPrometheusMetrics()

	if clone == nil {
		clone = func(v V) V { return v }
	}

	options := []ttlcache.Option[K, V]{
		ttlcache.WithTTL[K, V](ttl),
		ttlcache.WithDisableTouchOnHit[K, V](),
	}

	if capacity > 0 {
		options = append(options, ttlcache.WithCapacity[K, V](uint64(capacity)))
	}

	c := &Cache[K, V]{
		name:     name,
		ttlCache: ttlcache.New[K, V](options...),
		clone:    clone,
	}

	go c.ttlCache.Start()

	return c
}

func (c *Cache[K, V]) Name() string {
	return c.name
}

// Begin captures the current generation for a later Set.
func (c *Cache[K, V]) Begin() Generation {
	return Generation(c.generation.Load())
}

// Get returns a copy of the cached value. A miss is never an error.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	item := c.ttlCache.Get(key)
	if item == nil || item.IsExpired() {
		prometheusCacheMisses.WithLabelValues(c.name).Inc()

		var zero V

		return zero, false
	}

	prometheusCacheHits.WithLabelValues(c.name).Inc()

	return c.clone(item.Value()), true
}

// Set replaces the entry for key, unless the cache was invalidated since gen was taken.
func (c *Cache[K, V]) Set(gen Generation, key K, value V) bool {
	value = c.clone(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if uint64(gen) != c.generation.Load() {
		prometheusCacheStaleWrites.WithLabelValues(c.name).Inc()
		return false
	}

	c.ttlCache.Set(key, value, ttlcache.DefaultTTL)

	return true
}

// InvalidateAll drops every entry and moves the generation on. On an empty cache only the
// generation changes.
func (c *Cache[K, V]) InvalidateAll() {
	c.mu.Lock()
	c.generation.Add(1)
	c.ttlCache.DeleteAll()
	c.mu.Unlock()

	prometheusCacheInvalidations.WithLabelValues(c.name).Inc()
}

func (c *Cache[K, V]) Len() int {
	return c.ttlCache.Len()
}

// Stop halts the expiry goroutine. It is safe to call Stop multiple times.
func (c *Cache[K, V]) Stop() {
	if c.stopped.CompareAndSwap(false, true) {
		c.ttlCache.Stop()
	}
}
