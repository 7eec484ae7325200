package geo

import "sync"

// TickCache is a single-slot cache valid for exactly one tick.
// An entry is readable iff its tick equals the current tick and its key matches.
type TickCache[K comparable, V any] struct {
	mu    sync.Mutex
	valid bool
	tick  int64
	key   K
	value V
}

// Get returns the cached value for (tick, key).
func (c *TickCache[K, V]) Get(tick int64, key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.tick != tick || c.key != key {
		var zero V
		return zero, false
	}
	return c.value, true
}

// Put replaces the slot. The previous value is dropped.
func (c *TickCache[K, V]) Put(tick int64, key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = true
	c.tick = tick
	c.key = key
	c.value = value
}

// Invalidate empties the slot.
func (c *TickCache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zeroK K
	var zeroV V
	c.valid = false
	c.key = zeroK
	c.value = zeroV
}

// Tick returns the tick of the cached entry, false if empty.
func (c *TickCache[K, V]) Tick() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick, c.valid
}
