package errorx

import (
	"maps"
	"slices"
	"sync"
)

// contextMap provides concurrent-safe storage for exception context.
// Entries are only ever upserted, never removed.
type contextMap struct {
	sync.RWMutex
	m map[string]string
}

// newContextMap creates a context container, seeded with a copy of init.
func newContextMap(init map[string]string) *contextMap {
	m := make(map[string]string, max(len(init), 4))
	maps.Copy(m, init)
	return &contextMap{m: m}
}

// Set stores a key-value pair, overwriting any previous value.
func (c *contextMap) Set(key, value string) {
	c.Lock()
	defer c.Unlock()
	c.m[key] = value
}

// Get retrieves a value by its key.
func (c *contextMap) Get(key string) (string, bool) {
	c.RLock()
	defer c.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Len reports the number of entries.
func (c *contextMap) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.m)
}

// Snapshot returns a copy of the entries.
func (c *contextMap) Snapshot() map[string]string {
	c.RLock()
	defer c.RUnlock()
	return maps.Clone(c.m)
}

// Copy creates an independent contextMap with the same entries.
func (c *contextMap) Copy() *contextMap {
	return newContextMap(c.Snapshot())
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
