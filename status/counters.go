// Package status keeps named session counters.
package status

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Counters is a registry of named int64 counters.
// Registration takes the lock; increments on a cached pointer do not.
type Counters struct {
	mu    sync.RWMutex
	items map[string]*atomic.Int64
}

func NewCounters() *Counters {
	return &Counters{items: make(map[string]*atomic.Int64)}
}

// Counter returns the counter for key, creating it on first use
func (c *Counters) Counter(key string) *atomic.Int64 {
	c.mu.RLock()
	if ptr, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return ptr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok := c.items[key]; ok {
		return ptr
	}
	ptr := new(atomic.Int64)
	c.items[key] = ptr
	return ptr
}

// Inc adds one to key and returns the new value
func (c *Counters) Inc(key string) int64 {
	return c.Counter(key).Add(1)
}

// Get returns the value of key, 0 if it was never counted
func (c *Counters) Get(key string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ptr, ok := c.items[key]; ok {
		return ptr.Load()
	}
	return 0
}

// Range visits every counter in sorted key order
func (c *Counters) Range(fn func(key string, value int64)) {
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)

	for _, k := range keys {
		fn(k, c.Get(k))
	}
}

// String renders the counters as space separated key=value pairs
func (c *Counters) String() string {
	var b strings.Builder
	c.Range(func(key string, value int64) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(value, 10))
	})
	return b.String()
}
