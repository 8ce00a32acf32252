package confect

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// cacheEntry tracks one in-flight or completed metadata derivation.
// ready is closed once meta and err are set.
type cacheEntry struct {
	ready chan struct{}
	meta  *Metadata
	err   error
}

// metadataCache memoizes Provider results per type. Each type is derived at
// most once; concurrent callers for the same type wait for the first
// derivation instead of duplicating it. A failed derivation is forgotten so
// a later caller retries rather than observing a permanently poisoned
// entry.
type metadataCache struct {
	mu      sync.Mutex
	entries map[reflect.Type]*cacheEntry
}

func newMetadataCache() *metadataCache {
	return &metadataCache{entries: make(map[reflect.Type]*cacheEntry)}
}

func (c *metadataCache) get(ctx context.Context, t reflect.Type, provider Provider, monitor Monitor) (*Metadata, error) {
	c.mu.Lock()
	if entry, ok := c.entries[t]; ok {
		c.mu.Unlock()
		<-entry.ready
		return entry.meta, entry.err
	}

	entry := &cacheEntry{ready: make(chan struct{})}
	c.entries[t] = entry
	c.mu.Unlock()

	start := time.Now()
	entry.meta, entry.err = extract(ctx, t, provider, monitor)
	close(entry.ready)

	if entry.err != nil {
		c.mu.Lock()
		if c.entries[t] == entry {
			delete(c.entries, t)
		}
		c.mu.Unlock()
		return nil, entry.err
	}

	emitMetadataComputed(ctx, t.String(), len(entry.meta.Attributes), time.Since(start))
	return entry.meta, nil
}

// extract shields waiters from a panicking provider: the entry must always
// become ready, and a panic counts as a retryable failure.
func extract(ctx context.Context, t reflect.Type, provider Provider, monitor Monitor) (meta *Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			meta = nil
			err = fmt.Errorf("%w: provider panicked deriving metadata for %s: %v", ErrStructural, t, r)
		}
	}()
	return provider.Extract(ctx, t, monitor)
}

// reset drops all cached metadata. Primarily useful for test isolation.
func (c *metadataCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[reflect.Type]*cacheEntry)
}
