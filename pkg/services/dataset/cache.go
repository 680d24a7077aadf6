package dataset

import (
	"context"
	"sync"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Cache holds loaded snapshots keyed by source-set identity and tracks the
// active one. Loading is guarded by a single lock so concurrent sessions
// cannot race a load; snapshots are immutable after load and shared
// read-only.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*domain.Dataset
	active  string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*domain.Dataset)}
}

// Load resolves the provider's source set, loading it at most once per key,
// and makes it the active snapshot.
func (c *Cache) Load(ctx context.Context, p Provider) (*domain.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx, p)
}

// Replace loads the provider's source set, makes it active and drops the
// previously active entry when it differs. Both steps happen under one
// lock, so two concurrent replacements cannot drop each other's freshly
// activated snapshot.
func (c *Cache) Replace(ctx context.Context, p Provider) (*domain.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.active
	ds, err := c.loadLocked(ctx, p)
	if err != nil {
		return nil, err
	}
	if prev != "" && prev != c.active {
		delete(c.entries, prev)
	}
	return ds, nil
}

// loadLocked resolves and activates the provider's source set; the caller
// holds mu.
func (c *Cache) loadLocked(ctx context.Context, p Provider) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	key := p.Key()

	if ds, ok := c.entries[key]; ok {
		c.active = key
		logger.Debug().Str("key", key).Msg("dataset cache hit")
		return ds, nil
	}

	ds, err := p.Load()
	if err != nil {
		return nil, err
	}

	c.entries[key] = ds
	c.active = key
	logger.Info().
		Str("key", key).
		Int("orders", len(ds.Orders)).
		Int("items", len(ds.Items)).
		Int("payments", len(ds.Payments)).
		Msg("dataset loaded")
	return ds, nil
}

// Active returns the current snapshot, or false when nothing is loaded yet.
func (c *Cache) Active() (*domain.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.entries[c.active]
	return ds, ok
}

// Invalidate drops a cached source set; the next Load with the same key
// re-reads it. Invalidating the active key deactivates the snapshot.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	if c.active == key {
		c.active = ""
	}
}
