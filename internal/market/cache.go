package market

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
	"github.com/haragucci/opsucht-market-bot/internal/metrics"
)

// Cache maps item identifiers to their category and current order book.
//
// It is additive-only: fetches upsert entries by item identifier but
// nothing ever deletes an entry, so items that disappear upstream keep
// their last known state for the process lifetime. Growth is bounded by
// the upstream catalog size.
type Cache struct {
	client *Client
	store  *CategoryStore

	mu      sync.RWMutex
	entries map[string]domain.CatalogEntry

	flight singleflight.Group
}

// NewCache creates an empty item/order cache.
func NewCache(client *Client, store *CategoryStore) *Cache {
	return &Cache{
		client:  client,
		store:   store,
		entries: make(map[string]domain.CatalogEntry),
	}
}

// ItemsForCategory fetches the current order books for one category,
// merges them into the cache, and returns the identifiers belonging to
// that category. A category absent from the upstream payload yields an
// empty result and leaves the cache untouched.
func (c *Cache) ItemsForCategory(ctx context.Context, category string) map[string]domain.ItemRef {
	orders := c.client.FetchCategoryOrders(ctx, category)
	if len(orders) == 0 {
		return nil
	}

	c.upsert(category, orders)

	refs := make(map[string]domain.ItemRef, len(orders))
	for item := range orders {
		refs[item] = domain.ItemRef{Category: category}
	}
	return refs
}

// FullCatalog returns the complete item catalog. A non-empty cache is
// served as-is without network activity; only a cold cache triggers a
// catalog build, and concurrent cold callers share one build.
func (c *Cache) FullCatalog(ctx context.Context) map[string]domain.CatalogEntry {
	c.mu.RLock()
	if len(c.entries) > 0 {
		snapshot := c.snapshotLocked()
		c.mu.RUnlock()
		metrics.CatalogCacheHits.Inc()
		return snapshot
	}
	c.mu.RUnlock()

	metrics.CatalogCacheMisses.Inc()
	result, _, _ := c.flight.Do(flightKeyCatalog, func() (interface{}, error) {
		c.mu.RLock()
		if len(c.entries) > 0 {
			snapshot := c.snapshotLocked()
			c.mu.RUnlock()
			return snapshot, nil
		}
		c.mu.RUnlock()

		// The build is shared by every waiter, so it must not die with
		// the first caller's deadline. The client's request timeout
		// still bounds each fetch.
		return c.BuildFullCatalog(context.WithoutCancel(ctx)), nil
	})

	catalog, _ := result.(map[string]domain.CatalogEntry)
	return catalog
}

// Orders returns the cached order book for one item, or nil when the
// item has never been seen.
func (c *Cache) Orders(itemID string) []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[itemID].Orders
}

// Entry returns the full cached state for one item.
func (c *Cache) Entry(itemID string) (domain.CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[itemID]
	return entry, ok
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// upsert merges one category's order books into the cache. Entries for
// other categories are never touched.
func (c *Cache) upsert(category string, orders map[string][]domain.Order) {
	c.mu.Lock()
	for item, book := range orders {
		c.entries[item] = domain.CatalogEntry{Category: category, Orders: book}
	}
	metrics.CachedItems.Set(float64(len(c.entries)))
	c.mu.Unlock()
}

// snapshotLocked copies the entry map; callers must hold at least a
// read lock.
func (c *Cache) snapshotLocked() map[string]domain.CatalogEntry {
	snapshot := make(map[string]domain.CatalogEntry, len(c.entries))
	for item, entry := range c.entries {
		snapshot[item] = entry
	}
	return snapshot
}

// BestOrder returns the first order of the given side in upstream array
// order. The upstream API appears to return price-sorted books, but
// that is not guaranteed, and the first-match rule is the one consumers
// of this bot have always seen.
func BestOrder(orders []domain.Order, side domain.OrderSide) (domain.Order, bool) {
	for _, order := range orders {
		if order.Side == side {
			return order, true
		}
	}
	return domain.Order{}, false
}
