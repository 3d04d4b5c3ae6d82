package market

import (
	"context"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
	"github.com/haragucci/opsucht-market-bot/internal/logger"
	"github.com/haragucci/opsucht-market-bot/internal/metrics"
)

// BuildFullCatalog synchronizes the cache with the complete upstream
// catalog: one categories fetch, then one prices fetch per category in
// store order, each merged into the cache. Categories whose fetch
// degrades to empty contribute nothing; the build itself never fails.
//
// The build is N+1 sequential round trips: one categories fetch plus
// one prices fetch per category. It runs at most once per process under
// normal operation.
func (c *Cache) BuildFullCatalog(ctx context.Context) map[string]domain.CatalogEntry {
	log := logger.FromContext(ctx)

	categories := c.store.Categories(ctx)
	if len(categories) == 0 {
		log.Warn("Catalog build found no categories")
		return nil
	}

	catalog := make(map[string]domain.CatalogEntry)
	for _, category := range categories {
		orders := c.client.FetchCategoryOrders(ctx, category.Name)
		if len(orders) == 0 {
			log.Warn("Category contributed no items to catalog build", "category", category.Name)
			continue
		}

		c.upsert(category.Name, orders)
		for item, book := range orders {
			catalog[item] = domain.CatalogEntry{Category: category.Name, Orders: book}
		}
	}

	metrics.CatalogBuilds.Inc()
	log.Info("Catalog build completed", "categories", len(categories), "items", len(catalog))

	return catalog
}
