package market

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
)

const pricesPayload = `{
	"Ores": {
		"iron_ingot": [
			{"orderSide":"BUY","price":120,"activeOrders":4},
			{"orderSide":"SELL","price":140,"activeOrders":2}
		],
		"gold_ingot": [{"orderSide":"SELL","price":900,"activeOrders":1}]
	},
	"Farming": {
		"wheat": [{"orderSide":"BUY","price":3,"activeOrders":9}]
	}
}`

func newTestCache(t *testing.T) (*testUpstream, *Cache) {
	t.Helper()
	upstream := newTestUpstream(t)
	client := upstream.client()
	store := NewCategoryStore(client)
	return upstream, NewCache(client, store)
}

func TestCacheItemsForCategory(t *testing.T) {
	t.Run("returns items and caches their orders", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointPrices, `{"Ores": {"iron_ingot": [{"orderSide":"BUY","price":120,"activeOrders":4}]}}`)

		refs := cache.ItemsForCategory(context.Background(), "Ores")

		require.Len(t, refs, 1)
		assert.Equal(t, domain.ItemRef{Category: "Ores"}, refs["iron_ingot"])

		orders := cache.Orders("iron_ingot")
		require.Len(t, orders, 1)
		assert.Equal(t, domain.OrderSideBuy, orders[0].Side)
		assert.Equal(t, 120.0, orders[0].Price)
	})

	t.Run("is idempotent for identical payloads", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointPrices, pricesPayload)

		first := cache.ItemsForCategory(context.Background(), "Ores")
		snapshot := map[string][]domain.Order{
			"iron_ingot": cache.Orders("iron_ingot"),
			"gold_ingot": cache.Orders("gold_ingot"),
		}
		second := cache.ItemsForCategory(context.Background(), "Ores")

		assert.Equal(t, first, second)
		assert.Equal(t, snapshot["iron_ingot"], cache.Orders("iron_ingot"))
		assert.Equal(t, snapshot["gold_ingot"], cache.Orders("gold_ingot"))
	})

	t.Run("absent category returns empty without mutating the cache", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointPrices, pricesPayload)

		refs := cache.ItemsForCategory(context.Background(), "Tools")

		assert.Empty(t, refs)
		assert.Zero(t, cache.Len())
	})

	t.Run("merging one category leaves others untouched", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointPrices, pricesPayload)

		cache.ItemsForCategory(context.Background(), "Farming")
		require.Equal(t, 1, cache.Len())

		cache.ItemsForCategory(context.Background(), "Ores")

		assert.Equal(t, 3, cache.Len())
		assert.NotEmpty(t, cache.Orders("wheat"), "Farming entry must survive the Ores merge")
	})

	t.Run("later fetch overwrites earlier orders for the same item", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointPrices, `{"Ores": {"iron_ingot": [{"orderSide":"BUY","price":120,"activeOrders":4}]}}`)
		cache.ItemsForCategory(context.Background(), "Ores")

		upstream.mux = newMuxWith(t, EndpointPrices, `{"Ores": {"iron_ingot": [{"orderSide":"BUY","price":99,"activeOrders":1}]}}`)
		cache.ItemsForCategory(context.Background(), "Ores")

		orders := cache.Orders("iron_ingot")
		require.Len(t, orders, 1)
		assert.Equal(t, 99.0, orders[0].Price)
	})

	t.Run("unknown item has no orders", func(t *testing.T) {
		_, cache := newTestCache(t)
		assert.Empty(t, cache.Orders("never_seen"))
	})
}

func TestCacheFullCatalog(t *testing.T) {
	t.Run("cold cache builds the catalog from all categories", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		upstream.respond(EndpointPrices, pricesPayload)

		catalog := cache.FullCatalog(context.Background())

		require.Len(t, catalog, 3)
		assert.Equal(t, "Ores", catalog["iron_ingot"].Category)
		assert.Equal(t, "Farming", catalog["wheat"].Category)
		require.Len(t, catalog["iron_ingot"].Orders, 2)

		// one categories fetch plus one prices fetch per category
		assert.Equal(t, int64(1), upstream.hits[EndpointCategories].Load())
		assert.Equal(t, int64(2), upstream.hits[EndpointPrices].Load())
	})

	t.Run("non-empty cache is served without network activity", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		upstream.respond(EndpointPrices, pricesPayload)

		// Populate via a single per-category call; the memo treats any
		// non-empty cache as complete.
		cache.ItemsForCategory(context.Background(), "Farming")
		before := upstream.hits[EndpointPrices].Load()

		catalog := cache.FullCatalog(context.Background())

		assert.Len(t, catalog, 1)
		assert.Contains(t, catalog, "wheat")
		assert.Equal(t, before, upstream.hits[EndpointPrices].Load())
		assert.Zero(t, upstream.hits[EndpointCategories].Load())
	})

	t.Run("orders match the most recent fetch regardless of path", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		upstream.respond(EndpointPrices, pricesPayload)

		cache.FullCatalog(context.Background())

		upstream.mux = newMuxWith(t, EndpointPrices, `{"Ores": {"iron_ingot": [{"orderSide":"SELL","price":150,"activeOrders":7}]}}`)
		cache.ItemsForCategory(context.Background(), "Ores")

		orders := cache.Orders("iron_ingot")
		require.Len(t, orders, 1)
		assert.Equal(t, domain.OrderSideSell, orders[0].Side)
		assert.Equal(t, 150.0, orders[0].Price)
	})

	t.Run("expired caller context does not cancel the shared build", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		upstream.respond(EndpointPrices, pricesPayload)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		catalog := cache.FullCatalog(ctx)

		assert.Len(t, catalog, 3)
		assert.Equal(t, 3, cache.Len())
	})

	t.Run("concurrent cold callers converge to one consistent catalog", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		upstream.respond(EndpointPrices, pricesPayload)

		const callers = 8
		results := make([]map[string]domain.CatalogEntry, callers)
		var wg sync.WaitGroup
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func(i int) {
				defer wg.Done()
				results[i] = cache.FullCatalog(context.Background())
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			assert.Len(t, results[i], 3)
		}
		assert.Equal(t, 3, cache.Len())
	})
}

func TestBuildFullCatalog(t *testing.T) {
	t.Run("failed category contributes nothing but build continues", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `["Ores","Ghost","Farming"]`)
		upstream.respond(EndpointPrices, pricesPayload)

		catalog := cache.BuildFullCatalog(context.Background())

		assert.Len(t, catalog, 3)
		assert.NotContains(t, catalog, "Ghost")
	})

	t.Run("no categories yields an empty catalog", func(t *testing.T) {
		upstream, cache := newTestCache(t)
		upstream.respond(EndpointCategories, `[]`)

		assert.Empty(t, cache.BuildFullCatalog(context.Background()))
		assert.Zero(t, upstream.hits[EndpointPrices].Load())
	})
}

func TestBestOrder(t *testing.T) {
	orders := []domain.Order{
		{Side: domain.OrderSideSell, Price: 140, ActiveOrders: 2},
		{Side: domain.OrderSideBuy, Price: 120, ActiveOrders: 4},
		{Side: domain.OrderSideBuy, Price: 80, ActiveOrders: 1},
	}

	t.Run("returns the first order per side in upstream order", func(t *testing.T) {
		buy, ok := BestOrder(orders, domain.OrderSideBuy)
		require.True(t, ok)
		assert.Equal(t, 120.0, buy.Price, "first BUY wins even if a cheaper one follows")

		sell, ok := BestOrder(orders, domain.OrderSideSell)
		require.True(t, ok)
		assert.Equal(t, 140.0, sell.Price)
	})

	t.Run("reports absence of a side", func(t *testing.T) {
		_, ok := BestOrder(orders[:1], domain.OrderSideBuy)
		assert.False(t, ok)
		_, ok = BestOrder(nil, domain.OrderSideSell)
		assert.False(t, ok)
	})
}
