package market

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
)

func TestCategoryStore(t *testing.T) {
	t.Run("fetches once and serves from cache", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		store := NewCategoryStore(upstream.client())

		first := store.Categories(context.Background())
		second := store.Categories(context.Background())

		assert.Equal(t, first, second)
		assert.Equal(t, int64(1), upstream.hits[EndpointCategories].Load())
	})

	t.Run("empty result is sticky without refetching", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `[]`)
		store := NewCategoryStore(upstream.client())

		assert.Empty(t, store.Categories(context.Background()))
		assert.Empty(t, store.Categories(context.Background()))
		assert.Equal(t, int64(1), upstream.hits[EndpointCategories].Load())
	})

	t.Run("malformed response is sticky like empty", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `garbage`)
		store := NewCategoryStore(upstream.client())

		assert.Empty(t, store.Categories(context.Background()))
		assert.Empty(t, store.Categories(context.Background()))
		assert.Equal(t, int64(1), upstream.hits[EndpointCategories].Load())
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `["Ores"]`)
		store := NewCategoryStore(upstream.client())

		require.Len(t, store.Categories(context.Background()), 1)
		store.Invalidate()
		require.Len(t, store.Categories(context.Background()), 1)

		assert.Equal(t, int64(2), upstream.hits[EndpointCategories].Load())
	})

	t.Run("expired caller context does not cancel the shared fetch", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		store := NewCategoryStore(upstream.client())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Len(t, store.Categories(ctx), 2)
		assert.Equal(t, int64(1), upstream.hits[EndpointCategories].Load())
	})

	t.Run("concurrent first callers share one fetch", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `["Ores","Farming"]`)
		store := NewCategoryStore(upstream.client())

		const callers = 16
		results := make([][]domain.Category, callers)
		var wg sync.WaitGroup
		wg.Add(callers)
		for i := 0; i < callers; i++ {
			go func(i int) {
				defer wg.Done()
				results[i] = store.Categories(context.Background())
			}(i)
		}
		wg.Wait()

		for i := 1; i < callers; i++ {
			assert.Equal(t, results[0], results[i])
		}
		assert.Equal(t, int64(1), upstream.hits[EndpointCategories].Load())
	})

	t.Run("contains checks membership", func(t *testing.T) {
		upstream := newTestUpstream(t)
		upstream.respond(EndpointCategories, `["Ores"]`)
		store := NewCategoryStore(upstream.client())

		assert.True(t, store.Contains(context.Background(), "Ores"))
		assert.False(t, store.Contains(context.Background(), "Tools"))
	})
}
