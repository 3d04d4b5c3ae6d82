package market

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/haragucci/opsucht-market-bot/internal/domain"
	"github.com/haragucci/opsucht-market-bot/internal/logger"
)

// CategoryStore is the process-lifetime cache of the category list.
//
// The list is fetched at most once: the first caller triggers the
// upstream fetch and every concurrent caller shares its result via
// singleflight. The result is sticky even when empty, so a broken
// upstream at startup stays "no categories" until Invalidate is called.
type CategoryStore struct {
	client *Client

	mu         sync.Mutex
	loaded     bool
	categories []domain.Category

	flight singleflight.Group
}

// NewCategoryStore creates an empty store backed by the given client.
func NewCategoryStore(client *Client) *CategoryStore {
	return &CategoryStore{client: client}
}

// Categories returns the cached category list, fetching it on first use.
func (s *CategoryStore) Categories(ctx context.Context) []domain.Category {
	s.mu.Lock()
	if s.loaded {
		categories := s.categories
		s.mu.Unlock()
		return categories
	}
	s.mu.Unlock()

	result, _, _ := s.flight.Do(flightKeyCategories, func() (interface{}, error) {
		// Re-check under the flight: a caller that lost the race to an
		// already-completed fetch must not trigger a second one.
		s.mu.Lock()
		if s.loaded {
			categories := s.categories
			s.mu.Unlock()
			return categories, nil
		}
		s.mu.Unlock()

		// The fetch result is shared by every waiter and cached for the
		// process lifetime, so it runs detached from the first caller's
		// deadline. The client's request timeout still applies.
		categories := s.client.FetchCategories(context.WithoutCancel(ctx))
		if len(categories) == 0 {
			logger.FromContext(ctx).Warn("Caching empty category list")
		}

		s.mu.Lock()
		s.categories = categories
		s.loaded = true
		s.mu.Unlock()

		return categories, nil
	})

	categories, _ := result.([]domain.Category)
	return categories
}

// Contains reports whether the given name is a known category.
func (s *CategoryStore) Contains(ctx context.Context, name string) bool {
	for _, category := range s.Categories(ctx) {
		if category.Name == name {
			return true
		}
	}
	return false
}

// Invalidate clears the store so the next Categories call refetches.
func (s *CategoryStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.categories = nil
	s.mu.Unlock()
}
