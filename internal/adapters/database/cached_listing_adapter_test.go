package database_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadeyina/stayhaven/internal/adapters/database"
	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

type stubListingRepo struct {
	repositories.ListingRepository
	listings map[string]*entities.Listing
	getCalls int
	commits  []repositories.BookingCommit
}

func (s *stubListingRepo) GetByID(_ context.Context, id string) (*entities.Listing, error) {
	s.getCalls++
	if l, ok := s.listings[id]; ok {
		return l, nil
	}
	return nil, apperrors.NewNotFoundError("listing not found")
}

func (s *stubListingRepo) GetByIDs(_ context.Context, ids []string) ([]*entities.Listing, error) {
	out := []*entities.Listing{}
	for _, id := range ids {
		if l, ok := s.listings[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubListingRepo) CommitBooking(_ context.Context, commit repositories.BookingCommit) error {
	s.commits = append(s.commits, commit)
	return nil
}

type memoryCache struct {
	values  map[string][]byte
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return nil, apperrors.NewNotFoundError("cache miss")
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.deletes = append(c.deletes, key)
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func seededListing() *entities.Listing {
	return &entities.Listing{
		ID:            "listing-1",
		Title:         "Harbour flat",
		HostID:        "host-1",
		Price:         12500,
		IndexVersion:  7,
		BookingIDs:    []string{},
		BookingsIndex: entities.BookingsIndex{"2024": {"2": {"5": true}}},
	}
}

func TestCachedListingAdapter_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database and keeps the index version", func(t *testing.T) {
		repo := &stubListingRepo{listings: map[string]*entities.Listing{}}
		cache := newMemoryCache()

		data, err := json.Marshal(seededListing())
		require.NoError(t, err)
		cache.values[database.ListingCacheKey("listing-1")] = data

		adapter := database.NewCachedListingAdapter(repo, cache)
		listing, err := adapter.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, "Harbour flat", listing.Title)
		assert.Equal(t, int64(7), listing.IndexVersion)
		assert.True(t, listing.BookingsIndex["2024"]["2"]["5"])
		assert.Zero(t, repo.getCalls)
	})

	t.Run("cache miss reads through and fills the cache", func(t *testing.T) {
		repo := &stubListingRepo{listings: map[string]*entities.Listing{"listing-1": seededListing()}}
		cache := newMemoryCache()

		adapter := database.NewCachedListingAdapter(repo, cache)
		listing, err := adapter.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, 1, repo.getCalls)
		assert.Equal(t, int64(7), listing.IndexVersion)

		// cache fill is asynchronous
		assert.Eventually(t, func() bool {
			_, ok := cache.values[database.ListingCacheKey("listing-1")]
			return ok
		}, time.Second, 10*time.Millisecond)
	})
}

func TestCachedListingAdapter_CommitBooking(t *testing.T) {
	ctx := context.Background()
	repo := &stubListingRepo{listings: map[string]*entities.Listing{"listing-1": seededListing()}}
	cache := newMemoryCache()
	cache.values[database.ListingCacheKey("listing-1")] = []byte(`{"id":"listing-1"}`)

	adapter := database.NewCachedListingAdapter(repo, cache)
	err := adapter.CommitBooking(ctx, repositories.BookingCommit{
		ListingID:       "listing-1",
		BookingID:       "booking-1",
		Index:           entities.BookingsIndex{},
		ExpectedVersion: 7,
	})

	require.NoError(t, err)
	require.Len(t, repo.commits, 1)
	assert.Contains(t, cache.deletes, database.ListingCacheKey("listing-1"))
}
