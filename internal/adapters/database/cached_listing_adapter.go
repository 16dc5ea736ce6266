package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	listingByIDTTL = 300 // 5 minutes for single listing
)

// ListingCacheKey builds the cache key for a single listing
func ListingCacheKey(id string) string {
	return fmt.Sprintf("listing:%s", id)
}

// CachedListingAdapter wraps a ListingRepository with read-through caching.
// Writes that touch a listing drop its cache entry so a booking is never
// validated against a stale index for longer than one read.
type CachedListingAdapter struct {
	adapter repositories.ListingRepository
	cache   providers.CacheProvider
}

// NewCachedListingAdapter creates a new cached listing adapter
func NewCachedListingAdapter(adapter repositories.ListingRepository, cache providers.CacheProvider) repositories.ListingRepository {
	return &CachedListingAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Create persists a new listing
func (a *CachedListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	return a.adapter.Create(ctx, listing)
}

// GetByID retrieves a listing by ID with caching
func (a *CachedListingAdapter) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	cacheKey := ListingCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var listing entities.Listing
		if err := json.Unmarshal(cached, &listing); err == nil {
			return &listing, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("listing_id", id).
			Msg("failed to unmarshal cached listing")
	}

	listing, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(listing); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, listingByIDTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Str("listing_id", id).
					Msg("failed to cache listing")
			}
		}
	}()

	return listing, nil
}

// GetByIDs retrieves multiple listings by ID, filling per-ID cache entries
func (a *CachedListingAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Listing, error) {
	var (
		cached  = make(map[string]*entities.Listing, len(ids))
		missing = make([]string, 0, len(ids))
	)

	for _, id := range ids {
		data, err := a.cache.Get(ctx, ListingCacheKey(id))
		if err != nil {
			missing = append(missing, id)
			continue
		}
		var listing entities.Listing
		if err := json.Unmarshal(data, &listing); err != nil {
			missing = append(missing, id)
			continue
		}
		cached[id] = &listing
	}

	if len(missing) > 0 {
		fetched, err := a.adapter.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, listing := range fetched {
			cached[listing.ID] = listing
			if data, err := json.Marshal(listing); err == nil {
				_ = a.cache.Set(ctx, ListingCacheKey(listing.ID), data, listingByIDTTL)
			}
		}
	}

	// Preserve request order, skipping IDs that do not exist.
	out := make([]*entities.Listing, 0, len(ids))
	for _, id := range ids {
		if listing, ok := cached[id]; ok {
			out = append(out, listing)
		}
	}
	return out, nil
}

// List bypasses the cache; pages are cheap and short-lived
func (a *CachedListingAdapter) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, error) {
	return a.adapter.List(ctx, filter)
}

// Count bypasses the cache
func (a *CachedListingAdapter) Count(ctx context.Context, filter repositories.ListingFilter) (int64, error) {
	return a.adapter.Count(ctx, filter)
}

// ListByHost bypasses the cache
func (a *CachedListingAdapter) ListByHost(ctx context.Context, hostID string) ([]*entities.Listing, error) {
	return a.adapter.ListByHost(ctx, hostID)
}

// CommitBooking writes through and immediately invalidates the listing entry
func (a *CachedListingAdapter) CommitBooking(ctx context.Context, commit repositories.BookingCommit) error {
	if err := a.adapter.CommitBooking(ctx, commit); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, ListingCacheKey(commit.ListingID)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("listing_id", commit.ListingID).
			Msg("failed to invalidate listing cache after booking commit")
	}
	return nil
}
