package services

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/adapters/database"
	"github.com/tadeyina/stayhaven/internal/adapters/events"
	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
)

// CacheInvalidationService drops cached listings when bookings land on other
// instances. The committing instance invalidates its own cache in-line; this
// consumer keeps the rest of the fleet from serving a stale bookings index.
type CacheInvalidationService struct {
	bus   providers.EventBus
	cache providers.CacheProvider
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(bus providers.EventBus, cache providers.CacheProvider) *CacheInvalidationService {
	return &CacheInvalidationService{bus: bus, cache: cache}
}

// Run consumes booking events until ctx is cancelled
func (s *CacheInvalidationService) Run(ctx context.Context) error {
	logger := observability.GetLogger()

	eventChan, err := s.bus.Subscribe(ctx, events.BookingsChannel)
	if err != nil {
		return err
	}

	logger.Info().Str("channel", events.BookingsChannel).Msg("cache invalidation consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-eventChan:
			if !ok {
				return nil
			}
			s.handle(ctx, event)
		}
	}
}

func (s *CacheInvalidationService) handle(ctx context.Context, event *entities.BookingEvent) {
	logger := observability.GetLogger()

	if event.Type != entities.BookingEventCreated || event.ListingID == "" {
		return
	}

	key := database.ListingCacheKey(event.ListingID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate cached listing")
		return
	}
	logger.Debug().Str("listing_id", event.ListingID).Msg("invalidated cached listing after booking")
}
