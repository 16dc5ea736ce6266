package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
	"github.com/tadeyina/stayhaven/internal/infrastructure/observability"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

// HostListingInput carries the fields a host submits when publishing a
// listing. Price is the nightly rate in the smallest currency unit.
type HostListingInput struct {
	Title       string
	Description string
	Image       string
	Type        entities.ListingType
	Address     string
	Country     string
	Admin       string
	City        string
	Price       int64
	NumOfGuests int
}

const (
	maxTitleLength       = 100
	maxDescriptionLength = 5000
)

// ListingService handles listing publication and retrieval
type ListingService struct {
	listings repositories.ListingRepository
	users    repositories.UserRepository
	viewer   providers.ViewerResolver
	search   providers.SearchIndex
}

// NewListingService creates a new listing service
func NewListingService(
	listings repositories.ListingRepository,
	users repositories.UserRepository,
	viewer providers.ViewerResolver,
	search providers.SearchIndex,
) *ListingService {
	return &ListingService{
		listings: listings,
		users:    users,
		viewer:   viewer,
		search:   search,
	}
}

func validateHostListingInput(input HostListingInput) error {
	if strings.TrimSpace(input.Title) == "" || len(input.Title) > maxTitleLength {
		return apperrors.NewValidationError("listing title must be under 100 characters")
	}
	if strings.TrimSpace(input.Description) == "" || len(input.Description) > maxDescriptionLength {
		return apperrors.NewValidationError("listing description must be under 5000 characters")
	}
	if input.Type != entities.ListingTypeApartment && input.Type != entities.ListingTypeHouse {
		return apperrors.NewValidationError("listing type must be either an apartment or house")
	}
	if input.Price <= 0 {
		return apperrors.NewValidationError("price must be greater than 0")
	}
	if input.NumOfGuests <= 0 {
		return apperrors.NewValidationError("number of guests must be greater than 0")
	}
	if strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.Country) == "" {
		return apperrors.NewValidationError("listing location is incomplete")
	}
	return nil
}

// HostListing publishes a new listing owned by the viewer
func (s *ListingService) HostListing(ctx context.Context, input HostListingInput) (*entities.Listing, error) {
	ctx, span := observability.StartSpan(ctx, "ListingService.HostListing")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	host, err := s.viewer.ResolveViewer(ctx)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, apperrors.NewUnauthenticatedError("viewer cannot be found")
	}

	if err := validateHostListingInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &entities.Listing{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Image:         input.Image,
		HostID:        host.ID,
		Type:          input.Type,
		Address:       input.Address,
		Country:       input.Country,
		Admin:         input.Admin,
		City:          input.City,
		NumOfGuests:   input.NumOfGuests,
		Price:         input.Price,
		BookingIDs:    []string{},
		BookingsIndex: entities.BookingsIndex{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	if err := s.users.AppendListing(ctx, host.ID, listing.ID); err != nil {
		logger.Error().Err(err).
			Str("listing_id", listing.ID).
			Str("host_id", host.ID).
			Msg("listing created but host reference append failed")
		return nil, apperrors.NewPersistenceFailedError("failed to attach listing to host", err)
	}

	if err := s.search.IndexListing(ctx, listing); err != nil {
		logger.Warn().Err(err).Str("listing_id", listing.ID).Msg("failed to index listing for search")
	}

	return listing, nil
}

// GetByID retrieves a listing
func (s *ListingService) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

// List retrieves a page of listings plus the total match count, optionally
// narrowed to a free-text location. Location pages are ranked by the search
// index; when the index is unavailable the database's own location match
// answers instead.
func (s *ListingService) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, int64, error) {
	ctx, span := observability.StartSpan(ctx, "ListingService.List")
	defer span.End()

	if filter.Location == "" {
		return s.listFromDatabase(ctx, filter)
	}

	ids, total, err := s.search.SearchIDs(ctx, filter.Location, filter.Limit, filter.Offset)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("location", filter.Location).
			Msg("search index unavailable, falling back to database location match")
		return s.listFromDatabase(ctx, filter)
	}
	if len(ids) == 0 {
		return []*entities.Listing{}, total, nil
	}

	listings, err := s.listings.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	// preserve the index's relevance order
	byID := make(map[string]*entities.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	ordered := make([]*entities.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, total, nil
}

func (s *ListingService) listFromDatabase(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, int64, error) {
	listings, err := s.listings.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.listings.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ListByHost retrieves the listings a host owns
func (s *ListingService) ListByHost(ctx context.Context, hostID string) ([]*entities.Listing, error) {
	return s.listings.ListByHost(ctx, hostID)
}
