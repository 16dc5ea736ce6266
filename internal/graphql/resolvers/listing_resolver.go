package resolvers

import (
	"context"
	"encoding/json"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/graphql/loaders"
)

func entitiesListingType(t string) entities.ListingType {
	return entities.ListingType(t)
}

// ListingResolver resolves the Listing type. authorized is true when the
// viewer owns the listing and may see its booking history.
type ListingResolver struct {
	root       *Resolver
	listing    *entities.Listing
	authorized bool
}

func newListingResolver(root *Resolver, listing *entities.Listing, authorized bool) *ListingResolver {
	return &ListingResolver{root: root, listing: listing, authorized: authorized}
}

func (r *ListingResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(r.listing.ID)
}

func (r *ListingResolver) Title() string       { return r.listing.Title }
func (r *ListingResolver) Description() string { return r.listing.Description }
func (r *ListingResolver) Image() string       { return r.listing.Image }
func (r *ListingResolver) Type() string        { return string(r.listing.Type) }
func (r *ListingResolver) Address() string     { return r.listing.Address }
func (r *ListingResolver) City() string        { return r.listing.City }
func (r *ListingResolver) Admin() string       { return r.listing.Admin }
func (r *ListingResolver) Country() string     { return r.listing.Country }
func (r *ListingResolver) Price() int32        { return int32(r.listing.Price) }
func (r *ListingResolver) NumOfGuests() int32  { return int32(r.listing.NumOfGuests) }

// Host resolves the owning user through the batching loader
func (r *ListingResolver) Host(ctx context.Context) (*UserResolver, error) {
	host, err := loaders.For(ctx).UserLoader.Load(ctx, r.listing.HostID)()
	if err != nil {
		return nil, err
	}
	return newUserResolver(r.root, host, r.root.viewerID(ctx) == host.ID), nil
}

// BookingsIndex serializes the reserved-day index for clients that render
// availability calendars
func (r *ListingResolver) BookingsIndex() (string, error) {
	index := r.listing.BookingsIndex
	if index == nil {
		index = entities.BookingsIndex{}
	}
	encoded, err := json.Marshal(index)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Bookings resolves the listing's booking history. Only the host sees it;
// everyone else gets null.
func (r *ListingResolver) Bookings(ctx context.Context, args struct {
	Limit int32
	Page  int32
}) (*BookingsResolver, error) {
	if !r.authorized {
		return nil, nil
	}

	limit, offset := pageOffset(args.Limit, args.Page)
	bookings, err := r.root.bookingService.ListByListing(ctx, r.listing.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*BookingResolver, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, newBookingResolver(r.root, b))
	}
	return &BookingsResolver{total: int64(len(r.listing.BookingIDs)), result: result}, nil
}

// ListingsResolver resolves a page of listings
type ListingsResolver struct {
	total  int64
	result []*ListingResolver
}

func (r *ListingsResolver) Total() int32              { return int32(r.total) }
func (r *ListingsResolver) Result() []*ListingResolver { return r.result }
