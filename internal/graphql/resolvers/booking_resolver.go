package resolvers

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/graphql/loaders"
)

// BookingResolver resolves the Booking type
type BookingResolver struct {
	root    *Resolver
	booking *entities.Booking
}

func newBookingResolver(root *Resolver, booking *entities.Booking) *BookingResolver {
	return &BookingResolver{root: root, booking: booking}
}

func (r *BookingResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(r.booking.ID)
}

func (r *BookingResolver) CheckIn() string    { return r.booking.CheckIn }
func (r *BookingResolver) CheckOut() string   { return r.booking.CheckOut }
func (r *BookingResolver) TotalPrice() int32  { return int32(r.booking.TotalPrice) }

// Listing resolves the booked listing through the batching loader
func (r *BookingResolver) Listing(ctx context.Context) (*ListingResolver, error) {
	listing, err := loaders.For(ctx).ListingLoader.Load(ctx, r.booking.ListingID)()
	if err != nil {
		return nil, err
	}
	return newListingResolver(r.root, listing, r.root.viewerID(ctx) == listing.HostID), nil
}

// Tenant resolves the user who made the booking through the batching loader
func (r *BookingResolver) Tenant(ctx context.Context) (*UserResolver, error) {
	tenant, err := loaders.For(ctx).UserLoader.Load(ctx, r.booking.TenantID)()
	if err != nil {
		return nil, err
	}
	return newUserResolver(r.root, tenant, r.root.viewerID(ctx) == tenant.ID), nil
}

// BookingsResolver resolves a page of bookings
type BookingsResolver struct {
	total  int64
	result []*BookingResolver
}

func (r *BookingsResolver) Total() int32               { return int32(r.total) }
func (r *BookingsResolver) Result() []*BookingResolver { return r.result }
