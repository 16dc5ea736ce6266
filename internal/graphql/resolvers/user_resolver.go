package resolvers

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// UserResolver resolves the User type. authorized is true when the viewer is
// looking at their own profile; income and booking history stay private.
type UserResolver struct {
	root       *Resolver
	user       *entities.User
	authorized bool
}

func newUserResolver(root *Resolver, user *entities.User, authorized bool) *UserResolver {
	return &UserResolver{root: root, user: user, authorized: authorized}
}

func (r *UserResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(r.user.ID)
}

func (r *UserResolver) Name() string    { return r.user.Name }
func (r *UserResolver) Avatar() string  { return r.user.Avatar }
func (r *UserResolver) Contact() string { return r.user.Contact }

func (r *UserResolver) HasWallet() bool {
	return r.user.HasWallet()
}

// Income is only visible to the profile's owner
func (r *UserResolver) Income() *int32 {
	if !r.authorized {
		return nil
	}
	income := int32(r.user.Income)
	return &income
}

// Bookings resolves the user's booking history, owner-only
func (r *UserResolver) Bookings(ctx context.Context, args struct {
	Limit int32
	Page  int32
}) (*BookingsResolver, error) {
	if !r.authorized {
		return nil, nil
	}

	limit, offset := pageOffset(args.Limit, args.Page)
	bookings, err := r.root.bookingService.ListByTenant(ctx, r.user.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*BookingResolver, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, newBookingResolver(r.root, b))
	}
	return &BookingsResolver{total: int64(len(r.user.BookingIDs)), result: result}, nil
}

// Listings resolves the listings the user hosts; public
func (r *UserResolver) Listings(ctx context.Context, args struct {
	Limit int32
	Page  int32
}) (*ListingsResolver, error) {
	owned, err := r.root.listingService.ListByHost(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}

	limit, offset := pageOffset(args.Limit, args.Page)
	if offset > len(owned) {
		offset = len(owned)
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}

	result := make([]*ListingResolver, 0, end-offset)
	for _, l := range owned[offset:end] {
		result = append(result, newListingResolver(r.root, l, r.authorized))
	}
	return &ListingsResolver{total: int64(len(owned)), result: result}, nil
}
