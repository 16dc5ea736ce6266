package resolvers

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/tadeyina/stayhaven/internal/application/services"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
	"github.com/tadeyina/stayhaven/internal/domain/repositories"
)

// Resolver is the root GraphQL resolver
type Resolver struct {
	bookingService *services.BookingService
	listingService *services.ListingService
	userService    *services.UserService
	viewer         providers.ViewerResolver
}

// NewResolver creates a new resolver with dependencies
func NewResolver(
	bookingService *services.BookingService,
	listingService *services.ListingService,
	userService *services.UserService,
	viewer providers.ViewerResolver,
) *Resolver {
	return &Resolver{
		bookingService: bookingService,
		listingService: listingService,
		userService:    userService,
		viewer:         viewer,
	}
}

// viewerID resolves the request's viewer identity, empty when anonymous.
// Field-level authorization (income, booking history) keys off it.
func (r *Resolver) viewerID(ctx context.Context) string {
	viewer, err := r.viewer.ResolveViewer(ctx)
	if err != nil || viewer == nil {
		return ""
	}
	return viewer.ID
}

func pageOffset(limit, page int32) (int, int) {
	if limit < 0 {
		limit = 0
	}
	if page < 1 {
		page = 1
	}
	return int(limit), int(limit) * int(page-1)
}

// Listing resolves a single listing by id
func (r *Resolver) Listing(ctx context.Context, args struct{ ID graphqlgo.ID }) (*ListingResolver, error) {
	listing, err := r.listingService.GetByID(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	authorized := r.viewerID(ctx) == listing.HostID
	return newListingResolver(r, listing, authorized), nil
}

// Listings resolves a page of listings, optionally narrowed to a location
func (r *Resolver) Listings(ctx context.Context, args struct {
	Location *string
	Limit    int32
	Page     int32
}) (*ListingsResolver, error) {
	limit, offset := pageOffset(args.Limit, args.Page)
	filter := repositories.ListingFilter{Limit: limit, Offset: offset}
	if args.Location != nil {
		filter.Location = *args.Location
	}

	listings, total, err := r.listingService.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*ListingResolver, 0, len(listings))
	viewerID := ""
	if len(listings) > 0 {
		viewerID = r.viewerID(ctx)
	}
	for _, l := range listings {
		result = append(result, newListingResolver(r, l, viewerID != "" && viewerID == l.HostID))
	}
	return &ListingsResolver{total: total, result: result}, nil
}

// User resolves a user profile by id
func (r *Resolver) User(ctx context.Context, args struct{ ID graphqlgo.ID }) (*UserResolver, error) {
	user, err := r.userService.GetByID(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	authorized := r.viewerID(ctx) == user.ID
	return newUserResolver(r, user, authorized), nil
}

// CreateBookingInput mirrors the schema input of the same name
type CreateBookingInput struct {
	ID       graphqlgo.ID
	Source   string
	CheckIn  string
	CheckOut string
}

// CreateBooking books a listing for the viewer
func (r *Resolver) CreateBooking(ctx context.Context, args struct{ Input CreateBookingInput }) (*BookingResolver, error) {
	booking, err := r.bookingService.CreateBooking(ctx, services.CreateBookingInput{
		ListingID: string(args.Input.ID),
		Source:    args.Input.Source,
		CheckIn:   args.Input.CheckIn,
		CheckOut:  args.Input.CheckOut,
	})
	if err != nil {
		return nil, err
	}
	return newBookingResolver(r, booking), nil
}

// HostListingInput mirrors the schema input of the same name
type HostListingInput struct {
	Title       string
	Description string
	Image       string
	Type        string
	Address     string
	Country     string
	Admin       string
	City        string
	Price       int32
	NumOfGuests int32
}

// HostListing publishes a new listing owned by the viewer
func (r *Resolver) HostListing(ctx context.Context, args struct{ Input HostListingInput }) (*ListingResolver, error) {
	listing, err := r.listingService.HostListing(ctx, services.HostListingInput{
		Title:       args.Input.Title,
		Description: args.Input.Description,
		Image:       args.Input.Image,
		Type:        entitiesListingType(args.Input.Type),
		Address:     args.Input.Address,
		Country:     args.Input.Country,
		Admin:       args.Input.Admin,
		City:        args.Input.City,
		Price:       int64(args.Input.Price),
		NumOfGuests: int(args.Input.NumOfGuests),
	})
	if err != nil {
		return nil, err
	}
	return newListingResolver(r, listing, true), nil
}

// ConnectWallet attaches a payout account to the viewer
func (r *Resolver) ConnectWallet(ctx context.Context, args struct {
	Input struct{ Code string }
}) (*UserResolver, error) {
	user, err := r.userService.ConnectWallet(ctx, args.Input.Code)
	if err != nil {
		return nil, err
	}
	return newUserResolver(r, user, true), nil
}

// DisconnectWallet detaches the viewer's payout account
func (r *Resolver) DisconnectWallet(ctx context.Context) (*UserResolver, error) {
	user, err := r.userService.DisconnectWallet(ctx)
	if err != nil {
		return nil, err
	}
	return newUserResolver(r, user, true), nil
}
