package repositories

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// BookingCommit carries the per-listing writes that finalize a booking. The
// index replacement is conditional: it only applies when the listing still
// has ExpectedVersion, which closes the read-then-write race between the
// conflict check and the commit.
type BookingCommit struct {
	ListingID       string
	BookingID       string
	Index           entities.BookingsIndex
	ExpectedVersion int64
}

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	// Create persists a new listing
	Create(ctx context.Context, listing *entities.Listing) error

	// GetByID retrieves a listing by ID
	GetByID(ctx context.Context, id string) (*entities.Listing, error)

	// GetByIDs retrieves multiple listings by ID
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Listing, error)

	// List retrieves listings with pagination
	List(ctx context.Context, filter ListingFilter) ([]*entities.Listing, error)

	// Count reports how many listings match the filter, ignoring pagination
	Count(ctx context.Context, filter ListingFilter) (int64, error)

	// ListByHost retrieves the listings a host owns
	ListByHost(ctx context.Context, hostID string) ([]*entities.Listing, error)

	// CommitBooking appends the booking reference and replaces the bookings
	// index iff the listing's index version still matches
	// commit.ExpectedVersion. A version miss surfaces as a conflict error
	// without writing anything.
	CommitBooking(ctx context.Context, commit BookingCommit) error
}

// ListingFilter defines filters for listing pages
type ListingFilter struct {
	Location string
	Limit    int
	Offset   int
}
