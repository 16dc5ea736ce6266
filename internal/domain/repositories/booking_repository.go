package repositories

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations.
// Bookings are insert-only; nothing in the system updates or deletes them.
type BookingRepository interface {
	// Create persists a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// GetByIDs retrieves multiple bookings by ID
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Booking, error)

	// ListByTenant retrieves bookings a user has made, newest first
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entities.Booking, error)

	// ListByListing retrieves bookings of a listing, newest first
	ListByListing(ctx context.Context, listingID string, limit, offset int) ([]*entities.Booking, error)
}
