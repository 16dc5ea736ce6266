package repositories

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByIDs retrieves multiple users by ID
	GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error)

	// CreditIncome atomically increments the user's accumulated income
	CreditIncome(ctx context.Context, userID string, amount int64) error

	// AppendBooking appends a booking reference to the user's tenant bookings
	AppendBooking(ctx context.Context, userID, bookingID string) error

	// AppendListing appends a listing reference to the user's owned listings
	AppendListing(ctx context.Context, userID, listingID string) error

	// SetWallet attaches or detaches (walletID == nil) the user's connected
	// payout account
	SetWallet(ctx context.Context, userID string, walletID *string) error
}
