package entities

import (
	"time"
)

// User represents a user in the system. A user is a host for the listings
// they own and a tenant for the bookings they make.
type User struct {
	ID      string `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Avatar  string `bson:"avatar" json:"avatar"`
	Contact string `bson:"contact" json:"contact"`

	// WalletID references the host's connected payment-processor account.
	// A host without one cannot receive bookings.
	WalletID *string `bson:"walletId" json:"-"`

	// Income accumulates, in the smallest currency unit, everything credited
	// from successful bookings of this user's listings.
	Income int64 `bson:"income" json:"income"`

	// BookingIDs are bookings made as a tenant; ListingIDs are owned
	// listings. Both are append-only.
	BookingIDs []string `bson:"bookings" json:"bookings"`
	ListingIDs []string `bson:"listings" json:"listings"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// HasWallet reports whether the user can receive payouts.
func (u *User) HasWallet() bool {
	return u.WalletID != nil && *u.WalletID != ""
}
