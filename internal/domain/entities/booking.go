package entities

import (
	"time"
)

// Booking represents a confirmed reservation of a listing for an inclusive
// date range. Bookings are created exactly once and never mutated.
type Booking struct {
	ID        string `bson:"_id" json:"id"`
	ListingID string `bson:"listing" json:"listing"`
	TenantID  string `bson:"tenant" json:"tenant"`

	// CheckIn and CheckOut are ISO calendar dates; CheckOut >= CheckIn.
	CheckIn  string `bson:"checkIn" json:"check_in"`
	CheckOut string `bson:"checkOut" json:"check_out"`

	// TotalPrice is what the tenant was charged, in the smallest currency unit.
	TotalPrice int64 `bson:"totalPrice" json:"total_price"`

	// ChargeID and IdempotencyKey tie the booking to the processor's ledger
	// for offline reconciliation.
	ChargeID       string `bson:"chargeId" json:"-"`
	IdempotencyKey string `bson:"idempotencyKey" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
