package entities

import (
	"time"
)

// ListingType categorizes rentable properties
type ListingType string

const (
	ListingTypeApartment ListingType = "APARTMENT"
	ListingTypeHouse     ListingType = "HOUSE"
)

// Listing represents a rentable property
type Listing struct {
	ID          string      `bson:"_id" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	Image       string      `bson:"image" json:"image"`
	HostID      string      `bson:"host" json:"host"`
	Type        ListingType `bson:"type" json:"type"`
	Address     string      `bson:"address" json:"address"`
	Country     string      `bson:"country" json:"country"`
	Admin       string      `bson:"admin" json:"admin"`
	City        string      `bson:"city" json:"city"`
	NumOfGuests int         `bson:"numOfGuests" json:"num_of_guests"`

	// Price is the nightly rate in the smallest currency unit.
	Price int64 `bson:"price" json:"price"`

	// BookingIDs is append-only; bookings are never detached from a listing.
	BookingIDs    []string      `bson:"bookings" json:"bookings"`
	BookingsIndex BookingsIndex `bson:"bookingsIndex" json:"bookings_index"`

	// IndexVersion guards the read-modify-write of BookingsIndex. Every
	// committed index update increments it, and writers must match the
	// version they read. It must survive cache serialization or a cached
	// read could never commit.
	IndexVersion int64 `bson:"indexVersion" json:"index_version"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
