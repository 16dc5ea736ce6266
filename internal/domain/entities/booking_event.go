package entities

import (
	"time"
)

// BookingEventType identifies booking lifecycle events on the event bus
type BookingEventType string

const (
	BookingEventCreated BookingEventType = "booking.created"
)

// BookingEvent is published after a booking has been committed to storage
type BookingEvent struct {
	ID         string           `json:"id"`
	Type       BookingEventType `json:"type"`
	BookingID  string           `json:"booking_id"`
	ListingID  string           `json:"listing_id"`
	TenantID   string           `json:"tenant_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}
