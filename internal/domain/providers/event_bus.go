package providers

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
)

// EventBus distributes booking lifecycle events to interested subscribers
type EventBus interface {
	// Publish publishes an event to all subscribers of the channel
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Close releases all subscriptions
	Close() error
}
