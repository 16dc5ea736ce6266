package events

import (
	"context"

	"github.com/tadeyina/stayhaven/internal/domain/entities"
	"github.com/tadeyina/stayhaven/internal/domain/providers"
)

// NoopEventBus drops every event. Used when Redis is unavailable so the
// booking path never blocks on the bus.
type NoopEventBus struct{}

func NewNoopEventBus() providers.EventBus {
	return NoopEventBus{}
}

func (NoopEventBus) Publish(context.Context, string, *entities.BookingEvent) error {
	return nil
}

func (NoopEventBus) Subscribe(ctx context.Context, _ string) (<-chan *entities.BookingEvent, error) {
	ch := make(chan *entities.BookingEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (NoopEventBus) Close() error {
	return nil
}
