package events

import "context"

// NoopProducer drops all events. Used when Kafka is disabled in config.
type NoopProducer struct{}

func NewNoopProducer() *NoopProducer {
	return &NoopProducer{}
}

func (NoopProducer) ProduceBookingEvent(ctx context.Context, event *BookingEvent) error {
	return nil
}

func (NoopProducer) Close() error {
	return nil
}
