package service

import (
	"context"

	"github.com/reshmacodewarrior/BusBookingSystem/pkg/kafka"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/logger"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
)

const (
	EventTypeBusCreated       = "bus.created"
	EventTypeBusDeleted       = "bus.deleted"
	EventTypeBookingConfirmed = "booking.confirmed"

	eventSource = "buses-service"
)

// EventPublisher emits bus lifecycle and booking events. A nil publisher is
// valid and publishes nothing, which is how the service runs when no Kafka
// brokers are configured.
type EventPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewEventPublisher(producer *kafka.Producer, log *logger.Logger) *EventPublisher {
	if producer == nil {
		return nil
	}
	return &EventPublisher{
		producer: producer,
		log:      log,
	}
}

// publish is best-effort: a broker failure is logged and swallowed so the
// request that triggered the event still succeeds.
func (p *EventPublisher) publish(ctx context.Context, eventType, key string, payload any) {
	if p == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(eventSource).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

func (p *EventPublisher) BusCreated(ctx context.Context, bus *model.Bus) {
	p.publish(ctx, EventTypeBusCreated, bus.ID, bus)
}

func (p *EventPublisher) BusDeleted(ctx context.Context, id string) {
	p.publish(ctx, EventTypeBusDeleted, id, map[string]string{"bus_id": id})
}

// BookingConfirmed publishes the confirmation summary without the embedded
// bus document to keep the payload small.
func (p *EventPublisher) BookingConfirmed(ctx context.Context, confirmation *model.BookingConfirmation) {
	if p == nil {
		return
	}
	summary := *confirmation
	summary.Bus = nil
	p.publish(ctx, EventTypeBookingConfirmed, confirmation.BusID, &summary)
}
