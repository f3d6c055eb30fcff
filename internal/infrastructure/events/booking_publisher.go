package events

import (
	"context"
	"encoding/json"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/contracts"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/messaging"
)

type BookingPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewBookingPublisher(rabbitmq *messaging.RabbitMQ) *BookingPublisher {
	return &BookingPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *BookingPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	payload := messaging.BookingEventData{
		Booking: *booking,
	}

	bookingEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, contracts.EventBookingCreated, contracts.AmqpMessage{
		OwnerID: booking.CustomerID,
		Data:    bookingEventJSON,
	})
}

func (p *BookingPublisher) PublishBookingStatusChanged(ctx context.Context, booking *domain.Booking, actorID string) error {
	payload := messaging.BookingEventData{
		Booking: *booking,
		ActorID: actorID,
	}

	bookingEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, contracts.EventBookingStatusChanged, contracts.AmqpMessage{
		OwnerID: actorID,
		Data:    bookingEventJSON,
	})
}

func (p *BookingPublisher) PublishMessageSent(ctx context.Context, message *domain.Message) error {
	payload := messaging.MessageEventData{
		Message: *message,
	}

	messageEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, contracts.EventMessageSent, contracts.AmqpMessage{
		OwnerID: message.SenderID,
		Data:    messageEventJSON,
	})
}
