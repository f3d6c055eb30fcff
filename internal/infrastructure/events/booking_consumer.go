package events

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/contracts"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/messaging"
)

type bookingConsumer struct {
	rabbitmq *messaging.RabbitMQ
	audit    domain.BookingAuditRepository
	logger   logging.Logger
}

// NewBookingConsumer drains the bookings queue and turns lifecycle events
// into audit trail entries.
func NewBookingConsumer(rabbitmq *messaging.RabbitMQ, audit domain.BookingAuditRepository, logger logging.Logger) *bookingConsumer {
	return &bookingConsumer{
		rabbitmq: rabbitmq,
		audit:    audit,
		logger:   logger,
	}
}

func (c *bookingConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.BookingsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			c.logger.Error(logging.RabbitMQ, logging.ExternalService, "failed to unmarshal amqp message", map[logging.ExtraKey]interface{}{
				logging.ErrorMessage: err.Error(),
			})
			return err
		}

		var payload messaging.BookingEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			c.logger.Error(logging.RabbitMQ, logging.ExternalService, "failed to unmarshal booking event", map[logging.ExtraKey]interface{}{
				logging.ErrorMessage: err.Error(),
			})
			return err
		}

		var entry *domain.BookingAuditLog
		switch msg.RoutingKey {
		case contracts.EventBookingCreated:
			entry = domain.NewBookingCreatedLog(&payload.Booking)
		case contracts.EventBookingStatusChanged:
			entry = domain.NewBookingStatusChangedLog(&payload.Booking, payload.ActorID)
		default:
			c.logger.Warn(logging.RabbitMQ, logging.ExternalService, "unknown booking event", map[logging.ExtraKey]interface{}{
				"routingKey": msg.RoutingKey,
			})
			return nil
		}

		if err := c.audit.Log(ctx, entry); err != nil {
			c.logger.Error(logging.RabbitMQ, logging.ExternalService, "failed to write audit log", map[logging.ExtraKey]interface{}{
				logging.BookingID:    entry.BookingID,
				logging.ErrorMessage: err.Error(),
			})
			return err
		}

		return nil
	})
}
